package models_test

import (
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/konverty/backend/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestConnectFails() {
	err := models.Connect(filepath.Join(suite.T().TempDir(), "missing", "konverty.db"))
	suite.Assert().NotNil(err)

	// Keep a working connection for the teardown
	suite.Reconnect()
}

func (suite *TestSuiteStandard) TestTimestampsUTC() {
	item := models.ChecklistItem{List: models.Needs, Category: "Кино", Expected: decimal.NewFromInt(1000)}
	suite.Require().Nil(models.DB.Create(&item).Error)

	var loaded models.ChecklistItem
	suite.Require().Nil(models.DB.First(&loaded, item.ID).Error)
	suite.Assert().Equal(time.UTC, loaded.CreatedAt.Location())
	suite.Assert().Equal(time.UTC, loaded.UpdatedAt.Location())
}

func (suite *TestSuiteStandard) TestResourceNotFound() {
	err := models.DB.First(&models.ExpenseCategory{}, uuid.New()).Error
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.Assert().Equal("there is no expense category matching your query", err.Error())
}

func (suite *TestSuiteStandard) TestDBClosedErrorIsGeneral() {
	suite.CloseDB()

	err := models.DB.Create(&models.ExpenseCategory{Name: "Кино"}).Error
	suite.Assert().ErrorIs(err, models.ErrGeneral)

	err = models.DB.Where("true").Delete(&models.Expense{}).Error
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}

func (suite *TestSuiteStandard) TestExport() {
	for _, model := range models.Registry {
		raw, err := model.Export()
		suite.Require().Nil(err, "%T", model)
		suite.Assert().NotEmpty(raw)
	}

	raw, err := models.ExpenseCategory{}.Export()
	suite.Require().Nil(err)
	suite.Assert().Contains(string(raw), "Бонусы и кафе")
}
