package models_test

import (
	"github.com/konverty/backend/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestDataMigrationsRecorded() {
	var applied []models.DataMigration
	err := models.DB.Order("version ASC").Find(&applied).Error
	suite.Require().Nil(err)
	suite.Require().Len(applied, 4)

	for i, m := range applied {
		suite.Assert().Equal(i+1, m.Version)
		suite.Assert().NotEmpty(m.Name)
	}
}

// TestDataMigrations tampers with the data the way older versions left it
// and verifies that the data migrations repair it.
func (suite *TestSuiteStandard) TestDataMigrations() {
	for _, name := range []string{"Стэф", "Дом"} {
		legacy := models.ExpenseCategory{Name: name}
		suite.Require().Nil(models.DB.Create(&legacy).Error)
		_ = suite.createTestExpense(models.Expense{ExpenseCategoryID: legacy.ID, Day: 2, Amount: decimal.NewFromInt(100)})
	}

	education := suite.expenseCategory("Образование")
	suite.Require().Nil(models.DB.Model(&education).UpdateColumn("position", 99).Error)

	other := suite.expenseCategory("Прочее")
	suite.Require().Nil(models.DB.Model(&other).UpdateColumn("plan", decimal.NewFromInt(21000)).Error)

	taxi := suite.expenseCategory("Такси")
	suite.Require().Nil(models.DB.Model(&taxi).UpdateColumn("envelope", "undefined").Error)
	suite.Require().Nil(models.DB.Model(&other).UpdateColumn("envelope", "undefined").Error)

	suite.Require().Nil(models.DB.Where("true").Delete(&models.DataMigration{}).Error)
	suite.Reconnect()

	var categories []models.ExpenseCategory
	suite.Require().Nil(models.DB.Order("position ASC").Find(&categories).Error)

	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}

	suite.Assert().Equal([]string{
		"Продукты",
		"Бонусы и кафе",
		"Салоны красоты",
		"Косметика, одежда",
		"Здоровье и тело",
		"Английский",
		"Китайский",
		"Образование",
		"Подписки",
		"Такси",
		"Прочее",
	}, names, "Legacy categories are removed and Образование follows Китайский")

	var count int64
	suite.Require().Nil(models.DB.Model(&models.Expense{}).Count(&count).Error)
	suite.Assert().Equal(int64(0), count, "Entries of legacy categories are removed")

	suite.Assert().True(decimal.NewFromInt(23200).Equal(suite.expenseCategory("Прочее").Plan))
	suite.Assert().Equal("Обычная жизнь", suite.expenseCategory("Такси").Envelope)
	suite.Assert().Equal("", suite.expenseCategory("Прочее").Envelope)
}

func (suite *TestSuiteStandard) TestDataMigrationsAddMissingEducation() {
	education := suite.expenseCategory("Образование")
	suite.Require().Nil(models.DB.Delete(&education).Error)
	suite.Require().Nil(models.DB.Where("version = ?", 2).Delete(&models.DataMigration{}).Error)

	suite.Reconnect()

	education = suite.expenseCategory("Образование")
	suite.Assert().Equal(7, education.Position)
	suite.Assert().True(decimal.NewFromInt(19000).Equal(education.Plan))
	suite.Assert().Equal("Образование", education.Envelope)
}
