package models_test

import (
	"github.com/konverty/backend/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestReconciliationDoesNotSave() {
	cafe := suite.expenseCategory("Бонусы и кафе")
	_ = suite.createTestExpense(models.Expense{ExpenseCategoryID: cafe.ID, Day: 2, Amount: decimal.NewFromInt(1000)})

	_, wants, err := models.Reconciliation(models.DB, 5)
	suite.Require().Nil(err)
	suite.Assert().Equal("Бонусы", wants[0].Category)
	suite.Assert().True(decimal.NewFromInt(500).Equal(wants[0].Actual.Decimal), "Бонусы gets half of the bucket, got %s", wants[0].Actual.Decimal)
	suite.Assert().True(decimal.NewFromInt(14500).Equal(wants[0].Diff))

	suite.Assert().True(suite.checklistItem("Бонусы").Actual.Decimal.IsZero())
}

func (suite *TestSuiteStandard) TestReconcile() {
	cafe := suite.expenseCategory("Бонусы и кафе")
	_ = suite.createTestExpense(models.Expense{ExpenseCategoryID: cafe.ID, Day: 2, Amount: decimal.NewFromInt(1000)})
	_ = suite.createTestExpense(models.Expense{ExpenseCategoryID: cafe.ID, Day: 3, Amount: decimal.NewFromInt(400), Comment: "Кафе"})
	_ = suite.createTestExpense(models.Expense{ExpenseCategoryID: cafe.ID, Day: 9, Amount: decimal.NewFromInt(9000)})

	_, _, err := models.Reconcile(models.DB)
	suite.Require().Nil(err)

	suite.Assert().True(decimal.NewFromInt(500).Equal(suite.checklistItem("Бонусы").Actual.Decimal))
	suite.Assert().True(decimal.NewFromInt(900).Equal(suite.checklistItem("Кафе").Actual.Decimal), "Entries commented with a checklist category count there")
	suite.Assert().True(decimal.NewFromInt(4100).Equal(suite.checklistItem("Кафе").Diff))
}

func (suite *TestSuiteStandard) TestIncrementActual() {
	updated, err := models.IncrementActual(models.DB, "такси", decimal.NewFromInt(350))
	suite.Require().Nil(err)
	suite.Assert().True(updated)
	suite.Assert().True(decimal.NewFromInt(350).Equal(suite.checklistItem("Такси").Actual.Decimal))
	suite.Assert().True(decimal.NewFromInt(4650).Equal(suite.checklistItem("Такси").Diff))

	updated, err = models.IncrementActual(models.DB, "Кино", decimal.NewFromInt(350))
	suite.Require().Nil(err)
	suite.Assert().False(updated, "Nothing is updated without a checklist item named like the comment")
}

func (suite *TestSuiteStandard) TestReconcileDBClosed() {
	suite.CloseDB()

	_, _, err := models.Reconcile(models.DB)
	suite.Assert().ErrorIs(err, models.ErrGeneral)

	_, _, err = models.Reconciliation(models.DB, 5)
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}
