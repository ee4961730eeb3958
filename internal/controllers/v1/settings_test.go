package v1_test

import (
	"net/http"

	v1 "github.com/konverty/backend/internal/controllers/v1"
	"github.com/konverty/backend/internal/models"
	"github.com/konverty/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestSettingsGet() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/settings", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SettingsResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.DefaultCutoffDay, response.Data.CutoffDay)
}

// TestSettingsUpdateReconciles verifies that a new cutoff day is applied
// to the checklists right away.
func (suite *TestSuiteStandard) TestSettingsUpdateReconciles() {
	groceries := getExpenseCategory(suite.T(), "Продукты")
	_ = createTestExpense(suite.T(), v1.ExpenseEditable{ExpenseCategoryID: groceries.ID, Day: 3, Amount: decimal.NewFromInt(800), Comment: "Кафе"})
	assert.True(suite.T(), decimal.NewFromInt(800).Equal(getChecklistItem(suite.T(), "Кафе").Actual.Decimal))

	r := test.Request(suite.T(), http.MethodPatch, "http://example.com/v1/settings", `{ "cutoffDay": 2 }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SettingsResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), 2, response.Data.CutoffDay)
	assert.True(suite.T(), getChecklistItem(suite.T(), "Кафе").Actual.Decimal.IsZero())

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/settings", "")
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), 2, response.Data.CutoffDay)

	r = test.Request(suite.T(), http.MethodPatch, "http://example.com/v1/settings", `{ "cutoffDay": 10 }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	assert.True(suite.T(), decimal.NewFromInt(800).Equal(getChecklistItem(suite.T(), "Кафе").Actual.Decimal))
}

func (suite *TestSuiteStandard) TestSettingsUpdateFails() {
	tests := []struct {
		name string
		body string
	}{
		{"Cutoff day zero", `{ "cutoffDay": 0 }`},
		{"Cutoff day after the month", `{ "cutoffDay": 32 }`},
		{"Cutoff day not a number", `{ "cutoffDay": "fifth" }`},
		{"Empty body", ""},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := test.Request(suite.T(), http.MethodPatch, "http://example.com/v1/settings", tt.body)
			test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
		})
	}

	// Nothing changed
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/settings", "")
	var response v1.SettingsResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.DefaultCutoffDay, response.Data.CutoffDay)
}

func (suite *TestSuiteStandard) TestSettingsDBClosed() {
	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/settings", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)

	r = test.Request(suite.T(), http.MethodPatch, "http://example.com/v1/settings", `{ "cutoffDay": 7 }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}
