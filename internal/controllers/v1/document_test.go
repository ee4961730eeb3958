package v1_test

import (
	"net/http"

	v1 "github.com/konverty/backend/internal/controllers/v1"
	"github.com/konverty/backend/internal/models"
	"github.com/konverty/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestDocumentsOptions() {
	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/documents/savingsData", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET, PUT", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestDocumentsGet() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/documents/savingsData", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.DocumentResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "savingsData", response.Data.Key)
	assert.Equal(suite.T(), "http://example.com/v1/documents/savingsData", response.Data.Links.Self)
	assert.Contains(suite.T(), string(response.Data.Value), "investPiggyBank1_15")

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/documents/notes", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestDocumentsSet() {
	body := `[{ "date": "2026-10-03", "amount": 5000, "envelope": "Еда" }]`

	r := test.Request(suite.T(), http.MethodPut, "http://example.com/v1/documents/topUps", body)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.DocumentResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.JSONEq(suite.T(), body, string(response.Data.Value))

	// Unknown keys are stored as they are
	r = test.Request(suite.T(), http.MethodPut, "http://example.com/v1/documents/notes", `"Не забыть про подарки"`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/documents/notes", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	assert.JSONEq(suite.T(), `"Не забыть про подарки"`, string(response.Data.Value))
}

func (suite *TestSuiteStandard) TestDocumentsSetCutoffDay() {
	groceries := getExpenseCategory(suite.T(), "Продукты")
	_ = createTestExpense(suite.T(), v1.ExpenseEditable{ExpenseCategoryID: groceries.ID, Day: 4, Amount: decimal.NewFromInt(1200), Comment: "Вейп"})

	r := test.Request(suite.T(), http.MethodPut, "http://example.com/v1/documents/cutoffDay", "3")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	assert.True(suite.T(), getChecklistItem(suite.T(), "Вейп").Actual.Decimal.IsZero(), "Changing the cutoff day reconciles")

	r = test.Request(suite.T(), http.MethodPut, "http://example.com/v1/documents/cutoffDay", "12")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	assert.True(suite.T(), decimal.NewFromInt(1200).Equal(getChecklistItem(suite.T(), "Вейп").Actual.Decimal))

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/settings", "")
	var settings v1.SettingsResponse
	test.DecodeResponse(suite.T(), &r, &settings)
	assert.Equal(suite.T(), 12, settings.Data.CutoffDay)
}

func (suite *TestSuiteStandard) TestDocumentsSetFails() {
	tests := []struct {
		name string
		key  string
		body string
		err  string
	}{
		{"Cutoff day not a number", models.DocumentCutoffDay, `"abc"`, models.ErrCutoffDayInvalid.Error()},
		{"Cutoff day out of range", models.DocumentCutoffDay, "40", models.ErrCutoffDayInvalid.Error()},
		{"Broken JSON", "topUps", `[{ "amount": `, ""},
		{"Empty body", "topUps", "", "must not be empty"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := test.Request(suite.T(), http.MethodPut, "http://example.com/v1/documents/"+tt.key, tt.body)
			test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

			var response v1.DocumentResponse
			test.DecodeResponse(suite.T(), &r, &response)
			assert.Contains(suite.T(), *response.Error, tt.err)
		})
	}

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/settings", "")
	var settings v1.SettingsResponse
	test.DecodeResponse(suite.T(), &r, &settings)
	assert.Equal(suite.T(), models.DefaultCutoffDay, settings.Data.CutoffDay)
}

func (suite *TestSuiteStandard) TestDocumentsDBClosed() {
	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/documents/savingsData", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}
