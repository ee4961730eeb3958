package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/konverty/backend/internal/controllers/v1"
	"github.com/konverty/backend/internal/models"
	"github.com/konverty/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestIncomeSource(t *testing.T, s v1.IncomeSourceEditable, expectedStatus ...int) v1.IncomeSourceResponse {
	if s.Category == "" {
		s.Category = uuid.NewString()
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.IncomeSourceEditable{s}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/income-sources", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var source v1.IncomeSourceCreateResponse
	test.DecodeResponse(t, &r, &source)

	if r.Code == http.StatusCreated {
		return source.Data[0]
	}

	return v1.IncomeSourceResponse{}
}

// TestIncomeSourcesDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestIncomeSourcesDBClosed() {
	tests := []struct {
		name string             // Name of the test
		test func(t *testing.T) // Code to run
	}{
		{
			"Creation fails",
			func(t *testing.T) {
				createTestIncomeSource(t, v1.IncomeSourceEditable{}, http.StatusInternalServerError)
			},
		},
		{
			"GET fails",
			func(t *testing.T) {
				recorder := test.Request(t, http.MethodGet, "http://example.com/v1/income-sources", "")
				test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)

				var response v1.IncomeSourceListResponse
				test.DecodeResponse(t, &recorder, &response)
				assert.Contains(t, *response.Error, models.ErrGeneral.Error())
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			tt.test(t)
		})
	}
}

// TestIncomeSourcesOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestIncomeSourcesOptions() {
	tests := []struct {
		name   string
		id     string // path at the income sources endpoint to test
		status int    // Expected HTTP status code
	}{
		{"No income source with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Income source exists", createTestIncomeSource(suite.T(), v1.IncomeSourceEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/income-sources", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

func (suite *TestSuiteStandard) TestIncomeSourcesGetSingle() {
	source := createTestIncomeSource(suite.T(), v1.IncomeSourceEditable{})

	tests := []struct {
		name   string
		id     string
		status int
		method string
	}{
		{"GET Existing income source", source.Data.ID.String(), http.StatusOK, http.MethodGet},
		{"GET ID nil", uuid.Nil.String(), http.StatusNotFound, http.MethodGet},
		{"GET No income source with this ID", uuid.New().String(), http.StatusNotFound, http.MethodGet},
		{"GET Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodGet},
		{"PATCH Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodPatch},
		{"DELETE Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodDelete},
		{"DELETE No income source with this ID", uuid.New().String(), http.StatusNotFound, http.MethodDelete},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v1/income-sources/%s", tt.id), "")

			var source v1.IncomeSourceResponse
			test.DecodeResponse(t, &r, &source)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestIncomeSourcesCreate() {
	source := createTestIncomeSource(suite.T(), v1.IncomeSourceEditable{
		Category:   "Фриланс",
		FirstHalf:  decimal.NewFromInt(15000),
		SecondHalf: decimal.NewFromInt(5000),
	})

	assert.Equal(suite.T(), models.IncomeRegular, source.Data.Type, "The type defaults to regular")
	assert.True(suite.T(), decimal.NewFromInt(20000).Equal(source.Data.Total))

	tests := []struct {
		name   string
		source v1.IncomeSourceEditable
		err    error
	}{
		{"Blank category", v1.IncomeSourceEditable{Category: " "}, models.ErrCategoryEmpty},
		{"Unknown type", v1.IncomeSourceEditable{Category: "Лотерея", Type: "lottery"}, models.ErrIncomeTypeInvalid},
		{"Second previous month", v1.IncomeSourceEditable{Category: "Ещё остаток", Type: models.IncomePreviousMonth}, models.ErrPreviousMonthIncomeNotUnique},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/income-sources", []v1.IncomeSourceEditable{tt.source})
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var response v1.IncomeSourceCreateResponse
			test.DecodeResponse(t, &r, &response)
			require.Len(t, response.Data, 1)
			assert.Equal(t, tt.err.Error(), *response.Data[0].Error)
		})
	}
}

func (suite *TestSuiteStandard) TestIncomeSourcesGetFilter() {
	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"All", "", 4},
		{"Regular", "type=regular", 2},
		{"Previous month", "type=previous-month", 1},
		{"Other", "type=other", 1},
		{"Limit", "limit=2", 2},
		{"Offset", "offset=1", 3},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/income-sources?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.IncomeSourceListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}

func (suite *TestSuiteStandard) TestIncomeSourcesUpdate() {
	source := createTestIncomeSource(suite.T(), v1.IncomeSourceEditable{
		Category:  "Фриланс",
		FirstHalf: decimal.NewFromInt(15000),
	})

	r := test.Request(suite.T(), http.MethodPatch, source.Data.Links.Self, `{ "secondHalf": "2500", "type": "other" }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.IncomeSourceResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.Equal(suite.T(), models.IncomeOther, updated.Data.Type)
	assert.True(suite.T(), decimal.NewFromInt(17500).Equal(updated.Data.Total))
	assert.Equal(suite.T(), "Фриланс", updated.Data.Category)

	r = test.Request(suite.T(), http.MethodPatch, source.Data.Links.Self, `{ "type": "previous-month" }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.T(), http.MethodPatch, source.Data.Links.Self, `{ "category": "" }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestIncomeSourcesDelete() {
	source := createTestIncomeSource(suite.T(), v1.IncomeSourceEditable{})

	r := test.Request(suite.T(), http.MethodDelete, source.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, source.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
