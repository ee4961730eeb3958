package v1_test

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/konverty/backend/internal/controllers/v1"
	"github.com/konverty/backend/internal/models"
	"github.com/konverty/backend/internal/types"
	"github.com/konverty/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestChecklistItem(t *testing.T, c v1.ChecklistItemEditable, expectedStatus ...int) v1.ChecklistItemResponse {
	if c.List == "" {
		c.List = models.Needs
	}

	if c.Category == "" {
		c.Category = uuid.NewString()
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.ChecklistItemEditable{c}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/checklist-items", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var item v1.ChecklistItemCreateResponse
	test.DecodeResponse(t, &r, &item)

	if r.Code == http.StatusCreated {
		return item.Data[0]
	}

	return v1.ChecklistItemResponse{}
}

// TestChecklistItemsDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestChecklistItemsDBClosed() {
	tests := []struct {
		name string             // Name of the test
		test func(t *testing.T) // Code to run
	}{
		{
			"Creation fails",
			func(t *testing.T) {
				createTestChecklistItem(t, v1.ChecklistItemEditable{}, http.StatusInternalServerError)
			},
		},
		{
			"GET fails",
			func(t *testing.T) {
				recorder := test.Request(t, http.MethodGet, "http://example.com/v1/checklist-items", "")
				test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)

				var response v1.ChecklistItemListResponse
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

// TestChecklistItemsOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestChecklistItemsOptions() {
	tests := []struct {
		name   string
		id     string // path at the checklist items endpoint to test
		status int    // Expected HTTP status code
	}{
		{"No checklist item with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Checklist item exists", createTestChecklistItem(suite.T(), v1.ChecklistItemEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/checklist-items", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

// TestChecklistItemsGetSingle verifies that requests for the resource endpoints are
// handled correctly.
func (suite *TestSuiteStandard) TestChecklistItemsGetSingle() {
	item := createTestChecklistItem(suite.T(), v1.ChecklistItemEditable{})

	tests := []struct {
		name   string
		id     string
		status int
		method string
	}{
		{"GET Existing checklist item", item.Data.ID.String(), http.StatusOK, http.MethodGet},
		{"GET ID nil", uuid.Nil.String(), http.StatusNotFound, http.MethodGet},
		{"GET No checklist item with this ID", uuid.New().String(), http.StatusNotFound, http.MethodGet},
		{"GET Invalid ID (negative number)", "-56", http.StatusBadRequest, http.MethodGet},
		{"GET Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodGet},
		{"PATCH Invalid ID (positive number)", "23", http.StatusBadRequest, http.MethodPatch},
		{"PATCH Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodPatch},
		{"DELETE Invalid ID (positive number)", "23", http.StatusBadRequest, http.MethodDelete},
		{"DELETE Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodDelete},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v1/checklist-items/%s", tt.id), "")

			var item v1.ChecklistItemResponse
			test.DecodeResponse(t, &r, &item)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestChecklistItemsCreate() {
	tests := []struct {
		name     string
		item     v1.ChecklistItemEditable
		status   int
		envelope string // Envelope the item is stored with
		err      error  // Error expected in the response
	}{
		{"Default envelope", v1.ChecklistItemEditable{}, http.StatusCreated, "🏠", nil},
		{"Envelope by name", v1.ChecklistItemEditable{Envelope: "Еда"}, http.StatusCreated, "🥬", nil},
		{"Envelope by emoji", v1.ChecklistItemEditable{Envelope: "🎓"}, http.StatusCreated, "🎓", nil},
		{"Unknown envelope", v1.ChecklistItemEditable{Envelope: "Отпуск"}, http.StatusBadRequest, "", types.ErrUnknownEnvelope},
		{"Invalid list", v1.ChecklistItemEditable{List: "maybe"}, http.StatusBadRequest, "", models.ErrChecklistListInvalid},
		{"Negative expected", v1.ChecklistItemEditable{Expected: decimal.NewFromInt(-1)}, http.StatusBadRequest, "", models.ErrExpectedNegative},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			body := []v1.ChecklistItemEditable{tt.item}
			if body[0].List == "" {
				body[0].List = models.Wants
			}
			if body[0].Category == "" {
				body[0].Category = uuid.NewString()
			}

			r := test.Request(t, http.MethodPost, "http://example.com/v1/checklist-items", body)
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.ChecklistItemCreateResponse
			test.DecodeResponse(t, &r, &response)
			require.Len(t, response.Data, 1)

			if tt.err != nil {
				assert.Equal(t, tt.err.Error(), *response.Data[0].Error)
				return
			}

			item := response.Data[0].Data
			assert.Equal(t, tt.envelope, item.Envelope)
			assert.True(t, item.Diff.Equal(item.Expected), "A new item has spent nothing")
			assert.Equal(t, fmt.Sprintf("http://example.com/v1/checklist-items/%s", item.ID), item.Links.Self)
		})
	}
}

func (suite *TestSuiteStandard) TestChecklistItemsCreateInvalidBody() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/checklist-items", `{ "category": 2 }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/checklist-items", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestChecklistItemsGetFilter() {
	_ = createTestChecklistItem(suite.T(), v1.ChecklistItemEditable{
		List:          models.Wants,
		Category:      "Кино",
		Envelope:      "🏠",
		DailyCategory: "Бонусы и кафе",
		Done:          true,
	})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"All", "", 24},
		{"Needs", "list=needs", 10},
		{"Wants", "list=wants", 14},
		{"Category", "category=" + url.QueryEscape("Кино"), 1},
		{"Envelope by name", "envelope=" + url.QueryEscape("Еда"), 1},
		{"Envelope by emoji", "envelope=" + url.QueryEscape("🛁"), 4},
		{"Daily category", "dailyCategory=" + url.QueryEscape("Бонусы и кафе"), 1},
		{"Done", "done=true", 1},
		{"Not done", "done=false", 23},
		{"Offset", "offset=20", 4},
		{"Limit", "limit=3", 3},
		{"Offset and limit", "list=needs&offset=8&limit=5", 2},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/checklist-items?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.ChecklistItemListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len, "Request ID: %s", r.Result().Header.Get("x-request-id"))
		})
	}
}

func (suite *TestSuiteStandard) TestChecklistItemsGetFilterErrors() {
	tests := []struct {
		name  string
		query string
	}{
		{"Unknown envelope", "envelope=" + url.QueryEscape("Отпуск")},
		{"Done is not a bool", "done=maybe"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/checklist-items?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestChecklistItemsUpdate() {
	item := createTestChecklistItem(suite.T(), v1.ChecklistItemEditable{
		Category: "Кино",
		Expected: decimal.NewFromInt(1500),
		Envelope: "🏠",
	})

	r := test.Request(suite.T(), http.MethodPatch, item.Data.Links.Self, map[string]any{
		"expected": "2000",
		"done":     true,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.ChecklistItemResponse
	test.DecodeResponse(suite.T(), &r, &updated)

	assert.True(suite.T(), decimal.NewFromInt(2000).Equal(updated.Data.Expected))
	assert.True(suite.T(), decimal.NewFromInt(2000).Equal(updated.Data.Diff))
	assert.True(suite.T(), updated.Data.Done)
	assert.Equal(suite.T(), "Кино", updated.Data.Category, "Fields that are not in the body must not change")
	assert.Equal(suite.T(), "🏠", updated.Data.Envelope)
}

func (suite *TestSuiteStandard) TestChecklistItemsUpdateFails() {
	item := createTestChecklistItem(suite.T(), v1.ChecklistItemEditable{})

	tests := []struct {
		name string
		body any
	}{
		{"Empty category", `{ "category": "" }`},
		{"Invalid list", `{ "list": "someday" }`},
		{"Broken body", `{ "category": 2 }`},
		{"Unknown envelope", `{ "envelope": "Отпуск" }`},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, item.Data.Links.Self, tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestChecklistItemsDelete() {
	item := createTestChecklistItem(suite.T(), v1.ChecklistItemEditable{})

	r := test.Request(suite.T(), http.MethodDelete, item.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, item.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
