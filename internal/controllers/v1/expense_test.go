package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	v1 "github.com/konverty/backend/internal/controllers/v1"
	"github.com/konverty/backend/internal/models"
	"github.com/konverty/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestExpense(t *testing.T, e v1.ExpenseEditable, expectedStatus ...int) v1.ExpenseResponse {
	if e.ExpenseCategoryID == uuid.Nil {
		e.ExpenseCategoryID = createTestExpenseCategory(t, v1.ExpenseCategoryEditable{}).Data.ID
	}

	if e.Day == 0 {
		e.Day = 1
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.ExpenseEditable{e}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/expenses", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var expense v1.ExpenseCreateResponse
	test.DecodeResponse(t, &r, &expense)

	if r.Code == http.StatusCreated {
		return expense.Data[0]
	}

	return v1.ExpenseResponse{}
}

// TestExpensesDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestExpensesDBClosed() {
	tests := []struct {
		name string             // Name of the test
		test func(t *testing.T) // Code to run
	}{
		{
			"Creation fails",
			func(t *testing.T) {
				createTestExpense(t, v1.ExpenseEditable{ExpenseCategoryID: uuid.New()}, http.StatusInternalServerError)
			},
		},
		{
			"GET fails",
			func(t *testing.T) {
				recorder := test.Request(t, http.MethodGet, "http://example.com/v1/expenses", "")
				test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)

				var response v1.ExpenseListResponse
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

// TestExpensesOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestExpensesOptions() {
	tests := []struct {
		name   string
		id     string // path at the expenses endpoint to test
		status int    // Expected HTTP status code
	}{
		{"No expense with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Expense exists", createTestExpense(suite.T(), v1.ExpenseEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/expenses", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

func (suite *TestSuiteStandard) TestExpensesGetSingle() {
	expense := createTestExpense(suite.T(), v1.ExpenseEditable{Day: 9})

	tests := []struct {
		name   string
		id     string
		status int
		method string
	}{
		{"GET Existing expense", expense.Data.ID.String(), http.StatusOK, http.MethodGet},
		{"GET ID nil", uuid.Nil.String(), http.StatusNotFound, http.MethodGet},
		{"GET No expense with this ID", uuid.New().String(), http.StatusNotFound, http.MethodGet},
		{"GET Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodGet},
		{"PATCH Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodPatch},
		{"PATCH No expense with this ID", uuid.New().String(), http.StatusNotFound, http.MethodPatch},
		{"DELETE Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodDelete},
		{"DELETE No expense with this ID", uuid.New().String(), http.StatusNotFound, http.MethodDelete},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v1/expenses/%s", tt.id), "")

			var expense v1.ExpenseResponse
			test.DecodeResponse(t, &r, &expense)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}

	assert.Equal(suite.T(), 2, expense.Data.Week)
	assert.Equal(suite.T(), fmt.Sprintf("http://example.com/v1/expense-categories/%s", expense.Data.ExpenseCategoryID), expense.Data.Links.ExpenseCategory)
}

func (suite *TestSuiteStandard) TestExpensesCreateFails() {
	category := createTestExpenseCategory(suite.T(), v1.ExpenseCategoryEditable{})

	tests := []struct {
		name    string
		expense v1.ExpenseEditable
		err     error
	}{
		{"Day before the month", v1.ExpenseEditable{ExpenseCategoryID: category.Data.ID, Day: -1}, models.ErrDayInvalid},
		{"Day after the month", v1.ExpenseEditable{ExpenseCategoryID: category.Data.ID, Day: 32}, models.ErrDayInvalid},
		{"Negative amount", v1.ExpenseEditable{ExpenseCategoryID: category.Data.ID, Day: 1, Amount: decimal.NewFromInt(-5)}, models.ErrAmountNegative},
		{"Category does not exist", v1.ExpenseEditable{ExpenseCategoryID: uuid.New(), Day: 1}, models.ErrExpenseCategoryDoesNotExist},
		{"Comment names no category", v1.ExpenseEditable{Day: 1, Comment: "Кино"}, models.ErrExpenseCategoryDoesNotExist},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/expenses", []v1.ExpenseEditable{tt.expense})
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var response v1.ExpenseCreateResponse
			test.DecodeResponse(t, &r, &response)
			require.Len(t, response.Data, 1)
			assert.Equal(t, tt.err.Error(), *response.Data[0].Error)
		})
	}

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/expenses", `[{ "day": "first" }]`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

// TestExpensesCreateQuickIncrement verifies that a realized entry is added
// to the checklist item named like its comment right away.
func (suite *TestSuiteStandard) TestExpensesCreateQuickIncrement() {
	groceries := getExpenseCategory(suite.T(), "Продукты")

	expense := createTestExpense(suite.T(), v1.ExpenseEditable{
		ExpenseCategoryID: groceries.ID,
		Day:               3,
		Amount:            decimal.NewFromInt(450),
		Comment:           "Продукты",
	})
	assert.False(suite.T(), expense.Data.Planned)
	assert.Equal(suite.T(), "", expense.Data.PlannedDate)

	item := getChecklistItem(suite.T(), "Продукты")
	assert.True(suite.T(), decimal.NewFromInt(450).Equal(item.Actual.Decimal), "Actual is %s", item.Actual.Decimal)
	assert.True(suite.T(), decimal.NewFromInt(19550).Equal(item.Diff), "Diff is %s", item.Diff)
}

// TestExpensesCreatePlanned verifies that entries after the cutoff day are
// planned and not counted.
func (suite *TestSuiteStandard) TestExpensesCreatePlanned() {
	groceries := getExpenseCategory(suite.T(), "Продукты")

	expense := createTestExpense(suite.T(), v1.ExpenseEditable{
		ExpenseCategoryID: groceries.ID,
		Day:               20,
		Amount:            decimal.NewFromInt(450),
		Comment:           "Продукты",
	})
	assert.True(suite.T(), expense.Data.Planned)
	assert.Equal(suite.T(), fmt.Sprintf("20.%02d", int(time.Now().Month())), expense.Data.PlannedDate)
	assert.Equal(suite.T(), 3, expense.Data.Week)

	item := getChecklistItem(suite.T(), "Продукты")
	assert.True(suite.T(), item.Actual.Decimal.IsZero(), "Actual is %s", item.Actual.Decimal)

	// The cutoff day itself is not planned
	expense = createTestExpense(suite.T(), v1.ExpenseEditable{
		ExpenseCategoryID: groceries.ID,
		Day:               models.DefaultCutoffDay,
	})
	assert.False(suite.T(), expense.Data.Planned)
}

// TestExpensesCreateRoutesComment verifies that entries are filed under the
// expense category their comment names.
func (suite *TestSuiteStandard) TestExpensesCreateRoutesComment() {
	taxi := getExpenseCategory(suite.T(), "Такси")
	groceries := getExpenseCategory(suite.T(), "Продукты")

	expense := createTestExpense(suite.T(), v1.ExpenseEditable{
		ExpenseCategoryID: taxi.ID,
		Day:               2,
		Amount:            decimal.NewFromInt(300),
		Comment:           " продукты ",
	})
	assert.Equal(suite.T(), groceries.ID, expense.Data.ExpenseCategoryID)
	assert.Equal(suite.T(), "продукты", expense.Data.Comment)

	// Entries without a category are fine if their comment names one
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/expenses", []v1.ExpenseEditable{{
		Day:     2,
		Amount:  decimal.NewFromInt(200),
		Comment: "Такси",
	}})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.ExpenseCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	expense = response.Data[0]
	assert.Equal(suite.T(), taxi.ID, expense.Data.ExpenseCategoryID)
}

// TestExpensesCreateReconciles verifies that new entries leave the
// checklists fully reconciled.
func (suite *TestSuiteStandard) TestExpensesCreateReconciles() {
	groceries := getExpenseCategory(suite.T(), "Продукты")
	subscriptions := getExpenseCategory(suite.T(), "Подписки")

	// Overrides win over the checklist item named like the comment
	_ = createTestExpense(suite.T(), v1.ExpenseEditable{
		ExpenseCategoryID: groceries.ID,
		Day:               1,
		Amount:            decimal.NewFromInt(1000),
		Comment:           "Дом",
	})
	assert.True(suite.T(), getChecklistItem(suite.T(), "Дом").Actual.Decimal.IsZero())
	assert.True(suite.T(), decimal.NewFromInt(1000).Equal(getChecklistItem(suite.T(), "Прочее").Actual.Decimal))

	// Entries without a comment are split by the fixed table
	_ = createTestExpense(suite.T(), v1.ExpenseEditable{
		ExpenseCategoryID: subscriptions.ID,
		Day:               1,
		Amount:            decimal.NewFromInt(3130),
	})

	expected := map[string]int64{"ChatGPT": 2600, "VK Music": 200, "Telegram": 330, "Подписки": 0}
	for category, amount := range expected {
		got := getChecklistItem(suite.T(), category).Actual.Decimal
		assert.True(suite.T(), decimal.NewFromInt(amount).Equal(got), "%s is %s, expected %d", category, got, amount)
	}

	// Planned entries change nothing
	_ = createTestExpense(suite.T(), v1.ExpenseEditable{
		ExpenseCategoryID: subscriptions.ID,
		Day:               25,
		Amount:            decimal.NewFromInt(3130),
	})
	assert.True(suite.T(), decimal.NewFromInt(2600).Equal(getChecklistItem(suite.T(), "ChatGPT").Actual.Decimal))
}

func (suite *TestSuiteStandard) TestExpensesUpdate() {
	groceries := getExpenseCategory(suite.T(), "Продукты")
	taxi := getExpenseCategory(suite.T(), "Такси")

	expense := createTestExpense(suite.T(), v1.ExpenseEditable{
		ExpenseCategoryID: groceries.ID,
		Day:               2,
		Amount:            decimal.NewFromInt(500),
	})
	assert.True(suite.T(), getChecklistItem(suite.T(), "Кафе").Actual.Decimal.IsZero())

	// The comment now names a checklist category
	r := test.Request(suite.T(), http.MethodPatch, expense.Data.Links.Self, `{ "comment": "Кафе" }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.ExpenseResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.Equal(suite.T(), groceries.ID, updated.Data.ExpenseCategoryID, "Comments that name no expense category do not move the entry")
	assert.True(suite.T(), decimal.NewFromInt(500).Equal(getChecklistItem(suite.T(), "Кафе").Actual.Decimal))

	// Moving the entry after the cutoff day plans it
	r = test.Request(suite.T(), http.MethodPatch, expense.Data.Links.Self, `{ "day": 25 }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.True(suite.T(), updated.Data.Planned)
	assert.Equal(suite.T(), 4, updated.Data.Week)
	assert.True(suite.T(), getChecklistItem(suite.T(), "Кафе").Actual.Decimal.IsZero())

	// A comment naming an expense category moves the entry
	r = test.Request(suite.T(), http.MethodPatch, expense.Data.Links.Self, `{ "comment": "Такси", "day": 4 }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.Equal(suite.T(), taxi.ID, updated.Data.ExpenseCategoryID)
	assert.False(suite.T(), updated.Data.Planned)
	assert.Equal(suite.T(), "", updated.Data.PlannedDate)
	assert.True(suite.T(), decimal.NewFromInt(500).Equal(getChecklistItem(suite.T(), "Такси").Actual.Decimal))
}

func (suite *TestSuiteStandard) TestExpensesUpdateFails() {
	expense := createTestExpense(suite.T(), v1.ExpenseEditable{})

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Invalid day", `{ "day": 0 }`, http.StatusBadRequest},
		{"Negative amount", `{ "amount": "-3" }`, http.StatusBadRequest},
		{"Broken body", `{ "day": "first" }`, http.StatusBadRequest},
		{"Empty body", "", http.StatusBadRequest},
		{"Category does not exist", fmt.Sprintf(`{ "expenseCategoryId": "%s" }`, uuid.New()), http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, expense.Data.Links.Self, tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestExpensesDelete() {
	groceries := getExpenseCategory(suite.T(), "Продукты")

	expense := createTestExpense(suite.T(), v1.ExpenseEditable{
		ExpenseCategoryID: groceries.ID,
		Day:               2,
		Amount:            decimal.NewFromInt(500),
		Comment:           "Кафе",
	})
	assert.True(suite.T(), decimal.NewFromInt(500).Equal(getChecklistItem(suite.T(), "Кафе").Actual.Decimal))

	r := test.Request(suite.T(), http.MethodDelete, expense.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.True(suite.T(), getChecklistItem(suite.T(), "Кафе").Actual.Decimal.IsZero())

	r = test.Request(suite.T(), http.MethodGet, expense.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestExpensesGetFilter() {
	a := createTestExpenseCategory(suite.T(), v1.ExpenseCategoryEditable{})
	b := createTestExpenseCategory(suite.T(), v1.ExpenseCategoryEditable{})

	_ = createTestExpense(suite.T(), v1.ExpenseEditable{ExpenseCategoryID: a.Data.ID, Day: 3, Amount: decimal.NewFromInt(1)})
	_ = createTestExpense(suite.T(), v1.ExpenseEditable{ExpenseCategoryID: a.Data.ID, Day: 10, Amount: decimal.NewFromInt(2)})
	_ = createTestExpense(suite.T(), v1.ExpenseEditable{ExpenseCategoryID: b.Data.ID, Day: 20, Amount: decimal.NewFromInt(3), Comment: "Билеты"})
	_ = createTestExpense(suite.T(), v1.ExpenseEditable{ExpenseCategoryID: b.Data.ID, Day: 31, Amount: decimal.NewFromInt(4)})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"All", "", 4},
		{"Category", fmt.Sprintf("category=%s", a.Data.ID), 2},
		{"Day", "day=20", 1},
		{"Week 1", "week=1", 1},
		{"Week 2", "week=2", 1},
		{"Week 4", "week=4", 1},
		{"Planned", "planned=true", 3},
		{"Realized", "planned=false", 1},
		{"Comment", "comment=%D0%91%D0%B8%D0%BB%D0%B5%D1%82%D1%8B", 1},
		{"Category and week", fmt.Sprintf("category=%s&week=3", b.Data.ID), 1},
		{"Limit", "limit=1", 1},
		{"Offset", "offset=3", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/expenses?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.ExpenseListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}

	for _, query := range []string{"week=0", "week=5", "category=NotAUUID", "day=first"} {
		suite.T().Run(query, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/expenses?%s", query), "")
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}
