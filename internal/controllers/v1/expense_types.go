package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/konverty/backend/internal/models"
	"github.com/konverty/backend/internal/reconcile"
	kuuid "github.com/konverty/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseEditable represents all user configurable parameters
type ExpenseEditable struct {
	ExpenseCategoryID uuid.UUID       `json:"expenseCategoryId" example:"1e777d24-3f5b-4c43-8000-04f65f895578"` // ID of the expense category. Entries whose comment names an expense category are filed under that one instead.
	Day               int             `json:"day" example:"14" minimum:"1" maximum:"31"`                        // Day of month
	Position          int             `json:"position" example:"0"`                                             // Position among the entries of the day
	Amount            decimal.Decimal `json:"amount" example:"450" default:"0"`                                 // Amount spent
	Comment           string          `json:"comment" example:"Кафе"`                                           // Comment, usually the checklist category the money was spent on
}

func (editable ExpenseEditable) model() models.Expense {
	return models.Expense{
		ExpenseCategoryID: editable.ExpenseCategoryID,
		Day:               editable.Day,
		Position:          editable.Position,
		Amount:            editable.Amount,
		Comment:           editable.Comment,
	}
}

type ExpenseLinks struct {
	Self            string `json:"self" example:"https://example.com/api/v1/expenses/3b1ea324-d438-4419-882a-2fc91d71772f"`                      // The entry itself
	ExpenseCategory string `json:"expenseCategory" example:"https://example.com/api/v1/expense-categories/1e777d24-3f5b-4c43-8000-04f65f895578"` // The expense category of the entry
}

type Expense struct {
	models.DefaultModel
	ExpenseEditable
	Links ExpenseLinks `json:"links"`

	// These fields are computed
	Week        int    `json:"week" example:"2"`            // Week map the entry is filed under
	Planned     bool   `json:"planned" example:"false"`     // Is the entry after the cutoff day? Planned entries are never reconciled.
	PlannedDate string `json:"plannedDate" example:"14.10"` // Date of a planned entry, "DD.MM"
}

func newExpense(c *gin.Context, model models.Expense) Expense {
	url := c.GetString(string(models.DBContextURL))

	return Expense{
		DefaultModel: model.DefaultModel,
		ExpenseEditable: ExpenseEditable{
			ExpenseCategoryID: model.ExpenseCategoryID,
			Day:               model.Day,
			Position:          model.Position,
			Amount:            model.Amount,
			Comment:           model.Comment,
		},
		Week:        model.Week(),
		Planned:     model.Planned,
		PlannedDate: model.PlannedDate,
		Links: ExpenseLinks{
			Self:            fmt.Sprintf("%s/v1/expenses/%s", url, model.ID),
			ExpenseCategory: fmt.Sprintf("%s/v1/expense-categories/%s", url, model.ExpenseCategoryID),
		},
	}
}

// markPlanned flags entries after the cutoff day as planned.
func markPlanned(e *models.Expense, cutoffDay int, month time.Month) {
	e.Planned = e.Day > cutoffDay
	e.PlannedDate = ""

	if e.Planned {
		e.PlannedDate = fmt.Sprintf("%02d.%02d", e.Day, int(month))
	}
}

// route files the entry under the expense category named by its comment.
// Entries whose comment names no category stay where they are.
func route(e *models.Expense, categories []models.ExpenseCategory) {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}

	if i := reconcile.RouteComment(e.Comment, names); i >= 0 {
		e.ExpenseCategoryID = categories[i].ID
	}
}

type ExpenseListResponse struct {
	Data       []Expense   `json:"data"`                                                          // List of expenses
	Error      *string     `json:"error" example:"the specified ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type ExpenseCreateResponse struct {
	Data  []ExpenseResponse `json:"data"`                                                          // List of the created expenses or their respective error
	Error *string           `json:"error" example:"the specified ID is not a valid UUID"` // The error, if any occurred
}

func (c *ExpenseCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	c.Data = append(c.Data, ExpenseResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ExpenseResponse struct {
	Data  *Expense `json:"data"`                                                          // Data for the expense
	Error *string  `json:"error" example:"the specified ID is not a valid UUID"` // The error, if any occurred
}

type ExpenseQueryFilter struct {
	ExpenseCategoryID kuuid.UUID `form:"category"`                 // By ID of the expense category
	Day               int        `form:"day"`                      // By day of month
	Week              int        `form:"week" filterField:"false"` // By week map (1-4)
	Planned           bool       `form:"planned"`                  // Is the entry planned?
	Comment           string     `form:"comment"`                  // By comment
	Offset            uint       `form:"offset" filterField:"false"`
	Limit             int        `form:"limit" filterField:"false"`
}

func (f ExpenseQueryFilter) model() models.Expense {
	return models.Expense{
		ExpenseCategoryID: f.ExpenseCategoryID.UUID,
		Day:               f.Day,
		Planned:           f.Planned,
		Comment:           f.Comment,
	}
}
