package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/konverty/backend/internal/models"
	"github.com/konverty/backend/internal/reconcile"
	"github.com/konverty/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const defaultCategoryColor = "bg-white"

// ExpenseCategoryEditable represents all user configurable parameters
type ExpenseCategoryEditable struct {
	Position int             `json:"position" example:"2"`                  // Position in the ledger
	Name     string          `json:"name" example:"Салоны красоты"`         // Name of the expense category
	Plan     decimal.Decimal `json:"plan" example:"7000" default:"0"`       // Planned amount for the month
	Color    string          `json:"color" example:"bg-pink-100"`           // Background color class
	Envelope string          `json:"envelope" example:"Здоровье и красота"` // Envelope, as name or emoji
}

func (editable ExpenseCategoryEditable) model() models.ExpenseCategory {
	return models.ExpenseCategory{
		Position: editable.Position,
		Name:     editable.Name,
		Plan:     editable.Plan,
		Color:    editable.Color,
		Envelope: editable.Envelope,
	}
}

type ExpenseCategoryLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/expense-categories/3b1ea324-d438-4419-882a-2fc91d71772f"`    // The expense category itself
	Expenses string `json:"expenses" example:"https://example.com/api/v1/expenses?category=3b1ea324-d438-4419-882a-2fc91d71772f"` // Entries of this expense category
}

type ExpenseCategory struct {
	models.DefaultModel
	ExpenseCategoryEditable
	Links ExpenseCategoryLinks `json:"links"`

	// These fields are computed
	Week1       reconcile.Week  `json:"week1"`                       // Entries of days 1 to 7
	Week2       reconcile.Week  `json:"week2"`                       // Entries of days 8 to 15
	Week3       reconcile.Week  `json:"week3"`                       // Entries of days 16 to 22
	Week4       reconcile.Week  `json:"week4"`                       // Entries of day 23 until the end of the month
	Total       decimal.Decimal `json:"total" example:"5123"`        // Sum of all entries in the requested period
	Percent     decimal.Decimal `json:"percent" example:"73"`        // Total in percent of the plan
	DerivedPlan decimal.Decimal `json:"derivedPlan" example:"16400"` // Plan derived from the checklist items this category is made of
}

// expenseCategoryContext holds what is needed to compute the fields of
// an expense category that are not stored.
type expenseCategoryContext struct {
	period       reconcile.Period
	needs, wants []reconcile.ChecklistItem
}

func newExpenseCategoryContext(db *gorm.DB, period reconcile.Period) (expenseCategoryContext, error) {
	needs, wants, err := models.Checklists(db)
	if err != nil {
		return expenseCategoryContext{}, err
	}

	return expenseCategoryContext{
		period: period,
		needs:  models.ChecklistItems(needs),
		wants:  models.ChecklistItems(wants),
	}, nil
}

func newExpenseCategory(c *gin.Context, db *gorm.DB, ctx expenseCategoryContext, model models.ExpenseCategory) (ExpenseCategory, error) {
	url := c.GetString(string(models.DBContextURL))

	entries, err := model.Expenses(db)
	if err != nil {
		return ExpenseCategory{}, err
	}

	bucket := models.LedgerBucket(model, entries)
	total := reconcile.BucketTotal(bucket, ctx.period)

	return ExpenseCategory{
		DefaultModel: model.DefaultModel,
		ExpenseCategoryEditable: ExpenseCategoryEditable{
			Position: model.Position,
			Name:     model.Name,
			Plan:     model.Plan,
			Color:    model.Color,
			Envelope: model.Envelope,
		},
		Links: ExpenseCategoryLinks{
			Self:     fmt.Sprintf("%s/v1/expense-categories/%s", url, model.ID),
			Expenses: fmt.Sprintf("%s/v1/expenses?category=%s", url, model.ID),
		},
		Week1:       bucket.Week1,
		Week2:       bucket.Week2,
		Week3:       bucket.Week3,
		Week4:       bucket.Week4,
		Total:       total,
		Percent:     reconcile.Percent(total, model.Plan),
		DerivedPlan: reconcile.PlanFor(model.Name, ctx.needs, ctx.wants),
	}, nil
}

type ExpenseCategoryListResponse struct {
	Data       []ExpenseCategory `json:"data"`                                                          // List of expense categories
	Error      *string           `json:"error" example:"the specified ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination       `json:"pagination"`                                                    // Pagination information
}

type ExpenseCategoryCreateResponse struct {
	Data  []ExpenseCategoryResponse `json:"data"`                                                          // List of the created expense categories or their respective error
	Error *string                   `json:"error" example:"the specified ID is not a valid UUID"` // The error, if any occurred
}

func (c *ExpenseCategoryCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	c.Data = append(c.Data, ExpenseCategoryResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ExpenseCategoryResponse struct {
	Data  *ExpenseCategory `json:"data"`                                                          // Data for the expense category
	Error *string          `json:"error" example:"the specified ID is not a valid UUID"` // The error, if any occurred
}

// ExpenseCategoryPeriod selects the period the totals are computed for.
type ExpenseCategoryPeriod struct {
	Period int `form:"period" filterField:"false"` // 0 for the whole month, 1 for days 1-15, 2 for days 16-31
}

func (p ExpenseCategoryPeriod) period() (reconcile.Period, error) {
	switch reconcile.Period(p.Period) {
	case reconcile.WholeMonth, reconcile.FirstHalf, reconcile.SecondHalf:
		return reconcile.Period(p.Period), nil
	default:
		return 0, errPeriodInvalid
	}
}

type ExpenseCategoryQueryFilter struct {
	Name     string `form:"name"`                       // By name
	Envelope string `form:"envelope"`                   // By envelope name or emoji
	Period   int    `form:"period" filterField:"false"` // Period the totals are computed for
	Offset   uint   `form:"offset" filterField:"false"` // The offset of the first expense category returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`  // Maximum number of expense categories to return. Defaults to 50.
}

func (f ExpenseCategoryQueryFilter) model() (models.ExpenseCategory, error) {
	var name string
	if f.Envelope != "" {
		envelope, err := types.ParseEnvelope(f.Envelope)
		if err != nil {
			return models.ExpenseCategory{}, err
		}
		name = envelope.Name
	}

	return models.ExpenseCategory{
		Name:     f.Name,
		Envelope: name,
	}, nil
}
