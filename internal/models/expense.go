package models

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/konverty/backend/internal/reconcile"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var plannedDate = regexp.MustCompile(`^[0-9]{2}\.[0-9]{2}$`)

// Expense is a single entry in the daily ledger.
type Expense struct {
	DefaultModel
	ExpenseCategory   ExpenseCategory `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	ExpenseCategoryID uuid.UUID       `json:"expenseCategoryId" gorm:"index"`
	Day               int             `json:"day"`
	Position          int             `json:"position"`
	Amount            decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"`
	Comment           string          `json:"comment"`
	Planned           bool            `json:"planned"`
	PlannedDate       string          `json:"plannedDate"` // DD.MM
}

func (e *Expense) BeforeSave(_ *gorm.DB) error {
	e.Comment = strings.TrimSpace(e.Comment)
	e.PlannedDate = strings.TrimSpace(e.PlannedDate)

	if e.Day < 1 || e.Day > 31 {
		return ErrDayInvalid
	}

	if e.Amount.IsNegative() {
		return ErrAmountNegative
	}

	if e.PlannedDate != "" && !plannedDate.MatchString(e.PlannedDate) {
		return ErrPlannedDateInvalid
	}

	return nil
}

// Week returns the number of the week (1-4) the entry is filed under.
func (e Expense) Week() int {
	return reconcile.WeekOfDay(e.Day)
}

// Item returns the entry as value for the reconciliation engine.
func (e Expense) Item() reconcile.ExpenseItem {
	return reconcile.ExpenseItem{
		Amount:      e.Amount,
		Comment:     e.Comment,
		IsPlanned:   e.Planned,
		PlannedDate: e.PlannedDate,
	}
}

// Export returns all expenses for export
func (Expense) Export() (json.RawMessage, error) {
	var expenses []Expense
	err := DB.Order("day ASC, position ASC").Find(&expenses).Error
	if err != nil {
		return nil, err
	}

	return json.Marshal(&expenses)
}

// Ledger returns all expense categories with their entries in the shape
// the reconciliation engine works on. Totals and percentages are computed.
func Ledger(db *gorm.DB) ([]reconcile.Expense, error) {
	var categories []ExpenseCategory
	err := db.Order("position ASC, created_at ASC").Find(&categories).Error
	if err != nil {
		return nil, err
	}

	var entries []Expense
	err = db.Order("day ASC, position ASC, created_at ASC").Find(&entries).Error
	if err != nil {
		return nil, err
	}

	byCategory := make(map[uuid.UUID][]Expense, len(categories))
	for _, entry := range entries {
		byCategory[entry.ExpenseCategoryID] = append(byCategory[entry.ExpenseCategoryID], entry)
	}

	ledger := make([]reconcile.Expense, 0, len(categories))
	for _, category := range categories {
		ledger = append(ledger, LedgerBucket(category, byCategory[category.ID]))
	}

	return ledger, nil
}

// LedgerBucket files the entries of a category into its week maps.
func LedgerBucket(category ExpenseCategory, entries []Expense) reconcile.Expense {
	bucket := reconcile.Expense{
		Category: category.Name,
		Plan:     category.Plan,
		Color:    category.Color,
		Envelope: category.Envelope,
		Week1:    reconcile.Week{},
		Week2:    reconcile.Week{},
		Week3:    reconcile.Week{},
		Week4:    reconcile.Week{},
	}

	for _, entry := range entries {
		week := bucket.Week(entry.Week())
		day := reconcile.DayKey(entry.Day)
		week[day] = append(week[day], entry.Item())
	}

	bucket.Total = reconcile.BucketTotal(bucket, reconcile.WholeMonth)
	bucket.Percent = reconcile.Percent(bucket.Total, bucket.Plan)
	return bucket
}
