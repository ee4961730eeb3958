package models

import (
	"encoding/json"
	"strings"

	"github.com/konverty/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ExpenseCategory is a bucket of the daily ledger, e.g. "Продукты".
type ExpenseCategory struct {
	DefaultModel
	Position int             `json:"position"`
	Name     string          `json:"name" gorm:"uniqueIndex"`
	Plan     decimal.Decimal `json:"plan" gorm:"type:DECIMAL(20,8)"`
	Color    string          `json:"color"`
	Envelope string          `json:"envelope"` // Name of the envelope
}

func (e *ExpenseCategory) BeforeSave(_ *gorm.DB) error {
	e.Name = strings.TrimSpace(e.Name)
	e.Color = strings.TrimSpace(e.Color)
	e.Envelope = strings.TrimSpace(e.Envelope)

	if e.Name == "" {
		return ErrExpenseCategoryNameEmpty
	}

	if e.Envelope != "" {
		envelope, err := types.ParseEnvelope(e.Envelope)
		if err != nil {
			return err
		}
		e.Envelope = envelope.Name
	}

	return nil
}

// Expenses returns all entries of the category ordered by day.
func (e ExpenseCategory) Expenses(db *gorm.DB) ([]Expense, error) {
	var expenses []Expense
	err := db.Where(&Expense{ExpenseCategoryID: e.ID}).Order("day ASC, position ASC, created_at ASC").Find(&expenses).Error
	if err != nil {
		return nil, err
	}

	return expenses, nil
}

// Export returns all expense categories for export
func (ExpenseCategory) Export() (json.RawMessage, error) {
	var categories []ExpenseCategory
	err := DB.Order("position ASC").Find(&categories).Error
	if err != nil {
		return nil, err
	}

	return json.Marshal(&categories)
}
