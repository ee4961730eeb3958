package models

import (
	"encoding/json"

	"github.com/konverty/backend/internal/reconcile"
	"github.com/konverty/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ArchivedMonth is the snapshot of a closed month.
type ArchivedMonth struct {
	ID string `json:"id" gorm:"primaryKey" example:"archive_2026_10"`
	Timestamps
	Name            string          `json:"name" example:"Октябрь 2026"`
	Month           types.Month     `json:"month"`
	Data            json.RawMessage `json:"data"`
	EnvelopeBalance decimal.Decimal `json:"envelopeBalance" gorm:"type:DECIMAL(20,8)"`
	SavingsBalance  decimal.Decimal `json:"savingsBalance" gorm:"type:DECIMAL(20,8)"`
	TotalBalance    decimal.Decimal `json:"totalBalance" gorm:"type:DECIMAL(20,8)"`
}

// Snapshot is the content of an archived month.
type Snapshot struct {
	DailyExpenses []reconcile.Expense        `json:"dailyExpenses"`
	NeedsItems    []reconcile.ChecklistItem  `json:"needsItems"`
	WantsItems    []reconcile.ChecklistItem  `json:"wantsItems"`
	IncomeSources []IncomeSource             `json:"incomeSources"`
	Documents     map[string]json.RawMessage `json:"documents"`
}

// TakeSnapshot collects the current state of the budget.
func TakeSnapshot(db *gorm.DB) (Snapshot, error) {
	ledger, err := Ledger(db)
	if err != nil {
		return Snapshot{}, err
	}

	needs, wants, err := Checklists(db)
	if err != nil {
		return Snapshot{}, err
	}

	var sources []IncomeSource
	err = db.Order("position ASC").Find(&sources).Error
	if err != nil {
		return Snapshot{}, err
	}

	documents, err := Documents(db)
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{
		DailyExpenses: ledger,
		NeedsItems:    ChecklistItems(needs),
		WantsItems:    ChecklistItems(wants),
		IncomeSources: sources,
		Documents:     documents,
	}, nil
}

// Export returns all archived months for export
func (ArchivedMonth) Export() (json.RawMessage, error) {
	var archive []ArchivedMonth
	err := DB.Order("month DESC").Find(&archive).Error
	if err != nil {
		return nil, err
	}

	return json.Marshal(&archive)
}
