package models

import (
	"encoding/json"
	"strings"

	"github.com/konverty/backend/internal/reconcile"
	"github.com/konverty/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ChecklistList is the checklist an item belongs to.
type ChecklistList string

const (
	Needs ChecklistList = "needs"
	Wants ChecklistList = "wants"
)

// ChecklistItem is a planned budget line on one of the two checklists.
type ChecklistItem struct {
	DefaultModel
	List          ChecklistList       `json:"list" gorm:"index"`
	Position      int                 `json:"position"`
	Category      string              `json:"category"`
	Expected      decimal.Decimal     `json:"expected" gorm:"type:DECIMAL(20,8)"`
	Actual        decimal.NullDecimal `json:"actual" gorm:"type:DECIMAL(20,8)"`
	Diff          decimal.Decimal     `json:"diff" gorm:"type:DECIMAL(20,8)"`
	Done          bool                `json:"done"`
	Envelope      string              `json:"envelope"`      // Emoji of the envelope
	DailyCategory string              `json:"dailyCategory"` // Name of the expense category this item is explicitly linked to
}

func (c *ChecklistItem) BeforeSave(_ *gorm.DB) error {
	c.Category = strings.TrimSpace(c.Category)
	c.DailyCategory = strings.TrimSpace(c.DailyCategory)
	c.Envelope = strings.TrimSpace(c.Envelope)

	if c.Category == "" {
		return ErrCategoryEmpty
	}

	if c.List != Needs && c.List != Wants {
		return ErrChecklistListInvalid
	}

	if c.Expected.IsNegative() {
		return ErrExpectedNegative
	}

	// Envelopes are stored by their emoji
	if c.Envelope != "" {
		e, err := types.ParseEnvelope(c.Envelope)
		if err != nil {
			return err
		}
		c.Envelope = e.Emoji
	}

	c.Diff = c.Expected.Sub(c.Actual.Decimal)
	return nil
}

// Item returns the item as value for the reconciliation engine.
func (c ChecklistItem) Item() reconcile.ChecklistItem {
	return reconcile.ChecklistItem{
		ID:            c.ID.String(),
		Category:      c.Category,
		Expected:      c.Expected,
		Actual:        c.Actual,
		Diff:          c.Diff,
		Done:          c.Done,
		Envelope:      c.Envelope,
		DailyCategory: c.DailyCategory,
	}
}

// Checklists returns all checklist items in order, split by list.
func Checklists(db *gorm.DB) (needs, wants []ChecklistItem, err error) {
	var items []ChecklistItem
	err = db.Order("position ASC, created_at ASC").Find(&items).Error
	if err != nil {
		return nil, nil, err
	}

	for _, item := range items {
		if item.List == Needs {
			needs = append(needs, item)
		} else {
			wants = append(wants, item)
		}
	}

	return needs, wants, nil
}

// ChecklistItems converts checklist items for the reconciliation engine.
func ChecklistItems(items []ChecklistItem) []reconcile.ChecklistItem {
	out := make([]reconcile.ChecklistItem, 0, len(items))
	for _, item := range items {
		out = append(out, item.Item())
	}
	return out
}

// Export returns all checklist items for export
func (ChecklistItem) Export() (json.RawMessage, error) {
	var items []ChecklistItem
	err := DB.Order("list ASC, position ASC").Find(&items).Error
	if err != nil {
		return nil, err
	}

	return json.Marshal(&items)
}
