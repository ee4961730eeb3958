package models

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// IncomeType distinguishes regular income from the carried over remainder.
type IncomeType string

const (
	IncomeRegular       IncomeType = "regular"
	IncomePreviousMonth IncomeType = "previous-month"
	IncomeOther         IncomeType = "other"
)

// IncomeSource is an income expected in the first and second half of the month.
type IncomeSource struct {
	DefaultModel
	Position   int             `json:"position"`
	Category   string          `json:"category"`
	FirstHalf  decimal.Decimal `json:"firstHalf" gorm:"type:DECIMAL(20,8)"`
	SecondHalf decimal.Decimal `json:"secondHalf" gorm:"type:DECIMAL(20,8)"`
	Type       IncomeType      `json:"type"`
}

func (i *IncomeSource) BeforeSave(tx *gorm.DB) error {
	i.Category = strings.TrimSpace(i.Category)

	if i.Category == "" {
		return ErrCategoryEmpty
	}

	if i.Type == "" {
		i.Type = IncomeRegular
	}

	switch i.Type {
	case IncomeRegular, IncomeOther:
	case IncomePreviousMonth:
		// The remainder of the last month is carried into exactly one source
		var count int64
		err := tx.Session(&gorm.Session{NewDB: true}).
			Model(&IncomeSource{}).
			Where("type = ? AND id != ?", IncomePreviousMonth, i.ID).
			Count(&count).Error
		if err != nil {
			return err
		}

		if count > 0 {
			return ErrPreviousMonthIncomeNotUnique
		}
	default:
		return ErrIncomeTypeInvalid
	}

	return nil
}

// Total returns the income of both halves of the month.
func (i IncomeSource) Total() decimal.Decimal {
	return i.FirstHalf.Add(i.SecondHalf)
}

// Export returns all income sources for export
func (IncomeSource) Export() (json.RawMessage, error) {
	var sources []IncomeSource
	err := DB.Order("position ASC").Find(&sources).Error
	if err != nil {
		return nil, err
	}

	return json.Marshal(&sources)
}
