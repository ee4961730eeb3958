package models

import (
	"encoding/json"
	"fmt"

	"github.com/konverty/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CloseMonth archives the month and prepares the budget for the next one.
//
// The remainder of the month, the sum of both balances, is carried over into
// the income source of type previous-month. All other income is zeroed, the
// ledger is emptied and the actual amounts on the checklists are reset.
// Closing the same month again replaces its archive entry.
//
// Balances that are not set are taken from the envelope balances at the
// stored cutoff day.
func CloseMonth(db *gorm.DB, month types.Month, envelopeBalance, savingsBalance decimal.NullDecimal) (ArchivedMonth, error) {
	archive := ArchivedMonth{
		ID:    month.ArchiveID(),
		Name:  month.Name(),
		Month: month,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if !envelopeBalance.Valid || !savingsBalance.Valid {
			balances, err := CurrentBalances(tx)
			if err != nil {
				return err
			}

			if !envelopeBalance.Valid {
				envelopeBalance = decimal.NewNullDecimal(balances.EnvelopeBalance)
			}

			if !savingsBalance.Valid {
				savingsBalance = decimal.NewNullDecimal(balances.SavingsBalance)
			}
		}

		remainder := envelopeBalance.Decimal.Add(savingsBalance.Decimal)
		archive.EnvelopeBalance = envelopeBalance.Decimal
		archive.SavingsBalance = savingsBalance.Decimal
		archive.TotalBalance = remainder

		snapshot, err := TakeSnapshot(tx)
		if err != nil {
			return err
		}

		archive.Data, err = json.Marshal(snapshot)
		if err != nil {
			return fmt.Errorf("encoding snapshot: %w", err)
		}

		err = tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&archive).Error
		if err != nil {
			return err
		}

		err = tx.Model(&IncomeSource{}).Where("type = ?", IncomePreviousMonth).UpdateColumns(map[string]any{
			"first_half":  remainder,
			"second_half": decimal.Zero,
		}).Error
		if err != nil {
			return err
		}

		err = tx.Model(&IncomeSource{}).Where("type != ?", IncomePreviousMonth).UpdateColumns(map[string]any{
			"first_half":  decimal.Zero,
			"second_half": decimal.Zero,
		}).Error
		if err != nil {
			return err
		}

		err = tx.Where("true").Delete(&Expense{}).Error
		if err != nil {
			return err
		}

		err = tx.Model(&ChecklistItem{}).Where("true").UpdateColumns(map[string]any{
			"actual": decimal.Zero,
			"diff":   gorm.Expr("expected"),
			"done":   false,
		}).Error
		if err != nil {
			return err
		}

		return resetDocuments(DocumentStore{DB: tx})
	})
	if err != nil {
		return ArchivedMonth{}, err
	}

	return archive, nil
}
