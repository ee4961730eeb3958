package models

import (
	"github.com/konverty/backend/internal/reconcile"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Reconciliation computes the actual amounts of all checklist items from
// the ledger. Nothing is written to the database.
func Reconciliation(db *gorm.DB, cutoffDay int) (needs, wants []ChecklistItem, err error) {
	ledger, err := Ledger(db)
	if err != nil {
		return nil, nil, err
	}

	needs, wants, err = Checklists(db)
	if err != nil {
		return nil, nil, err
	}

	reconciledNeeds, reconciledWants := reconcile.Reconcile(ledger, ChecklistItems(needs), ChecklistItems(wants), cutoffDay)

	return withActuals(needs, reconciledNeeds), withActuals(wants, reconciledWants), nil
}

// Reconcile runs a full reconciliation with the stored cutoff day and
// saves the actual amounts.
func Reconcile(db *gorm.DB) (needs, wants []ChecklistItem, err error) {
	cutoffDay, err := CutoffDay(DocumentStore{DB: db})
	if err != nil {
		return nil, nil, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		needs, wants, err = Reconciliation(tx, cutoffDay)
		if err != nil {
			return err
		}

		return saveChecklistItems(tx, needs, wants)
	})

	return needs, wants, err
}

// IncrementActual adds the amount to the first checklist item named like
// the comment. It reports if an item was updated.
func IncrementActual(db *gorm.DB, comment string, amount decimal.Decimal) (bool, error) {
	var updated bool

	err := db.Transaction(func(tx *gorm.DB) error {
		needs, wants, err := Checklists(tx)
		if err != nil {
			return err
		}

		incrementedNeeds, incrementedWants := reconcile.QuickIncrement(comment, amount, ChecklistItems(needs), ChecklistItems(wants))

		for _, list := range []struct {
			before []ChecklistItem
			after  []reconcile.ChecklistItem
		}{
			{needs, incrementedNeeds},
			{wants, incrementedWants},
		} {
			for i, item := range list.before {
				after := list.after[i].Actual
				if item.Actual.Valid == after.Valid && item.Actual.Decimal.Equal(after.Decimal) {
					continue
				}

				item.Actual = after
				if err := tx.Save(&item).Error; err != nil {
					return err
				}
				updated = true
			}
		}

		return nil
	})

	return updated, err
}

// withActuals sets the actual amounts of the reconciled items on the
// items they were created from.
func withActuals(items []ChecklistItem, reconciled []reconcile.ChecklistItem) []ChecklistItem {
	out := make([]ChecklistItem, len(items))
	for i, item := range items {
		item.Actual = reconciled[i].Actual
		item.Diff = item.Expected.Sub(item.Actual.Decimal)
		out[i] = item
	}
	return out
}

func saveChecklistItems(tx *gorm.DB, lists ...[]ChecklistItem) error {
	for _, items := range lists {
		for i := range items {
			err := tx.Model(&items[i]).Select("Actual", "Diff").Updates(&items[i]).Error
			if err != nil {
				return err
			}
		}
	}

	return nil
}
