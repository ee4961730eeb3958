package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/konverty/backend/internal/reconcile"
	"github.com/konverty/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EnvelopeBalances computes the balances of all envelopes at the cutoff day
// from the checklists, the income sources and the monthly documents.
func EnvelopeBalances(db *gorm.DB, cutoffDay int) (reconcile.Balances, error) {
	needs, wants, err := Checklists(db)
	if err != nil {
		return reconcile.Balances{}, err
	}

	var sources []IncomeSource
	err = db.Order("position ASC").Find(&sources).Error
	if err != nil {
		return reconcile.Balances{}, err
	}

	income := make([]reconcile.Income, 0, len(sources))
	for _, s := range sources {
		income = append(income, reconcile.Income{FirstHalf: s.FirstHalf, SecondHalf: s.SecondHalf})
	}

	store := DocumentStore{DB: db}

	deposits := map[string]decimal.Decimal{}
	if _, err := store.Load(DocumentFirstHalfDeposits, &deposits); err != nil {
		return reconcile.Balances{}, err
	}

	topUps := []reconcile.TopUp{}
	if _, err := store.Load(DocumentTopUps, &topUps); err != nil {
		return reconcile.Balances{}, err
	}

	return reconcile.EnvelopeBalances(ChecklistItems(needs), ChecklistItems(wants), income, deposits, topUps, cutoffDay), nil
}

// CurrentBalances computes the envelope balances with the stored cutoff day.
func CurrentBalances(db *gorm.DB) (reconcile.Balances, error) {
	cutoffDay, err := CutoffDay(DocumentStore{DB: db})
	if err != nil {
		return reconcile.Balances{}, err
	}

	return EnvelopeBalances(db, cutoffDay)
}

// Transfers returns the envelope transfers of the month.
func Transfers(s Store) ([]reconcile.Transfer, error) {
	transfers := []reconcile.Transfer{}
	_, err := s.Load(DocumentEnvelopeTransfers, &transfers)
	if err != nil {
		return nil, err
	}

	return transfers, nil
}

// TransferDeposit moves money between the first half deposits of two
// envelopes and records the transfer.
func TransferDeposit(db *gorm.DB, from, to string, amount decimal.Decimal, comment string) (reconcile.Transfer, error) {
	if !amount.IsPositive() {
		return reconcile.Transfer{}, ErrTransferAmountInvalid
	}

	fromEnvelope, err := types.ParseEnvelope(from)
	if err != nil {
		return reconcile.Transfer{}, err
	}

	toEnvelope, err := types.ParseEnvelope(to)
	if err != nil {
		return reconcile.Transfer{}, err
	}

	if fromEnvelope == toEnvelope {
		return reconcile.Transfer{}, ErrTransferSameEnvelope
	}

	transfer := reconcile.Transfer{
		ID:           uuid.NewString(),
		FromEnvelope: fromEnvelope.Name,
		ToEnvelope:   toEnvelope.Name,
		Amount:       amount,
		Date:         time.Now().Format("02.01.2006"),
		Comment:      strings.TrimSpace(comment),
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		balances, err := CurrentBalances(tx)
		if err != nil {
			return err
		}

		store := DocumentStore{DB: tx}

		deposits := map[string]decimal.Decimal{}
		if _, err := store.Load(DocumentFirstHalfDeposits, &deposits); err != nil {
			return err
		}

		transfers, err := Transfers(store)
		if err != nil {
			return err
		}

		err = store.Save(DocumentFirstHalfDeposits, reconcile.ApplyTransfer(balances, deposits, fromEnvelope, toEnvelope, amount))
		if err != nil {
			return err
		}

		return store.Save(DocumentEnvelopeTransfers, append(transfers, transfer))
	})
	if err != nil {
		return reconcile.Transfer{}, err
	}

	return transfer, nil
}
