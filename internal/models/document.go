package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Keys of the documents the backend knows about. Any other key can be
// stored as well, the content of documents is never interpreted.
const (
	DocumentCutoffDay         = "cutoffDay"
	DocumentSavingsData       = "savingsData"
	DocumentTopUps            = "topUps"
	DocumentEnvelopeTransfers = "envelopeTransfers"
	DocumentFirstHalfDeposits = "firstHalfDeposits"
)

// DefaultCutoffDay is the cutoff day used when none is stored.
const DefaultCutoffDay = 5

// Document is a JSON document stored under a key.
type Document struct {
	Key string `json:"key" gorm:"primaryKey"`
	Timestamps
	Value json.RawMessage `json:"value"`
}

// Store loads and saves JSON documents by key.
type Store interface {
	// Load decodes the document stored under key into dest. It returns
	// false when there is no such document.
	Load(key string, dest any) (bool, error)
	Save(key string, value any) error
}

// DocumentStore is a Store backed by the documents table.
type DocumentStore struct {
	DB *gorm.DB
}

var _ Store = DocumentStore{}

func (s DocumentStore) Load(key string, dest any) (bool, error) {
	var document Document
	err := s.DB.Where(&Document{Key: key}).First(&document).Error
	if errors.Is(err, ErrResourceNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	} else if err != nil {
		return false, err
	}

	err = json.Unmarshal(document.Value, dest)
	if err != nil {
		return false, fmt.Errorf("decoding document %s: %w", key, err)
	}

	return true, nil
}

func (s DocumentStore) Save(key string, value any) error {
	if strings.TrimSpace(key) == "" {
		return ErrDocumentKeyEmpty
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding document %s: %w", key, err)
	}

	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&Document{Key: key, Value: raw}).Error
}

// CutoffDay returns the stored cutoff day, or the default if none is stored.
func CutoffDay(s Store) (int, error) {
	day := DefaultCutoffDay
	_, err := s.Load(DocumentCutoffDay, &day)
	if err != nil {
		return 0, err
	}

	return day, nil
}

// SetCutoffDay stores the cutoff day.
func SetCutoffDay(s Store, day int) error {
	if day < 1 || day > 31 {
		return ErrCutoffDayInvalid
	}

	return s.Save(DocumentCutoffDay, day)
}

// SavingsData holds the savings deposits of both halves of the month.
type SavingsData struct {
	InvestPiggyBank1To15  decimal.Decimal `json:"investPiggyBank1_15"`
	InvestPiggyBank16To31 decimal.Decimal `json:"investPiggyBank16_31"`
	Investments1To15      decimal.Decimal `json:"investments1_15"`
	Investments16To31     decimal.Decimal `json:"investments16_31"`
}

// resetDocuments empties the monthly documents.
func resetDocuments(s Store) error {
	documents := map[string]any{
		DocumentSavingsData:       SavingsData{},
		DocumentTopUps:            []any{},
		DocumentEnvelopeTransfers: []any{},
		DocumentFirstHalfDeposits: map[string]any{},
		DocumentCutoffDay:         DefaultCutoffDay,
	}

	for key, value := range documents {
		if err := s.Save(key, value); err != nil {
			return err
		}
	}

	return nil
}

// Documents returns all documents as a map of key to value.
func Documents(db *gorm.DB) (map[string]json.RawMessage, error) {
	var documents []Document
	err := db.Order("`key` ASC").Find(&documents).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]json.RawMessage, len(documents))
	for _, d := range documents {
		out[d.Key] = d.Value
	}

	return out, nil
}

// Export returns all documents for export
func (Document) Export() (json.RawMessage, error) {
	documents, err := Documents(DB)
	if err != nil {
		return nil, err
	}

	return json.Marshal(documents)
}
