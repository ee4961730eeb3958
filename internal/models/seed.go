package models

import (
	_ "embed"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed defaults.yaml
var defaultsYAML []byte

const defaultColor = "bg-white"

type defaults struct {
	Needs             []defaultChecklistItem   `yaml:"needs"`
	Wants             []defaultChecklistItem   `yaml:"wants"`
	IncomeSources     []defaultIncomeSource    `yaml:"incomeSources"`
	ExpenseCategories []defaultExpenseCategory `yaml:"expenseCategories"`
}

type defaultChecklistItem struct {
	Category string `yaml:"category"`
	Expected int64  `yaml:"expected"`
	Envelope string `yaml:"envelope"`
}

type defaultIncomeSource struct {
	Category   string     `yaml:"category"`
	FirstHalf  int64      `yaml:"firstHalf"`
	SecondHalf int64      `yaml:"secondHalf"`
	Type       IncomeType `yaml:"type"`
}

type defaultExpenseCategory struct {
	Name     string `yaml:"name"`
	Plan     int64  `yaml:"plan"`
	Color    string `yaml:"color"`
	Envelope string `yaml:"envelope"`
}

// Defaults parses the embedded default budget.
func Defaults() (checklist []ChecklistItem, sources []IncomeSource, categories []ExpenseCategory, err error) {
	var d defaults
	err = yaml.Unmarshal(defaultsYAML, &d)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("parsing default budget: %w", err)
	}

	for list, items := range map[ChecklistList][]defaultChecklistItem{Needs: d.Needs, Wants: d.Wants} {
		for i, item := range items {
			checklist = append(checklist, ChecklistItem{
				List:     list,
				Position: i,
				Category: item.Category,
				Expected: decimal.NewFromInt(item.Expected),
				Actual:   decimal.NewNullDecimal(decimal.Zero),
				Envelope: item.Envelope,
			})
		}
	}

	for i, s := range d.IncomeSources {
		sources = append(sources, IncomeSource{
			Position:   i,
			Category:   s.Category,
			FirstHalf:  decimal.NewFromInt(s.FirstHalf),
			SecondHalf: decimal.NewFromInt(s.SecondHalf),
			Type:       s.Type,
		})
	}

	for i, c := range d.ExpenseCategories {
		color := c.Color
		if color == "" {
			color = defaultColor
		}

		categories = append(categories, ExpenseCategory{
			Position: i,
			Name:     c.Name,
			Plan:     decimal.NewFromInt(c.Plan),
			Color:    color,
			Envelope: c.Envelope,
		})
	}

	return checklist, sources, categories, nil
}

// seed fills an empty database with the default budget. A database that
// has data migrations recorded is never seeded again.
func seed(db *gorm.DB) error {
	var count int64
	err := db.Model(&DataMigration{}).Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	for _, model := range []any{&ChecklistItem{}, &ExpenseCategory{}, &IncomeSource{}} {
		err := db.Model(model).Count(&count).Error
		if err != nil {
			return err
		}

		// Data from before data migrations existed
		if count > 0 {
			return nil
		}
	}

	checklist, sources, categories, err := Defaults()
	if err != nil {
		return err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&checklist).Error; err != nil {
			return err
		}

		if err := tx.Create(&sources).Error; err != nil {
			return err
		}

		if err := tx.Create(&categories).Error; err != nil {
			return err
		}

		return resetDocuments(DocumentStore{DB: tx})
	})
	if err != nil {
		return fmt.Errorf("seeding default budget: %w", err)
	}

	log.Info().Int("checklistItems", len(checklist)).Int("incomeSources", len(sources)).Int("expenseCategories", len(categories)).Msg("database seeded")
	return nil
}
