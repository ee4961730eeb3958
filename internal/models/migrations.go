package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DataMigration records a data migration that has been applied.
type DataMigration struct {
	Version   int       `json:"version" gorm:"primaryKey;autoIncrement:false"`
	Name      string    `json:"name"`
	AppliedAt time.Time `json:"appliedAt"`
}

type dataMigration struct {
	version int
	name    string
	apply   func(tx *gorm.DB) error
}

// dataMigrations are applied in order of their version. Versions must
// never be reused or reordered.
var dataMigrations = []dataMigration{
	{1, "remove the expense categories Стэф and Дом", removeLegacyCategories},
	{2, "position Образование after Китайский", positionEducation},
	{3, "set the plan of Прочее to 23200", updateOtherPlan},
	{4, "fill missing envelopes of expense categories", fillEnvelopes},
}

// bucketEnvelopes maps the default expense categories to their envelopes.
var bucketEnvelopes = map[string]string{
	"Продукты":          "Еда",
	"Бонусы и кафе":     "Еда",
	"Салоны красоты":    "Здоровье и красота",
	"Косметика, одежда": "Здоровье и красота",
	"Здоровье и тело":   "Здоровье и красота",
	"Английский":        "Образование",
	"Китайский":         "Образование",
	"Образование":       "Образование",
	"Подписки":          "Обычная жизнь",
	"Такси":             "Обычная жизнь",
}

// migrateData applies all data migrations that have not been applied yet.
func migrateData(db *gorm.DB) error {
	var applied []DataMigration
	err := db.Find(&applied).Error
	if err != nil {
		return fmt.Errorf("loading applied data migrations: %w", err)
	}

	done := make(map[int]bool, len(applied))
	for _, m := range applied {
		done[m.Version] = true
	}

	for _, m := range dataMigrations {
		if done[m.version] {
			continue
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.apply(tx); err != nil {
				return err
			}

			return tx.Create(&DataMigration{Version: m.version, Name: m.name, AppliedAt: time.Now().In(time.UTC)}).Error
		})
		if err != nil {
			return fmt.Errorf("data migration %d (%s) failed: %w", m.version, m.name, err)
		}

		log.Info().Int("version", m.version).Str("name", m.name).Msg("data migration applied")
	}

	return nil
}

func removeLegacyCategories(tx *gorm.DB) error {
	var ids []string
	err := tx.Model(&ExpenseCategory{}).Where("name IN ?", []string{"Стэф", "Дом"}).Pluck("id", &ids).Error
	if err != nil {
		return err
	}

	if len(ids) == 0 {
		return nil
	}

	err = tx.Where("expense_category_id IN ?", ids).Delete(&Expense{}).Error
	if err != nil {
		return err
	}

	return tx.Where("id IN ?", ids).Delete(&ExpenseCategory{}).Error
}

func positionEducation(tx *gorm.DB) error {
	var categories []ExpenseCategory
	err := tx.Order("position ASC, created_at ASC").Find(&categories).Error
	if err != nil {
		return err
	}

	education := ExpenseCategory{
		Name:     "Образование",
		Plan:     decimal.NewFromInt(19000),
		Color:    "bg-white",
		Envelope: "Образование",
	}

	ordered := make([]ExpenseCategory, 0, len(categories)+1)
	for _, c := range categories {
		if c.Name == education.Name {
			education = c
			continue
		}
		ordered = append(ordered, c)
	}

	insertAt := len(ordered)
	for i, c := range ordered {
		if c.Name == "Китайский" {
			insertAt = i + 1
			break
		}
	}

	ordered = append(ordered[:insertAt], append([]ExpenseCategory{education}, ordered[insertAt:]...)...)

	for i := range ordered {
		ordered[i].Position = i

		// Only the position changes, other fields may predate validation
		if ordered[i].ID != uuid.Nil {
			err = tx.Model(&ordered[i]).UpdateColumn("position", i).Error
		} else {
			err = tx.Create(&ordered[i]).Error
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func updateOtherPlan(tx *gorm.DB) error {
	return tx.Model(&ExpenseCategory{}).Where("name = ?", "Прочее").UpdateColumn("plan", decimal.NewFromInt(23200)).Error
}

func fillEnvelopes(tx *gorm.DB) error {
	var categories []ExpenseCategory
	err := tx.Where("envelope = '' OR envelope = 'undefined' OR envelope IS NULL").Find(&categories).Error
	if err != nil {
		return err
	}

	for _, c := range categories {
		envelope, ok := bucketEnvelopes[c.Name]
		if !ok {
			// "undefined" is not a valid envelope
			envelope = ""
		}

		err := tx.Model(&ExpenseCategory{}).Where("id = ?", c.ID).UpdateColumn("envelope", envelope).Error
		if err != nil {
			return err
		}
	}

	return nil
}
