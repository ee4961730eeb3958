package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/konverty/backend/internal/models"
	"github.com/konverty/backend/internal/types"
	"github.com/shopspring/decimal"
)

// ChecklistItemEditable represents all user configurable parameters
type ChecklistItemEditable struct {
	List          models.ChecklistList `json:"list" example:"needs"`                  // Checklist the item is on, "needs" or "wants"
	Position      int                  `json:"position" example:"3"`                  // Position on the checklist
	Category      string               `json:"category" example:"Продукты"`           // Name of the budget line
	Expected      decimal.Decimal      `json:"expected" example:"20000" default:"0"`  // Planned amount for the month
	Done          bool                 `json:"done" example:"false" default:"false"`  // Is the item checked off?
	Envelope      string               `json:"envelope" example:"🥬"`                  // Envelope, as name or emoji
	DailyCategory string               `json:"dailyCategory" example:"Бонусы и кафе"` // Expense category this item is linked to explicitly
}

func (editable ChecklistItemEditable) model() models.ChecklistItem {
	return models.ChecklistItem{
		List:          editable.List,
		Position:      editable.Position,
		Category:      editable.Category,
		Expected:      editable.Expected,
		Done:          editable.Done,
		Envelope:      editable.Envelope,
		DailyCategory: editable.DailyCategory,
	}
}

type ChecklistItemLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/checklist-items/3b1ea324-d438-4419-882a-2fc91d71772f"` // The checklist item itself
}

type ChecklistItem struct {
	models.DefaultModel
	ChecklistItemEditable
	Links ChecklistItemLinks `json:"links"`

	// These fields are computed
	Actual decimal.NullDecimal `json:"actual" example:"12500"` // Amount attributed by the last reconciliation
	Diff   decimal.Decimal     `json:"diff" example:"7500"`    // Expected minus actual
}

func newChecklistItem(c *gin.Context, model models.ChecklistItem) ChecklistItem {
	url := c.GetString(string(models.DBContextURL))

	return ChecklistItem{
		DefaultModel: model.DefaultModel,
		ChecklistItemEditable: ChecklistItemEditable{
			List:          model.List,
			Position:      model.Position,
			Category:      model.Category,
			Expected:      model.Expected,
			Done:          model.Done,
			Envelope:      model.Envelope,
			DailyCategory: model.DailyCategory,
		},
		Actual: model.Actual,
		Diff:   model.Diff,
		Links: ChecklistItemLinks{
			Self: fmt.Sprintf("%s/v1/checklist-items/%s", url, model.ID),
		},
	}
}

type ChecklistItemListResponse struct {
	Data       []ChecklistItem `json:"data"`                                                          // List of checklist items
	Error      *string         `json:"error" example:"the specified ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination     `json:"pagination"`                                                    // Pagination information
}

type ChecklistItemCreateResponse struct {
	Data  []ChecklistItemResponse `json:"data"`                                                          // List of the created checklist items or their respective error
	Error *string                 `json:"error" example:"the specified ID is not a valid UUID"` // The error, if any occurred
}

func (c *ChecklistItemCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	c.Data = append(c.Data, ChecklistItemResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ChecklistItemResponse struct {
	Data  *ChecklistItem `json:"data"`                                                          // Data for the checklist item
	Error *string        `json:"error" example:"the specified ID is not a valid UUID"` // The error, if any occurred
}

type ChecklistItemQueryFilter struct {
	List          string `form:"list"`                       // By checklist
	Category      string `form:"category"`                   // By category
	Envelope      string `form:"envelope"`                   // By envelope name or emoji
	DailyCategory string `form:"dailyCategory"`              // By linked expense category
	Done          bool   `form:"done"`                       // Is the item checked off?
	Offset        uint   `form:"offset" filterField:"false"` // The offset of the first item returned. Defaults to 0.
	Limit         int    `form:"limit" filterField:"false"`  // Maximum number of items to return. Defaults to 50.
}

func (f ChecklistItemQueryFilter) model() (models.ChecklistItem, error) {
	var emoji string
	if f.Envelope != "" {
		envelope, err := types.ParseEnvelope(f.Envelope)
		if err != nil {
			return models.ChecklistItem{}, err
		}
		emoji = envelope.Emoji
	}

	return models.ChecklistItem{
		List:          models.ChecklistList(f.List),
		Category:      f.Category,
		Envelope:      emoji,
		DailyCategory: f.DailyCategory,
		Done:          f.Done,
	}, nil
}
