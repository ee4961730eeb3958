package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/konverty/backend/internal/models"
	"github.com/shopspring/decimal"
)

// IncomeSourceEditable represents all user configurable parameters
type IncomeSourceEditable struct {
	Position   int               `json:"position" example:"1"`                   // Position in the income table
	Category   string            `json:"category" example:"Зарплата"`            // Name of the income source
	FirstHalf  decimal.Decimal   `json:"firstHalf" example:"60000" default:"0"`  // Income expected on days 1-15
	SecondHalf decimal.Decimal   `json:"secondHalf" example:"60000" default:"0"` // Income expected on days 16-31
	Type       models.IncomeType `json:"type" example:"regular"`                 // Kind of income: regular, previous-month or other
}

func (editable IncomeSourceEditable) model() models.IncomeSource {
	return models.IncomeSource{
		Position:   editable.Position,
		Category:   editable.Category,
		FirstHalf:  editable.FirstHalf,
		SecondHalf: editable.SecondHalf,
		Type:       editable.Type,
	}
}

type IncomeSourceLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/income-sources/7f1a8e3c-2b0c-4c55-9a63-0b1f2f7a9c11"` // The income source itself
}

type IncomeSource struct {
	models.DefaultModel
	IncomeSourceEditable
	Links IncomeSourceLinks `json:"links"`

	Total decimal.Decimal `json:"total" example:"120000"` // Income of the whole month
}

func newIncomeSource(c *gin.Context, model models.IncomeSource) IncomeSource {
	url := c.GetString(string(models.DBContextURL))

	return IncomeSource{
		DefaultModel: model.DefaultModel,
		IncomeSourceEditable: IncomeSourceEditable{
			Position:   model.Position,
			Category:   model.Category,
			FirstHalf:  model.FirstHalf,
			SecondHalf: model.SecondHalf,
			Type:       model.Type,
		},
		Total: model.Total(),
		Links: IncomeSourceLinks{
			Self: fmt.Sprintf("%s/v1/income-sources/%s", url, model.ID),
		},
	}
}

type IncomeSourceListResponse struct {
	Data       []IncomeSource `json:"data"`                                                          // List of income sources
	Error      *string        `json:"error" example:"the specified ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination    `json:"pagination"`                                                    // Pagination information
}

type IncomeSourceCreateResponse struct {
	Data  []IncomeSourceResponse `json:"data"`                                                          // List of the created income sources or their respective error
	Error *string                `json:"error" example:"the specified ID is not a valid UUID"` // The error, if any occurred
}

func (c *IncomeSourceCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	c.Data = append(c.Data, IncomeSourceResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type IncomeSourceResponse struct {
	Data  *IncomeSource `json:"data"`                                                          // Data for the income source
	Error *string       `json:"error" example:"the specified ID is not a valid UUID"` // The error, if any occurred
}

type IncomeSourceQueryFilter struct {
	Category string `form:"category"`                   // By name
	Type     string `form:"type"`                       // By kind of income
	Offset   uint   `form:"offset" filterField:"false"` // The offset of the first income source returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`  // Maximum number of income sources to return. Defaults to 50.
}

func (f IncomeSourceQueryFilter) model() models.IncomeSource {
	return models.IncomeSource{
		Category: f.Category,
		Type:     models.IncomeType(f.Type),
	}
}
