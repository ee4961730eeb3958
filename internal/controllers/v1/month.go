package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/konverty/backend/internal/httputil"
	"github.com/konverty/backend/internal/models"
	"github.com/konverty/backend/internal/types"
	"github.com/shopspring/decimal"
)

// RegisterMonthRoutes registers the routes for months with
// the RouterGroup that is passed.
func RegisterMonthRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/close", OptionsMonthClose)
	r.POST("/close", CloseMonth)
}

type MonthClose struct {
	Month           string              `json:"month" example:"2026-10"`           // Month to close in YYYY-MM format. Defaults to the current month.
	EnvelopeBalance decimal.NullDecimal `json:"envelopeBalance" example:"4300.50"` // Money left in the envelopes. Defaults to the computed envelope balance.
	SavingsBalance  decimal.NullDecimal `json:"savingsBalance" example:"12000"`    // Money left in the savings. Defaults to the computed savings balance.
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Months
// @Success		204
// @Router			/v1/months/close [options]
func OptionsMonthClose(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Close month
// @Description	Archives the month and prepares the budget for the next one. The sum of both balances is carried
// @Description	over as income of type previous-month, all other income is set to zero, the ledger is emptied,
// @Description	the checklists are reset and the monthly documents are cleared. Balances that are not sent are
// @Description	computed from the envelopes at the stored cutoff day.
// @Tags			Months
// @Accept			json
// @Produce		json
// @Success		201		{object}	ArchivedMonthResponse
// @Failure		400		{object}	ArchivedMonthResponse
// @Failure		500		{object}	ArchivedMonthResponse
// @Param			month	body		MonthClose	true	"Balances at the end of the month"
// @Router			/v1/months/close [post]
func CloseMonth(c *gin.Context) {
	var data MonthClose
	err := httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ArchivedMonthResponse{
			Error: &s,
		})
		return
	}

	month := types.MonthOf(time.Now())
	if data.Month != "" {
		month, err = types.ParseMonth(data.Month)
		if err != nil {
			s := errMonthInvalid.Error()
			c.JSON(http.StatusBadRequest, ArchivedMonthResponse{
				Error: &s,
			})
			return
		}
	}

	archive, err := models.CloseMonth(models.DB, month, data.EnvelopeBalance, data.SavingsBalance)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ArchivedMonthResponse{
			Error: &s,
		})
		return
	}

	r := newArchivedMonth(c, archive)
	c.JSON(http.StatusCreated, ArchivedMonthResponse{Data: &r})
}
