package v1

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/konverty/backend/internal/httputil"
	"github.com/konverty/backend/internal/models"
	"github.com/konverty/backend/internal/reconcile"
	"github.com/konverty/backend/internal/types"
	"github.com/shopspring/decimal"
)

// RegisterEnvelopeRoutes registers the routes for envelopes with
// the RouterGroup that is passed.
func RegisterEnvelopeRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsEnvelopes)
	r.GET("", GetEnvelopes)

	r.OPTIONS("/balances", OptionsEnvelopeBalances)
	r.GET("/balances", GetEnvelopeBalances)

	r.OPTIONS("/transfers", OptionsEnvelopeTransfers)
	r.GET("/transfers", GetEnvelopeTransfers)
	r.POST("/transfers", CreateEnvelopeTransfer)

	r.OPTIONS("/:envelope/history", OptionsEnvelopeHistory)
	r.GET("/:envelope/history", GetEnvelopeHistory)
}

type EnvelopeLinks struct {
	History string `json:"history" example:"https://example.com/api/v1/envelopes/%D0%95%D0%B4%D0%B0/history"` // Realized entries of the envelope
}

type Envelope struct {
	reconcile.EnvelopeTotal
	Links EnvelopeLinks `json:"links"`
}

type EnvelopeListResponse struct {
	Data  []Envelope `json:"data"`                                                                // Sums per envelope
	Error *string    `json:"error" example:"an error occurred on the server during your request"` // The error, if any occurred
}

type EnvelopeBalances struct {
	CutoffDay int `json:"cutoffDay" example:"5"` // Day the balances are computed for
	reconcile.Balances
}

type EnvelopeBalancesResponse struct {
	Data  *EnvelopeBalances `json:"data"`                                                    // Balances of all envelopes
	Error *string           `json:"error" example:"the cutoff day must be between 1 and 31"` // The error, if any occurred
}

type EnvelopeTransferEditable struct {
	FromEnvelope string          `json:"fromEnvelope" example:"Еда"`          // Name or emoji of the envelope the money is taken from
	ToEnvelope   string          `json:"toEnvelope" example:"Образование"`    // Name or emoji of the envelope the money is moved to
	Amount       decimal.Decimal `json:"amount" example:"500"`                // Amount to move, must be positive
	Comment      string          `json:"comment" example:"Курс по трейдингу"` // Free text
}

type EnvelopeTransferResponse struct {
	Data  *reconcile.Transfer `json:"data"`                                                 // The transfer that was recorded
	Error *string             `json:"error" example:"the transfer amount must be positive"` // The error, if any occurred
}

type EnvelopeTransferListResponse struct {
	Data  []reconcile.Transfer `json:"data"`                                                                // Transfers of the month
	Error *string              `json:"error" example:"an error occurred on the server during your request"` // The error, if any occurred
}

type EnvelopeHistory struct {
	types.Envelope
	Entries []reconcile.HistoryEntry `json:"entries"` // Realized entries ordered by day
}

type EnvelopeHistoryResponse struct {
	Data  *EnvelopeHistory `json:"data"`                                                         // History of the envelope
	Error *string          `json:"error" example:"there is no envelope with this name or emoji"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Envelopes
// @Success		204
// @Router			/v1/envelopes [options]
func OptionsEnvelopes(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Envelopes
// @Success		204
// @Failure		404			{object}	httpError
// @Param			envelope	path		string	true	"Name or emoji of the envelope"
// @Router			/v1/envelopes/{envelope}/history [options]
func OptionsEnvelopeHistory(c *gin.Context) {
	_, err := types.ParseEnvelope(c.Param("envelope"))
	if err != nil {
		c.JSON(http.StatusNotFound, httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		Get envelopes
// @Description	Returns the expected and actual amounts of the checklist items summed per envelope
// @Tags			Envelopes
// @Produce		json
// @Success		200	{object}	EnvelopeListResponse
// @Failure		500	{object}	EnvelopeListResponse
// @Router			/v1/envelopes [get]
func GetEnvelopes(c *gin.Context) {
	needs, wants, err := models.Checklists(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EnvelopeListResponse{
			Error: &s,
		})
		return
	}

	base := c.GetString(string(models.DBContextURL))
	summary := reconcile.EnvelopeSummary(models.ChecklistItems(needs), models.ChecklistItems(wants))

	data := make([]Envelope, 0, len(summary))
	for _, total := range summary {
		data = append(data, Envelope{
			EnvelopeTotal: total,
			Links: EnvelopeLinks{
				History: fmt.Sprintf("%s/v1/envelopes/%s/history", base, url.PathEscape(total.Name)),
			},
		})
	}

	c.JSON(http.StatusOK, EnvelopeListResponse{Data: data})
}

// @Summary		Get envelope history
// @Description	Returns the realized ledger entries that belong to the envelope, either through their expense
// @Description	category or through a comment naming a checklist category of the envelope
// @Tags			Envelopes
// @Produce		json
// @Success		200			{object}	EnvelopeHistoryResponse
// @Failure		404			{object}	EnvelopeHistoryResponse
// @Failure		500			{object}	EnvelopeHistoryResponse
// @Param			envelope	path		string	true	"Name or emoji of the envelope"
// @Router			/v1/envelopes/{envelope}/history [get]
func GetEnvelopeHistory(c *gin.Context) {
	envelope, err := types.ParseEnvelope(c.Param("envelope"))
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusNotFound, EnvelopeHistoryResponse{
			Error: &s,
		})
		return
	}

	ledger, err := models.Ledger(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EnvelopeHistoryResponse{
			Error: &s,
		})
		return
	}

	needs, wants, err := models.Checklists(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EnvelopeHistoryResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, EnvelopeHistoryResponse{Data: &EnvelopeHistory{
		Envelope: envelope,
		Entries:  reconcile.EnvelopeHistory(ledger, models.ChecklistItems(needs), models.ChecklistItems(wants), envelope),
	}})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Envelopes
// @Success		204
// @Router			/v1/envelopes/balances [options]
func OptionsEnvelopeBalances(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get envelope balances
// @Description	Returns the money available and remaining in every envelope. Until day 15 only the first half
// @Description	deposits are available, after that the whole allocation including top-ups.
// @Tags			Envelopes
// @Produce		json
// @Success		200		{object}	EnvelopeBalancesResponse
// @Failure		400		{object}	EnvelopeBalancesResponse
// @Failure		500		{object}	EnvelopeBalancesResponse
// @Param			cutoff	query		int	false	"Cutoff day. Defaults to the stored cutoff day."
// @Router			/v1/envelopes/balances [get]
func GetEnvelopeBalances(c *gin.Context) {
	cutoffDay, err := queryCutoffDay(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EnvelopeBalancesResponse{
			Error: &s,
		})
		return
	}

	balances, err := models.EnvelopeBalances(models.DB, cutoffDay)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EnvelopeBalancesResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, EnvelopeBalancesResponse{Data: &EnvelopeBalances{
		CutoffDay: cutoffDay,
		Balances:  balances,
	}})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Envelopes
// @Success		204
// @Router			/v1/envelopes/transfers [options]
func OptionsEnvelopeTransfers(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Get envelope transfers
// @Description	Returns the transfers between envelopes made this month
// @Tags			Envelopes
// @Produce		json
// @Success		200	{object}	EnvelopeTransferListResponse
// @Failure		500	{object}	EnvelopeTransferListResponse
// @Router			/v1/envelopes/transfers [get]
func GetEnvelopeTransfers(c *gin.Context) {
	transfers, err := models.Transfers(models.DocumentStore{DB: models.DB})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EnvelopeTransferListResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, EnvelopeTransferListResponse{Data: transfers})
}

// @Summary		Transfer between envelopes
// @Description	Moves money from the first half deposit of one envelope to another and records the transfer
// @Tags			Envelopes
// @Accept			json
// @Produce		json
// @Success		201			{object}	EnvelopeTransferResponse
// @Failure		400			{object}	EnvelopeTransferResponse
// @Failure		500			{object}	EnvelopeTransferResponse
// @Param			transfer	body		EnvelopeTransferEditable	true	"Transfer"
// @Router			/v1/envelopes/transfers [post]
func CreateEnvelopeTransfer(c *gin.Context) {
	var data EnvelopeTransferEditable
	err := httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EnvelopeTransferResponse{
			Error: &s,
		})
		return
	}

	transfer, err := models.TransferDeposit(models.DB, data.FromEnvelope, data.ToEnvelope, data.Amount, data.Comment)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EnvelopeTransferResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusCreated, EnvelopeTransferResponse{Data: &transfer})
}
