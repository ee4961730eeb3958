package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/konverty/backend/internal/httputil"
	"github.com/konverty/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterReconciliationRoutes registers the routes for the reconciliation
// with the RouterGroup that is passed.
func RegisterReconciliationRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsReconciliation)
	r.GET("", GetReconciliation)
	r.POST("", CreateReconciliation)
}

type Reconciliation struct {
	CutoffDay int             `json:"cutoffDay" example:"5"` // Entries after this day are planned
	Needs     []ChecklistItem `json:"needs"`                 // The needs checklist with the attributed actual amounts
	Wants     []ChecklistItem `json:"wants"`                 // The wants checklist with the attributed actual amounts
}

type ReconciliationResponse struct {
	Data  *Reconciliation `json:"data"`                                                    // The result of the reconciliation
	Error *string         `json:"error" example:"the cutoff day must be between 1 and 31"` // The error, if any occurred
}

type ReconciliationQuery struct {
	CutoffDay int `form:"cutoff"` // Cutoff day to use instead of the stored one
}

// queryCutoffDay returns the cutoff day from the query string or, if none
// is given, the stored one.
func queryCutoffDay(c *gin.Context) (int, error) {
	var query ReconciliationQuery
	err := c.ShouldBindQuery(&query)
	if err != nil {
		return 0, errCutoffDayQuery
	}

	_, setFields := httputil.GetURLFields(c.Request.URL, query)
	if !slices.Contains(setFields, "CutoffDay") {
		return models.CutoffDay(models.DocumentStore{DB: models.DB})
	}

	if query.CutoffDay < 1 || query.CutoffDay > 31 {
		return 0, errCutoffDayQuery
	}

	return query.CutoffDay, nil
}

func newReconciliation(c *gin.Context, cutoffDay int, needs, wants []models.ChecklistItem) Reconciliation {
	r := Reconciliation{
		CutoffDay: cutoffDay,
		Needs:     make([]ChecklistItem, 0, len(needs)),
		Wants:     make([]ChecklistItem, 0, len(wants)),
	}

	for _, item := range needs {
		r.Needs = append(r.Needs, newChecklistItem(c, item))
	}

	for _, item := range wants {
		r.Wants = append(r.Wants, newChecklistItem(c, item))
	}

	return r
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Reconciliation
// @Success		204
// @Router			/v1/reconciliation [options]
func OptionsReconciliation(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Preview reconciliation
// @Description	Attributes the ledger to the checklists and returns the result without saving it
// @Tags			Reconciliation
// @Produce		json
// @Success		200		{object}	ReconciliationResponse
// @Failure		400		{object}	ReconciliationResponse
// @Failure		500		{object}	ReconciliationResponse
// @Param			cutoff	query		int	false	"Cutoff day. Defaults to the stored cutoff day."
// @Router			/v1/reconciliation [get]
func GetReconciliation(c *gin.Context) {
	cutoffDay, err := queryCutoffDay(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ReconciliationResponse{
			Error: &s,
		})
		return
	}

	needs, wants, err := models.Reconciliation(models.DB, cutoffDay)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ReconciliationResponse{
			Error: &s,
		})
		return
	}

	data := newReconciliation(c, cutoffDay, needs, wants)
	c.JSON(http.StatusOK, ReconciliationResponse{Data: &data})
}

// @Summary		Reconcile
// @Description	Attributes the ledger to the checklists with the stored cutoff day and saves the actual amounts
// @Tags			Reconciliation
// @Produce		json
// @Success		200	{object}	ReconciliationResponse
// @Failure		500	{object}	ReconciliationResponse
// @Router			/v1/reconciliation [post]
func CreateReconciliation(c *gin.Context) {
	needs, wants, err := models.Reconcile(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ReconciliationResponse{
			Error: &s,
		})
		return
	}

	cutoffDay, err := models.CutoffDay(models.DocumentStore{DB: models.DB})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ReconciliationResponse{
			Error: &s,
		})
		return
	}

	data := newReconciliation(c, cutoffDay, needs, wants)
	c.JSON(http.StatusOK, ReconciliationResponse{Data: &data})
}
