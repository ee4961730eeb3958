package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/konverty/backend/internal/httputil"
	"github.com/konverty/backend/internal/models"
)

// RegisterRoutes registers all v1 routes with the RouterGroup that is passed.
func RegisterRoutes(r *gin.RouterGroup, version string) {
	r.GET("", Get)
	r.DELETE("", Cleanup)
	r.OPTIONS("", Options)

	RegisterChecklistItemRoutes(r.Group("/checklist-items"))
	RegisterExpenseCategoryRoutes(r.Group("/expense-categories"))
	RegisterExpenseRoutes(r.Group("/expenses"))
	RegisterIncomeSourceRoutes(r.Group("/income-sources"))
	RegisterReconciliationRoutes(r.Group("/reconciliation"))
	RegisterSettingsRoutes(r.Group("/settings"))
	RegisterEnvelopeRoutes(r.Group("/envelopes"))
	RegisterMonthRoutes(r.Group("/months"))
	RegisterArchiveRoutes(r.Group("/archive"))
	RegisterDocumentRoutes(r.Group("/documents"))
	RegisterExportRoutes(r.Group("/export"), version)
}

type Response struct {
	Links Links `json:"links"` // Links for the v1 API
}

type Links struct {
	ChecklistItems    string `json:"checklistItems" example:"https://example.com/api/v1/checklist-items"`       // URL of checklist item list endpoint
	ExpenseCategories string `json:"expenseCategories" example:"https://example.com/api/v1/expense-categories"` // URL of expense category list endpoint
	Expenses          string `json:"expenses" example:"https://example.com/api/v1/expenses"`                    // URL of expense list endpoint
	IncomeSources     string `json:"incomeSources" example:"https://example.com/api/v1/income-sources"`         // URL of income source list endpoint
	Reconciliation    string `json:"reconciliation" example:"https://example.com/api/v1/reconciliation"`        // URL of the reconciliation endpoint
	Settings          string `json:"settings" example:"https://example.com/api/v1/settings"`                    // URL of the settings endpoint
	Envelopes         string `json:"envelopes" example:"https://example.com/api/v1/envelopes"`                  // URL of envelope summary endpoint
	Months            string `json:"months" example:"https://example.com/api/v1/months"`                        // URL of month endpoints
	Archive           string `json:"archive" example:"https://example.com/api/v1/archive"`                      // URL of archive list endpoint
	Documents         string `json:"documents" example:"https://example.com/api/v1/documents"`                  // URL of the document endpoints
	Export            string `json:"export" example:"https://example.com/api/v1/export"`                        // URL of the export endpoint
}

// Get returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	Response
//	@Router			/v1 [get]
func Get(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, Response{
		Links: Links{
			ChecklistItems:    url + "/v1/checklist-items",
			ExpenseCategories: url + "/v1/expense-categories",
			Expenses:          url + "/v1/expenses",
			IncomeSources:     url + "/v1/income-sources",
			Reconciliation:    url + "/v1/reconciliation",
			Settings:          url + "/v1/settings",
			Envelopes:         url + "/v1/envelopes",
			Months:            url + "/v1/months",
			Archive:           url + "/v1/archive",
			Documents:         url + "/v1/documents",
			Export:            url + "/v1/export",
		},
	})
}

// Options returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func Options(c *gin.Context) {
	httputil.OptionsGetDelete(c)
}

// @Summary		Delete everything
// @Description	Permanently deletes all resources
// @Tags			v1
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			confirm	query		string	false	"Confirmation to delete all resources. Must have the value 'yes-please-delete-everything'"
// @Router			/v1 [delete]
func Cleanup(c *gin.Context) {
	var params struct {
		Confirm string `form:"confirm"`
	}

	err := c.Bind(&params)
	if err != nil || params.Confirm != "yes-please-delete-everything" {
		c.JSON(http.StatusBadRequest, httpError{
			Error: errCleanupConfirmation.Error(),
		})
		return
	}

	// Use a transaction so that we can roll back if errors happen
	tx := models.DB.Begin()

	for _, model := range models.Deletable {
		err := tx.Where("true").Delete(model).Error
		if err != nil {
			c.JSON(status(err), httpError{
				Error: err.Error(),
			})
			tx.Rollback()
			return
		}
	}

	tx.Commit()
	c.JSON(http.StatusNoContent, nil)
}
