package v1

import (
	"encoding/json"
	"net/http"
	"reflect"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/konverty/backend/internal/httputil"
	"github.com/konverty/backend/internal/models"
)

// RegisterExportRoutes registers the export with the RouterGroup that is passed.
// The version is written into every export.
func RegisterExportRoutes(r *gin.RouterGroup, version string) {
	r.OPTIONS("", OptionsExport)
	r.GET("", GetExport(version))
}

type ExportResponse struct {
	Version      string                     `json:"version" example:"1.4.0"` // The version of the backend the export was made with
	Data         map[string]json.RawMessage `json:"data"`                    // The exported resources by model name
	CreationTime time.Time                  `json:"creationTime"`            // Time the export was created
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Export
// @Success		204
// @Router			/v1/export [options]
func OptionsExport(c *gin.Context) {
	httputil.OptionsGet(c)
}

// GetExport returns the handler for the export.
//
//	@Summary		Export
//	@Description	Exports all resources and documents
//	@Tags			Export
//	@Produce		json
//	@Success		200	{object}	ExportResponse
//	@Failure		500	{object}	httpError
//	@Router			/v1/export [get]
func GetExport(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		resources := make(map[string]json.RawMessage, len(models.Registry))

		for _, model := range models.Registry {
			b, err := model.Export()
			if err != nil {
				c.JSON(status(err), httpError{
					Error: err.Error(),
				})
				return
			}

			resources[reflect.TypeOf(model).Name()] = b
		}

		c.JSON(http.StatusOK, ExportResponse{
			Version:      version,
			Data:         resources,
			CreationTime: time.Now(),
		})
	}
}
