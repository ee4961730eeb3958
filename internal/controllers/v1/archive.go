package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/konverty/backend/internal/httputil"
	"github.com/konverty/backend/internal/models"
	"github.com/ryanuber/go-glob"
)

// RegisterArchiveRoutes registers the routes for archived months with
// the RouterGroup that is passed.
func RegisterArchiveRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsArchive)
		r.GET("", GetArchivedMonths)
	}

	// Archived month with ID
	{
		r.OPTIONS("/:id", OptionsArchivedMonth)
		r.GET("/:id", GetArchivedMonth)
		r.DELETE("/:id", DeleteArchivedMonth)
	}
}

type ArchivedMonthLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/archive/archive_2026_10"` // The archived month itself
}

type ArchivedMonth struct {
	models.ArchivedMonth
	Links ArchivedMonthLinks `json:"links"`
}

func newArchivedMonth(c *gin.Context, model models.ArchivedMonth) ArchivedMonth {
	url := c.GetString(string(models.DBContextURL))

	return ArchivedMonth{
		ArchivedMonth: model,
		Links: ArchivedMonthLinks{
			Self: fmt.Sprintf("%s/v1/archive/%s", url, model.ID),
		},
	}
}

type ArchivedMonthListResponse struct {
	Data  []ArchivedMonth `json:"data"`                                                                // List of archived months, newest first
	Error *string         `json:"error" example:"an error occurred on the server during your request"` // The error, if any occurred
}

type ArchivedMonthResponse struct {
	Data  *ArchivedMonth `json:"data"`                                                           // Data for the archived month
	Error *string        `json:"error" example:"there is no archived month matching your query"` // The error, if any occurred
}

type ArchivedMonthQueryFilter struct {
	Name string `form:"name"` // Glob pattern for the name, e.g. "*2026"
}

type URIArchiveID struct {
	ID string `uri:"id" binding:"required"` // ID of the archived month
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Archive
// @Success		204
// @Router			/v1/archive [options]
func OptionsArchive(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Archive
// @Success		204
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID of the archived month"
// @Router			/v1/archive/{id} [options]
func OptionsArchivedMonth(c *gin.Context) {
	var uri URIArchiveID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: err.Error(),
		})
		return
	}

	var archive models.ArchivedMonth
	err = models.DB.First(&archive, "id = ?", uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetDelete(c)
}

// @Summary		Get archived months
// @Description	Returns all archived months, newest first
// @Tags			Archive
// @Produce		json
// @Success		200		{object}	ArchivedMonthListResponse
// @Failure		400		{object}	ArchivedMonthListResponse
// @Failure		500		{object}	ArchivedMonthListResponse
// @Param			name	query		string	false	"Glob pattern the name must match"
// @Router			/v1/archive [get]
func GetArchivedMonths(c *gin.Context) {
	var filter ArchivedMonthQueryFilter
	err := c.ShouldBindQuery(&filter)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ArchivedMonthListResponse{
			Error: &s,
		})
		return
	}

	var archive []models.ArchivedMonth
	err = models.DB.Order("month DESC").Find(&archive).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ArchivedMonthListResponse{
			Error: &s,
		})
		return
	}

	data := make([]ArchivedMonth, 0, len(archive))
	for _, month := range archive {
		if filter.Name != "" && !glob.Glob(filter.Name, month.Name) {
			continue
		}

		data = append(data, newArchivedMonth(c, month))
	}

	c.JSON(http.StatusOK, ArchivedMonthListResponse{Data: data})
}

// @Summary		Get archived month
// @Description	Returns an archived month with its snapshot
// @Tags			Archive
// @Produce		json
// @Success		200	{object}	ArchivedMonthResponse
// @Failure		404	{object}	ArchivedMonthResponse
// @Failure		500	{object}	ArchivedMonthResponse
// @Param			id	path		string	true	"ID of the archived month"
// @Router			/v1/archive/{id} [get]
func GetArchivedMonth(c *gin.Context) {
	var uri URIArchiveID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ArchivedMonthResponse{
			Error: &s,
		})
		return
	}

	var archive models.ArchivedMonth
	err = models.DB.First(&archive, "id = ?", uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ArchivedMonthResponse{
			Error: &s,
		})
		return
	}

	data := newArchivedMonth(c, archive)
	c.JSON(http.StatusOK, ArchivedMonthResponse{Data: &data})
}

// @Summary		Delete archived month
// @Description	Deletes an archived month
// @Tags			Archive
// @Success		204
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID of the archived month"
// @Router			/v1/archive/{id} [delete]
func DeleteArchivedMonth(c *gin.Context) {
	var uri URIArchiveID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: err.Error(),
		})
		return
	}

	var archive models.ArchivedMonth
	err = models.DB.First(&archive, "id = ?", uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&archive).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
