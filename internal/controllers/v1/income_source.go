package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/konverty/backend/internal/httputil"
	"github.com/konverty/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterIncomeSourceRoutes registers the routes for income sources with
// the RouterGroup that is passed.
func RegisterIncomeSourceRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsIncomeSourceList)
		r.GET("", GetIncomeSources)
		r.POST("", CreateIncomeSources)
	}

	// Income source with ID
	{
		r.OPTIONS("/:id", OptionsIncomeSourceDetail)
		r.GET("/:id", GetIncomeSource)
		r.PATCH("/:id", UpdateIncomeSource)
		r.DELETE("/:id", DeleteIncomeSource)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Income Sources
// @Success		204
// @Router			/v1/income-sources [options]
func OptionsIncomeSourceList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Income Sources
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/income-sources/{id} [options]
func OptionsIncomeSourceDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.IncomeSource{})
}

// @Summary		Create income sources
// @Description	Creates new income sources
// @Tags			Income Sources
// @Produce		json
// @Success		201		{object}	IncomeSourceCreateResponse
// @Failure		400		{object}	IncomeSourceCreateResponse
// @Failure		500		{object}	IncomeSourceCreateResponse
// @Param			sources	body		[]IncomeSourceEditable	true	"Income sources"
// @Router			/v1/income-sources [post]
func CreateIncomeSources(c *gin.Context) {
	var editables []IncomeSourceEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeSourceCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := IncomeSourceCreateResponse{}

	for _, editable := range editables {
		source := editable.model()

		err = models.DB.Create(&source).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newIncomeSource(c, source)
		r.Data = append(r.Data, IncomeSourceResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get income sources
// @Description	Returns a list of income sources
// @Tags			Income Sources
// @Produce		json
// @Success		200	{object}	IncomeSourceListResponse
// @Failure		400	{object}	IncomeSourceListResponse
// @Failure		500	{object}	IncomeSourceListResponse
// @Router			/v1/income-sources [get]
// @Param			category	query	string	false	"Filter by name"
// @Param			type		query	string	false	"Filter by type"
// @Param			offset		query	uint	false	"The offset of the first income source returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of income sources to return. Defaults to 50."
func GetIncomeSources(c *gin.Context) {
	var filter IncomeSourceQueryFilter

	err := c.ShouldBindQuery(&filter)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, IncomeSourceListResponse{
			Error: &s,
		})
		return
	}

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel := filter.model()
	q := models.DB.
		Order("position ASC, created_at ASC").
		Where(&filterModel, queryFields...)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 income sources and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var sources []models.IncomeSource
	err = q.Find(&sources).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeSourceListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeSourceListResponse{
			Error: &e,
		})
		return
	}

	data := make([]IncomeSource, 0, len(sources))
	for _, source := range sources {
		data = append(data, newIncomeSource(c, source))
	}

	c.JSON(http.StatusOK, IncomeSourceListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get income source
// @Description	Returns a specific income source
// @Tags			Income Sources
// @Produce		json
// @Success		200	{object}	IncomeSourceResponse
// @Failure		400	{object}	IncomeSourceResponse
// @Failure		404	{object}	IncomeSourceResponse
// @Failure		500	{object}	IncomeSourceResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/income-sources/{id} [get]
func GetIncomeSource(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeSourceResponse{
			Error: &s,
		})
		return
	}

	var source models.IncomeSource
	err = models.DB.First(&source, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeSourceResponse{
			Error: &s,
		})
		return
	}

	data := newIncomeSource(c, source)
	c.JSON(http.StatusOK, IncomeSourceResponse{Data: &data})
}

// @Summary		Update income source
// @Description	Update an existing income source. Only values to be updated need to be specified.
// @Tags			Income Sources
// @Accept			json
// @Produce		json
// @Success		200		{object}	IncomeSourceResponse
// @Failure		400		{object}	IncomeSourceResponse
// @Failure		404		{object}	IncomeSourceResponse
// @Failure		500		{object}	IncomeSourceResponse
// @Param			id		path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			source	body		IncomeSourceEditable	true	"Income source"
// @Router			/v1/income-sources/{id} [patch]
func UpdateIncomeSource(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeSourceResponse{
			Error: &s,
		})
		return
	}

	var source models.IncomeSource
	err = models.DB.First(&source, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeSourceResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, IncomeSourceEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeSourceResponse{
			Error: &s,
		})
		return
	}

	var data IncomeSourceEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeSourceResponse{
			Error: &s,
		})
		return
	}

	patch(&source, data.model(), updateFields)

	err = models.DB.Save(&source).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeSourceResponse{
			Error: &s,
		})
		return
	}

	r := newIncomeSource(c, source)
	c.JSON(http.StatusOK, IncomeSourceResponse{Data: &r})
}

// @Summary		Delete income source
// @Description	Deletes an income source
// @Tags			Income Sources
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/income-sources/{id} [delete]
func DeleteIncomeSource(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var source models.IncomeSource
	err = models.DB.First(&source, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&source).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
