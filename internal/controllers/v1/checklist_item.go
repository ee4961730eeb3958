package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/konverty/backend/internal/httputil"
	"github.com/konverty/backend/internal/models"
	"golang.org/x/exp/slices"
)

// defaultItemEnvelope is used for new checklist items without an envelope.
const defaultItemEnvelope = "🏠"

// RegisterChecklistItemRoutes registers the routes for checklist items with
// the RouterGroup that is passed.
func RegisterChecklistItemRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsChecklistItemList)
		r.GET("", GetChecklistItems)
		r.POST("", CreateChecklistItems)
	}

	// Checklist item with ID
	{
		r.OPTIONS("/:id", OptionsChecklistItemDetail)
		r.GET("/:id", GetChecklistItem)
		r.PATCH("/:id", UpdateChecklistItem)
		r.DELETE("/:id", DeleteChecklistItem)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Checklist Items
// @Success		204
// @Router			/v1/checklist-items [options]
func OptionsChecklistItemList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Checklist Items
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/checklist-items/{id} [options]
func OptionsChecklistItemDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.ChecklistItem{})
}

// @Summary		Create checklist items
// @Description	Creates new checklist items. Items without an envelope are put into the envelope "Обычная жизнь".
// @Tags			Checklist Items
// @Produce		json
// @Success		201		{object}	ChecklistItemCreateResponse
// @Failure		400		{object}	ChecklistItemCreateResponse
// @Failure		500		{object}	ChecklistItemCreateResponse
// @Param			items	body		[]ChecklistItemEditable	true	"Checklist items"
// @Router			/v1/checklist-items [post]
func CreateChecklistItems(c *gin.Context) {
	var editables []ChecklistItemEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ChecklistItemCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := ChecklistItemCreateResponse{}

	for _, editable := range editables {
		if editable.Envelope == "" {
			editable.Envelope = defaultItemEnvelope
		}

		item := editable.model()

		err = models.DB.Create(&item).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newChecklistItem(c, item)
		r.Data = append(r.Data, ChecklistItemResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get checklist items
// @Description	Returns a list of checklist items, ordered by list and position
// @Tags			Checklist Items
// @Produce		json
// @Success		200	{object}	ChecklistItemListResponse
// @Failure		400	{object}	ChecklistItemListResponse
// @Failure		500	{object}	ChecklistItemListResponse
// @Router			/v1/checklist-items [get]
// @Param			list			query	string	false	"Filter by checklist, needs or wants"
// @Param			category		query	string	false	"Filter by category"
// @Param			envelope		query	string	false	"Filter by envelope name or emoji"
// @Param			dailyCategory	query	string	false	"Filter by linked expense category"
// @Param			done			query	bool	false	"Is the item checked off?"
// @Param			offset			query	uint	false	"The offset of the first item returned. Defaults to 0."
// @Param			limit			query	int		false	"Maximum number of items to return. Defaults to 50."
func GetChecklistItems(c *gin.Context) {
	var filter ChecklistItemQueryFilter

	// Every parameter is bound into a string or bool, a failure is a bad request
	err := c.ShouldBindQuery(&filter)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ChecklistItemListResponse{
			Error: &s,
		})
		return
	}

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ChecklistItemListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.
		Order("list ASC, position ASC, created_at ASC").
		Where(&filterModel, queryFields...)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 items and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var items []models.ChecklistItem
	err = q.Find(&items).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ChecklistItemListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ChecklistItemListResponse{
			Error: &e,
		})
		return
	}

	data := make([]ChecklistItem, 0, len(items))
	for _, item := range items {
		data = append(data, newChecklistItem(c, item))
	}

	c.JSON(http.StatusOK, ChecklistItemListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get checklist item
// @Description	Returns a specific checklist item
// @Tags			Checklist Items
// @Produce		json
// @Success		200	{object}	ChecklistItemResponse
// @Failure		400	{object}	ChecklistItemResponse
// @Failure		404	{object}	ChecklistItemResponse
// @Failure		500	{object}	ChecklistItemResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/checklist-items/{id} [get]
func GetChecklistItem(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ChecklistItemResponse{
			Error: &s,
		})
		return
	}

	var item models.ChecklistItem
	err = models.DB.First(&item, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ChecklistItemResponse{
			Error: &s,
		})
		return
	}

	data := newChecklistItem(c, item)
	c.JSON(http.StatusOK, ChecklistItemResponse{Data: &data})
}

// @Summary		Update checklist item
// @Description	Update an existing checklist item. Only values to be updated need to be specified.
// @Tags			Checklist Items
// @Accept			json
// @Produce		json
// @Success		200		{object}	ChecklistItemResponse
// @Failure		400		{object}	ChecklistItemResponse
// @Failure		404		{object}	ChecklistItemResponse
// @Failure		500		{object}	ChecklistItemResponse
// @Param			id		path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			item	body		ChecklistItemEditable	true	"Checklist item"
// @Router			/v1/checklist-items/{id} [patch]
func UpdateChecklistItem(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ChecklistItemResponse{
			Error: &s,
		})
		return
	}

	var item models.ChecklistItem
	err = models.DB.First(&item, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ChecklistItemResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, ChecklistItemEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ChecklistItemResponse{
			Error: &s,
		})
		return
	}

	var data ChecklistItemEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ChecklistItemResponse{
			Error: &s,
		})
		return
	}

	patch(&item, data.model(), updateFields)

	err = models.DB.Save(&item).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ChecklistItemResponse{
			Error: &s,
		})
		return
	}

	r := newChecklistItem(c, item)
	c.JSON(http.StatusOK, ChecklistItemResponse{Data: &r})
}

// @Summary		Delete checklist item
// @Description	Deletes a checklist item
// @Tags			Checklist Items
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/checklist-items/{id} [delete]
func DeleteChecklistItem(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var item models.ChecklistItem
	err = models.DB.First(&item, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&item).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
