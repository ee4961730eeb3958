package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/konverty/backend/internal/httputil"
	"github.com/konverty/backend/internal/models"
	"github.com/konverty/backend/internal/reconcile"
	"golang.org/x/exp/slices"
)

// RegisterExpenseCategoryRoutes registers the routes for expense categories with
// the RouterGroup that is passed.
func RegisterExpenseCategoryRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsExpenseCategoryList)
		r.GET("", GetExpenseCategories)
		r.POST("", CreateExpenseCategories)
	}

	// Expense category with ID
	{
		r.OPTIONS("/:id", OptionsExpenseCategoryDetail)
		r.GET("/:id", GetExpenseCategory)
		r.PATCH("/:id", UpdateExpenseCategory)
		r.DELETE("/:id", DeleteExpenseCategory)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expense Categories
// @Success		204
// @Router			/v1/expense-categories [options]
func OptionsExpenseCategoryList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expense Categories
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/expense-categories/{id} [options]
func OptionsExpenseCategoryDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.ExpenseCategory{})
}

// @Summary		Create expense categories
// @Description	Creates new expense categories
// @Tags			Expense Categories
// @Produce		json
// @Success		201			{object}	ExpenseCategoryCreateResponse
// @Failure		400			{object}	ExpenseCategoryCreateResponse
// @Failure		500			{object}	ExpenseCategoryCreateResponse
// @Param			categories	body		[]ExpenseCategoryEditable	true	"Expense categories"
// @Router			/v1/expense-categories [post]
func CreateExpenseCategories(c *gin.Context) {
	var editables []ExpenseCategoryEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseCategoryCreateResponse{
			Error: &e,
		})
		return
	}

	ctx, err := newExpenseCategoryContext(models.DB, reconcile.WholeMonth)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseCategoryCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := ExpenseCategoryCreateResponse{}

	for _, editable := range editables {
		if editable.Color == "" {
			editable.Color = defaultCategoryColor
		}

		category := editable.model()

		err = models.DB.Create(&category).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data, err := newExpenseCategory(c, models.DB, ctx, category)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}
		r.Data = append(r.Data, ExpenseCategoryResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get expense categories
// @Description	Returns a list of expense categories in ledger order
// @Tags			Expense Categories
// @Produce		json
// @Success		200	{object}	ExpenseCategoryListResponse
// @Failure		400	{object}	ExpenseCategoryListResponse
// @Failure		500	{object}	ExpenseCategoryListResponse
// @Router			/v1/expense-categories [get]
// @Param			name		query	string	false	"Filter by name"
// @Param			envelope	query	string	false	"Filter by envelope name or emoji"
// @Param			period		query	int		false	"Period for the totals. 0 for the whole month, 1 for days 1-15, 2 for days 16-31"
// @Param			offset		query	uint	false	"The offset of the first expense category returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of expense categories to return. Defaults to 50."
func GetExpenseCategories(c *gin.Context) {
	var filter ExpenseCategoryQueryFilter

	err := c.ShouldBindQuery(&filter)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ExpenseCategoryListResponse{
			Error: &s,
		})
		return
	}

	period, err := ExpenseCategoryPeriod{Period: filter.Period}.period()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseCategoryListResponse{
			Error: &s,
		})
		return
	}

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseCategoryListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.
		Order("position ASC, created_at ASC").
		Where(&filterModel, queryFields...)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 expense categories and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var categories []models.ExpenseCategory
	err = q.Find(&categories).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseCategoryListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseCategoryListResponse{
			Error: &e,
		})
		return
	}

	ctx, err := newExpenseCategoryContext(models.DB, period)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseCategoryListResponse{
			Error: &s,
		})
		return
	}

	data := make([]ExpenseCategory, 0, len(categories))
	for _, category := range categories {
		apiResource, err := newExpenseCategory(c, models.DB, ctx, category)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), ExpenseCategoryListResponse{
				Error: &s,
			})
			return
		}
		data = append(data, apiResource)
	}

	c.JSON(http.StatusOK, ExpenseCategoryListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get expense category
// @Description	Returns a specific expense category with its entries
// @Tags			Expense Categories
// @Produce		json
// @Success		200		{object}	ExpenseCategoryResponse
// @Failure		400		{object}	ExpenseCategoryResponse
// @Failure		404		{object}	ExpenseCategoryResponse
// @Failure		500		{object}	ExpenseCategoryResponse
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			period	query		int		false	"Period for the totals. 0 for the whole month, 1 for days 1-15, 2 for days 16-31"
// @Router			/v1/expense-categories/{id} [get]
func GetExpenseCategory(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseCategoryResponse{
			Error: &s,
		})
		return
	}

	var query ExpenseCategoryPeriod
	err = c.ShouldBindQuery(&query)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ExpenseCategoryResponse{
			Error: &s,
		})
		return
	}

	period, err := query.period()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseCategoryResponse{
			Error: &s,
		})
		return
	}

	var category models.ExpenseCategory
	err = models.DB.First(&category, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseCategoryResponse{
			Error: &s,
		})
		return
	}

	ctx, err := newExpenseCategoryContext(models.DB, period)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseCategoryResponse{
			Error: &s,
		})
		return
	}

	data, err := newExpenseCategory(c, models.DB, ctx, category)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseCategoryResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, ExpenseCategoryResponse{Data: &data})
}

// @Summary		Update expense category
// @Description	Update an existing expense category. Only values to be updated need to be specified. The checklists are reconciled afterwards.
// @Tags			Expense Categories
// @Accept			json
// @Produce		json
// @Success		200			{object}	ExpenseCategoryResponse
// @Failure		400			{object}	ExpenseCategoryResponse
// @Failure		404			{object}	ExpenseCategoryResponse
// @Failure		500			{object}	ExpenseCategoryResponse
// @Param			id			path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			category	body		ExpenseCategoryEditable	true	"Expense category"
// @Router			/v1/expense-categories/{id} [patch]
func UpdateExpenseCategory(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseCategoryResponse{
			Error: &s,
		})
		return
	}

	var category models.ExpenseCategory
	err = models.DB.First(&category, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseCategoryResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, ExpenseCategoryEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseCategoryResponse{
			Error: &s,
		})
		return
	}

	var data ExpenseCategoryEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseCategoryResponse{
			Error: &s,
		})
		return
	}

	patch(&category, data.model(), updateFields)

	err = models.DB.Save(&category).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseCategoryResponse{
			Error: &s,
		})
		return
	}

	// A renamed category can change where its entries are attributed
	_, _, err = models.Reconcile(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseCategoryResponse{
			Error: &s,
		})
		return
	}

	ctx, err := newExpenseCategoryContext(models.DB, reconcile.WholeMonth)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseCategoryResponse{
			Error: &s,
		})
		return
	}

	r, err := newExpenseCategory(c, models.DB, ctx, category)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseCategoryResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, ExpenseCategoryResponse{Data: &r})
}

// @Summary		Delete expense category
// @Description	Deletes an expense category with all of its entries. The checklists are reconciled afterwards.
// @Tags			Expense Categories
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/expense-categories/{id} [delete]
func DeleteExpenseCategory(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var category models.ExpenseCategory
	err = models.DB.First(&category, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&category).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	_, _, err = models.Reconcile(models.DB)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
