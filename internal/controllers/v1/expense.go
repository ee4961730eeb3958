package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/konverty/backend/internal/httputil"
	"github.com/konverty/backend/internal/models"
	"github.com/konverty/backend/internal/reconcile"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterExpenseRoutes registers the routes for expenses with
// the RouterGroup that is passed.
func RegisterExpenseRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsExpenseList)
		r.GET("", GetExpenses)
		r.POST("", CreateExpenses)
	}

	// Expense with ID
	{
		r.OPTIONS("/:id", OptionsExpenseDetail)
		r.GET("/:id", GetExpense)
		r.PATCH("/:id", UpdateExpense)
		r.DELETE("/:id", DeleteExpense)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenses
// @Success		204
// @Router			/v1/expenses [options]
func OptionsExpenseList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenses
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/expenses/{id} [options]
func OptionsExpenseDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Expense{})
}

// @Summary		Create expenses
// @Description	Creates new entries in the daily ledger. An entry whose comment names an expense category is filed under
// @Description	that category. Entries after the cutoff day are planned. For every other entry with a comment, the amount
// @Description	is added to the actual amount of the first checklist item named like the comment, then all actual amounts
// @Description	are reconciled.
// @Tags			Expenses
// @Produce		json
// @Success		201			{object}	ExpenseCreateResponse
// @Failure		400			{object}	ExpenseCreateResponse
// @Failure		500			{object}	ExpenseCreateResponse
// @Param			expenses	body		[]ExpenseEditable	true	"Expenses"
// @Router			/v1/expenses [post]
func CreateExpenses(c *gin.Context) {
	var editables []ExpenseEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseCreateResponse{
			Error: &e,
		})
		return
	}

	cutoffDay, err := models.CutoffDay(models.DocumentStore{DB: models.DB})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseCreateResponse{
			Error: &e,
		})
		return
	}

	var categories []models.ExpenseCategory
	err = models.DB.Order("position ASC, created_at ASC").Find(&categories).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := ExpenseCreateResponse{}
	month := time.Now().Month()

	for _, editable := range editables {
		expense := editable.model()
		route(&expense, categories)
		markPlanned(&expense, cutoffDay, month)

		err = models.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&expense).Error; err != nil {
				return err
			}

			if !expense.Planned && expense.Comment != "" {
				if _, err := models.IncrementActual(tx, expense.Comment, expense.Amount); err != nil {
					return err
				}
			}

			_, _, err := models.Reconcile(tx)
			return err
		})
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newExpense(c, expense)
		r.Data = append(r.Data, ExpenseResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get expenses
// @Description	Returns a list of expenses ordered by day
// @Tags			Expenses
// @Produce		json
// @Success		200	{object}	ExpenseListResponse
// @Failure		400	{object}	ExpenseListResponse
// @Failure		500	{object}	ExpenseListResponse
// @Router			/v1/expenses [get]
// @Param			category	query	string	false	"Filter by expense category ID"
// @Param			day			query	int		false	"Filter by day of month"
// @Param			week		query	int		false	"Filter by week (1-4)"
// @Param			planned		query	bool	false	"Is the entry planned?"
// @Param			comment		query	string	false	"Filter by comment"
// @Param			offset		query	uint	false	"The offset of the first expense returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of expenses to return. Defaults to 50."
func GetExpenses(c *gin.Context) {
	var filter ExpenseQueryFilter

	err := c.ShouldBindQuery(&filter)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ExpenseListResponse{
			Error: &s,
		})
		return
	}

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel := filter.model()
	q := models.DB.
		Order("day ASC, position ASC, created_at ASC").
		Where(&filterModel, queryFields...)

	if slices.Contains(setFields, "Week") {
		if filter.Week < 1 || filter.Week > 4 {
			s := errWeekInvalid.Error()
			c.JSON(http.StatusBadRequest, ExpenseListResponse{
				Error: &s,
			})
			return
		}

		first, last := reconcile.WeekDays(filter.Week)
		q = q.Where("day BETWEEN ? AND ?", first, last)
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 expenses and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var expenses []models.Expense
	err = q.Find(&expenses).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Expense, 0, len(expenses))
	for _, expense := range expenses {
		data = append(data, newExpense(c, expense))
	}

	c.JSON(http.StatusOK, ExpenseListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get expense
// @Description	Returns a specific expense
// @Tags			Expenses
// @Produce		json
// @Success		200	{object}	ExpenseResponse
// @Failure		400	{object}	ExpenseResponse
// @Failure		404	{object}	ExpenseResponse
// @Failure		500	{object}	ExpenseResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/expenses/{id} [get]
func GetExpense(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &s,
		})
		return
	}

	var expense models.Expense
	err = models.DB.First(&expense, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &s,
		})
		return
	}

	data := newExpense(c, expense)
	c.JSON(http.StatusOK, ExpenseResponse{Data: &data})
}

// @Summary		Update expense
// @Description	Update an existing expense. Only values to be updated need to be specified. The checklists are reconciled afterwards.
// @Tags			Expenses
// @Accept			json
// @Produce		json
// @Success		200		{object}	ExpenseResponse
// @Failure		400		{object}	ExpenseResponse
// @Failure		404		{object}	ExpenseResponse
// @Failure		500		{object}	ExpenseResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			expense	body		ExpenseEditable	true	"Expense"
// @Router			/v1/expenses/{id} [patch]
func UpdateExpense(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &s,
		})
		return
	}

	var expense models.Expense
	err = models.DB.First(&expense, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, ExpenseEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &s,
		})
		return
	}

	var data ExpenseEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &s,
		})
		return
	}

	patch(&expense, data.model(), updateFields)

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if slices.Contains(updateFields, "Comment") {
			var categories []models.ExpenseCategory
			err := tx.Order("position ASC, created_at ASC").Find(&categories).Error
			if err != nil {
				return err
			}
			route(&expense, categories)
		}

		cutoffDay, err := models.CutoffDay(models.DocumentStore{DB: tx})
		if err != nil {
			return err
		}
		markPlanned(&expense, cutoffDay, time.Now().Month())

		if err := tx.Save(&expense).Error; err != nil {
			return err
		}

		_, _, err = models.Reconcile(tx)
		return err
	})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &s,
		})
		return
	}

	r := newExpense(c, expense)
	c.JSON(http.StatusOK, ExpenseResponse{Data: &r})
}

// @Summary		Delete expense
// @Description	Deletes an expense. The checklists are reconciled afterwards.
// @Tags			Expenses
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/expenses/{id} [delete]
func DeleteExpense(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var expense models.Expense
	err = models.DB.First(&expense, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&expense).Error; err != nil {
			return err
		}

		_, _, err := models.Reconcile(tx)
		return err
	})
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
