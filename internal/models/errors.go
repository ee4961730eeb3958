package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Validation errors
var (
	ErrCategoryEmpty                = errors.New("the category must not be empty")
	ErrExpectedNegative             = errors.New("the expected amount must not be negative")
	ErrAmountNegative               = errors.New("the amount must not be negative")
	ErrChecklistListInvalid         = errors.New("the list must be one of 'needs' or 'wants'")
	ErrDayInvalid                   = errors.New("the day must be between 1 and 31")
	ErrPlannedDateInvalid           = errors.New("the planned date must have the format DD.MM")
	ErrIncomeTypeInvalid            = errors.New("the income type must be one of 'regular', 'previous-month' or 'other'")
	ErrExpenseCategoryNameEmpty     = errors.New("the name of the expense category must not be empty")
	ErrExpenseCategoryNameNotUnique = errors.New("the expense category name must be unique")
	ErrCutoffDayInvalid             = errors.New("the cutoff day must be between 1 and 31")
	ErrDocumentKeyEmpty             = errors.New("the document key must not be empty")
	ErrPreviousMonthIncomeNotUnique = errors.New("there can only be one income source of type 'previous-month'")
	ErrExpenseCategoryDoesNotExist  = errors.New("the expense category does not exist")
	ErrTransferAmountInvalid        = errors.New("the transfer amount must be positive")
	ErrTransferSameEnvelope         = errors.New("money can not be transferred into the same envelope")
)
