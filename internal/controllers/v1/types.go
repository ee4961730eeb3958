package v1

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/konverty/backend/internal/models"
	kuuid "github.com/konverty/backend/internal/uuid"
)

type URIID struct {
	ID kuuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

type Pagination struct {
	Count  int   `json:"count" example:"25"`  // The amount of records returned in this response
	Offset uint  `json:"offset" example:"50"` // The offset for the first record returned
	Limit  int   `json:"limit" example:"25"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total" example:"827"` // The total number of resources matching the query
}

type httpError struct {
	Error string `json:"error" example:"An ID specified in the query string was not a valid UUID"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

var (
	errCleanupConfirmation = errors.New("the confirmation for the cleanup API call was incorrect")
	errCutoffDayQuery      = errors.New("the cutoff query parameter must be a day between 1 and 31")
	errPeriodInvalid       = errors.New("the period must be 0 (whole month), 1 (days 1-15) or 2 (days 16-31)")
	errWeekInvalid         = errors.New("the week must be between 1 and 4")
	errMonthInvalid        = errors.New("the month must have the format YYYY-MM")
)

// patch copies the fields with the given names from src to dst. dst must
// be a pointer to a struct.
//
// Updates go through gorm's Save so that the hooks of the model see the
// updated values.
func patch(dst, src any, fields []string) {
	d := reflect.ValueOf(dst).Elem()
	s := reflect.Indirect(reflect.ValueOf(src))

	for _, field := range fields {
		d.FieldByName(field).Set(s.FieldByName(field))
	}
}
