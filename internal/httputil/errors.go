package httputil

import "errors"

// Errors returned while reading a request. All of them are client errors.
var (
	ErrInvalidBody      = errors.New("the request body could not be parsed, please check that it is valid JSON for this resource")
	ErrRequestBodyEmpty = errors.New("the request body must not be empty")
	ErrInvalidUUID      = errors.New("the specified ID is not a valid UUID")
)
