// Package uuid makes github.com/google/uuid bindable from URI and
// query parameters.
package uuid

import (
	guuid "github.com/google/uuid"
)

// UUID is a google/uuid UUID that gin can bind with its form and uri
// bindings.
type UUID struct {
	guuid.UUID
}

var Nil UUID

// UnmarshalParam implements binding.BindUnmarshaler. An empty
// parameter is the Nil UUID so that optional filters stay unset.
func (u *UUID) UnmarshalParam(param string) error {
	if param == "" {
		*u = Nil
		return nil
	}

	parsed, err := guuid.Parse(param)
	if err != nil {
		return err
	}

	u.UUID = parsed
	return nil
}
