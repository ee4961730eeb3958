package test

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

// TmpDatabase returns the path of a fresh sqlite file in a directory
// that is removed when the test finishes.
func TmpDatabase(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), fmt.Sprintf("konverty-%s.db", uuid.NewString()))
}
