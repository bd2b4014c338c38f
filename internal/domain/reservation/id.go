package reservation

import (
	"strings"

	"github.com/google/uuid"
)

// NewID produces an opaque booking token. "BK" prefix kept so support staff
// can spot booking IDs at a glance; the rest is a random UUID, so collisions
// within a store are vanishingly unlikely.
func NewID() string {
	return "BK" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}
