package id

import (
	"strings"

	"github.com/google/uuid"
)

// New returns a random unique ID for a ledger entity.
func New() string {
	return uuid.NewString()
}

// Slug derives a readable ID from a name: "Food & Dining" -> "food-dining".
// Returns "" when the name has no usable characters.
func Slug(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
