package skinpack

import (
	"strings"

	"github.com/google/uuid"
)

// Generator produces unique string identifiers.
type Generator func() string

// UUIDv4 returns a Generator of random RFC 9562 UUID strings.
func UUIDv4() Generator {
	return func() string {
		return uuid.NewString()
	}
}

// DefaultGenerator is used when a Pack or ExportOptions has none.
var DefaultGenerator Generator = UUIDv4()

// shortID derives an 8 character skin ID from a UUID.
func shortID(gen Generator) string {
	id := strings.ReplaceAll(gen(), "-", "")
	if len(id) > 8 {
		id = id[:8]
	}
	return id
}
