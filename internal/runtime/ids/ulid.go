package ids

import (
	"crypto/rand"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Generator produces monotonic ULIDs. It is safe for concurrent use.
type Generator struct {
	mu      sync.Mutex
	entropy io.Reader
}

var defaultGenerator = NewGenerator()

// NewGenerator returns a Generator backed by crypto/rand with monotonic
// entropy, so ids created within the same millisecond still sort.
func NewGenerator() *Generator {
	return &Generator{entropy: ulid.Monotonic(rand.Reader, 0)}
}

// At returns a ULID stamped with the supplied time.
func (g *Generator) At(t time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return ulid.MustNew(ulid.Timestamp(t), g.entropy).String()
}

// CreateULID returns a time-sortable ULID encoded as a 26-character string.
// Exchange ids, correlation ids and fallback message UUIDs all come from here.
func CreateULID() string {
	return defaultGenerator.At(time.Now())
}
