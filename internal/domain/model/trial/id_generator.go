package trial

import (
	"crypto/rand"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// IDGenerator hands out trial IDs
type IDGenerator interface {
	NewID() string
}

// ULIDGenerator generates ULIDs with monotonic entropy
// Format: ULID (e.g., 01JB6X8Y2K9FQR4T3VWHGP5M2C)
type ULIDGenerator struct {
	mu      sync.Mutex
	entropy io.Reader
	now     func() time.Time
}

// NewULIDGenerator creates a generator backed by crypto/rand
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
}

// NewID returns a fresh ULID string
func (g *ULIDGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(g.now()), g.entropy).String()
}

// SequenceGenerator returns prefix-1, prefix-2, ... and is meant for tests
type SequenceGenerator struct {
	Prefix string
	mu     sync.Mutex
	n      int
}

// NewID returns the next ID in the sequence
func (g *SequenceGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return g.Prefix + strconv.Itoa(g.n)
}
