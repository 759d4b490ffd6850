package templates

import (
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// IDSource hands out unique beat ids.
type IDSource interface {
	NewID() string
}

// ULIDSource generates monotonic ULIDs. It is safe for concurrent use.
type ULIDSource struct {
	mu      sync.Mutex
	now     func() time.Time
	entropy *ulid.MonotonicEntropy
}

// NewULIDSource returns a source stamped by now and fed by entropy. Passing a
// fixed clock and a seeded reader makes the sequence reproducible.
func NewULIDSource(now func() time.Time, entropy io.Reader) *ULIDSource {
	return &ULIDSource{now: now, entropy: ulid.Monotonic(entropy, 0)}
}

func (s *ULIDSource) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(s.now()), s.entropy).String()
}
