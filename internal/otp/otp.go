package otp

import (
	"math/rand"
	"strconv"
	"sync"
	"time"
)

// DefaultTTL is how long an issued code stays valid.
const DefaultTTL = time.Hour

// Result is the outcome of checking a supplied code against stored state.
type Result int

const (
	Valid Result = iota
	Mismatch
	Expired
)

func (r Result) String() string {
	switch r {
	case Valid:
		return "valid"
	case Mismatch:
		return "mismatch"
	case Expired:
		return "expired"
	default:
		return "unknown"
	}
}

// Generator produces 4-digit one-time codes from a single shared source.
// The engine holds no per-channel state; callers persist the code and
// expiry themselves.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
	ttl time.Duration
	now func() time.Time
}

// New returns a generator seeded from the clock.
func New(ttl time.Duration) *Generator {
	return NewWithSeed(ttl, time.Now().UnixNano())
}

// NewWithSeed returns a generator with a fixed seed for deterministic tests.
func NewWithSeed(ttl time.Duration, seed int64) *Generator {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Generator{
		rnd: rand.New(rand.NewSource(seed)),
		ttl: ttl,
		now: time.Now,
	}
}

// Generate returns a code in the inclusive range [1000, 9999].
func (g *Generator) Generate() string {
	g.mu.Lock()
	n := 1000 + g.rnd.Intn(9000)
	g.mu.Unlock()
	return strconv.Itoa(n)
}

// Issue returns a fresh code together with its expiry timestamp.
func (g *Generator) Issue() (string, time.Time) {
	return g.Generate(), g.now().UTC().Add(g.ttl)
}

// Validate checks a supplied code against the stored code and expiry.
// A wrong code reports Mismatch even when the stored code is also expired;
// callers depend on that precedence to distinguish the two failures.
func Validate(stored string, expiry time.Time, supplied string, now time.Time) Result {
	if stored == "" || supplied != stored {
		return Mismatch
	}
	if now.After(expiry) {
		return Expired
	}
	return Valid
}
