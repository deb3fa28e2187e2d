// Package ulid generates block identifiers.
package ulid

import (
	"io"
	"math/rand"
	"regexp"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropy     io.Reader
	entropyOnce sync.Once

	mu        sync.RWMutex
	generator = DefaultGenerator
)

// Crockford's Base32, which excludes I, L, O and U.
var ulidPattern = regexp.MustCompile(`^[0123456789ABCDEFGHJKMNPQRSTVWXYZ]{26}$`)

// DefaultEntropy returns a monotonic, goroutine-safe entropy source.
func DefaultEntropy() io.Reader {
	entropyOnce.Do(func() {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		entropy = &ulid.LockedMonotonicReader{
			MonotonicReader: ulid.Monotonic(rng, 0),
		}
	})
	return entropy
}

// ValidID reports whether id is a canonical, upper-case ULID.
func ValidID(id string) bool {
	if !ulidPattern.MatchString(id) {
		return false
	}
	_, err := ulid.ParseStrict(id)
	return err == nil
}

// GenerateID returns a new identifier from the active generator.
func GenerateID() string {
	mu.RLock()
	gen := generator
	mu.RUnlock()
	return gen()
}

// Timestamp extracts the creation time encoded in a valid id.
func Timestamp(id string) (time.Time, bool) {
	if !ValidID(id) {
		return time.Time{}, false
	}
	return ulid.Time(ulid.MustParse(id).Time()), true
}

func DefaultGenerator() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), DefaultEntropy()).String()
}

func ResetGenerator() {
	setGenerator(DefaultGenerator)
}

// MockGenerator makes every subsequent GenerateID return mockValue.
func MockGenerator(mockValue string) {
	setGenerator(func() string { return mockValue })
}

func setGenerator(fn func() string) {
	mu.Lock()
	generator = fn
	mu.Unlock()
}
