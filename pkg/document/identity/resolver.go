package identity

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/flashresume/flashresume/internal/ulid"
)

type Strategy int

// Strategies determine what block identities look like.
//
// - ULIDStrategy: every block gets a fresh ULID. IDs are unique across
//   sessions and carry their creation time.
// - SequentialStrategy: blocks are named after their kind, with a numeric
//   suffix from the second occurrence on ("education", "education-2").
//   IDs are only unique within one resolver.
const (
	UnspecifiedStrategy Strategy = iota
	ULIDStrategy
	SequentialStrategy
)

const DefaultStrategy = ULIDStrategy

func (s Strategy) String() string {
	switch s {
	case ULIDStrategy:
		return "ulid"
	case SequentialStrategy:
		return "sequential"
	default:
		return "unspecified"
	}
}

func ParseStrategy(value string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "ulid":
		return ULIDStrategy, nil
	case "sequential":
		return SequentialStrategy, nil
	default:
		return UnspecifiedStrategy, errors.Errorf("unknown identity strategy: %q", value)
	}
}

type Resolver struct {
	strategy Strategy

	mu       sync.Mutex
	counters map[string]int
}

func NewResolver(strategy Strategy) *Resolver {
	if strategy == UnspecifiedStrategy {
		strategy = DefaultStrategy
	}
	return &Resolver{
		strategy: strategy,
		counters: make(map[string]int),
	}
}

// BlockID returns a new identity for a block named name.
func (r *Resolver) BlockID(name string) string {
	if r.strategy != SequentialStrategy {
		return ulid.GenerateID()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.counters[name]++
	if n := r.counters[name]; n > 1 {
		return fmt.Sprintf("%s-%d", name, n)
	}
	return name
}

// Reset forgets every name handed out so far. Sequential ids start over.
func (r *Resolver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.counters)
}
