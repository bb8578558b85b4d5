package query

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/poiesic/cognatedb/core"
	"github.com/poiesic/cognatedb/store"
)

// Sampler returns uniformly random subsets of groups without
// replacement.
type Sampler struct {
	store  *store.Store
	logger *slog.Logger

	// rng is guarded by mu; *rand.Rand is not safe for concurrent use.
	mu  sync.Mutex
	rng *rand.Rand
}

// SamplerOption configures a Sampler.
type SamplerOption func(*Sampler) error

// WithRand sets the random source. The default source is seeded
// unpredictably; tests inject a fixed seed to get deterministic draws.
func WithRand(rng *rand.Rand) SamplerOption {
	return func(s *Sampler) error {
		if rng != nil {
			s.rng = rng
		}
		return nil
	}
}

// WithSamplerLogger sets a custom logger.
// Default is slog.Default().
func WithSamplerLogger(logger *slog.Logger) SamplerOption {
	return func(s *Sampler) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSampler creates a new sampler over the given store.
func NewSampler(st *store.Store, opts ...SamplerOption) (*Sampler, error) {
	if st == nil {
		return nil, ErrStoreRequired
	}

	s := &Sampler{
		store:  st,
		logger: slog.Default(),
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Sample draws count distinct groups uniformly at random. A count
// larger than the dataset clamps to the full set rather than erroring;
// a count of zero or less is invalid. Each call draws independently.
func (s *Sampler) Sample(count int) ([]*core.CognateGroup, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: %w (count %d)", core.ErrInvalidQuery, core.ErrNonPositiveCount, count)
	}

	snap := s.store.Snapshot()
	total := snap.Len()
	if count > total {
		count = total
	}

	s.mu.Lock()
	indices := s.rng.Perm(total)
	s.mu.Unlock()

	groups := make([]*core.CognateGroup, 0, count)
	for _, idx := range indices[:count] {
		groups = append(groups, snap.At(idx))
	}
	return groups, nil
}
