// Package ingest compiles parsed cognate groups into the storage
// artifact.
//
// The Pipeline splits the dataset into batches and writes them through
// a worker pool. Each batch carries its own base ordinal, so the
// artifact's iteration order matches the parse order no matter how the
// writes interleave.
package ingest

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/cognatedb/core"
	"github.com/poiesic/cognatedb/storage"
)

const defaultBatchSize = 250

// Pipeline writes cognate groups into a group repository.
type Pipeline struct {
	repository storage.GroupRepository
	pool       *ants.Pool
	batchSize  int
	logger     *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent batch writes.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithBatchSize sets how many groups each write batch carries.
// Default is 250.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		p.batchSize = size
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new compile pipeline.
func NewPipeline(repository storage.GroupRepository, opts ...Option) (*Pipeline, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		repository: repository,
		pool:       pool,
		batchSize:  defaultBatchSize,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Release frees the worker pool. The pipeline cannot be reused afterwards.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

// Run writes all groups to the repository and blocks until every batch
// has landed. The first batch error aborts submission of further
// batches and is returned.
func (p *Pipeline) Run(ctx context.Context, groups []*core.CognateGroup) error {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	setErr := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	failed := func() bool {
		mu.Lock()
		defer mu.Unlock()
		return firstErr != nil
	}

	for start := 0; start < len(groups); start += p.batchSize {
		if err := ctx.Err(); err != nil {
			setErr(err)
			break
		}
		if failed() {
			break
		}

		end := start + p.batchSize
		if end > len(groups) {
			end = len(groups)
		}
		batch := groups[start:end]
		ordinal := uint64(start)

		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()
			if err := p.repository.PutGroups(ctx, ordinal, batch...); err != nil {
				p.logger.Error("batch write failed", "ordinal", ordinal, "size", len(batch), "err", err)
				setErr(err)
				return
			}
			p.logger.Debug("batch written", "ordinal", ordinal, "size", len(batch))
		})
		if submitErr != nil {
			wg.Done()
			setErr(submitErr)
			break
		}
	}

	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	p.logger.Info("dataset compiled", "groups", len(groups))
	return nil
}
