// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package server exposes the cognate dataset over a JSON HTTP API.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/poiesic/cognatedb/query"
	"github.com/poiesic/cognatedb/store"
)

// Server serves read-only lookups against a dataset store. All
// handlers read from the store's current snapshot, so a reload swaps in
// new data without restarting the server.
type Server struct {
	store    *store.Store
	searcher *query.Searcher
	sampler  *query.Sampler
	builder  *query.Builder
	logger   *slog.Logger
	handler  http.Handler
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithSampler replaces the default sampler. Tests use this to inject a
// seeded random source.
func WithSampler(sampler *query.Sampler) Option {
	return func(s *Server) error {
		if sampler != nil {
			s.sampler = sampler
		}
		return nil
	}
}

// New creates a server over the given store.
func New(st *store.Store, opts ...Option) (*Server, error) {
	if st == nil {
		return nil, query.ErrStoreRequired
	}

	searcher, err := query.NewSearcher(st)
	if err != nil {
		return nil, err
	}
	sampler, err := query.NewSampler(st)
	if err != nil {
		return nil, err
	}
	builder, err := query.NewBuilder(st, searcher)
	if err != nil {
		return nil, err
	}

	s := &Server{
		store:    st,
		searcher: searcher,
		sampler:  sampler,
		builder:  builder,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	s.handler = s.withMiddleware(s.routes())
	return s, nil
}

// Handler returns the server's HTTP handler, middleware included.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /search", s.handleSearch)
	mux.HandleFunc("GET /random", s.handleRandom)
	mux.HandleFunc("GET /stats", s.handleStats)
	mux.HandleFunc("GET /languages/{code}", s.handleLanguage)
	mux.HandleFunc("POST /matrix", s.handleMatrix)
	return mux
}

// Run starts the HTTP server on the specified address.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	s.logger.Info("http server listening", "addr", addr, "groups", s.store.Snapshot().Len())

	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
