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

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/poiesic/cognatedb/core"
	"github.com/poiesic/cognatedb/query"
)

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	languages := make([]string, 0, len(core.Languages()))
	for _, lang := range core.Languages() {
		languages = append(languages, string(lang))
	}

	s.writeJSON(w, http.StatusOK, rootResponse{
		Service:     "cognatedb",
		TotalGroups: s.store.Snapshot().Len(),
		Languages:   languages,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{
		Status:     "ok",
		GroupCount: s.store.Snapshot().Len(),
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	language := r.URL.Query().Get("language")

	limit, err := intParam(r, "limit", 0)
	if err != nil {
		s.writeError(w, err)
		return
	}

	groups, total, err := s.searcher.Search(term, language, limit)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, searchResponse{
		Query:    term,
		Language: language,
		Total:    total,
		Count:    len(groups),
		Results:  toGroupDTOs(groups),
	})
}

// defaultRandomCount is how many groups /random draws when the caller
// doesn't ask for a specific count.
const defaultRandomCount = 5

func (s *Server) handleRandom(w http.ResponseWriter, r *http.Request) {
	count, err := intParam(r, "count", defaultRandomCount)
	if err != nil {
		s.writeError(w, err)
		return
	}

	groups, err := s.sampler.Sample(count)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, randomResponse{
		Count:   len(groups),
		Results: toGroupDTOs(groups),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, toStatsResponse(query.CollectStats(s.store)))
}

func (s *Server) handleLanguage(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	matchType := r.URL.Query().Get("match_type")

	limit, err := intParam(r, "limit", 0)
	if err != nil {
		s.writeError(w, err)
		return
	}
	offset, err := intParam(r, "offset", 0)
	if err != nil {
		s.writeError(w, err)
		return
	}

	groups, total, err := s.searcher.ByLanguage(code, matchType, limit, offset)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, languageResponse{
		Language:  code,
		MatchType: matchType,
		Total:     total,
		Count:     len(groups),
		Results:   toGroupDTOs(groups),
	})
}

func (s *Server) handleMatrix(w http.ResponseWriter, r *http.Request) {
	var req matrixRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, fmt.Errorf("%w: decoding request body: %w", core.ErrInvalidQuery, err))
		return
	}

	hasTerm := req.Term != ""
	hasIDs := len(req.GroupIDs) > 0
	if hasTerm == hasIDs {
		s.writeError(w, fmt.Errorf("%w: exactly one of term or group_ids must be set", core.ErrInvalidQuery))
		return
	}

	var (
		matrix *query.Matrix
		err    error
	)
	if hasTerm {
		matrix, err = s.builder.ByTerm(req.Languages, req.Term)
	} else {
		ids := make([]core.GroupID, 0, len(req.GroupIDs))
		for _, raw := range req.GroupIDs {
			id, parseErr := core.ParseGroupID(raw)
			if parseErr != nil {
				s.writeError(w, fmt.Errorf("%w: %w", core.ErrInvalidQuery, parseErr))
				return
			}
			ids = append(ids, id)
		}
		matrix, err = s.builder.ByGroupIDs(req.Languages, ids)
	}
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toMatrixResponse(matrix))
}

// intParam reads an optional integer query parameter, falling back to
// def when absent.
func intParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: parameter %q is not an integer", core.ErrInvalidQuery, name)
	}
	return value, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("encoding response", "error", err)
	}
}

// writeError maps invalid queries to 400 and everything else to 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, core.ErrInvalidQuery) {
		status = http.StatusBadRequest
	} else {
		s.logger.Error("request failed", "error", err)
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}
