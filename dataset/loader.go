// Package dataset parses the pre-computed cognate artifact.
//
// The artifact is a flat CSV of word pairs produced by the offline
// matching pipeline. Each row links two words in two languages under a
// shared English reference; the loader merges all pair rows for a
// reference into a single CognateGroup. Nothing is recomputed here:
// similarity scores, match types and audit flags are carried through
// as the pipeline wrote them.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/poiesic/cognatedb/core"
)

// Required and optional column names, matched case-insensitively.
const (
	colReference = "english_reference"
	colWordA     = "word_a"
	colWordB     = "word_b"
	colLangA     = "lang_a"
	colLangB     = "lang_b"
	colRank      = "rank"
	colMatchType = "match_type"
	colScore     = "similarity_score"
	colAudit     = "audit_status"
)

const reviewStatus = "manual review needed"

// columnIndex maps the columns we care about to their position in the
// header. Optional columns that are absent stay at -1.
type columnIndex struct {
	reference int
	wordA     int
	wordB     int
	langA     int
	langB     int
	rank      int
	matchType int
	score     int
	audit     int
}

// accumulator collects pair rows belonging to one English reference
// until the whole file has been read.
type accumulator struct {
	reference   string
	rank        int
	entries     map[core.Language]string
	scoreSum    float64
	scoredPairs int
	pairs       int
	perfectOnly bool
	needsReview bool
}

// Loader parses the cognate pair CSV into CognateGroups.
type Loader struct {
	logger *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
	}
}

// NewLoader creates a new loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{logger: slog.Default()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadFile reads and parses the CSV artifact at path.
// A missing or unreadable file is a load error.
func (l *Loader) LoadFile(path string) ([]*core.CognateGroup, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	defer f.Close()
	return l.Load(f)
}

// Load parses CSV data into CognateGroups, merging pair rows that share
// an English reference. Group order follows first appearance in the
// source, which gives every later consumer a stable iteration order.
//
// Load fails on a malformed header, ragged rows, unknown language
// codes, duplicate group IDs, or a group that ends up with fewer than
// two language entries.
func (l *Loader) Load(r io.Reader) ([]*core.CognateGroup, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %w", ErrLoad, err)
	}

	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	byRef := make(map[string]*accumulator)
	var order []string

	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrLoad, line, err)
		}
		if err := l.mergeRow(byRef, &order, cols, row, line); err != nil {
			return nil, err
		}
	}

	if len(order) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrLoad, ErrEmptyDataset)
	}

	groups := make([]*core.CognateGroup, 0, len(order))
	seen := make(map[core.GroupID]string, len(order))
	for _, key := range order {
		acc := byRef[key]
		group := acc.build()

		if prev, ok := seen[group.Id]; ok {
			return nil, fmt.Errorf("%w: %w: %q collides with %q",
				ErrLoad, core.ErrDuplicateGroup, group.Reference, prev)
		}
		seen[group.Id] = group.Reference

		if err := core.ValidateGroup(group); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoad, err)
		}
		groups = append(groups, group)
	}

	l.logger.Info("dataset loaded", "groups", len(groups))
	return groups, nil
}

// mergeRow folds one pair row into the accumulator for its reference.
func (l *Loader) mergeRow(byRef map[string]*accumulator, order *[]string, cols columnIndex, row []string, line int) error {
	reference := strings.TrimSpace(row[cols.reference])
	if reference == "" {
		return fmt.Errorf("%w: line %d: empty english reference", ErrLoad, line)
	}

	langA, err := core.ParseLanguage(row[cols.langA])
	if err != nil {
		return fmt.Errorf("%w: line %d: %w", ErrLoad, line, err)
	}
	langB, err := core.ParseLanguage(row[cols.langB])
	if err != nil {
		return fmt.Errorf("%w: line %d: %w", ErrLoad, line, err)
	}

	wordA := strings.TrimSpace(row[cols.wordA])
	wordB := strings.TrimSpace(row[cols.wordB])

	key := strings.ToLower(reference)
	acc, ok := byRef[key]
	if !ok {
		acc = &accumulator{
			reference:   reference,
			entries:     make(map[core.Language]string),
			perfectOnly: true,
		}
		byRef[key] = acc
		*order = append(*order, key)
	}
	acc.pairs++

	// First word wins when pairs disagree on a language; the offline
	// pipeline orders rows so the preferred form comes first.
	if _, exists := acc.entries[langA]; !exists {
		acc.entries[langA] = wordA
	}
	if _, exists := acc.entries[langB]; !exists {
		acc.entries[langB] = wordB
	}

	if cols.rank >= 0 {
		if rank, err := strconv.Atoi(strings.TrimSpace(row[cols.rank])); err == nil {
			if acc.rank == 0 || rank < acc.rank {
				acc.rank = rank
			}
		}
	}

	match := core.MatchType("")
	if cols.matchType >= 0 {
		match, err = core.ParseMatchType(row[cols.matchType])
		if err != nil {
			return fmt.Errorf("%w: line %d: %w", ErrLoad, line, err)
		}
	}
	if match == "" {
		// No match type in the source: identical spelling is a perfect pair.
		if wordA == wordB {
			match = core.MatchPerfect
		} else {
			match = core.MatchNear
		}
	}
	if match != core.MatchPerfect {
		acc.perfectOnly = false
	}

	if cols.score >= 0 {
		raw := strings.TrimSpace(row[cols.score])
		if raw != "" {
			score, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return fmt.Errorf("%w: line %d: bad similarity score %q", ErrLoad, line, raw)
			}
			acc.scoreSum += score
			acc.scoredPairs++
		}
	}

	if cols.audit >= 0 {
		if strings.EqualFold(strings.TrimSpace(row[cols.audit]), reviewStatus) {
			acc.needsReview = true
		}
	}

	return nil
}

// build finalizes an accumulator into a CognateGroup.
func (acc *accumulator) build() *core.CognateGroup {
	match := core.MatchNear
	if acc.perfectOnly {
		match = core.MatchPerfect
	}

	confidence := 0.0
	if acc.scoredPairs > 0 {
		confidence = acc.scoreSum / float64(acc.scoredPairs)
	}

	return &core.CognateGroup{
		Id:          core.IDFromReference(acc.reference),
		Reference:   acc.reference,
		Rank:        acc.rank,
		Entries:     acc.entries,
		Confidence:  confidence,
		Match:       match,
		NeedsReview: acc.needsReview,
	}
}

// mapColumns resolves header names to positions.
func mapColumns(header []string) (columnIndex, error) {
	cols := columnIndex{
		reference: -1, wordA: -1, wordB: -1, langA: -1, langB: -1,
		rank: -1, matchType: -1, score: -1, audit: -1,
	}

	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case colReference:
			cols.reference = i
		case colWordA:
			cols.wordA = i
		case colWordB:
			cols.wordB = i
		case colLangA:
			cols.langA = i
		case colLangB:
			cols.langB = i
		case colRank:
			cols.rank = i
		case colMatchType:
			cols.matchType = i
		case colScore:
			cols.score = i
		case colAudit:
			cols.audit = i
		}
	}

	required := []struct {
		name  string
		index int
	}{
		{colReference, cols.reference},
		{colWordA, cols.wordA},
		{colWordB, cols.wordB},
		{colLangA, cols.langA},
		{colLangB, cols.langB},
	}
	for _, req := range required {
		if req.index < 0 {
			return cols, fmt.Errorf("%w: %w %q", ErrLoad, ErrMissingColumn, req.name)
		}
	}

	return cols, nil
}
