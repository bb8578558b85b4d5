package query

import (
	"fmt"

	"github.com/poiesic/cognatedb/core"
	"github.com/poiesic/cognatedb/store"
)

// Cell is one position in a comparative matrix. Found distinguishes a
// real entry (which may legitimately be empty) from a language the
// group has no word for; the builder never fabricates words.
type Cell struct {
	Word  string
	Found bool
}

// Row is one group's words across the requested languages.
type Row struct {
	GroupID   core.GroupID
	Reference string
	Cells     map[core.Language]Cell
}

// Matrix is a grid of translations: one row per selected group, one
// cell per requested language.
type Matrix struct {
	Languages []core.Language
	Rows      []Row
}

// Builder produces comparative matrices. Group selection is delegated
// to the Searcher for term selectors; explicit ID selectors go straight
// to the snapshot.
type Builder struct {
	store    *store.Store
	searcher *Searcher
}

// NewBuilder creates a new matrix builder.
func NewBuilder(st *store.Store, searcher *Searcher) (*Builder, error) {
	if st == nil {
		return nil, ErrStoreRequired
	}
	if searcher == nil {
		return nil, ErrSearcherRequired
	}
	return &Builder{store: st, searcher: searcher}, nil
}

// ByTerm builds a matrix over the groups matching a search term, in
// search relevance order.
func (b *Builder) ByTerm(languages []string, term string) (*Matrix, error) {
	langs, err := parseLanguageSet(languages)
	if err != nil {
		return nil, err
	}

	groups, _, err := b.searcher.Search(term, "", 0)
	if err != nil {
		return nil, err
	}

	return buildMatrix(langs, groups), nil
}

// ByGroupIDs builds a matrix over an explicit list of groups, in the
// order given. Unknown IDs are skipped; an absent group is a normal
// result, not an error.
func (b *Builder) ByGroupIDs(languages []string, ids []core.GroupID) (*Matrix, error) {
	langs, err := parseLanguageSet(languages)
	if err != nil {
		return nil, err
	}

	snap := b.store.Snapshot()
	groups := make([]*core.CognateGroup, 0, len(ids))
	for _, id := range ids {
		if group, ok := snap.Get(id); ok {
			groups = append(groups, group)
		}
	}

	return buildMatrix(langs, groups), nil
}

func buildMatrix(langs []core.Language, groups []*core.CognateGroup) *Matrix {
	rows := make([]Row, 0, len(groups))
	for _, group := range groups {
		cells := make(map[core.Language]Cell, len(langs))
		for _, lang := range langs {
			word, ok := group.Entry(lang)
			cells[lang] = Cell{Word: word, Found: ok}
		}
		rows = append(rows, Row{
			GroupID:   group.Id,
			Reference: group.Reference,
			Cells:     cells,
		})
	}
	return &Matrix{Languages: langs, Rows: rows}
}

// parseLanguageSet validates and normalizes the requested languages,
// dropping duplicates while keeping first-seen order.
func parseLanguageSet(languages []string) ([]core.Language, error) {
	if len(languages) == 0 {
		return nil, fmt.Errorf("%w: %w", core.ErrInvalidQuery, core.ErrNoLanguages)
	}

	seen := make(map[core.Language]bool, len(languages))
	langs := make([]core.Language, 0, len(languages))
	for _, code := range languages {
		lang, err := core.ParseLanguage(code)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", core.ErrInvalidQuery, err)
		}
		if seen[lang] {
			continue
		}
		seen[lang] = true
		langs = append(langs, lang)
	}
	return langs, nil
}
