package server

import (
	"github.com/poiesic/cognatedb/core"
	"github.com/poiesic/cognatedb/query"
)

// groupDTO is the wire shape of a cognate group. IDs travel as decimal
// strings so clients never lose precision on 64-bit values.
type groupDTO struct {
	ID          string            `json:"id"`
	Reference   string            `json:"reference"`
	Rank        int               `json:"rank"`
	Entries     map[string]string `json:"entries"`
	Confidence  float64           `json:"confidence"`
	MatchType   string            `json:"match_type"`
	NeedsReview bool              `json:"needs_review"`
}

func toGroupDTO(group *core.CognateGroup) groupDTO {
	entries := make(map[string]string, len(group.Entries))
	for lang, word := range group.Entries {
		entries[string(lang)] = word
	}
	return groupDTO{
		ID:          group.Id.String(),
		Reference:   group.Reference,
		Rank:        group.Rank,
		Entries:     entries,
		Confidence:  group.Confidence,
		MatchType:   string(group.Match),
		NeedsReview: group.NeedsReview,
	}
}

func toGroupDTOs(groups []*core.CognateGroup) []groupDTO {
	dtos := make([]groupDTO, 0, len(groups))
	for _, group := range groups {
		dtos = append(dtos, toGroupDTO(group))
	}
	return dtos
}

type rootResponse struct {
	Service     string   `json:"service"`
	TotalGroups int      `json:"total_groups"`
	Languages   []string `json:"languages"`
}

type healthResponse struct {
	Status     string `json:"status"`
	GroupCount int    `json:"group_count"`
}

type searchResponse struct {
	Query    string     `json:"query"`
	Language string     `json:"language,omitempty"`
	Total    int        `json:"total"`
	Count    int        `json:"count"`
	Results  []groupDTO `json:"results"`
}

type randomResponse struct {
	Count   int        `json:"count"`
	Results []groupDTO `json:"results"`
}

type languageResponse struct {
	Language  string     `json:"language"`
	MatchType string     `json:"match_type,omitempty"`
	Total     int        `json:"total"`
	Count     int        `json:"count"`
	Results   []groupDTO `json:"results"`
}

type statsResponse struct {
	TotalGroups   int            `json:"total_groups"`
	PerfectGroups int            `json:"perfect_groups"`
	NearGroups    int            `json:"near_groups"`
	NeedsReview   int            `json:"needs_review"`
	Coverage      map[string]int `json:"coverage"`
}

func toStatsResponse(stats *core.Stats) statsResponse {
	coverage := make(map[string]int, len(stats.Coverage))
	for lang, n := range stats.Coverage {
		coverage[string(lang)] = n
	}
	return statsResponse{
		TotalGroups:   stats.TotalGroups,
		PerfectGroups: stats.PerfectGroups,
		NearGroups:    stats.NearGroups,
		NeedsReview:   stats.NeedsReview,
		Coverage:      coverage,
	}
}

// matrixRequest selects groups either by search term or by explicit
// IDs; exactly one selector must be set.
type matrixRequest struct {
	Languages []string `json:"languages"`
	Term      string   `json:"term,omitempty"`
	GroupIDs  []string `json:"group_ids,omitempty"`
}

// matrixRowDTO renders absent cells as JSON null, so clients can tell a
// missing word apart from an empty one.
type matrixRowDTO struct {
	ID        string             `json:"id"`
	Reference string             `json:"reference"`
	Cells     map[string]*string `json:"cells"`
}

type matrixResponse struct {
	Languages []string       `json:"languages"`
	Rows      []matrixRowDTO `json:"rows"`
}

func toMatrixResponse(m *query.Matrix) matrixResponse {
	languages := make([]string, 0, len(m.Languages))
	for _, lang := range m.Languages {
		languages = append(languages, string(lang))
	}

	rows := make([]matrixRowDTO, 0, len(m.Rows))
	for _, row := range m.Rows {
		cells := make(map[string]*string, len(row.Cells))
		for lang, cell := range row.Cells {
			if cell.Found {
				word := cell.Word
				cells[string(lang)] = &word
			} else {
				cells[string(lang)] = nil
			}
		}
		rows = append(rows, matrixRowDTO{
			ID:        row.GroupID.String(),
			Reference: row.Reference,
			Cells:     cells,
		})
	}

	return matrixResponse{Languages: languages, Rows: rows}
}

type errorResponse struct {
	Error string `json:"error"`
}
