package service

import (
	"strings"

	"github.com/qabristan-app/qabristan/internal/model"
)

// Filter returns the records whose deceased name contains the term
// case-insensitively, or whose grave number contains it verbatim. An empty
// term matches everything. Recomputed per query against the full set; no
// indexing at this scale.
func Filter(records []model.GraveRecord, term string) []model.GraveRecord {
	if term == "" {
		return records
	}
	lower := strings.ToLower(term)
	var out []model.GraveRecord
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.DeceasedFullName), lower) ||
			strings.Contains(r.GraveNumber, term) {
			out = append(out, r)
		}
	}
	return out
}
