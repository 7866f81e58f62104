package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/qabristan-app/qabristan/internal/ai"
	"github.com/qabristan-app/qabristan/internal/errs"
	"github.com/qabristan-app/qabristan/internal/model"
)

// Analyzer produces the AI trend narrative over the full record set.
type Analyzer struct {
	gen ai.TextGenerator
}

// NewAnalyzer wires the analyzer to a text capability; gen may be nil when
// no credential is configured.
func NewAnalyzer(gen ai.TextGenerator) *Analyzer {
	return &Analyzer{gen: gen}
}

// recordProjection is the compact per-record shape sent for analysis.
type recordProjection struct {
	Name  string `json:"name"`
	Death string `json:"death"`
	Age   int    `json:"age"`
	Grave string `json:"grave"`
}

// Analyze sends the record projection with the fixed instruction and returns
// the narrative verbatim. A failed call yields the fixed fallback message; a
// successful but empty response yields the no-trend message. Never errors:
// the result is always displayable text.
func (a *Analyzer) Analyze(ctx context.Context, records []model.GraveRecord) string {
	if a.gen == nil {
		return analysisFallback
	}

	proj := make([]recordProjection, 0, len(records))
	for _, r := range records {
		proj = append(proj, recordProjection{
			Name:  r.DeceasedFullName,
			Death: r.DateOfDeath,
			Age:   r.AgeAtDeath,
			Grave: r.GraveNumber,
		})
	}
	data, err := json.Marshal(proj)
	if err != nil {
		return analysisFallback
	}

	text, err := a.gen.GenerateText(ctx, analysisPrompt+string(data), 0.7)
	if errors.Is(err, errs.ErrEmptyResponse) {
		return noTrendMessage
	}
	if err != nil {
		return analysisFallback
	}
	return text
}
