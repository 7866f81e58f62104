package service

import (
	"math"
	"time"

	"github.com/qabristan-app/qabristan/internal/model"
)

// recentCount limits the dashboard's recent-activity list.
const recentCount = 3

// Summary aggregates the full unfiltered record set for the dashboard.
type Summary struct {
	Total           int
	AverageAge      int // rounded mean of ageAtDeath; 0 when empty
	DiedThisYear    int // deaths in now's calendar year
	LastGraveNumber string // most recent record's grave number; "" when empty
	Recent          []model.GraveRecord
}

// BuildSummary recomputes the aggregates. "This year" means now's calendar
// year by the local clock; death dates that do not parse are not counted.
func BuildSummary(records []model.GraveRecord, now time.Time) Summary {
	s := Summary{Total: len(records)}
	if len(records) == 0 {
		return s
	}

	sum := 0
	for _, r := range records {
		sum += r.AgeAtDeath
		if d, err := time.Parse("2006-01-02", r.DateOfDeath); err == nil && d.Year() == now.Year() {
			s.DiedThisYear++
		}
	}
	s.AverageAge = int(math.Round(float64(sum) / float64(len(records))))
	s.LastGraveNumber = records[0].GraveNumber

	n := recentCount
	if n > len(records) {
		n = len(records)
	}
	s.Recent = records[:n]
	return s
}
