// Package derive holds the pure derived-field calculations: age at death and
// the advisory next grave number.
package derive

import (
	"strconv"
	"strings"
	"time"

	"github.com/qabristan-app/qabristan/internal/model"
)

const dateLayout = "2006-01-02"

// Age returns the number of full years elapsed between two ISO dates,
// floored at zero. ok is false when either date does not parse; callers keep
// their current age value in that case.
func Age(birth, death string) (age int, ok bool) {
	b, err := time.Parse(dateLayout, birth)
	if err != nil {
		return 0, false
	}
	d, err := time.Parse(dateLayout, death)
	if err != nil {
		return 0, false
	}
	age = d.Year() - b.Year()
	if d.Month() < b.Month() || (d.Month() == b.Month() && d.Day() < b.Day()) {
		age--
	}
	if age < 0 {
		age = 0
	}
	return age, true
}

// NextGraveNumber suggests the next grave number from the existing set:
// the maximum numeric grave number plus one. With no records it is "1"; when
// records exist but none carry a numeric grave number it falls back to
// count+1. Advisory only, the form allows free-text override.
func NextGraveNumber(records []model.GraveRecord) string {
	if len(records) == 0 {
		return "1"
	}
	max, found := 0, false
	for _, r := range records {
		n, err := strconv.Atoi(digitsOf(r.GraveNumber))
		if err != nil {
			continue
		}
		if !found || n > max {
			max, found = n, true
		}
	}
	if !found {
		return strconv.Itoa(len(records) + 1)
	}
	return strconv.Itoa(max + 1)
}

// digitsOf strips everything but decimal digits.
func digitsOf(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
