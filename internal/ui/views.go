package ui

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/qabristan-app/qabristan/internal/model"
	"github.com/qabristan-app/qabristan/internal/service"
)

func (s *Shell) renderDashboard() {
	sum := service.BuildSummary(s.snapshot(), time.Now())

	fmt.Fprintln(s.out, "== Dashboard ==")
	fmt.Fprintf(s.out, "total records:    %d\n", sum.Total)
	fmt.Fprintf(s.out, "average age:      %d\n", sum.AverageAge)
	fmt.Fprintf(s.out, "died this year:   %d\n", sum.DiedThisYear)
	last := sum.LastGraveNumber
	if last == "" {
		last = "none"
	}
	fmt.Fprintf(s.out, "last grave number: %s\n", last)

	if len(sum.Recent) > 0 {
		fmt.Fprintln(s.out, "\nrecent:")
		for _, r := range sum.Recent {
			fmt.Fprintf(s.out, "  %s (died %s)\n", r.DeceasedFullName, r.DateOfDeath)
		}
	}
}

func (s *Shell) renderRecords() {
	filtered := service.Filter(s.snapshot(), s.search)

	fmt.Fprintln(s.out, "== Records ==")
	if s.search != "" {
		fmt.Fprintf(s.out, "filter: %q\n", s.search)
	}
	if len(filtered) == 0 {
		fmt.Fprintln(s.out, "no records found; try another name or grave number")
		return
	}
	if s.layout == LayoutList {
		s.renderTable(filtered)
		return
	}
	s.renderCards(filtered)
}

func (s *Shell) renderTable(records []model.GraveRecord) {
	w := tabwriter.NewWriter(s.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tGRAVE\tNAME\tDIED\tAGE\tCONTACT")
	for i, r := range records {
		contact := r.RelativeContact
		if contact == "" {
			contact = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n",
			i+1, r.GraveNumber, r.DeceasedFullName, r.DateOfDeath, r.AgeAtDeath, contact)
	}
	w.Flush()
}

func (s *Shell) renderCards(records []model.GraveRecord) {
	for i, r := range records {
		fmt.Fprintf(s.out, "\n[%d] %s  (grave %s)\n", i+1, r.DeceasedFullName, r.GraveNumber)
		if r.HusbandName != "" {
			fmt.Fprintf(s.out, "    wife of %s\n", r.HusbandName)
		}
		if r.ParentNames != "" {
			fmt.Fprintf(s.out, "    parents: %s\n", r.ParentNames)
		}
		fmt.Fprintf(s.out, "    died %s, age %d\n", r.DateOfDeath, r.AgeAtDeath)
		if r.RelativeContact != "" {
			fmt.Fprintf(s.out, "    contact: %s\n", r.RelativeContact)
		}
		if r.ImageURL != "" {
			fmt.Fprintln(s.out, "    [photo attached]")
		}
		if r.Notes != "" {
			fmt.Fprintf(s.out, "    %s\n", firstLine(r.Notes))
		}
	}
}

func (s *Shell) renderAnalysis() {
	fmt.Fprintln(s.out, "== Analysis ==")
	if len(s.snapshot()) == 0 {
		fmt.Fprintln(s.out, "analysis is disabled while the record set is empty")
		return
	}
	if s.analysis == "" {
		fmt.Fprintln(s.out, "type 'run' to generate a trend summary over all records")
		return
	}
	fmt.Fprintln(s.out, s.analysis)
}

func firstLine(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	return line
}
