// Package ui renders the four application views on a terminal and owns the
// navigation state.
package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/qabristan-app/qabristan/internal/ai"
	"github.com/qabristan-app/qabristan/internal/model"
	"github.com/qabristan-app/qabristan/internal/repository"
	"github.com/qabristan-app/qabristan/internal/service"
)

// View identifies the active screen.
type View string

const (
	ViewDashboard View = "dashboard"
	ViewRecords   View = "records"
	ViewAdd       View = "add"
	ViewAnalysis  View = "analysis"
)

// Layout selects between the two renderings of the records view.
type Layout string

const (
	LayoutCard Layout = "card"
	LayoutList Layout = "list"
)

// Shell owns the active view, the in-memory record snapshot fed by the store
// subscription, and the currently open form. One Shell runs per process; the
// command loop is sequential, so external calls are single-flight by
// construction.
type Shell struct {
	store  repository.RecordStore
	gen    ai.TextGenerator
	ext    ai.RecordExtractor
	anal   *service.Analyzer
	logger *zap.Logger

	in  io.Reader
	out io.Writer

	mu      sync.Mutex
	records []model.GraveRecord

	active   View
	layout   Layout
	search   string
	form     *service.Form
	analysis string
}

// New wires a shell over stdin/stdout equivalents. gen and ext may be nil
// when no AI credential is configured; the affected commands then report
// that instead of calling out.
func New(store repository.RecordStore, gen ai.TextGenerator, ext ai.RecordExtractor, logger *zap.Logger, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		store:  store,
		gen:    gen,
		ext:    ext,
		anal:   service.NewAnalyzer(gen),
		logger: logger,
		in:     in,
		out:    out,
		active: ViewDashboard,
		layout: LayoutCard,
	}
}

// Run subscribes to the store and processes commands until EOF, "quit", or
// context cancellation. All errors past startup are rendered as messages and
// are non-fatal.
func (s *Shell) Run(ctx context.Context) error {
	if err := s.store.Watch(ctx, s.setRecords); err != nil {
		return fmt.Errorf("subscribe to store: %w", err)
	}

	s.render()
	sc := bufio.NewScanner(s.in)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024) // notes can be long
	for {
		fmt.Fprintf(s.out, "\n%s> ", s.active)
		if !sc.Scan() {
			return sc.Err()
		}
		if ctx.Err() != nil {
			return nil
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			s.render()
			continue
		}
		cmd, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)

		switch cmd {
		case "quit", "exit":
			return nil
		case "help":
			s.printHelp()
		case "dashboard", "records", "analysis":
			s.active = View(cmd)
			s.form = nil
			s.render()
		case "add":
			s.openForm(nil)
			s.render()
		default:
			s.dispatch(ctx, cmd, rest)
		}
	}
}

// dispatch routes a command to the active view.
func (s *Shell) dispatch(ctx context.Context, cmd, rest string) {
	switch s.active {
	case ViewRecords:
		s.recordsCommand(cmd, rest)
	case ViewAdd:
		s.formCommand(ctx, cmd, rest)
	case ViewAnalysis:
		s.analysisCommand(ctx, cmd)
	default:
		s.message("unknown command %q (try help)", cmd)
	}
}

func (s *Shell) recordsCommand(cmd, rest string) {
	switch cmd {
	case "search":
		s.search = rest // empty rest clears the filter
		s.render()
	case "card":
		s.layout = LayoutCard
		s.render()
	case "list":
		s.layout = LayoutList
		s.render()
	case "edit":
		filtered := service.Filter(s.snapshot(), s.search)
		n, err := strconv.Atoi(rest)
		if err != nil || n < 1 || n > len(filtered) {
			s.message("edit needs a record number between 1 and %d", len(filtered))
			return
		}
		rec := filtered[n-1]
		s.openForm(&rec)
		s.render()
	default:
		s.message("unknown command %q (try help)", cmd)
	}
}

func (s *Shell) analysisCommand(ctx context.Context, cmd string) {
	if cmd != "run" {
		s.message("unknown command %q (try help)", cmd)
		return
	}
	records := s.snapshot()
	if len(records) == 0 {
		s.message("analysis needs at least one record")
		return
	}
	fmt.Fprintln(s.out, "analyzing...")
	s.analysis = s.anal.Analyze(ctx, records)
	s.render()
}

// openForm moves to the add view with either a fresh working copy or the
// selected record preloaded.
func (s *Shell) openForm(rec *model.GraveRecord) {
	if rec != nil {
		s.form = service.EditForm(s.store, s.gen, s.ext, *rec)
	} else {
		s.form = service.NewForm(s.store, s.gen, s.ext, s.snapshot())
	}
	s.active = ViewAdd
}

// closeForm returns to the records view, discarding the working copy.
func (s *Shell) closeForm() {
	s.form = nil
	s.active = ViewRecords
}

// setRecords is the store subscription callback. The remote variant delivers
// it from a background goroutine.
func (s *Shell) setRecords(records []model.GraveRecord) {
	s.mu.Lock()
	s.records = records
	s.mu.Unlock()
}

func (s *Shell) snapshot() []model.GraveRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records
}

func (s *Shell) message(format string, args ...any) {
	fmt.Fprintf(s.out, format+"\n", args...)
}

func (s *Shell) render() {
	switch s.active {
	case ViewDashboard:
		s.renderDashboard()
	case ViewRecords:
		s.renderRecords()
	case ViewAdd:
		s.renderForm()
	case ViewAnalysis:
		s.renderAnalysis()
	}
}

func (s *Shell) printHelp() {
	fmt.Fprint(s.out, `navigation: dashboard | records | add | analysis | quit
records:    search <term> | card | list | edit <n>
add/edit:   name|parents|husband|contact|birth|death|age|gender|grave|notes <value>
            image <path> | noimage | scan | suggest | save | cancel
analysis:   run
`)
}
