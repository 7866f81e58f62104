package ui

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/qabristan-app/qabristan/internal/errs"
	"github.com/qabristan-app/qabristan/internal/model"
	"github.com/qabristan-app/qabristan/internal/service"
)

func (s *Shell) renderForm() {
	f := s.form
	if f == nil {
		return
	}
	title := "New record"
	if f.Editing() {
		title = "Edit record"
	}
	fmt.Fprintf(s.out, "== %s ==\n", title)
	fmt.Fprintf(s.out, "name:    %s\n", f.Fields.DeceasedFullName)
	fmt.Fprintf(s.out, "gender:  %s\n", f.Fields.Gender)
	if f.Fields.Gender == model.Female {
		fmt.Fprintf(s.out, "husband: %s\n", f.Fields.HusbandName)
	}
	fmt.Fprintf(s.out, "parents: %s\n", f.Fields.ParentNames)
	fmt.Fprintf(s.out, "birth:   %s\n", f.Fields.DateOfBirth)
	fmt.Fprintf(s.out, "death:   %s\n", f.Fields.DateOfDeath)
	fmt.Fprintf(s.out, "age:     %d\n", f.Age())
	fmt.Fprintf(s.out, "grave:   %s  (suggested, free to change)\n", f.Fields.GraveNumber)
	fmt.Fprintf(s.out, "contact: %s\n", f.Fields.RelativeContact)
	if f.Fields.ImageURL != "" {
		fmt.Fprintln(s.out, "photo:   attached (scan to extract)")
	}
	if f.Fields.Notes != "" {
		fmt.Fprintf(s.out, "notes:   %s\n", firstLine(f.Fields.Notes))
	}
}

func (s *Shell) formCommand(ctx context.Context, cmd, rest string) {
	f := s.form
	if f == nil {
		s.message("no form open")
		return
	}
	switch cmd {
	case "name":
		f.Fields.DeceasedFullName = rest
	case "parents":
		f.Fields.ParentNames = rest
	case "husband":
		f.Fields.HusbandName = rest
	case "contact":
		f.Fields.RelativeContact = rest
	case "birth":
		f.SetDateOfBirth(rest)
	case "death":
		f.SetDateOfDeath(rest)
	case "age":
		n, err := strconv.Atoi(rest)
		if err != nil {
			s.message("age needs a number")
			return
		}
		f.SetAge(n)
	case "gender":
		g, ok := parseGenderInput(rest)
		if !ok {
			s.message("gender must be male, female, or other")
			return
		}
		f.Fields.Gender = g
	case "grave":
		f.Fields.GraveNumber = rest
	case "notes":
		f.Fields.Notes = rest
	case "image":
		s.attachImage(f, rest)
	case "noimage":
		f.RemoveImage()
	case "scan":
		s.scanImage(ctx, f)
	case "suggest":
		s.suggestNotes(ctx, f)
	case "save":
		s.save(ctx, f)
		return
	case "cancel":
		s.closeForm()
		s.render()
		return
	default:
		s.message("unknown command %q (try help)", cmd)
		return
	}
	s.render()
}

func (s *Shell) attachImage(f *service.Form, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		s.message("read image: %v", err)
		return
	}
	f.AttachImage(data, http.DetectContentType(data))
}

func (s *Shell) scanImage(ctx context.Context, f *service.Form) {
	if err := f.ScanImage(ctx); err != nil {
		switch {
		case errors.Is(err, errs.ErrNoImage):
			s.message("attach a photo before scanning")
		case errors.Is(err, errs.ErrAINotConfigured):
			s.message("set GEMINI_API_KEY to enable scanning")
		default:
			s.logger.Warn("scan image", zap.Error(err))
			s.message("could not extract information from the photo")
		}
		return
	}
	s.message("extracted fields merged into the form")
}

func (s *Shell) suggestNotes(ctx context.Context, f *service.Form) {
	if err := f.SuggestNotes(ctx); err != nil {
		if errors.Is(err, errs.ErrAINotConfigured) {
			s.message("set GEMINI_API_KEY to enable suggestions")
			return
		}
		s.logger.Warn("suggest notes", zap.Error(err))
		s.message("%s (suggestion failed, notes unchanged)", service.NotesFallback)
		return
	}
	s.message("notes replaced with the suggestion")
}

func (s *Shell) save(ctx context.Context, f *service.Form) {
	rec, err := f.Submit(ctx)
	if err != nil {
		if errors.Is(err, errs.ErrValidation) {
			s.message("%v", err)
			return // stay on the form
		}
		s.logger.Warn("save record", zap.Error(err))
		s.message("could not save the record: %v", err)
		return
	}
	s.message("saved record for %s (grave %s)", rec.DeceasedFullName, rec.GraveNumber)
	s.closeForm()
	s.render()
}

func parseGenderInput(v string) (model.Gender, bool) {
	switch strings.ToLower(v) {
	case "male":
		return model.Male, true
	case "female":
		return model.Female, true
	case "other":
		return model.Other, true
	default:
		return "", false
	}
}
