package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/qabristan-app/qabristan/internal/ai"
	"github.com/qabristan-app/qabristan/internal/derive"
	"github.com/qabristan-app/qabristan/internal/errs"
	"github.com/qabristan-app/qabristan/internal/model"
	"github.com/qabristan-app/qabristan/internal/repository"
)

// Form is the working copy of one record being created or edited. Plain
// fields are edited directly through Fields; dates and age go through the
// setters so the derived-age rule holds: the age is recomputed whenever a
// date changes, a manual SetAge overrides it, and the latest write wins.
type Form struct {
	// Fields is the in-progress editable state.
	Fields model.Fields

	store repository.RecordStore
	gen   ai.TextGenerator
	ext   ai.RecordExtractor

	editing *model.GraveRecord // nil when creating
	age     int
}

// NewForm seeds a working copy for creating a record: defaults plus the
// suggested next grave number.
func NewForm(store repository.RecordStore, gen ai.TextGenerator, ext ai.RecordExtractor, records []model.GraveRecord) *Form {
	return &Form{
		Fields: model.Fields{
			Gender:      model.Male,
			GraveNumber: derive.NextGraveNumber(records),
		},
		store: store,
		gen:   gen,
		ext:   ext,
	}
}

// EditForm seeds a working copy from an existing record.
func EditForm(store repository.RecordStore, gen ai.TextGenerator, ext ai.RecordExtractor, record model.GraveRecord) *Form {
	return &Form{
		Fields:  record.Fields,
		store:   store,
		gen:     gen,
		ext:     ext,
		editing: &record,
		age:     record.AgeAtDeath,
	}
}

// Editing reports whether the form updates an existing record.
func (f *Form) Editing() bool { return f.editing != nil }

// Age returns the currently tracked age-at-death value.
func (f *Form) Age() int { return f.age }

// SetAge overrides the tracked age directly. A later date edit recomputes
// and overwrites it.
func (f *Form) SetAge(v int) { f.age = v }

// SetDateOfBirth updates the birth date and recomputes the age when both
// dates parse.
func (f *Form) SetDateOfBirth(v string) {
	f.Fields.DateOfBirth = v
	f.recomputeAge()
}

// SetDateOfDeath updates the death date and recomputes the age when both
// dates parse.
func (f *Form) SetDateOfDeath(v string) {
	f.Fields.DateOfDeath = v
	f.recomputeAge()
}

func (f *Form) recomputeAge() {
	if f.Fields.DateOfBirth == "" || f.Fields.DateOfDeath == "" {
		return
	}
	if age, ok := derive.Age(f.Fields.DateOfBirth, f.Fields.DateOfDeath); ok {
		f.age = age
	}
}

// AttachImage embeds the raw image bytes into the working copy as a data URI.
// No size or format validation is applied.
func (f *Form) AttachImage(data []byte, mimeType string) {
	f.Fields.ImageURL = "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// RemoveImage clears the attached photo.
func (f *Form) RemoveImage() { f.Fields.ImageURL = "" }

// ScanImage decodes the attached photo, invokes the extraction capability,
// and overlays the non-empty extracted fields onto the working copy. Errors
// are non-fatal to the form; the working copy is untouched on failure.
func (f *Form) ScanImage(ctx context.Context) error {
	if f.ext == nil {
		return errs.ErrAINotConfigured
	}
	if f.Fields.ImageURL == "" {
		return errs.ErrNoImage
	}
	data, mimeType, err := decodeDataURI(f.Fields.ImageURL)
	if err != nil {
		return err
	}
	ex, err := f.ext.ExtractRecord(ctx, data, mimeType)
	if err != nil {
		return err
	}
	f.Fields = overlay(f.Fields, ex)
	if ex.AgeAtDeath != nil {
		f.age = *ex.AgeAtDeath
	}
	// The merged dates win over an extracted age when both parse, the same
	// rule the date setters apply.
	f.recomputeAge()
	return nil
}

// SuggestNotes replaces the notes wholesale with a generated memorial note.
// On failure the notes are left untouched and the error is surfaced.
func (f *Form) SuggestNotes(ctx context.Context) error {
	if f.gen == nil {
		return errs.ErrAINotConfigured
	}
	if f.Fields.DeceasedFullName == "" {
		return fmt.Errorf("%w: name required before suggesting notes", errs.ErrValidation)
	}
	text, err := f.gen.GenerateText(ctx, fmt.Sprintf(notesPrompt, f.Fields.DeceasedFullName), 0.9)
	if err != nil {
		return err
	}
	f.Fields.Notes = text
	return nil
}

// Submit validates the required fields, clears the spouse name unless the
// gender is Female, attaches the tracked age, and hands the record to the
// store as create-or-update.
func (f *Form) Submit(ctx context.Context) (model.GraveRecord, error) {
	if f.Fields.DeceasedFullName == "" {
		return model.GraveRecord{}, fmt.Errorf("%w: deceased full name is required", errs.ErrValidation)
	}
	if f.Fields.DateOfDeath == "" {
		return model.GraveRecord{}, fmt.Errorf("%w: date of death is required", errs.ErrValidation)
	}

	fields := f.Fields
	if fields.Gender != model.Female {
		fields.HusbandName = ""
	}
	fields.AgeAtDeath = f.age

	if f.editing != nil {
		if err := f.store.Update(ctx, f.editing.ID, fields); err != nil {
			return model.GraveRecord{}, err
		}
		rec := *f.editing
		rec.Fields = fields
		return rec, nil
	}
	return f.store.Create(ctx, fields)
}

// overlay applies the non-empty fields of an extraction onto the working
// copy: an extracted value wins only when present, notes are appended with
// the scan prefix rather than replaced, the grave number is never
// overwritten, and unrecognized gender strings keep the current value.
func overlay(base model.Fields, ex *ai.Extraction) model.Fields {
	if ex.DeceasedFullName != "" {
		base.DeceasedFullName = ex.DeceasedFullName
	}
	if ex.ParentNames != "" {
		base.ParentNames = ex.ParentNames
	}
	if ex.HusbandName != "" {
		base.HusbandName = ex.HusbandName
	}
	if ex.DateOfBirth != "" {
		base.DateOfBirth = ex.DateOfBirth
	}
	if ex.DateOfDeath != "" {
		base.DateOfDeath = ex.DateOfDeath
	}
	if ex.Notes != "" {
		base.Notes = strings.TrimSpace(base.Notes + "\n\n" + scanNotesPrefix + " " + ex.Notes)
	}
	base.Gender = model.ParseGender(ex.Gender, base.Gender)
	return base
}

// decodeDataURI splits a data URI into its raw bytes and declared media type.
func decodeDataURI(uri string) ([]byte, string, error) {
	rest, found := strings.CutPrefix(uri, "data:")
	if !found {
		return nil, "", fmt.Errorf("not a data uri")
	}
	header, payload, found := strings.Cut(rest, ",")
	if !found {
		return nil, "", fmt.Errorf("malformed data uri")
	}
	mimeType, _, _ := strings.Cut(header, ";")
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("decode image payload: %w", err)
	}
	return data, mimeType, nil
}
