// Package model defines domain entities shared by services and stores.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// Gender enumerates the accepted gender values of a burial record.
type Gender string

const (
	Male   Gender = "Male"
	Female Gender = "Female"
	Other  Gender = "Other"
)

// ParseGender maps a free-form external string onto the enumeration.
// Unrecognized values keep the provided current value.
func ParseGender(s string, current Gender) Gender {
	switch s {
	case string(Female):
		return Female
	case string(Male):
		return Male
	default:
		return current
	}
}

// Fields holds every editable field of a burial record. The JSON names define
// the persisted layout and must stay stable across both store variants.
//
// HusbandName is only meaningful when Gender is Female and is cleared at save
// time otherwise. AgeAtDeath is derived from the two dates by default but can
// be manually overridden; it is not re-validated against the dates.
type Fields struct {
	DeceasedFullName string `json:"deceasedFullName"`
	ParentNames      string `json:"parentNames"`
	HusbandName      string `json:"husbandName"`
	RelativeContact  string `json:"relativeContact"`
	DateOfBirth      string `json:"dateOfBirth"`
	DateOfDeath      string `json:"dateOfDeath"`
	AgeAtDeath       int    `json:"ageAtDeath"`
	Gender           Gender `json:"gender"`
	GraveNumber      string `json:"graveNumber"`
	ImageURL         string `json:"imageUrl"`
	Notes            string `json:"notes"`
}

// GraveRecord is the sole persisted entity: one burial record. ID and
// CreatedAt are assigned once at creation and never change; every other field
// is replaced wholesale on update.
type GraveRecord struct {
	ID        string `json:"id"`
	CreatedAt string `json:"createdAt"`
	Fields
}

// NewID returns a fresh record identifier.
func NewID() string {
	return uuid.Must(uuid.NewV4()).String()
}

// Timestamp formats a creation time the way records store it.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// Seed returns the built-in starter data used when local storage is empty.
func Seed(now time.Time) []GraveRecord {
	ts := Timestamp(now)
	return []GraveRecord{
		{
			ID:        "1",
			CreatedAt: ts,
			Fields: Fields{
				DeceasedFullName: "الینور وینس",
				ParentNames:      "ساموئیل اور مارتھا وینس",
				HusbandName:      "رابرٹ وینس",
				RelativeContact:  "+92 300 1234567",
				DateOfBirth:      "1945-05-12",
				DateOfDeath:      "2023-11-04",
				AgeAtDeath:       78,
				Gender:           Female,
				GraveNumber:      "101",
				Notes:            "علاقے کی مشہور استانی اور مخلص خاتون۔",
			},
		},
		{
			ID:        "2",
			CreatedAt: ts,
			Fields: Fields{
				DeceasedFullName: "ارتھر پنہالیگن",
				ParentNames:      "ایڈورڈ پنہالیگن",
				RelativeContact:  "+92 300 7654321",
				DateOfBirth:      "1960-01-22",
				DateOfDeath:      "2024-02-15",
				AgeAtDeath:       64,
				Gender:           Male,
				GraveNumber:      "102",
				Notes:            "ایک مخلص سماجی کارکن۔",
			},
		},
	}
}
