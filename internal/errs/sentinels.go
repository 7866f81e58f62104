// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across store/service layers.
var (
	// ErrNotFound indicates the requested record does not exist in the store.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates a required field of the working copy is missing
	// or unusable.
	ErrValidation = errors.New("validation")

	// ErrNoImage indicates a scan was requested before a photo was attached.
	ErrNoImage = errors.New("no image attached")

	// ErrNoExtraction indicates the vision capability returned nothing usable.
	ErrNoExtraction = errors.New("no data extracted")

	// ErrEmptyResponse indicates the text capability returned an empty result.
	ErrEmptyResponse = errors.New("empty response")

	// ErrAINotConfigured indicates no API credential was supplied for the
	// generative capabilities.
	ErrAINotConfigured = errors.New("ai capability not configured")
)
