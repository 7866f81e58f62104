// Package ai wraps the Gemini API behind the two narrow capabilities the
// application consumes: free-text generation and structured headstone
// extraction. Nothing outside this package talks to the SDK.
package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/qabristan-app/qabristan/internal/errs"
)

// TextGenerator produces free-form text from a prompt. Callers map failures
// to their own fixed fallback messages; there are no retries.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, temperature float32) (string, error)
}

// RecordExtractor reads a headstone photo into a partial record fragment.
type RecordExtractor interface {
	ExtractRecord(ctx context.Context, image []byte, mimeType string) (*Extraction, error)
}

// Extraction is the structured fragment returned by the vision capability.
// Empty strings mean "nothing found" and must not overwrite existing values;
// AgeAtDeath is nil when the model reported no age.
type Extraction struct {
	DeceasedFullName string `json:"deceasedFullName"`
	ParentNames      string `json:"parentNames"`
	HusbandName      string `json:"husbandName"`
	DateOfBirth      string `json:"dateOfBirth"`
	DateOfDeath      string `json:"dateOfDeath"`
	AgeAtDeath       *int   `json:"ageAtDeath"`
	Notes            string `json:"notes"`
	Gender           string `json:"gender"`
}

// Client calls the Gemini API. It satisfies TextGenerator and RecordExtractor.
type Client struct {
	gc    *genai.Client
	model string
}

// NewClient dials the Gemini API with the provided key and model name.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, errs.ErrAINotConfigured
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Client{gc: gc, model: model}, nil
}

// GenerateText sends a single prompt and returns the response text verbatim.
func (c *Client) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	resp, err := c.gc.Models.GenerateContent(ctx, c.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{Temperature: genai.Ptr(temperature)},
	)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", errs.ErrEmptyResponse
	}
	return text, nil
}

// ExtractRecord sends the photo with the fixed headstone instruction and the
// eight-field response schema, returning the parsed fragment. A missing or
// unparseable response maps to errs.ErrNoExtraction; callers surface it as a
// non-fatal message and do not retry.
func (c *Client) ExtractRecord(ctx context.Context, image []byte, mimeType string) (*Extraction, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(image, mimeType),
			genai.NewPartFromText(extractPrompt),
		}, genai.RoleUser),
	}
	resp, err := c.gc.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   extractionSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return nil, errs.ErrNoExtraction
	}
	var ex Extraction
	if err := json.Unmarshal([]byte(text), &ex); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrNoExtraction, err)
	}
	return &ex, nil
}

// extractionSchema requests exactly the fields the form merge understands.
var extractionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"deceasedFullName": {Type: genai.TypeString},
		"parentNames":      {Type: genai.TypeString},
		"husbandName":      {Type: genai.TypeString},
		"dateOfBirth":      {Type: genai.TypeString},
		"dateOfDeath":      {Type: genai.TypeString},
		"ageAtDeath":       {Type: genai.TypeInteger},
		"notes":            {Type: genai.TypeString},
		"gender":           {Type: genai.TypeString},
	},
}
