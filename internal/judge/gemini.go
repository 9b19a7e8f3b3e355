/*
Package judge asks the Gemini API whether trimmed page text describes an
active promotion, sale, or special offer.
*/
package judge

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/promowatch/promowatch/internal/monitor"
)

// Config carries the Gemini client settings.
type Config struct {
	APIKey string
	Model  string
}

// GeminiJudge implements monitor.Judge against the Gemini API. Each call is
// attempted exactly once; transient failures surface as error Verdicts and
// self-heal on the next scheduled run.
type GeminiJudge struct {
	client *genai.Client
	model  string
}

// New creates a GeminiJudge. The API key is required; a missing key is a
// startup error, not a per-site one.
func New(ctx context.Context, cfg Config) (*GeminiJudge, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("gemini model name is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiJudge{
		client: client,
		model:  cfg.Model,
	}, nil
}

// Judge sends the trimmed text to Gemini and parses the structured verdict.
// Remote failures are returned as *monitor.APIError, malformed responses as
// *monitor.ParseError.
func (j *GeminiJudge) Judge(ctx context.Context, site string, text string) (monitor.Judgment, error) {
	contents, config := generationRequest(site, text)
	resp, err := j.client.Models.GenerateContent(ctx, j.model, contents, config)
	if err != nil {
		return monitor.Judgment{}, &monitor.APIError{Err: err}
	}

	return DecodeJudgment([]byte(resp.Text()))
}

// generationRequest builds the prompt contents and generation settings. The
// system prompt rides on SystemInstruction rather than as a content entry,
// since contents only accept user and model roles.
func generationRequest(site string, text string) ([]*genai.Content, *genai.GenerateContentConfig) {
	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: buildUserPrompt(site, text)}},
		},
	}
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
		ResponseMIMEType: "application/json",
		ResponseSchema:   responseSchema(),
	}
	return contents, config
}

// DecodeJudgment parses a judgment response body, requiring both fields to
// be present. Missing fields are never coerced to defaults.
func DecodeJudgment(raw []byte) (monitor.Judgment, error) {
	var payload struct {
		HasPromotion  *bool   `json:"has_promotion"`
		PromotionText *string `json:"promotion_text"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return monitor.Judgment{}, &monitor.ParseError{Raw: string(raw), Err: err}
	}
	if payload.HasPromotion == nil {
		return monitor.Judgment{}, &monitor.ParseError{
			Raw: string(raw),
			Err: fmt.Errorf("missing required field has_promotion"),
		}
	}
	if payload.PromotionText == nil {
		return monitor.Judgment{}, &monitor.ParseError{
			Raw: string(raw),
			Err: fmt.Errorf("missing required field promotion_text"),
		}
	}
	return monitor.Judgment{
		HasPromotion:  *payload.HasPromotion,
		PromotionText: *payload.PromotionText,
	}, nil
}
