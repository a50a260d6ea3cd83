// Package llm adapts the Gemini API to the analyzer's ModelClient.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"google.golang.org/genai"

	"go-skin-analyzer/internal/analyzer"
	apperrors "go-skin-analyzer/internal/errors"
	"go-skin-analyzer/internal/schema"
)

// GeminiClient sends analysis requests to a Gemini model. It is read-only
// after construction and safe for concurrent use.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a client for the given model
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, apperrors.NewInternalError("Gemini API key is not configured", nil)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, apperrors.NewInternalError("failed to create Gemini client", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

// Model returns the configured model name
func (g *GeminiClient) Model() string {
	return g.model
}

// Generate implements analyzer.ModelClient
func (g *GeminiClient) Generate(ctx context.Context, req analyzer.GenerateRequest) (string, error) {
	contents := BuildContents(req)

	var cfg *genai.GenerateContentConfig
	if req.Schema != nil {
		cfg = &genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   ToGenaiSchema(req.Schema),
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return "", classify(ctx, req.Pass, err)
	}
	if resp == nil {
		return "", nil
	}
	return resp.Text(), nil
}

// BuildContents packs the prompt and image into one user-role content
func BuildContents(req analyzer.GenerateRequest) []*genai.Content {
	return []*genai.Content{{
		Role: "user",
		Parts: []*genai.Part{
			{Text: req.Prompt},
			{InlineData: &genai.Blob{MIMEType: req.Image.MIMEType, Data: req.Image.Data}},
		},
	}}
}

// ToGenaiSchema converts a response schema into the SDK's representation
func ToGenaiSchema(s *schema.Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:        toGenaiType(s.Type),
		Description: s.Description,
		Minimum:     s.Minimum,
		Maximum:     s.Maximum,
		Required:    s.Required,
		Items:       ToGenaiSchema(s.Items),
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = ToGenaiSchema(prop)
		}
		out.PropertyOrdering = s.FieldNames()
	}
	return out
}

func toGenaiType(t schema.Type) genai.Type {
	switch t {
	case schema.TypeObject:
		return genai.TypeObject
	case schema.TypeArray:
		return genai.TypeArray
	case schema.TypeInteger:
		return genai.TypeInteger
	case schema.TypeNumber:
		return genai.TypeNumber
	case schema.TypeBoolean:
		return genai.TypeBoolean
	default:
		return genai.TypeString
	}
}

// classify maps SDK and network failures onto transport errors. Rate
// limits, server errors, timeouts and network failures are retryable.
func classify(ctx context.Context, pass analyzer.Pass, err error) error {
	msg := fmt.Sprintf("Gemini %s call failed", pass)

	if code, ok := apiErrorCode(err); ok {
		retryable := code == http.StatusTooManyRequests || code == http.StatusRequestTimeout || code >= 500
		return apperrors.NewUpstreamTransportError(fmt.Sprintf("%s with status %d", msg, code), retryable, err)
	}

	if errors.Is(err, context.Canceled) && ctx.Err() == context.Canceled {
		return apperrors.NewUpstreamTransportError(msg+": cancelled", false, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewUpstreamTransportError(msg+": timed out", true, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return apperrors.NewUpstreamTransportError(msg+": network error", true, err)
	}
	return apperrors.NewUpstreamTransportError(msg, false, err)
}

func apiErrorCode(err error) (int, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code, true
	}
	return 0, false
}
