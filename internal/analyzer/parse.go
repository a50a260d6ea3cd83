package analyzer

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/sirupsen/logrus"

	apperrors "go-skin-analyzer/internal/errors"
	"go-skin-analyzer/internal/logger"
	"go-skin-analyzer/internal/schema"
)

const (
	msgEmptyResponse  = "Gemini API returned an empty or invalid response."
	msgInvalidJSON    = "Invalid JSON format received from Gemini API."
	msgSchemaMismatch = "Gemini API response does not match the expected schema."

	// rawLogLimit bounds how much model text goes into a single log line
	rawLogLimit = 4096
)

// stripCodeFence removes a surrounding markdown code fence
// (```json ... ```), which models add despite instructions
func stripCodeFence(text string) string {
	t := strings.TrimSpace(text)
	if !strings.HasPrefix(t, "```") {
		return t
	}
	t = strings.TrimPrefix(t, "```")
	if nl := strings.IndexByte(t, '\n'); nl >= 0 {
		// drop the info string, e.g. "json"
		t = t[nl+1:]
	} else {
		t = strings.TrimPrefix(t, "json")
	}
	t = strings.TrimSpace(t)
	t = strings.TrimSuffix(t, "```")
	return strings.TrimSpace(t)
}

// parseStructured turns model text into T. The text must be valid JSON,
// match s, and satisfy the validator's struct constraints.
func parseStructured[T any](ctx context.Context, pass Pass, raw string, s *schema.Schema, v ResultValidator) (*T, error) {
	text := stripCodeFence(raw)
	if text == "" {
		logger.WithContext(ctx).WithField("pass", pass).Error("Gemini response missing text")
		return nil, apperrors.NewUpstreamEmptyError(msgEmptyResponse)
	}

	fail := func(msg string, cause error) error {
		logger.WithContext(ctx).WithFields(logrus.Fields{
			"pass":         pass,
			"raw_response": logger.Truncate(raw, rawLogLimit),
		}).WithError(cause).Error("Failed to parse Gemini JSON response")
		return apperrors.NewUpstreamParseError(msg, raw, cause)
	}

	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, fail(msgInvalidJSON, err)
	}
	if dec.More() {
		return nil, fail(msgInvalidJSON, errTrailingData)
	}
	if err := schema.Validate(generic, s); err != nil {
		return nil, fail(msgSchemaMismatch, err)
	}

	var result T
	if err := json.NewDecoder(strings.NewReader(text)).Decode(&result); err != nil {
		return nil, fail(msgInvalidJSON, err)
	}
	if v != nil {
		if err := v.ValidateStruct(&result); err != nil {
			return nil, fail(msgSchemaMismatch, err)
		}
	}
	return &result, nil
}

type parseError string

func (e parseError) Error() string { return string(e) }

const errTrailingData = parseError("unexpected data after JSON value")
