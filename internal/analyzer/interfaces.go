package analyzer

import (
	"context"

	"go-skin-analyzer/internal/schema"
	"go-skin-analyzer/pkg/models"
)

// Pass identifies one model call within a pipeline
type Pass string

const (
	PassBeauty            Pass = "beauty"
	PassFindings          Pass = "findings"
	PassAlternateFindings Pass = "findings_alternate"
	PassDifferential      Pass = "differential"
)

// Mode is the kind of analysis requested
type Mode string

const (
	ModeBeauty Mode = "beauty"
	ModeSkin   Mode = "skin"
)

// GenerateRequest is a single multimodal call: one prompt, one image.
// A nil Schema asks for free text.
type GenerateRequest struct {
	Pass   Pass
	Prompt string
	Image  models.UploadedImage
	Schema *schema.Schema
}

// ModelClient sends one request to the generative model and returns its
// text. Implementations must be safe for concurrent use.
type ModelClient interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// Orchestrator runs the analysis pipelines
type Orchestrator interface {
	AnalyzeBeauty(ctx context.Context, img models.UploadedImage) (*models.BeautyResult, error)
	AnalyzeSkin(ctx context.Context, img models.UploadedImage) (*models.SkinResult, error)
}

// ResultValidator checks constraints on decoded results
type ResultValidator interface {
	ValidateStruct(v interface{}) error
}
