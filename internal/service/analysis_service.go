package service

import (
	"context"
	"time"

	"go-skin-analyzer/internal/analyzer"
	"go-skin-analyzer/internal/logger"
	"go-skin-analyzer/pkg/models"
)

// AnalysisService defines the interface for beauty and skin analysis
type AnalysisService interface {
	AnalyzeBeauty(ctx context.Context, img *models.UploadedImage) (*models.BeautyResult, error)
	AnalyzeSkin(ctx context.Context, img *models.UploadedImage) (*models.SkinResult, error)
}

// ImageValidator checks an upload before it reaches the model
type ImageValidator interface {
	ValidateImage(img *models.UploadedImage) (models.UploadedImage, error)
}

// analysisService validates uploads and delegates to the orchestrator
type analysisService struct {
	validator    ImageValidator
	orchestrator analyzer.Orchestrator
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(validator ImageValidator, orchestrator analyzer.Orchestrator) AnalysisService {
	return &analysisService{
		validator:    validator,
		orchestrator: orchestrator,
	}
}

// AnalyzeBeauty validates the upload and scores facial aesthetics
func (s *analysisService) AnalyzeBeauty(ctx context.Context, img *models.UploadedImage) (*models.BeautyResult, error) {
	valid, err := s.validator.ValidateImage(img)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := s.orchestrator.AnalyzeBeauty(ctx, valid)
	s.logOutcome(ctx, analyzer.ModeBeauty, valid, start, err)
	return result, err
}

// AnalyzeSkin validates the upload and runs the skin differential pipeline
func (s *analysisService) AnalyzeSkin(ctx context.Context, img *models.UploadedImage) (*models.SkinResult, error) {
	valid, err := s.validator.ValidateImage(img)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := s.orchestrator.AnalyzeSkin(ctx, valid)
	s.logOutcome(ctx, analyzer.ModeSkin, valid, start, err)
	return result, err
}

func (s *analysisService) logOutcome(ctx context.Context, mode analyzer.Mode, img models.UploadedImage, start time.Time, err error) {
	entry := logger.WithContext(ctx).WithField("mode", mode).
		WithField("mime_type", img.MIMEType).
		WithField("image_bytes", img.Size).
		WithField("duration_ms", time.Since(start).Milliseconds())
	if err != nil {
		entry.WithError(err).Warn("Analysis request failed")
		return
	}
	entry.Info("Analysis request served")
}
