package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "go-skin-analyzer/internal/errors"
	"go-skin-analyzer/pkg/models"
	"go-skin-analyzer/pkg/validation"
)

type fakeOrchestrator struct {
	beautyCalls, skinCalls int
	lastImage              models.UploadedImage
	err                    error
}

func (f *fakeOrchestrator) AnalyzeBeauty(ctx context.Context, img models.UploadedImage) (*models.BeautyResult, error) {
	f.beautyCalls++
	f.lastImage = img
	if f.err != nil {
		return nil, f.err
	}
	return &models.BeautyResult{Overall: 80}, nil
}

func (f *fakeOrchestrator) AnalyzeSkin(ctx context.Context, img models.UploadedImage) (*models.SkinResult, error) {
	f.skinCalls++
	f.lastImage = img
	if f.err != nil {
		return nil, f.err
	}
	return &models.SkinResult{Overall: 70}, nil
}

func TestAnalysisService_RejectsMissingImageBeforeOrchestrator(t *testing.T) {
	orch := &fakeOrchestrator{}
	svc := NewAnalysisService(validation.NewImageValidator(), orch)

	_, err := svc.AnalyzeBeauty(context.Background(), nil)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	_, err = svc.AnalyzeSkin(context.Background(), &models.UploadedImage{Filename: "empty.jpg"})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	assert.Zero(t, orch.beautyCalls+orch.skinCalls)
}

func TestAnalysisService_DelegatesResolvedImage(t *testing.T) {
	orch := &fakeOrchestrator{}
	svc := NewAnalysisService(validation.NewImageValidator(), orch)

	img := &models.UploadedImage{Data: []byte("\x89PNG\r\n\x1a\nrest"), MIMEType: "application/octet-stream"}
	result, err := svc.AnalyzeSkin(context.Background(), img)
	require.NoError(t, err)
	assert.Equal(t, 70, result.Overall)
	assert.Equal(t, 1, orch.skinCalls)
	assert.Equal(t, "image/png", orch.lastImage.MIMEType)
}

func TestAnalysisService_PropagatesUpstreamErrors(t *testing.T) {
	orch := &fakeOrchestrator{err: apperrors.NewUpstreamEmptyError("no text")}
	svc := NewAnalysisService(validation.NewImageValidator(), orch)

	_, err := svc.AnalyzeBeauty(context.Background(), &models.UploadedImage{Data: []byte("img"), MIMEType: "image/jpeg"})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUpstreamEmpty))
}
