package validation

import (
	"testing"

	apperrors "go-skin-analyzer/internal/errors"
	"go-skin-analyzer/pkg/models"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestValidateImage_Missing(t *testing.T) {
	validator := NewImageValidator()

	for name, img := range map[string]*models.UploadedImage{
		"nil":   nil,
		"empty": {Filename: "face.jpg", MIMEType: "image/jpeg"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := validator.ValidateImage(img)
			appErr, ok := apperrors.As(err)
			if !ok || appErr.Type != apperrors.ErrorTypeValidation {
				t.Fatalf("Expected validation error, got %v", err)
			}
			if appErr.Message != MissingImageMessage {
				t.Errorf("Expected %q, got %q", MissingImageMessage, appErr.Message)
			}
		})
	}
}

func TestValidateImage_ResolvesMIMEType(t *testing.T) {
	validator := NewImageValidator()

	tests := []struct {
		declared string
		want     string
	}{
		{"image/jpeg", "image/jpeg"},
		{"image/webp; q=1", "image/webp"},
		{"", "image/png"},
		{"application/octet-stream", "image/png"},
	}

	for _, tt := range tests {
		t.Run(tt.declared, func(t *testing.T) {
			out, err := validator.ValidateImage(&models.UploadedImage{Data: pngHeader, MIMEType: tt.declared})
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if out.MIMEType != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, out.MIMEType)
			}
			if out.Size != int64(len(pngHeader)) {
				t.Errorf("Expected size to be filled in, got %d", out.Size)
			}
		})
	}
}

func TestValidateImage_AllowList(t *testing.T) {
	validator := NewImageValidatorWithTypes([]string{" image/JPEG ", "image/png", ""})
	if len(validator.allowedTypes) != 2 {
		t.Fatalf("Expected 2 allowed types, got %v", validator.allowedTypes)
	}

	if _, err := validator.ValidateImage(&models.UploadedImage{Data: pngHeader, MIMEType: "image/png"}); err != nil {
		t.Errorf("Expected png to be allowed, got %v", err)
	}
	_, err := validator.ValidateImage(&models.UploadedImage{Data: []byte("GIF89a...."), MIMEType: "image/gif"})
	if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
		t.Errorf("Expected gif to be rejected, got %v", err)
	}
}

func TestValidateImage_NoRestrictionByDefault(t *testing.T) {
	validator := NewImageValidator()
	if _, err := validator.ValidateImage(&models.UploadedImage{Data: []byte("anything"), MIMEType: "image/heic"}); err != nil {
		t.Errorf("Expected any type to be accepted, got %v", err)
	}
}
