package validation

import (
	"mime"
	"net/http"
	"strings"

	apperrors "go-skin-analyzer/internal/errors"
	"go-skin-analyzer/pkg/models"
)

// MissingImageMessage is returned when no image was uploaded
const MissingImageMessage = "Missing `analysisImage` file upload."

const genericMIMEType = "application/octet-stream"

// ImageValidator checks uploaded images before any model call
type ImageValidator struct {
	allowedTypes []string
}

// NewImageValidator creates a validator that accepts any image type
func NewImageValidator() *ImageValidator {
	return &ImageValidator{
		allowedTypes: []string{}, // empty means all types allowed
	}
}

// NewImageValidatorWithTypes creates a validator restricted to the given
// MIME types
func NewImageValidatorWithTypes(types []string) *ImageValidator {
	allowed := make([]string, 0, len(types))
	for _, t := range types {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			allowed = append(allowed, t)
		}
	}
	return &ImageValidator{allowedTypes: allowed}
}

// ValidateImage checks that img is present and non-empty and resolves its
// MIME type. The returned image carries the resolved type.
func (v *ImageValidator) ValidateImage(img *models.UploadedImage) (models.UploadedImage, error) {
	if img == nil || len(img.Data) == 0 {
		return models.UploadedImage{}, apperrors.NewValidationError(MissingImageMessage, nil)
	}

	out := *img
	out.MIMEType = ResolveMIMEType(img.MIMEType, img.Data)
	if out.Size == 0 {
		out.Size = int64(len(img.Data))
	}

	if !v.isTypeAllowed(out.MIMEType) {
		return models.UploadedImage{}, apperrors.NewValidationError(
			"Unsupported image type: "+out.MIMEType, nil)
	}
	return out, nil
}

// ResolveMIMEType returns the declared media type, or the sniffed type
// when the declaration is missing or generic
func ResolveMIMEType(declared string, data []byte) string {
	if mt, _, err := mime.ParseMediaType(declared); err == nil && mt != "" && mt != genericMIMEType {
		return mt
	}
	sniffed := http.DetectContentType(data)
	if mt, _, err := mime.ParseMediaType(sniffed); err == nil {
		return mt
	}
	return sniffed
}

// isTypeAllowed returns true if no type restrictions are set
func (v *ImageValidator) isTypeAllowed(mimeType string) bool {
	if len(v.allowedTypes) == 0 {
		return true
	}
	for _, allowed := range v.allowedTypes {
		if mimeType == allowed {
			return true
		}
	}
	return false
}
