package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	apperrors "go-skin-analyzer/internal/errors"
	"go-skin-analyzer/internal/logger"
	"go-skin-analyzer/internal/service"
	"go-skin-analyzer/pkg/models"
	"go-skin-analyzer/pkg/validation"
)

// ImageField is the multipart field carrying the uploaded photograph
const ImageField = "analysisImage"

// MetricsProvider exposes a read-only metrics snapshot
type MetricsProvider interface {
	GetMetrics() map[string]interface{}
}

// Config holds the transport settings
type Config struct {
	RequestTimeout     time.Duration
	MaxRequestBodySize int64
	AllowedOrigins     []string
	Model              string
}

type handler struct {
	svc     service.AnalysisService
	metrics MetricsProvider
	cfg     Config
}

// NewHandler builds the HTTP API. metrics may be nil.
func NewHandler(svc service.AnalysisService, metrics MetricsProvider, cfg Config) http.Handler {
	h := &handler{svc: svc, metrics: metrics, cfg: cfg}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		requestID(),
		requestLogger(),
		corsMiddleware(cfg.AllowedOrigins),
		requestSizeLimiter(cfg.MaxRequestBodySize),
		requestTimeout(cfg.RequestTimeout),
		errorHandler(),
	)

	r.GET("/health", h.healthCheck)
	r.GET("/metrics", h.getMetrics)

	api := r.Group("/api")
	api.POST("/beauty-analysis", h.beautyAnalysis)
	api.POST("/skin-analysis", h.skinAnalysis)

	return r
}

func (h *handler) beautyAnalysis(c *gin.Context) {
	img, err := readUpload(c)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.svc.AnalyzeBeauty(c.Request.Context(), img)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *handler) skinAnalysis(c *gin.Context) {
	img, err := readUpload(c)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.svc.AnalyzeSkin(c.Request.Context(), img)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// readUpload reads the image field into memory. A missing field yields a
// nil image so the service reports it uniformly.
func readUpload(c *gin.Context) (*models.UploadedImage, error) {
	fh, err := c.FormFile(ImageField)
	if err != nil {
		if isBodyTooLarge(err) {
			return nil, errBodyTooLarge(err)
		}
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, apperrors.NewValidationError(validation.MissingImageMessage, err)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to open uploaded file", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		if isBodyTooLarge(err) {
			return nil, errBodyTooLarge(err)
		}
		return nil, apperrors.NewInternalError("failed to read uploaded file", err)
	}

	return &models.UploadedImage{
		Data:     data,
		MIMEType: fh.Header.Get("Content-Type"),
		Size:     fh.Size,
		Filename: fh.Filename,
	}, nil
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large")
}

func errBodyTooLarge(err error) *apperrors.AppError {
	appErr := apperrors.NewValidationError("Uploaded file is too large.", err)
	appErr.StatusCode = http.StatusRequestEntityTooLarge
	return appErr
}

func (h *handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "available",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Model:     h.cfg.Model,
	})
}

func (h *handler) getMetrics(c *gin.Context) {
	if h.metrics == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, h.metrics.GetMetrics())
}

// Middleware and helper functions
func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

func errorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			respondError(c, c.Errors.Last().Err)
		}
	}
}

func determineStatusCode(err error) int {
	if _, ok := apperrors.As(err); ok {
		return apperrors.GetStatusCode(err)
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	code := determineStatusCode(err)
	body := models.ErrorResponse{
		Error: http.StatusText(http.StatusInternalServerError),
		Type:  string(apperrors.ErrorTypeInternal),
	}
	if appErr, ok := apperrors.As(err); ok {
		body.Error = appErr.Message
		body.Type = string(appErr.Type)
	}

	entry := logger.WithContext(c.Request.Context()).WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"error_type":  body.Type,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	})
	if code >= 500 {
		entry.Error("Request failed")
	} else {
		entry.Warn("Request rejected")
	}

	c.AbortWithStatusJSON(code, body)
}
