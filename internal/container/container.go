package container

import (
	"context"
	"fmt"
	"net/http"

	"go-skin-analyzer/internal/analyzer"
	"go-skin-analyzer/internal/config"
	"go-skin-analyzer/internal/llm"
	"go-skin-analyzer/internal/logger"
	"go-skin-analyzer/internal/observer"
	"go-skin-analyzer/internal/service"
	"go-skin-analyzer/internal/transport"
	"go-skin-analyzer/pkg/validation"
)

// Container holds all application dependencies
type Container struct {
	config          *config.Config
	modelClient     analyzer.ModelClient
	events          observer.Subject
	metrics         *observer.MetricsObserver
	orchestrator    analyzer.Orchestrator
	analysisService service.AnalysisService
	handler         http.Handler
}

// NewContainer creates the container with a Gemini client built from cfg
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	client, err := llm.NewGeminiClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to create model client: %w", err)
	}
	return NewContainerWithClient(cfg, client), nil
}

// NewContainerWithClient builds the dependency graph around the given
// model client
func NewContainerWithClient(cfg *config.Config, client analyzer.ModelClient) *Container {
	metrics := observer.NewMetricsObserver()
	events := observer.NewEventPublisher()
	events.Subscribe(observer.NewLoggingObserver(logger.Logger))
	events.Subscribe(metrics)

	opts := analyzer.DefaultOptions().
		WithCallTimeout(cfg.Gemini.CallTimeout).
		WithRetry(cfg.Gemini.MaxRetries, cfg.Gemini.RetryBaseDelay, cfg.Gemini.RetryMaxDelay)
	if !cfg.Gemini.ParallelFindings {
		opts = opts.WithSequentialFindings()
	}

	orchestrator := analyzer.NewOrchestrator(client, validation.NewResultValidator(), events, opts)
	analysisService := service.NewAnalysisService(
		validation.NewImageValidatorWithTypes(cfg.AllowedImageTypes),
		orchestrator,
	)
	handler := transport.NewHandler(analysisService, metrics, transport.Config{
		RequestTimeout:     cfg.RequestTimeout,
		MaxRequestBodySize: cfg.MaxRequestBodySize,
		AllowedOrigins:     cfg.AllowedOrigins,
		Model:              cfg.Gemini.Model,
	})

	return &Container{
		config:          cfg,
		modelClient:     client,
		events:          events,
		metrics:         metrics,
		orchestrator:    orchestrator,
		analysisService: analysisService,
		handler:         handler,
	}
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// Metrics returns the in-process metrics collector
func (c *Container) Metrics() *observer.MetricsObserver {
	return c.metrics
}
