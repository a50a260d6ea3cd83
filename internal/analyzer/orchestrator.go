package analyzer

import (
	"context"
	"strings"
	"sync"
	"time"

	apperrors "go-skin-analyzer/internal/errors"
	"go-skin-analyzer/internal/labels"
	"go-skin-analyzer/internal/logger"
	"go-skin-analyzer/internal/observer"
	"go-skin-analyzer/internal/prompt"
	"go-skin-analyzer/internal/schema"
	"go-skin-analyzer/pkg/models"
	"go-skin-analyzer/pkg/validation"
)

// AnalysisOrchestrator implements Orchestrator on top of a ModelClient.
// It holds no per-request state and is safe for concurrent use.
type AnalysisOrchestrator struct {
	client    ModelClient
	validator ResultValidator
	events    observer.Subject
	opts      Options

	beautySchema *schema.Schema
	skinSchema   *schema.Schema
}

// NewOrchestrator creates an orchestrator. validator and events may be nil.
func NewOrchestrator(client ModelClient, validator ResultValidator, events observer.Subject, opts Options) *AnalysisOrchestrator {
	return &AnalysisOrchestrator{
		client:       client,
		validator:    validator,
		events:       events,
		opts:         opts,
		beautySchema: schema.BeautySchema(),
		skinSchema:   schema.SkinSchema(),
	}
}

// AnalyzeBeauty scores facial aesthetics with a single structured call
func (o *AnalysisOrchestrator) AnalyzeBeauty(ctx context.Context, img models.UploadedImage) (*models.BeautyResult, error) {
	if err := requireImage(img); err != nil {
		return nil, err
	}

	start := time.Now()
	o.publish(ctx, observer.AnalysisEvent{EventType: observer.AnalysisStarted, Mode: string(ModeBeauty)})

	text, err := o.generate(ctx, ModeBeauty, GenerateRequest{
		Pass:   PassBeauty,
		Prompt: prompt.BeautyPrompt,
		Image:  img,
		Schema: o.beautySchema,
	})
	if err != nil {
		return nil, o.fail(ctx, ModeBeauty, start, err)
	}

	result, err := parseStructured[models.BeautyResult](ctx, PassBeauty, text, o.beautySchema, o.validator)
	if err != nil {
		return nil, o.fail(ctx, ModeBeauty, start, err)
	}

	o.complete(ctx, ModeBeauty, start)
	return result, nil
}

// AnalyzeSkin runs the two findings passes, then the structured
// differential pass over both narratives. Only the differential pass can
// fail the request.
func (o *AnalysisOrchestrator) AnalyzeSkin(ctx context.Context, img models.UploadedImage) (*models.SkinResult, error) {
	if err := requireImage(img); err != nil {
		return nil, err
	}

	start := time.Now()
	o.publish(ctx, observer.AnalysisEvent{EventType: observer.AnalysisStarted, Mode: string(ModeSkin)})

	var first, second string
	if o.opts.ParallelFindings {
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			first = o.findings(ctx, img, PassFindings, prompt.FindingsPrompt)
		}()
		go func() {
			defer wg.Done()
			second = o.findings(ctx, img, PassAlternateFindings, prompt.AlternateFindingsPrompt)
		}()
		wg.Wait()
	} else {
		first = o.findings(ctx, img, PassFindings, prompt.FindingsPrompt)
		second = o.findings(ctx, img, PassAlternateFindings, prompt.AlternateFindingsPrompt)
	}

	differential := prompt.Differential(prompt.DifferentialParams{
		FirstFindings:  first,
		SecondFindings: second,
		SkinDiseases:   labels.SkinDiseases,
		CosmeticSigns:  labels.CosmeticSigns,
	})

	text, err := o.generate(ctx, ModeSkin, GenerateRequest{
		Pass:   PassDifferential,
		Prompt: differential,
		Image:  img,
		Schema: o.skinSchema,
	})
	if err != nil {
		return nil, o.fail(ctx, ModeSkin, start, err)
	}

	result, err := parseStructured[models.SkinResult](ctx, PassDifferential, text, o.skinSchema, o.validator)
	if err != nil {
		return nil, o.fail(ctx, ModeSkin, start, err)
	}
	normalizeConditions(result)

	o.complete(ctx, ModeSkin, start)
	return result, nil
}

// findings runs one free-text pass. Failures and empty output degrade to
// the placeholder.
func (o *AnalysisOrchestrator) findings(ctx context.Context, img models.UploadedImage, pass Pass, text string) string {
	out, err := o.generate(ctx, ModeSkin, GenerateRequest{Pass: pass, Prompt: text, Image: img})
	if err == nil && strings.TrimSpace(out) != "" {
		return out
	}

	reason := "empty response"
	if err != nil {
		reason = err.Error()
	}
	logger.WithContext(ctx).WithField("pass", pass).WithField("reason", reason).
		Warn("Findings pass produced no text, using placeholder")
	o.publish(ctx, observer.AnalysisEvent{
		EventType:    observer.PassDegraded,
		Mode:         string(ModeSkin),
		Pass:         string(pass),
		ErrorMessage: reason,
	})
	return prompt.UnknownResponse
}

// generate sends one request through the retry policy and reports the pass
func (o *AnalysisOrchestrator) generate(ctx context.Context, mode Mode, req GenerateRequest) (string, error) {
	start := time.Now()
	text, err := callWithRetry(ctx, o.opts, req.Pass, func(callCtx context.Context) (string, error) {
		return o.client.Generate(callCtx, req)
	})

	event := observer.AnalysisEvent{
		EventType:      observer.PassCompleted,
		Mode:           string(mode),
		Pass:           string(req.Pass),
		ProcessingTime: time.Since(start),
		Success:        err == nil,
	}
	if err != nil {
		event.EventType = observer.PassFailed
		event.ErrorType = errorType(err)
		event.ErrorMessage = err.Error()
	}
	o.publish(ctx, event)
	return text, err
}

func (o *AnalysisOrchestrator) fail(ctx context.Context, mode Mode, start time.Time, err error) error {
	o.publish(ctx, observer.AnalysisEvent{
		EventType:      observer.AnalysisFailed,
		Mode:           string(mode),
		ProcessingTime: time.Since(start),
		ErrorType:      errorType(err),
		ErrorMessage:   err.Error(),
	})
	return err
}

func (o *AnalysisOrchestrator) complete(ctx context.Context, mode Mode, start time.Time) {
	o.publish(ctx, observer.AnalysisEvent{
		EventType:      observer.AnalysisCompleted,
		Mode:           string(mode),
		ProcessingTime: time.Since(start),
		Success:        true,
	})
}

func (o *AnalysisOrchestrator) publish(ctx context.Context, event observer.AnalysisEvent) {
	if o.events == nil {
		return
	}
	event.RequestID = logger.RequestID(ctx)
	o.events.NotifyObservers(ctx, event)
}

func requireImage(img models.UploadedImage) error {
	if len(img.Data) == 0 {
		return apperrors.NewValidationError(validation.MissingImageMessage, nil)
	}
	return nil
}

// normalizeConditions maps condition names onto the closed label sets.
// A blank predicted name beside condition details becomes Unknown; with
// neither present the field stays absent.
func normalizeConditions(r *models.SkinResult) {
	if r.PredictedConditionName != "" || r.ConditionDetails != nil {
		r.PredictedConditionName = labels.Normalize(r.PredictedConditionName)
	}
	if r.ConditionDetails != nil && r.ConditionDetails.Name != "" {
		r.ConditionDetails.Name = labels.Normalize(r.ConditionDetails.Name)
	}
}

func errorType(err error) string {
	if appErr, ok := apperrors.As(err); ok {
		return string(appErr.Type)
	}
	return string(apperrors.ErrorTypeInternal)
}
