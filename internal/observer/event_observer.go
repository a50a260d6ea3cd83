package observer

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// AnalysisEvent represents an analysis pipeline event
type AnalysisEvent struct {
	EventType      EventType              `json:"event_type"`
	Timestamp      time.Time              `json:"timestamp"`
	RequestID      string                 `json:"request_id,omitempty"`
	Mode           string                 `json:"mode"`
	Pass           string                 `json:"pass,omitempty"`
	ProcessingTime time.Duration          `json:"processing_time"`
	Success        bool                   `json:"success"`
	ErrorType      string                 `json:"error_type,omitempty"`
	ErrorMessage   string                 `json:"error_message,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

// EventType represents the type of analysis event
type EventType string

const (
	// AnalysisStarted when a request enters the pipeline
	AnalysisStarted EventType = "analysis_started"
	// AnalysisCompleted when a result is returned
	AnalysisCompleted EventType = "analysis_completed"
	// AnalysisFailed when the request ends in an error
	AnalysisFailed EventType = "analysis_failed"
	// PassCompleted when a model call returns usable text
	PassCompleted EventType = "pass_completed"
	// PassFailed when a model call fails
	PassFailed EventType = "pass_failed"
	// PassDegraded when a findings pass is replaced by the placeholder
	PassDegraded EventType = "pass_degraded"
)

// Observer defines the interface for event observers
type Observer interface {
	OnEvent(ctx context.Context, event AnalysisEvent)
	GetObserverName() string
}

// Subject defines the interface for event publishers
type Subject interface {
	Subscribe(observer Observer)
	Unsubscribe(observer Observer)
	NotifyObservers(ctx context.Context, event AnalysisEvent)
}

// LoggingObserver logs analysis events
type LoggingObserver struct {
	logger *logrus.Logger
}

// NewLoggingObserver creates a new logging observer
func NewLoggingObserver(logger *logrus.Logger) Observer {
	return &LoggingObserver{
		logger: logger,
	}
}

// OnEvent handles analysis events by logging them
func (o *LoggingObserver) OnEvent(ctx context.Context, event AnalysisEvent) {
	fields := logrus.Fields{
		"event_type":      event.EventType,
		"mode":            event.Mode,
		"processing_time": event.ProcessingTime.String(),
		"success":         event.Success,
	}
	if event.RequestID != "" {
		fields["request_id"] = event.RequestID
	}
	if event.Pass != "" {
		fields["pass"] = event.Pass
	}
	if event.ErrorType != "" {
		fields["error_type"] = event.ErrorType
	}
	if event.ErrorMessage != "" {
		fields["error"] = event.ErrorMessage
	}
	for k, v := range event.Metadata {
		fields[k] = v
	}

	entry := o.logger.WithFields(fields)
	switch event.EventType {
	case AnalysisStarted:
		entry.Info("Analysis started")
	case AnalysisCompleted:
		entry.Info("Analysis completed")
	case AnalysisFailed:
		entry.Error("Analysis failed")
	case PassCompleted:
		entry.Debug("Model pass completed")
	case PassFailed:
		entry.Warn("Model pass failed")
	case PassDegraded:
		entry.Warn("Findings pass degraded to placeholder")
	default:
		entry.Info("Analysis event occurred")
	}
}

// GetObserverName returns the observer name
func (o *LoggingObserver) GetObserverName() string {
	return "logging_observer"
}

type modeStats struct {
	total               int64
	successful          int64
	failed              int64
	totalProcessingTime time.Duration
}

// MetricsObserver collects in-process counters from analysis events
type MetricsObserver struct {
	mu             sync.RWMutex
	modes          map[string]*modeStats
	failuresByType map[string]int64
	degradedPasses int64
	failedPasses   int64
}

// NewMetricsObserver creates a new metrics observer
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{
		modes:          make(map[string]*modeStats),
		failuresByType: make(map[string]int64),
	}
}

func (o *MetricsObserver) stats(mode string) *modeStats {
	s, ok := o.modes[mode]
	if !ok {
		s = &modeStats{}
		o.modes[mode] = s
	}
	return s
}

// OnEvent handles analysis events by collecting metrics
func (o *MetricsObserver) OnEvent(ctx context.Context, event AnalysisEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch event.EventType {
	case AnalysisStarted:
		o.stats(event.Mode).total++
	case AnalysisCompleted:
		s := o.stats(event.Mode)
		s.successful++
		s.totalProcessingTime += event.ProcessingTime
	case AnalysisFailed:
		o.stats(event.Mode).failed++
		o.failuresByType[event.ErrorType]++
	case PassFailed:
		o.failedPasses++
	case PassDegraded:
		o.degradedPasses++
	}
}

// GetObserverName returns the observer name
func (o *MetricsObserver) GetObserverName() string {
	return "metrics_observer"
}

// GetMetrics returns a snapshot of the current metrics
func (o *MetricsObserver) GetMetrics() map[string]interface{} {
	o.mu.RLock()
	defer o.mu.RUnlock()

	modes := make(map[string]interface{}, len(o.modes))
	for mode, s := range o.modes {
		avg := time.Duration(0)
		if s.successful > 0 {
			avg = s.totalProcessingTime / time.Duration(s.successful)
		}
		modes[mode] = map[string]interface{}{
			"total_analyses":      s.total,
			"successful_analyses": s.successful,
			"failed_analyses":     s.failed,
			"avg_processing_ms":   avg.Milliseconds(),
		}
	}

	failures := make(map[string]int64, len(o.failuresByType))
	for k, v := range o.failuresByType {
		failures[k] = v
	}

	return map[string]interface{}{
		"modes":            modes,
		"failures_by_type": failures,
		"failed_passes":    o.failedPasses,
		"degraded_passes":  o.degradedPasses,
	}
}

// EventPublisher implements the Subject interface
type EventPublisher struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher() Subject {
	return &EventPublisher{
		observers: make([]Observer, 0),
	}
}

// Subscribe adds an observer
func (p *EventPublisher) Subscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, observer)
}

// Unsubscribe removes an observer
func (p *EventPublisher) Unsubscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, obs := range p.observers {
		if obs.GetObserverName() == observer.GetObserverName() {
			p.observers = append(p.observers[:i], p.observers[i+1:]...)
			break
		}
	}
}

// NotifyObservers notifies all observers of an event. Observers run on
// their own goroutines and must not block the pipeline.
func (p *EventPublisher) NotifyObservers(ctx context.Context, event AnalysisEvent) {
	p.mu.RLock()
	observers := make([]Observer, len(p.observers))
	copy(observers, p.observers)
	p.mu.RUnlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	// Detach from request cancellation; the event outlives the handler
	ctx = context.WithoutCancel(ctx)

	for _, observer := range observers {
		go func(obs Observer) {
			defer func() {
				if r := recover(); r != nil {
					logrus.WithField("observer", obs.GetObserverName()).
						WithField("panic", r).
						Error("Observer panicked while handling event")
				}
			}()
			obs.OnEvent(ctx, event)
		}(observer)
	}
}
