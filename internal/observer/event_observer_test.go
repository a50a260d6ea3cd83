package observer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

type recordingObserver struct {
	name string
	wg   *sync.WaitGroup
	mu   sync.Mutex
	got  []AnalysisEvent
}

func (r *recordingObserver) OnEvent(ctx context.Context, event AnalysisEvent) {
	r.mu.Lock()
	r.got = append(r.got, event)
	r.mu.Unlock()
	r.wg.Done()
}

func (r *recordingObserver) GetObserverName() string { return r.name }

type panickingObserver struct{ wg *sync.WaitGroup }

func (p *panickingObserver) OnEvent(ctx context.Context, event AnalysisEvent) {
	defer p.wg.Done()
	panic(errors.New("observer bug"))
}

func (p *panickingObserver) GetObserverName() string { return "panicking" }

func waitTimeout(t *testing.T, wg *sync.WaitGroup) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for observers")
	}
}

func TestEventPublisher_NotifiesAllObservers(t *testing.T) {
	var wg sync.WaitGroup
	pub := NewEventPublisher()
	rec := &recordingObserver{name: "rec", wg: &wg}
	pub.Subscribe(rec)
	pub.Subscribe(&panickingObserver{wg: &wg})

	wg.Add(2)
	pub.NotifyObservers(context.Background(), AnalysisEvent{EventType: AnalysisStarted, Mode: "skin"})
	waitTimeout(t, &wg)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.got) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(rec.got))
	}
	if rec.got[0].Timestamp.IsZero() {
		t.Error("Expected timestamp to be filled in")
	}
}

func TestEventPublisher_Unsubscribe(t *testing.T) {
	var wg sync.WaitGroup
	pub := NewEventPublisher()
	keep := &recordingObserver{name: "keep", wg: &wg}
	drop := &recordingObserver{name: "drop", wg: &wg}
	pub.Subscribe(keep)
	pub.Subscribe(drop)
	pub.Unsubscribe(drop)

	wg.Add(1)
	pub.NotifyObservers(context.Background(), AnalysisEvent{EventType: AnalysisCompleted})
	waitTimeout(t, &wg)

	if len(drop.got) != 0 {
		t.Error("Expected unsubscribed observer to receive nothing")
	}
}

func TestMetricsObserver(t *testing.T) {
	m := NewMetricsObserver()
	ctx := context.Background()

	m.OnEvent(ctx, AnalysisEvent{EventType: AnalysisStarted, Mode: "skin"})
	m.OnEvent(ctx, AnalysisEvent{EventType: AnalysisStarted, Mode: "skin"})
	m.OnEvent(ctx, AnalysisEvent{EventType: AnalysisStarted, Mode: "beauty"})
	m.OnEvent(ctx, AnalysisEvent{EventType: PassDegraded, Mode: "skin", Pass: "findings_alternate"})
	m.OnEvent(ctx, AnalysisEvent{EventType: AnalysisCompleted, Mode: "skin", ProcessingTime: 2 * time.Second})
	m.OnEvent(ctx, AnalysisEvent{EventType: AnalysisFailed, Mode: "skin", ErrorType: "upstream_parse"})
	m.OnEvent(ctx, AnalysisEvent{EventType: AnalysisCompleted, Mode: "beauty", ProcessingTime: time.Second})

	metrics := m.GetMetrics()
	skin := metrics["modes"].(map[string]interface{})["skin"].(map[string]interface{})
	if skin["total_analyses"].(int64) != 2 {
		t.Errorf("Expected 2 skin analyses, got %v", skin["total_analyses"])
	}
	if skin["failed_analyses"].(int64) != 1 {
		t.Errorf("Expected 1 failed skin analysis, got %v", skin["failed_analyses"])
	}
	if skin["avg_processing_ms"].(int64) != 2000 {
		t.Errorf("Expected 2000ms average, got %v", skin["avg_processing_ms"])
	}
	if metrics["degraded_passes"].(int64) != 1 {
		t.Errorf("Expected 1 degraded pass, got %v", metrics["degraded_passes"])
	}
	if metrics["failures_by_type"].(map[string]int64)["upstream_parse"] != 1 {
		t.Errorf("Expected one upstream_parse failure, got %v", metrics["failures_by_type"])
	}
}

func TestLoggingObserver_Levels(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	obs := NewLoggingObserver(log)

	obs.OnEvent(context.Background(), AnalysisEvent{
		EventType: PassDegraded, Mode: "skin", Pass: "findings", RequestID: "req-1",
	})
	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.WarnLevel {
		t.Fatalf("Expected warn entry, got %+v", entry)
	}
	if entry.Data["request_id"] != "req-1" || entry.Data["pass"] != "findings" {
		t.Errorf("Expected request and pass fields, got %v", entry.Data)
	}

	obs.OnEvent(context.Background(), AnalysisEvent{EventType: AnalysisFailed, Mode: "beauty", ErrorType: "upstream_empty"})
	if hook.LastEntry().Level != logrus.ErrorLevel {
		t.Error("Expected failures to log at error level")
	}
}
