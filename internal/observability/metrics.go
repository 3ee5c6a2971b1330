package observability

import (
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/yungbote/giftwizard-backend/internal/platform/envutil"
	"github.com/yungbote/giftwizard-backend/internal/platform/logger"
)

type Metrics struct {
	apiRequests  *CounterVec
	apiLatency   *HistogramVec
	apiInflight  *Gauge
	llmRequests  *CounterVec
	llmLatency   *HistogramVec
	llmTokens    *CounterVec
	generations  *CounterVec
	imageLookups *CounterVec
	submissions  *CounterVec
	wizardEvents *CounterVec
	purgedRows   *Counter
}

var (
	initOnce sync.Once
	instance *Metrics
)

func Enabled() bool { return envutil.Bool("METRICS_ENABLED", false, nil) }

// Current returns the process metrics, or nil when Init was not called. Every
// method is safe on a nil *Metrics.
func Current() *Metrics {
	return instance
}

func Init(log *logger.Logger) *Metrics {
	initOnce.Do(func() {
		instance = NewMetrics()
		if log != nil {
			log.Info("metrics enabled")
		}
	})
	return instance
}

func NewMetrics() *Metrics {
	return &Metrics{
		apiRequests: NewCounterVec("giftwizard_api_requests_total", "HTTP requests by method, route and status.", []string{"method", "route", "status"}),
		apiLatency: NewHistogramVec("giftwizard_api_request_duration_seconds", "HTTP request latency.", []string{"method", "route"},
			[]float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}),
		apiInflight: NewGauge("giftwizard_api_inflight_requests", "HTTP requests in flight."),
		llmRequests: NewCounterVec("giftwizard_llm_requests_total", "Chat completion calls by model and status.", []string{"model", "status"}),
		llmLatency: NewHistogramVec("giftwizard_llm_request_duration_seconds", "Chat completion latency.", []string{"model"},
			[]float64{0.5, 1, 2, 5, 10, 20, 30}),
		llmTokens:    NewCounterVec("giftwizard_llm_tokens_total", "Tokens used by model and kind.", []string{"model", "kind"}),
		generations:  NewCounterVec("giftwizard_gift_generations_total", "Gift generations by outcome.", []string{"outcome"}),
		imageLookups: NewCounterVec("giftwizard_image_lookups_total", "Image lookups by provider and outcome.", []string{"provider", "outcome"}),
		submissions:  NewCounterVec("giftwizard_wizard_submissions_total", "Wizard submissions by outcome.", []string{"outcome"}),
		wizardEvents: NewCounterVec("giftwizard_wizard_events_total", "Wizard session events by type.", []string{"type"}),
		purgedRows:   NewCounter("giftwizard_results_purged_total", "Expired gift results deleted."),
	}
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, r *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	for _, c := range []interface{ WritePrometheus(io.Writer) error }{
		m.apiRequests, m.apiLatency, m.apiInflight,
		m.llmRequests, m.llmLatency, m.llmTokens,
		m.generations, m.imageLookups, m.submissions, m.wizardEvents,
		m.purgedRows,
	} {
		if err := c.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	if status == "" {
		status = "0"
	}
	m.apiRequests.Inc(method, route, status)
	m.apiLatency.Observe(dur.Seconds(), method, route)
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) ObserveLLMRequest(model, status string, dur time.Duration, inputTokens, outputTokens int) {
	if m == nil {
		return
	}
	model = strings.TrimSpace(model)
	if model == "" {
		model = "unknown"
	}
	if status == "" {
		status = "0"
	}
	m.llmRequests.Inc(model, status)
	if dur > 0 {
		m.llmLatency.Observe(dur.Seconds(), model)
	}
	if inputTokens > 0 {
		m.llmTokens.Add(float64(inputTokens), model, "input")
	}
	if outputTokens > 0 {
		m.llmTokens.Add(float64(outputTokens), model, "output")
	}
}

func (m *Metrics) IncGeneration(outcome string) {
	if m == nil {
		return
	}
	m.generations.Inc(outcome)
}

func (m *Metrics) IncImageLookup(provider, outcome string) {
	if m == nil {
		return
	}
	m.imageLookups.Inc(provider, outcome)
}

func (m *Metrics) IncSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissions.Inc(outcome)
}

func (m *Metrics) IncWizardEvent(eventType string) {
	if m == nil {
		return
	}
	m.wizardEvents.Inc(eventType)
}

func (m *Metrics) AddPurged(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.purgedRows.Add(float64(n))
}
