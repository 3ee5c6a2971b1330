package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestWritePrometheus(t *testing.T) {
	m := NewMetrics()
	m.ObserveAPI("POST", "/generate_gifts", "200", 300*time.Millisecond)
	m.ObserveAPI("POST", "/generate_gifts", "200", 20*time.Millisecond)
	m.IncGeneration("ok")
	m.IncImageLookup("pexels", "ok")
	m.AddPurged(3)

	var buf bytes.Buffer
	if err := m.WritePrometheus(&buf); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`giftwizard_api_requests_total{method="POST",route="/generate_gifts",status="200"} 2`,
		`giftwizard_api_request_duration_seconds_bucket{method="POST",route="/generate_gifts",le="0.05"} 1`,
		`giftwizard_api_request_duration_seconds_bucket{method="POST",route="/generate_gifts",le="+Inf"} 2`,
		`giftwizard_gift_generations_total{outcome="ok"} 1`,
		`giftwizard_image_lookups_total{provider="pexels",outcome="ok"} 1`,
		`giftwizard_results_purged_total 3`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing series %q in:\n%s", want, out)
		}
	}
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/health", "200", time.Millisecond)
	m.ObserveLLMRequest("gpt-4o-mini", "200", time.Second, 10, 10)
	m.IncSubmission("fallback")
	m.AddPurged(1)
	if err := m.WritePrometheus(&bytes.Buffer{}); err != nil {
		t.Fatalf("nil WritePrometheus: %v", err)
	}
}

func TestLabelEscaping(t *testing.T) {
	got := labelString([]string{"a", "b"}, []string{`x"y`})
	if got != `{a="x\"y",b="unknown"}` {
		t.Fatalf("labelString: got=%q", got)
	}
}
