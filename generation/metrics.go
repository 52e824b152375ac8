package generation

import (
	"context"
	"sync"
	"time"

	"github.com/pkoukk/tiktoken-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "living_pages_generation_requests_total",
			Help: "Total number of requests to the text generation provider.",
		},
		[]string{"provider", "model", "status"},
	)
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "living_pages_generation_request_duration_seconds",
			Help:    "Histogram of text generation request durations.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider", "model"},
	)
	promptTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "living_pages_generation_prompt_tokens",
			Help:    "Histogram of estimated prompt token counts.",
			Buckets: prometheus.LinearBuckets(250, 250, 20),
		},
		[]string{"provider", "model"},
	)
)

// TokenCounter estimates the number of tokens in a text. It returns false
// when no estimate is available.
type TokenCounter func(text string) (int, bool)

var (
	encodingOnce sync.Once
	encoding     *tiktoken.Tiktoken
)

// EstimateTokens counts tokens with the cl100k_base encoding.
func EstimateTokens(text string) (int, bool) {
	encodingOnce.Do(func() {
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err == nil {
			encoding = enc
		}
	})
	if encoding == nil {
		return 0, false
	}
	return len(encoding.Encode(text, nil, nil)), true
}

type instrumentedModel struct {
	next     Model
	provider string
	count    TokenCounter
}

// Instrument records request counts, durations and prompt sizes for m.
func Instrument(provider string, m Model) Model {
	return InstrumentWithCounter(provider, m, EstimateTokens)
}

func InstrumentWithCounter(provider string, m Model, count TokenCounter) Model {
	return &instrumentedModel{next: m, provider: provider, count: count}
}

func (m *instrumentedModel) Complete(ctx context.Context, system, prompt string) (string, error) {
	labels := prometheus.Labels{"provider": m.provider, "model": m.next.Name()}
	if m.count != nil {
		if n, ok := m.count(system + prompt); ok {
			promptTokens.With(labels).Observe(float64(n))
		}
	}

	start := time.Now()
	text, err := m.next.Complete(ctx, system, prompt)
	requestDuration.With(labels).Observe(time.Since(start).Seconds())

	status := "success"
	switch {
	case err != nil:
		status = "error"
	case text == "":
		status = "error_empty_response"
	}
	requestsTotal.WithLabelValues(m.provider, m.next.Name(), status).Inc()
	return text, err
}

func (m *instrumentedModel) Name() string { return m.next.Name() }

func (m *instrumentedModel) Close() error { return m.next.Close() }
