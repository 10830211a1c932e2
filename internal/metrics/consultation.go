package metrics

import "github.com/prometheus/client_golang/prometheus"

// Consultation Prometheus metrics.
var (
	CompletionRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vaidya",
			Name:      "completion_requests_total",
			Help:      "Total number of remote assistant completion requests",
		},
		[]string{"provider", "model", "status"},
	)

	CompletionRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vaidya",
			Name:      "completion_request_duration_seconds",
			Help:      "Remote assistant completion duration in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 40},
		},
		[]string{"provider", "model"},
	)

	CompletionTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vaidya",
			Name:      "completion_tokens_total",
			Help:      "Total completion tokens consumed",
		},
		[]string{"provider", "model", "type"},
	)

	CompletionErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vaidya",
			Name:      "completion_errors_total",
			Help:      "Total remote assistant errors",
		},
		[]string{"provider", "model", "error_type"},
	)

	ConsultationTurnsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vaidya",
			Name:      "consultation_turns_total",
			Help:      "Consultation turns by answer path and reason",
		},
		[]string{"path", "reason"}, // path: "remote" / "local"
	)

	AssistantBudgetTokensRemaining = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "vaidya",
			Name:      "assistant_budget_tokens_remaining",
			Help:      "Remaining assistant token budget (-1 = unlimited)",
		},
		[]string{"provider", "period"},
	)

	SearchResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "vaidya",
			Name:      "search_results",
			Help:      "Number of citations returned per search",
			Buckets:   []float64{0, 1, 2, 3, 4, 5},
		},
	)
)

var consultationMetricsRegistered bool

// RegisterConsultationMetrics registers consultation metrics. Must be called once from main.
func RegisterConsultationMetrics() {
	if consultationMetricsRegistered {
		return
	}
	prometheus.MustRegister(CompletionRequestsTotal)
	prometheus.MustRegister(CompletionRequestDuration)
	prometheus.MustRegister(CompletionTokensTotal)
	prometheus.MustRegister(CompletionErrorsTotal)
	prometheus.MustRegister(ConsultationTurnsTotal)
	prometheus.MustRegister(AssistantBudgetTokensRemaining)
	prometheus.MustRegister(SearchResults)
	consultationMetricsRegistered = true
}
