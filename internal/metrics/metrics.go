// Package metrics defines the Prometheus metrics of the chat service.
// All metrics register with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "chat"

// HTTPRequestsTotal counts served requests.
// Labels:
//   - method: HTTP method
//   - route: chi route pattern (e.g. "/conversations/{conversationID}")
//   - status: response status code
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests served.",
	},
	[]string{"method", "route", "status"},
)

// HTTPRequestDuration measures request latency by route.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// AuthAttemptsTotal counts authentication attempts.
// Labels:
//   - method: "password", "google" or "signup"
//   - outcome: "success" or "failure"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts.",
	},
	[]string{"method", "outcome"},
)

// ChatTurnsTotal counts chat turns by outcome.
// Label:
//   - outcome: "completed", "rejected", "llm_failed" or "failed"
var ChatTurnsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "turns_total",
		Help:      "Total number of chat turns, by outcome.",
	},
	[]string{"outcome"},
)

// LLMRequestDuration measures completion latency, successful or not.
var LLMRequestDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "llm_request_duration_seconds",
		Help:      "Duration of LLM completion requests.",
		Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 20, 40, 60},
	},
)

// LLMErrorsTotal counts failed completions.
// Label:
//   - reason: "transport", "timeout", "status" or "empty"
var LLMErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "llm_errors_total",
		Help:      "Total number of failed LLM completion requests.",
	},
	[]string{"reason"},
)

// ConversationCacheTotal counts conversation list cache lookups.
// Label:
//   - result: "hit" or "miss"
var ConversationCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "conversation_cache_total",
		Help:      "Total number of conversation list cache lookups, by result.",
	},
	[]string{"result"},
)

// EventsPublishedTotal counts chat turn events handed to Kafka.
// Label:
//   - result: "ok" or "error"
var EventsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_published_total",
		Help:      "Total number of chat turn events published, by result.",
	},
	[]string{"result"},
)
