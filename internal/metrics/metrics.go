// Package metrics exposes Prometheus collectors for the practice API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP requests by route pattern, method and status code
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "phonicsquest_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "phonicsquest_http_request_duration_seconds",
			Help:    "Time spent serving HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	sessionsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "phonicsquest_sessions_created_total",
			Help: "Total number of practice sessions created",
		},
		[]string{"exercise_type"},
	)

	sessionsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "phonicsquest_sessions_completed_total",
			Help: "Total number of practice sessions completed",
		},
		[]string{"exercise_type"},
	)

	attemptsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "phonicsquest_attempts_total",
			Help: "Total number of attempts recorded",
		},
		[]string{"mode", "correct"},
	)

	attemptResponseTime = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "phonicsquest_attempt_response_seconds",
			Help:    "Learner response time per attempt",
			Buckets: []float64{0.5, 1, 2, 3, 5, 8, 13, 21},
		},
	)

	feedbackSteps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "phonicsquest_feedback_steps_total",
			Help: "Cueing ladder steps selected",
		},
		[]string{"step"},
	)

	skillsMastered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "phonicsquest_skills_mastered_total",
			Help: "Total number of skills newly mastered",
		},
	)
)

func SessionCreated(exerciseType string) {
	sessionsCreated.WithLabelValues(exerciseType).Inc()
}

func SessionCompleted(exerciseType string) {
	sessionsCompleted.WithLabelValues(exerciseType).Inc()
}

// AttemptRecorded counts an attempt and observes its response time
func AttemptRecorded(mode string, correct bool, responseTimeMs int) {
	attemptsRecorded.WithLabelValues(mode, strconv.FormatBool(correct)).Inc()
	attemptResponseTime.Observe(float64(responseTimeMs) / 1000)
}

func FeedbackStep(step string) {
	feedbackSteps.WithLabelValues(step).Inc()
}

func SkillMastered() {
	skillsMastered.Inc()
}

// Handler serves the registered collectors
func Handler() http.Handler {
	return promhttp.Handler()
}

// statusRecorder captures the status code written by the wrapped handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records request counts and latency. Requests are labelled by
// the matched ServeMux pattern so path parameters do not explode cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}
