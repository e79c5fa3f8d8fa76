package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/circadianhq/circadian/pkg/circadian"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circadian_http_requests_total",
			Help: "Total number of HTTP requests by endpoint, method, and status",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "circadian_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	authEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circadian_auth_events_total",
			Help: "Total authentication events by type and result",
		},
		[]string{"event_type", "result", "provider"},
	)

	syncScorePercent = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circadian_sync_score_percent",
			Help: "Current sync score percentage per user",
		},
		[]string{"user_id"},
	)

	streakDays = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circadian_streak_days",
			Help: "Current day streak per user",
		},
		[]string{"user_id"},
	)

	anchorsCompleted = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circadian_anchors_completed",
			Help: "Number of anchors completed today per user",
		},
		[]string{"user_id"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(wrapped.statusCode)

		httpRequestsTotal.WithLabelValues(r.URL.Path, r.Method, statusCode).Inc()
		httpRequestDuration.WithLabelValues(r.URL.Path, r.Method, statusCode).Observe(duration)
	})
}

func recordAuthEvent(eventType, result, provider string) {
	authEventsTotal.WithLabelValues(eventType, result, provider).Inc()
}

func updateStateMetrics(userID string, st *circadian.UserState) {
	done := 0
	for _, a := range st.Anchors {
		if a.Completed {
			done++
		}
	}
	syncScorePercent.WithLabelValues(userID).Set(float64(st.SyncScore))
	streakDays.WithLabelValues(userID).Set(float64(st.Streak))
	anchorsCompleted.WithLabelValues(userID).Set(float64(done))
}
