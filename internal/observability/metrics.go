package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rtectl",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"node", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rtectl",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node", "method", "path", "status"},
	)
	rteCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rtectl",
			Subsystem: "rte",
			Name:      "calls_total",
			Help:      "RTE API calls made by content, by SCORM version, method and returned error code.",
		},
		[]string{"version", "method", "code"},
	)
	framesetPosts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rtectl",
			Subsystem: "frameset",
			Name:      "posts_total",
			Help:      "Frameset posts by outcome.",
		},
		[]string{"outcome"},
	)
	formRetries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "rtectl",
			Subsystem: "frameset",
			Name:      "form_retries_total",
			Help:      "Form discovery retries while the post frame was loading.",
		},
	)
	lmsCommands = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rtectl",
			Subsystem: "lms",
			Name:      "commands_total",
			Help:      "Frameset commands processed by the loopback LMS.",
		},
		[]string{"command", "success"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, rteCalls, framesetPosts, formRetries, lmsCommands)
	})
}

func RecordHTTPRequest(node, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(node, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(node, method, path, statusLabel).Observe(duration.Seconds())
}

func RecordRTECall(version, method, code string) {
	RegisterMetrics()
	rteCalls.WithLabelValues(version, method, code).Inc()
}

func RecordPost(outcome string) {
	RegisterMetrics()
	framesetPosts.WithLabelValues(outcome).Inc()
}

func RecordFormRetry() {
	RegisterMetrics()
	formRetries.Inc()
}

func RecordLMSCommand(command string, success bool) {
	RegisterMetrics()
	lmsCommands.WithLabelValues(command, strconv.FormatBool(success)).Inc()
}
