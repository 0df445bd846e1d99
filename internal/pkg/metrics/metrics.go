package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "driveshare",
			Name:      "booking_created_total",
			Help:      "Count of bookings created by status.",
		},
		[]string{"status"},
	)

	bookingConfirmed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "driveshare",
			Name:      "booking_confirmed_total",
			Help:      "Count of pending holds confirmed into firm bookings.",
		},
	)

	bookingCanceled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "driveshare",
			Name:      "booking_canceled_total",
			Help:      "Count of bookings canceled.",
		},
	)

	moderationDecision = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "driveshare",
			Name:      "vehicle_moderation_total",
			Help:      "Count of admin moderation decisions over vehicle listings.",
		},
		[]string{"decision"},
	)

	availabilityRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "driveshare",
			Name:      "availability_rejected_total",
			Help:      "Count of availability selection steps rejected by reason tag.",
		},
		[]string{"reason"},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "driveshare",
			Name:      "http_requests_total",
			Help:      "Count of HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "driveshare",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// Register registers all collectors (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			bookingCreated,
			bookingConfirmed,
			bookingCanceled,
			moderationDecision,
			availabilityRejected,
			httpRequests,
			httpDuration,
		)
	})
}

func IncBookingCreated(status string) {
	bookingCreated.WithLabelValues(status).Inc()
}

func IncBookingConfirmed() {
	bookingConfirmed.Inc()
}

func IncBookingCanceled() {
	bookingCanceled.Inc()
}

func IncModerationDecision(decision string) {
	moderationDecision.WithLabelValues(decision).Inc()
}

func IncAvailabilityRejected(reason string) {
	availabilityRejected.WithLabelValues(reason).Inc()
}

func ObserveHTTPRequest(method, route, status string, seconds float64) {
	httpRequests.WithLabelValues(method, route, status).Inc()
	httpDuration.WithLabelValues(method, route).Observe(seconds)
}
