package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "triage_queue",
			Name:      "bookings_created_total",
			Help:      "Count of booking requests submitted.",
		},
	)

	bookingConfirmed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "triage_queue",
			Name:      "bookings_confirmed_total",
			Help:      "Count of bookings confirmed by assigned priority.",
		},
		[]string{"priority"},
	)

	bookingCalled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "triage_queue",
			Name:      "bookings_called_total",
			Help:      "Count of bookings promoted to in-use by call-next.",
		},
	)

	bookingServed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "triage_queue",
			Name:      "bookings_served_total",
			Help:      "Count of bookings marked served.",
		},
	)

	emptyQueueCalls = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "triage_queue",
			Name:      "empty_queue_calls_total",
			Help:      "Count of call-next invocations that found nothing waiting.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingCreated, bookingConfirmed, bookingCalled, bookingServed, emptyQueueCalls)
	})
}

func IncBookingCreated() {
	bookingCreated.Inc()
}

func IncBookingConfirmed(priority string) {
	bookingConfirmed.WithLabelValues(priority).Inc()
}

func IncBookingCalled() {
	bookingCalled.Inc()
}

func IncBookingServed() {
	bookingServed.Inc()
}

func IncEmptyQueueCall() {
	emptyQueueCalls.Inc()
}
