package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	PaymentCallbacksTotal *prometheus.CounterVec
	BookingsConfirmed     prometheus.Counter
	BookingsRescheduled   prometheus.Counter
	EntitlementsCleared   *prometheus.CounterVec
	EntitlementShortfalls *prometheus.CounterVec
}

// New создает и регистрирует метрики в registry по умолчанию
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в переданном registerer
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "http_requests_total",
				Help:        "Total number of HTTP requests",
				ConstLabels: constLabels,
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "http_request_duration_seconds",
				Help:        "HTTP request latency",
				Buckets:     prometheus.DefBuckets,
				ConstLabels: constLabels,
			},
			[]string{"method", "route"},
		),
		PaymentCallbacksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "payment_callbacks_total",
				Help:        "Payment gateway callbacks by outcome",
				ConstLabels: constLabels,
			},
			[]string{"outcome"},
		),
		BookingsConfirmed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name:        "bookings_confirmed_total",
				Help:        "Bookings moved to confirmed",
				ConstLabels: constLabels,
			},
		),
		BookingsRescheduled: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name:        "bookings_rescheduled_total",
				Help:        "Bookings rescheduled",
				ConstLabels: constLabels,
			},
		),
		EntitlementsCleared: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "entitlements_cleared_total",
				Help:        "Entitlement selections cleared because they stopped qualifying",
				ConstLabels: constLabels,
			},
			[]string{"kind"},
		),
		EntitlementShortfalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "entitlement_shortfalls_total",
				Help:        "Paid bookings confirmed although the entitlement was already spent",
				ConstLabels: constLabels,
			},
			[]string{"kind"},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.PaymentCallbacksTotal,
		m.BookingsConfirmed,
		m.BookingsRescheduled,
		m.EntitlementsCleared,
		m.EntitlementShortfalls,
	)

	return m
}

// PaymentCallback увеличивает счётчик callback'ов; безопасен для nil
func (m *Metrics) PaymentCallback(outcome string) {
	if m == nil {
		return
	}
	m.PaymentCallbacksTotal.WithLabelValues(outcome).Inc()
}

// BookingConfirmed безопасен для nil
func (m *Metrics) BookingConfirmed() {
	if m == nil {
		return
	}
	m.BookingsConfirmed.Inc()
}

// BookingRescheduled безопасен для nil
func (m *Metrics) BookingRescheduled() {
	if m == nil {
		return
	}
	m.BookingsRescheduled.Inc()
}

// EntitlementCleared безопасен для nil
func (m *Metrics) EntitlementCleared(kind string) {
	if m == nil {
		return
	}
	m.EntitlementsCleared.WithLabelValues(kind).Inc()
}

// EntitlementShortfall безопасен для nil
func (m *Metrics) EntitlementShortfall(kind string) {
	if m == nil {
		return
	}
	m.EntitlementShortfalls.WithLabelValues(kind).Inc()
}
