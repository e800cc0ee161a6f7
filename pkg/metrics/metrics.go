package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор Prometheus-метрик сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec

	// Бизнес-метрики
	SlotLookupsTotal        *prometheus.CounterVec
	AppointmentsCreated     *prometheus.CounterVec
	BookingConflictsTotal   *prometheus.CounterVec
	StatusTransitionsTotal  *prometheus.CounterVec
	PromotionsAppliedTotal  *prometheus.CounterVec
	CacheRequestsTotal      *prometheus.CounterVec
	EventsPublishedTotal    *prometheus.CounterVec
	RateLimitedRequestTotal *prometheus.CounterVec
}

// New создает метрики и регистрирует их в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики и регистрирует их в указанном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests.",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency.",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),

		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established database connections.",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of database connections currently in use.",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBIdleConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle database connections.",
			ConstLabels: constLabels,
		}, []string{"db"}),

		SlotLookupsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_lookups_total",
			Help:        "Available slot lookups by resolved day status.",
			ConstLabels: constLabels,
		}, []string{"day_status"}),

		AppointmentsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "appointments_created_total",
			Help:        "Appointments created, labelled by whether a promotion was applied.",
			ConstLabels: constLabels,
		}, []string{"promotion"}),

		BookingConflictsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_conflicts_total",
			Help:        "Booking attempts rejected because the slot was already taken.",
			ConstLabels: constLabels,
		}, []string{"stage"}),

		StatusTransitionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "appointment_status_transitions_total",
			Help:        "Appointment status transitions by outcome.",
			ConstLabels: constLabels,
		}, []string{"from", "to", "result"}),

		PromotionsAppliedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "promotions_applied_total",
			Help:        "Promotion selections at booking time by outcome.",
			ConstLabels: constLabels,
		}, []string{"result"}),

		CacheRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "cache_requests_total",
			Help:        "Cache lookups by result.",
			ConstLabels: constLabels,
		}, []string{"cache", "result"}),

		EventsPublishedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "events_published_total",
			Help:        "Domain events published to the message bus.",
			ConstLabels: constLabels,
		}, []string{"subject", "result"}),

		RateLimitedRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "rate_limited_requests_total",
			Help:        "Requests rejected by the rate limiter.",
			ConstLabels: constLabels,
		}, []string{"route"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.SlotLookupsTotal,
		m.AppointmentsCreated,
		m.BookingConflictsTotal,
		m.StatusTransitionsTotal,
		m.PromotionsAppliedTotal,
		m.CacheRequestsTotal,
		m.EventsPublishedTotal,
		m.RateLimitedRequestTotal,
	)

	return m
}

// Методы ниже безопасны для nil-получателя: если метрики выключены, вызовы игнорируются

// IncSlotLookup учитывает запрос доступных слотов
func (m *Metrics) IncSlotLookup(dayStatus string) {
	if m == nil {
		return
	}
	m.SlotLookupsTotal.WithLabelValues(dayStatus).Inc()
}

// IncAppointmentCreated учитывает созданную запись
func (m *Metrics) IncAppointmentCreated(withPromotion bool) {
	if m == nil {
		return
	}
	label := "none"
	if withPromotion {
		label = "applied"
	}
	m.AppointmentsCreated.WithLabelValues(label).Inc()
}

// IncBookingConflict учитывает отказ из-за занятого слота
// stage: precheck (найден при повторной проверке) | constraint (сработал уникальный индекс)
func (m *Metrics) IncBookingConflict(stage string) {
	if m == nil {
		return
	}
	m.BookingConflictsTotal.WithLabelValues(stage).Inc()
}

// IncStatusTransition учитывает попытку смены статуса
func (m *Metrics) IncStatusTransition(from, to, result string) {
	if m == nil {
		return
	}
	m.StatusTransitionsTotal.WithLabelValues(from, to, result).Inc()
}

// IncPromotion учитывает результат выбора промоакции при бронировании
// result: applied | fallback | none
func (m *Metrics) IncPromotion(result string) {
	if m == nil {
		return
	}
	m.PromotionsAppliedTotal.WithLabelValues(result).Inc()
}

// IncCache учитывает обращение к кешу
func (m *Metrics) IncCache(cache, result string) {
	if m == nil {
		return
	}
	m.CacheRequestsTotal.WithLabelValues(cache, result).Inc()
}

// IncEventPublished учитывает публикацию события
func (m *Metrics) IncEventPublished(subject, result string) {
	if m == nil {
		return
	}
	m.EventsPublishedTotal.WithLabelValues(subject, result).Inc()
}

// IncRateLimited учитывает отклонённый лимитером запрос
func (m *Metrics) IncRateLimited(route string) {
	if m == nil {
		return
	}
	m.RateLimitedRequestTotal.WithLabelValues(route).Inc()
}
