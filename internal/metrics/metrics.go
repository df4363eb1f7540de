package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/GGmuzem/showcase-api/internal/calculator"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "showcase"

// Исходы вычислений
const (
	OutcomeOK       = "ok"
	OutcomeOverflow = "overflow"
	OutcomeInvalid  = "invalid_argument"
	OutcomeError    = "error"
)

// Metrics коллекторы сервиса на собственном реестре
type Metrics struct {
	registry     *prometheus.Registry
	requests     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	calculations *prometheus.CounterVec
}

// New создаёт и регистрирует коллекторы
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calculations_total",
			Help:      "Calculator operations by outcome.",
		}, []string{"operation", "outcome"}),
	}

	m.registry.MustRegister(
		m.requests,
		m.duration,
		m.calculations,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry реестр для тестов и экспорта
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler обработчик /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest учитывает завершённый HTTP-запрос
func (m *Metrics) ObserveRequest(route, method string, code int, elapsed time.Duration) {
	m.requests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	m.duration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// ObserveCalculation подходит как calculator.Observer
func (m *Metrics) ObserveCalculation(op string, err error) {
	m.calculations.WithLabelValues(op, Outcome(err)).Inc()
}

// Outcome метка исхода для ошибки калькулятора
func Outcome(err error) string {
	var overflowErr *calculator.OverflowError
	var argErr *calculator.InvalidArgumentError
	switch {
	case err == nil:
		return OutcomeOK
	case errors.As(err, &overflowErr):
		return OutcomeOverflow
	case errors.As(err, &argErr):
		return OutcomeInvalid
	default:
		return OutcomeError
	}
}
