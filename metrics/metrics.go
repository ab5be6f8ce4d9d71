// Package metrics exposes kiosk activity to Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/cybereatdiri/kiosk"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cybereatdiri"

// Metrics holds the collectors for one registry. It is a kiosk.Notifier.
type Metrics struct {
	registry *prometheus.Registry

	orders          *prometheus.CounterVec
	orderRevenue    prometheus.Counter
	orderItems      prometheus.Counter
	creditPurchases *prometheus.CounterVec
	creditRevenue   prometheus.Counter
	authAttempts    *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		orders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "committed_total",
			Help:      "Checkouts committed, by payment method.",
		}, []string{"payment_method"}),
		orderRevenue: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "revenue_pesos_total",
			Help:      "Sum of committed order totals in pesos.",
		}),
		orderItems: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "items_total",
			Help:      "Units sold across committed orders.",
		}),
		creditPurchases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "credits",
			Name:      "purchased_total",
			Help:      "Credit packages purchased, by package.",
		}, []string{"package"}),
		creditRevenue: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "credits",
			Name:      "revenue_pesos_total",
			Help:      "Sum of credit purchase prices in pesos.",
		}),
		authAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "attempts_total",
			Help:      "Signup and login attempts, by outcome.",
		}, []string{"action", "result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		}, []string{"method", "path"}),
	}

	m.registry.MustRegister(
		m.orders,
		m.orderRevenue,
		m.orderItems,
		m.creditPurchases,
		m.creditRevenue,
		m.authAttempts,
		m.httpRequests,
		m.httpDuration,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return m
}

// Registry is exposed for tests and for registering extra collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) Notify(ev kiosk.Event) {
	switch ev.Kind {
	case kiosk.EventOrderCommitted:
		m.orders.WithLabelValues(string(ev.PaymentMethod)).Inc()
		m.orderRevenue.Add(float64(ev.Amount))
		m.orderItems.Add(float64(ev.ItemCount))
	case kiosk.EventCreditPurchased:
		pkg := "unknown"
		if ev.Credit != nil {
			pkg = ev.Credit.ID
		}
		m.creditPurchases.WithLabelValues(pkg).Inc()
		m.creditRevenue.Add(float64(ev.Amount))
	}
}

// AuthAttempt counts one signup or login; result is "ok" or an error class.
func (m *Metrics) AuthAttempt(action, result string) {
	m.authAttempts.WithLabelValues(action, result).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency. Paths are the route
// templates so ids do not explode the label space.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.httpRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
