package source

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tlog/internal/config"
)

// Frame outcomes
const (
	frameAccepted = "accepted"
	frameRejected = "rejected"
)

// metrics counts remote intake activity on a registry private to one Remote
type metrics struct {
	registry *prometheus.Registry
	frames   *prometheus.CounterVec
	clients  prometheus.Gauge
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		frames: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.AppName,
			Subsystem: "remote",
			Name:      "frames_total",
			Help:      "Frames received from remote clients, by result.",
		}, []string{"result"}),
		clients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: config.AppName,
			Subsystem: "remote",
			Name:      "clients",
			Help:      "Remote clients currently connected.",
		}),
	}

	m.registry.MustRegister(m.frames, m.clients)

	return m
}

func (m *metrics) accepted() {
	m.frames.WithLabelValues(frameAccepted).Inc()
}

func (m *metrics) rejected() {
	m.frames.WithLabelValues(frameRejected).Inc()
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
