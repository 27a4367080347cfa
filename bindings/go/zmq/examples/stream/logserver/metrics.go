package main

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/3leaps/zmqprims/bindings/go/zmq/zmqmetrics"
)

// MetricsServer exposes the binding's handle counters and the line counter on
// /metrics. It runs as a suture service.
type MetricsServer struct {
	server *http.Server
	log    *logrus.Entry
}

// NewMetricsServer registers the zmq collector and lines on a private registry.
func NewMetricsServer(address string, lines prometheus.Counter, log *logrus.Entry) *MetricsServer {
	registry := prometheus.NewRegistry()
	registry.MustRegister(zmqmetrics.NewCollector(), lines)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		ErrorLog:      logrus.StandardLogger(),
		ErrorHandling: promhttp.ContinueOnError,
	}))
	return &MetricsServer{
		server: &http.Server{Addr: address, Handler: mux},
		log:    log,
	}
}

// Serve -
func (m *MetricsServer) Serve() {
	m.log.Infof("metrics listen %s", m.server.Addr)
	if err := m.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		m.log.WithError(err).Error("metrics server failed")
	}
}

// Stop -
func (m *MetricsServer) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := m.server.Shutdown(ctx); err != nil {
		m.log.WithError(err).Warn("metrics server shutdown")
	}
}
