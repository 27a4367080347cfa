// Package zmqmetrics exports the zmq binding's handle accounting to Prometheus.
package zmqmetrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/3leaps/zmqprims/bindings/go/zmq"
)

const namespace = "zmq"

var (
	contextsDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "live_contexts"),
		"Contexts created and not yet destroyed.",
		nil, nil,
	)
	socketsDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "live_sockets"),
		"Sockets created and not yet closed.",
		nil, nil,
	)
	messagesDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "live_messages"),
		"Message descriptors allocated and not yet closed.",
		nil, nil,
	)
	ownedBuffersDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "owned_buffers"),
		"Zero-copy buffers handed to libzmq and not yet released.",
		nil, nil,
	)
	versionDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "library_info"),
		"Version of the linked libzmq.",
		[]string{"version"}, nil,
	)
)

// Collector implements prometheus.Collector over zmq.ReadStats.
type Collector struct{}

// NewCollector returns a collector ready to register.
func NewCollector() *Collector {
	return &Collector{}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- contextsDesc
	ch <- socketsDesc
	ch <- messagesDesc
	ch <- ownedBuffersDesc
	ch <- versionDesc
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	stats := zmq.ReadStats()
	ch <- prometheus.MustNewConstMetric(contextsDesc, prometheus.GaugeValue, float64(stats.Contexts))
	ch <- prometheus.MustNewConstMetric(socketsDesc, prometheus.GaugeValue, float64(stats.Sockets))
	ch <- prometheus.MustNewConstMetric(messagesDesc, prometheus.GaugeValue, float64(stats.Messages))
	ch <- prometheus.MustNewConstMetric(ownedBuffersDesc, prometheus.GaugeValue, float64(stats.OwnedBuffers))

	major, minor, patch := zmq.Version()
	ch <- prometheus.MustNewConstMetric(versionDesc, prometheus.GaugeValue, 1,
		fmt.Sprintf("%d.%d.%d", major, minor, patch))
}
