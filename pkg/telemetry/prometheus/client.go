package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/atomic"
)

var (
	clientCurrent   atomic.Int32
	clientStarted   atomic.Int32
	clientConnected atomic.Int32

	promClientCurrent  prometheus.Gauge
	promClientCounter  *prometheus.CounterVec
	promRosterSizeHist prometheus.Histogram
)

func initClientStats(constLabels prometheus.Labels) {
	promClientCurrent = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   loadTestNamespace,
		Subsystem:   "client",
		Name:        "total",
		ConstLabels: constLabels,
	})
	promClientCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   loadTestNamespace,
		Subsystem:   "client",
		Name:        "events",
		ConstLabels: constLabels,
	}, []string{"event"})
	promRosterSizeHist = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace:   loadTestNamespace,
		Subsystem:   "client",
		Name:        "roster_size",
		ConstLabels: constLabels,
		Buckets:     []float64{1, 2, 3, 4, 5, 8, 10, 20, 50, 100},
	})

	prometheus.MustRegister(promClientCurrent)
	prometheus.MustRegister(promClientCounter)
	prometheus.MustRegister(promRosterSizeHist)
}

func ClientStarted() {
	clientStarted.Inc()
	current := clientCurrent.Inc()
	if initialized.Load() {
		promClientCurrent.Set(float64(current))
		promClientCounter.WithLabelValues("started").Add(1)
	}
}

func ClientConnected() {
	clientConnected.Inc()
	if initialized.Load() {
		promClientCounter.WithLabelValues("connected").Add(1)
	}
}

func ClientStopped() {
	current := clientCurrent.Dec()
	if initialized.Load() {
		promClientCurrent.Set(float64(current))
		promClientCounter.WithLabelValues("stopped").Add(1)
	}
}

func RecordRosterSize(count int) {
	if initialized.Load() {
		promRosterSizeHist.Observe(float64(count))
	}
}

type ClientStats struct {
	Current   int32
	Started   int32
	Connected int32
}

func GetClientStats() ClientStats {
	return ClientStats{
		Current:   clientCurrent.Load(),
		Started:   clientStarted.Load(),
		Connected: clientConnected.Load(),
	}
}
