package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/atomic"
)

const (
	loadTestNamespace string = "jitsi_load_test"
)

var (
	initialized atomic.Bool
)

// Init registers all collectors. Record functions are no-ops on the prometheus
// side until Init is called, the in-process counters are always maintained.
func Init(runID string, env string) {
	if initialized.Load() {
		return
	}

	constLabels := prometheus.Labels{"run_id": runID, "env": env}
	initClientStats(constLabels)
	initPolicyStats(constLabels)

	initialized.Store(true)
}
