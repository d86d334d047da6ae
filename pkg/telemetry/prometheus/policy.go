package prometheus

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/atomic"
)

type PublishReason string

const (
	PublishReasonChanged PublishReason = "changed"
	PublishReasonForced  PublishReason = "forced"
)

var (
	constraintsPublished atomic.Uint64
	publishErrors        atomic.Uint64
	stageChanges         atomic.Uint64

	promConstraintsCounter *prometheus.CounterVec
	promPublishErrors      prometheus.Counter
	promStageChanges       prometheus.Counter
	promLastN              prometheus.Histogram
	promMaxHeight          *prometheus.CounterVec
)

func initPolicyStats(constLabels prometheus.Labels) {
	promConstraintsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   loadTestNamespace,
		Subsystem:   "policy",
		Name:        "constraints_published",
		ConstLabels: constLabels,
	}, []string{"reason"})
	promPublishErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   loadTestNamespace,
		Subsystem:   "policy",
		Name:        "publish_errors",
		ConstLabels: constLabels,
	})
	promStageChanges = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   loadTestNamespace,
		Subsystem:   "policy",
		Name:        "stage_changes",
		ConstLabels: constLabels,
	})
	promLastN = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace:   loadTestNamespace,
		Subsystem:   "policy",
		Name:        "last_n",
		ConstLabels: constLabels,
		Help:        "lastN of published receiver constraints, -1 is unlimited",
		Buckets:     []float64{-1, 0, 1, 2, 3, 5, 10, 20, 50},
	})
	promMaxHeight = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   loadTestNamespace,
		Subsystem:   "policy",
		Name:        "max_height",
		ConstLabels: constLabels,
	}, []string{"height"})

	prometheus.MustRegister(promConstraintsCounter)
	prometheus.MustRegister(promPublishErrors)
	prometheus.MustRegister(promStageChanges)
	prometheus.MustRegister(promLastN)
	prometheus.MustRegister(promMaxHeight)
}

func RecordConstraintsPublished(reason PublishReason, lastN int32, maxHeight int32) {
	constraintsPublished.Inc()
	if !initialized.Load() {
		return
	}
	promConstraintsCounter.WithLabelValues(string(reason)).Add(1)
	promLastN.Observe(float64(lastN))
	promMaxHeight.WithLabelValues(strconv.Itoa(int(maxHeight))).Add(1)
}

func RecordPublishError() {
	publishErrors.Inc()
	if initialized.Load() {
		promPublishErrors.Add(1)
	}
}

func RecordStageChange() {
	stageChanges.Inc()
	if initialized.Load() {
		promStageChanges.Add(1)
	}
}

type PolicyStats struct {
	ConstraintsPublished uint64
	PublishErrors        uint64
	StageChanges         uint64
}

func GetPolicyStats() PolicyStats {
	return PolicyStats{
		ConstraintsPublished: constraintsPublished.Load(),
		PublishErrors:        publishErrors.Load(),
		StageChanges:         stageChanges.Load(),
	}
}
