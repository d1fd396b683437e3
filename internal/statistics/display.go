package statistics

import (
	"github.com/markusressel/argus2display/internal/display"
	"github.com/markusressel/argus2display/internal/util"
	"github.com/prometheus/client_golang/prometheus"
)

const displaySubsystem = "display"

type DisplayOutcomeProvider interface {
	OutcomeCounts() map[display.Outcome]uint64
}

type DisplayCollector struct {
	display DisplayOutcomeProvider
	writes  *prometheus.Desc
}

func NewDisplayCollector(display DisplayOutcomeProvider) *DisplayCollector {
	return &DisplayCollector{
		display: display,
		writes: prometheus.NewDesc(prometheus.BuildFQName(namespace, displaySubsystem, "writes_total"),
			"Counter for temperature updates by outcome (changed, forced, skipped, failed)",
			[]string{"outcome"}, nil,
		),
	}
}

func (collector *DisplayCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.writes
}

// Collect implements required collect function for all prometheus collectors
func (collector *DisplayCollector) Collect(ch chan<- prometheus.Metric) {
	counts := collector.display.OutcomeCounts()
	for _, outcome := range util.SortedKeys(counts) {
		ch <- prometheus.MustNewConstMetric(collector.writes, prometheus.CounterValue, float64(counts[outcome]), string(outcome))
	}
}
