package statistics

import (
	"github.com/markusressel/argus2display/internal/controller"
	"github.com/prometheus/client_golang/prometheus"
)

const controllerSubsystem = "controller"

type ControllerStatisticsProvider interface {
	State() controller.State
	GetStatistics() controller.Statistics
}

type ControllerCollector struct {
	controller ControllerStatisticsProvider

	running          *prometheus.Desc
	sourceAttempts   *prometheus.Desc
	ticks            *prometheus.Desc
	unavailableTicks *prometheus.Desc
	writeFailures    *prometheus.Desc
	cpuTemperature   *prometheus.Desc
}

func NewControllerCollector(controller ControllerStatisticsProvider) *ControllerCollector {
	return &ControllerCollector{
		controller: controller,
		running: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "running"),
			"1 if the controller is updating the display, 0 otherwise",
			nil, nil,
		),
		sourceAttempts: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "source_connect_attempts"),
			"Number of attempts it took to connect to Argus Monitor",
			nil, nil,
		),
		ticks: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "ticks_total"),
			"Counter for poll loop iterations",
			nil, nil,
		),
		unavailableTicks: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "unavailable_ticks_total"),
			"Counter for poll loop iterations without a CPU temperature reading",
			nil, nil,
		),
		writeFailures: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "write_failures_total"),
			"Counter for failed writes to the display",
			nil, nil,
		),
		cpuTemperature: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "cpu_temperature_celsius"),
			"Last raw CPU temperature read from Argus Monitor",
			nil, nil,
		),
	}
}

func (collector *ControllerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.running
	ch <- collector.sourceAttempts
	ch <- collector.ticks
	ch <- collector.unavailableTicks
	ch <- collector.writeFailures
	ch <- collector.cpuTemperature
}

// Collect implements required collect function for all prometheus collectors
func (collector *ControllerCollector) Collect(ch chan<- prometheus.Metric) {
	stats := collector.controller.GetStatistics()

	running := 0.0
	if collector.controller.State() == controller.Running {
		running = 1
	}
	ch <- prometheus.MustNewConstMetric(collector.running, prometheus.GaugeValue, running)
	ch <- prometheus.MustNewConstMetric(collector.sourceAttempts, prometheus.GaugeValue, float64(stats.SourceAttempts))
	ch <- prometheus.MustNewConstMetric(collector.ticks, prometheus.CounterValue, float64(stats.Ticks))
	ch <- prometheus.MustNewConstMetric(collector.unavailableTicks, prometheus.CounterValue, float64(stats.UnavailableTicks))
	ch <- prometheus.MustNewConstMetric(collector.writeFailures, prometheus.CounterValue, float64(stats.WriteFailures))
	if stats.HasReading {
		ch <- prometheus.MustNewConstMetric(collector.cpuTemperature, prometheus.GaugeValue, stats.LastRawTemperature)
	}
}
