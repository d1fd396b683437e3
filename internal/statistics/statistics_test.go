package statistics

import (
	"context"
	"github.com/markusressel/argus2display/internal/controller"
	"github.com/markusressel/argus2display/internal/display"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type mockController struct {
	state controller.State
	stats controller.Statistics
}

func (m mockController) State() controller.State {
	return m.state
}

func (m mockController) GetStatistics() controller.Statistics {
	return m.stats
}

type mockDisplay map[display.Outcome]uint64

func (m mockDisplay) OutcomeCounts() map[display.Outcome]uint64 {
	return m
}

func TestControllerCollector(t *testing.T) {
	// GIVEN
	collector := NewControllerCollector(mockController{
		state: controller.Running,
		stats: controller.Statistics{
			SourceAttempts:     2,
			Ticks:              10,
			UnavailableTicks:   1,
			WriteFailures:      3,
			LastRawTemperature: 48.5,
			HasReading:         true,
		},
	})

	expected := `
# HELP argus2display_controller_running 1 if the controller is updating the display, 0 otherwise
# TYPE argus2display_controller_running gauge
argus2display_controller_running 1
# HELP argus2display_controller_ticks_total Counter for poll loop iterations
# TYPE argus2display_controller_ticks_total counter
argus2display_controller_ticks_total 10
# HELP argus2display_controller_write_failures_total Counter for failed writes to the display
# TYPE argus2display_controller_write_failures_total counter
argus2display_controller_write_failures_total 3
# HELP argus2display_controller_cpu_temperature_celsius Last raw CPU temperature read from Argus Monitor
# TYPE argus2display_controller_cpu_temperature_celsius gauge
argus2display_controller_cpu_temperature_celsius 48.5
`

	// WHEN
	err := testutil.CollectAndCompare(collector, strings.NewReader(expected),
		"argus2display_controller_running",
		"argus2display_controller_ticks_total",
		"argus2display_controller_write_failures_total",
		"argus2display_controller_cpu_temperature_celsius",
	)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 6, testutil.CollectAndCount(collector))
}

func TestControllerCollector_NoReading(t *testing.T) {
	// GIVEN
	collector := NewControllerCollector(mockController{state: controller.ConnectingSource})

	// WHEN
	count := testutil.CollectAndCount(collector, "argus2display_controller_cpu_temperature_celsius")
	running := testutil.CollectAndCount(collector, "argus2display_controller_running")

	// THEN
	assert.Equal(t, 0, count)
	assert.Equal(t, 1, running)
}

func TestDisplayCollector(t *testing.T) {
	// GIVEN
	collector := NewDisplayCollector(mockDisplay{
		display.OutcomeChanged: 4,
		display.OutcomeForced:  2,
		display.OutcomeSkipped: 10,
		display.OutcomeFailed:  0,
	})

	expected := `
# HELP argus2display_display_writes_total Counter for temperature updates by outcome (changed, forced, skipped, failed)
# TYPE argus2display_display_writes_total counter
argus2display_display_writes_total{outcome="changed"} 4
argus2display_display_writes_total{outcome="failed"} 0
argus2display_display_writes_total{outcome="forced"} 2
argus2display_display_writes_total{outcome="skipped"} 10
`

	// WHEN
	err := testutil.CollectAndCompare(collector, strings.NewReader(expected))

	// THEN
	assert.NoError(t, err)
}

func TestTextfileExporter_Export(t *testing.T) {
	// GIVEN
	registry := prometheus.NewRegistry()
	registry.MustRegister(NewDisplayCollector(mockDisplay{display.OutcomeChanged: 7}))
	path := filepath.Join(t.TempDir(), "metrics", "argus2display.prom")
	exporter := NewTextfileExporter(path, time.Hour, registry)

	// WHEN
	err := exporter.Export()

	// THEN
	require.NoError(t, err)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `argus2display_display_writes_total{outcome="changed"} 7`)
}

func TestTextfileExporter_RunExportsOnStop(t *testing.T) {
	// GIVEN
	registry := prometheus.NewRegistry()
	registry.MustRegister(NewDisplayCollector(mockDisplay{display.OutcomeSkipped: 1}))
	path := filepath.Join(t.TempDir(), "argus2display.prom")
	exporter := NewTextfileExporter(path, time.Hour, registry)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// WHEN
	err := exporter.Run(ctx)

	// THEN
	require.NoError(t, err)
	assert.FileExists(t, path)
}
