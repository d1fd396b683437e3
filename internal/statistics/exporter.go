package statistics

import (
	"context"
	"github.com/markusressel/argus2display/internal/ui"
	"github.com/markusressel/argus2display/internal/util"
	"github.com/prometheus/client_golang/prometheus"
	"os"
	"path/filepath"
	"time"
)

const (
	namespace = "argus2display"
)

func Register(collector prometheus.Collector) {
	prometheus.MustRegister(collector)
}

// TextfileExporter periodically writes all metrics of a gatherer to a file
// in the prometheus text format, e.g. for the node_exporter textfile collector.
type TextfileExporter struct {
	path     string
	interval time.Duration
	gatherer prometheus.Gatherer
}

func NewTextfileExporter(path string, interval time.Duration, gatherer prometheus.Gatherer) *TextfileExporter {
	return &TextfileExporter{
		path:     path,
		interval: interval,
		gatherer: gatherer,
	}
}

// Export writes the current metrics once
func (e *TextfileExporter) Export() error {
	path, err := util.ExpandPath(e.path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return prometheus.WriteToTextfile(path, e.gatherer)
}

// Run exports metrics every interval until ctx is done, followed by a final export
func (e *TextfileExporter) Run(ctx context.Context) error {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return e.Export()
		case <-ticker.C:
			if err := e.Export(); err != nil {
				ui.Warning("Error writing statistics to %s: %v", e.path, err)
			}
		}
	}
}
