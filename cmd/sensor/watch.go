package sensor

import (
	"context"
	"fmt"
	"github.com/guptarohit/asciigraph"
	"github.com/markusressel/argus2display/internal"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"os"
	"os/signal"
	"syscall"
	"time"
)

var (
	watchInterval time.Duration
	watchWindow   int
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Continuously print the CPU temperature with min/avg/max and a graph",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateWatchFlags(watchInterval, watchWindow); err != nil {
			return err
		}

		source, err := connectSource()
		if err != nil {
			return err
		}
		defer source.Close()

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		area, err := pterm.DefaultArea.Start()
		if err != nil {
			return err
		}
		defer func() {
			_ = area.Stop()
		}()

		monitor := internal.NewSensorMonitor(source, watchInterval, watchWindow)
		return monitor.Run(ctx, func(sample internal.Sample) {
			area.Update(renderSample(sample))
		})
	},
}

func validateWatchFlags(interval time.Duration, window int) error {
	if interval <= 0 {
		return fmt.Errorf("invalid interval %s, must be positive", interval)
	}
	if window < 1 {
		return fmt.Errorf("invalid window %d, must be >= 1", window)
	}
	return nil
}

func renderSample(sample internal.Sample) string {
	summary := fmt.Sprintf("%s  CPU: %.2f°C  min: %.2f  avg: %.2f  max: %.2f",
		sample.Time.Format("15:04:05"), sample.Value, sample.Min, sample.Avg, sample.Max)
	if len(sample.History) < 2 {
		return summary
	}
	graph := asciigraph.Plot(sample.History, asciigraph.Height(10), asciigraph.Caption("°C"))
	return summary + "\n\n" + graph
}

func init() {
	watchCmd.Flags().DurationVarP(&watchInterval, "interval", "i", 1*time.Second, "Polling interval")
	watchCmd.Flags().IntVarP(&watchWindow, "window", "w", 60, "Number of samples used for min/avg/max and the graph")
	Command.AddCommand(watchCmd)
}
