package internal

import (
	"context"
	"github.com/markusressel/argus2display/internal/configuration"
	"github.com/markusressel/argus2display/internal/controller"
	"github.com/markusressel/argus2display/internal/display"
	"github.com/markusressel/argus2display/internal/sensors"
	"github.com/markusressel/argus2display/internal/statistics"
	"github.com/markusressel/argus2display/internal/ui"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"os"
	"os/signal"
	"syscall"
)

// RunDaemon keeps the display updated until SIGINT/SIGTERM is received.
// An error is only returned if the controller could not be started.
func RunDaemon() error {
	config := configuration.CurrentConfig

	source := NewTemperatureSource(config.Argus)
	writer := NewDisplayWriter(config.Display)
	updateController := controller.New(NewControllerConfig(config), source, writer)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var g run.Group
	{
		// === display update controller
		g.Add(func() error {
			return updateController.Run(ctx)
		}, func(err error) {
			cancel()
		})
	}
	if config.Statistics.Enabled {
		// === statistics textfile
		statistics.Register(statistics.NewControllerCollector(updateController))
		statistics.Register(statistics.NewDisplayCollector(writer))
		exporter := statistics.NewTextfileExporter(config.Statistics.Textfile, config.Statistics.Interval, prometheus.DefaultGatherer)

		g.Add(func() error {
			ui.Info("Writing statistics to %s every %s", config.Statistics.Textfile, config.Statistics.Interval)
			return exporter.Run(ctx)
		}, func(err error) {
			cancel()
		})
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			select {
			case <-sig:
				ui.Info("Received stop signal, exiting...")
			case <-ctx.Done():
			}
			return nil
		}, func(err error) {
			signal.Stop(sig)
			cancel()
		})
	}

	return g.Run()
}

func NewTemperatureSource(config configuration.ArgusConfig) *sensors.CpuTemperatureSource {
	opener := sensors.NewArgusTableOpener(config.MappingName, config.MappingSize)
	return sensors.NewCpuTemperatureSource(opener, config.ProcessName)
}

func NewDisplayWriter(config configuration.DisplayConfig) *display.Writer {
	return display.NewWriter(NewDisplayConfig(config), display.OpenHidDevice)
}

func NewDisplayConfig(config configuration.DisplayConfig) display.Config {
	return display.Config{
		VendorID:       uint16(config.VendorId),
		ProductID:      uint16(config.ProductId),
		MinTemperature: config.MinTemperature,
		MaxTemperature: config.MaxTemperature,
	}
}

func NewControllerConfig(config configuration.Configuration) controller.Config {
	return controller.Config{
		SourceRetries:    config.Argus.ConnectRetries,
		SourceRetryDelay: config.Argus.ConnectRetryDelay,
		PollingInterval:  config.Controller.PollingRate,
		MandatoryRefresh: config.Controller.MandatoryRefresh,
	}
}
