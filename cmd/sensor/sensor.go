package sensor

import (
	"fmt"
	"github.com/markusressel/argus2display/cmd/global"
	"github.com/markusressel/argus2display/internal"
	"github.com/markusressel/argus2display/internal/argus"
	"github.com/markusressel/argus2display/internal/configuration"
	"github.com/markusressel/argus2display/internal/sensors"
	"github.com/markusressel/argus2display/internal/ui"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:              "sensor",
	Short:            "Sensor related commands",
	Long:             ``,
	TraverseChildren: true,
	Args:             cobra.NoArgs,
}

// openTable opens the Argus Monitor table and fails if it is not active
func openTable() (*argus.Table, error) {
	if err := global.LoadConfig(); err != nil {
		return nil, err
	}
	config := configuration.CurrentConfig.Argus

	table, err := argus.OpenTable(config.MappingName, config.MappingSize)
	if err != nil {
		return nil, err
	}
	if !table.IsActive() {
		_ = table.Close()
		return nil, fmt.Errorf("argus monitor not active: %w", argus.ErrStaleData)
	}
	if err := table.Verify(); err != nil {
		ui.Warning("Sensor table is inconsistent: %v", err)
	}
	return table, nil
}

// connectSource connects to the CPU temperature records of the Argus Monitor table
func connectSource() (*sensors.CpuTemperatureSource, error) {
	if err := global.LoadConfig(); err != nil {
		return nil, err
	}
	source := internal.NewTemperatureSource(configuration.CurrentConfig.Argus)
	if err := source.Connect(); err != nil {
		return nil, err
	}
	return source, nil
}
