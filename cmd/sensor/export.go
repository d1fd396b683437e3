package sensor

import (
	"github.com/markusressel/argus2display/internal/configuration"
	"github.com/markusressel/argus2display/internal/export"
	"github.com/markusressel/argus2display/internal/ui"
	"github.com/spf13/cobra"
	"time"
)

var (
	exportPath   string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Save all sensors published by Argus Monitor to a file",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ui.Info("Extracting sensors from Argus Monitor...")
		table, err := openTable()
		if err != nil {
			return err
		}
		defer table.Close()

		config := configuration.CurrentConfig.Export
		path := config.Path
		if cmd.Flags().Changed("output") {
			path = exportPath
		}
		format := config.Format
		if cmd.Flags().Changed("format") {
			format = exportFormat
		}

		snapshot, err := export.NewSnapshot(table, time.Now())
		if err != nil {
			return err
		}
		if err := snapshot.WriteFile(path, format); err != nil {
			return err
		}

		ui.Success("Saved %d sensors to %s", snapshot.TotalSensors, path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportPath, "output", "o", "", "Output file (default from config: argus_sensors.json)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: json | yaml")
	Command.AddCommand(exportCmd)
}
