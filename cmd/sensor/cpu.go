package sensor

import (
	"fmt"
	"github.com/markusressel/argus2display/cmd/global"
	"github.com/markusressel/argus2display/internal/ui"
	"github.com/markusressel/argus2display/internal/util"
	"github.com/spf13/cobra"
)

var listAllCpu bool

var cpuCmd = &cobra.Command{
	Use:   "cpu",
	Short: "Print the CPU temperature used for the display",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := connectSource()
		if err != nil {
			return err
		}
		defer source.Close()

		if listAllCpu {
			readings, err := source.ListAllCpuTemperatures()
			if err != nil {
				return err
			}
			var rows [][]string
			var values []float64
			for _, reading := range readings {
				rows = append(rows, []string{reading.Label, fmt.Sprintf("%.2f", reading.Value), reading.Unit})
				values = append(values, reading.Value)
			}
			tableString, err := global.RenderTable([]string{"Label", "Value", "Unit"}, rows)
			if err != nil {
				return err
			}
			ui.Printfln("%s", tableString)
			ui.Info("Average: %.2f", util.Avg(values))
			return nil
		}

		value, ok := source.CurrentRawTemperature()
		if !ok {
			return fmt.Errorf("no CPU temperature sensor available")
		}
		fmt.Printf("%.2f\n", value)
		return nil
	},
}

func init() {
	cpuCmd.Flags().BoolVarP(&listAllCpu, "all", "a", false, "List all CPU temperature sensors")
	Command.AddCommand(cpuCmd)
}
