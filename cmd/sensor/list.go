package sensor

import (
	"fmt"
	"github.com/markusressel/argus2display/cmd/global"
	"github.com/markusressel/argus2display/internal/argus"
	"github.com/markusressel/argus2display/internal/ui"
	"github.com/spf13/cobra"
	"strconv"
	"strings"
)

var categoryFilter string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all sensors published by Argus Monitor",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := openTable()
		if err != nil {
			return err
		}
		defer table.Close()

		version, err := table.Version()
		if err != nil {
			return err
		}
		ui.Info("Argus Monitor %d.%d.%d (build %d)", version.Major, version.MinorA, version.MinorB, version.Build)

		records, err := table.Records()
		if err != nil {
			return err
		}

		var rows [][]string
		for _, record := range records {
			if categoryFilter != "" && !strings.EqualFold(record.Category.String(), categoryFilter) {
				continue
			}
			rows = append(rows, []string{
				strconv.Itoa(record.Index),
				record.Category.String(),
				record.Label,
				fmt.Sprintf("%.2f", record.Value),
				record.Unit,
				strconv.FormatUint(uint64(record.DataIndex), 10),
				strconv.FormatUint(uint64(record.SensorIndex), 10),
			})
		}
		if len(rows) == 0 {
			ui.Warning("No sensors found")
			return nil
		}

		headers := []string{"Index", "Type", "Label", "Value", "Unit", "Data Index", "Sensor Index"}
		tableString, err := global.RenderTable(headers, rows)
		if err != nil {
			return err
		}
		ui.Printfln("%s", tableString)
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&categoryFilter, "type", "t", "", fmt.Sprintf("Only list sensors of the given type, e.g. %s", argus.CategoryCpuTemperature))
	Command.AddCommand(listCmd)
}
