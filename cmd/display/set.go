package display

import (
	"fmt"
	"github.com/markusressel/argus2display/cmd/global"
	"github.com/markusressel/argus2display/internal"
	"github.com/markusressel/argus2display/internal/configuration"
	"github.com/markusressel/argus2display/internal/ui"
	"github.com/spf13/cobra"
	"strconv"
)

var setCmd = &cobra.Command{
	Use:   "set <temperature>",
	Short: "Show the given temperature on the display",
	Long:  ``,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid temperature '%s': %w", args[0], err)
		}

		if err := global.LoadConfig(); err != nil {
			return err
		}

		writer := internal.NewDisplayWriter(configuration.CurrentConfig.Display)
		if err := writer.Connect(); err != nil {
			return err
		}
		defer writer.Close()

		if err := writer.WriteTemperature(value, true); err != nil {
			return err
		}

		ui.Success("Display set to %d°C", writer.ToDisplayValue(value))
		return nil
	},
}

func init() {
	Command.AddCommand(setCmd)
}
