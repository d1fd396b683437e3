package display

import (
	"fmt"
	"github.com/markusressel/argus2display/cmd/global"
	"github.com/markusressel/argus2display/internal/configuration"
	"github.com/markusressel/argus2display/internal/display"
	"github.com/markusressel/argus2display/internal/ui"
	"github.com/spf13/cobra"
	"strconv"
)

var detectAll bool

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect USB HID displays",
	Long:  `Lists all HID devices matching the configured vendor and product id, or all HID devices with --all`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := global.LoadConfig(); err != nil {
			return err
		}
		config := configuration.CurrentConfig.Display

		var vendorId, productId uint16
		if !detectAll {
			vendorId, productId = uint16(config.VendorId), uint16(config.ProductId)
		}

		devices, err := display.Enumerate(vendorId, productId)
		if err != nil {
			return err
		}
		if len(devices) == 0 {
			ui.Warning("No device found (VID: %s, PID: %s)", config.VendorId, config.ProductId)
			return nil
		}

		var rows [][]string
		for _, device := range devices {
			configured := ""
			if device.VendorID == uint16(config.VendorId) && device.ProductID == uint16(config.ProductId) {
				configured = "*"
			}
			rows = append(rows, []string{
				configured,
				fmt.Sprintf("0x%04X", device.VendorID),
				fmt.Sprintf("0x%04X", device.ProductID),
				device.Manufacturer,
				device.Product,
				device.SerialNumber,
				strconv.Itoa(device.Interface),
				device.Path,
			})
		}

		headers := []string{"", "VID", "PID", "Manufacturer", "Product", "Serial", "Interface", "Path"}
		tableString, err := global.RenderTable(headers, rows)
		if err != nil {
			return err
		}
		ui.Printfln("%s", tableString)
		return nil
	},
}

func init() {
	detectCmd.Flags().BoolVarP(&detectAll, "all", "a", false, "List all HID devices")
	Command.AddCommand(detectCmd)
}
