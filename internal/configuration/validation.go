package configuration

import (
	"fmt"
	"github.com/markusressel/argus2display/internal/argus"
	"golang.org/x/exp/slices"
	"math"
	"strings"
)

func Validate() error {
	return validateConfig(&CurrentConfig)
}

func validateConfig(config *Configuration) error {
	validators := []func(config *Configuration) error{
		validateArgus,
		validateDisplay,
		validateController,
		validateStatistics,
		validateExport,
	}
	for _, validator := range validators {
		if err := validator(config); err != nil {
			return err
		}
	}
	return nil
}

func validateArgus(config *Configuration) error {
	c := config.Argus
	if strings.TrimSpace(c.MappingName) == "" {
		return fmt.Errorf("argus: mappingName must not be empty")
	}
	if c.MappingSize < argus.TableSize {
		return fmt.Errorf("argus: mappingSize must be >= %d, got %d", argus.TableSize, c.MappingSize)
	}
	if c.ConnectRetries < 1 {
		return fmt.Errorf("argus: connectRetries must be >= 1, got %d", c.ConnectRetries)
	}
	if c.ConnectRetryDelay < 0 {
		return fmt.Errorf("argus: connectRetryDelay must not be negative")
	}
	return nil
}

func validateDisplay(config *Configuration) error {
	c := config.Display
	if c.VendorId == 0 || c.ProductId == 0 {
		return fmt.Errorf("display: vendorId and productId must be set")
	}
	if c.MinTemperature < 0 || c.MaxTemperature > math.MaxUint8 {
		return fmt.Errorf("display: temperature range must be within 0..%d", math.MaxUint8)
	}
	if c.MinTemperature >= c.MaxTemperature {
		return fmt.Errorf("display: minTemperature (%d) must be lower than maxTemperature (%d)", c.MinTemperature, c.MaxTemperature)
	}
	return nil
}

func validateController(config *Configuration) error {
	c := config.Controller
	if c.PollingRate <= 0 {
		return fmt.Errorf("controller: pollingRate must be positive")
	}
	if c.MandatoryRefresh <= 0 {
		return fmt.Errorf("controller: mandatoryRefresh must be positive")
	}
	return nil
}

func validateStatistics(config *Configuration) error {
	c := config.Statistics
	if !c.Enabled {
		return nil
	}
	if strings.TrimSpace(c.Textfile) == "" {
		return fmt.Errorf("statistics: textfile must be set when statistics are enabled")
	}
	if c.Interval <= 0 {
		return fmt.Errorf("statistics: interval must be positive")
	}
	return nil
}

func validateExport(config *Configuration) error {
	c := config.Export
	if !slices.Contains(ExportFormats, strings.ToLower(c.Format)) {
		return fmt.Errorf("export: unsupported format '%s', use one of: %s", c.Format, strings.Join(ExportFormats, " | "))
	}
	return nil
}
