package global

import (
	"fmt"
	"github.com/markusressel/argus2display/internal/configuration"
)

// LoadConfig reads and validates the configuration
func LoadConfig() error {
	if err := configuration.ReadConfigFile(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	if err := configuration.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
