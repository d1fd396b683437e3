package configuration

import (
	"errors"
	"github.com/markusressel/argus2display/internal/argus"
	"github.com/markusressel/argus2display/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"strings"
	"time"
)

const (
	configName = "argus2display"
	envPrefix  = "argus2display"

	DefaultVendorId  UsbId = 0x5131
	DefaultProductId UsbId = 0x2007
)

type Configuration struct {
	Argus      ArgusConfig      `json:"argus"`
	Display    DisplayConfig    `json:"display"`
	Controller ControllerConfig `json:"controller"`
	Statistics StatisticsConfig `json:"statistics"`
	Export     ExportConfig     `json:"export"`
}

var CurrentConfig Configuration

var explicitConfigFile bool

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName(configName)

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
		explicitConfigFile = true
	} else {
		viper.AddConfigPath(".")
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Warning("Couldn't detect home directory: %v", err)
		} else {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath("/etc/argus2display/")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("argus.mappingName", argus.DefaultMappingName)
	viper.SetDefault("argus.mappingSize", argus.DefaultMappingSize)
	viper.SetDefault("argus.processName", argus.DefaultProcessName)
	viper.SetDefault("argus.connectRetries", 6)
	viper.SetDefault("argus.connectRetryDelay", 10*time.Second)

	viper.SetDefault("display.vendorId", uint16(DefaultVendorId))
	viper.SetDefault("display.productId", uint16(DefaultProductId))
	viper.SetDefault("display.minTemperature", 0)
	viper.SetDefault("display.maxTemperature", 99)

	viper.SetDefault("controller.pollingRate", 1*time.Second)
	viper.SetDefault("controller.mandatoryRefresh", 15*time.Second)

	viper.SetDefault("statistics.enabled", false)
	viper.SetDefault("statistics.textfile", "argus2display.prom")
	viper.SetDefault("statistics.interval", 15*time.Second)

	viper.SetDefault("export.path", "argus_sensors.json")
	viper.SetDefault("export.format", ExportFormatJson)
}

// ReadConfigFile reads the configuration file, if any, and loads the configuration.
// A missing config file is only an error if it was given explicitly.
func ReadConfigFile() error {
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicitConfigFile || !errors.As(err, &notFound) {
			return err
		}
		ui.Debug("No configuration file found, using defaults")
	} else {
		// this is only populated _after_ ReadInConfig()
		ui.Info("Using configuration file at: %s", viper.ConfigFileUsed())
	}

	return LoadConfig()
}

func LoadConfig() error {
	return viper.Unmarshal(&CurrentConfig, viper.DecodeHook(decodeHook()))
}

func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		UsbIdHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}
