package configuration

import "time"

type ArgusConfig struct {
	// MappingName is the name of the shared memory region published by Argus Monitor
	MappingName string `json:"mappingName"`
	MappingSize int    `json:"mappingSize"`
	// ProcessName is used to tell apart a stopped Argus Monitor from a disabled data interface
	ProcessName       string        `json:"processName"`
	ConnectRetries    int           `json:"connectRetries"`
	ConnectRetryDelay time.Duration `json:"connectRetryDelay"`
}

type DisplayConfig struct {
	VendorId       UsbId `json:"vendorId"`
	ProductId      UsbId `json:"productId"`
	MinTemperature int   `json:"minTemperature"`
	MaxTemperature int   `json:"maxTemperature"`
}

type ControllerConfig struct {
	PollingRate      time.Duration `json:"pollingRate"`
	MandatoryRefresh time.Duration `json:"mandatoryRefresh"`
}

type StatisticsConfig struct {
	Enabled bool `json:"enabled"`
	// Textfile is the path of the file metrics are written to, in the prometheus text format
	Textfile string        `json:"textfile"`
	Interval time.Duration `json:"interval"`
}

const (
	ExportFormatJson = "json"
	ExportFormatYaml = "yaml"
)

var ExportFormats = []string{ExportFormatJson, ExportFormatYaml}

type ExportConfig struct {
	Path   string `json:"path"`
	Format string `json:"format"`
}
