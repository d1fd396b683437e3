package export

import (
	"encoding/json"
	"fmt"
	"github.com/markusressel/argus2display/internal/argus"
	"github.com/markusressel/argus2display/internal/util"
	"gopkg.in/yaml.v3"
	"strings"
	"time"
)

const (
	FormatJson = "json"
	FormatYaml = "yaml"
)

type ArgusVersion struct {
	Major  uint8  `json:"major" yaml:"major"`
	MinorA uint8  `json:"minor_a" yaml:"minor_a"`
	MinorB uint8  `json:"minor_b" yaml:"minor_b"`
	Build  uint32 `json:"build" yaml:"build"`
}

type Sensor struct {
	SensorType   string  `json:"sensor_type" yaml:"sensor_type"`
	SensorTypeId uint32  `json:"sensor_type_id" yaml:"sensor_type_id"`
	Label        string  `json:"label" yaml:"label"`
	Unit         string  `json:"unit" yaml:"unit"`
	Value        float64 `json:"value" yaml:"value"`
	DataIndex    uint32  `json:"data_index" yaml:"data_index"`
	SensorIndex  uint32  `json:"sensor_index" yaml:"sensor_index"`
}

// Snapshot is a dump of all sensors published by Argus Monitor at one point in time
type Snapshot struct {
	Timestamp    time.Time    `json:"timestamp" yaml:"timestamp"`
	ArgusVersion ArgusVersion `json:"argus_version" yaml:"argus_version"`
	TotalSensors int          `json:"total_sensors" yaml:"total_sensors"`
	Sensors      []Sensor     `json:"sensors" yaml:"sensors"`
}

// NewSnapshot reads all records of the given table
func NewSnapshot(table *argus.Table, timestamp time.Time) (*Snapshot, error) {
	if !table.IsActive() {
		return nil, fmt.Errorf("argus monitor not active: %w", argus.ErrStaleData)
	}

	version, err := table.Version()
	if err != nil {
		return nil, err
	}
	records, err := table.Records()
	if err != nil {
		return nil, err
	}

	sensors := make([]Sensor, 0, len(records))
	for _, record := range records {
		sensors = append(sensors, Sensor{
			SensorType:   record.Category.String(),
			SensorTypeId: uint32(record.Category),
			Label:        record.Label,
			Unit:         record.Unit,
			Value:        record.Value,
			DataIndex:    record.DataIndex,
			SensorIndex:  record.SensorIndex,
		})
	}

	return &Snapshot{
		Timestamp: timestamp,
		ArgusVersion: ArgusVersion{
			Major:  version.Major,
			MinorA: version.MinorA,
			MinorB: version.MinorB,
			Build:  version.Build,
		},
		TotalSensors: len(sensors),
		Sensors:      sensors,
	}, nil
}

// Marshal encodes the snapshot in the given format
func (s *Snapshot) Marshal(format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatJson, "":
		return json.MarshalIndent(s, "", "  ")
	case FormatYaml:
		return yaml.Marshal(s)
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// WriteFile atomically writes the snapshot to the given path
func (s *Snapshot) WriteFile(path string, format string) error {
	data, err := s.Marshal(format)
	if err != nil {
		return err
	}
	return util.WriteFileAtomic(path, data)
}
