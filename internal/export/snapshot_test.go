package export

import (
	"encoding/json"
	"github.com/markusressel/argus2display/internal/argus"
	"github.com/markusressel/argus2display/internal/testingutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	"os"
	"path/filepath"
	"testing"
	"time"
)

var timestamp = time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)

func TestNewSnapshot(t *testing.T) {
	// GIVEN
	builder := testingutils.CpuTable(argus.CategoryCpuTemperature, 48.3, 51.0)
	builder.Record(argus.SensorRecord{Index: 3, Category: argus.Category(77), Label: "Mystery", Value: 1, DataIndex: 4, SensorIndex: 5})
	table := argus.NewTable(builder.Bytes())

	// WHEN
	snapshot, err := NewSnapshot(table, timestamp)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, timestamp, snapshot.Timestamp)
	assert.Equal(t, ArgusVersion{Major: 7, MinorA: 2, MinorB: 1, Build: 3000}, snapshot.ArgusVersion)
	assert.Equal(t, 4, snapshot.TotalSensors)
	require.Len(t, snapshot.Sensors, 4)
	assert.Equal(t, Sensor{
		SensorType:   "CPU_TEMPERATURE",
		SensorTypeId: 6,
		Label:        "CPU 1",
		Unit:         "°C",
		Value:        51.0,
		SensorIndex:  1,
	}, snapshot.Sensors[1])
	assert.Equal(t, "GPU_TEMPERATURE", snapshot.Sensors[2].SensorType)
	assert.Equal(t, "UNKNOWN_77", snapshot.Sensors[3].SensorType)
	assert.Equal(t, uint32(77), snapshot.Sensors[3].SensorTypeId)
}

func TestNewSnapshot_Inactive(t *testing.T) {
	// GIVEN
	table := argus.NewTable(make([]byte, argus.TableSize))

	// WHEN
	_, err := NewSnapshot(table, timestamp)

	// THEN
	assert.ErrorIs(t, err, argus.ErrStaleData)
}

func TestSnapshot_MarshalJson(t *testing.T) {
	// GIVEN
	snapshot, err := NewSnapshot(argus.NewTable(testingutils.CpuTable(argus.CategoryCpuTemperature, 48.3).Bytes()), timestamp)
	require.NoError(t, err)

	// WHEN
	data, err := snapshot.Marshal(FormatJson)

	// THEN
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "2024-05-01T10:30:00Z", decoded["timestamp"])
	assert.Equal(t, 2.0, decoded["total_sensors"])
	version := decoded["argus_version"].(map[string]interface{})
	assert.Equal(t, 2.0, version["minor_a"])
	sensors := decoded["sensors"].([]interface{})
	first := sensors[0].(map[string]interface{})
	assert.Equal(t, "CPU_TEMPERATURE", first["sensor_type"])
	assert.Equal(t, "CPU 0", first["label"])
	assert.Equal(t, 48.3, first["value"])
	assert.Contains(t, first, "data_index")
	assert.Contains(t, first, "sensor_index")
}

func TestSnapshot_MarshalYaml(t *testing.T) {
	// GIVEN
	snapshot, err := NewSnapshot(argus.NewTable(testingutils.CpuTable(argus.CategoryCpuTemperature, 48.3).Bytes()), timestamp)
	require.NoError(t, err)

	// WHEN
	data, err := snapshot.Marshal("YAML")

	// THEN
	require.NoError(t, err)
	var decoded Snapshot
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, snapshot.Sensors, decoded.Sensors)
	assert.Equal(t, 2, decoded.TotalSensors)
}

func TestSnapshot_MarshalUnknownFormat(t *testing.T) {
	snapshot := &Snapshot{}

	_, err := snapshot.Marshal("xml")

	assert.ErrorContains(t, err, "xml")
}

func TestSnapshot_WriteFile(t *testing.T) {
	// GIVEN
	snapshot, err := NewSnapshot(argus.NewTable(testingutils.CpuTable(argus.CategoryCpuTemperature, 48.3).Bytes()), timestamp)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "out", "argus_sensors.json")

	// WHEN
	err = snapshot.WriteFile(path, FormatJson)

	// THEN
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded Snapshot
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 2, decoded.TotalSensors)
}
