package testingutils

import (
	"encoding/binary"
	"github.com/markusressel/argus2display/internal/argus"
	"math"
	"unicode/utf16"
)

// TableBuilder creates synthetic Argus Monitor tables
type TableBuilder struct {
	data  []byte
	total int
}

// NewTableBuilder returns a builder for an active table
func NewTableBuilder() *TableBuilder {
	b := &TableBuilder{
		data: make([]byte, argus.TableSize),
	}
	return b.Signature(argus.Signature)
}

func (b *TableBuilder) Signature(signature uint32) *TableBuilder {
	binary.LittleEndian.PutUint32(b.data[argus.OffsetSignature:], signature)
	return b
}

func (b *TableBuilder) Version(version argus.Version) *TableBuilder {
	b.data[argus.OffsetMajor] = version.Major
	b.data[argus.OffsetMinorA] = version.MinorA
	b.data[argus.OffsetMinorB] = version.MinorB
	b.data[argus.OffsetExtra] = version.Extra
	binary.LittleEndian.PutUint32(b.data[argus.OffsetBuild:], version.Build)
	return b
}

func (b *TableBuilder) CycleCounter(counter uint32) *TableBuilder {
	binary.LittleEndian.PutUint32(b.data[argus.OffsetCycleCounter:], counter)
	return b
}

func (b *TableBuilder) Category(category argus.Category, offset int, count int) *TableBuilder {
	binary.LittleEndian.PutUint32(b.data[argus.OffsetSensorOffsets+4*int(category):], uint32(offset))
	binary.LittleEndian.PutUint32(b.data[argus.OffsetSensorCounts+4*int(category):], uint32(count))
	return b
}

// Record writes the record at record.Index and raises the total sensor count if needed
func (b *TableBuilder) Record(record argus.SensorRecord) *TableBuilder {
	raw := b.data[argus.RecordOffset(record.Index):]
	binary.LittleEndian.PutUint32(raw[argus.RecordOffsetCategory:], uint32(record.Category))
	putText(raw[argus.RecordOffsetLabel:argus.RecordOffsetUnit], record.Label)
	putText(raw[argus.RecordOffsetUnit:argus.RecordOffsetValue], record.Unit)
	binary.LittleEndian.PutUint64(raw[argus.RecordOffsetValue:], math.Float64bits(record.Value))
	binary.LittleEndian.PutUint32(raw[argus.RecordOffsetDataIndex:], record.DataIndex)
	binary.LittleEndian.PutUint32(raw[argus.RecordOffsetSensorIndex:], record.SensorIndex)

	if record.Index+1 > b.total {
		b.TotalSensorCount(record.Index + 1)
	}
	return b
}

// Value overwrites only the value of an existing record
func (b *TableBuilder) Value(index int, value float64) *TableBuilder {
	binary.LittleEndian.PutUint64(b.data[argus.RecordOffset(index)+argus.RecordOffsetValue:], math.Float64bits(value))
	return b
}

func (b *TableBuilder) TotalSensorCount(total int) *TableBuilder {
	b.total = total
	binary.LittleEndian.PutUint32(b.data[argus.OffsetTotalSensorCount:], uint32(total))
	return b
}

// Bytes returns the underlying buffer, later changes to the builder are visible through it
func (b *TableBuilder) Bytes() []byte {
	return b.data
}

// CpuTable creates a table with the given CPU temperature records at the start of the
// sensor array and a GPU temperature record after them
func CpuTable(category argus.Category, values ...float64) *TableBuilder {
	b := NewTableBuilder().
		Version(argus.Version{Major: 7, MinorA: 2, MinorB: 1, Build: 3000})
	for i, value := range values {
		b.Record(argus.SensorRecord{
			Index:       i,
			Category:    category,
			Label:       "CPU " + string(rune('0'+i)),
			Unit:        "°C",
			Value:       value,
			SensorIndex: uint32(i),
		})
	}
	b.Category(category, 0, len(values))
	b.Record(argus.SensorRecord{
		Index:    len(values),
		Category: argus.CategoryGpuTemperature,
		Label:    "GPU",
		Unit:     "°C",
		Value:    50,
	})
	b.Category(argus.CategoryGpuTemperature, len(values), 1)
	return b
}

func putText(raw []byte, text string) {
	for i := range raw {
		raw[i] = 0
	}
	units := utf16.Encode([]rune(text))
	for i, unit := range units {
		if 2*i+1 >= len(raw)-2 {
			// keep the terminating NUL
			break
		}
		binary.LittleEndian.PutUint16(raw[2*i:], unit)
	}
}

// MemoryRegion is an in-memory argus.Region that counts Close calls
type MemoryRegion struct {
	Data       []byte
	CloseCount int
}

func (r *MemoryRegion) Bytes() []byte {
	return r.Data
}

func (r *MemoryRegion) Close() error {
	r.CloseCount++
	return nil
}
