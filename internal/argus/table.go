package argus

import (
	"encoding/binary"
	"math"
	"unicode/utf16"
)

// Version is the Argus Monitor application version published in the table header
type Version struct {
	Major  uint8
	MinorA uint8
	MinorB uint8
	Extra  uint8
	Build  uint32
}

// CategoryRange locates all records of one category in the sensor array
type CategoryRange struct {
	Offset int
	Count  int
}

// Contains reports whether the record at the given array position belongs to this range
func (r CategoryRange) Contains(index int) bool {
	return index >= r.Offset && index < r.Offset+r.Count
}

type SensorRecord struct {
	// Index is the absolute position of the record in the sensor array
	Index       int
	Category    Category
	Label       string
	Unit        string
	Value       float64
	DataIndex   uint32
	SensorIndex uint32
}

// Table is a read-only typed view onto the sensor table published by Argus Monitor.
//
// The memory is owned and concurrently updated by the monitor process. No
// synchronization is attempted; every accessor checks the signature before
// and after reading, so a table that goes stale mid-read is reported as ErrStaleData.
type Table struct {
	region Region
	data   []byte
}

// OpenTable maps the named shared memory region
func OpenTable(name string, size int) (*Table, error) {
	return OpenTableWith(OpenRegion, name, size)
}

// OpenTableWith uses the given opener to acquire the region
func OpenTableWith(opener RegionOpener, name string, size int) (*Table, error) {
	region, err := opener(name, size)
	if err != nil {
		return nil, err
	}
	return &Table{
		region: region,
		data:   region.Bytes(),
	}, nil
}

// NewTable creates a view onto an existing buffer
func NewTable(data []byte) *Table {
	return &Table{data: data}
}

// IsActive reports whether the table carries the expected signature.
// Nothing else in the table may be trusted if this returns false.
func (t *Table) IsActive() bool {
	signature, err := t.uint32At(OffsetSignature)
	return err == nil && signature == Signature
}

func (t *Table) Version() (Version, error) {
	if err := t.checkActive(); err != nil {
		return Version{}, err
	}
	header, err := t.field(OffsetMajor, 4)
	if err != nil {
		return Version{}, err
	}
	build, err := t.uint32At(OffsetBuild)
	if err != nil {
		return Version{}, err
	}
	version := Version{
		Major:  header[0],
		MinorA: header[1],
		MinorB: header[2],
		Extra:  header[3],
		Build:  build,
	}
	return version, t.checkActive()
}

// InterfaceVersion returns the version of the data interface layout
func (t *Table) InterfaceVersion() (uint32, error) {
	return t.activeUint32At(OffsetVersion)
}

// CycleCounter is incremented by the monitor on every update of the table
func (t *Table) CycleCounter() (uint32, error) {
	return t.activeUint32At(OffsetCycleCounter)
}

func (t *Table) TotalSensorCount() (int, error) {
	total, err := t.activeUint32At(OffsetTotalSensorCount)
	return int(total), err
}

// CategoryRange returns the position of the given category in the sensor array
func (t *Table) CategoryRange(category Category) (CategoryRange, error) {
	if !category.IsKnown() {
		return CategoryRange{}, &IndexError{Kind: "category", Index: int(category), Limit: CategoryCount}
	}
	if err := t.checkActive(); err != nil {
		return CategoryRange{}, err
	}
	offset, err := t.uint32At(OffsetSensorOffsets + 4*int(category))
	if err != nil {
		return CategoryRange{}, err
	}
	count, err := t.uint32At(OffsetSensorCounts + 4*int(category))
	if err != nil {
		return CategoryRange{}, err
	}
	result := CategoryRange{
		Offset: int(offset),
		Count:  int(count),
	}
	return result, t.checkActive()
}

// Record reads the sensor record at the given array position
func (t *Table) Record(index int) (SensorRecord, error) {
	if err := checkRecordIndex(index); err != nil {
		return SensorRecord{}, err
	}
	if err := t.checkActive(); err != nil {
		return SensorRecord{}, err
	}
	raw, err := t.field(RecordOffset(index), RecordSize)
	if err != nil {
		return SensorRecord{}, err
	}
	record := SensorRecord{
		Index:       index,
		Category:    Category(binary.LittleEndian.Uint32(raw[RecordOffsetCategory:])),
		Label:       decodeText(raw[RecordOffsetLabel:RecordOffsetUnit]),
		Unit:        decodeText(raw[RecordOffsetUnit:RecordOffsetValue]),
		Value:       math.Float64frombits(binary.LittleEndian.Uint64(raw[RecordOffsetValue:])),
		DataIndex:   binary.LittleEndian.Uint32(raw[RecordOffsetDataIndex:]),
		SensorIndex: binary.LittleEndian.Uint32(raw[RecordOffsetSensorIndex:]),
	}
	return record, t.checkActive()
}

// Value reads only the value of the sensor record at the given array position
func (t *Table) Value(index int) (float64, error) {
	if err := checkRecordIndex(index); err != nil {
		return 0, err
	}
	if err := t.checkActive(); err != nil {
		return 0, err
	}
	raw, err := t.field(RecordOffset(index)+RecordOffsetValue, 8)
	if err != nil {
		return 0, err
	}
	value := math.Float64frombits(binary.LittleEndian.Uint64(raw))
	return value, t.checkActive()
}

// Records reads all TotalSensorCount records
func (t *Table) Records() ([]SensorRecord, error) {
	total, err := t.TotalSensorCount()
	if err != nil {
		return nil, err
	}
	if total > MaxSensorCount {
		return nil, &IndexError{Kind: "total sensor count", Index: total, Limit: MaxSensorCount + 1}
	}

	result := make([]SensorRecord, 0, total)
	for i := 0; i < total; i++ {
		record, err := t.Record(i)
		if err != nil {
			return nil, err
		}
		result = append(result, record)
	}
	return result, nil
}

// RecordsOf reads all records of the given category
func (t *Table) RecordsOf(category Category) ([]SensorRecord, error) {
	r, err := t.CategoryRange(category)
	if err != nil {
		return nil, err
	}

	result := make([]SensorRecord, 0, r.Count)
	for i := r.Offset; i < r.Offset+r.Count; i++ {
		record, err := t.Record(i)
		if err != nil {
			return nil, err
		}
		result = append(result, record)
	}
	return result, nil
}

// Verify checks that every record with a known category lies within the
// range the category table assigns to it
func (t *Table) Verify() error {
	records, err := t.Records()
	if err != nil {
		return err
	}
	for _, record := range records {
		if !record.Category.IsKnown() {
			continue
		}
		r, err := t.CategoryRange(record.Category)
		if err != nil {
			return err
		}
		if !r.Contains(record.Index) {
			return &IndexError{Kind: record.Category.String() + " record", Index: record.Index, Limit: r.Offset + r.Count}
		}
	}
	return nil
}

// Close releases the mapping. It is safe to call Close multiple times.
func (t *Table) Close() error {
	t.data = nil
	if t.region == nil {
		return nil
	}
	err := t.region.Close()
	t.region = nil
	return err
}

func (t *Table) checkActive() error {
	if t.data == nil {
		return ErrClosed
	}
	if !t.IsActive() {
		return ErrStaleData
	}
	return nil
}

func (t *Table) activeUint32At(offset int) (uint32, error) {
	if err := t.checkActive(); err != nil {
		return 0, err
	}
	value, err := t.uint32At(offset)
	if err != nil {
		return 0, err
	}
	return value, t.checkActive()
}

func (t *Table) uint32At(offset int) (uint32, error) {
	raw, err := t.field(offset, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(raw), nil
}

func (t *Table) field(offset int, length int) ([]byte, error) {
	if offset < 0 || offset+length > len(t.data) {
		return nil, &IndexError{Kind: "byte", Index: offset + length - 1, Limit: len(t.data)}
	}
	return t.data[offset : offset+length], nil
}

func checkRecordIndex(index int) error {
	if index < 0 || index >= MaxSensorCount {
		return &IndexError{Kind: "sensor", Index: index, Limit: MaxSensorCount}
	}
	return nil
}

// decodeText decodes a NUL terminated UTF-16LE string
func decodeText(raw []byte) string {
	units := make([]uint16, 0, len(raw)/2)
	for i := 0; i+1 < len(raw); i += 2 {
		unit := binary.LittleEndian.Uint16(raw[i:])
		if unit == 0 {
			break
		}
		units = append(units, unit)
	}
	return string(utf16.Decode(units))
}
