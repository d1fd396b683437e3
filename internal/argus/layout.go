package argus

// Binary layout of the Argus Monitor data interface.
// All structures are packed to 1 byte, integers and floats are little endian,
// text fields are NUL padded UTF-16 (wchar_t) arrays.
const (
	// Signature is the magic value ("ArgM") at the start of an active table
	Signature uint32 = 0x4D677241

	DefaultMappingSize = 1024 * 1024

	MaxSensorCount = 512
	MaxLenLabel    = 64
	MaxLenUnit     = 32

	OffsetSignature        = 0
	OffsetMajor            = 4
	OffsetMinorA           = 5
	OffsetMinorB           = 6
	OffsetExtra            = 7
	OffsetBuild            = 8
	OffsetVersion          = 12
	OffsetCycleCounter     = 16
	OffsetSensorOffsets    = 20
	OffsetSensorCounts     = OffsetSensorOffsets + 4*CategoryCount
	OffsetTotalSensorCount = OffsetSensorCounts + 4*CategoryCount
	OffsetSensorData       = OffsetTotalSensorCount + 4

	RecordOffsetCategory    = 0
	RecordOffsetLabel       = 4
	RecordOffsetUnit        = RecordOffsetLabel + 2*MaxLenLabel
	RecordOffsetValue       = RecordOffsetUnit + 2*MaxLenUnit
	RecordOffsetDataIndex   = RecordOffsetValue + 8
	RecordOffsetSensorIndex = RecordOffsetDataIndex + 4
	RecordSize              = RecordOffsetSensorIndex + 4

	// TableSize is the number of bytes a region must provide to hold a complete table
	TableSize = OffsetSensorData + MaxSensorCount*RecordSize
)

// RecordOffset returns the absolute byte offset of the sensor record at the given index
func RecordOffset(index int) int {
	return OffsetSensorData + index*RecordSize
}
