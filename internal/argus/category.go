package argus

import "fmt"

// Category is the sensor type code of a record
type Category uint32

const (
	CategoryInvalid Category = iota
	CategoryTemperature
	CategorySyntheticTemperature
	CategoryFanSpeedRpm
	CategoryFanControlValue
	CategoryNetworkSpeed
	CategoryCpuTemperature
	CategoryCpuTemperatureAdditional
	CategoryCpuMultiplier
	CategoryCpuFrequencyFsb
	CategoryGpuTemperature
	CategoryGpuName
	CategoryGpuLoad
	CategoryGpuCoreClock
	CategoryGpuMemoryClock
	CategoryGpuShaderClock
	CategoryGpuFanSpeedPercent
	CategoryGpuFanSpeedRpm
	CategoryGpuMemoryUsedPercent
	CategoryGpuMemoryUsedMb
	CategoryGpuPower
	CategoryDiskTemperature
	CategoryDiskTransferRate
	CategoryCpuLoad
	CategoryRamUsage
	CategoryBattery
)

// CategoryCount is the number of entries in the offset and count tables
const CategoryCount = 26

var categoryNames = [CategoryCount]string{
	"INVALID",
	"TEMPERATURE",
	"SYNTHETIC_TEMPERATURE",
	"FAN_SPEED_RPM",
	"FAN_CONTROL_VALUE",
	"NETWORK_SPEED",
	"CPU_TEMPERATURE",
	"CPU_TEMPERATURE_ADDITIONAL",
	"CPU_MULTIPLIER",
	"CPU_FREQUENCY_FSB",
	"GPU_TEMPERATURE",
	"GPU_NAME",
	"GPU_LOAD",
	"GPU_CORECLK",
	"GPU_MEMORYCLK",
	"GPU_SHARERCLK",
	"GPU_FAN_SPEED_PERCENT",
	"GPU_FAN_SPEED_RPM",
	"GPU_MEMORY_USED_PERCENT",
	"GPU_MEMORY_USED_MB",
	"GPU_POWER",
	"DISK_TEMPERATURE",
	"DISK_TRANSFER_RATE",
	"CPU_LOAD",
	"RAM_USAGE",
	"BATTERY",
}

// IsKnown reports whether the code has an entry in the category tables
func (c Category) IsKnown() bool {
	return c < CategoryCount
}

func (c Category) String() string {
	if !c.IsKnown() {
		return fmt.Sprintf("UNKNOWN_%d", uint32(c))
	}
	return categoryNames[c]
}
