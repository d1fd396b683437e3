package display

const (
	// PacketSize is the size of a HID output report including the report id
	PacketSize = 65

	ReportID           byte = 0x00
	CommandTemperature byte = 0x10

	offsetReportID    = 0
	offsetCommand     = 1
	offsetTemperature = 2
)

// Packet is a single output report sent to the display
type Packet [PacketSize]byte

// NewTemperaturePacket creates a packet that shows the given value on the display
func NewTemperaturePacket(value uint8) Packet {
	var packet Packet
	packet[offsetReportID] = ReportID
	packet[offsetCommand] = CommandTemperature
	packet[offsetTemperature] = value
	return packet
}

// Temperature returns the value carried by the packet
func (p Packet) Temperature() uint8 {
	return p[offsetTemperature]
}
