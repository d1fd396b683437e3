package display

import (
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"math"
	"testing"
	"time"
)

type fakeDevice struct {
	packets    [][]byte
	writeErr   error
	shortWrite bool
	closeCount int
}

func (d *fakeDevice) Write(data []byte) (int, error) {
	if d.writeErr != nil {
		return 0, d.writeErr
	}
	d.packets = append(d.packets, append([]byte(nil), data...))
	if d.shortWrite {
		return len(data) - 1, nil
	}
	return len(data), nil
}

func (d *fakeDevice) Close() error {
	d.closeCount++
	return nil
}

func openerFor(devices ...*fakeDevice) (Opener, *int) {
	calls := 0
	return func(vendorID uint16, productID uint16) (Device, error) {
		device := devices[calls]
		calls++
		return device, nil
	}, &calls
}

func connectedWriter(t *testing.T) (*Writer, *fakeDevice) {
	device := &fakeDevice{}
	opener, _ := openerFor(device)
	w := NewWriter(DefaultConfig(), opener)
	require.NoError(t, w.Connect())
	return w, device
}

func TestNewTemperaturePacket(t *testing.T) {
	// WHEN
	packet := NewTemperaturePacket(48)

	// THEN
	assert.Len(t, packet, 65)
	assert.Equal(t, byte(0x00), packet[0])
	assert.Equal(t, byte(0x10), packet[1])
	assert.Equal(t, byte(48), packet[2])
	assert.Equal(t, uint8(48), packet.Temperature())
	for i := 3; i < PacketSize; i++ {
		assert.Zero(t, packet[i], "byte %d", i)
	}
}

func TestWriter_ToDisplayValue(t *testing.T) {
	w := NewWriter(DefaultConfig(), nil)

	tests := []struct {
		raw      float64
		expected int
	}{
		{48.3, 48},
		{48.5, 48},
		{49.5, 50},
		{48.7, 49},
		{-5, 0},
		{0, 0},
		{99.4, 99},
		{150, 99},
		{1e19, 99},
		{1e300, 99},
		{-1e19, 0},
		{math.Inf(1), 99},
		{math.Inf(-1), 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, w.ToDisplayValue(tt.raw), "raw %v", tt.raw)
	}
}

func TestWriter_Connect_Failure(t *testing.T) {
	// GIVEN
	cause := errors.New("no such device")
	w := NewWriter(DefaultConfig(), func(vendorID uint16, productID uint16) (Device, error) {
		return nil, cause
	})

	// WHEN
	err := w.Connect()

	// THEN
	var connectionError *ConnectionError
	require.ErrorAs(t, err, &connectionError)
	assert.Equal(t, DefaultVendorID, connectionError.VendorID)
	assert.Equal(t, DefaultProductID, connectionError.ProductID)
	assert.ErrorIs(t, err, cause)
	assert.False(t, w.IsConnected())
}

func TestWriter_Connect_PassesIds(t *testing.T) {
	// GIVEN
	var gotVendor, gotProduct uint16
	config := Config{VendorID: 0x1234, ProductID: 0xABCD, MaxTemperature: 99}
	w := NewWriter(config, func(vendorID uint16, productID uint16) (Device, error) {
		gotVendor, gotProduct = vendorID, productID
		return &fakeDevice{}, nil
	})

	// WHEN
	err := w.Connect()

	// THEN
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), gotVendor)
	assert.Equal(t, uint16(0xABCD), gotProduct)
}

func TestWriter_FirstWriteIsSent(t *testing.T) {
	// GIVEN
	w, device := connectedWriter(t)

	// WHEN
	err := w.WriteTemperature(48.3, false)

	// THEN
	require.NoError(t, err)
	require.Len(t, device.packets, 1)
	assert.Equal(t, byte(48), device.packets[0][2])
	value, ok := w.LastValue()
	assert.True(t, ok)
	assert.Equal(t, 48, value)
}

func TestWriter_Debounce(t *testing.T) {
	// GIVEN
	w, device := connectedWriter(t)

	// WHEN
	require.NoError(t, w.WriteTemperature(48.3, false))
	require.NoError(t, w.WriteTemperature(48.4, false))
	require.NoError(t, w.WriteTemperature(47.6, false))
	require.NoError(t, w.WriteTemperature(48.7, false))

	// THEN
	require.Len(t, device.packets, 2)
	assert.Equal(t, byte(48), device.packets[0][2])
	assert.Equal(t, byte(49), device.packets[1][2])

	counts := w.OutcomeCounts()
	assert.Equal(t, uint64(2), counts[OutcomeChanged])
	assert.Equal(t, uint64(2), counts[OutcomeSkipped])
}

func TestWriter_ClampedValuesAreDebounced(t *testing.T) {
	// GIVEN
	w, device := connectedWriter(t)

	// WHEN
	require.NoError(t, w.WriteTemperature(120, false))
	require.NoError(t, w.WriteTemperature(130, false))

	// THEN
	require.Len(t, device.packets, 1)
	assert.Equal(t, byte(99), device.packets[0][2])
}

func TestWriter_Force(t *testing.T) {
	// GIVEN
	w, device := connectedWriter(t)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	w.SetClock(func() time.Time { return now })
	require.NoError(t, w.WriteTemperature(48.3, false))

	// WHEN
	now = now.Add(15 * time.Second)
	err := w.WriteTemperature(48.3, true)

	// THEN
	require.NoError(t, err)
	assert.Len(t, device.packets, 2)
	assert.Equal(t, now, w.LastWriteTime())
	counts := w.OutcomeCounts()
	assert.Equal(t, uint64(1), counts[OutcomeChanged])
	assert.Equal(t, uint64(1), counts[OutcomeForced])
}

func TestWriter_WriteError(t *testing.T) {
	// GIVEN
	w, device := connectedWriter(t)
	require.NoError(t, w.WriteTemperature(40, false))
	lastWrite := w.LastWriteTime()
	device.writeErr = errors.New("device disconnected")

	// WHEN
	err := w.WriteTemperature(50, false)

	// THEN
	var writeError *WriteError
	require.ErrorAs(t, err, &writeError)
	assert.ErrorIs(t, err, device.writeErr)
	value, _ := w.LastValue()
	assert.Equal(t, 40, value)
	assert.Equal(t, lastWrite, w.LastWriteTime())
	assert.Equal(t, uint64(1), w.OutcomeCounts()[OutcomeFailed])
}

func TestWriter_ShortWrite(t *testing.T) {
	// GIVEN
	w, device := connectedWriter(t)
	device.shortWrite = true

	// WHEN
	err := w.WriteTemperature(40, false)

	// THEN
	assert.ErrorIs(t, err, io.ErrShortWrite)
	_, ok := w.LastValue()
	assert.False(t, ok)
}

func TestWriter_NaNIsNotWritten(t *testing.T) {
	// GIVEN
	w, device := connectedWriter(t)
	require.NoError(t, w.WriteTemperature(40, false))

	// WHEN
	err := w.WriteTemperature(math.NaN(), true)

	// THEN
	assert.ErrorIs(t, err, ErrInvalidTemperature)
	assert.Len(t, device.packets, 1)
	value, _ := w.LastValue()
	assert.Equal(t, 40, value)
	assert.Equal(t, uint64(1), w.OutcomeCounts()[OutcomeSkipped])
}

func TestWriter_HugeValueClampsToMax(t *testing.T) {
	// GIVEN
	w, device := connectedWriter(t)

	// WHEN
	err := w.WriteTemperature(math.Inf(1), false)

	// THEN
	require.NoError(t, err)
	require.Len(t, device.packets, 1)
	assert.Equal(t, byte(99), device.packets[0][2])
}

func TestWriter_NotConnected(t *testing.T) {
	// GIVEN
	w := NewWriter(DefaultConfig(), nil)

	// WHEN
	err := w.WriteTemperature(40, false)

	// THEN
	var writeError *WriteError
	assert.ErrorAs(t, err, &writeError)
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestWriter_ReconnectResetsState(t *testing.T) {
	// GIVEN
	first, second := &fakeDevice{}, &fakeDevice{}
	opener, calls := openerFor(first, second)
	w := NewWriter(DefaultConfig(), opener)
	require.NoError(t, w.Connect())
	require.NoError(t, w.WriteTemperature(48, false))

	// WHEN
	require.NoError(t, w.Connect())
	err := w.WriteTemperature(48, false)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, 2, *calls)
	assert.Equal(t, 1, first.closeCount)
	assert.Len(t, second.packets, 1)
}

func TestWriter_CloseIdempotent(t *testing.T) {
	// GIVEN
	w, device := connectedWriter(t)

	// WHEN
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())

	// THEN
	assert.Equal(t, 1, device.closeCount)
	assert.False(t, w.IsConnected())
}
