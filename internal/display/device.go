package display

import (
	"errors"
	"fmt"
)

var (
	ErrNotConnected       = errors.New("display is not connected")
	ErrInvalidTemperature = errors.New("temperature is not a number")
)

// Device is an opened HID device
type Device interface {
	Write(data []byte) (int, error)
	Close() error
}

// Opener opens the first device with the given vendor and product id
type Opener func(vendorID uint16, productID uint16) (Device, error)

// ConnectionError is returned if the device cannot be opened,
// e.g. because it is not present, claimed by another process or lacks permissions
type ConnectionError struct {
	VendorID  uint16
	ProductID uint16
	Err       error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("display %04x:%04x: unable to open device: %v", e.VendorID, e.ProductID, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// WriteError is returned if sending a packet to the device fails.
// The device is most likely gone and needs to be reconnected.
type WriteError struct {
	VendorID  uint16
	ProductID uint16
	Err       error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("display %04x:%04x: write failed: %v", e.VendorID, e.ProductID, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
