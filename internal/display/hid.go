package display

import (
	"github.com/sstallion/go-hid"
	"sync"
	"sync/atomic"
)

var (
	hidInit    sync.Once
	hidInitErr error
	hidReady   atomic.Bool
)

// DeviceInfo describes a HID device found on the system
type DeviceInfo struct {
	Path         string
	VendorID     uint16
	ProductID    uint16
	Manufacturer string
	Product      string
	SerialNumber string
	Interface    int
}

func initHid() error {
	hidInit.Do(func() {
		hidInitErr = hid.Init()
		hidReady.Store(hidInitErr == nil)
	})
	return hidInitErr
}

// OpenHidDevice opens the first HID device matching the given ids
func OpenHidDevice(vendorID uint16, productID uint16) (Device, error) {
	if err := initHid(); err != nil {
		return nil, err
	}
	device, err := hid.OpenFirst(vendorID, productID)
	if err != nil {
		return nil, err
	}
	return device, nil
}

// Enumerate lists all HID devices matching the given ids, 0 matches any id
func Enumerate(vendorID uint16, productID uint16) ([]DeviceInfo, error) {
	if err := initHid(); err != nil {
		return nil, err
	}

	var result []DeviceInfo
	err := hid.Enumerate(vendorID, productID, func(info *hid.DeviceInfo) error {
		result = append(result, DeviceInfo{
			Path:         info.Path,
			VendorID:     info.VendorID,
			ProductID:    info.ProductID,
			Manufacturer: info.MfrStr,
			Product:      info.ProductStr,
			SerialNumber: info.SerialNbr,
			Interface:    info.InterfaceNbr,
		})
		return nil
	})
	return result, err
}

// CleanupAtExit releases the resources of the hidapi library.
// It does nothing if the library has not been initialized.
func CleanupAtExit() {
	if hidReady.CompareAndSwap(true, false) {
		_ = hid.Exit()
	}
}
