package configuration

import (
	"fmt"
	"github.com/mitchellh/mapstructure"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// UsbId is a USB vendor or product id. In the config file it can be
// given as a number or as a hex string like "0x5131".
type UsbId uint16

func (id UsbId) String() string {
	return fmt.Sprintf("0x%04X", uint16(id))
}

// ParseUsbId parses decimal or "0x" prefixed hex ids
func ParseUsbId(value string) (UsbId, error) {
	value = strings.TrimSpace(value)
	parsed, err := strconv.ParseUint(value, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid USB id '%s'", value)
	}
	return UsbId(parsed), nil
}

// UsbIdHookFunc returns a mapstructure decode hook function for UsbId.
func UsbIdHookFunc() mapstructure.DecodeHookFuncType {
	usbIdType := reflect.TypeOf(UsbId(0))

	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{}) (interface{}, error) {

		if t != usbIdType {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			return ParseUsbId(v)
		case int:
			return usbIdFromInt(int64(v))
		case int64:
			return usbIdFromInt(v)
		case float64:
			if v != math.Trunc(v) {
				return nil, fmt.Errorf("invalid USB id %v", v)
			}
			return usbIdFromInt(int64(v))
		default:
			return data, nil
		}
	}
}

func usbIdFromInt(value int64) (UsbId, error) {
	if value < 0 || value > math.MaxUint16 {
		return 0, fmt.Errorf("USB id %d out of range", value)
	}
	return UsbId(value), nil
}
