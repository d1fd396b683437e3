package configuration

import (
	"github.com/mitchellh/mapstructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"reflect"
	"testing"
)

func TestParseUsbId(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected UsbId
		wantErr  bool
	}{
		{name: "hex", input: "0x5131", expected: 0x5131},
		{name: "upper case hex", input: "0X2007", expected: 0x2007},
		{name: "decimal", input: "20785", expected: 0x5131},
		{name: "whitespace", input: " 0x1 ", expected: 0x1},
		{name: "too large", input: "0x10000", wantErr: true},
		{name: "garbage", input: "display", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseUsbId(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestUsbId_String(t *testing.T) {
	assert.Equal(t, "0x5131", UsbId(0x5131).String())
	assert.Equal(t, "0x00AB", UsbId(0xAB).String())
}

func TestUsbIdHookFunc(t *testing.T) {
	type TestConfig struct {
		VendorId UsbId `mapstructure:"vendorId"`
	}

	tests := []struct {
		name     string
		input    map[string]interface{}
		expected UsbId
		wantErr  bool
	}{
		{name: "hex string", input: map[string]interface{}{"vendorId": "0x5131"}, expected: 0x5131},
		{name: "int", input: map[string]interface{}{"vendorId": 20785}, expected: 0x5131},
		{name: "float", input: map[string]interface{}{"vendorId": 8199.0}, expected: 0x2007},
		{name: "uint16", input: map[string]interface{}{"vendorId": uint16(0x2007)}, expected: 0x2007},
		{name: "negative", input: map[string]interface{}{"vendorId": -1}, wantErr: true},
		{name: "out of range", input: map[string]interface{}{"vendorId": 70000}, wantErr: true},
		{name: "invalid string", input: map[string]interface{}{"vendorId": "abc"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg TestConfig
			decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
				DecodeHook: UsbIdHookFunc(),
				Result:     &cfg,
			})
			require.NoError(t, err)

			err = decoder.Decode(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg.VendorId)
		})
	}
}

func TestUsbIdHookSkipsUnrelatedTypes(t *testing.T) {
	hook := UsbIdHookFunc()
	data := "0x5131"

	res, err := hook(reflect.TypeOf(data), reflect.TypeOf(""), data)

	assert.NoError(t, err)
	assert.Equal(t, data, res)
}
