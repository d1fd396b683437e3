package display

import (
	"fmt"
	"github.com/markusressel/argus2display/internal/ui"
	"github.com/markusressel/argus2display/internal/util"
	cmap "github.com/orcaman/concurrent-map/v2"
	"io"
	"math"
	"time"
)

const (
	DefaultVendorID  uint16 = 0x5131
	DefaultProductID uint16 = 0x2007

	DefaultMinTemperature = 0
	DefaultMaxTemperature = 99
)

// Outcome is the result of a single WriteTemperature call
type Outcome string

const (
	OutcomeChanged Outcome = "changed"
	OutcomeForced  Outcome = "forced"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

var Outcomes = []Outcome{OutcomeChanged, OutcomeForced, OutcomeSkipped, OutcomeFailed}

type Config struct {
	VendorID       uint16
	ProductID      uint16
	MinTemperature int
	MaxTemperature int
}

func DefaultConfig() Config {
	return Config{
		VendorID:       DefaultVendorID,
		ProductID:      DefaultProductID,
		MinTemperature: DefaultMinTemperature,
		MaxTemperature: DefaultMaxTemperature,
	}
}

// Writer sends temperature values to the display, skipping writes that
// would not change what is shown.
type Writer struct {
	config Config
	opener Opener
	now    func() time.Time

	device    Device
	lastValue int
	hasValue  bool
	lastWrite time.Time

	outcomes cmap.ConcurrentMap[string, uint64]
}

func NewWriter(config Config, opener Opener) *Writer {
	outcomes := cmap.New[uint64]()
	for _, outcome := range Outcomes {
		outcomes.Set(string(outcome), 0)
	}
	return &Writer{
		config:   config,
		opener:   opener,
		now:      time.Now,
		outcomes: outcomes,
	}
}

// SetClock replaces the time source used for the last write timestamp
func (w *Writer) SetClock(now func() time.Time) {
	w.now = now
}

func (w *Writer) Config() Config {
	return w.config
}

// Connect opens the device, closing a previously opened one
func (w *Writer) Connect() error {
	_ = w.Close()

	device, err := w.opener(w.config.VendorID, w.config.ProductID)
	if err != nil {
		return &ConnectionError{VendorID: w.config.VendorID, ProductID: w.config.ProductID, Err: err}
	}

	w.device = device
	w.hasValue = false
	w.lastValue = 0
	w.lastWrite = time.Time{}
	ui.Info("Connected to display (VID: 0x%04X, PID: 0x%04X)", w.config.VendorID, w.config.ProductID)
	return nil
}

func (w *Writer) IsConnected() bool {
	return w.device != nil
}

// ToDisplayValue converts a raw temperature to the value shown on the display.
// raw must not be NaN.
func (w *Writer) ToDisplayValue(raw float64) int {
	return util.RoundAndClamp(raw, w.config.MinTemperature, w.config.MaxTemperature)
}

// WriteTemperature shows the given raw temperature on the display.
// Unless force is set, nothing is sent if the displayed value would not change.
func (w *Writer) WriteTemperature(raw float64, force bool) error {
	if w.device == nil {
		w.count(OutcomeFailed)
		return &WriteError{VendorID: w.config.VendorID, ProductID: w.config.ProductID, Err: ErrNotConnected}
	}

	if math.IsNaN(raw) {
		w.count(OutcomeSkipped)
		return fmt.Errorf("display %04x:%04x: %w", w.config.VendorID, w.config.ProductID, ErrInvalidTemperature)
	}

	value := w.ToDisplayValue(raw)
	if !force && w.hasValue && value == w.lastValue {
		w.count(OutcomeSkipped)
		ui.Debug("USB packet skipped: Raw=%.2f°C, Rounded=%d°C (no change)", raw, value)
		return nil
	}

	packet := NewTemperaturePacket(uint8(value))
	n, err := w.device.Write(packet[:])
	if err == nil && n < PacketSize {
		err = io.ErrShortWrite
	}
	if err != nil {
		w.count(OutcomeFailed)
		return &WriteError{VendorID: w.config.VendorID, ProductID: w.config.ProductID, Err: err}
	}

	w.lastValue = value
	w.hasValue = true
	w.lastWrite = w.now()

	reason := "temperature change"
	if force {
		reason = "forced"
		w.count(OutcomeForced)
	} else {
		w.count(OutcomeChanged)
	}
	ui.Debug("USB packet sent (%s): Raw=%.2f°C, Rounded=%d°C", reason, raw, value)
	return nil
}

// LastValue returns the last value successfully written since Connect
func (w *Writer) LastValue() (int, bool) {
	return w.lastValue, w.hasValue
}

// LastWriteTime returns the time of the last successful write, zero if there was none
func (w *Writer) LastWriteTime() time.Time {
	return w.lastWrite
}

// OutcomeCounts returns the number of writes per outcome.
// It is safe to call concurrently with WriteTemperature.
func (w *Writer) OutcomeCounts() map[Outcome]uint64 {
	result := map[Outcome]uint64{}
	for key, value := range w.outcomes.Items() {
		result[Outcome(key)] = value
	}
	return result
}

func (w *Writer) count(outcome Outcome) {
	w.outcomes.Upsert(string(outcome), 1, func(exist bool, valueInMap uint64, newValue uint64) uint64 {
		if exist {
			return valueInMap + newValue
		}
		return newValue
	})
}

func (w *Writer) Close() error {
	if w.device == nil {
		return nil
	}
	device := w.device
	w.device = nil
	if err := device.Close(); err != nil {
		return fmt.Errorf("display %04x:%04x: close failed: %w", w.config.VendorID, w.config.ProductID, err)
	}
	return nil
}
