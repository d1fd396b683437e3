package sensors

import (
	"errors"
	"fmt"
	"github.com/markusressel/argus2display/internal/argus"
	"github.com/markusressel/argus2display/internal/ui"
)

// Reading is a single labeled sensor value
type Reading struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// TableOpener acquires a view onto the Argus Monitor sensor table
type TableOpener func() (*argus.Table, error)

// NewArgusTableOpener opens the shared memory region with the given name and size
func NewArgusTableOpener(name string, size int) TableOpener {
	return func() (*argus.Table, error) {
		return argus.OpenTable(name, size)
	}
}

// CpuTemperatureSource provides the primary CPU temperature from the Argus Monitor table.
//
// The location of the CPU temperature records is resolved once per Connect,
// since the layout of the table only changes when Argus Monitor restarts.
type CpuTemperatureSource struct {
	opener      TableOpener
	processName string

	table    *argus.Table
	category argus.Category
	location argus.CategoryRange
}

// NewCpuTemperatureSource creates a new source. If processName is set, connection
// errors are annotated with whether a process of that name is running.
func NewCpuTemperatureSource(opener TableOpener, processName string) *CpuTemperatureSource {
	return &CpuTemperatureSource{
		opener:      opener,
		processName: processName,
	}
}

// Connect opens the table and locates the CPU temperature records.
// Finding no CPU temperature records is not an error, see Available.
func (s *CpuTemperatureSource) Connect() error {
	_ = s.Close()

	table, err := s.opener()
	if err != nil {
		return s.describeConnectionError(err)
	}
	if !table.IsActive() {
		_ = table.Close()
		return fmt.Errorf("argus monitor not active: %w", argus.ErrStaleData)
	}

	if err := table.Verify(); err != nil {
		ui.Debug("Argus Monitor sensor table is inconsistent: %v", err)
	}

	category, location, err := locateCpuTemperature(table)
	if err != nil {
		_ = table.Close()
		return err
	}

	s.table = table
	s.category = category
	s.location = location
	return nil
}

// locateCpuTemperature falls back to the additional CPU temperature category
// if the primary one is empty
func locateCpuTemperature(table *argus.Table) (argus.Category, argus.CategoryRange, error) {
	location, err := table.CategoryRange(argus.CategoryCpuTemperature)
	if err != nil {
		return argus.CategoryInvalid, argus.CategoryRange{}, err
	}
	if location.Count > 0 {
		return argus.CategoryCpuTemperature, location, nil
	}

	location, err = table.CategoryRange(argus.CategoryCpuTemperatureAdditional)
	if err != nil {
		return argus.CategoryInvalid, argus.CategoryRange{}, err
	}
	return argus.CategoryCpuTemperatureAdditional, location, nil
}

func (s *CpuTemperatureSource) describeConnectionError(err error) error {
	var connErr *argus.ConnectionError
	if len(s.processName) <= 0 || !errors.As(err, &connErr) {
		return err
	}

	running, lookupErr := argus.IsMonitorRunning(s.processName)
	switch {
	case lookupErr != nil:
		return err
	case running:
		return fmt.Errorf("%w (%s is running, is its data interface enabled?)", err, s.processName)
	default:
		return fmt.Errorf("%w (is Argus Monitor running?)", err)
	}
}

// Available reports whether a CPU temperature record was found on Connect
func (s *CpuTemperatureSource) Available() bool {
	return s.table != nil && s.location.Count > 0
}

// Location returns the category and records used for the CPU temperature
func (s *CpuTemperatureSource) Location() (argus.Category, argus.CategoryRange) {
	return s.category, s.location
}

// CurrentRawTemperature returns the current value of the first CPU temperature record.
// The second return value is false if there is no such record or the table is not active.
func (s *CpuTemperatureSource) CurrentRawTemperature() (float64, bool) {
	if !s.Available() {
		return 0, false
	}
	value, err := s.table.Value(s.location.Offset)
	if err != nil {
		return 0, false
	}
	return value, true
}

// ListAllCpuTemperatures returns all records of the CPU temperature category
func (s *CpuTemperatureSource) ListAllCpuTemperatures() ([]Reading, error) {
	if s.table == nil {
		return nil, argus.ErrClosed
	}
	records, err := s.table.RecordsOf(argus.CategoryCpuTemperature)
	if err != nil {
		return nil, err
	}

	result := make([]Reading, 0, len(records))
	for _, record := range records {
		result = append(result, Reading{
			Label: record.Label,
			Value: record.Value,
			Unit:  record.Unit,
		})
	}
	return result, nil
}

// Close releases the table. It is safe to call Close multiple times.
func (s *CpuTemperatureSource) Close() error {
	if s.table == nil {
		return nil
	}
	err := s.table.Close()
	s.table = nil
	s.location = argus.CategoryRange{}
	return err
}
