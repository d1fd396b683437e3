package internal

import (
	"context"
	"github.com/asecurityteam/rolling"
	"github.com/markusressel/argus2display/internal/util"
	"time"
)

const defaultPollingRate = 1 * time.Second

type TemperatureReader interface {
	CurrentRawTemperature() (float64, bool)
}

// Sample is the state of a SensorMonitor after a single poll
type Sample struct {
	Time      time.Time
	Value     float64
	Min       float64
	Max       float64
	Avg       float64
	MovingAvg float64
	// History holds the last values, oldest first
	History []float64
}

// SensorMonitor polls a temperature and keeps statistics over a rolling window
type SensorMonitor struct {
	reader      TemperatureReader
	pollingRate time.Duration
	windowSize  int

	window    *rolling.PointPolicy
	history   []float64
	movingAvg float64
}

func NewSensorMonitor(reader TemperatureReader, pollingRate time.Duration, windowSize int) *SensorMonitor {
	if windowSize < 1 {
		windowSize = 1
	}
	if pollingRate <= 0 {
		pollingRate = defaultPollingRate
	}
	return &SensorMonitor{
		reader:      reader,
		pollingRate: pollingRate,
		windowSize:  windowSize,
		window:      util.CreateRollingWindow(windowSize),
	}
}

// Run polls until ctx is done and passes every successful sample to onSample
func (s *SensorMonitor) Run(ctx context.Context, onSample func(sample Sample)) error {
	ticker := time.NewTicker(s.pollingRate)
	defer ticker.Stop()
	for {
		if sample, ok := s.Poll(); ok {
			onSample(sample)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Poll reads the current value and appends it to the window
func (s *SensorMonitor) Poll() (Sample, bool) {
	value, ok := s.reader.CurrentRawTemperature()
	if !ok {
		return Sample{}, false
	}

	if len(s.history) == 0 {
		// an empty window would report 0 as minimum
		for i := 0; i < s.windowSize; i++ {
			s.window.Append(value)
		}
		s.movingAvg = value
	} else {
		s.window.Append(value)
		s.movingAvg = util.UpdateSimpleMovingAvg(s.movingAvg, s.windowSize, value)
	}

	s.history = append(s.history, value)
	if len(s.history) > s.windowSize {
		s.history = s.history[len(s.history)-s.windowSize:]
	}

	return Sample{
		Time:      time.Now(),
		Value:     value,
		Min:       util.GetWindowMin(s.window),
		Max:       util.GetWindowMax(s.window),
		Avg:       util.GetWindowAvg(s.window),
		MovingAvg: s.movingAvg,
		History:   append([]float64(nil), s.history...),
	}, true
}
