package sensor

import (
	"github.com/markusressel/argus2display/internal"
	"github.com/stretchr/testify/assert"
	"testing"
	"time"
)

func TestValidateWatchFlags(t *testing.T) {
	tests := []struct {
		name     string
		interval time.Duration
		window   int
		wantErr  bool
	}{
		{name: "defaults", interval: time.Second, window: 60},
		{name: "zero interval", interval: 0, window: 60, wantErr: true},
		{name: "negative interval", interval: -time.Second, window: 60, wantErr: true},
		{name: "zero window", interval: time.Second, window: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateWatchFlags(tt.interval, tt.window)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRenderSample(t *testing.T) {
	// GIVEN
	sample := internal.Sample{
		Time:    time.Date(2024, 1, 1, 12, 30, 0, 0, time.UTC),
		Value:   48.5,
		Min:     40,
		Avg:     45,
		Max:     50,
		History: []float64{40, 48.5},
	}

	// WHEN
	result := renderSample(sample)

	// THEN
	assert.Contains(t, result, "12:30:00  CPU: 48.50°C  min: 40.00  avg: 45.00  max: 50.00")
	assert.Contains(t, result, "°C")
}
