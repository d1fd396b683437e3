package controller

import (
	"context"
	"errors"
	"fmt"
	"github.com/cenkalti/backoff/v4"
	"github.com/markusressel/argus2display/internal/sensors"
	"github.com/markusressel/argus2display/internal/ui"
	"sync"
	"time"
)

var (
	ErrSourceUnavailable  = errors.New("temperature source unavailable")
	ErrDisplayUnavailable = errors.New("display unavailable")
	ErrAlreadyStarted     = errors.New("controller already started")
)

type Config struct {
	// SourceRetries is the total number of attempts to connect to the temperature source
	SourceRetries    int
	SourceRetryDelay time.Duration
	PollingInterval  time.Duration
	// MandatoryRefresh is the maximum time between two writes to the display
	MandatoryRefresh time.Duration
}

func DefaultConfig() Config {
	return Config{
		SourceRetries:    6,
		SourceRetryDelay: 10 * time.Second,
		PollingInterval:  1 * time.Second,
		MandatoryRefresh: 15 * time.Second,
	}
}

type State int

const (
	Disconnected State = iota
	ConnectingSource
	ConnectingDisplay
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case ConnectingSource:
		return "connecting source"
	case ConnectingDisplay:
		return "connecting display"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("unknown (%d)", int(s))
	}
}

type TemperatureSource interface {
	Connect() error
	Available() bool
	CurrentRawTemperature() (float64, bool)
	ListAllCpuTemperatures() ([]sensors.Reading, error)
	Close() error
}

type TemperatureDisplay interface {
	Connect() error
	WriteTemperature(raw float64, force bool) error
	LastWriteTime() time.Time
	Close() error
}

type Statistics struct {
	SourceAttempts int
	// Ticks is the number of poll loop iterations
	Ticks            uint64
	UnavailableTicks uint64
	WriteFailures    uint64

	LastRawTemperature float64
	HasReading         bool
}

// UpdateController keeps the display in sync with the CPU temperature
type UpdateController struct {
	config  Config
	source  TemperatureSource
	display TemperatureDisplay
	now     func() time.Time

	mu       sync.Mutex
	state    State
	starting bool
	running  bool
	stats    Statistics

	stop      chan struct{}
	// started is closed when Start returns
	started   chan struct{}
	done      chan struct{}
	stopOnce  sync.Once
	closeOnce sync.Once
}

func New(config Config, source TemperatureSource, display TemperatureDisplay) *UpdateController {
	return &UpdateController{
		config:  config,
		source:  source,
		display: display,
		now:     time.Now,
		state:   Disconnected,
		stop:    make(chan struct{}),
		started: make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// SetClock replaces the time source used to decide on mandatory refreshes
func (c *UpdateController) SetClock(now func() time.Time) {
	c.now = now
}

func (c *UpdateController) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *UpdateController) GetStatistics() Statistics {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

func (c *UpdateController) setState(state State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = state
}

// Start connects to the temperature source and the display and starts the poll loop.
// On error, everything that was opened is released and the controller is stopped.
// A concurrent Stop waits until Start has returned.
func (c *UpdateController) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.stopped() {
		c.mu.Unlock()
		return context.Canceled
	}
	if c.starting || c.state != Disconnected {
		c.mu.Unlock()
		return ErrAlreadyStarted
	}
	c.starting = true
	c.state = ConnectingSource
	c.mu.Unlock()
	defer close(c.started)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-c.stop:
			cancel()
		case <-ctx.Done():
		}
	}()

	if err := c.connectSource(ctx); err != nil {
		c.shutdown()
		return err
	}

	if c.stopped() {
		c.shutdown()
		return context.Canceled
	}

	c.setState(ConnectingDisplay)
	if err := c.display.Connect(); err != nil {
		c.shutdown()
		return fmt.Errorf("%w: %w", ErrDisplayUnavailable, err)
	}
	if c.stopped() {
		c.shutdown()
		return context.Canceled
	}

	readings, err := c.source.ListAllCpuTemperatures()
	if err != nil {
		ui.Warning("Unable to list CPU temperature sensors: %v", err)
	} else {
		ui.Info("Found %d CPU temperature sensors", len(readings))
	}
	if !c.source.Available() {
		ui.Warning("No CPU temperature sensor found, the display will not be updated")
	}

	c.mu.Lock()
	if c.stopped() {
		c.mu.Unlock()
		c.shutdown()
		return context.Canceled
	}
	c.state = Running
	c.running = true
	c.mu.Unlock()

	ui.Info("Running display updates every %s...", c.config.PollingInterval)
	go c.loop()
	return nil
}

func (c *UpdateController) connectSource(ctx context.Context) error {
	retries := c.config.SourceRetries
	if retries < 1 {
		retries = 1
	}

	attempts := 0
	operation := func() error {
		attempts++
		c.mu.Lock()
		c.stats.SourceAttempts = attempts
		c.mu.Unlock()
		return c.source.Connect()
	}
	notify := func(err error, delay time.Duration) {
		ui.Warning("Failed to connect to Argus Monitor: %v", err)
		ui.Info("Retrying connection to Argus Monitor in %s... (attempt %d/%d)", delay, attempts, retries)
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(c.config.SourceRetryDelay), uint64(retries-1)),
		ctx,
	)
	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		ui.Error("Failed to connect to Argus Monitor after %d attempts", attempts)
		return fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	ui.Info("Connected to Argus Monitor")
	return nil
}

func (c *UpdateController) loop() {
	defer close(c.done)

	timer := time.NewTimer(0)
	defer timer.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-timer.C:
			c.tick()
			timer.Reset(c.config.PollingInterval)
		}
	}
}

// tick performs a single poll: read the temperature and forward it to the display
func (c *UpdateController) tick() {
	raw, ok := c.source.CurrentRawTemperature()

	c.mu.Lock()
	c.stats.Ticks++
	if ok {
		c.stats.LastRawTemperature = raw
		c.stats.HasReading = true
	} else {
		c.stats.UnavailableTicks++
	}
	c.mu.Unlock()

	if !ok {
		return
	}

	force := c.now().Sub(c.display.LastWriteTime()) >= c.config.MandatoryRefresh
	if err := c.display.WriteTemperature(raw, force); err != nil {
		ui.Error("Error writing to display: %v", err)
		c.mu.Lock()
		c.stats.WriteFailures++
		c.mu.Unlock()
	}
}

// Stop ends the poll loop and releases the source and the display. It is safe to call multiple times.
func (c *UpdateController) Stop() {
	c.stopOnce.Do(func() {
		close(c.stop)
	})

	c.mu.Lock()
	starting := c.starting
	c.mu.Unlock()
	if starting {
		// Start owns the resources until it returns
		<-c.started
	}

	c.mu.Lock()
	running := c.running
	c.mu.Unlock()
	if running {
		<-c.done
	}
	c.shutdown()
}

func (c *UpdateController) stopped() bool {
	select {
	case <-c.stop:
		return true
	default:
		return false
	}
}

// Done is closed once the poll loop has ended
func (c *UpdateController) Done() <-chan struct{} {
	return c.done
}

func (c *UpdateController) shutdown() {
	c.closeOnce.Do(func() {
		if err := c.source.Close(); err != nil {
			ui.Warning("Error closing temperature source: %v", err)
		}
		if err := c.display.Close(); err != nil {
			ui.Warning("Error closing display: %v", err)
		}
		c.setState(Stopped)
		ui.Info("Service stopped")
	})
}

// Run starts the controller and blocks until ctx is done
func (c *UpdateController) Run(ctx context.Context) error {
	if err := c.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	c.Stop()
	return nil
}
