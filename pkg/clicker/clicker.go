package clicker

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/openauto/multiclick/pkg/input"
)

// State is the clicker lifecycle state.
type State string

const (
	StateStopped State = "stopped"
	StateRunning State = "running"
	StateError   State = "error"
)

const stopJoinTimeout = 2 * time.Second

// AutoClicker drives automated clicking on a background goroutine. Status
// updates arrive on the registered callback from that goroutine.
type AutoClicker struct {
	cfg      Config
	mouse    input.Mouse
	sleep    func(time.Duration)
	onStatus func(string)

	mu      sync.Mutex
	state   State
	done    chan struct{}
	stop    atomic.Bool
	clicks  atomic.Int64
}

// Option configures an AutoClicker at construction.
type Option func(*AutoClicker)

// WithMouse substitutes the pointer backend, primarily for tests.
func WithMouse(m input.Mouse) Option {
	return func(c *AutoClicker) { c.mouse = m }
}

// WithSleep substitutes the inter-click sleep primitive.
func WithSleep(fn func(time.Duration)) Option {
	return func(c *AutoClicker) { c.sleep = fn }
}

// New validates cfg and builds a stopped AutoClicker.
func New(cfg Config, opts ...Option) (*AutoClicker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &AutoClicker{
		cfg:   cfg,
		mouse: input.System().Mouse,
		sleep: time.Sleep,
		state: StateStopped,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// OnStatus registers the status callback. Register before Start.
func (c *AutoClicker) OnStatus(fn func(msg string)) { c.onStatus = fn }

// Start launches the click worker. Returns false (and reports it) when a
// worker is already running.
func (c *AutoClicker) Start() bool {
	c.mu.Lock()
	if c.state == StateRunning {
		c.mu.Unlock()
		c.notify("Already running")
		return false
	}
	c.stop.Store(false)
	c.clicks.Store(0)
	c.state = StateRunning
	c.done = make(chan struct{})
	done := c.done
	c.mu.Unlock()

	go c.worker(done)
	c.notify("Auto-clicker started")
	return true
}

// Stop requests a graceful stop and waits — bounded — for the worker.
func (c *AutoClicker) Stop() {
	c.mu.Lock()
	if c.state != StateRunning {
		c.mu.Unlock()
		return
	}
	done := c.done
	c.mu.Unlock()

	c.stop.Store(true)
	select {
	case <-done:
	case <-time.After(stopJoinTimeout):
	}
	c.notify(fmt.Sprintf("Auto-clicker stopped. Total clicks: %d", c.Clicks()))
}

// State returns the current lifecycle state.
func (c *AutoClicker) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// IsRunning reports whether the worker is active.
func (c *AutoClicker) IsRunning() bool {
	return c.State() == StateRunning
}

// Clicks returns the number of clicks issued in the current session.
func (c *AutoClicker) Clicks() int64 {
	return c.clicks.Load()
}

// Done returns a channel closed when the current worker exits. Returns nil
// before the first Start.
func (c *AutoClicker) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

func (c *AutoClicker) worker(done chan struct{}) {
	defer close(done)

	if err := c.loop(); err != nil {
		c.setState(StateError)
		c.notify("Error: " + err.Error())
		return
	}
	c.setState(StateStopped)
	c.notify(fmt.Sprintf("Completed. Total clicks: %d", c.Clicks()))
}

func (c *AutoClicker) loop() error {
	delay := c.cfg.Delay()
	positionIndex := 0

	for !c.stop.Load() {
		if !c.cfg.Infinite() && c.Clicks() >= int64(c.cfg.TotalClicks) {
			break
		}

		if c.cfg.Mode == ModeStaticSequence {
			pos := c.cfg.Positions[positionIndex]
			positionIndex = (positionIndex + 1) % len(c.cfg.Positions)
			c.mouse.Move(pos.X, pos.Y)
		}
		if err := c.click(); err != nil {
			return err
		}

		n := c.clicks.Add(1)
		if n%10 == 0 {
			c.notify(fmt.Sprintf("Clicks executed: %d", n))
		}

		c.sleep(delay)
	}
	return nil
}

func (c *AutoClicker) click() error {
	button := "left"
	if c.cfg.Type == ClickRight {
		button = "right"
	}
	if c.cfg.Type == ClickDouble {
		return c.mouse.DoubleClick(button)
	}
	return c.mouse.Click(button)
}

func (c *AutoClicker) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

func (c *AutoClicker) notify(msg string) {
	if c.onStatus != nil {
		c.onStatus(msg)
	}
}
