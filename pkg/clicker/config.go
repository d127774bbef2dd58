// Package clicker implements the fixed-rate auto-clicker: a background
// worker that clicks a static position sequence or follows the cursor at a
// configured rate until a click budget runs out or the user stops it.
package clicker

import (
	"errors"
	"fmt"
	"time"
)

// ClickType selects which button gesture the clicker issues.
type ClickType string

const (
	ClickLeft   ClickType = "left"
	ClickRight  ClickType = "right"
	ClickDouble ClickType = "double"
)

// ClickMode determines how click targets are chosen.
type ClickMode string

const (
	// ModeStaticSequence cycles through a fixed position list.
	ModeStaticSequence ClickMode = "static_sequence"
	// ModeFollowCursor clicks wherever the cursor currently is.
	ModeFollowCursor ClickMode = "follow_cursor"
)

// Position is a screen location with an optional user label.
type Position struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Label string `json:"label,omitempty"`
}

func (p Position) String() string {
	base := fmt.Sprintf("(%d, %d)", p.X, p.Y)
	if p.Label != "" {
		return p.Label + " " + base
	}
	return base
}

// Config holds everything a clicker run needs. TotalClicks == 0 means run
// until stopped.
type Config struct {
	Positions      []Position
	RatePerSecond  float64
	TotalClicks    int
	Type           ClickType
	Mode           ClickMode
}

// Validate rejects configurations the worker cannot execute.
func (c Config) Validate() error {
	if c.Mode == ModeStaticSequence && len(c.Positions) == 0 {
		return errors.New("at least one click position is required for static mode")
	}
	if c.RatePerSecond <= 0 {
		return errors.New("click rate must be positive")
	}
	if c.TotalClicks < 0 {
		return errors.New("total clicks cannot be negative")
	}
	return nil
}

// Delay is the pause between consecutive clicks.
func (c Config) Delay() time.Duration {
	if c.RatePerSecond > 0 {
		return time.Duration(float64(time.Second) / c.RatePerSecond)
	}
	return 100 * time.Millisecond
}

// Infinite reports whether the clicker runs until stopped.
func (c Config) Infinite() bool {
	return c.TotalClicks == 0
}
