// Package engine executes automation scripts on a background worker
// goroutine with cooperative cancellation, optional looping, and
// asynchronous log/done reporting.
package engine

import (
	"fmt"
	"time"

	"github.com/openauto/multiclick/pkg/input"
)

// RunContext is the execution-time handle actions run against. All timing
// and logging funnels through it — never the OS clock or console directly —
// so tests can substitute recorded hooks and fake input backends.
type RunContext struct {
	Input *input.Backend

	log   func(string)
	sleep func(time.Duration)
}

// Log emits a message through the run's log hook, if any.
func (c *RunContext) Log(msg string) {
	if c.log != nil {
		c.log(msg)
	}
}

// Logf is Log with fmt.Sprintf formatting.
func (c *RunContext) Logf(format string, args ...any) {
	c.Log(fmt.Sprintf(format, args...))
}

// Sleep pauses through the run's sleep hook. Non-positive durations never
// reach the hook.
func (c *RunContext) Sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	if c.sleep != nil {
		c.sleep(d)
		return
	}
	time.Sleep(d)
}

// SleepSeconds pauses for a fractional number of seconds.
func (c *RunContext) SleepSeconds(seconds float64) {
	c.Sleep(time.Duration(seconds * float64(time.Second)))
}

// SleepMS pauses for a number of milliseconds.
func (c *RunContext) SleepMS(ms int) {
	c.Sleep(time.Duration(ms) * time.Millisecond)
}
