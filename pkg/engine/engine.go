package engine

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/openauto/multiclick/pkg/input"
	"github.com/openauto/multiclick/pkg/script"
)

// cancelJoinTimeout bounds how long Cancel blocks waiting for the worker
// to observe the flag. The join is best-effort: an action that blocks
// internally cannot be interrupted, so Cancel may return with the worker
// still winding down.
const cancelJoinTimeout = 2 * time.Second

// Engine runs one script on a dedicated worker goroutine. At most one
// worker is alive per Engine; a finished Engine may be re-armed by calling
// Start again. Both callbacks are invoked from the worker goroutine —
// callers touching thread-unsafe state must marshal back themselves.
type Engine struct {
	script *script.Script
	input  *input.Backend
	sleep  func(time.Duration)

	onLog  func(string)
	onDone func(ok bool, msg string)

	mu      sync.Mutex
	running bool
	done    chan struct{}
	stop    atomic.Bool
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithInput substitutes the input backend, primarily for tests.
func WithInput(b *input.Backend) Option {
	return func(e *Engine) { e.input = b }
}

// WithSleep substitutes the sleep primitive actions block on.
func WithSleep(fn func(time.Duration)) Option {
	return func(e *Engine) { e.sleep = fn }
}

// New builds an Engine for the given script, defaulting to the real OS
// input backend.
func New(s *script.Script, opts ...Option) *Engine {
	e := &Engine{
		script: s,
		input:  input.System(),
		sleep:  time.Sleep,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// OnLog registers the log callback. Register before Start.
func (e *Engine) OnLog(fn func(msg string)) { e.onLog = fn }

// OnDone registers the completion callback, invoked exactly once per run
// with (false, "Aborted"), (false, "Error: …") or (true, "Completed").
// Register before Start.
func (e *Engine) OnDone(fn func(ok bool, msg string)) { e.onDone = fn }

// Start begins asynchronous execution. It is a no-op while a previous
// worker is still alive, so concurrent or repeated calls start exactly one
// worker.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		return
	}
	e.stop.Store(false)
	e.done = make(chan struct{})
	e.running = true
	go e.worker(e.done)
}

// Cancel raises the cooperative stop flag and waits — bounded — for the
// worker to exit. The flag is observed only at action boundaries; see
// cancelJoinTimeout for why this is not a termination guarantee.
func (e *Engine) Cancel() {
	e.stop.Store(true)

	e.mu.Lock()
	done := e.done
	running := e.running
	e.mu.Unlock()
	if !running || done == nil {
		return
	}

	select {
	case <-done:
	case <-time.After(cancelJoinTimeout):
	}
}

// Wait blocks until the current run finishes. Returns immediately when no
// run has been started.
func (e *Engine) Wait() {
	e.mu.Lock()
	done := e.done
	e.mu.Unlock()
	if done != nil {
		<-done
	}
}

// IsRunning reports whether a worker is currently alive.
func (e *Engine) IsRunning() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

func (e *Engine) worker(done chan struct{}) {
	defer func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
		close(done)
	}()

	ctx := &RunContext{
		Input: e.input,
		log:   e.emitLog,
		sleep: e.sleep,
	}

	repeats, untilStopped := e.script.Loop.Iterations()
	total := len(e.script.Actions)

	for pass := 0; untilStopped || pass < repeats; pass++ {
		if e.stop.Load() {
			e.emitLog("cancelled before next pass")
			e.finish(false, "Aborted")
			return
		}
		for i, action := range e.script.Actions {
			if e.stop.Load() {
				e.emitLog("cancelled mid-script")
				e.finish(false, "Aborted")
				return
			}
			e.emitLog(fmt.Sprintf("[%d/%d] %s", i+1, total, action.Kind()))
			if err := runAction(ctx, action); err != nil {
				e.finish(false, "Error: "+err.Error())
				return
			}
		}
	}

	e.finish(true, "Completed")
}

// emitLog delivers a log line to the caller's hook. A panicking callback
// must never take the worker down with it.
func (e *Engine) emitLog(msg string) {
	cb := e.onLog
	if cb == nil {
		return
	}
	defer func() { _ = recover() }()
	cb(msg)
}

func (e *Engine) finish(ok bool, msg string) {
	cb := e.onDone
	if cb == nil {
		return
	}
	defer func() { _ = recover() }()
	cb(ok, msg)
}
