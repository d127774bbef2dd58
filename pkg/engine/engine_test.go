package engine

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/openauto/multiclick/pkg/input"
	"github.com/openauto/multiclick/pkg/script"
)

// recorder is a fake input backend that records every injected call in
// order. onCall, when set, fires after each recording so tests can react to
// specific actions from inside a run.
type recorder struct {
	mu     sync.Mutex
	calls  []string
	onCall func(name string)

	clickErr    error
	spawnErr    error
	activateErr error
}

func (r *recorder) record(name string) {
	r.mu.Lock()
	r.calls = append(r.calls, name)
	hook := r.onCall
	r.mu.Unlock()
	if hook != nil {
		hook(name)
	}
}

func (r *recorder) recorded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	copy(out, r.calls)
	return out
}

func (r *recorder) count(name string) int {
	n := 0
	for _, c := range r.recorded() {
		if c == name {
			n++
		}
	}
	return n
}

func (r *recorder) Tap(key string) error   { r.record("tap:" + key); return nil }
func (r *recorder) Type(text string) error { r.record("type:" + text); return nil }

func (r *recorder) Move(x, y int) { r.record(fmt.Sprintf("move:%d,%d", x, y)) }
func (r *recorder) Click(button string) error {
	r.record("click:" + button)
	return r.clickErr
}
func (r *recorder) DoubleClick(button string) error {
	r.record("dclick:" + button)
	return nil
}
func (r *recorder) Scroll(dx, dy int) error {
	r.record(fmt.Sprintf("scroll:%d,%d", dx, dy))
	return nil
}
func (r *recorder) Position() (int, int) { return 0, 0 }

func (r *recorder) Activate(title string) error {
	r.record("activate:" + title)
	return r.activateErr
}

func (r *recorder) Spawn(command string, args []string, dir string) error {
	r.record("spawn:" + command)
	return r.spawnErr
}

func (r *recorder) backend() *input.Backend {
	return &input.Backend{Keyboard: r, Mouse: r, Window: r, Launcher: r}
}

// doneCapture collects OnDone invocations.
type doneCapture struct {
	mu    sync.Mutex
	calls []string
}

func (d *doneCapture) hook() func(bool, string) {
	return func(ok bool, msg string) {
		d.mu.Lock()
		d.calls = append(d.calls, fmt.Sprintf("%v:%s", ok, msg))
		d.mu.Unlock()
	}
}

func (d *doneCapture) all() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.calls))
	copy(out, d.calls)
	return out
}

func mustScript(t *testing.T, doc map[string]any) *script.Script {
	t.Helper()
	s, err := script.Parse(doc)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	return s
}

func noSleep(time.Duration) {}

func TestRunSequencing(t *testing.T) {
	s := mustScript(t, map[string]any{
		"name": "seq",
		"actions": []any{
			map[string]any{"type": "type_text", "text": "a"},
			map[string]any{"type": "mouse_click", "x": float64(10), "y": float64(20)},
			map[string]any{"type": "scroll", "amount": float64(3)},
		},
	})

	rec := &recorder{}
	var done doneCapture
	var logs []string
	var logMu sync.Mutex

	eng := New(s, WithInput(rec.backend()), WithSleep(noSleep))
	eng.OnLog(func(m string) {
		logMu.Lock()
		logs = append(logs, m)
		logMu.Unlock()
	})
	eng.OnDone(done.hook())
	eng.Start()
	eng.Wait()

	want := []string{"type:a", "move:10,20", "click:left", "scroll:0,3"}
	got := rec.recorded()
	if len(got) != len(want) {
		t.Fatalf("calls = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if calls := done.all(); len(calls) != 1 || calls[0] != "true:Completed" {
		t.Errorf("done = %v, want one true:Completed", calls)
	}

	logMu.Lock()
	defer logMu.Unlock()
	var progress []string
	for _, l := range logs {
		if strings.HasPrefix(l, "[") {
			progress = append(progress, l)
		}
	}
	wantProgress := []string{"[1/3] type_text", "[2/3] mouse_click", "[3/3] scroll"}
	if len(progress) != len(wantProgress) {
		t.Fatalf("progress logs = %v, want %v", progress, wantProgress)
	}
	for i := range wantProgress {
		if progress[i] != wantProgress[i] {
			t.Errorf("progress[%d] = %q, want %q", i, progress[i], wantProgress[i])
		}
	}
}

func TestCancelStopsAtActionBoundary(t *testing.T) {
	s := mustScript(t, map[string]any{
		"actions": []any{
			map[string]any{"type": "type_text", "text": "x"},
			map[string]any{"type": "type_text", "text": "y"},
			map[string]any{"type": "type_text", "text": "z"},
		},
	})

	rec := &recorder{}
	var done doneCapture

	eng := New(s, WithInput(rec.backend()), WithSleep(noSleep))
	rec.onCall = func(name string) {
		if name == "type:x" {
			eng.stop.Store(true)
		}
	}
	eng.OnDone(done.hook())
	eng.Start()
	eng.Wait()

	if n := rec.count("type:y") + rec.count("type:z"); n != 0 {
		t.Errorf("actions after the cancel point still ran: %v", rec.recorded())
	}
	if calls := done.all(); len(calls) != 1 || calls[0] != "false:Aborted" {
		t.Errorf("done = %v, want one false:Aborted", calls)
	}
}

func TestCancelStopsBeforeNextPass(t *testing.T) {
	s := mustScript(t, map[string]any{
		"repeat": float64(3),
		"actions": []any{
			map[string]any{"type": "type_text", "text": "x"},
		},
	})

	rec := &recorder{}
	var done doneCapture
	var logs []string
	var logMu sync.Mutex

	eng := New(s, WithInput(rec.backend()), WithSleep(noSleep))
	rec.onCall = func(string) { eng.stop.Store(true) }
	eng.OnLog(func(m string) {
		logMu.Lock()
		logs = append(logs, m)
		logMu.Unlock()
	})
	eng.OnDone(done.hook())
	eng.Start()
	eng.Wait()

	if n := rec.count("type:x"); n != 1 {
		t.Errorf("action ran %d times, want 1", n)
	}
	if calls := done.all(); len(calls) != 1 || calls[0] != "false:Aborted" {
		t.Errorf("done = %v, want one false:Aborted", calls)
	}

	logMu.Lock()
	defer logMu.Unlock()
	var sawPassLog bool
	for _, l := range logs {
		if l == "cancelled before next pass" {
			sawPassLog = true
		}
	}
	if !sawPassLog {
		t.Error("expected the pass-boundary cancellation log line")
	}
}

func TestFirstErrorAbortsRun(t *testing.T) {
	s := mustScript(t, map[string]any{
		"actions": []any{
			map[string]any{"type": "mouse_click"},
			map[string]any{"type": "type_text", "text": "never"},
		},
	})

	rec := &recorder{clickErr: fmt.Errorf("injection refused")}
	var done doneCapture

	eng := New(s, WithInput(rec.backend()), WithSleep(noSleep))
	eng.OnDone(done.hook())
	eng.Start()
	eng.Wait()

	if n := rec.count("type:never"); n != 0 {
		t.Error("action after the failing one still ran")
	}
	calls := done.all()
	if len(calls) != 1 || !strings.HasPrefix(calls[0], "false:Error: ") {
		t.Fatalf("done = %v, want one false:Error: ...", calls)
	}
	if !strings.Contains(calls[0], "injection refused") {
		t.Errorf("done message %q does not carry the cause", calls[0])
	}
}

func TestLoopRepeatRunsEveryPass(t *testing.T) {
	s := mustScript(t, map[string]any{
		"repeat": float64(3),
		"actions": []any{
			map[string]any{"type": "type_text", "text": "a"},
			map[string]any{"type": "type_text", "text": "b"},
		},
	})

	rec := &recorder{}
	var done doneCapture

	eng := New(s, WithInput(rec.backend()), WithSleep(noSleep))
	eng.OnDone(done.hook())
	eng.Start()
	eng.Wait()

	if n := rec.count("type:a"); n != 3 {
		t.Errorf("first action ran %d times, want 3", n)
	}
	if n := rec.count("type:b"); n != 3 {
		t.Errorf("second action ran %d times, want 3", n)
	}
	if calls := done.all(); len(calls) != 1 || calls[0] != "true:Completed" {
		t.Errorf("done = %v, want one true:Completed", calls)
	}
}

func TestUntilStoppedIgnoresRepeat(t *testing.T) {
	s := mustScript(t, map[string]any{
		"loop": map[string]any{"repeat": float64(2), "until_stopped": true},
		"actions": []any{
			map[string]any{"type": "type_text", "text": "x"},
		},
	})

	rec := &recorder{}
	var done doneCapture

	eng := New(s, WithInput(rec.backend()), WithSleep(noSleep))
	rec.onCall = func(string) {
		// Well past the repeat count, so completion here proves the
		// count was ignored.
		if rec.count("type:x") >= 10 {
			eng.stop.Store(true)
		}
	}
	eng.OnDone(done.hook())
	eng.Start()
	eng.Wait()

	if n := rec.count("type:x"); n < 10 {
		t.Errorf("action ran %d times, want at least 10", n)
	}
	if calls := done.all(); len(calls) != 1 || calls[0] != "false:Aborted" {
		t.Errorf("done = %v, want one false:Aborted", calls)
	}
}

func TestStartWhileRunningIsNoOp(t *testing.T) {
	s := mustScript(t, map[string]any{
		"actions": []any{
			map[string]any{"type": "type_text", "text": "x"},
		},
	})

	rec := &recorder{}
	var done doneCapture
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once

	rec.onCall = func(string) {
		once.Do(func() { close(started) })
		<-release
	}

	eng := New(s, WithInput(rec.backend()), WithSleep(noSleep))
	eng.OnDone(done.hook())
	eng.Start()
	<-started

	if !eng.IsRunning() {
		t.Fatal("IsRunning() = false while the worker is blocked")
	}
	eng.Start() // must not spawn a second worker
	eng.Start()

	close(release)
	eng.Wait()

	if n := rec.count("type:x"); n != 1 {
		t.Errorf("action ran %d times, want exactly 1", n)
	}
	if calls := done.all(); len(calls) != 1 {
		t.Errorf("done fired %d times, want 1", len(calls))
	}
	if eng.IsRunning() {
		t.Error("IsRunning() = true after Wait")
	}
}

func TestEngineReArms(t *testing.T) {
	s := mustScript(t, map[string]any{
		"actions": []any{
			map[string]any{"type": "type_text", "text": "x"},
		},
	})

	rec := &recorder{}
	var done doneCapture

	eng := New(s, WithInput(rec.backend()), WithSleep(noSleep))
	eng.OnDone(done.hook())

	eng.Start()
	eng.Wait()
	eng.Start()
	eng.Wait()

	if n := rec.count("type:x"); n != 2 {
		t.Errorf("action ran %d times across two runs, want 2", n)
	}
	if calls := done.all(); len(calls) != 2 {
		t.Errorf("done fired %d times, want 2", len(calls))
	}
}

func TestCancelAfterCompletionReArms(t *testing.T) {
	s := mustScript(t, map[string]any{
		"actions": []any{
			map[string]any{"type": "type_text", "text": "x"},
		},
	})

	rec := &recorder{}
	var done doneCapture

	eng := New(s, WithInput(rec.backend()), WithSleep(noSleep))
	eng.OnDone(done.hook())

	eng.Start()
	eng.Wait()
	eng.Cancel() // stale flag must not poison the next run
	eng.Start()
	eng.Wait()

	calls := done.all()
	if len(calls) != 2 || calls[1] != "true:Completed" {
		t.Errorf("done = %v, want the second run to complete", calls)
	}
}

func TestWaitActionUsesConfiguredSleep(t *testing.T) {
	s := mustScript(t, map[string]any{
		"actions": []any{
			map[string]any{"type": "wait", "milliseconds": float64(250)},
			map[string]any{"type": "wait", "milliseconds": float64(0)},
			map[string]any{"type": "launch_process", "command": "app", "wait": 1.5},
		},
	})

	rec := &recorder{}
	var sleeps []time.Duration
	var mu sync.Mutex

	eng := New(s, WithInput(rec.backend()), WithSleep(func(d time.Duration) {
		mu.Lock()
		sleeps = append(sleeps, d)
		mu.Unlock()
	}))
	eng.Start()
	eng.Wait()

	mu.Lock()
	defer mu.Unlock()
	want := []time.Duration{250 * time.Millisecond, 1500 * time.Millisecond}
	if len(sleeps) != len(want) {
		t.Fatalf("sleeps = %v, want %v (zero wait must not sleep)", sleeps, want)
	}
	for i := range want {
		if sleeps[i] != want[i] {
			t.Errorf("sleep[%d] = %v, want %v", i, sleeps[i], want[i])
		}
	}
}

func TestCallbackPanicsAreContained(t *testing.T) {
	s := mustScript(t, map[string]any{
		"actions": []any{
			map[string]any{"type": "type_text", "text": "x"},
		},
	})

	rec := &recorder{}
	eng := New(s, WithInput(rec.backend()), WithSleep(noSleep))
	eng.OnLog(func(string) { panic("log handler blew up") })
	eng.OnDone(func(bool, string) { panic("done handler blew up") })

	eng.Start()
	eng.Wait()

	if eng.IsRunning() {
		t.Error("worker did not unwind cleanly past panicking callbacks")
	}
	if n := rec.count("type:x"); n != 1 {
		t.Errorf("action ran %d times, want 1", n)
	}
}

func TestWaitBeforeStartReturns(t *testing.T) {
	s := mustScript(t, map[string]any{})
	eng := New(s)
	eng.Wait()   // no run yet
	eng.Cancel() // nothing to cancel
	if eng.IsRunning() {
		t.Error("IsRunning() = true before any Start")
	}
}
