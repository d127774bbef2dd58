package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/openauto/multiclick/pkg/input"
	"github.com/openauto/multiclick/pkg/script"
)

// Pacing constants, tuned against apps that drop rapid synthetic input.
const (
	sendKeysSettle = 50 * time.Millisecond
	typeCharDelay  = 10 * time.Millisecond
	typeTextSettle = 100 * time.Millisecond
)

// runAction executes one action variant. The switch must stay exhaustive
// over script.Kinds(); the fallthrough error exists so a new variant that
// misses a case here fails loudly in tests instead of silently no-opping.
func runAction(ctx *RunContext, action script.Action) error {
	switch a := action.(type) {
	case script.LaunchProcess:
		return runLaunchProcess(ctx, a)
	case script.Wait:
		ctx.SleepMS(a.Milliseconds)
		return nil
	case script.SendKeys:
		return runSendKeys(ctx, a)
	case script.TypeText:
		return runTypeText(ctx, a)
	case script.WindowActivate:
		return runWindowActivate(ctx, a)
	case script.MouseClick:
		return runMouseClick(ctx, a)
	case script.Scroll:
		return runScroll(ctx, a)
	default:
		return fmt.Errorf("no executor for action kind %q", action.Kind())
	}
}

func runLaunchProcess(ctx *RunContext, a script.LaunchProcess) error {
	if a.Command == "" {
		return errors.New("launch_process: command is required")
	}
	if ctx.Input.Launcher == nil {
		return errors.New("launch_process: no process launcher available")
	}
	if err := ctx.Input.Launcher.Spawn(a.Command, a.Args, a.Cwd); err != nil {
		return fmt.Errorf("start process %q: %w", a.Command, err)
	}
	if a.Wait > 0 {
		ctx.SleepSeconds(a.Wait)
	}
	return nil
}

func runSendKeys(ctx *RunContext, a script.SendKeys) error {
	if a.Sequence == "" {
		return nil
	}
	kb := ctx.Input.Keyboard
	if kb == nil {
		return fmt.Errorf("send_keys: %w", input.ErrNoKeyboard)
	}
	for _, token := range input.TokenizeSequence(a.Sequence) {
		if key, ok := input.NamedKey(token); ok {
			if err := kb.Tap(key); err != nil {
				return fmt.Errorf("send_keys: tap %s: %w", key, err)
			}
			continue
		}
		// Unmapped tokens degrade to literal character injection.
		if err := kb.Type(token); err != nil {
			return fmt.Errorf("send_keys: type %q: %w", token, err)
		}
	}
	// Give the target app a moment before the next action.
	ctx.Sleep(sendKeysSettle)
	return nil
}

func runTypeText(ctx *RunContext, a script.TypeText) error {
	if a.Text == "" {
		return nil
	}
	kb := ctx.Input.Keyboard
	if kb == nil {
		return fmt.Errorf("type_text: %w", input.ErrNoKeyboard)
	}
	for _, ch := range a.Text {
		if err := kb.Type(string(ch)); err != nil {
			return fmt.Errorf("type_text: type %q: %w", string(ch), err)
		}
		ctx.Sleep(typeCharDelay)
	}
	ctx.Sleep(typeTextSettle)
	return nil
}

// runWindowActivate never fails the run: activation is best-effort and a
// miss is only worth a log line.
func runWindowActivate(ctx *RunContext, a script.WindowActivate) error {
	if a.Title == "" {
		return nil
	}
	w := ctx.Input.Window
	if w == nil {
		ctx.Log("window_activate: not supported by this input backend")
		return nil
	}
	if err := w.Activate(a.Title); err != nil {
		ctx.Logf("window_activate failed: %v", err)
	}
	return nil
}

func runMouseClick(ctx *RunContext, a script.MouseClick) error {
	m := ctx.Input.Mouse
	if m == nil {
		return fmt.Errorf("mouse_click: %w", input.ErrNoMouse)
	}
	clicks := a.Clicks
	if clicks < 1 {
		clicks = 1
	}
	ctx.Logf("mouse_click: x=%s y=%s button=%s clicks=%d",
		coord(a.X), coord(a.Y), a.Button, clicks)

	if a.X != nil && a.Y != nil {
		m.Move(*a.X, *a.Y)
	}
	for i := 0; i < clicks; i++ {
		if err := m.Click(a.Button); err != nil {
			return fmt.Errorf("mouse_click: %w", err)
		}
	}
	return nil
}

func runScroll(ctx *RunContext, a script.Scroll) error {
	m := ctx.Input.Mouse
	if m == nil {
		return fmt.Errorf("scroll: %w", input.ErrNoMouse)
	}
	ctx.Logf("scroll: amount=%d horizontal=%v", a.Amount, a.Horizontal)
	var err error
	if a.Horizontal {
		err = m.Scroll(a.Amount, 0)
	} else {
		err = m.Scroll(0, a.Amount)
	}
	if err != nil {
		return fmt.Errorf("scroll: %w", err)
	}
	return nil
}

func coord(v *int) string {
	if v == nil {
		return "cursor"
	}
	return fmt.Sprintf("%d", *v)
}
