// Package input abstracts OS input injection behind small interfaces so
// the engines can be driven by fakes in tests and by robotgo in production.
package input

import "errors"

var (
	// ErrNoKeyboard is returned when key injection is requested but no
	// keyboard backend is available at all.
	ErrNoKeyboard = errors.New("no keyboard backend available")

	// ErrNoMouse is the pointer-input counterpart of ErrNoKeyboard.
	ErrNoMouse = errors.New("no mouse backend available")
)

// Keyboard injects keystrokes into the focused window.
type Keyboard interface {
	// Tap presses and releases a named key ("enter", "tab", "f6", ...).
	Tap(key string) error
	// Type injects literal characters.
	Type(text string) error
}

// Mouse injects pointer input.
type Mouse interface {
	Move(x, y int)
	// Click presses button ("left", "right" or "middle") once.
	Click(button string) error
	// DoubleClick issues a double press of button.
	DoubleClick(button string) error
	// Scroll moves the wheel: positive dy scrolls up, positive dx right.
	Scroll(dx, dy int) error
	// Position reports the current cursor location.
	Position() (x, y int)
}

// Windower brings windows to the foreground.
type Windower interface {
	// Activate foregrounds a window whose title matches title, treated as
	// a case-insensitive regular expression with a substring fallback.
	Activate(title string) error
}

// Launcher spawns processes detached from the caller.
type Launcher interface {
	Spawn(command string, args []string, dir string) error
}

// Backend bundles the injection capabilities handed to a run. Nil fields
// mean the capability is absent on this platform or build.
type Backend struct {
	Keyboard Keyboard
	Mouse    Mouse
	Window   Windower
	Launcher Launcher
}

// System returns the real OS-backed backend.
func System() *Backend {
	return &Backend{
		Keyboard: systemKeyboard{},
		Mouse:    systemMouse{},
		Window:   systemWindow{},
		Launcher: execLauncher{},
	}
}
