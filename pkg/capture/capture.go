// Package capture grabs click positions from a global mouse hook.
package capture

import (
	"errors"
	"time"

	"github.com/go-vgo/robotgo"
	hook "github.com/robotn/gohook"
)

// ErrTimeout is returned when no click arrives within the wait window.
var ErrTimeout = errors.New("timed out waiting for a click")

type point struct {
	X int
	Y int
}

// WaitForClick blocks until the user presses a mouse button anywhere on
// screen and returns the cursor position at that moment. timeout <= 0
// waits indefinitely.
func WaitForClick(timeout time.Duration) (x, y int, err error) {
	clicks := make(chan point, 1)
	stop := make(chan struct{})

	go func() {
		events := hook.Start()
		defer hook.End()
		for {
			select {
			case ev := <-events:
				if ev.Kind == hook.MouseDown {
					px, py := robotgo.Location()
					select {
					case clicks <- point{X: px, Y: py}:
					default:
					}
					return
				}
			case <-stop:
				return
			}
		}
	}()

	var timeoutC <-chan time.Time
	if timeout > 0 {
		timeoutC = time.After(timeout)
	}

	select {
	case pos := <-clicks:
		return pos.X, pos.Y, nil
	case <-timeoutC:
		close(stop)
		return 0, 0, ErrTimeout
	}
}
