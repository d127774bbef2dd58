package input

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-vgo/robotgo"
)

type systemKeyboard struct{}

func (systemKeyboard) Tap(key string) error {
	return robotgo.KeyTap(key)
}

func (systemKeyboard) Type(text string) error {
	robotgo.TypeStr(text)
	return nil
}

type systemMouse struct{}

func (systemMouse) Move(x, y int) {
	robotgo.Move(x, y)
}

func (systemMouse) Click(button string) error {
	robotgo.Click(robotgoButton(button), false)
	return nil
}

func (systemMouse) DoubleClick(button string) error {
	robotgo.Click(robotgoButton(button), true)
	return nil
}

func (systemMouse) Scroll(dx, dy int) error {
	robotgo.Scroll(dx, dy)
	return nil
}

func (systemMouse) Position() (int, int) {
	return robotgo.Location()
}

// robotgoButton translates our button names to robotgo's, which calls the
// middle button "center".
func robotgoButton(button string) string {
	switch button {
	case "right":
		return "right"
	case "middle":
		return "center"
	default:
		return "left"
	}
}

type systemWindow struct{}

// Activate foregrounds the first process whose name matches title. On
// Windows a native FindWindow/SetForegroundWindow pass runs first because
// it matches actual window titles, not just process names.
func (systemWindow) Activate(title string) error {
	if title == "" {
		return nil
	}
	if err := activateNative(title); err == nil {
		return nil
	}

	match := titleMatcher(title)
	procs, err := robotgo.Process()
	if err != nil {
		return fmt.Errorf("list processes: %w", err)
	}
	for _, proc := range procs {
		if match(proc.Name) {
			if err := robotgo.ActivePid(proc.Pid); err != nil {
				return fmt.Errorf("activate %q (pid %d): %w", proc.Name, proc.Pid, err)
			}
			return nil
		}
	}
	return fmt.Errorf("no window or process matching %q", title)
}

// titleMatcher compiles title as a case-insensitive regexp, falling back
// to a substring match when the pattern does not compile.
func titleMatcher(title string) func(string) bool {
	re, err := regexp.Compile("(?i)" + title)
	if err == nil {
		return re.MatchString
	}
	lower := strings.ToLower(title)
	return func(s string) bool {
		return strings.Contains(strings.ToLower(s), lower)
	}
}
