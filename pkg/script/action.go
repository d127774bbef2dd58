// Package script defines the automation script document model: the seven
// action variants, tolerant map-based parsing with default filling, loop
// configuration, and JSON/YAML loading with schema validation.
package script

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownActionType is returned (wrapped with the offending type string)
// when a document names an action kind the parser does not know.
var ErrUnknownActionType = errors.New("unknown action type")

// Action is the sealed interface over the seven action variants. Values are
// fully specified at parse time and never mutated afterwards; execution
// lives in pkg/engine, which type-switches over the concrete variants.
type Action interface {
	// Kind returns the document type tag, e.g. "mouse_click".
	Kind() string

	isAction()
}

// Kinds lists every supported action type tag. The parser and the engine
// dispatcher must both cover exactly this set; the exhaustiveness tests in
// both packages iterate it.
func Kinds() []string {
	return []string{
		"launch_process",
		"wait",
		"send_keys",
		"type_text",
		"window_activate",
		"mouse_click",
		"scroll",
	}
}

// LaunchProcess starts a command detached from the script run. Wait is a
// post-spawn pause in seconds; the child is never joined.
type LaunchProcess struct {
	Command string
	Args    []string
	Cwd     string
	Wait    float64
}

func (LaunchProcess) Kind() string { return "launch_process" }
func (LaunchProcess) isAction()    {}

// Wait pauses the script for a number of milliseconds. Zero or negative
// values are a no-op.
type Wait struct {
	Milliseconds int
}

func (Wait) Kind() string { return "wait" }
func (Wait) isAction()    {}

// SendKeys injects a key sequence. Bracketed tokens like <ENTER> name
// special keys; everything else is typed literally.
type SendKeys struct {
	Sequence string
}

func (SendKeys) Kind() string { return "send_keys" }
func (SendKeys) isAction()    {}

// TypeText injects literal text character by character.
type TypeText struct {
	Text string
}

func (TypeText) Kind() string { return "type_text" }
func (TypeText) isAction()    {}

// WindowActivate brings a window whose title matches Title (regex, falling
// back to substring) to the foreground. Best-effort: failure never aborts
// the script.
type WindowActivate struct {
	Title string
}

func (WindowActivate) Kind() string { return "window_activate" }
func (WindowActivate) isAction()    {}

// MouseClick presses a mouse button Clicks times. X and Y are optional:
// nil means "click at the current cursor position", which is why they are
// pointers rather than zero-valued ints.
type MouseClick struct {
	X      *int
	Y      *int
	Button string // left, right or middle
	Clicks int
}

func (MouseClick) Kind() string { return "mouse_click" }
func (MouseClick) isAction()    {}

// Scroll issues a wheel scroll. Positive Amount scrolls up, or right when
// Horizontal is set; negative scrolls the other way.
type Scroll struct {
	Amount     int
	Horizontal bool
}

func (Scroll) Kind() string { return "scroll" }
func (Scroll) isAction()    {}

// ParseAction builds exactly one action variant from a generic key/value
// document. Missing fields take their documented defaults; an unrecognized
// type aborts with ErrUnknownActionType so script construction fails fast.
func ParseAction(raw map[string]any) (Action, error) {
	kind := strings.ToLower(strings.TrimSpace(asString(raw["type"])))
	switch kind {
	case "launch_process":
		return LaunchProcess{
			Command: asString(raw["command"]),
			Args:    asStringSlice(raw["args"]),
			Cwd:     asString(raw["cwd"]),
			Wait:    asFloat(raw["wait"]),
		}, nil
	case "wait":
		return Wait{Milliseconds: asInt(raw["milliseconds"])}, nil
	case "send_keys":
		return SendKeys{Sequence: asString(raw["sequence"])}, nil
	case "type_text":
		return TypeText{Text: asString(raw["text"])}, nil
	case "window_activate":
		return WindowActivate{Title: asString(raw["title"])}, nil
	case "mouse_click":
		return MouseClick{
			X:      asOptionalInt(raw["x"]),
			Y:      asOptionalInt(raw["y"]),
			Button: normalizeButton(asString(raw["button"])),
			Clicks: asIntDefault(raw["clicks"], 1),
		}, nil
	case "scroll":
		return Scroll{
			Amount:     asInt(raw["amount"]),
			Horizontal: asBool(raw["horizontal"]),
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownActionType, kind)
	}
}

// normalizeButton maps anything outside the supported set back to "left".
func normalizeButton(b string) string {
	switch b {
	case "left", "right", "middle":
		return b
	default:
		return "left"
	}
}

// Coercion helpers. Documents arrive through encoding/json (numbers as
// float64) or yaml.v3 (numbers as int/float64), and scripts in the wild
// quote numeric fields, so numeric strings are accepted too.

func asString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprintf("%v", v)
	}
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func asInt(v any) int {
	return int(asFloat(v))
}

func asIntDefault(v any, def int) int {
	if v == nil {
		return def
	}
	return asInt(v)
}

// asOptionalInt distinguishes an absent coordinate from an explicit zero.
func asOptionalInt(v any) *int {
	if v == nil {
		return nil
	}
	n := asInt(v)
	return &n
}

func asBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return strings.EqualFold(strings.TrimSpace(b), "true")
	default:
		return false
	}
}

func asStringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, asString(item))
	}
	return out
}
