package script

// Encode renders an action back into its document form. Fields that equal
// their parse-time defaults are emitted anyway when the default is not the
// zero value (button, clicks), so ParseAction(Encode(a)) reproduces a field
// for field.
func Encode(a Action) map[string]any {
	switch v := a.(type) {
	case LaunchProcess:
		doc := map[string]any{"type": v.Kind(), "command": v.Command}
		if len(v.Args) > 0 {
			args := make([]any, len(v.Args))
			for i, arg := range v.Args {
				args[i] = arg
			}
			doc["args"] = args
		}
		if v.Cwd != "" {
			doc["cwd"] = v.Cwd
		}
		if v.Wait != 0 {
			doc["wait"] = v.Wait
		}
		return doc
	case Wait:
		return map[string]any{"type": v.Kind(), "milliseconds": v.Milliseconds}
	case SendKeys:
		return map[string]any{"type": v.Kind(), "sequence": v.Sequence}
	case TypeText:
		return map[string]any{"type": v.Kind(), "text": v.Text}
	case WindowActivate:
		return map[string]any{"type": v.Kind(), "title": v.Title}
	case MouseClick:
		doc := map[string]any{"type": v.Kind(), "button": v.Button, "clicks": v.Clicks}
		if v.X != nil {
			doc["x"] = *v.X
		}
		if v.Y != nil {
			doc["y"] = *v.Y
		}
		return doc
	case Scroll:
		return map[string]any{"type": v.Kind(), "amount": v.Amount, "horizontal": v.Horizontal}
	default:
		return nil
	}
}
