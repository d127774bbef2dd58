package input

import "strings"

// namedKeys maps bracketed send_keys tokens to backend key names.
// Tokens without a mapping are typed as literal characters.
var namedKeys = map[string]string{
	"<ENTER>":     "enter",
	"<TAB>":       "tab",
	"<ESC>":       "esc",
	"<BACKSPACE>": "backspace",
	"<DELETE>":    "delete",
	"<HOME>":      "home",
	"<END>":       "end",
	"<PAGE_UP>":   "pageup",
	"<PAGE_DOWN>": "pagedown",
	"<UP>":        "up",
	"<DOWN>":      "down",
	"<LEFT>":      "left",
	"<RIGHT>":     "right",
	"<SPACE>":     "space",
}

// NamedKey resolves a bracketed token like "<ENTER>" to its backend key
// name. ok is false for unmapped tokens, which callers type literally.
func NamedKey(token string) (key string, ok bool) {
	key, ok = namedKeys[strings.ToUpper(token)]
	return key, ok
}

// TokenizeSequence splits a send_keys sequence into units: bracketed
// tokens like <ENTER> stay whole, literal runs are split on spaces.
//
//	"login<TAB>secret pass<ENTER>" -> ["login", "<TAB>", "secret", "pass", "<ENTER>"]
func TokenizeSequence(sequence string) []string {
	var parts []string
	var buf strings.Builder
	inTag := false
	for _, ch := range sequence {
		switch {
		case ch == '<':
			if buf.Len() > 0 {
				parts = append(parts, buf.String())
				buf.Reset()
			}
			inTag = true
			buf.WriteRune(ch)
		case ch == '>' && inTag:
			buf.WriteRune(ch)
			parts = append(parts, buf.String())
			buf.Reset()
			inTag = false
		default:
			buf.WriteRune(ch)
		}
	}
	if buf.Len() > 0 {
		parts = append(parts, buf.String())
	}

	// Split literal runs on spaces; bracketed tokens pass through whole.
	var out []string
	for _, part := range parts {
		if strings.HasPrefix(part, "<") && strings.HasSuffix(part, ">") {
			out = append(out, part)
			continue
		}
		for _, word := range strings.Fields(part) {
			out = append(out, word)
		}
	}
	return out
}
