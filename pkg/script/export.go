package script

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Document mirrors the on-disk script shape for JSON Schema generation and
// the strict validation path. The execution parser (Parse) works on generic
// maps instead so that it can stay tolerant of legacy documents.
type Document struct {
	Name         string      `json:"name,omitempty"`
	Actions      []ActionDoc `json:"actions" jsonschema:"required"`
	Loop         *LoopDoc    `json:"loop,omitempty"`
	Repeat       *int        `json:"repeat,omitempty" jsonschema:"minimum=1"`
	UntilStopped *bool       `json:"until_stopped,omitempty"`
}

// LoopDoc is the explicit loop block; it takes precedence over the
// top-level repeat/until_stopped shorthands.
type LoopDoc struct {
	Repeat       *int  `json:"repeat,omitempty" jsonschema:"minimum=1"`
	UntilStopped *bool `json:"until_stopped,omitempty"`
}

// ActionDoc is the union of all per-kind fields; which ones apply depends
// on Type. Kept flat because that is how the documents are written.
type ActionDoc struct {
	Type string `json:"type" jsonschema:"required,enum=launch_process,enum=wait,enum=send_keys,enum=type_text,enum=window_activate,enum=mouse_click,enum=scroll"`

	// launch_process
	Command string   `json:"command,omitempty"`
	Args    []string `json:"args,omitempty"`
	Cwd     string   `json:"cwd,omitempty"`
	Wait    *float64 `json:"wait,omitempty" jsonschema:"minimum=0"`

	// wait
	Milliseconds *int `json:"milliseconds,omitempty"`

	// send_keys
	Sequence string `json:"sequence,omitempty"`

	// type_text
	Text string `json:"text,omitempty"`

	// window_activate
	Title string `json:"title,omitempty"`

	// mouse_click
	X      *int   `json:"x,omitempty"`
	Y      *int   `json:"y,omitempty"`
	Button string `json:"button,omitempty" jsonschema:"enum=left,enum=right,enum=middle"`
	Clicks *int   `json:"clicks,omitempty" jsonschema:"minimum=1"`

	// scroll
	Amount     *int  `json:"amount,omitempty"`
	Horizontal *bool `json:"horizontal,omitempty"`
}

// GenerateJSONSchema produces a JSON Schema Draft 2020-12 document from the
// Go Document struct using invopop/jsonschema.
func GenerateJSONSchema() ([]byte, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = false

	s := r.Reflect(&Document{})
	s.ID = "https://github.com/openauto/multiclick/schemas/script-v0.json"
	s.Title = "Multiclick Automation Script v0"
	s.Description = "Schema for multiclick automation script documents (Draft 2020-12)"

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return data, nil
}
