package script

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultName is used when a document carries no "name" field.
const DefaultName = "Unnamed Script"

// LoopConfig controls how many passes over the action list a run makes.
// UntilStopped takes precedence over Repeat: when set, the script loops
// until cancelled and the repeat count is ignored entirely.
type LoopConfig struct {
	Repeat       int
	UntilStopped bool
}

// Iterations resolves the loop configuration into what the engine's run
// loop consumes: a pass count (>= 1) and whether to ignore it and loop
// until the cancel flag is raised.
func (l LoopConfig) Iterations() (repeats int, untilStopped bool) {
	if l.UntilStopped {
		return 1, true
	}
	if l.Repeat < 1 {
		return 1, false
	}
	return l.Repeat, false
}

// Script is an ordered action sequence plus loop configuration. Built once
// from a document and owned read-only by the engine executing it.
type Script struct {
	Name    string
	Actions []Action
	Loop    LoopConfig
}

// Parse builds a Script from a generic document.
//
// Entries in "actions" that are not mappings are silently skipped; scripts
// written for earlier releases rely on that, and `multiclick validate`
// reports them. An action with an unknown type aborts parsing — no partial
// script is ever returned.
//
// Loop resolution: an explicit "loop" block wins; otherwise the top-level
// "repeat" / "until_stopped" shorthands apply. Repeat counts are floored
// to 1, and until_stopped overrides any repeat count.
func Parse(doc map[string]any) (*Script, error) {
	name := DefaultName
	if v, ok := doc["name"]; ok && asString(v) != "" {
		name = asString(v)
	}

	var actions []Action
	if rawList, ok := doc["actions"].([]any); ok {
		for _, raw := range rawList {
			entry, ok := asMap(raw)
			if !ok {
				continue
			}
			action, err := ParseAction(entry)
			if err != nil {
				return nil, err
			}
			actions = append(actions, action)
		}
	}

	return &Script{
		Name:    name,
		Actions: actions,
		Loop:    parseLoop(doc),
	}, nil
}

func parseLoop(doc map[string]any) LoopConfig {
	source := doc
	if block, ok := asMap(doc["loop"]); ok {
		source = block
	}

	cfg := LoopConfig{
		Repeat:       asIntDefault(source["repeat"], 1),
		UntilStopped: asBool(source["until_stopped"]),
	}
	if cfg.Repeat < 1 {
		cfg.Repeat = 1
	}
	return cfg
}

// asMap accepts both map[string]any (json, yaml.v3 with string keys) and
// map[any]any (older yaml decoders).
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[asString(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}

// LoadFile reads and parses a script document. The extension picks the
// decoder: .yaml/.yml go through yaml.v3, everything else through
// encoding/json.
func LoadFile(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return Load(data, filepath.Ext(path))
}

// Load parses raw document bytes. ext selects the decoder as in LoadFile.
func Load(data []byte, ext string) (*Script, error) {
	doc, err := decodeDocument(data, ext)
	if err != nil {
		return nil, err
	}
	return Parse(doc)
}

func decodeDocument(data []byte, ext string) (map[string]any, error) {
	var doc map[string]any
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode yaml script: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode json script: %w", err)
		}
	}
	return doc, nil
}
