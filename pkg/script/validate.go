package script

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sjsonschema "github.com/santhosh-tekuri/jsonschema/v6"
)

// ValidationError is a single validation finding with location context.
type ValidationError struct {
	Phase    string `json:"phase"` // structural, semantic, domain
	Path     string `json:"path"`  // JSON-path-like location (e.g., "actions[2]")
	Message  string `json:"message"`
	Severity string `json:"severity"` // error, warning
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Phase, e.Path, e.Message)
}

// ValidateFile runs the full 3-phase validation pipeline on a script file.
// Phase 1: Structural (document decodes at all)
// Phase 2: Semantic (JSON Schema generated from the Document struct)
// Phase 3: Domain (custom rules the schema cannot express)
// Warnings ride along with a "warning" severity; the parsed script is
// returned whenever phase 1 succeeds so callers can still inspect it.
func ValidateFile(path string) (*Script, []*ValidationError) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, []*ValidationError{{
			Phase:    "structural",
			Message:  err.Error(),
			Severity: "error",
		}}
	}
	return Validate(data, filepath.Ext(path))
}

// Validate runs the pipeline on raw document bytes; ext picks the decoder.
func Validate(data []byte, ext string) (*Script, []*ValidationError) {
	var all []*ValidationError

	doc, err := decodeDocument(data, ext)
	if err != nil {
		return nil, []*ValidationError{{
			Phase:    "structural",
			Message:  err.Error(),
			Severity: "error",
		}}
	}

	all = append(all, validateSemantic(doc)...)
	s, domainErrs := validateDomain(doc)
	all = append(all, domainErrs...)

	return s, all
}

// validateSemantic checks the document against the generated JSON Schema.
func validateSemantic(doc map[string]any) []*ValidationError {
	schemaJSON, err := GenerateJSONSchema()
	if err != nil {
		return []*ValidationError{{
			Phase:    "semantic",
			Message:  fmt.Sprintf("generate schema: %v", err),
			Severity: "error",
		}}
	}

	var schemaDoc any
	if err := json.Unmarshal(schemaJSON, &schemaDoc); err != nil {
		return []*ValidationError{{
			Phase:    "semantic",
			Message:  fmt.Sprintf("unmarshal schema: %v", err),
			Severity: "error",
		}}
	}

	c := sjsonschema.NewCompiler()
	if err := c.AddResource("script-v0.json", schemaDoc); err != nil {
		return []*ValidationError{{
			Phase:    "semantic",
			Message:  fmt.Sprintf("add schema resource: %v", err),
			Severity: "error",
		}}
	}
	sch, err := c.Compile("script-v0.json")
	if err != nil {
		return []*ValidationError{{
			Phase:    "semantic",
			Message:  fmt.Sprintf("compile schema: %v", err),
			Severity: "error",
		}}
	}

	// Round-trip through JSON so yaml-decoded documents validate with the
	// same value types as json-decoded ones.
	normalized, err := normalizeForSchema(doc)
	if err != nil {
		return []*ValidationError{{
			Phase:    "semantic",
			Message:  fmt.Sprintf("normalize document: %v", err),
			Severity: "error",
		}}
	}

	if err := sch.Validate(normalized); err != nil {
		var ve *sjsonschema.ValidationError
		if errors.As(err, &ve) {
			var errs []*ValidationError
			for _, cause := range flattenValidationErrors(ve) {
				errs = append(errs, &ValidationError{
					Phase:    "semantic",
					Path:     strings.Join(cause.InstanceLocation, "/"),
					Message:  fmt.Sprintf("%v", cause.ErrorKind),
					Severity: "error",
				})
			}
			return errs
		}
		return []*ValidationError{{
			Phase:    "semantic",
			Message:  err.Error(),
			Severity: "error",
		}}
	}
	return nil
}

func normalizeForSchema(doc map[string]any) (any, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// flattenValidationErrors recursively collects all leaf validation errors.
func flattenValidationErrors(ve *sjsonschema.ValidationError) []*sjsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*sjsonschema.ValidationError{ve}
	}
	var flat []*sjsonschema.ValidationError
	for _, cause := range ve.Causes {
		flat = append(flat, flattenValidationErrors(cause)...)
	}
	return flat
}

// validateDomain applies the rules the schema cannot express, then parses
// the script with the tolerant execution parser.
func validateDomain(doc map[string]any) (*Script, []*ValidationError) {
	var errs []*ValidationError

	if rawList, ok := doc["actions"].([]any); ok {
		for i, raw := range rawList {
			path := fmt.Sprintf("actions[%d]", i)
			entry, ok := asMap(raw)
			if !ok {
				errs = append(errs, &ValidationError{
					Phase:    "domain",
					Path:     path,
					Message:  "entry is not a mapping and will be ignored at run time",
					Severity: "warning",
				})
				continue
			}

			action, err := ParseAction(entry)
			if err != nil {
				errs = append(errs, &ValidationError{
					Phase:    "domain",
					Path:     path,
					Message:  err.Error(),
					Severity: "error",
				})
				continue
			}

			switch a := action.(type) {
			case LaunchProcess:
				if a.Command == "" {
					errs = append(errs, &ValidationError{
						Phase:    "domain",
						Path:     path + ".command",
						Message:  "launch_process requires a non-empty command",
						Severity: "error",
					})
				}
				if a.Wait < 0 {
					errs = append(errs, &ValidationError{
						Phase:    "domain",
						Path:     path + ".wait",
						Message:  "negative wait is treated as 0",
						Severity: "warning",
					})
				}
			case MouseClick:
				if raw := asString(entry["button"]); raw != "" && raw != a.Button {
					errs = append(errs, &ValidationError{
						Phase:    "domain",
						Path:     path + ".button",
						Message:  fmt.Sprintf("unknown button %q falls back to \"left\"", raw),
						Severity: "warning",
					})
				}
				if (a.X == nil) != (a.Y == nil) {
					errs = append(errs, &ValidationError{
						Phase:    "domain",
						Path:     path,
						Message:  "only one of x/y given; the click will use the current cursor position",
						Severity: "warning",
					})
				}
			}
		}
	}

	s, err := Parse(doc)
	if err != nil {
		// Unknown action types were already reported per entry above.
		var already bool
		for _, e := range errs {
			if e.Severity == "error" {
				already = true
				break
			}
		}
		if !already {
			errs = append(errs, &ValidationError{
				Phase:    "domain",
				Message:  err.Error(),
				Severity: "error",
			})
		}
		return nil, errs
	}

	if s.Loop.UntilStopped && asIntDefault(loopSource(doc)["repeat"], 0) > 0 {
		errs = append(errs, &ValidationError{
			Phase:    "domain",
			Path:     "loop.repeat",
			Message:  "repeat is ignored because until_stopped is set",
			Severity: "warning",
		})
	}

	return s, errs
}

func loopSource(doc map[string]any) map[string]any {
	if block, ok := asMap(doc["loop"]); ok {
		return block
	}
	return doc
}
