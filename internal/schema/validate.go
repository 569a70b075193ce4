package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/meishiscan/cardscan/internal/card"
)

// ParseError reports model output that is not JSON at all. Raw keeps the
// verbatim model text for operator debugging.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("model output is not valid JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ViolationError reports JSON that fails the card contract. Fields maps each
// offending field path to its reason and mirrors the full set of violations,
// not just the first.
type ViolationError struct {
	Raw    string
	Fields map[string]string
}

func (e *ViolationError) Error() string {
	paths := make([]string, 0, len(e.Fields))
	for p := range e.Fields {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return "card schema violation: " + strings.Join(paths, ", ")
}

var (
	compileOnce sync.Once
	cardSchema  *jsonschema.Schema
	compileErr  error
)

func compiled() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		b, err := json.Marshal(BuildCardJSONSchema())
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		c.AssertFormat = true
		if err := c.AddResource("card.json", bytes.NewReader(b)); err != nil {
			compileErr = fmt.Errorf("add schema: %w", err)
			return
		}
		cardSchema, compileErr = c.Compile("card.json")
	})
	return cardSchema, compileErr
}

// Validate runs the two-phase decode on raw model output and returns the
// typed partial record. Failures are *ParseError or *ViolationError; both keep
// the raw text.
func Validate(raw string) (card.Partial, error) {
	cleaned := StripCodeFences(raw)

	var generic any
	if err := json.Unmarshal([]byte(cleaned), &generic); err != nil {
		return card.Partial{}, &ParseError{Raw: raw, Err: err}
	}

	sch, err := compiled()
	if err != nil {
		return card.Partial{}, err
	}
	if err := sch.Validate(generic); err != nil {
		var ve *jsonschema.ValidationError
		fields := map[string]string{}
		if ok := asValidationError(err, &ve); ok {
			collectViolations(ve, fields)
		} else {
			fields["(root)"] = err.Error()
		}
		return card.Partial{}, &ViolationError{Raw: raw, Fields: fields}
	}

	var p card.Partial
	if err := json.Unmarshal([]byte(cleaned), &p); err != nil {
		// schema-valid JSON that still fails the typed decode
		return card.Partial{}, &ViolationError{Raw: raw, Fields: map[string]string{"(root)": err.Error()}}
	}
	return p, nil
}

func asValidationError(err error, out **jsonschema.ValidationError) bool {
	ve, ok := err.(*jsonschema.ValidationError)
	if ok {
		*out = ve
	}
	return ok
}

var quotedName = regexp.MustCompile(`'([^']+)'`)

// collectViolations flattens the validator's cause tree into path -> reason
// entries. "missing properties" failures are expanded to the child paths they
// name, so an absent firstName is reported as basicInfo.firstName rather than
// basicInfo.
func collectViolations(ve *jsonschema.ValidationError, out map[string]string) {
	if len(ve.Causes) == 0 {
		path := pointerToPath(ve.InstanceLocation)
		if names := missingProperties(ve.Message); len(names) > 0 {
			for _, n := range names {
				appendReason(out, joinPath(path, n), "required field is missing")
			}
			return
		}
		appendReason(out, path, ve.Message)
		return
	}
	for _, c := range ve.Causes {
		collectViolations(c, out)
	}
}

func missingProperties(msg string) []string {
	if !strings.HasPrefix(msg, "missing propert") {
		return nil
	}
	var names []string
	for _, m := range quotedName.FindAllStringSubmatch(msg, -1) {
		names = append(names, m[1])
	}
	return names
}

func appendReason(out map[string]string, path, reason string) {
	if prev, ok := out[path]; ok {
		out[path] = prev + "; " + reason
		return
	}
	out[path] = reason
}

func pointerToPath(ptr string) string {
	if ptr == "" || ptr == "/" {
		return "(root)"
	}
	parts := strings.Split(strings.TrimPrefix(ptr, "/"), "/")
	for i, p := range parts {
		p = strings.ReplaceAll(p, "~1", "/")
		parts[i] = strings.ReplaceAll(p, "~0", "~")
	}
	return strings.Join(parts, ".")
}

func joinPath(parent, child string) string {
	if parent == "(root)" {
		return child
	}
	return parent + "." + child
}
