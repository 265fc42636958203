package analysis

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
)

// Mode selects which top-level fields Decode requires.
type Mode int

const (
	// RequireAll demands every field.  Used for caller-supplied reports.
	RequireAll Mode = iota

	// RequireContent demands only the model-authored fields.  The identity
	// fields may be absent because the pipeline stamps them afterwards; when
	// present they must still be strings.
	RequireContent
)

var identityFields = map[string]bool{
	"analysis_id":   true,
	"patent_id":     true,
	"company_name":  true,
	"analysis_date": true,
}

// ShapeError describes the first structural mismatch found in a report.
type ShapeError struct {
	Path    string
	Problem string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Problem)
}

var (
	shapeOnce    sync.Once
	shapeSchemas map[Mode]*jsonschema.Schema
	shapeErr     error
)

// Decode checks data against the Result layout and decodes it.  Only JSON
// types and presence are checked; values such as scores and likelihood labels
// pass through unchanged.  Unknown fields are ignored.
func Decode(data []byte, mode Mode) (Result, error) {
	var r Result

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return r, err
	}

	shapeOnce.Do(func() { shapeSchemas, shapeErr = compileShapes() })
	if shapeErr != nil {
		return r, shapeErr
	}
	sch, ok := shapeSchemas[mode]
	if !ok {
		return r, fmt.Errorf("analysis: unknown decode mode %d", mode)
	}

	if err := sch.Validate(inst); err != nil {
		return r, shapeErrorOf(err, inst)
	}

	if err := json.Unmarshal(data, &r); err != nil {
		return r, err
	}
	if r.TopInfringingProducts == nil {
		r.TopInfringingProducts = []ProductInfringement{}
	}
	return r, nil
}

// compileShapes derives the structural schemas from JSONSchema by dropping
// value constraints and closed-object rules.
func compileShapes() (map[Mode]*jsonschema.Schema, error) {
	raw, err := json.Marshal(JSONSchema())
	if err != nil {
		return nil, err
	}

	out := make(map[Mode]*jsonschema.Schema, 2)
	for _, mode := range []Mode{RequireAll, RequireContent} {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			return nil, err
		}
		structural(doc)
		if mode == RequireContent {
			relaxIdentity(doc)
		}

		url := fmt.Sprintf("result-%d.json", mode)
		c := jsonschema.NewCompiler()
		if err := c.AddResource(url, doc); err != nil {
			return nil, err
		}
		sch, err := c.Compile(url)
		if err != nil {
			return nil, err
		}
		out[mode] = sch
	}
	return out, nil
}

func structural(v any) {
	switch node := v.(type) {
	case map[string]any:
		for _, key := range []string{"$id", "$schema", "enum", "additionalProperties"} {
			delete(node, key)
		}
		for _, child := range node {
			structural(child)
		}
	case []any:
		for _, child := range node {
			structural(child)
		}
	}
}

func relaxIdentity(doc any) {
	root, ok := doc.(map[string]any)
	if !ok {
		return
	}
	required, _ := root["required"].([]any)
	kept := make([]any, 0, len(required))
	for _, name := range required {
		if s, _ := name.(string); !identityFields[s] {
			kept = append(kept, name)
		}
	}
	root["required"] = kept
}

// shapeErrorOf reduces a validation failure to its first leaf, ordered by
// instance path.
func shapeErrorOf(err error, inst any) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}

	var shapes []*ShapeError
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			shapes = append(shapes, leafShape(e, inst))
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)
	if len(shapes) == 0 {
		return &ShapeError{Path: "$", Problem: ve.Error()}
	}

	sort.SliceStable(shapes, func(i, j int) bool { return shapes[i].Path < shapes[j].Path })
	return shapes[0]
}

func leafShape(e *jsonschema.ValidationError, inst any) *ShapeError {
	path := instancePath(inst, e.InstanceLocation)
	switch k := e.ErrorKind.(type) {
	case *kind.Required:
		if len(k.Missing) > 0 {
			return &ShapeError{Path: path + "." + k.Missing[0], Problem: "required field is missing"}
		}
	case *kind.Type:
		return &ShapeError{Path: path, Problem: fmt.Sprintf("expected %s, got %s", strings.Join(k.Want, " or "), k.Got)}
	}
	return &ShapeError{Path: path, Problem: "violates " + strings.Join(e.ErrorKind.KeywordPath(), "/")}
}

// instancePath renders a location as $.field[index] by walking the instance.
func instancePath(inst any, location []string) string {
	var b strings.Builder
	b.WriteString("$")
	cur := inst
	for _, tok := range location {
		switch node := cur.(type) {
		case []any:
			b.WriteString("[" + tok + "]")
			if i, err := strconv.Atoi(tok); err == nil && i >= 0 && i < len(node) {
				cur = node[i]
			} else {
				cur = nil
			}
		case map[string]any:
			b.WriteString("." + tok)
			cur = node[tok]
		default:
			b.WriteString("." + tok)
			cur = nil
		}
	}
	return b.String()
}

//Personal.AI order the ending
