package analysis

import (
	"sync"

	"github.com/eino-contrib/jsonschema"
)

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
)

// JSONSchema returns the JSON schema of Result used to constrain model output.
// Nested types are inlined and every field is required, which strict
// structured-output modes demand.  Callers must not mutate the result.
func JSONSchema() *jsonschema.Schema {
	schemaOnce.Do(func() {
		r := &jsonschema.Reflector{
			DoNotReference: true,
			ExpandedStruct: true,
		}
		schema = r.Reflect(&Result{})
		schema.Version = ""
	})
	return schema
}

//Personal.AI order the ending
