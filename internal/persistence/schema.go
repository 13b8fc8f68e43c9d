package persistence

import (
	"bytes"
	"encoding/json"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// snapshotSchema is the structural contract a snapshot document must meet
// before decoding. It guards shape, not semantics: version must be a
// semver-ish string, the collections must be arrays, the globals numbers.
const snapshotSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["version", "agents", "workplaces"],
	"properties": {
		"version": {"type": "string", "pattern": "^[0-9]+\\.[0-9]+(\\.[0-9]+)?$"},
		"savedAt": {"type": "string"},
		"agents": {"type": "array", "items": {"type": "object", "required": ["id", "name"]}},
		"workplaces": {"type": "array", "items": {"type": "object", "required": ["id"]}},
		"townTreasury": {"type": "integer"},
		"clockMinutes": {"type": "number", "minimum": 0, "exclusiveMaximum": 1440},
		"weekday": {"type": "integer", "minimum": 0, "maximum": 6},
		"elapsedDays": {"type": "integer", "minimum": 0},
		"speedMultiplier": {"type": "number"},
		"lastImmigrationDay": {"type": "integer", "minimum": 0},
		"townName": {"type": "string"},
		"customResidentNames": {"type": "array", "items": {"type": "string"}},
		"observerName": {"type": "string"}
	}
}`

var compiledSchema = jsonschema.MustCompileString("snapshot.json", snapshotSchema)

// validateSchema checks raw snapshot bytes against the structural schema.
func validateSchema(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return err
	}
	return compiledSchema.Validate(doc)
}
