package persistence

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const documentSchemaText = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["totalFood", "totalWood", "totalStone", "citizens", "buildings"],
  "properties": {
    "totalFood": {"type": "integer"},
    "totalWood": {"type": "integer"},
    "totalStone": {"type": "integer"},
    "citizens": {
      "type": "array",
      "items": {"$ref": "#/$defs/citizen"}
    },
    "buildings": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["type", "name"],
        "properties": {
          "type": {"type": "string"},
          "name": {"type": "string"},
          "maxWorkers": {"type": "integer"},
          "workers": {
            "type": "array",
            "items": {"$ref": "#/$defs/citizen"}
          }
        }
      }
    }
  },
  "$defs": {
    "citizen": {
      "type": "object",
      "required": ["name", "isWorking"],
      "properties": {
        "name": {"type": "string"},
        "isWorking": {"type": "boolean"}
      }
    }
  }
}`

var documentSchema = jsonschema.MustCompileString("savedGame.schema.json", documentSchemaText)

// validate checks raw JSON against the save document schema. Any failure,
// including malformed JSON, wraps ErrParse.
func validate(data []byte) error {
	var v interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("%w: %v", ErrParse, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("%w: invalid character after top-level value", ErrParse)
	}
	if err := documentSchema.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrParse, err)
	}
	return nil
}
