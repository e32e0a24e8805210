package search

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// resultSchema is the only response shape accepted: an array of objects.
const resultSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {"type": "object"}
}`

var compiledSchema = mustSchema(resultSchema)

func mustSchema(src string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("compile result schema: %v", err))
	}
	return s
}

// validateShape checks body against the result schema before the ordered
// decode runs.
func validateShape(body []byte) error {
	result, err := compiledSchema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return errors.New("unexpected response shape: " + strings.Join(errs, "; "))
	}
	return nil
}
