// Package schemas provides JSON Schema validation for chart payloads
// stored in the durable cache. Rows are validated when read back; an
// invalid payload is treated as a cache miss, never trusted.
package schemas

import (
	_ "embed"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed chart_result.schema.json
var chartResultSchema string

// ValidationError aggregates field-level failures from a schema check.
type ValidationError struct {
	Errors []FieldError
}

// FieldError is a single validation failure at a specific field.
type FieldError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "schema validation failed"
	}
	return fmt.Sprintf("schema validation failed: %s: %s (%d error(s))",
		e.Errors[0].Field, e.Errors[0].Message, len(e.Errors))
}

// ValidateChartResult checks a serialized ChartResult against the
// embedded schema.
func ValidateChartResult(payload []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(chartResultSchema)
	docLoader := gojsonschema.NewBytesLoader(payload)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("failed to run schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{}
	for _, desc := range result.Errors() {
		verr.Errors = append(verr.Errors, FieldError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return verr
}
