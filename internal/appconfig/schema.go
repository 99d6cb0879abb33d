package appconfig

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const durationPattern = `^([0-9]+(\.[0-9]+)?(ns|us|µs|ms|s|m|h))+$`

// configSchema describes the JSON configuration file.
var configSchema = map[string]any{
	"type":                 "object",
	"additionalProperties": false,
	"properties": map[string]any{
		"minTime":          map[string]any{"type": "string", "pattern": durationPattern},
		"warmupTime":       map[string]any{"type": "string", "pattern": durationPattern},
		"sampleLimit":      map[string]any{"type": "integer", "minimum": 1},
		"minSamples":       map[string]any{"type": "integer", "minimum": 1},
		"warmupIterations": map[string]any{"type": "integer", "minimum": 0},
		"batch":            map[string]any{"type": "integer", "minimum": 1},
		"trim":             map[string]any{"type": "boolean"},
		"trimThreshold":    map[string]any{"type": "number", "minimum": 0},
		"confidence":       map[string]any{"type": "number", "minimum": 0.9, "maximum": 0.99},
		"format":           map[string]any{"type": "string", "enum": []any{"table", "json", "gobench"}},
		"sizes": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "integer", "minimum": 0},
		},
		"output":  map[string]any{"type": "string"},
		"debug":   map[string]any{"type": "boolean"},
		"noColor": map[string]any{"type": "boolean"},
		"logFile": map[string]any{"type": "string"},
	},
}

// ValidateDocument checks a JSON configuration document against the schema.
func ValidateDocument(data []byte) error {
	schemaLoader := gojsonschema.NewGoLoader(configSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var errs []string
	for _, desc := range result.Errors() {
		errs = append(errs, desc.String())
	}
	return fmt.Errorf("JSON validation failed: %s", strings.Join(errs, ", "))
}
