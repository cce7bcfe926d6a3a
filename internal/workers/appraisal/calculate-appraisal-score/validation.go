// internal/workers/appraisal/calculate-appraisal-score/validation.go
package calculateappraisalscore

import (
	"fmt"
	"math"

	"github.com/xeipuuv/gojsonschema"

	"appraisal-workers/internal/common/errors"
)

var inputSchema = map[string]interface{}{
	"type":     "object",
	"required": []string{"appraisalId", "sections"},
	"properties": map[string]interface{}{
		"appraisalId": map[string]interface{}{
			"type":      "string",
			"minLength": 1,
		},
		"sections": map[string]interface{}{
			"type":     "array",
			"minItems": 1,
			"items": map[string]interface{}{
				"type":     "object",
				"required": []string{"name", "weight", "rating"},
				"properties": map[string]interface{}{
					"name": map[string]interface{}{
						"type":      "string",
						"minLength": 1,
					},
					"weight": map[string]interface{}{
						"type":    "number",
						"minimum": 0,
						"maximum": 1,
					},
					"rating": map[string]interface{}{
						"type":    "number",
						"minimum": 0,
						"maximum": 100,
					},
				},
			},
		},
	},
}

// validateInput checks the form against the JSON schema, then the weight sum
// which the schema cannot express.
func validateInput(input *Input, weightTolerance float64) error {
	if input == nil {
		return errors.NewValidationFailedError("input cannot be nil")
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(inputSchema),
		gojsonschema.NewGoLoader(input),
	)
	if err != nil {
		return errors.NewFormValidationFailedError(fmt.Sprintf("schema validation error: %v", err))
	}
	if !result.Valid() {
		details := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			details[i] = desc.String()
		}
		return errors.NewFormValidationFailedError(fmt.Sprintf("%v", details))
	}

	sum := 0.0
	for _, section := range input.Sections {
		sum += section.Weight
	}
	if math.Abs(sum-1.0) > weightTolerance {
		return errors.NewFormValidationFailedError(fmt.Sprintf("section weights sum to %.3f, want 1.0", sum))
	}

	return nil
}
