// internal/workers/assistant/search-interactions/validation.go
package searchinteractions

import (
	"fmt"
	"time"

	"appraisal-workers/internal/common/errors"
)

func validateInput(input *Input) error {
	if input == nil {
		return errors.NewValidationFailedError("input cannot be nil")
	}
	if input.Size < 0 {
		return errors.NewValidationFailedError("size cannot be negative")
	}
	for name, value := range map[string]string{"from": input.From, "to": input.To} {
		if value == "" {
			continue
		}
		if _, err := time.Parse(time.RFC3339, value); err != nil {
			return errors.NewValidationFailedError(fmt.Sprintf("%s must be RFC3339: %v", name, err))
		}
	}
	return nil
}
