// internal/workers/assistant/answer-faq-question/validation.go
package answerfaqquestion

import (
	"strings"

	"appraisal-workers/internal/common/errors"
)

func validateInput(input *Input) error {
	if input == nil {
		return errors.NewValidationFailedError("input cannot be nil")
	}
	if strings.TrimSpace(input.Question) == "" {
		return errors.NewValidationFailedError("question is required")
	}
	if strings.TrimSpace(input.Role) == "" {
		return errors.NewValidationFailedError("role is required")
	}
	return nil
}
