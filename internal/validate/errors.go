package validate

import (
	"errors"
	"strings"
)

// FieldError names a single invalid field in client terms.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the per-field error list returned by Struct.
type Errors []FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+" "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsErrors unwraps err into Errors when it carries field detail.
func AsErrors(err error) (Errors, bool) {
	var verrs Errors
	if errors.As(err, &verrs) {
		return verrs, true
	}
	return nil, false
}
