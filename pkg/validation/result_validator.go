package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ResultValidator enforces the struct tag constraints on decoded model
// results
type ResultValidator struct {
	validate *validator.Validate
}

// NewResultValidator creates a result validator
func NewResultValidator() *ResultValidator {
	return &ResultValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// ValidateStruct validates v and flattens field errors into one message
func (r *ResultValidator) ValidateStruct(v interface{}) error {
	err := r.validate.Struct(v)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("constraint violation: %s", strings.Join(msgs, "; "))
}
