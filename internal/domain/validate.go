package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks the struct tags of v. Failures wrap ErrValidation.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(fields, ", "))
}

// ValidEmail reports whether s is an acceptable email address.
func ValidEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}
