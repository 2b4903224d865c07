package model

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// MaxTextLength bounds category names and item titles.
const MaxTextLength = 200

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return v
}

// NormalizeName trims and validates a category name.
func NormalizeName(name string) (string, error) {
	return normalizeText("name", name)
}

// NormalizeTitle trims and validates an item title.
func NormalizeTitle(title string) (string, error) {
	return normalizeText("title", title)
}

func normalizeText(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if err := validate.Var(s, "notblank"); err != nil {
		return "", NewValidationError(field, field+" must not be empty")
	}
	if err := validate.Var(s, fmt.Sprintf("max=%d", MaxTextLength)); err != nil {
		return "", NewValidationError(field, fmt.Sprintf("%s must be at most %d characters", field, MaxTextLength))
	}
	return s, nil
}
