package validation

import (
	"regexp"

	"shelfcloud/internal/api/mapper"
	"shelfcloud/internal/authz"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Slugs are lowercase alphanumerics separated by single hyphens.
var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// RegisterValidators registers custom validators on gin's binding engine.
// Call once at server startup, before any request binding.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterValidation("slug", validateSlug)
	v.RegisterValidation("role", validateRole)
	v.RegisterValidation("accesslevel", validateAccessLevel)
	v.RegisterValidation("provider", validateProvider)
}

func validateSlug(fl validator.FieldLevel) bool {
	slug := fl.Field().String()
	return len(slug) >= 2 && len(slug) <= 63 && slugRegex.MatchString(slug)
}

func validateRole(fl validator.FieldLevel) bool {
	_, err := authz.ParseRole(fl.Field().String())
	return err == nil
}

func validateAccessLevel(fl validator.FieldLevel) bool {
	_, err := authz.ParseAccessLevel(fl.Field().String())
	return err == nil
}

func validateProvider(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case mapper.ProviderS3, mapper.ProviderR2:
		return true
	}
	return false
}

// ValidationError represents a single failed validation rule
type ValidationError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Value string `json:"value"`
}

// FormatValidationError formats validation errors into a user-friendly response
func FormatValidationError(err error) []ValidationError {
	var errors []ValidationError
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			errors = append(errors, ValidationError{
				Field: e.Field(),
				Tag:   e.Tag(),
				Value: e.Param(),
			})
		}
	}
	return errors
}
