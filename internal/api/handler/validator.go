package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// FieldError pairs a form field with a human-readable problem.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// messages overrides the generic text for a field/tag pair.
var messages = map[string]string{
	"username.notblank":     "Username is required.",
	"password.notblank":     "Password is required.",
	"new_password.notblank": "New password is required.",
	"name.notblank":         "Name is required.",
	"name.max":              "Name must not exceed 50 characters.",
	"age.min":               "Age must be a positive number.",
	"age.max":               "Age must be realistic.",
	"medical_history.max":   "Medical history must not exceed 500 characters.",
}

// Validator wraps go-playground/validator and reports problems as
// FieldError lists the form views can render inline.
type Validator struct {
	v *validator.Validate
}

// NewValidator returns a Validator that reports fields by their form name.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("handler: register notblank validation: %v", err))
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return &Validator{v: v}
}

// Check validates i and returns the offending fields in declaration order.
// A nil slice means the form is valid.
func (cv *Validator) Check(i any) []FieldError {
	err := cv.v.Struct(i)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []FieldError{{Field: "", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, fe := range ve {
		out = append(out, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	field := fe.Field()
	switch fe.Tag() {
	case "required", "notblank":
		return field + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
