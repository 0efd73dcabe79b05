package validator

import (
	"github.com/go-playground/validator/v10"
)

// CustomValidator implements echo.Validator using go-playground/validator
type CustomValidator struct {
	v *validator.Validate
}

// New creates a new CustomValidator instance
func New() *CustomValidator {
	v := validator.New()

	// "plan" limits request bodies to the routing plans the registry knows.
	_ = v.RegisterValidation("plan", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "free", "basic", "pro", "enterprise":
			return true
		}
		return false
	})

	return &CustomValidator{v: v}
}

// Validate performs struct validation
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}
