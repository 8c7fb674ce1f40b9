package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// newValidator returns a validator with the custom tags used by Config registered.
func newValidator() (*validator.Validate, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := registerExclusive(validate); err != nil {
		return nil, err
	}

	if err := validate.RegisterValidation("rotation", validateRotation); err != nil {
		return nil, fmt.Errorf("registering rotation validation: %w", err)
	}

	return validate, nil
}

// registerExclusive adds a custom validator ensuring two fields are mutually exclusive,
// and reports fields by their flag label.
func registerExclusive(validate *validator.Validate) error {
	if err := validate.RegisterValidation("exclusive", validateExclusive); err != nil {
		return fmt.Errorf("registering exclusive validation: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		const splitSize = 2

		name := strings.SplitN(fld.Tag.Get("label"), ",", splitSize)[0]
		if name == "-" || name == "" {
			return fld.Name
		}

		return name
	})

	return nil
}

// validateExclusive checks if two fields are mutually exclusive.
// Returns false if both fields have non-empty values.
func validateExclusive(fl validator.FieldLevel) bool {
	otherFieldName := fl.Param()
	field := fl.Field()
	otherField := fl.Parent().FieldByName(otherFieldName)

	if !field.IsValid() || !otherField.IsValid() {
		return true
	}

	if field.Kind() == reflect.String && otherField.Kind() == reflect.String {
		return field.String() == "" || otherField.String() == ""
	}

	return true
}

// validateRotation accepts rotations that move whole bytes: 8, 16 or 24 bits.
func validateRotation(fl validator.FieldLevel) bool {
	const (
		byteBits = 8
		wordBits = 32
	)

	rotation := fl.Field().Int()

	return rotation > 0 && rotation < wordBits && rotation%byteBits == 0
}
