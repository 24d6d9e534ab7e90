// Package validator adapts go-playground/validator to echo's Validator
// interface so request DTO tags are checked at bind time.
package validator

import (
	playground "github.com/go-playground/validator/v10"
)

type echoValidator struct {
	validate *playground.Validate
}

// New creates the request validator used by the echo server.
func New() *echoValidator {
	return &echoValidator{validate: playground.New(playground.WithRequiredStructEnabled())}
}

// Validate implements echo.Validator.
func (v *echoValidator) Validate(i any) error {
	return v.validate.Struct(i)
}
