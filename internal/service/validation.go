package service

import (
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

const (
	msgFirstNameRequired = "firstName is required"
	msgLastNameRequired  = "lastName is required"
	msgInvalidEmail      = "Invalid Email is provided"
	msgPasswordTooShort  = "Password must contain at least six characters"

	minPasswordLength = 6
)

// validateSignUp checks every field and reports all violations together, in
// the fixed order firstName, lastName, email, password.
func validateSignUp(input SignUpInput) *ValidationError {
	var fields []FieldError

	if strings.TrimSpace(input.FirstName) == "" {
		fields = append(fields, FieldError{Location: "body", Param: "firstName", Msg: msgFirstNameRequired})
	}
	if strings.TrimSpace(input.LastName) == "" {
		fields = append(fields, FieldError{Location: "body", Param: "lastName", Msg: msgLastNameRequired})
	}
	if err := validate.Var(input.Email, "required,email"); err != nil {
		fields = append(fields, FieldError{Location: "body", Param: "email", Msg: msgInvalidEmail})
	}
	if utf8.RuneCountInString(input.Password) < minPasswordLength {
		fields = append(fields, FieldError{Location: "body", Param: "password", Msg: msgPasswordTooShort})
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
