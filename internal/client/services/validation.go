package services

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/dreamias/internal/common"
)

const (
	MinTargetYear     = 2024
	MaxTargetYear     = 2100
	MinPasswordLength = 6
)

var inputValidator = validator.New(validator.WithRequiredStructEnabled())

type registrationInput struct {
	Email      string `validate:"required,email"`
	Username   string `validate:"required"`
	TargetYear int    `validate:"min=2024,max=2100"`
	Password   string `validate:"min=6"`
}

type loginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type profileInput struct {
	Username   string `validate:"required"`
	TargetYear int    `validate:"min=2024,max=2100"`
}

var (
	registrationMessages = map[string]string{
		"Email":      msgInvalidEmail,
		"Username":   msgNameRequired,
		"TargetYear": msgInvalidTargetYear,
		"Password":   msgPasswordTooShort,
	}
	loginMessages = map[string]string{
		"Email":    msgInvalidEmail,
		"Password": msgPasswordRequired,
	}
	profileMessages = map[string]string{
		"Username":   msgNameRequired,
		"TargetYear": msgProfileTargetYear,
	}
)

// validateInput checks in against its tags and maps the first failing field
// to its message. Fields are reported in declaration order.
func validateInput(in any, messages map[string]string) error {
	err := inputValidator.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if msg, ok := messages[verrs[0].Field()]; ok {
			return newAuthError(common.ErrorValidation, msg)
		}
	}
	return newAuthError(common.ErrorValidation, "Invalid input")
}

func validateRegistration(email, username string, targetYear int, password []byte) error {
	return validateInput(registrationInput{
		Email:      email,
		Username:   username,
		TargetYear: targetYear,
		Password:   string(password),
	}, registrationMessages)
}

func validateLogin(email string, password []byte) error {
	return validateInput(loginInput{
		Email:    email,
		Password: strings.TrimSpace(string(password)),
	}, loginMessages)
}

func validateProfile(username string, targetYear int) error {
	return validateInput(profileInput{
		Username:   username,
		TargetYear: targetYear,
	}, profileMessages)
}
