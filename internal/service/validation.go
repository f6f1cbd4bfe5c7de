package service

import (
	"auth-service/internal/apperr"
	"auth-service/internal/model"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 20
	minTenantField    = 8
	maxTenantName     = 100
	maxTenantAddress  = 255
)

func validateUserData(data *model.UserData) error {
	data.Firstname = strings.TrimSpace(data.Firstname)
	data.Lastname = strings.TrimSpace(data.Lastname)
	data.Email = strings.TrimSpace(data.Email)
	data.Password = strings.TrimSpace(data.Password)

	switch {
	case data.Email == "":
		return apperr.New(apperr.ErrValidation, "Email is required")
	case !isEmail(data.Email):
		return apperr.New(apperr.ErrValidation, "Email is not valid")
	case data.Firstname == "":
		return apperr.New(apperr.ErrValidation, "Firstname is required")
	case data.Lastname == "":
		return apperr.New(apperr.ErrValidation, "Lastname is required")
	case data.Password == "":
		return apperr.New(apperr.ErrValidation, "Password is required")
	}

	if n := utf8.RuneCountInString(data.Password); n < minPasswordLength || n > maxPasswordLength {
		return apperr.New(apperr.ErrValidation,
			fmt.Sprintf("Password should be at least %d chars & at most %d chars", minPasswordLength, maxPasswordLength))
	}
	return nil
}

func validateTenant(name, address string) (string, string, error) {
	name = strings.TrimSpace(name)
	address = strings.TrimSpace(address)

	if name == "" {
		return "", "", apperr.New(apperr.ErrValidation, "name is required")
	}
	if address == "" {
		return "", "", apperr.New(apperr.ErrValidation, "address is required")
	}
	if n := utf8.RuneCountInString(name); n < minTenantField || n > maxTenantName {
		return "", "", apperr.New(apperr.ErrValidation,
			fmt.Sprintf("Tenant name should be at least %d chars & at most %d chars", minTenantField, maxTenantName))
	}
	if n := utf8.RuneCountInString(address); n < minTenantField || n > maxTenantAddress {
		return "", "", apperr.New(apperr.ErrValidation,
			fmt.Sprintf("Tenant address should be at least %d chars & at most %d chars", minTenantField, maxTenantAddress))
	}
	return name, address, nil
}

func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
