package validationx

import (
	"errors"
	"regexp"
	"unicode"

	"github.com/ARUMANDESU/validation"
)

var ErrInvalidPasswordFormat = validation.NewError(
	"validation_is_password",
	"must be at least 8 characters long, contain at least one uppercase letter, one lowercase letter, one digit, and one special character",
)

var PasswordFormat = PasswordFormatRule{}

var (
	// Allow Unicode letters, spaces, hyphens, apostrophes, periods
	nameRegex = regexp.MustCompile(`^[\p{L}\p{M}\s'\-\.]+$`)
	// International or national prefix, separators optional
	phoneRegex = regexp.MustCompile(`^((\+|00)[1-9]\d{0,3}|0)(\s|-)?[1-9]\d{1,2}(\s|-)?\d{3,4}(\s|-)?\d{3,4}$`)
	// Alphanumeric with optional internal spaces or hyphens
	postalCodeRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9\s-]{2,9}$`)
)

var IsPersonName = validation.By(func(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil // Let Required handle emptiness
	}

	if !nameRegex.MatchString(s) {
		return errors.New("must be a valid name")
	}
	return nil
})

var IsPhoneNumber = validation.By(func(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}

	if !phoneRegex.MatchString(s) {
		return errors.New("must be a valid phone number")
	}
	return nil
})

var IsPostalCode = validation.By(func(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}

	if !postalCodeRegex.MatchString(s) {
		return errors.New("must be a valid postal code")
	}
	return nil
})

type PasswordFormatRule struct{}

// Validate checks minimum length and the presence of uppercase, lowercase,
// digit and special characters.
func (r PasswordFormatRule) Validate(value any) error {
	password, ok := value.(string)
	if !ok {
		return errors.New("value is not a string")
	}

	if len(password) < 8 {
		return ErrInvalidPasswordFormat
	}

	var hasLower, hasUpper, hasDigit, hasSpecial bool

	for _, char := range password {
		switch {
		case char >= 'a' && char <= 'z':
			hasLower = true
		case char >= 'A' && char <= 'Z':
			hasUpper = true
		case char >= '0' && char <= '9':
			hasDigit = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		default:
			return ErrInvalidPasswordFormat
		}
	}

	if !hasLower || !hasUpper || !hasDigit || !hasSpecial {
		return ErrInvalidPasswordFormat
	}

	return nil
}
