package verification

import (
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"

	"gitlab.com/onboardly/accounts-backend/pkg/env"
	"gitlab.com/onboardly/accounts-backend/pkg/randcode"
)

var emailRx = regexp.MustCompile(
	`^[a-zA-Z0-9._%+\-]+@` + // local part
		`(?:[A-Za-z0-9](?:[A-Za-z0-9-]{0,61}[A-Za-z0-9])?\.)+` + // labels
		`[A-Za-z]{2,63}$`) // TLD

// TTL is the validity window of an issued verification code.
const TTL = 10 * time.Minute

var ErrEmptyEmail = errors.New("email cannot be empty")

// NormalizeEmail is the canonical cache-key form of an address. Lookups and
// stores must both go through it so "A@B.com" and "a@b.com" hit the same entry.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidateEmail(email string, mode env.Mode) error {
	if email == "" {
		return ErrEmptyEmail
	}
	if len(email) > 254 {
		return errors.New("email exceeds maximum length of 254 characters")
	}
	if !emailRx.MatchString(email) {
		return fmt.Errorf("invalid email format: %s", email)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("invalid email format: %w", err)
	}
	if (mode == env.Dev || mode == env.Prod) && !hasRealTLD(email) {
		return fmt.Errorf("email must have a real top-level domain (TLD) in %s mode", mode)
	}

	return nil
}

// Code is a one-shot verification code bound to a normalized email address.
type Code struct {
	email     string
	code      string
	expiresAt time.Time
}

func NewCode(email string, mode env.Mode) (*Code, error) {
	if err := ValidateEmail(email, mode); err != nil {
		return nil, err
	}

	code, err := randcode.GenerateNumericCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification code: %w", err)
	}

	return &Code{
		email:     NormalizeEmail(email),
		code:      code,
		expiresAt: time.Now().UTC().Add(TTL),
	}, nil
}

func (c *Code) Email() string {
	if c == nil {
		return ""
	}
	return c.email
}

func (c *Code) Value() string {
	if c == nil {
		return ""
	}
	return c.code
}

func (c *Code) ExpiresAt() time.Time {
	if c == nil {
		return time.Time{}
	}
	return c.expiresAt
}

func (c *Code) IsExpired() bool {
	if c == nil || c.expiresAt.IsZero() {
		return true
	}
	return time.Now().After(c.expiresAt)
}

func hasRealTLD(addr string) bool {
	parsed, err := mail.ParseAddress(addr)
	if err != nil {
		return false
	}

	at := strings.LastIndexByte(parsed.Address, '@')
	domain := parsed.Address[at+1:]

	suffix, icann := publicsuffix.PublicSuffix(domain)

	// If the suffix is the entire domain there is no registrable part, so
	// "localhost", "internal", etc. fail here.
	return icann && suffix != domain
}
