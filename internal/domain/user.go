package domain

import (
	"fmt"
	"net/mail"
	"strings"
)

type User struct {
	ID           int64
	Email        string
	PasswordHash string
}

// NormalizeEmail lower-cases and validates a bare address like "hello@email.com".
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: email[%s] is not valid", ErrInvalidArgument, email)
	}

	return email, nil
}
