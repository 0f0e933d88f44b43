package domain

import (
	"strings"
	"unicode/utf8"
)

// MaxCredentialLength bounds both usernames and passwords.
const MaxCredentialLength = 20

type Account struct {
	Username     string
	PasswordHash []byte
	Salt         []byte
	Balance      int64
}

// NormalizeUsername returns the case-folded form accounts are stored and
// looked up by. It maps rune for rune, so the length in runes is unchanged.
func NormalizeUsername(username string) string {
	return strings.ToLower(username)
}

// ValidateNewAccount checks the inputs of account creation. The username is
// expected in its normalized form.
func ValidateNewAccount(username, password string, balance int64) error {
	switch {
	case username == "" || password == "":
		return ErrInvalidArgument
	case utf8.RuneCountInString(username) > MaxCredentialLength:
		return ErrInvalidArgument
	case utf8.RuneCountInString(password) > MaxCredentialLength:
		return ErrInvalidArgument
	case balance < 0:
		return ErrInvalidArgument
	}
	return nil
}
