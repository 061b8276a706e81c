package domain

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned for a missing entity or a malformed
	// identifier. Post mutations by a non-author also surface as
	// ErrNotFound so that existence is not revealed to non-owners.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned by repositories when a unique
	// constraint rejects a write. Services fold it into a
	// ValidationErrors message.
	ErrDuplicate = errors.New("duplicate")

	// ErrInvalidCredentials is the single login failure. It does not
	// distinguish an unknown username from a wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// ValidationErrors is the ordered list of human-readable rule
// violations produced by an operation. Every applicable rule
// contributes one message; validation never stops at the first.
type ValidationErrors []string

func (v ValidationErrors) Error() string {
	return strings.Join(v, "; ")
}

// AsValidation unwraps err into ValidationErrors if it carries one.
func AsValidation(err error) (ValidationErrors, bool) {
	var v ValidationErrors
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
