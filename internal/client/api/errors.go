package api

import (
	"errors"
	"fmt"
)

// Kind classifies API failures so views can react appropriately without
// parsing messages.
type Kind int

const (
	// KindRequest covers network failures, server errors, and malformed
	// responses on any endpoint without a more specific category.
	KindRequest Kind = iota
	// KindAuthentication covers bad credentials and sessions discovered to
	// be stale or revoked (a late 401 on any endpoint).
	KindAuthentication
	// KindRegistration covers validation and duplicate-account failures
	// reported by the backend during registration.
	KindRegistration
	// KindVerification covers invalid or expired one-time codes.
	KindVerification
)

func (k Kind) String() string {
	switch k {
	case KindAuthentication:
		return "authentication failed"
	case KindRegistration:
		return "registration failed"
	case KindVerification:
		return "verification failed"
	default:
		return "request failed"
	}
}

// Error is the typed failure returned by every API operation. Message is the
// backend-supplied message when the envelope carried one, a generic fallback
// otherwise.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

func isKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

func IsAuthentication(err error) bool { return isKind(err, KindAuthentication) }
func IsRegistration(err error) bool   { return isKind(err, KindRegistration) }
func IsVerification(err error) bool   { return isKind(err, KindVerification) }
func IsRequest(err error) bool        { return isKind(err, KindRequest) }

// ErrorMessage extracts the user-facing message from an API error, falling
// back to err.Error() for anything else.
func ErrorMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Error()
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
