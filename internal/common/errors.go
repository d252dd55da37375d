// Package common defines shared constants and sentinel errors used across
// LawLink client layers. Callers should use errors.Is to match these values.
package common

import "errors"

// ErrorUnauthorized marks API failures caused by a missing, expired, or
// revoked credential. The api package wraps it into its authentication
// errors so callers can detect the condition with errors.Is.
var ErrorUnauthorized = errors.New("unauthorized")
