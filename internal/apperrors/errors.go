// Package apperrors defines the error kinds the API reports. Services wrap
// these sentinels with context; handlers map the chain to a response envelope.
package apperrors

import "errors"

var (
	ErrInvalidParameter = errors.New("invalid or missing parameter(s)")
	ErrNotFound         = errors.New("entity not found")
	ErrUnauthorized     = errors.New("invalid credentials")
	ErrNotConfigured    = errors.New("feature is not configured")
	ErrNotification     = errors.New("notification dispatch failed")
)

// TypeOf maps an error chain to the exception type string reported in the
// response envelope. Anything not matching a known kind is treated as a
// persistence failure, the only other place errors originate.
func TypeOf(err error) string {
	switch {
	case errors.Is(err, ErrInvalidParameter):
		return "InvalidParameterException"
	case errors.Is(err, ErrNotFound):
		return "NotFoundException"
	case errors.Is(err, ErrUnauthorized):
		return "UnauthorizedException"
	case errors.Is(err, ErrNotConfigured):
		return "NotConfiguredException"
	case errors.Is(err, ErrNotification):
		return "NotificationException"
	default:
		return "PersistenceException"
	}
}
