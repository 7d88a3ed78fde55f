// Package common contains shared constants and sentinel errors used across
// CampKeeper components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")

	// Infrastructure failures (database, object storage).
	ErrPersistence = errors.New("persistence error")

	// Operator misconfiguration (missing secret key, bad token TTL).
	ErrConfiguration = errors.New("configuration error")

	// Login errors. Unknown user and wrong password are deliberately
	// indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
	ErrInvalidToken = errors.New("invalid token")

	// Request authentication/authorization outcomes. ErrAccessDenied means
	// the caller is authenticated but lacks a required role.
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrAccessDenied         = errors.New("access denied")

	// Generic internal flow control.
	ErrInternal = errors.New("internal error")
)
