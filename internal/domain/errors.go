package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Pre-flight errors
	ErrMsgConfig = "configuration error"

	// Remote access errors
	ErrMsgAuth       = "authentication failed"
	ErrMsgPermission = "permission denied"
	ErrMsgNotFound   = "not found"

	// Retryable errors
	ErrMsgTransient = "transient remote error"

	// Schema errors
	ErrMsgRemoteSchema = "failed to inspect destination schema"

	// Request errors
	ErrMsgValidation = "request rejected by remote"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// ErrConfig is raised before any network call when configuration is missing or malformed.
	ErrConfig = errors.New(ErrMsgConfig)

	// ErrAuth means a remote rejected the credentials (401).
	ErrAuth = errors.New(ErrMsgAuth)

	// ErrPermission means the credentials are valid but lack a grant (e.g. schema writes).
	ErrPermission = errors.New(ErrMsgPermission)

	// ErrNotFound means a database, collection or record id is wrong or not shared.
	ErrNotFound = errors.New(ErrMsgNotFound)

	// ErrTransient covers rate limiting and network blips; callers may retry.
	ErrTransient = errors.New(ErrMsgTransient)

	// ErrRemoteSchema wraps any failure to read the destination schema.
	ErrRemoteSchema = errors.New(ErrMsgRemoteSchema)

	// ErrValidation is a non-retryable 4xx rejection of a single request.
	ErrValidation = errors.New(ErrMsgValidation)
)

// IsFatal reports whether err must abort the whole run.
// Only configuration, authentication, not-found and schema-inspection failures
// stop a run; everything else degrades a single field, option or record.
func IsFatal(err error) bool {
	return errors.Is(err, ErrConfig) ||
		errors.Is(err, ErrAuth) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrRemoteSchema)
}

// IsTransient reports whether err is worth retrying.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}
