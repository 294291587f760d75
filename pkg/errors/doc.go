// Package errors provides structured error handling with error codes for the
// provisioning core.
//
// Every failure the core surfaces carries one of a small set of typed codes so
// callers can decide whether to retry, report a conflict to the end user, or
// treat the failure as fatal configuration. Errors are never converted to
// generic failures on their way up.
//
// # Basic Usage
//
//	import "github.com/faintdeception/ruff-registrar-community-sub000/pkg/errors"
//
//	// Create an error with a code
//	err := errors.New(errors.ErrCodeDuplicateUser, "user already exists")
//
//	// Wrap an underlying error
//	err := errors.Wrap(httpErr, errors.ErrCodeProtocol, "token request failed")
//
//	// Inspect a code
//	if errors.IsCode(err, errors.ErrCodeDuplicateUser) {
//		// report "this email is already registered"
//	}
//
// # Error Codes
//
//   - ErrCodeConfiguration - no usable admin-auth strategy is configured
//   - ErrCodeProtocol - the identity provider answered outside its contract
//   - ErrCodeDuplicateUser - HTTP 409 on user creation
//   - ErrCodeRoleNotFound - realm role missing on the provider
//   - ErrCodeUnsupportedRole - domain role with no realm role mapping
//   - ErrCodeInvalidInput - caller-supplied argument rejected
//   - ErrCodeGenerationExhausted - password generation retries exhausted
package errors
