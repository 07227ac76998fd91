// Package validation provides common validation utilities for constructor
// arguments across rainbow packages.
//
// Every function returns a *errors.ValidationError from pkg/common/errors so
// callers can detect rejected input with errors.IsValidationError.
package validation
