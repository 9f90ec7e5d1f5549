package company

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to errors raised by the data access layer.
const (
	TextCodeNotFound      = "COMPANY_NOT_FOUND"
	TextCodeValidation    = "COMPANY_INVALID"
	TextCodeStore         = "STORE_FAILURE"
	TextCodeTransaction   = "TRANSACTION_FAILURE"
	TextCodeSerialization = "SERIALIZATION_FAILURE"
)

// ErrNotFound is returned by callers that need an error for an absent company.
// Repository reads report absence with a nil value instead.
var ErrNotFound = goerrors.New("company not found", goerrors.CategoryNotFound).
	WithTextCode(TextCodeNotFound)

// StoreFailure wraps a connection or query execution fault.
func StoreFailure(err error, message string) error {
	if err == nil {
		return nil
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, message).
		WithTextCode(TextCodeStore)
}

// TransactionFailure wraps a fault that aborted a batch transaction.
func TransactionFailure(err error, message string) error {
	if err == nil {
		return nil
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, message).
		WithTextCode(TextCodeTransaction)
}

// SerializationFailure wraps a cache payload that could not be encoded or decoded.
func SerializationFailure(err error, message string) error {
	if err == nil {
		return nil
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, message).
		WithTextCode(TextCodeSerialization)
}

// Category returns the go-errors category of err, or CategoryInternal when
// err was not raised by this module.
func Category(err error) goerrors.Category {
	var e *goerrors.Error
	if errors.As(err, &e) {
		return e.Category
	}
	return goerrors.CategoryInternal
}

// TextCode returns the text code carried by err, if any.
func TextCode(err error) string {
	var e *goerrors.Error
	if errors.As(err, &e) {
		return e.TextCode
	}
	return ""
}
