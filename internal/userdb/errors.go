package userdb

import "errors"

var (
	// ErrDuplicateEmail indicates registration with an email already in the collection.
	ErrDuplicateEmail = errors.New("user with this email already exists")
	// ErrInvalidCredentials indicates no record matched the email/password pair.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNotAuthenticated indicates the session slot is empty.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrCorruptStore indicates a persisted value could not be decoded.
	ErrCorruptStore = errors.New("corrupt store")
)
