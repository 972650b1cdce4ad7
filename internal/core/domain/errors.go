package domain

import "errors"

var (
	// ErrUnauthorized is returned before any repository call when the acting
	// role does not satisfy an operation's authorization predicate.
	ErrUnauthorized = errors.New("Unauthorized access")

	ErrUserNotFound     = errors.New("user not found")
	ErrUserExists       = errors.New("user already exists")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmployeeExists   = errors.New("employee already exists")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")

	// ErrFolderProvision marks a failed storage-folder placeholder upload
	// during the second phase of employee creation.
	ErrFolderProvision = errors.New("failed to create employee folder")

	ErrBucketExists   = errors.New("bucket already exists")
	ErrBucketNotFound = errors.New("bucket not found")
)
