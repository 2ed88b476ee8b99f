package combine

import "errors"

var (
	// ErrPathNotFound marks a root directory or listed file that does not exist.
	ErrPathNotFound = errors.New("path not found")

	// ErrRead marks a file that exists but cannot be read as text.
	ErrRead = errors.New("cannot read file as text")

	// ErrPersistence marks an ignore or selection list that could not be written.
	ErrPersistence = errors.New("cannot persist list")
)
