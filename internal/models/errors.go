package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a song, performer or station looked up by
	// its identity key does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidWindow covers start >= end, missing or unparsable timestamps and
	// non-positive periods.
	ErrInvalidWindow = errors.New("invalid time window")

	// ErrInvalidChannelSet is returned for a top report over no channels.
	ErrInvalidChannelSet = errors.New("channel set must not be empty")

	// ErrInvalidInput covers missing names/titles and bad limits.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStorage matches every StorageError.
	ErrStorage = errors.New("storage error")
)

// StorageError wraps a failure of the underlying database.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// NewStorageError returns nil when err is nil.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}
