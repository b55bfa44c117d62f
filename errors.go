package settings

import (
	"errors"
	"fmt"
	"strings"
)

// Predefined error kinds. Every error returned by the Repository matches
// exactly one of these with errors.Is.
var (
	ErrInvalidSetting = errors.New("invalid serial terminal setting")
	ErrDuplicatePort  = errors.New("port already configured")
	ErrNotFound       = errors.New("setting not found")
	ErrStorage        = errors.New("settings storage failure")

	errStoreClosed = errors.New("store is closed")
)

// FieldError describes a single out-of-domain field.
type FieldError struct {
	Field  string
	Reason string
}

func (fe FieldError) String() string {
	return fe.Field + ": " + fe.Reason
}

// ValidationError carries every violation found in a candidate setting.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, fe := range e.Fields {
		parts = append(parts, fe.String())
	}
	return fmt.Sprintf("%v: %s", ErrInvalidSetting, strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidSetting }

// Has reports whether field is among the violations.
func (e *ValidationError) Has(field string) bool {
	for _, fe := range e.Fields {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// DuplicatePortError is returned when a create or rename collides with an
// existing record.
type DuplicatePortError struct {
	Port       string
	ExistingID int64
}

func (e *DuplicatePortError) Error() string {
	if e.ExistingID == 0 {
		return fmt.Sprintf("%v: %s", ErrDuplicatePort, e.Port)
	}
	return fmt.Sprintf("%v: %s (id %d)", ErrDuplicatePort, e.Port, e.ExistingID)
}

func (e *DuplicatePortError) Is(target error) bool { return target == ErrDuplicatePort }

// NotFoundError is returned by Update for an unknown id.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%v: id %d", ErrNotFound, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// StorageError wraps a failure of the underlying Store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrStorage, e.Op, e.Err)
}

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

func (e *StorageError) Unwrap() error { return e.Err }

func storageError(op string, err error) error {
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}
