package domain

import (
	"fmt"

	"github.com/pkg/errors"
)

// Domain errors for Product records
var (
	// ErrInvalidPrice indicates an attempt to construct or set a negative price.
	ErrInvalidPrice = errors.New("price cannot be negative")

	// ErrInvalidEnum indicates a food class, brand or size outside its closed set.
	ErrInvalidEnum = errors.New("value is not a member of the enumeration")
)

// Domain errors for the Catalog repository
var (
	// ErrProductNotFound indicates that a product with the given ID does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrDuplicateProduct indicates a replacement collection carrying the same ID twice.
	ErrDuplicateProduct = errors.New("duplicate product id")

	// ErrExhausted indicates an iterator was advanced past its last element.
	ErrExhausted = errors.New("iterator exhausted")
)

// Domain errors for persistence formats
var (
	// ErrUnknownType indicates an unrecognized variant tag in a decoded record.
	ErrUnknownType = errors.New("unknown product type")

	// ErrFormat indicates a malformed numeric or text field in a decoded record.
	ErrFormat = errors.New("malformed record")

	// ErrCorruptData indicates an unreadable binary blob or an unresolvable component type.
	ErrCorruptData = errors.New("corrupt catalog data")

	// ErrIO is matched by every IOError.
	ErrIO = errors.New("catalog i/o failure")
)

// IOError reports a file system failure while reading or writing a catalog file.
// It matches ErrIO and unwraps to the underlying OS error.
type IOError struct {
	Op   string
	Path string
	Err  error
}

// NewIOError wraps err, returning nil when err is nil.
func NewIOError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Op: op, Path: path, Err: err}
}

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *IOError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrIO.
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}
