package cli

import (
	"context"
	"errors"

	"github.com/murkotick/product-catalog-manager/internal/app/product/codec"
	"github.com/murkotick/product-catalog-manager/internal/app/product/domain"
	"github.com/murkotick/product-catalog-manager/internal/app/product/queries/list_products"
	"github.com/murkotick/product-catalog-manager/internal/app/product/usecases/apply_discount"
	"github.com/murkotick/product-catalog-manager/internal/app/product/usecases/shared"
)

// Process exit codes.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitUsage    = 2
	ExitNotFound = 3
	ExitData     = 4
	ExitIO       = 5
	ExitCanceled = 130
)

// ExitError carries the exit code a failed command should terminate with.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// mapError translates domain sentinel errors into exit codes.
// Unknown errors become ExitFailure.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &ExitError{Code: ExitCanceled, Err: err}
	}

	// Not found
	if errors.Is(err, domain.ErrProductNotFound) {
		return &ExitError{Code: ExitNotFound, Err: err}
	}

	// Invalid argument (validation)
	switch {
	case errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrInvalidEnum),
		errors.Is(err, shared.ErrForeignAttribute),
		errors.Is(err, apply_discount.ErrInvalidPercentage),
		errors.Is(err, list_products.ErrUnknownSortKey),
		errors.Is(err, codec.ErrUnsupportedFormat),
		errors.Is(err, codec.ErrWriteOnly):
		return &ExitError{Code: ExitUsage, Err: err}
	}

	// File system
	if errors.Is(err, domain.ErrIO) {
		return &ExitError{Code: ExitIO, Err: err}
	}

	// Unreadable or inconsistent data. A bad decimal or tag typed on the
	// command line lands here too since it shares the sentinel with file parsing.
	switch {
	case errors.Is(err, domain.ErrFormat),
		errors.Is(err, domain.ErrUnknownType),
		errors.Is(err, domain.ErrCorruptData),
		errors.Is(err, domain.ErrDuplicateProduct):
		return &ExitError{Code: ExitData, Err: err}
	}

	return &ExitError{Code: ExitFailure, Err: err}
}

// ExitCode returns the code err maps to. Errors that never went through a
// command (unknown flags, missing arguments) are usage errors.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUsage
}
