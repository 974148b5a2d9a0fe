package store

import (
	"errors"
	"fmt"
)

var (
	// ErrProductNotFound is returned when the referenced product id does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrProductReferenced is returned when a delete is blocked because sales
	// still reference the product.
	ErrProductReferenced = errors.New("product has recorded sales and cannot be removed")

	// ErrDuplicateName is returned when a product name collides with an
	// existing catalog entry.
	ErrDuplicateName = errors.New("product name already exists")
)

// ValidationError reports caller-supplied data that violates a business
// rule. It is always raised before any storage call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// InsufficientStockError carries the quantity still available so the caller
// can show it to the user.
type InsufficientStockError struct {
	ProductID int64
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: available %d, requested %d",
		e.ProductID, e.Available, e.Requested)
}

// StorageError wraps an underlying storage engine failure. The enclosing
// transaction has already been rolled back when it is returned.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
