package repo

import "errors"

// ErrProductNotFound is returned when a product is not found in the repository.
var ErrProductNotFound = errors.New("product not found")

// ErrUserNotFound is returned when no user matches the lookup.
var ErrUserNotFound = errors.New("user not found")

// ErrDuplicatedValueUnique is returned when a write would break a unique key (SKU, email).
var ErrDuplicatedValueUnique = errors.New("unique constraint violation")

// ErrStaleProduct is returned by CommitAdjustment when the stored stock no
// longer matches the adjustment's previous stock.
var ErrStaleProduct = errors.New("product stock changed concurrently")
