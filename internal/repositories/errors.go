package repositories

import "errors"

// ErrNotFound is returned when a referenced document does not exist.
// Services translate it into their own taxonomy.
var ErrNotFound = errors.New("not found")
