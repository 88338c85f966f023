package ports

import "errors"

// Returned by repositories and caches when the requested record does not exist.
var ErrNotFound = errors.New("not found")
