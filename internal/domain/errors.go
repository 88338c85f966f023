package domain

import "errors"

// ErrInvalidDataset marks input records that cannot be solved.
var ErrInvalidDataset = errors.New("invalid dataset")
