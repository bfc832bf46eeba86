package enum

import "errors"

// ErrInvalidValue is wrapped by every parse failure in this package.
var ErrInvalidValue = errors.New("is not a valid choice")
