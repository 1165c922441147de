package db

import "errors"

// ErrStorage is returned for database failures that have no more specific
// sentinel. The underlying cause is logged at the repository and treated as
// opaque by callers.
var ErrStorage = errors.New("storage failure")
