package normalize

import "errors"

// ErrMissingQuestion is returned for entries without a question field.
// Loaders treat it as skip-and-warn, never as a fatal load error.
var ErrMissingQuestion = errors.New("entry has no question text")
