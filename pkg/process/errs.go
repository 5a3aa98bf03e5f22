package process

import "errors"

// ErrNotFound indicates a search matched no process. Callers report it to
// the user instead of rendering an empty list.
var ErrNotFound = errors.New("process: not found")
