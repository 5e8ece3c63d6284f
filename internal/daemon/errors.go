package daemon

import "errors"

// ErrUnknownSessionStorage is returned for an unsupported session storage.
var ErrUnknownSessionStorage = errors.New("unknown session storage")
