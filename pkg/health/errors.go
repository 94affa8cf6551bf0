package health

import "errors"

// ErrNotReady is returned by Check when a default locale failed to load in time.
var ErrNotReady = errors.New("health: messages not ready")
