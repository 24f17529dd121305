package hsm

import "errors"

// ErrNotInitialized is returned by Machine.Handle when it is called
// before Machine.Init.
var ErrNotInitialized = errors.New("hsm: machine not initialized")

// ErrAlreadyInitialized is returned by Machine.Init when it is called
// more than once on the same Machine.
var ErrAlreadyInitialized = errors.New("hsm: machine already initialized")
