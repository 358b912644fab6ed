package domain

import "errors"

// ErrDebugDisabled is returned when debug controls are requested but the engine was built without them.
var ErrDebugDisabled = errors.New("debug controls are disabled")

// ErrInvalidOption is returned when a configuration value has a shape the engine cannot interpret.
var ErrInvalidOption = errors.New("invalid option")

// ErrInvalidSize is returned when a surface resize is requested with non-positive dimensions.
var ErrInvalidSize = errors.New("invalid surface size")

// ErrNotRunning is returned when an operation needs the frame loop but it has not been started.
var ErrNotRunning = errors.New("frame loop is not running")
