package strength

import "errors"

// ErrInvalidOptions is returned when evaluator options are out of range.
var ErrInvalidOptions = errors.New("invalid strength options")
