package sim

import "github.com/pkg/errors"

// ErrInvalidInterval is returned for tick intervals that are not a positive
// whole number of milliseconds
var ErrInvalidInterval = errors.New("sim: invalid interval")
