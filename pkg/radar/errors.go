package radar

import "errors"

// ErrInvalidConfig is wrapped by composite-generation failures that must
// fail the whole operation before any pixel is written: missing required
// parameters, an empty source list, or mismatched grids.
var ErrInvalidConfig = errors.New("radar: invalid configuration")
