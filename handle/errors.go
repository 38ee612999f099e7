package handle

import "errors"

// ErrStale indicates a Handle whose generation no longer matches the
// Pool's current generation for that slot — the element it once named
// has been freed (and possibly the slot reused for something else).
var ErrStale = errors.New("handle: stale handle")
