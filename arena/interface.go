package arena

import "github.com/joshuapare/heapkit/arena/dirty"

// DirtyTracker is a type alias for the canonical interface defined in arena/dirty.
type DirtyTracker = dirty.DirtyTracker
