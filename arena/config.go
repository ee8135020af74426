package arena

import (
	"log/slog"
	"math"
	"os"

	"github.com/joshuapare/heapkit/internal/region"
)

// Backing selects where arena memory comes from.
type Backing = region.Kind

const (
	// BackingHeap keeps the arena in an ordinary Go slice.
	BackingHeap = region.KindHeap
	// BackingMmap keeps the arena in an anonymous private mapping.
	BackingMmap = region.KindMmap
)

// MaxCapacity is the largest supported arena. Sizes are carried as int32.
const MaxCapacity = math.MaxInt32

// Runtime debug logging for allocations - controlled by HEAPKIT_LOG_ALLOC env var.
var logAlloc = os.Getenv("HEAPKIT_LOG_ALLOC") != ""

// Config holds the construction-time parameters of an arena.
type Config struct {
	// Capacity is the total arena size in bytes, headers included.
	// Zero selects DefaultCapacity.
	Capacity int32

	// Backing selects the memory source. Defaults to BackingHeap.
	Backing Backing

	// Tracker, when set, receives the range of every header write.
	Tracker DirtyTracker

	// Logger receives debug events for splits, coalescing and failed
	// allocations. Nil discards them unless HEAPKIT_LOG_ALLOC is set.
	Logger *slog.Logger
}

// DefaultConfig is used when NewFirstFit is called with a nil config.
var DefaultConfig = Config{
	Capacity: DefaultCapacity,
	Backing:  BackingHeap,
}

func (c Config) capacity() int32 {
	if c.Capacity == 0 {
		return DefaultCapacity
	}
	return c.Capacity
}

func (c Config) logger() *slog.Logger {
	switch {
	case c.Logger != nil:
		return c.Logger
	case logAlloc:
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		return slog.New(slog.DiscardHandler)
	}
}
