package arena

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Stats combines cumulative counters with a snapshot of the block list.
type Stats struct {
	// Counters since construction
	AllocCalls     int
	FailedAllocs   int
	FreeCalls      int
	FailedFrees    int
	SplitCount     int
	CoalesceCount  int
	BytesAllocated int64
	BytesFreed     int64

	// Snapshot of the current list
	Capacity    int64
	NumBlocks   int
	NumFree     int
	FreeBytes   int64 // Payload bytes in free blocks
	UsedBytes   int64 // Payload bytes in allocated blocks, slack included
	HeaderBytes int64 // NumBlocks * HeaderSize
	SlackBytes  int64 // Allocated payload beyond what callers requested
	LargestFree int64
}

// Stats returns the current counters and a fresh list snapshot.
// FreeBytes + UsedBytes + HeaderBytes always equals Capacity.
func (a *FirstFit) Stats() Stats {
	s := Stats{
		AllocCalls:     a.stats.AllocCalls,
		FailedAllocs:   a.stats.FailedAllocs,
		FreeCalls:      a.stats.FreeCalls,
		FailedFrees:    a.stats.FailedFrees,
		SplitCount:     a.stats.SplitCount,
		CoalesceCount:  a.stats.CoalesceCount,
		BytesAllocated: a.stats.BytesAllocated,
		BytesFreed:     a.stats.BytesFreed,
		Capacity:       int64(a.capacity),
	}
	for b := range a.Blocks() {
		s.NumBlocks++
		s.HeaderBytes += HeaderSize
		if b.Free {
			s.NumFree++
			s.FreeBytes += int64(b.Size)
			s.LargestFree = max(s.LargestFree, int64(b.Size))
			continue
		}
		s.UsedBytes += int64(b.Size)
		s.SlackBytes += int64(b.Slack())
	}
	return s
}

// Utilization returns the fraction of the arena handed to callers.
func (s Stats) Utilization() float64 {
	if s.Capacity == 0 {
		return 0
	}
	return float64(s.UsedBytes-s.SlackBytes) / float64(s.Capacity)
}

// Fragmentation returns 1 - LargestFree/FreeBytes: 0 when all free space
// is one block, approaching 1 as it scatters.
func (s Stats) Fragmentation() float64 {
	if s.FreeBytes == 0 {
		return 0
	}
	return 1 - float64(s.LargestFree)/float64(s.FreeBytes)
}

// PrintStats writes a human-readable summary with grouped digits.
func (a *FirstFit) PrintStats(w io.Writer) {
	a.Stats().Fprint(w)
}

// Fprint writes s in the same format as PrintStats.
func (s Stats) Fprint(w io.Writer) {
	p := message.NewPrinter(language.English)

	p.Fprintf(w, "Arena Statistics\n")
	p.Fprintf(w, "  Capacity:      %d bytes\n", s.Capacity)
	p.Fprintf(w, "  Blocks:        %d (%d free)\n", s.NumBlocks, s.NumFree)
	p.Fprintf(w, "  Used:          %d bytes (%d slack)\n", s.UsedBytes, s.SlackBytes)
	p.Fprintf(w, "  Free:          %d bytes (largest %d)\n", s.FreeBytes, s.LargestFree)
	p.Fprintf(w, "  Headers:       %d bytes\n", s.HeaderBytes)
	p.Fprintf(w, "  Utilization:   %.1f%%\n", s.Utilization()*100)
	p.Fprintf(w, "  Fragmentation: %.1f%%\n", s.Fragmentation()*100)
	p.Fprintf(w, "Operations\n")
	p.Fprintf(w, "  Allocate:      %d (%d failed)\n", s.AllocCalls, s.FailedAllocs)
	p.Fprintf(w, "  Deallocate:    %d (%d rejected)\n", s.FreeCalls, s.FailedFrees)
	p.Fprintf(w, "  Splits:        %d\n", s.SplitCount)
	p.Fprintf(w, "  Coalesces:     %d\n", s.CoalesceCount)
}
