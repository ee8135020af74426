package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joshuapare/heapkit/arena"
	"github.com/spf13/cobra"
)

var (
	replayCapacity int32
	replayMmap     bool
	replayLayout   bool
	replayStats    bool
)

func init() {
	cmd := newReplayCmd()
	cmd.Flags().Int32Var(&replayCapacity, "capacity", arena.DefaultCapacity, "Arena size in bytes")
	cmd.Flags().BoolVar(&replayMmap, "mmap", false, "Back the arena with an anonymous memory mapping")
	cmd.Flags().BoolVar(&replayLayout, "layout", false, "Print the final block layout")
	cmd.Flags().BoolVar(&replayStats, "stats", false, "Print allocator statistics")
	rootCmd.AddCommand(cmd)
}

func newReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <trace>",
		Short: "Run an alloc/free trace against a fresh arena",
		Long: `The replay command parses a trace file and applies each operation to a
new arena, printing the ref (payload offset) returned by every allocation
and the error of every rejected operation.

Trace format:
  alloc <name> <size>
  free <name>
  # comment

Example:
  arenactl replay testdata/scenario.trace
  arenactl replay trace.txt --capacity 4096 --layout --stats
  arenactl replay trace.txt --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(args)
		},
	}
	return cmd
}

// opResult is the outcome of one trace operation.
type opResult struct {
	Line  int
	Op    string
	Name  string
	Size  int32     `json:",omitempty"`
	Ref   arena.Ref `json:",omitempty"`
	Error string    `json:",omitempty"`
}

// replayReport is the JSON form of a replay.
type replayReport struct {
	Trace   string
	Backing string
	Ops     []opResult
	Failed  int
	Blocks  []arena.Block `json:",omitempty"`
	Stats   *arena.Stats  `json:",omitempty"`
}

func runReplay(args []string) error {
	tracePath := args[0]

	printVerbose("Reading trace: %s\n", tracePath)
	f, err := os.Open(tracePath)
	if err != nil {
		return fmt.Errorf("failed to open trace: %w", err)
	}
	defer f.Close()

	ops, err := parseTrace(f)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", tracePath, err)
	}

	cfg := &arena.Config{
		Capacity: replayCapacity,
		Logger:   allocLogger(),
	}
	if replayMmap {
		cfg.Backing = arena.BackingMmap
	}
	a, err := arena.NewFirstFit(cfg)
	if err != nil {
		return fmt.Errorf("failed to create arena: %w", err)
	}
	defer a.Close()

	printVerbose("Arena: %d bytes, %s backing, %d operations\n", a.Capacity(), a.Backing(), len(ops))

	report := replayReport{Trace: tracePath, Backing: a.Backing().String()}
	report.Ops, report.Failed, err = apply(a, ops)
	if err != nil {
		return err
	}
	if replayLayout || jsonOut {
		for b := range a.Blocks() {
			report.Blocks = append(report.Blocks, b)
		}
	}
	if replayStats {
		s := a.Stats()
		report.Stats = &s
	}

	if jsonOut {
		return printJSON(report)
	}

	for _, r := range report.Ops {
		printInfo("%4d  %s\n", r.Line, formatResult(r))
	}
	printInfo("\n%d operations, %d failed\n", len(report.Ops), report.Failed)

	if replayLayout {
		printInfo("\nLayout:\n")
		printInfo("  %8s  %8s  %-5s  %9s\n", "OFFSET", "SIZE", "STATE", "REQUESTED")
		for _, b := range report.Blocks {
			state := "used"
			if b.Free {
				state = "free"
			}
			printInfo("  %8d  %8d  %-5s  %9d\n", b.Offset, b.Size, state, b.Requested)
		}
	}
	if replayStats && !quiet {
		fmt.Fprintln(os.Stdout)
		report.Stats.Fprint(os.Stdout)
	}
	return nil
}

// apply runs ops in order. Allocator errors are recorded per operation and
// the replay continues; a free of a name never allocated stops it.
func apply(a *arena.FirstFit, ops []traceOp) ([]opResult, int, error) {
	refs := make(map[string]arena.Ref)
	results := make([]opResult, 0, len(ops))
	failed := 0

	for _, op := range ops {
		r := opResult{Line: op.Line, Op: string(op.Kind), Name: op.Name}
		var err error

		switch op.Kind {
		case opAlloc:
			r.Size = op.Size
			var ref arena.Ref
			ref, _, err = a.Allocate(op.Size)
			if err == nil {
				r.Ref = ref
				refs[op.Name] = ref
			}
		case opFree:
			ref, ok := refs[op.Name]
			if !ok {
				return nil, 0, fmt.Errorf("line %d: free of unknown allocation %q", op.Line, op.Name)
			}
			// Freed names stay mapped so a repeated free reaches the allocator.
			r.Ref = ref
			err = a.Deallocate(ref)
		}

		if err != nil {
			if errors.Is(err, arena.ErrCorrupt) {
				return nil, 0, fmt.Errorf("line %d: %w", op.Line, err)
			}
			r.Error = err.Error()
			failed++
		}
		results = append(results, r)
	}
	return results, failed, nil
}

func formatResult(r opResult) string {
	var sb strings.Builder
	switch opKind(r.Op) {
	case opAlloc:
		fmt.Fprintf(&sb, "alloc %-12s %7d", r.Name, r.Size)
		if r.Error == "" {
			fmt.Fprintf(&sb, " -> ref %d", r.Ref)
		}
	case opFree:
		fmt.Fprintf(&sb, "free  %-12s %7s -> ref %d", r.Name, "", r.Ref)
	}
	if r.Error != "" {
		fmt.Fprintf(&sb, "  FAILED: %s", r.Error)
	}
	return sb.String()
}
