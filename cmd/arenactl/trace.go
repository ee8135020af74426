package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// opKind is the verb of one trace line.
type opKind string

const (
	opAlloc opKind = "alloc"
	opFree  opKind = "free"
)

// traceOp is one parsed trace line.
//
// Trace format, one operation per line:
//
//	alloc <name> <size>
//	free <name>
//
// Blank lines and lines starting with '#' are skipped.
type traceOp struct {
	Line int
	Kind opKind
	Name string
	Size int32 // alloc only
}

// parseTrace reads every operation from r. Sizes are parsed as int32 but
// not range-checked so that invalid sizes reach the allocator.
func parseTrace(r io.Reader) ([]traceOp, error) {
	var ops []traceOp
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		switch opKind(fields[0]) {
		case opAlloc:
			if len(fields) != 3 {
				return nil, fmt.Errorf("line %d: expected \"alloc <name> <size>\", got %q", line, text)
			}
			size, err := strconv.ParseInt(fields[2], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid size %q: %w", line, fields[2], err)
			}
			ops = append(ops, traceOp{Line: line, Kind: opAlloc, Name: fields[1], Size: int32(size)})
		case opFree:
			if len(fields) != 2 {
				return nil, fmt.Errorf("line %d: expected \"free <name>\", got %q", line, text)
			}
			ops = append(ops, traceOp{Line: line, Kind: opFree, Name: fields[1]})
		default:
			return nil, fmt.Errorf("line %d: unknown operation %q", line, fields[0])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read trace: %w", err)
	}
	return ops, nil
}
