package adf

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// Decomposition is a parsed ADF artifact: the claim α(N) ≤ K backed by K
// explicit element sets. It is loaded once and never mutated.
type Decomposition struct {
	N    uint64
	K    int
	Sets []*roaring64.Bitmap
}

// ParseError is a structural error in an ADF artifact.
//
// Line is the 1-based line number of the offending input line.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("adf: line %d: %s", e.Line, e.Msg)
}

func parseErrorf(line int, format string, args ...any) *ParseError {
	return &ParseError{Line: line, Msg: fmt.Sprintf(format, args...)}
}

// ParseFile parses the ADF artifact at path.
// A missing file surfaces as an I/O error, distinct from parse errors:
// errors.Is(err, os.ErrNotExist) holds and *ParseError does not match.
func ParseFile(path string) (*Decomposition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("adf: open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads an ADF artifact from r.
func Parse(r io.Reader) (*Decomposition, error) {
	var (
		d          *Decomposition
		nextSetID  = 1
		lineNumber = 0
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line[0] {
		case 'c':
			// Comment.

		case 'p':
			if d != nil {
				return nil, parseErrorf(lineNumber, "duplicate problem line: %q", line)
			}
			n, k, err := parseProblemLine(line, lineNumber)
			if err != nil {
				return nil, err
			}
			d = &Decomposition{N: n, K: k}

		case 's':
			if d == nil {
				return nil, parseErrorf(lineNumber, "set line before problem line")
			}
			set, err := parseSetLine(line, lineNumber, nextSetID)
			if err != nil {
				return nil, err
			}
			d.Sets = append(d.Sets, set)
			nextSetID++

		default:
			return nil, parseErrorf(lineNumber, "unknown line type: %q", line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("adf: read: %w", err)
	}

	if d == nil {
		return nil, parseErrorf(lineNumber, "missing problem line")
	}
	if len(d.Sets) != d.K {
		return nil, parseErrorf(lineNumber, "expected %d sets, got %d", d.K, len(d.Sets))
	}
	return d, nil
}

func parseProblemLine(line string, lineNumber int) (uint64, int, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 || fields[1] != "alpha" {
		return 0, 0, parseErrorf(lineNumber, "invalid problem line: %q", line)
	}
	n, err := strconv.ParseUint(fields[2], 10, 64)
	if err != nil || n == 0 {
		return 0, 0, parseErrorf(lineNumber, "n must be positive: %q", fields[2])
	}
	k, err := strconv.Atoi(fields[3])
	if err != nil || k <= 0 {
		return 0, 0, parseErrorf(lineNumber, "k must be positive: %q", fields[3])
	}
	return n, k, nil
}

func parseSetLine(line string, lineNumber, wantID int) (*roaring64.Bitmap, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return nil, parseErrorf(lineNumber, "invalid set line: %q", line)
	}
	id, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, parseErrorf(lineNumber, "invalid set id: %q", fields[1])
	}
	if id != wantID {
		return nil, parseErrorf(lineNumber, "expected set %d, got %d", wantID, id)
	}
	if fields[len(fields)-1] != "0" {
		return nil, parseErrorf(lineNumber, "set line must end with 0: %q", line)
	}

	set := roaring64.New()
	for _, field := range fields[2 : len(fields)-1] {
		v, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return nil, parseErrorf(lineNumber, "invalid element %q in set %d", field, id)
		}
		if v < 0 {
			return nil, parseErrorf(lineNumber, "negative element %d in set %d", v, id)
		}
		set.Add(uint64(v))
	}
	return set, nil
}
