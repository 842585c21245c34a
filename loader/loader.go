package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/friendgraph/core"
)

// initialLineBuffer is the scanner's starting buffer; it grows up to MaxLineBytes.
const initialLineBuffer = 64 << 10

// ParseRecord parses a single input line. lineNo is only used for errors.
//
// The line is split on its first tab. An empty second field yields a record
// with no friends; otherwise the field is split on commas and every token,
// with surrounding spaces trimmed, must parse as a base-10 int64.
// A trailing '\r' is ignored so CRLF input parses the same as LF input.
func ParseRecord(lineNo int, line string) (Record, error) {
	line = strings.TrimSuffix(line, "\r")

	userField, friendField, ok := strings.Cut(line, "\t")
	if !ok {
		return Record{}, newRecordError(lineNo, line, "missing tab separator")
	}

	user, err := strconv.ParseInt(strings.TrimSpace(userField), 10, 64)
	if err != nil {
		return Record{}, newRecordError(lineNo, line, fmt.Sprintf("user %q is not an integer", userField))
	}

	rec := Record{User: user}
	if friendField == "" {
		return rec, nil
	}

	tokens := strings.Split(friendField, ",")
	rec.Friends = make([]int64, 0, len(tokens))
	for i, tok := range tokens {
		f, err := strconv.ParseInt(strings.TrimSpace(tok), 10, 64)
		if err != nil {
			return Record{}, newRecordError(lineNo, line, fmt.Sprintf("friend #%d %q is not an integer", i+1, tok))
		}
		rec.Friends = append(rec.Friends, f)
	}

	return rec, nil
}

// Load reads records from r and builds the graph.
//
// Error Conditions:
//   - ErrOptionViolation: an Option was given an invalid value.
//   - ErrMalformedRecord: a line failed to parse (first one, or all of them
//     joined when WithCollectErrors is set).
//   - scanner or context errors, wrapped with the line reached.
func Load(r io.Reader, opts ...Option) (*core.Graph, error) {
	records, err := ReadRecords(r, opts...)
	if err != nil {
		return nil, err
	}

	return Build(records)
}

// LoadFile opens path and calls Load on it.
func LoadFile(path string, opts ...Option) (*core.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: open input: %w", err)
	}
	defer f.Close()

	g, err := Load(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return g, nil
}

// ReadRecords parses every line of r into a Record without building a graph.
// It honors the same options and error policy as Load.
func ReadRecords(r io.Reader, opts ...Option) ([]Record, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, min(initialLineBuffer, o.MaxLineBytes)), o.MaxLineBytes)

	var (
		records []Record
		bad     []error
		omitted int
		lineNo  int
	)
	for sc.Scan() {
		lineNo++
		if err := o.Ctx.Err(); err != nil {
			return nil, fmt.Errorf("loader: stopped at line %d: %w", lineNo, err)
		}

		rec, err := ParseRecord(lineNo, sc.Text())
		if err != nil {
			if !o.CollectErrors {
				return nil, err
			}
			if len(bad) < o.MaxErrors {
				bad = append(bad, err)
			} else {
				omitted++
			}
			continue
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("loader: reading line %d: %w", lineNo+1, err)
	}

	if len(bad) > 0 {
		if omitted > 0 {
			bad = append(bad, fmt.Errorf("%w: %d more not shown", ErrMalformedRecord, omitted))
		}
		return nil, errors.Join(bad...)
	}

	return records, nil
}

// Build turns parsed records into a core.Graph. The vertex set is the union
// of users and friends; edges follow record order, then token order.
func Build(records []Record) (*core.Graph, error) {
	var (
		vertices []int64
		edges    []core.Edge
	)
	for _, rec := range records {
		vertices = append(vertices, rec.User)
		for _, f := range rec.Friends {
			vertices = append(vertices, f)
			edges = append(edges, core.Edge{Src: rec.User, Dst: f})
		}
	}

	g, err := core.New(vertices, edges)
	if err != nil {
		// Records produce every endpoint as a vertex, so this is a loader bug.
		return nil, fmt.Errorf("loader: build graph: %w", err)
	}

	return g, nil
}

// WriteRecords writes records to w in the input format, one per line.
func WriteRecords(w io.Writer, records []Record) error {
	bw := bufio.NewWriter(w)
	for _, rec := range records {
		if _, err := bw.WriteString(rec.String()); err != nil {
			return fmt.Errorf("loader: write record %d: %w", rec.User, err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("loader: write record %d: %w", rec.User, err)
		}
	}

	return bw.Flush()
}
