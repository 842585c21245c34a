package loader

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Sentinel errors for record parsing.
var (
	// ErrMalformedRecord indicates a line that does not follow the record format.
	ErrMalformedRecord = errors.New("loader: malformed record")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("loader: invalid option supplied")
)

// RecordError describes one malformed input line.
// It matches ErrMalformedRecord under errors.Is.
type RecordError struct {
	// Line is the 1-based line number.
	Line int

	// Text is the raw line, truncated for very long input.
	Text string

	// Reason says what is wrong with the line.
	Reason string
}

// maxQuotedText bounds how much of a bad line is echoed back in errors.
const maxQuotedText = 80

// Error implements error.
func (e *RecordError) Error() string {
	return fmt.Sprintf("loader: line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// Is reports whether target is ErrMalformedRecord.
func (e *RecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

func newRecordError(line int, text, reason string) *RecordError {
	if len(text) > maxQuotedText {
		cut := maxQuotedText
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut] + "..."
	}

	return &RecordError{Line: line, Text: text, Reason: reason}
}

// Record is one parsed input line: a user and the friends it lists.
type Record struct {
	User    int64
	Friends []int64
}

// String renders r back into the input format.
func (r Record) String() string {
	var b strings.Builder
	b.WriteString(strconv.FormatInt(r.User, 10))
	b.WriteByte('\t')
	for i, f := range r.Friends {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(f, 10))
	}

	return b.String()
}

// Option configures Load via functional arguments. Invalid values are recorded
// and surfaced as ErrOptionViolation when Load runs.
type Option func(*Options)

// Options holds parameters for Load.
type Options struct {
	// Ctx allows cancellation between lines.
	Ctx context.Context

	// CollectErrors keeps parsing after a bad line and reports all of them.
	CollectErrors bool

	// MaxErrors caps how many RecordErrors are kept when collecting.
	MaxErrors int

	// MaxLineBytes is the largest accepted line length.
	MaxLineBytes int

	err error
}

// Defaults for Options.
const (
	DefaultMaxErrors    = 100
	DefaultMaxLineBytes = 16 << 20
)

// DefaultOptions returns Options that abort on the first malformed line.
func DefaultOptions() Options {
	return Options{
		Ctx:          context.Background(),
		MaxErrors:    DefaultMaxErrors,
		MaxLineBytes: DefaultMaxLineBytes,
	}
}

// WithContext sets a context checked between lines.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithCollectErrors makes Load read the whole input and fail with every
// malformed line joined into one error.
func WithCollectErrors() Option {
	return func(o *Options) { o.CollectErrors = true }
}

// WithMaxErrors caps the number of kept RecordErrors (n > 0).
func WithMaxErrors(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: MaxErrors must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxErrors = n
	}
}

// WithMaxLineBytes sets the scanner buffer limit (n > 0).
func WithMaxLineBytes(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: MaxLineBytes must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxLineBytes = n
	}
}
