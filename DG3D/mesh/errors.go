package mesh

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies the failures the tool can report
type Kind uint8

const (
	KindUnknown Kind = iota
	KindArgument
	KindIO
	KindAllocation
	KindOutOfRange
)

func (k Kind) String() string {
	return [...]string{"UnknownError", "ArgumentError", "IOError",
		"AllocationError", "OutOfRangeError"}[k]
}

var (
	// ErrShortRead is wrapped when a file holds fewer values than its header declares
	ErrShortRead = errors.New("short read")
	// ErrNegativeCount is wrapped when a header declares a negative record count
	ErrNegativeCount = errors.New("negative record count")
)

// Error carries the kind of failure, the operation and file involved, and the cause
type Error struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	parts := make([]string, 0, 3)
	if e.Op != "" {
		parts = append(parts, e.Op)
	}
	if e.Path != "" {
		parts = append(parts, e.Path)
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	if len(parts) == 0 {
		return e.Kind.String()
	}
	return strings.Join(parts, ": ")
}

func (e *Error) Unwrap() error { return e.Err }

// NewIOError builds a KindIO error
func NewIOError(op, path string, err error) *Error {
	return &Error{Kind: KindIO, Op: op, Path: path, Err: err}
}

// NewArgumentError builds a KindArgument error
func NewArgumentError(op string, err error) *Error {
	return &Error{Kind: KindArgument, Op: op, Err: err}
}

// WithPath attaches path to err. An *Error without a path is copied with the
// path filled in; anything else becomes a KindIO error on that path.
func WithPath(err error, path string) error {
	if err == nil {
		return nil
	}
	var me *Error
	if errors.As(err, &me) {
		if me.Path != "" {
			return err
		}
		cp := *me
		cp.Path = path
		return &cp
	}
	return NewIOError("", path, err)
}

// OutOfRangeError reports an index outside [0, Len)
type OutOfRangeError struct {
	What  string
	Index int
	Len   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s index %d out of range [0,%d)", e.What, e.Index, e.Len)
}

// KindOf returns the Kind of the first classified error in err's chain
func KindOf(err error) Kind {
	var (
		me *Error
		oe *OutOfRangeError
	)
	switch {
	case err == nil:
		return KindUnknown
	case errors.As(err, &oe):
		return KindOutOfRange
	case errors.As(err, &me):
		return me.Kind
	}
	return KindUnknown
}
