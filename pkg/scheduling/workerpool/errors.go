package workerpool

import (
	"errors"
	"fmt"

	tperrors "github.com/vnykmshr/taskpool/pkg/common/errors"
	"github.com/vnykmshr/taskpool/pkg/streaming/channel"
)

// Kind classifies pool errors.
type Kind int

const (
	// SpawnError reports a failed construction: invalid configuration or a
	// worker that could not be started. No workers are left running.
	SpawnError Kind = iota + 1

	// InternalError reports a rejected submission, most commonly because the
	// pool is closing or closed.
	InternalError

	// Unknown covers transport failures that could not be classified.
	// Callers should treat it like InternalError.
	Unknown
)

func (k Kind) String() string {
	switch k {
	case SpawnError:
		return "SpawnError"
	case InternalError:
		return "InternalError"
	case Unknown:
		return "Unknown"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the error type returned by pool constructors and Submit.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

// Sentinels for use with errors.Is; they match any *Error of the same Kind.
var (
	ErrSpawn    = &Error{Kind: SpawnError}
	ErrInternal = &Error{Kind: InternalError}
	ErrUnknown  = &Error{Kind: Unknown}
)

// ErrNilTask is wrapped by the error Submit returns for a nil task.
var ErrNilTask = errors.New("task cannot be nil")

func (e *Error) Error() string {
	switch {
	case e.Op == "" && e.Err == nil:
		return "[" + e.Kind.String() + "]"
	case e.Err == nil:
		return fmt.Sprintf("[%s] %s", e.Kind, e.Op)
	case e.Op == "":
		return fmt.Sprintf("[%s] %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Op, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches kind-only sentinels such as ErrSpawn.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Op != "" || t.Err != nil {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind
	}
	return 0
}

// IsInternal reports whether err is an InternalError or an Unknown error.
func IsInternal(err error) bool {
	return errors.Is(err, ErrInternal) || errors.Is(err, ErrUnknown)
}

func spawnError(err error) error {
	return &Error{Kind: SpawnError, Op: "workerpool.New", Err: err}
}

// submitError classifies a failure returned by the task queue.
func submitError(err error) error {
	if errors.Is(err, channel.ErrChannelClosed) {
		return &Error{Kind: InternalError, Op: "workerpool.Submit", Err: fmt.Errorf("%w: %w", tperrors.ErrClosed, err)}
	}
	return &Error{Kind: Unknown, Op: "workerpool.Submit", Err: err}
}
