package workerpool

import (
	"errors"
	"fmt"
	"testing"

	"github.com/vnykmshr/taskpool/internal/testutil"
	tperrors "github.com/vnykmshr/taskpool/pkg/common/errors"
	"github.com/vnykmshr/taskpool/pkg/streaming/channel"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{SpawnError, "SpawnError"},
		{InternalError, "InternalError"},
		{Unknown, "Unknown"},
		{Kind(42), "Kind(42)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			testutil.AssertEqual(t, tt.kind.String(), tt.want)
		})
	}
}

func TestErrorIsMatchesKind(t *testing.T) {
	err := spawnError(errors.New("boom"))

	testutil.AssertEqual(t, errors.Is(err, ErrSpawn), true)
	testutil.AssertEqual(t, errors.Is(err, ErrInternal), false)
	testutil.AssertEqual(t, KindOf(err), SpawnError)
	testutil.AssertEqual(t, KindOf(fmt.Errorf("wrapped: %w", err)), SpawnError)
	testutil.AssertEqual(t, KindOf(errors.New("plain")), Kind(0))
}

func TestSubmitErrorClassification(t *testing.T) {
	closed := submitError(channel.ErrChannelClosed)
	testutil.AssertEqual(t, KindOf(closed), InternalError)
	testutil.AssertErrorIs(t, closed, tperrors.ErrClosed)
	testutil.AssertErrorIs(t, closed, channel.ErrChannelClosed)

	unknown := submitError(errors.New("transport exploded"))
	testutil.AssertEqual(t, KindOf(unknown), Unknown)
	testutil.AssertErrorIs(t, unknown, ErrUnknown)
	testutil.AssertEqual(t, IsInternal(unknown), true)
	testutil.AssertEqual(t, IsInternal(closed), true)
	testutil.AssertEqual(t, IsInternal(spawnError(nil)), false)
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"kind only", &Error{Kind: Unknown}, "[Unknown]"},
		{"with op", &Error{Kind: InternalError, Op: "workerpool.Submit"}, "[InternalError] workerpool.Submit"},
		{"with cause", &Error{Kind: SpawnError, Err: errors.New("no")}, "[SpawnError] no"},
		{"full", &Error{Kind: InternalError, Op: "workerpool.Submit", Err: tperrors.ErrClosed}, "[InternalError] workerpool.Submit: resource is closed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, tt.err.Error(), tt.want)
		})
	}
}
