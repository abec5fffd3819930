package channel

import (
	"errors"
	"sync"
	"sync/atomic"
)

// ErrChannelClosed is returned by Send after Close, and by Receive once the
// channel is closed and every buffered value has been handed out.
var ErrChannelClosed = errors.New("channel is closed")

// minCapacity is the initial ring size; the ring doubles when full.
const minCapacity = 16

// Stats holds counters describing channel traffic.
type Stats struct {
	// SendCount is the total number of accepted sends.
	SendCount int64

	// ReceiveCount is the total number of values handed to receivers.
	ReceiveCount int64

	// Pending is the number of values buffered at the time of the call.
	Pending int64
}

// unbounded is the state shared by a Sender and its Receiver.
type unbounded[T any] struct {
	mu       sync.Mutex
	nonEmpty *sync.Cond

	buf   []T
	head  int
	count int

	closed atomic.Bool

	sendCount    atomic.Int64
	receiveCount atomic.Int64
}

// Sender is the producing end of an unbounded channel. Sends never block.
type Sender[T any] struct {
	ch *unbounded[T]
}

// Receiver is the consuming end of an unbounded channel.
// A single Receiver may be shared by any number of goroutines; each buffered
// value is delivered to exactly one of them.
type Receiver[T any] struct {
	ch *unbounded[T]
}

// NewUnbounded creates an unbounded FIFO channel and returns its two ends.
func NewUnbounded[T any]() (*Sender[T], *Receiver[T]) {
	ch := &unbounded[T]{
		buf: make([]T, minCapacity),
	}
	ch.nonEmpty = sync.NewCond(&ch.mu)
	return &Sender[T]{ch: ch}, &Receiver[T]{ch: ch}
}

// Send appends value to the channel. It returns ErrChannelClosed if Close
// has been called.
func (s *Sender[T]) Send(value T) error {
	ch := s.ch

	ch.mu.Lock()
	if ch.closed.Load() {
		ch.mu.Unlock()
		return ErrChannelClosed
	}
	ch.pushLocked(value)
	ch.mu.Unlock()

	ch.sendCount.Add(1)
	ch.nonEmpty.Signal()
	return nil
}

// Close marks the channel closed. Values already sent stay available to
// receivers. Close is idempotent.
func (s *Sender[T]) Close() error {
	ch := s.ch

	ch.mu.Lock()
	if ch.closed.Swap(true) {
		ch.mu.Unlock()
		return nil
	}
	ch.mu.Unlock()

	ch.nonEmpty.Broadcast()
	return nil
}

// IsClosed returns true once Close has been called.
func (s *Sender[T]) IsClosed() bool {
	return s.ch.closed.Load()
}

// Len returns the number of buffered values.
func (s *Sender[T]) Len() int {
	return s.ch.len()
}

// Receive blocks until a value is available or the channel is closed and
// drained. In the latter case it returns ErrChannelClosed.
func (r *Receiver[T]) Receive() (T, error) {
	ch := r.ch

	ch.mu.Lock()
	for ch.count == 0 {
		if ch.closed.Load() {
			ch.mu.Unlock()
			var zero T
			return zero, ErrChannelClosed
		}
		ch.nonEmpty.Wait()
	}
	value := ch.popLocked()
	ch.mu.Unlock()

	ch.receiveCount.Add(1)
	return value, nil
}

// TryReceive returns the next value without blocking. ok is false when
// nothing is buffered; err is ErrChannelClosed once closed and drained.
func (r *Receiver[T]) TryReceive() (value T, ok bool, err error) {
	ch := r.ch

	ch.mu.Lock()
	if ch.count == 0 {
		closed := ch.closed.Load()
		ch.mu.Unlock()
		if closed {
			return value, false, ErrChannelClosed
		}
		return value, false, nil
	}
	value = ch.popLocked()
	ch.mu.Unlock()

	ch.receiveCount.Add(1)
	return value, true, nil
}

// Len returns the number of buffered values.
func (r *Receiver[T]) Len() int {
	return r.ch.len()
}

// Stats returns a snapshot of channel counters.
func (r *Receiver[T]) Stats() Stats {
	return Stats{
		SendCount:    r.ch.sendCount.Load(),
		ReceiveCount: r.ch.receiveCount.Load(),
		Pending:      int64(r.ch.len()),
	}
}

func (ch *unbounded[T]) len() int {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.count
}

// pushLocked appends to the tail, growing the ring if needed.
func (ch *unbounded[T]) pushLocked(value T) {
	if ch.count == len(ch.buf) {
		ch.growLocked()
	}
	ch.buf[(ch.head+ch.count)%len(ch.buf)] = value
	ch.count++
}

// popLocked removes from the head. The caller guarantees count > 0.
func (ch *unbounded[T]) popLocked() T {
	var zero T
	value := ch.buf[ch.head]
	ch.buf[ch.head] = zero // release the reference for GC
	ch.head = (ch.head + 1) % len(ch.buf)
	ch.count--
	if ch.count == 0 {
		ch.head = 0
	}
	return value
}

func (ch *unbounded[T]) growLocked() {
	grown := make([]T, len(ch.buf)*2)
	n := copy(grown, ch.buf[ch.head:])
	copy(grown[n:], ch.buf[:ch.head])
	ch.buf = grown
	ch.head = 0
}
