/*
Package channel provides an unbounded, multi-consumer FIFO channel.

NewUnbounded returns a Sender and a Receiver sharing one buffer. The Sender is
meant to have a single owner; the Receiver may be shared by any number of
goroutines that compete for values:

	tx, rx := channel.NewUnbounded[func()]()

	for i := 0; i < 4; i++ {
		go func() {
			for {
				fn, err := rx.Receive()
				if err != nil {
					return // closed and drained
				}
				fn()
			}
		}()
	}

	tx.Send(func() { fmt.Println("hello") })
	tx.Close()

Semantics:

  - Send never blocks; the buffer grows as needed.
  - Values become available to receivers in the order they were sent.
  - Each value is handed to exactly one receiver. Removal and hand-off happen
    under the channel's internal lock, which is never exposed.
  - After Close, Send returns ErrChannelClosed. Receivers keep draining
    buffered values; once the buffer is empty every Receive returns
    ErrChannelClosed.

There is no capacity limit and no back-pressure. Producers that can outrun
their consumers for long periods should bound their own submission rate.
*/
package channel
