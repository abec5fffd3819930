/*
Package streaming groups the data transport primitives used by the taskpool
library.

  - channel: Unbounded multi-consumer FIFO channel with an owned sending end

Basic usage:

	tx, rx := channel.NewUnbounded[int]()
	tx.Send(1)
	v, _ := rx.Receive()
	tx.Close()
*/
package streaming
