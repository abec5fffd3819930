package channel_test

import (
	"fmt"

	"github.com/vnykmshr/taskpool/pkg/streaming/channel"
)

// Example shows values draining in order after the sender closes.
func Example() {
	tx, rx := channel.NewUnbounded[string]()

	_ = tx.Send("first")
	_ = tx.Send("second")
	_ = tx.Close()

	for {
		v, err := rx.Receive()
		if err != nil {
			fmt.Println(err)
			break
		}
		fmt.Println(v)
	}

	// Output:
	// first
	// second
	// channel is closed
}
