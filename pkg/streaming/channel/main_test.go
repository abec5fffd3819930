package channel

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain enables goroutine leak detection for all tests in this package.
// This catches receivers left blocked on a channel that was never closed.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
