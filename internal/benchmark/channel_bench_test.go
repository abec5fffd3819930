package benchmark

import (
	"strconv"
	"sync"
	"testing"

	"github.com/vnykmshr/taskpool/pkg/streaming/channel"
)

// BenchmarkChannelSend measures send performance with a live consumer.
func BenchmarkChannelSend(b *testing.B) {
	tx, rx := channel.NewUnbounded[int]()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, err := rx.Receive(); err != nil {
				return
			}
		}
	}()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = tx.Send(i)
	}
	b.StopTimer()

	_ = tx.Close()
	<-done
}

// BenchmarkChannelBurst measures growth of the ring under a burst that is
// drained only afterwards.
func BenchmarkChannelBurst(b *testing.B) {
	burstSizes := []int{16, 1024, 65536}

	for _, burst := range burstSizes {
		b.Run(sizeLabel(burst), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				tx, rx := channel.NewUnbounded[int]()
				for j := 0; j < burst; j++ {
					_ = tx.Send(j)
				}
				_ = tx.Close()
				for {
					if _, err := rx.Receive(); err != nil {
						break
					}
				}
			}
		})
	}
}

// BenchmarkChannelContention measures many senders against many receivers.
func BenchmarkChannelContention(b *testing.B) {
	levels := []int{2, 8, 32}

	for _, level := range levels {
		b.Run(contentionLabel(level), func(b *testing.B) {
			tx, rx := channel.NewUnbounded[int]()

			var receivers sync.WaitGroup
			for r := 0; r < level; r++ {
				receivers.Add(1)
				go func() {
					defer receivers.Done()
					for {
						if _, err := rx.Receive(); err != nil {
							return
						}
					}
				}()
			}

			b.ReportAllocs()
			b.ResetTimer()
			b.SetParallelism(level)
			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					_ = tx.Send(1)
				}
			})
			b.StopTimer()

			_ = tx.Close()
			receivers.Wait()
		})
	}
}

// BenchmarkChannelTryReceive measures the non-blocking path on an empty channel.
func BenchmarkChannelTryReceive(b *testing.B) {
	tx, rx := channel.NewUnbounded[int]()
	defer func() { _ = tx.Close() }()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = rx.TryReceive()
	}
}

func sizeLabel(n int) string {
	return "size_" + strconv.Itoa(n)
}

func contentionLabel(level int) string {
	return "goroutines_" + strconv.Itoa(level)
}
