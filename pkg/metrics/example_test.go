package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// Example_basicUsage demonstrates basic metrics configuration.
func Example_basicUsage() {
	// Create a separate registry for this test
	registry, err := NewRegistry(prometheus.NewRegistry())
	if err != nil {
		fmt.Println(err)
		return
	}

	registry.TasksSubmitted.WithLabelValues("example").Add(10)
	registry.TasksCompleted.WithLabelValues("example").Add(9)
	registry.TasksPanicked.WithLabelValues("example").Inc()

	fmt.Println(testutil.ToFloat64(registry.TasksSubmitted.WithLabelValues("example")))
	fmt.Println(testutil.ToFloat64(registry.TasksPanicked.WithLabelValues("example")))

	// Output:
	// 10
	// 1
}

// Example_customNamespace demonstrates overriding the metric namespace.
func Example_customNamespace() {
	reg := prometheus.NewRegistry()
	registry, err := NewRegistryFromConfig(Config{
		Enabled:   true,
		Registry:  reg,
		Namespace: "myapp",
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	registry.WorkerPoolSize.WithLabelValues("jobs").Set(4)

	families, _ := reg.Gather()
	for _, mf := range families {
		fmt.Println(mf.GetName())
	}

	// Output:
	// myapp_workerpool_size
}
