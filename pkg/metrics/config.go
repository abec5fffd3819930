package metrics

import (
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// Config selects where and under which names metrics are registered.
type Config struct {
	// Enabled controls whether metrics collection is active.
	Enabled bool

	// Registry receives the collectors. Nil means prometheus.DefaultRegisterer.
	Registry prometheus.Registerer

	// Namespace replaces DefaultNamespace as the metric name prefix.
	Namespace string

	// Labels are attached to every series as constant labels.
	Labels prometheus.Labels
}

// DefaultConfig returns metrics enabled on the default registerer.
func DefaultConfig() Config {
	return Config{
		Enabled:   true,
		Registry:  prometheus.DefaultRegisterer,
		Namespace: DefaultNamespace,
	}
}

func (c Config) withDefaults() Config {
	if c.Registry == nil {
		c.Registry = prometheus.DefaultRegisterer
	}
	if c.Namespace == "" {
		c.Namespace = DefaultNamespace
	}
	return c
}

// isDefault reports whether c resolves to DefaultRegistry. c must already
// have defaults applied.
func (c Config) isDefault() bool {
	return c.Registry == prometheus.DefaultRegisterer && c.Namespace == DefaultNamespace && len(c.Labels) == 0
}

// registryKey identifies the collectors a Config resolves to.
type registryKey struct {
	reg       prometheus.Registerer
	namespace string
	labels    string
}

func (c Config) key() registryKey {
	return registryKey{reg: c.Registry, namespace: c.Namespace, labels: labelKey(c.Labels)}
}

// labelKey renders labels in sorted order so equal sets compare equal.
func labelKey(labels prometheus.Labels) string {
	if len(labels) == 0 {
		return ""
	}
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(labels[k])
		b.WriteByte(',')
	}
	return b.String()
}

// Instrumentable is implemented by components whose metrics can be switched
// on and off at run time.
type Instrumentable interface {
	EnableMetrics(config Config) error
	DisableMetrics()
	MetricsEnabled() bool
}
