// Package metrics exports skema build and assignment outcomes as Prometheus
// counters. Install a Collector with skema.SetObserver.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/reoring/skema"
)

// Collector implements skema.Observer.
type Collector struct {
	builds         *prometheus.CounterVec
	assignFailures *prometheus.CounterVec
}

var _ skema.Observer = (*Collector)(nil)

// Config configures a Collector.
type Config struct {
	// Prefix is added to all metric names (default: "skema").
	Prefix string

	// Registerer receives the counters. Nil registers nothing; the counters
	// can then be collected through the Collector itself.
	Registerer prometheus.Registerer
}

// NewCollector creates the counters and registers them.
func NewCollector(cfg Config) (*Collector, error) {
	if cfg.Prefix == "" {
		cfg.Prefix = "skema"
	}
	c := &Collector{
		builds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: cfg.Prefix + "_builds_total",
				Help: "Total number of instance builds by type and result",
			},
			[]string{"type", "result"},
		),
		assignFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: cfg.Prefix + "_assign_failures_total",
				Help: "Total number of rejected field assignments by type, field and error code",
			},
			[]string{"type", "field", "code"},
		),
	}
	if cfg.Registerer != nil {
		if err := cfg.Registerer.Register(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ObserveBuild counts one build.
func (c *Collector) ObserveBuild(typeName string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.builds.WithLabelValues(typeName, result).Inc()
}

// ObserveAssign counts failed assignments; successful ones are not counted.
func (c *Collector) ObserveAssign(typeName, field string, err error) {
	if err == nil {
		return
	}
	code := "unknown"
	if e, ok := skema.AsError(err); ok {
		code = e.Code
	}
	c.assignFailures.WithLabelValues(typeName, field, code).Inc()
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.builds.Describe(ch)
	c.assignFailures.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.builds.Collect(ch)
	c.assignFailures.Collect(ch)
}
