package metric

import "github.com/prometheus/client_golang/prometheus"

// KeyCounter reports how many keys are stored.
type KeyCounter interface {
	Len() int
}

// Collector exports storage statistics read at scrape time.
type Collector struct {
	keys    KeyCounter
	keyDesc *prometheus.Desc
}

// NewCollector creates a collector reading from keys.
func NewCollector(keys KeyCounter) *Collector {
	return &Collector{
		keys: keys,
		keyDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "keys"),
			"Number of keys currently stored.",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.keyDesc
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.keyDesc, prometheus.GaugeValue, float64(c.keys.Len()))
}
