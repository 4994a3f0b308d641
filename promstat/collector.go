// Package promstat exports heap statistics as Prometheus metrics.
package promstat

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pavanmanishd/halloc"
)

// Source is implemented by halloc.Heap and halloc.SafeHeap. Collect calls
// Metrics from the scrape goroutine, so a plain Heap must not be used
// concurrently with a registry that scrapes it; prefer SafeHeap.
type Source interface {
	Metrics() halloc.HeapMetrics
}

// Collector implements prometheus.Collector over a heap.
type Collector struct {
	src Source

	capacity *prometheus.Desc
	inUse    *prometheus.Desc
	free     *prometheus.Desc
	blocks   *prometheus.Desc
	ops      *prometheus.Desc
	merges   *prometheus.Desc
	failures *prometheus.Desc
}

// NewCollector returns a collector for src. Metric names are prefixed by
// namespace ("halloc" if empty); labels are attached to every metric.
func NewCollector(namespace string, src Source, labels prometheus.Labels) *Collector {
	if namespace == "" {
		namespace = "halloc"
	}
	desc := func(name, help string, variable ...string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), help, variable, labels)
	}
	return &Collector{
		src:      src,
		capacity: desc("capacity_bytes", "Arena size in bytes."),
		inUse:    desc("in_use_bytes", "Payload bytes held by allocated blocks."),
		free:     desc("free_bytes", "Payload bytes held by free blocks."),
		blocks:   desc("blocks", "Blocks in the chain."),
		ops:      desc("operations_total", "Completed heap operations.", "op"),
		merges:   desc("merge_passes_total", "Coalescing passes run."),
		failures: desc("out_of_memory_total", "Requests that found no fitting block."),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.capacity
	ch <- c.inUse
	ch <- c.free
	ch <- c.blocks
	ch <- c.ops
	ch <- c.merges
	ch <- c.failures
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	m := c.src.Metrics()

	ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(m.Capacity))
	ch <- prometheus.MustNewConstMetric(c.inUse, prometheus.GaugeValue, float64(m.SizeInUse))
	ch <- prometheus.MustNewConstMetric(c.free, prometheus.GaugeValue, float64(m.SizeFree))
	ch <- prometheus.MustNewConstMetric(c.blocks, prometheus.GaugeValue, float64(m.NumBlocks))
	ch <- prometheus.MustNewConstMetric(c.ops, prometheus.CounterValue, float64(m.Allocs), "alloc")
	ch <- prometheus.MustNewConstMetric(c.ops, prometheus.CounterValue, float64(m.Frees), "free")
	ch <- prometheus.MustNewConstMetric(c.ops, prometheus.CounterValue, float64(m.Reallocs), "realloc")
	ch <- prometheus.MustNewConstMetric(c.merges, prometheus.CounterValue, float64(m.Merges))
	ch <- prometheus.MustNewConstMetric(c.failures, prometheus.CounterValue, float64(m.Failures))
}
