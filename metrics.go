package timetree

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector exports the committed seconds of every region of a Tracker as
// Prometheus gauges labelled with the region path ("/" for the root).
type Collector struct {
	tracker *Tracker

	seconds *prometheus.Desc
	ratio   *prometheus.Desc
}

func NewCollector(tracker *Tracker, namespace string) *Collector {
	return &Collector{
		tracker: tracker,
		seconds: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "region", "seconds"),
			"Wall-clock seconds accumulated by the region",
			[]string{"path"}, nil,
		),
		ratio: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "region", "parent_ratio"),
			"Share of the parent region's time spent in the region",
			[]string{"path"}, nil,
		),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.seconds
	ch <- c.ratio
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.tracker.Report().Walk(func(path []string, node, parent Report) {
		label := "/" + strings.Join(path, "/")
		ch <- prometheus.MustNewConstMetric(c.seconds, prometheus.GaugeValue, node.Sum, label)
		ch <- prometheus.MustNewConstMetric(c.ratio, prometheus.GaugeValue, percent(node.Sum, parent.Sum)/100, label)
	})
}
