// Copyright 2026 The FastQTools Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fastqtools

import "github.com/prometheus/client_golang/prometheus"

// Metrics publishes a running pipeline's counters as Prometheus
// collectors, registered under a caller-supplied registry so embedding
// binaries can scrape pipeline health without the pipeline package owning
// a global default registry.
type Metrics struct {
	recordsTotal    *prometheus.CounterVec
	poolHitRatio    prometheus.Gauge
	throughputMBs   prometheus.Gauge
	stageDurationMs *prometheus.HistogramVec
}

// NewMetrics constructs and registers a Metrics instance under reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		recordsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fastqtools",
			Subsystem: "pipeline",
			Name:      "records_total",
			Help:      "Records processed, labeled by outcome (passed, filtered, errored).",
		}, []string{"outcome"}),
		poolHitRatio: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fastqtools",
			Subsystem: "pipeline",
			Name:      "pool_hit_ratio",
			Help:      "BatchPool hits / (hits + misses) for the most recent run.",
		}),
		throughputMBs: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fastqtools",
			Subsystem: "pipeline",
			Name:      "throughput_megabytes_per_second",
			Help:      "Observed throughput of the most recent run.",
		}),
		stageDurationMs: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "fastqtools",
			Subsystem: "pipeline",
			Name:      "stage_duration_milliseconds",
			Help:      "Per-stage wall time for the most recent run.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"stage"}),
	}
	reg.MustRegister(m.recordsTotal, m.poolHitRatio, m.throughputMBs, m.stageDurationMs)
	return m
}

// observe records one completed run's PipelineStats.
func (m *Metrics) observe(stats PipelineStats) {
	if m == nil {
		return
	}
	m.recordsTotal.WithLabelValues("passed").Add(float64(stats.PassedRecords))
	m.recordsTotal.WithLabelValues("filtered").Add(float64(stats.FilteredRecords))
	m.recordsTotal.WithLabelValues("errored").Add(float64(stats.ErroredRecords))
	m.poolHitRatio.Set(stats.PoolHitRate())
	m.throughputMBs.Set(stats.ThroughputMegabytesPerSecond)
	m.stageDurationMs.WithLabelValues("input").Observe(float64(stats.InputTime.Milliseconds()))
	m.stageDurationMs.WithLabelValues("processing").Observe(float64(stats.ProcessingTime.Milliseconds()))
	m.stageDurationMs.WithLabelValues("output").Observe(float64(stats.OutputTime.Milliseconds()))
}
