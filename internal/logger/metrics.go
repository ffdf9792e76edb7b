package logger

import (
	"sync"
	"time"
)

// TimingStats summarizes the durations recorded under one name
type TimingStats struct {
	Count   int    `json:"count"`
	Total   string `json:"total"`
	Average string `json:"average"`
	Min     string `json:"min"`
	Max     string `json:"max"`
}

// MetricsSnapshot is a copy of the metrics at one point of a run
type MetricsSnapshot struct {
	Counters map[string]int64       `json:"counters"`
	Gauges   map[string]float64     `json:"gauges"`
	Timings  map[string]TimingStats `json:"timings"`
}

type metrics struct {
	mu       sync.Mutex
	counters map[string]int64
	gauges   map[string]float64
	timings  map[string][]time.Duration
}

func newMetrics() *metrics {
	return &metrics{
		counters: make(map[string]int64),
		gauges:   make(map[string]float64),
		timings:  make(map[string][]time.Duration),
	}
}

var defaultMetrics = newMetrics()

func (m *metrics) add(name string, n int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[name] += n
}

func (m *metrics) setGauge(name string, value float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gauges[name] = value
}

func (m *metrics) recordTiming(name string, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timings[name] = append(m.timings[name], d)
}

func (m *metrics) snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := MetricsSnapshot{
		Counters: make(map[string]int64, len(m.counters)),
		Gauges:   make(map[string]float64, len(m.gauges)),
		Timings:  make(map[string]TimingStats, len(m.timings)),
	}
	for k, v := range m.counters {
		s.Counters[k] = v
	}
	for k, v := range m.gauges {
		s.Gauges[k] = v
	}
	for name, durations := range m.timings {
		if len(durations) == 0 {
			continue
		}
		var total time.Duration
		lo, hi := durations[0], durations[0]
		for _, d := range durations {
			total += d
			lo = min(lo, d)
			hi = max(hi, d)
		}
		s.Timings[name] = TimingStats{
			Count:   len(durations),
			Total:   total.String(),
			Average: (total / time.Duration(len(durations))).String(),
			Min:     lo.String(),
			Max:     hi.String(),
		}
	}
	return s
}

// IncrCounter adds one to the named counter
func IncrCounter(name string) {
	defaultMetrics.add(name, 1)
}

// AddCounter adds n to the named counter
func AddCounter(name string, n int64) {
	defaultMetrics.add(name, n)
}

// SetGauge overwrites the named gauge
func SetGauge(name string, value float64) {
	defaultMetrics.setGauge(name, value)
}

// RecordTiming appends one measurement to the named timing
func RecordTiming(name string, d time.Duration) {
	defaultMetrics.recordTiming(name, d)
}

// Metrics returns a copy of the run metrics, safe to use while counters keep changing
func Metrics() MetricsSnapshot {
	return defaultMetrics.snapshot()
}
