// Package entity defines the domain entities for the analytics feature.
package entity

import "math"

// Units a metric value can be expressed in.
const (
	UnitCount   = "count"
	UnitPercent = "percent"
	UnitUSD     = "usd"
)

// Metric is one analytics card: the current period's value and the previous one.
type Metric struct {
	Key      string
	Label    string
	Category string
	Unit     string
	Value    float64
	Previous float64
	IsActive bool
	SortKey  int
}

// ChangePercent is the period-over-period change, rounded to one decimal.
// A zero previous value yields 0.
func (m Metric) ChangePercent() float64 {
	if m.Previous == 0 {
		return 0
	}
	return math.Round((m.Value-m.Previous)/m.Previous*1000) / 10
}

// Summary aggregates a set of metrics.
type Summary struct {
	TotalCount float64
	TotalUSD   float64
	Improving  int
	Declining  int
}

// Overview is the analytics screen.
type Overview struct {
	Metrics []Metric
	Summary Summary
}

// Summarize reduces metrics into their summary.
func Summarize(metrics []Metric) Summary {
	var s Summary
	for _, m := range metrics {
		switch m.Unit {
		case UnitCount:
			s.TotalCount += m.Value
		case UnitUSD:
			s.TotalUSD += m.Value
		}
		switch c := m.ChangePercent(); {
		case c > 0:
			s.Improving++
		case c < 0:
			s.Declining++
		}
	}
	return s
}
