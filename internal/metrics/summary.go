package metrics

import (
	"encoding/json"
	"math"
)

// MetricSummary aggregates one metric across several results.
type MetricSummary struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	// Defined is the number of results that contributed a real value.
	Defined int `json:"defined"`
}

// MarshalJSON encodes Mean and StdDev as null when no result defined the
// metric, matching how undefined ratios are encoded in Result.
func (m MetricSummary) MarshalJSON() ([]byte, error) {
	type wire struct {
		Mean    *float64 `json:"mean"`
		StdDev  *float64 `json:"std_dev"`
		Defined int      `json:"defined"`
	}
	w := wire{Defined: m.Defined}
	if m.Defined > 0 {
		w.Mean = finiteOrNil(m.Mean)
		w.StdDev = finiteOrNil(m.StdDev)
	}
	return json.Marshal(w)
}

// Summary is the macro-average of each metric over a batch of results.
type Summary struct {
	Count   int                      `json:"count"`
	Metrics map[string]MetricSummary `json:"metrics"`
}

// Summarize macro-averages every metric over results. Undefined ratios
// are skipped rather than counted as zero. Nil results are ignored.
// Returns nil when there is nothing to summarize.
func Summarize(results []*Result) *Summary {
	values := make(map[string][]float64, len(MetricNames))
	count := 0
	for _, r := range results {
		if r == nil {
			continue
		}
		count++
		for _, name := range MetricNames {
			if v, _ := r.Value(name); !math.IsNaN(v) {
				values[name] = append(values[name], v)
			}
		}
	}
	if count == 0 {
		return nil
	}

	s := &Summary{Count: count, Metrics: make(map[string]MetricSummary, len(MetricNames))}
	for _, name := range MetricNames {
		vs := values[name]
		s.Metrics[name] = MetricSummary{
			Mean:    mean(vs),
			StdDev:  stdDev(vs),
			Defined: len(vs),
		}
	}
	return s
}

// mean returns 0 for empty input.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdDev is the population standard deviation; 0 for empty input.
func stdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	sumSq := 0.0
	for _, v := range values {
		d := v - m
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)))
}
