package reporting

import "github.com/spboyer/confmat/internal/metrics"

// RateFScore labels a result's F-score for readers who do not want the
// number. An F-score that was substituted because it was undefined is
// rated "Undefined", not "Poor".
func RateFScore(r *metrics.Result) string {
	if substituted(r, metrics.MetricFScore) {
		return "Undefined"
	}
	switch f := r.FScore; {
	case f >= 0.9:
		return "Excellent (≥0.90)"
	case f >= 0.8:
		return "Good (0.80-0.90)"
	case f >= 0.6:
		return "Fair (0.60-0.80)"
	default:
		return "Poor (<0.60)"
	}
}
