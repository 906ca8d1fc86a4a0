package metrics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
)

// Metric names, in the order they are reported.
const (
	MetricAccuracy    = "accuracy"
	MetricSensitivity = "sensitivity"
	MetricSpecificity = "specificity"
	MetricPrecision   = "precision"
	MetricFScore      = "fScore"
)

// MetricNames lists every metric produced by Compute in report order.
var MetricNames = []string{
	MetricAccuracy,
	MetricSensitivity,
	MetricSpecificity,
	MetricPrecision,
	MetricFScore,
}

// ErrEmptyInput is returned when all four confusion counts are zero.
var ErrEmptyInput = errors.New("confusion matrix is empty: tp+tn+fp+fn must be greater than zero")

// FieldTotal is the InvalidInputError field used when every count is
// finite but their sum is not.
const FieldTotal = "total"

// InvalidInputError reports a count that can never appear in a confusion
// matrix (negative, NaN or infinite), or counts too large to add up.
type InvalidInputError struct {
	Field string
	Value float64
}

func (e *InvalidInputError) Error() string {
	if e.Field == FieldTotal {
		return fmt.Sprintf("invalid total count: tp+tn+fp+fn overflows to %v", e.Value)
	}
	return fmt.Sprintf("invalid %s count %v: counts must be finite and non-negative", e.Field, e.Value)
}

// Counts holds the four cells of a binary confusion matrix. Counts are
// float64 so weighted tallies work the same as integer ones.
type Counts struct {
	TP float64 `json:"tp" yaml:"tp"`
	TN float64 `json:"tn" yaml:"tn"`
	FP float64 `json:"fp" yaml:"fp"`
	FN float64 `json:"fn" yaml:"fn"`
}

// Total returns tp+tn+fp+fn.
func (c Counts) Total() float64 {
	return c.TP + c.TN + c.FP + c.FN
}

// Validate returns an *InvalidInputError for the first unusable count, or
// one with Field FieldTotal when the counts overflow float64 when summed.
// Every partial sum used by Compute is bounded by the total.
func (c Counts) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"tp", c.TP},
		{"tn", c.TN},
		{"fp", c.FP},
		{"fn", c.FN},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) || f.v < 0 {
			return &InvalidInputError{Field: f.name, Value: f.v}
		}
	}
	if n := c.Total(); math.IsInf(n, 0) {
		return &InvalidInputError{Field: FieldTotal, Value: n}
	}
	return nil
}

// Compute is shorthand for Compute(c.TP, c.TN, c.FP, c.FN).
func (c Counts) Compute() (*Result, error) {
	return defaultCalculator.Compute(context.Background(), c)
}

// Diagnostic records a ratio that was undefined and replaced by 0.
type Diagnostic struct {
	Metric  string `json:"metric"`
	Message string `json:"message"`
}

// Result is the set of metrics derived from one confusion matrix.
//
// Sensitivity and Specificity are NaN when their denominator is zero; use
// Defined before doing arithmetic with them. Precision and FScore are
// always finite because an undefined value is replaced by 0 and recorded
// in Diagnostics.
type Result struct {
	Counts      Counts
	Accuracy    float64
	Sensitivity float64
	Specificity float64
	Precision   float64
	FScore      float64
	Diagnostics []Diagnostic
}

// Values returns the metrics keyed by name.
func (r *Result) Values() map[string]float64 {
	return map[string]float64{
		MetricAccuracy:    r.Accuracy,
		MetricSensitivity: r.Sensitivity,
		MetricSpecificity: r.Specificity,
		MetricPrecision:   r.Precision,
		MetricFScore:      r.FScore,
	}
}

// Value returns a single metric by name.
func (r *Result) Value(metric string) (float64, bool) {
	v, ok := r.Values()[metric]
	return v, ok
}

// Defined reports whether the named metric holds a real number.
func (r *Result) Defined(metric string) bool {
	v, ok := r.Value(metric)
	return ok && !math.IsNaN(v)
}

// HasDiagnostics reports whether any ratio was substituted.
func (r *Result) HasDiagnostics() bool {
	return len(r.Diagnostics) > 0
}

// MarshalJSON encodes undefined ratios as null since JSON has no NaN.
func (r *Result) MarshalJSON() ([]byte, error) {
	type wireMetrics struct {
		Accuracy    *float64 `json:"accuracy"`
		Sensitivity *float64 `json:"sensitivity"`
		Specificity *float64 `json:"specificity"`
		Precision   *float64 `json:"precision"`
		FScore      *float64 `json:"fScore"`
	}
	return json.Marshal(struct {
		Counts      Counts       `json:"counts"`
		Metrics     wireMetrics  `json:"metrics"`
		Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
	}{
		Counts: r.Counts,
		Metrics: wireMetrics{
			Accuracy:    finiteOrNil(r.Accuracy),
			Sensitivity: finiteOrNil(r.Sensitivity),
			Specificity: finiteOrNil(r.Specificity),
			Precision:   finiteOrNil(r.Precision),
			FScore:      finiteOrNil(r.FScore),
		},
		Diagnostics: r.Diagnostics,
	})
}

func finiteOrNil(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Calculator computes metrics and reports diagnostics to Logger.
// The zero value logs to slog.Default().
type Calculator struct {
	Logger *slog.Logger
}

var defaultCalculator Calculator

// Compute derives accuracy, sensitivity, specificity, precision and
// F-score from the confusion counts tp, tn, fp and fn.
//
// It returns ErrEmptyInput when every count is zero and an
// *InvalidInputError when a count is negative or not finite.
func Compute(tp, tn, fp, fn float64) (*Result, error) {
	return defaultCalculator.Compute(context.Background(), Counts{TP: tp, TN: tn, FP: fp, FN: fn})
}

// Compute is the logger-aware form of the package-level Compute.
func (c Calculator) Compute(ctx context.Context, counts Counts) (*Result, error) {
	logger := c.logger()

	if err := counts.Validate(); err != nil {
		logger.ErrorContext(ctx, "rejected confusion counts", "error", err)
		return nil, err
	}

	n := counts.Total()
	if n == 0 {
		logger.ErrorContext(ctx, "total number of elements (N) cannot be zero")
		return nil, ErrEmptyInput
	}

	r := &Result{
		Counts:      counts,
		Accuracy:    (counts.TP + counts.TN) / n,
		Sensitivity: ratio(counts.TP, counts.TP+counts.FN),
		Specificity: ratio(counts.TN, counts.FP+counts.TN),
	}

	// Sensitivity and specificity stay undefined; only precision and
	// F-score are substituted.
	if math.IsNaN(r.Sensitivity) {
		logger.DebugContext(ctx, "sensitivity undefined: no actual positives", "tp", counts.TP, "fn", counts.FN)
	}
	if math.IsNaN(r.Specificity) {
		logger.DebugContext(ctx, "specificity undefined: no actual negatives", "tn", counts.TN, "fp", counts.FP)
	}

	r.Precision = ratio(counts.TP, counts.TP+counts.FP)
	if !isFinite(r.Precision) {
		r.Precision = 0
		r.warn(ctx, logger, MetricPrecision, "division by zero computing precision (tp+fp = 0); reporting 0",
			"tp", counts.TP, "fp", counts.FP)
	}

	r.FScore = 2 * r.Precision * r.Sensitivity / (r.Precision + r.Sensitivity)
	if !isFinite(r.FScore) {
		r.FScore = 0
		r.warn(ctx, logger, MetricFScore, "division by zero computing F-score; reporting 0",
			"tp", counts.TP, "fp", counts.FP, "fn", counts.FN)
	}

	return r, nil
}

func (c Calculator) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

func (r *Result) warn(ctx context.Context, logger *slog.Logger, metric, msg string, attrs ...any) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Metric: metric, Message: msg})
	logger.WarnContext(ctx, msg, append([]any{"metric", metric}, attrs...)...)
}

// ratio divides without special-casing a zero denominator, so 0/0 yields
// NaN and x/0 yields +Inf.
func ratio(num, den float64) float64 {
	return num / den
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
