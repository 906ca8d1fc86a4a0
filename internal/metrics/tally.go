package metrics

// Outcome pairs an expected label with the predicted one.
type Outcome struct {
	Actual    bool // true = positive case
	Predicted bool // true = classified positive
	// Weight scales the outcome's contribution; 0 counts as 1.
	Weight float64
}

// Tally folds a set of outcomes into confusion counts.
func Tally(outcomes []Outcome) Counts {
	var c Counts
	for _, o := range outcomes {
		w := o.Weight
		if w == 0 {
			w = 1
		}
		switch {
		case o.Actual && o.Predicted:
			c.TP += w
		case !o.Actual && o.Predicted:
			c.FP += w
		case !o.Actual && !o.Predicted:
			c.TN += w
		case o.Actual && !o.Predicted:
			c.FN += w
		}
	}
	return c
}
