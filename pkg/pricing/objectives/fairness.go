package objectives

// UserBalance returns the variance of predicted occupancy across zones.
// Minimizing the variance spreads utilization evenly instead of letting a
// few zones absorb all demand; the reported (maximized) user_balance score
// is the negated variance.
func UserBalance(outcomes []ZoneOutcome) float64 {
	if len(outcomes) == 0 {
		return 0
	}

	mean := 0.0
	for _, o := range outcomes {
		mean += o.Occupancy
	}
	mean /= float64(len(outcomes))

	variance := 0.0
	for _, o := range outcomes {
		d := o.Occupancy - mean
		variance += d * d
	}
	return variance / float64(len(outcomes))
}
