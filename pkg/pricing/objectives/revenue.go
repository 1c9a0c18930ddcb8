package objectives

// Revenue returns the negated total predicted revenue across zones, so that
// minimizing it maximizes revenue.
func Revenue(outcomes []ZoneOutcome) float64 {
	total := 0.0
	for _, o := range outcomes {
		total += o.Revenue
	}
	return -total
}
