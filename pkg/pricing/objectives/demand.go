package objectives

// DemandDrop returns the summed occupancy lost relative to the current
// state. Gains do not offset losses: only zones whose predicted occupancy
// falls below the current one contribute. Minimized.
func DemandDrop(outcomes []ZoneOutcome) float64 {
	drop := 0.0
	for _, o := range outcomes {
		if loss := o.CurrentOccupancy - o.Occupancy; loss > 0 {
			drop += loss
		}
	}
	return drop
}
