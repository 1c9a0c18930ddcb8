package objectives

import "math"

// OccupancyGap returns the summed absolute deviation of predicted occupancy
// from the target occupancy across zones. Minimized.
func OccupancyGap(outcomes []ZoneOutcome, target float64) float64 {
	gap := 0.0
	for _, o := range outcomes {
		gap += math.Abs(o.Occupancy - target)
	}
	return gap
}
