// Package objectives holds the four objective functions of the fee search.
// Each operates on the predicted per-zone outcomes of one candidate policy
// and returns a value in minimization sense: objectives that are naturally
// maximized (revenue, user balance) come back negated.
package objectives

// ZoneOutcome pairs a zone's predicted state under a candidate fee with its
// current occupancy.
type ZoneOutcome struct {
	Occupancy        float64
	Revenue          float64
	CurrentOccupancy float64
}
