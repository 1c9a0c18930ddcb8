package pricing

import "math"

// feeEpsilon guards the relative price change against a zero current fee.
const feeEpsilon = 1e-9

// Prediction is the response model output for one zone and one proposed fee.
type Prediction struct {
	Occupancy float64
	Revenue   float64
}

// PredictResponse maps a proposed fee to predicted occupancy and revenue
// using a constant-elasticity demand response:
//
//	occupancy' = clamp(occupancy * (1 + elasticity * Δfee/max(fee, ε)), 0, 1)
//	revenue'   = occupancy' * capacity * fee'
//
// A zone with non-positive capacity yields a zero prediction; that state is
// unreachable for zones that passed ValidateZones.
func PredictResponse(z Zone, fee float64) Prediction {
	if z.Capacity <= 0 {
		return Prediction{}
	}

	relChange := (fee - z.CurrentFee) / math.Max(z.CurrentFee, feeEpsilon)
	occupancy := z.CurrentOccupancy * (1 + z.Elasticity*relChange)
	if occupancy < 0 {
		occupancy = 0
	} else if occupancy > 1 {
		occupancy = 1
	}

	return Prediction{
		Occupancy: occupancy,
		Revenue:   occupancy * float64(z.Capacity) * fee,
	}
}
