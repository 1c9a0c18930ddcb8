package algorithms

import (
	"math"

	"github.com/cityops/parkfee/pkg/optimizer/framework"
)

// ReferenceDirections generates the Das-Dennis simplex lattice: every vector
// of numObjectives non-negative components that sum to 1 where each
// component is a multiple of 1/partitions. The lattice has
// C(numObjectives+partitions-1, partitions) points and is produced in a
// fixed lexicographic order, so direction indices are stable for a given
// (numObjectives, partitions) pair.
func ReferenceDirections(numObjectives, partitions int) []framework.ObjectiveSpacePoint {
	if numObjectives < 2 || partitions < 1 {
		return nil
	}
	var dirs []framework.ObjectiveSpacePoint
	point := make([]int, numObjectives)
	var build func(dim, left int)
	build = func(dim, left int) {
		if dim == numObjectives-1 {
			point[dim] = left
			dir := make(framework.ObjectiveSpacePoint, numObjectives)
			for i, p := range point {
				dir[i] = float64(p) / float64(partitions)
			}
			dirs = append(dirs, dir)
			return
		}
		for i := 0; i <= left; i++ {
			point[dim] = i
			build(dim+1, left-i)
		}
	}
	build(0, partitions)
	return dirs
}

// PerpendicularDistance returns the distance from point to the ray through
// the origin along dir.
func PerpendicularDistance(dir, point framework.ObjectiveSpacePoint) float64 {
	var dot, norm float64
	for i := range dir {
		dot += dir[i] * point[i]
		norm += dir[i] * dir[i]
	}
	if norm == 0 {
		return math.Inf(1)
	}
	t := dot / norm
	var dist float64
	for i := range dir {
		d := point[i] - t*dir[i]
		dist += d * d
	}
	return math.Sqrt(dist)
}

// associate assigns every solution the index of and distance to its closest
// reference direction, given the solutions' normalized objective values.
func associate(sols []*NSGAIIISolution, normalized []framework.ObjectiveSpacePoint, dirs []framework.ObjectiveSpacePoint) {
	for i, sol := range sols {
		best := 0
		bestDist := math.Inf(1)
		for d, dir := range dirs {
			dist := PerpendicularDistance(dir, normalized[i])
			if dist < bestDist {
				best = d
				bestDist = dist
			}
		}
		sol.RefDir = best
		sol.RefDist = bestDist
	}
}
