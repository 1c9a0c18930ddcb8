package pricing

import (
	"fmt"

	"github.com/cityops/parkfee/pkg/optimizer/framework"
)

// Group is one gene of the decision vector: a set of zones constrained to
// share a fee, with bounds equal to the intersection of the member zones'
// legal fee ranges.
type Group struct {
	ID      string // cluster group id, or the zone id for singletons
	Members []int  // indices into the zone slice
	Bounds  framework.Bounds
}

// Encoding maps a flat decision vector of one fee per cluster group onto
// per-zone fees. Groups appear in first-appearance order of the zone list,
// so gene indices are stable for a given zone ordering.
type Encoding struct {
	groups []Group
	zones  int
}

// NewEncoding derives the gene layout from the zone list. An empty bounds
// intersection within one cluster group is a configuration error.
func NewEncoding(zones []Zone) (*Encoding, error) {
	var groups []Group
	groupIndex := make(map[string]int)

	for i, z := range zones {
		if z.ClusterGroup == "" {
			// Singleton group.
			groups = append(groups, Group{
				ID:      z.ID,
				Members: []int{i},
				Bounds:  framework.Bounds{L: z.MinFee, H: z.MaxFee},
			})
			continue
		}

		gi, ok := groupIndex[z.ClusterGroup]
		if !ok {
			groupIndex[z.ClusterGroup] = len(groups)
			groups = append(groups, Group{
				ID:      z.ClusterGroup,
				Members: []int{i},
				Bounds:  framework.Bounds{L: z.MinFee, H: z.MaxFee},
			})
			continue
		}

		g := &groups[gi]
		g.Members = append(g.Members, i)
		if z.MinFee > g.Bounds.L {
			g.Bounds.L = z.MinFee
		}
		if z.MaxFee < g.Bounds.H {
			g.Bounds.H = z.MaxFee
		}
		if g.Bounds.L > g.Bounds.H {
			return nil, fmt.Errorf("cluster group %q: conflicting fee bounds, intersection is empty at zone %s", z.ClusterGroup, z.ID)
		}
	}

	return &Encoding{groups: groups, zones: len(zones)}, nil
}

// NumGroups is the decision vector length.
func (e *Encoding) NumGroups() int {
	return len(e.groups)
}

// Groups returns the gene layout.
func (e *Encoding) Groups() []Group {
	return e.groups
}

// Bounds returns per-gene bounds in gene order.
func (e *Encoding) Bounds() []framework.Bounds {
	b := make([]framework.Bounds, len(e.groups))
	for i, g := range e.groups {
		b[i] = g.Bounds
	}
	return b
}

// Broadcast expands a gene vector to one fee per zone by copying each
// group's value to its members.
func (e *Encoding) Broadcast(genes []float64) []float64 {
	fees := make([]float64, e.zones)
	for gi, g := range e.groups {
		for _, zi := range g.Members {
			fees[zi] = genes[gi]
		}
	}
	return fees
}
