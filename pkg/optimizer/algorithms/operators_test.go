package algorithms_test

import (
	"testing"

	"golang.org/x/exp/rand"

	"github.com/cityops/parkfee/pkg/optimizer/algorithms"
	"github.com/cityops/parkfee/pkg/optimizer/framework"
)

func testBounds() []framework.Bounds {
	return []framework.Bounds{
		{L: 1.0, H: 4.0},
		{L: 0.5, H: 0.5}, // degenerate range
		{L: 2.0, H: 10.0},
	}
}

func inBounds(t *testing.T, s *framework.RealSolution) {
	t.Helper()
	for i, v := range s.Variables {
		if v < s.Bounds[i].L || v > s.Bounds[i].H {
			t.Errorf("variable %d = %v outside [%v, %v]", i, v, s.Bounds[i].L, s.Bounds[i].H)
		}
	}
}

func TestSBXCrossoverStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	b := testBounds()
	p1 := framework.NewRealSolution([]float64{1.0, 0.5, 9.5}, b)
	p2 := framework.NewRealSolution([]float64{4.0, 0.5, 2.0}, b)

	for i := 0; i < 1000; i++ {
		c1, c2 := algorithms.SBXCrossover(rng, p1, p2, 0.9, 15)
		inBounds(t, c1)
		inBounds(t, c2)
	}
}

func TestPolynomialMutationStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	b := testBounds()

	for i := 0; i < 1000; i++ {
		s := framework.NewRealSolution([]float64{2.5, 0.5, 6.0}, b)
		algorithms.PolynomialMutation(rng, s, 1.0, 20)
		inBounds(t, s)

		// The degenerate gene can never move.
		if s.Variables[1] != 0.5 {
			t.Fatalf("degenerate gene moved to %v", s.Variables[1])
		}
	}
}

func TestVariationDoesNotAliasParents(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	b := testBounds()
	p1 := framework.NewRealSolution([]float64{1.5, 0.5, 3.0}, b)
	p2 := framework.NewRealSolution([]float64{3.5, 0.5, 8.0}, b)

	c1, c2 := algorithms.SBXCrossover(rng, p1, p2, 1.0, 15)
	c1.Variables[0] = -100
	c2.Variables[2] = -100

	if p1.Variables[0] == -100 || p2.Variables[2] == -100 {
		t.Fatal("children share backing arrays with parents")
	}
}
