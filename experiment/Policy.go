package experiment

import (
	"fmt"

	env "github.com/samuelfneumann/golfworld/environment"
	ts "github.com/samuelfneumann/golfworld/timestep"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Policy selects the actions taken in an environment
type Policy interface {
	SelectAction(t ts.TimeStep) *mat.VecDense
}

// Random implements a policy that selects discrete actions uniformly
// at random
type Random struct {
	low  float64
	dist distuv.Categorical
}

// NewRandom returns a new Random policy over the actions described
// by the action specification a
func NewRandom(a env.Spec, seed uint64) (*Random, error) {
	if a.Shape.Len() != 1 {
		return nil, fmt.Errorf("newRandom: actions must be 1-dimensional")
	}
	if a.Cardinality != env.Discrete {
		return nil, fmt.Errorf("newRandom: actions must be discrete")
	}

	actions := int(a.UpperBound.AtVec(0)-a.LowerBound.AtVec(0)) + 1
	probs := make([]float64, actions)
	for i := range probs {
		probs[i] = 1.0 / float64(actions)
	}

	return &Random{
		low:  a.LowerBound.AtVec(0),
		dist: distuv.NewCategorical(probs, rand.NewSource(seed)),
	}, nil
}

// SelectAction selects an action, ignoring the current timestep
func (r *Random) SelectAction(ts.TimeStep) *mat.VecDense {
	return mat.NewVecDense(1, []float64{r.low + r.dist.Rand()})
}

// Fixed implements a policy that always selects the same action
type Fixed struct {
	action float64
}

// NewFixed returns a new Fixed policy selecting action
func NewFixed(action float64) *Fixed {
	return &Fixed{action}
}

// SelectAction returns the fixed action
func (f *Fixed) SelectAction(ts.TimeStep) *mat.VecDense {
	return mat.NewVecDense(1, []float64{f.action})
}
