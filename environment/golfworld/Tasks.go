package golfworld

import (
	"fmt"

	env "github.com/samuelfneumann/golfworld/environment"
	ts "github.com/samuelfneumann/golfworld/timestep"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Hole implements the task of getting the ball into the hole of a
// course. Episodes start on the tee. Every shot costs the course's
// step cost, and the shot which lands on the hole additionally earns
// GoalReward.
//
// Episodes end when the ball lands on the hole or, if the course has an
// episode cutoff, after the cutoff number of steps.
type Hole struct {
	env.Starter
	stepEnder *env.StepLimit

	hole       Cell
	stepReward float64
	goalReward float64
}

// NewHole returns the Hole task of course c
func NewHole(c Config) (*Hole, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("newHole: %w", err)
	}

	start, err := NewSingleStart(c.Tee, c.Width, c.Height)
	if err != nil {
		return nil, fmt.Errorf("newHole: could not create starter: %v", err)
	}

	return &Hole{
		Starter:    start,
		stepEnder:  env.NewStepLimit(c.EpisodeCutoff),
		hole:       c.Hole,
		stepReward: -c.StepCost,
		goalReward: GoalReward - c.StepCost,
	}, nil
}

// GetReward returns the reward for transitioning to nextState
func (h *Hole) GetReward(_, _, nextState mat.Vector) float64 {
	if h.AtGoal(nextState) {
		return h.goalReward
	}
	return h.stepReward
}

// AtGoal returns whether state, a vector [x, y], lies on the hole
func (h *Hole) AtGoal(state mat.Matrix) bool {
	rows, cols := state.Dims()
	if rows*cols != 2 {
		return false
	}

	var s State
	if rows == 2 {
		s = NewState(state.At(0, 0), state.At(1, 0), false)
	} else {
		s = NewState(state.At(0, 0), state.At(0, 1), false)
	}
	return s.Cell() == h.hole
}

// End determines if a timestep is the last timestep in the episode.
// If so, it changes the TimeStep's StepType to timestep.Last and sets
// the reason for ending the episode.
func (h *Hole) End(t *ts.TimeStep) bool {
	if h.AtGoal(t.Observation) {
		t.StepType = ts.Last
		t.SetEnd(ts.TerminalStateReached)
		return true
	}

	return h.stepEnder.End(t)
}

// Min returns the minimum attainable reward over all timesteps
func (h *Hole) Min() float64 {
	return floats.Min([]float64{h.stepReward, h.goalReward})
}

// Max returns the maximum attainable reward over all timesteps
func (h *Hole) Max() float64 {
	return floats.Max([]float64{h.stepReward, h.goalReward})
}

// RewardSpec returns the reward specification of the Task
func (h *Hole) RewardSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{h.Min()})
	upperBound := mat.NewVecDense(1, []float64{h.Max()})

	return env.NewSpec(shape, env.Reward, lowerBound, upperBound,
		env.Discrete)
}

// String returns the Hole as a string
func (h *Hole) String() string {
	return fmt.Sprintf("Hole at %v", h.hole)
}
