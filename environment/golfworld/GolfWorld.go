package golfworld

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/logrusorgru/aurora"
	env "github.com/samuelfneumann/golfworld/environment"
	ts "github.com/samuelfneumann/golfworld/timestep"
	"gonum.org/v1/gonum/mat"
)

// ActionDims is the dimension of actions passed to GolfWorld.Step
const ActionDims int = 1

// GolfWorld implements a golf course as an environment.Environment.
//
// The environment state is the (x, y) position of the ball, and
// observations are the vector [x, y]. Actions are 1-dimensional and
// discrete in [0, NumActions), indexing the shots enumerated by Action.
// Transitions are computed by an Engine, see Engine for a description
// of the course dynamics. Rewards are computed by the Task from the
// landing the Engine scored, see Outcome.Scored.
//
// Actions that are not integers in [0, NumActions) result in an error
// wrapping ErrInvalidAction.
type GolfWorld struct {
	env.Task
	engine *Engine

	state       State
	lastOutcome Outcome
	discount    float64
	currentStep ts.TimeStep
}

// New creates a new GolfWorld environment with Task t on the course
// simulated by Engine e
func New(t env.Task, e *Engine) (*GolfWorld, ts.TimeStep, error) {
	g := &GolfWorld{
		Task:     t,
		engine:   e,
		discount: e.Config().Discount,
	}

	step, err := g.Reset()
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: %v", err)
	}
	return g, step, nil
}

// Reset resets the environment and returns a starting state drawn from
// the environment Starter
func (g *GolfWorld) Reset() (ts.TimeStep, error) {
	start := g.Start()
	if start.Len() != 2 {
		return ts.TimeStep{}, fmt.Errorf("reset: starting state should "+
			"have 2 dimensions, got %d", start.Len())
	}

	g.state = StateFromVector(start, false)
	g.lastOutcome = Outcome{}

	startStep := ts.New(ts.First, 0, g.discount, g.state.Vector(), 0)
	g.currentStep = startStep

	return startStep, nil
}

// Step takes one environmental step given action a and returns the
// next timestep and whether or not the episode has ended
func (g *GolfWorld) Step(a *mat.VecDense) (ts.TimeStep, bool, error) {
	if a.Len() != ActionDims {
		return ts.TimeStep{}, false, fmt.Errorf("step: actions should be "+
			"%d-dimensional, got %d", ActionDims, a.Len())
	}

	index := a.AtVec(0)
	if index != math.Trunc(index) {
		return ts.TimeStep{}, false, fmt.Errorf("step: action %v is not "+
			"an integer: %w", index, ErrInvalidAction)
	}

	outcome, err := g.engine.Step(g.state, Action(int(index)))
	if err != nil {
		return ts.TimeStep{}, false, fmt.Errorf("step: %w", err)
	}
	outcome.Reward = g.GetReward(g.state.Vector(), a,
		outcome.Scored.Vector())
	g.state = outcome.Next
	g.lastOutcome = outcome

	nextStep := ts.New(ts.Mid, outcome.Reward, g.discount,
		outcome.Next.Vector(), g.currentStep.Number+1)
	g.End(&nextStep)

	g.currentStep = nextStep
	return nextStep, nextStep.Last(), nil
}

// CurrentTimeStep returns the last TimeStep that occurred in the
// environment
func (g *GolfWorld) CurrentTimeStep() ts.TimeStep {
	return g.currentStep
}

// State returns the current position of the ball
func (g *GolfWorld) State() State {
	return g.state
}

// LastOutcome returns the outcome of the last step taken. If no step
// has been taken since the last reset, the zero Outcome is returned.
func (g *GolfWorld) LastOutcome() Outcome {
	return g.lastOutcome
}

// Engine returns the Engine simulating the course
func (g *GolfWorld) Engine() *Engine {
	return g.engine
}

// ActionSpec returns the action specification of the environment
func (g *GolfWorld) ActionSpec() env.Spec {
	shape := mat.NewVecDense(ActionDims, nil)
	lowerBound := mat.NewVecDense(ActionDims, []float64{0})
	upperBound := mat.NewVecDense(ActionDims,
		[]float64{float64(NumActions - 1)})

	return env.NewSpec(shape, env.Action, lowerBound, upperBound,
		env.Discrete)
}

// ObservationSpec returns the observation specification of the
// environment
func (g *GolfWorld) ObservationSpec() env.Spec {
	x, y := g.engine.Bounds()

	shape := mat.NewVecDense(2, nil)
	lowerBound := mat.NewVecDense(2, []float64{x.Min, y.Min})
	upperBound := mat.NewVecDense(2, []float64{x.Max, y.Max})

	return env.NewSpec(shape, env.Observation, lowerBound, upperBound,
		env.Discrete)
}

// DiscountSpec returns the discounting specification of the environment
func (g *GolfWorld) DiscountSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{g.discount})
	upperBound := mat.NewVecDense(1, []float64{g.discount})

	return env.NewSpec(shape, env.Discount, lowerBound, upperBound,
		env.Continuous)
}

// Render writes a text-based version of the course to w. Each cell is
// drawn as
//
//	o	the ball
//	H	the hole
//	T	the tee
//	~	hazard
//	"	rough
//	.	fairway
//
// with the top row of the output being the highest y coordinate. If
// colours is true, cells are coloured using ANSI escape codes.
func (g *GolfWorld) Render(w io.Writer, colours bool) error {
	au := aurora.NewAurora(colours)
	c := g.engine.Config()
	ball := g.state.Cell()

	var course strings.Builder
	for y := c.Height + 1; y >= 0; y-- {
		for x := 0; x <= c.Width+1; x++ {
			cell := Cell{x, y}

			switch {
			case cell == ball:
				fmt.Fprint(&course, au.Bold(au.White("o")))
			case cell == c.Hole:
				fmt.Fprint(&course, au.Red("H"))
			case cell == c.Tee:
				fmt.Fprint(&course, au.Magenta("T"))
			default:
				switch g.engine.terrain.ClassifyCell(cell) {
				case Hazard:
					fmt.Fprint(&course, au.Blue("~"))
				case Rough:
					fmt.Fprint(&course, au.Yellow("\""))
				default:
					fmt.Fprint(&course, au.Green("."))
				}
			}
		}
		fmt.Fprintln(&course)
	}

	_, err := io.WriteString(w, course.String())
	return err
}

// String returns a string representation of the environment
func (g *GolfWorld) String() string {
	str := "GolfWorld %v  |  At: %v  |  Terrain: %v  |  %v"
	return fmt.Sprintf(str, g.engine.Config(), g.state,
		g.engine.Classify(g.state), g.Task)
}
