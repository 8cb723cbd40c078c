// Package golfworld implements a stochastic golf course MDP. An agent
// chooses a club and a direction for each shot, and the course moves
// the ball under the effects of terrain, wind, and shot dispersion.
package golfworld

import (
	"fmt"

	"github.com/samuelfneumann/golfworld/utils/floatutils"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/stat/distuv"
)

// Probabilities that a shot from each terrain is downgraded
const (
	HazardFailure float64 = 0.5
	RoughFailure  float64 = 0.9
)

// Shot is a single sampled shot from some position. Shots are
// produced by Engine.Shoot and applied to a State with Engine.Land.
type Shot struct {
	Terrain Terrain // Terrain the shot was played from
	Chosen  Action  // Action chosen by the agent
	Played  Action  // Action actually played after terrain downgrades
	Fail    float64 // Uniform draw in [0, 1) deciding the downgrade

	DX, DY int // Sampled displacement of the ball
}

// Outcome is the result of taking a single step on the course
type Outcome struct {
	Shot
	Next State

	// Scored is the landing the reward was computed from. It is Next
	// under Realized reward sampling and an independently sampled
	// landing under Independent reward sampling.
	Scored State
	Reward float64
}

// Engine implements the transition and reward dynamics of a golf
// course.
//
// Each transition samples a uniform failure value. Shots from a Hazard
// fail with probability HazardFailure, in which case drivers and irons
// are played as putts in the same direction. Shots from the Rough fail
// with probability RoughFailure, in which case drivers are played as
// irons. The displacement of a driver or iron shot along each axis is
// the nearest integer to the sum of the wind drift, the shot
// dispersion, and the club distance along the shot's direction. Putts
// move the ball exactly one unit:
//
//	Putt		Displacement
//	left		(+1, 0)   or (-1, 0) if Config.SymmetricPutt
//	up		(0, +1)
//	right		(+1, 0)
//	down		(0, -1)
//
// Shots which would move the ball outside of (0, width+1] in x or
// [0, height+1] in y leave the ball where it is. A State is terminal
// if it lies on the hole, and terminal States never move.
//
// An Engine owns its random source and is not safe for concurrent use.
// The Config it was built from is never modified, so independent
// episodes can be simulated in parallel by giving each goroutine its
// own Engine, see Fork.
type Engine struct {
	config    Config
	terrain   *Classifier
	wind      Wind
	disperser Disperser
	fail      distuv.Uniform

	xBounds, yBounds r1.Interval
}

// NewEngine returns a new Engine for the course c, seeding all
// randomness with seed
func NewEngine(c Config, seed uint64) (*Engine, error) {
	src := rand.NewSource(seed)
	return NewEngineWith(c, src, NewRadialDispersion(src))
}

// NewEngineWith returns a new Engine for the course c which samples
// downgrade failures from src and shot dispersion from d. A nil
// Disperser never disperses shots.
func NewEngineWith(c Config, src rand.Source, d Disperser) (*Engine, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("newEngine: %w", err)
	}
	if d == nil {
		d = NoDispersion{}
	}

	return &Engine{
		config:    c,
		terrain:   NewClassifier(c.Rough, c.Hazard),
		wind:      c.Wind(),
		disperser: d,
		fail:      distuv.Uniform{Min: 0, Max: 1, Src: src},
		xBounds:   r1.Interval{Min: 0, Max: float64(c.Width + 1)},
		yBounds:   r1.Interval{Min: 0, Max: float64(c.Height + 1)},
	}, nil
}

// Fork returns a new Engine on the same course with its own random
// source seeded by seed. Forked Engines always use RadialDispersion.
func (e *Engine) Fork(seed uint64) *Engine {
	src := rand.NewSource(seed)
	return &Engine{
		config:    e.config,
		terrain:   e.terrain,
		wind:      e.wind,
		disperser: NewRadialDispersion(src),
		fail:      distuv.Uniform{Min: 0, Max: 1, Src: src},
		xBounds:   e.xBounds,
		yBounds:   e.yBounds,
	}
}

// Bounds returns the extent of the playable area along each axis. The
// lower x bound is exclusive, all other bounds are inclusive.
func (e *Engine) Bounds() (x, y r1.Interval) {
	return e.xBounds, e.yBounds
}

// Config returns the course the Engine simulates
func (e *Engine) Config() Config {
	return e.config
}

// Start returns the starting State of the course, the tee
func (e *Engine) Start() State {
	return NewState(float64(e.config.Tee.X), float64(e.config.Tee.Y), false)
}

// Classify returns the terrain at State s
func (e *Engine) Classify(s State) Terrain {
	return e.terrain.Classify(s)
}

// IsGoal returns whether State s lies on the hole
func (e *Engine) IsGoal(s State) bool {
	return s.Cell() == e.config.Hole
}

// ResolveAction returns the action which is actually played when a
// is chosen on terrain t with a sampled failure value of fail
func ResolveAction(t Terrain, a Action, fail float64) Action {
	switch {
	case t == Hazard && fail < HazardFailure:
		if a.Club() != Putt {
			return NewAction(Putt, a.Direction())
		}

	case t == Rough && fail < RoughFailure:
		if a.Club() == Driver {
			return NewAction(Iron, a.Direction())
		}
	}
	return a
}

// Displacement samples the displacement of the ball when action a is
// played. Displacement does not consider terrain, see ResolveAction.
// Driver and iron displacements are rounded to the nearest integer
// with halves rounded to even.
func (e *Engine) Displacement(a Action) (dx, dy int) {
	club, direction := a.Club(), a.Direction()

	if club == Putt {
		switch direction {
		case Left:
			if e.config.SymmetricPutt {
				return -1, 0
			}
			return 1, 0
		case Up:
			return 0, 1
		case Right:
			return 1, 0
		default:
			return 0, -1
		}
	}

	windX, windY := e.wind.Drift(club)
	noiseX, noiseY := e.disperser.Sample(club)
	x, y := windX+noiseX, windY+noiseY

	distance := club.Distance()
	switch direction {
	case Left:
		x -= distance
	case Up:
		y += distance
	case Right:
		x += distance
	case Down:
		y -= distance
	}

	return floatutils.RoundInt(x), floatutils.RoundInt(y)
}

// Shoot samples a shot of action a from State s. Shots from terminal
// States never move the ball and consume no randomness.
func (e *Engine) Shoot(s State, a Action) (Shot, error) {
	if !a.Valid() {
		return Shot{}, fmt.Errorf("shoot: %v: %w", a, ErrInvalidAction)
	}

	terrain := e.Classify(s)
	if s.Terminal() {
		return Shot{Terrain: terrain, Chosen: a, Played: a}, nil
	}

	fail := e.fail.Rand()
	played := ResolveAction(terrain, a, fail)
	dx, dy := e.Displacement(played)

	return Shot{
		Terrain: terrain,
		Chosen:  a,
		Played:  played,
		Fail:    fail,
		DX:      dx,
		DY:      dy,
	}, nil
}

// Land returns the State reached by applying shot to State s
func (e *Engine) Land(s State, shot Shot) State {
	if s.Terminal() {
		return NewState(s.X(), s.Y(), true)
	}

	x, y := s.X(), s.Y()
	nextX, nextY := x+float64(shot.DX), y+float64(shot.DY)
	if e.inBounds(nextX, nextY) {
		x, y = nextX, nextY
	}

	next := NewState(x, y, false)
	return NewState(x, y, e.IsGoal(next))
}

// Transition samples the next State when taking action a in State s
func (e *Engine) Transition(s State, a Action) (State, error) {
	shot, err := e.Shoot(s, a)
	if err != nil {
		return State{}, fmt.Errorf("transition: %w", err)
	}
	return e.Land(s, shot), nil
}

// Reward returns the reward for taking action a in State s. The reward
// is computed by sampling a new shot, independent of any transition
// already sampled for (s, a).
func (e *Engine) Reward(s State, a Action) (float64, error) {
	next, err := e.Transition(s, a)
	if err != nil {
		return 0, fmt.Errorf("reward: %w", err)
	}
	return e.RewardFor(next), nil
}

// RewardFor returns the reward for landing in State next
func (e *Engine) RewardFor(next State) float64 {
	if e.IsGoal(next) {
		return GoalReward - e.config.StepCost
	}
	return -e.config.StepCost
}

// Step takes a single step on the course from State s with action a.
// The reward of the returned Outcome is computed as determined by the
// RewardSampling of the Engine's Config.
func (e *Engine) Step(s State, a Action) (Outcome, error) {
	shot, err := e.Shoot(s, a)
	if err != nil {
		return Outcome{}, fmt.Errorf("step: %w", err)
	}
	next := e.Land(s, shot)

	scored := next
	if e.config.Sampling() != Realized {
		scored, err = e.Transition(s, a)
		if err != nil {
			return Outcome{}, fmt.Errorf("step: %w", err)
		}
	}

	return Outcome{
		Shot:   shot,
		Next:   next,
		Scored: scored,
		Reward: e.RewardFor(scored),
	}, nil
}

// MinReward returns the minimum reward attainable on the course
func (e *Engine) MinReward() float64 {
	return -e.config.StepCost
}

// MaxReward returns the maximum reward attainable on the course
func (e *Engine) MaxReward() float64 {
	return GoalReward - e.config.StepCost
}

// inBounds returns whether (x, y) lies inside the playable area
func (e *Engine) inBounds(x, y float64) bool {
	return e.xBounds.Min < x && x <= e.xBounds.Max &&
		e.yBounds.Min <= y && y <= e.yBounds.Max
}
