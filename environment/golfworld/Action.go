package golfworld

import (
	"errors"
	"fmt"
)

// ErrInvalidAction is returned when an action is not one of the
// NumActions actions of the course
var ErrInvalidAction = errors.New("invalid action")

// Club is the type of shot taken. Each club has a nominal distance,
// a dispersion and a sensitivity to the wind.
type Club int

const (
	Driver Club = iota
	Iron
	Putt
)

// Nominal club distances
const (
	DriverDistance float64 = 10.0
	IronDistance   float64 = 5.0
	PuttDistance   float64 = 1.0
)

// Distance returns the nominal distance a club moves the ball
func (c Club) Distance() float64 {
	switch c {
	case Driver:
		return DriverDistance
	case Iron:
		return IronDistance
	default:
		return PuttDistance
	}
}

func (c Club) String() string {
	switch c {
	case Driver:
		return "driver"
	case Iron:
		return "iron"
	case Putt:
		return "putt"
	}
	return fmt.Sprintf("club(%d)", int(c))
}

// Direction is one of the four axis directions of the course. Up and
// right are positive, down and left are negative.
type Direction int

const (
	Left Direction = iota
	Up
	Right
	Down
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

// Valid returns whether the Direction is one of the four directions
func (d Direction) Valid() bool {
	return d >= Left && d <= Down
}

// ParseDirection returns the Direction named by s
func ParseDirection(s string) (Direction, error) {
	for d := Left; d <= Down; d++ {
		if d.String() == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("parseDirection: unknown direction %q", s)
}

// Action is a shot: a club played in a direction. Actions are
// enumerated in the order
//
//	Action	Meaning
//	  0		driver_left
//	  1		driver_up
//	  2		driver_right
//	  3		driver_down
//	  4		iron_left
//	  5		iron_up
//	  6		iron_right
//	  7		iron_down
//	  8		putt_left
//	  9		putt_up
//	  10	putt_right
//	  11	putt_down
//
// which is also the encoding of actions passed to GolfWorld.Step.
type Action int

const (
	DriverLeft Action = iota
	DriverUp
	DriverRight
	DriverDown
	IronLeft
	IronUp
	IronRight
	IronDown
	PuttLeft
	PuttUp
	PuttRight
	PuttDown
)

// NumActions is the number of actions available on the course
const NumActions int = 12

const numDirections = 4

// NewAction returns the Action playing club c in direction d
func NewAction(c Club, d Direction) Action {
	return Action(int(c)*numDirections + int(d))
}

// Club returns the club played by the Action
func (a Action) Club() Club {
	return Club(int(a) / numDirections)
}

// Direction returns the direction the Action is played in
func (a Action) Direction() Direction {
	return Direction(int(a) % numDirections)
}

// Valid returns whether the Action is in the action set
func (a Action) Valid() bool {
	return a >= DriverLeft && a <= PuttDown
}

func (a Action) String() string {
	if !a.Valid() {
		return fmt.Sprintf("action(%d)", int(a))
	}
	return a.Club().String() + "_" + a.Direction().String()
}

// ParseAction returns the Action with the given name, e.g. "iron_up"
func ParseAction(name string) (Action, error) {
	for _, a := range Actions() {
		if a.String() == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("parseAction: %q: %w", name, ErrInvalidAction)
}

// Actions returns all actions in enumeration order
func Actions() []Action {
	actions := make([]Action, NumActions)
	for i := range actions {
		actions[i] = Action(i)
	}
	return actions
}
