package golfworld

import (
	"fmt"

	"github.com/samuelfneumann/golfworld/utils/floatutils"
	"gonum.org/v1/gonum/mat"
)

// StatePlaces is the number of decimal places State coordinates are
// rounded to at construction
const StatePlaces int = 5

// Cell is an integer position on the course grid
type Cell struct {
	X int `json:"x" mapstructure:"x" yaml:"x"`
	Y int `json:"y" mapstructure:"y" yaml:"y"`
}

// String returns the Cell as a string
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Key is a comparable representation of a State's position. Two States
// have the same Key if and only if they are Equal, so Keys can be used
// to index maps of States.
type Key struct {
	X, Y float64
}

// State is the position of the ball on the course. States are
// immutable: their coordinates are rounded at construction and never
// change afterwards. Taking a shot always produces a new State.
type State struct {
	x, y     float64
	terminal bool
}

// NewState returns a new State at (x, y), rounded to StatePlaces
// decimal places
func NewState(x, y float64, terminal bool) State {
	return State{
		x:        floatutils.Round(x, StatePlaces),
		y:        floatutils.Round(y, StatePlaces),
		terminal: terminal,
	}
}

// StateFromVector returns the State with coordinates given by the
// observation vector [x, y]
func StateFromVector(v mat.Vector, terminal bool) State {
	return NewState(v.AtVec(0), v.AtVec(1), terminal)
}

// X returns the x coordinate of the State
func (s State) X() float64 { return s.x }

// Y returns the y coordinate of the State
func (s State) Y() float64 { return s.y }

// Terminal returns whether the State is absorbing
func (s State) Terminal() bool { return s.terminal }

// Cell returns the grid cell containing the State, found by rounding
// each coordinate to the nearest integer
func (s State) Cell() Cell {
	return Cell{floatutils.RoundInt(s.x), floatutils.RoundInt(s.y)}
}

// Equal returns whether two States are at the same position. The
// terminal flag does not take part in the comparison.
func (s State) Equal(other State) bool {
	return s.x == other.x && s.y == other.y
}

// Key returns the map key of the State
func (s State) Key() Key {
	return Key{s.x, s.y}
}

// Vector returns the State as an observation vector [x, y]
func (s State) Vector() *mat.VecDense {
	return mat.NewVecDense(2, []float64{s.x, s.y})
}

// String returns the State as a string
func (s State) String() string {
	return fmt.Sprintf("s: (%v,%v)", s.x, s.y)
}
