package golfworld

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// SingleStart is an environment.Starter which always starts episodes
// at the same cell
type SingleStart struct {
	start Cell
}

// NewSingleStart returns a new SingleStart at cell start of a course
// with the given width and height
func NewSingleStart(start Cell, width, height int) (*SingleStart, error) {
	if start.X < 0 || start.X > width+1 {
		return nil, fmt.Errorf("newSingleStart: x = %d ∉ [0, %d]", start.X,
			width+1)
	} else if start.Y < 0 || start.Y > height+1 {
		return nil, fmt.Errorf("newSingleStart: y = %d ∉ [0, %d]", start.Y,
			height+1)
	}

	return &SingleStart{start}, nil
}

// Start returns the starting position as a vector [x, y]
func (s *SingleStart) Start() *mat.VecDense {
	return mat.NewVecDense(2, []float64{float64(s.start.X),
		float64(s.start.Y)})
}
