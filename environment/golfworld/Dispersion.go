package golfworld

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Standard deviations of the radial dispersion of each club
const (
	DriverSpread float64 = 2.0
	IronSpread   float64 = 1.0
)

// Disperser samples the random inaccuracy of a shot
type Disperser interface {
	// Sample returns a newly sampled (x, y) offset for a shot played
	// with club c
	Sample(c Club) (x, y float64)
}

// RadialDispersion implements shot dispersion as a random offset
// with a normally distributed magnitude and a uniformly distributed
// angle in [0, π). Putts are never dispersed.
//
// RadialDispersion is not safe for concurrent use.
type RadialDispersion struct {
	driver distuv.Normal
	iron   distuv.Normal
	angle  distuv.Uniform
}

// NewRadialDispersion returns a new RadialDispersion drawing from src
func NewRadialDispersion(src rand.Source) *RadialDispersion {
	return &RadialDispersion{
		driver: distuv.Normal{Mu: 0, Sigma: DriverSpread, Src: src},
		iron:   distuv.Normal{Mu: 0, Sigma: IronSpread, Src: src},
		angle:  distuv.Uniform{Min: 0, Max: math.Pi, Src: src},
	}
}

// Sample implements the Disperser interface
func (r *RadialDispersion) Sample(c Club) (x, y float64) {
	var radius float64
	switch c {
	case Driver:
		radius = r.driver.Rand()
	case Iron:
		radius = r.iron.Rand()
	default:
		return 0, 0
	}

	angle := r.angle.Rand()
	return radius * math.Cos(angle), radius * math.Sin(angle)
}

// NoDispersion is a Disperser that never disperses shots
type NoDispersion struct{}

// Sample implements the Disperser interface
func (NoDispersion) Sample(Club) (x, y float64) { return 0, 0 }
