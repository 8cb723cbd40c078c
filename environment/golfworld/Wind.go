package golfworld

// Wind sensitivity of each club as a fraction of the wind speed
const (
	DriverWindScale float64 = 0.2
	IronWindScale   float64 = 0.1
)

// Wind is a constant wind blowing along one axis of the course
type Wind struct {
	Direction Direction
	Speed     float64
}

// Drift returns the deterministic displacement the wind adds to a shot
// played with club c. Putts are not affected by the wind.
func (w Wind) Drift(c Club) (x, y float64) {
	var scale float64
	switch c {
	case Driver:
		scale = DriverWindScale
	case Iron:
		scale = IronWindScale
	default:
		return 0, 0
	}

	drift := scale * w.Speed
	switch w.Direction {
	case Up:
		y = drift
	case Down:
		y = -drift
	case Left:
		x = -drift
	case Right:
		x = drift
	}
	return x, y
}
