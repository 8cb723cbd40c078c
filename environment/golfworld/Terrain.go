package golfworld

// Terrain is the type of ground a ball lies on. The terrain of the
// ball's position determines how likely a shot is to be downgraded.
type Terrain int

const (
	Fairway Terrain = iota
	Rough
	Hazard
)

func (t Terrain) String() string {
	switch t {
	case Rough:
		return "Rough"
	case Hazard:
		return "Hazard"
	default:
		return "Fairway"
	}
}

// Classifier classifies positions on the course into terrains
type Classifier struct {
	rough  map[Cell]struct{}
	hazard map[Cell]struct{}
}

// NewClassifier returns a new Classifier with the given rough and
// hazard regions. A cell in both regions is classified as a Hazard.
func NewClassifier(rough, hazard []Cell) *Classifier {
	return &Classifier{
		rough:  toSet(rough),
		hazard: toSet(hazard),
	}
}

// Classify returns the terrain of the cell containing s
func (c *Classifier) Classify(s State) Terrain {
	return c.ClassifyCell(s.Cell())
}

// ClassifyCell returns the terrain of a cell
func (c *Classifier) ClassifyCell(cell Cell) Terrain {
	if _, ok := c.hazard[cell]; ok {
		return Hazard
	}
	if _, ok := c.rough[cell]; ok {
		return Rough
	}
	return Fairway
}

func toSet(cells []Cell) map[Cell]struct{} {
	set := make(map[Cell]struct{}, len(cells))
	for _, cell := range cells {
		set[cell] = struct{}{}
	}
	return set
}
