package golfworld_test

import (
	"math"
	"testing"

	"github.com/samuelfneumann/golfworld/environment/golfworld"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
)

var (
	roughCell  = golfworld.Cell{X: 3, Y: 3}
	hazardCell = golfworld.Cell{X: 4, Y: 4}
)

func testConfig() golfworld.Config {
	return golfworld.Config{
		Name:          "test",
		Width:         20,
		Height:        20,
		Tee:           golfworld.Cell{X: 15, Y: 16},
		Hole:          golfworld.Cell{X: 15, Y: 18},
		Rough:         []golfworld.Cell{roughCell},
		Hazard:        []golfworld.Cell{hazardCell},
		WindDirection: "up",
		WindSpeed:     0,
		Discount:      0.9,
		StepCost:      1,
	}
}

// newCalmEngine returns an Engine which never disperses shots
func newCalmEngine(t *testing.T, c golfworld.Config) *golfworld.Engine {
	t.Helper()
	e, err := golfworld.NewEngineWith(c, rand.NewSource(7),
		golfworld.NoDispersion{})
	require.NoError(t, err)
	return e
}

func TestTerminalAbsorption(t *testing.T) {
	e, err := golfworld.NewEngine(testConfig(), 42)
	require.NoError(t, err)

	hole := golfworld.NewState(15, 18, true)
	for _, a := range golfworld.Actions() {
		for i := 0; i < 10; i++ {
			next, err := e.Transition(hole, a)
			require.NoError(t, err)
			assert.True(t, next.Equal(hole), "action %v moved %v to %v", a,
				hole, next)
			assert.True(t, next.Terminal())
		}
	}
}

func TestPuttDeterminism(t *testing.T) {
	e, err := golfworld.NewEngine(testConfig(), 42)
	require.NoError(t, err)

	start := golfworld.NewState(5, 5, false)
	tests := []struct {
		action golfworld.Action
		x, y   float64
	}{
		{golfworld.PuttUp, 5, 6},
		{golfworld.PuttDown, 5, 4},
		{golfworld.PuttRight, 6, 5},
		{golfworld.PuttLeft, 6, 5},
	}

	for _, test := range tests {
		for i := 0; i < 50; i++ {
			next, err := e.Transition(start, test.action)
			require.NoError(t, err)
			assert.Equal(t, test.x, next.X(), "%v", test.action)
			assert.Equal(t, test.y, next.Y(), "%v", test.action)
			assert.False(t, next.Terminal())
		}
	}
}

func TestSymmetricPutt(t *testing.T) {
	c := testConfig()
	c.SymmetricPutt = true
	e := newCalmEngine(t, c)

	next, err := e.Transition(golfworld.NewState(5, 5, false),
		golfworld.PuttLeft)
	require.NoError(t, err)
	assert.Equal(t, golfworld.Cell{X: 4, Y: 5}, next.Cell())
}

func TestWindOnlyDeterminism(t *testing.T) {
	c := testConfig()
	c.WindSpeed = 10
	e := newCalmEngine(t, c)

	start := golfworld.NewState(5, 5, false)
	next, err := e.Transition(start, golfworld.DriverUp)
	require.NoError(t, err)
	assert.Equal(t, golfworld.Cell{X: 5, Y: 17}, next.Cell())

	next, err = e.Transition(start, golfworld.IronUp)
	require.NoError(t, err)
	assert.Equal(t, golfworld.Cell{X: 5, Y: 11}, next.Cell())

	// Cross winds only affect the axis of the wind
	c.WindDirection = "left"
	e = newCalmEngine(t, c)
	next, err = e.Transition(start, golfworld.IronUp)
	require.NoError(t, err)
	assert.Equal(t, golfworld.Cell{X: 4, Y: 10}, next.Cell())

	// Putts ignore the wind
	next, err = e.Transition(start, golfworld.PuttUp)
	require.NoError(t, err)
	assert.Equal(t, golfworld.Cell{X: 5, Y: 6}, next.Cell())
}

func TestDisplacementRoundsHalfToEven(t *testing.T) {
	c := testConfig()
	c.WindDirection = "right"

	tests := []struct {
		speed float64
		dx    int
	}{
		{2.5, 0},  // drift 0.5
		{7.5, 2},  // drift 1.5
		{12.5, 2}, // drift 2.5
	}

	for _, test := range tests {
		c.WindSpeed = test.speed
		e := newCalmEngine(t, c)

		dx, dy := e.Displacement(golfworld.DriverUp)
		assert.Equal(t, test.dx, dx, "wind speed %v", test.speed)
		assert.Equal(t, 10, dy, "wind speed %v", test.speed)
	}
}

func TestBoundaryClamp(t *testing.T) {
	c := testConfig()
	e := newCalmEngine(t, c)

	tests := []struct {
		name   string
		start  golfworld.State
		action golfworld.Action
		want   golfworld.Cell
	}{
		{"left of course", golfworld.NewState(5, 5, false),
			golfworld.DriverLeft, golfworld.Cell{X: 5, Y: 5}},
		{"right of course", golfworld.NewState(20, 5, false),
			golfworld.DriverRight, golfworld.Cell{X: 20, Y: 5}},
		{"above course", golfworld.NewState(5, 15, false),
			golfworld.DriverUp, golfworld.Cell{X: 5, Y: 15}},
		{"below course", golfworld.NewState(5, 0, false),
			golfworld.PuttDown, golfworld.Cell{X: 5, Y: 0}},
		{"onto bottom edge", golfworld.NewState(5, 1, false),
			golfworld.PuttDown, golfworld.Cell{X: 5, Y: 0}},
		{"onto right edge", golfworld.NewState(20, 5, false),
			golfworld.PuttRight, golfworld.Cell{X: 21, Y: 5}},
		{"onto top edge", golfworld.NewState(5, 20, false),
			golfworld.PuttUp, golfworld.Cell{X: 5, Y: 21}},
		{"past top edge", golfworld.NewState(5, 21, false),
			golfworld.PuttUp, golfworld.Cell{X: 5, Y: 21}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			next, err := e.Transition(test.start, test.action)
			require.NoError(t, err)
			assert.Equal(t, test.want, next.Cell())
		})
	}

	// x = 0 is outside of the course
	c.SymmetricPutt = true
	e = newCalmEngine(t, c)
	next, err := e.Transition(golfworld.NewState(1, 5, false),
		golfworld.PuttLeft)
	require.NoError(t, err)
	assert.Equal(t, golfworld.Cell{X: 1, Y: 5}, next.Cell())
}

func TestBoundaryInvariant(t *testing.T) {
	c := testConfig()
	c.WindSpeed = 7
	e, err := golfworld.NewEngine(c, 1234)
	require.NoError(t, err)

	x, y := e.Bounds()
	assert.Equal(t, float64(c.Width+1), x.Max)
	assert.Equal(t, float64(c.Height+1), y.Max)

	state := e.Start()
	actions := golfworld.Actions()
	for i := 0; i < 5000; i++ {
		state, err = e.Transition(state, actions[i%len(actions)])
		require.NoError(t, err)

		cell := state.Cell()
		require.GreaterOrEqual(t, cell.X, 0)
		require.LessOrEqual(t, cell.X, c.Width+1)
		require.GreaterOrEqual(t, cell.Y, 0)
		require.LessOrEqual(t, cell.Y, c.Height+1)

		if state.Terminal() {
			state = e.Start()
		}
	}
}

func TestGoalDetection(t *testing.T) {
	e := newCalmEngine(t, testConfig())

	next, err := e.Transition(golfworld.NewState(15, 17, false),
		golfworld.PuttUp)
	require.NoError(t, err)
	assert.True(t, next.Terminal())
	assert.True(t, e.IsGoal(next))

	next, err = e.Transition(golfworld.NewState(15, 17, false),
		golfworld.PuttDown)
	require.NoError(t, err)
	assert.False(t, next.Terminal())
	assert.False(t, e.IsGoal(next))
}

func TestRewardBounds(t *testing.T) {
	c := testConfig()
	c.WindSpeed = 5
	e, err := golfworld.NewEngine(c, 99)
	require.NoError(t, err)

	goal, step := 10-c.StepCost, -c.StepCost
	assert.Equal(t, step, e.MinReward())
	assert.Equal(t, goal, e.MaxReward())

	for x := 0; x <= c.Width+1; x++ {
		for y := 0; y <= c.Height+1; y++ {
			s := golfworld.NewState(float64(x), float64(y), false)
			for _, a := range golfworld.Actions() {
				r, err := e.Reward(s, a)
				require.NoError(t, err)
				require.Contains(t, []float64{goal, step}, r)
			}
		}
	}

	r, err := e.Reward(golfworld.NewState(15, 17, false), golfworld.PuttUp)
	require.NoError(t, err)
	assert.Equal(t, goal, r)
}

func TestStepRewardSampling(t *testing.T) {
	c := testConfig()
	c.RewardSampling = golfworld.Realized
	e, err := golfworld.NewEngine(c, 3)
	require.NoError(t, err)

	out, err := e.Step(golfworld.NewState(15, 17, false), golfworld.PuttUp)
	require.NoError(t, err)
	assert.True(t, out.Next.Terminal())
	assert.Equal(t, 9.0, out.Reward)
	assert.Equal(t, golfworld.PuttUp, out.Played)

	// Realized rewards always agree with the landing position
	start := golfworld.NewState(15, 8, false)
	for i := 0; i < 1000; i++ {
		out, err = e.Step(start, golfworld.DriverUp)
		require.NoError(t, err)
		assert.Equal(t, e.RewardFor(out.Next), out.Reward)
		assert.True(t, out.Scored.Equal(out.Next))
	}

	c.RewardSampling = golfworld.Independent
	e, err = golfworld.NewEngine(c, 3)
	require.NoError(t, err)
	out, err = e.Step(golfworld.NewState(15, 17, false), golfworld.PuttUp)
	require.NoError(t, err)
	assert.Equal(t, 9.0, out.Reward)
	assert.True(t, out.Scored.Terminal())

	// Independent rewards are computed from the scored landing
	for i := 0; i < 1000; i++ {
		out, err = e.Step(start, golfworld.DriverUp)
		require.NoError(t, err)
		assert.Equal(t, e.RewardFor(out.Scored), out.Reward)
	}
}

func TestResolveAction(t *testing.T) {
	tests := []struct {
		terrain golfworld.Terrain
		action  golfworld.Action
		fail    float64
		want    golfworld.Action
	}{
		{golfworld.Hazard, golfworld.DriverLeft, 0.1, golfworld.PuttLeft},
		{golfworld.Hazard, golfworld.IronDown, 0.49, golfworld.PuttDown},
		{golfworld.Hazard, golfworld.PuttUp, 0.1, golfworld.PuttUp},
		{golfworld.Hazard, golfworld.DriverUp, 0.5, golfworld.DriverUp},
		{golfworld.Rough, golfworld.DriverDown, 0.89, golfworld.IronDown},
		{golfworld.Rough, golfworld.DriverRight, 0.1, golfworld.IronRight},
		{golfworld.Rough, golfworld.IronUp, 0.1, golfworld.IronUp},
		{golfworld.Rough, golfworld.PuttLeft, 0.1, golfworld.PuttLeft},
		{golfworld.Rough, golfworld.DriverUp, 0.9, golfworld.DriverUp},
		{golfworld.Fairway, golfworld.DriverUp, 0.0, golfworld.DriverUp},
	}

	for _, test := range tests {
		got := golfworld.ResolveAction(test.terrain, test.action, test.fail)
		assert.Equal(t, test.want, got, "%v on %v with fail %v",
			test.action, test.terrain, test.fail)
	}
}

func TestRegimeFrequency(t *testing.T) {
	const trials = 20000
	e, err := golfworld.NewEngine(testConfig(), 2021)
	require.NoError(t, err)

	hazard := golfworld.NewState(float64(hazardCell.X),
		float64(hazardCell.Y), false)
	rough := golfworld.NewState(float64(roughCell.X), float64(roughCell.Y),
		false)

	var putts, irons int
	for i := 0; i < trials; i++ {
		shot, err := e.Shoot(hazard, golfworld.DriverUp)
		require.NoError(t, err)
		assert.Equal(t, golfworld.Hazard, shot.Terrain)
		if shot.Played.Club() == golfworld.Putt {
			putts++
		}

		shot, err = e.Shoot(rough, golfworld.DriverUp)
		require.NoError(t, err)
		assert.Equal(t, golfworld.Rough, shot.Terrain)
		if shot.Played.Club() == golfworld.Iron {
			irons++
		}
	}

	assert.InDelta(t, golfworld.HazardFailure, float64(putts)/trials, 0.02)
	assert.InDelta(t, golfworld.RoughFailure, float64(irons)/trials, 0.02)
}

func TestDownGradedShotsMove(t *testing.T) {
	e := newCalmEngine(t, testConfig())
	hazard := golfworld.NewState(float64(hazardCell.X),
		float64(hazardCell.Y), false)

	for i := 0; i < 200; i++ {
		shot, err := e.Shoot(hazard, golfworld.DriverUp)
		require.NoError(t, err)

		if shot.Played == golfworld.PuttUp {
			assert.Equal(t, 0, shot.DX)
			assert.Equal(t, 1, shot.DY)
		} else {
			assert.Equal(t, 10, shot.DY)
		}
	}
}

func TestSeededReplay(t *testing.T) {
	c := testConfig()
	c.WindSpeed = 3

	e1, err := golfworld.NewEngine(c, 555)
	require.NoError(t, err)
	e2, err := golfworld.NewEngine(c, 555)
	require.NoError(t, err)

	s1, s2 := e1.Start(), e2.Start()
	for i := 0; i < 500; i++ {
		a := golfworld.Action(i % golfworld.NumActions)
		s1, err = e1.Transition(s1, a)
		require.NoError(t, err)
		s2, err = e2.Transition(s2, a)
		require.NoError(t, err)
		require.True(t, s1.Equal(s2))
	}

	// Forked engines share the course but not the random stream
	f1, f2 := e1.Fork(1), e1.Fork(1)
	assert.Equal(t, e1.Config().String(), f1.Config().String())
	start := golfworld.NewState(10, 5, false)
	for i := 0; i < 100; i++ {
		n1, err := f1.Transition(start, golfworld.DriverUp)
		require.NoError(t, err)
		n2, err := f2.Transition(start, golfworld.DriverUp)
		require.NoError(t, err)
		require.True(t, n1.Equal(n2))
	}
}

func TestInvalidAction(t *testing.T) {
	e, err := golfworld.NewEngine(testConfig(), 1)
	require.NoError(t, err)

	for _, a := range []golfworld.Action{-1, 12, 100} {
		_, err = e.Transition(e.Start(), a)
		assert.ErrorIs(t, err, golfworld.ErrInvalidAction)

		_, err = e.Reward(e.Start(), a)
		assert.ErrorIs(t, err, golfworld.ErrInvalidAction)

		_, err = e.Step(e.Start(), a)
		assert.ErrorIs(t, err, golfworld.ErrInvalidAction)
	}
}

func TestRadialDispersion(t *testing.T) {
	const samples = 20000
	d := golfworld.NewRadialDispersion(rand.NewSource(11))

	x, y := d.Sample(golfworld.Putt)
	assert.Zero(t, x)
	assert.Zero(t, y)

	tests := []struct {
		club   golfworld.Club
		spread float64
	}{
		{golfworld.Driver, golfworld.DriverSpread},
		{golfworld.Iron, golfworld.IronSpread},
	}

	for _, test := range tests {
		squared := make([]float64, samples)
		distinct := make(map[float64]struct{})
		for i := range squared {
			x, y := d.Sample(test.club)
			squared[i] = x*x + y*y
			distinct[x] = struct{}{}
		}

		// E[r²] = σ² for r ~ N(0, σ)
		variance := test.spread * test.spread
		assert.InDelta(t, variance, stat.Mean(squared, nil), 0.05*variance)
		assert.Greater(t, len(distinct), samples/2)
	}
}

func TestWindDrift(t *testing.T) {
	tests := []struct {
		direction golfworld.Direction
		club      golfworld.Club
		x, y      float64
	}{
		{golfworld.Up, golfworld.Driver, 0, 2},
		{golfworld.Down, golfworld.Driver, 0, -2},
		{golfworld.Left, golfworld.Iron, -1, 0},
		{golfworld.Right, golfworld.Iron, 1, 0},
		{golfworld.Right, golfworld.Putt, 0, 0},
	}

	for _, test := range tests {
		w := golfworld.Wind{Direction: test.direction, Speed: 10}
		x, y := w.Drift(test.club)
		assert.True(t, math.Abs(x-test.x) < 1e-9, "x drift %v", x)
		assert.True(t, math.Abs(y-test.y) < 1e-9, "y drift %v", y)
	}
}

func TestClassifier(t *testing.T) {
	c := golfworld.NewClassifier(
		[]golfworld.Cell{{X: 1, Y: 1}, {X: 2, Y: 2}},
		[]golfworld.Cell{{X: 2, Y: 2}},
	)

	assert.Equal(t, golfworld.Rough, c.Classify(golfworld.NewState(1, 1, false)))
	assert.Equal(t, golfworld.Rough,
		c.Classify(golfworld.NewState(1.4, 0.6, false)))
	assert.Equal(t, golfworld.Hazard,
		c.Classify(golfworld.NewState(2, 2, false)))
	assert.Equal(t, golfworld.Fairway,
		c.Classify(golfworld.NewState(3, 1, false)))
}

func BenchmarkTransition(b *testing.B) {
	e, err := golfworld.NewEngine(testConfig(), uint64(b.N))
	if err != nil {
		b.Fatal(err)
	}

	state := e.Start()
	for i := 0; i < b.N; i++ {
		state, _ = e.Transition(state, golfworld.Action(i%golfworld.NumActions))
		if state.Terminal() {
			state = e.Start()
		}
	}
}
