package envconfig_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/samuelfneumann/golfworld/environment/envconfig"
	"github.com/samuelfneumann/golfworld/environment/golfworld"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const courseYAML = `
environment: GolfWorld
course:
  name: links
  width: 12
  height: 14
  tee: {x: 2, y: 1}
  hole: {x: 10, y: 12}
  rough:
    - {x: 3, y: 3}
    - {x: 4, y: 3}
  hazard:
    - {x: 6, y: 6}
  wind_direction: down
  wind_speed: 2.5
  discount: 0.99
  step_cost: 0.5
  reward_sampling: realized
`

func TestDefaultCreates(t *testing.T) {
	c := envconfig.Default()
	require.NoError(t, c.Course.Validate())

	e, step, err := c.Create(7)
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.True(t, step.First())
	assert.Equal(t, float64(c.Course.Tee.X), step.Observation.AtVec(0))
}

func TestCreateUnknownEnvironment(t *testing.T) {
	c := envconfig.Default()
	c.Environment = "MiniGolf"

	e, _, err := c.Create(7)
	assert.Error(t, err)
	assert.Nil(t, e)

	c = envconfig.Default()
	c.Course.Width = 0
	e, _, err = c.Create(7)
	assert.ErrorIs(t, err, golfworld.ErrInvalidConfig)
	assert.Nil(t, e)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "course.yaml")
	require.NoError(t, os.WriteFile(path, []byte(courseYAML), 0o644))

	c, err := envconfig.LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, envconfig.GolfWorld, c.Environment)
	assert.Equal(t, "links_h-14_w-12", c.Course.String())
	assert.Equal(t, golfworld.Cell{X: 2, Y: 1}, c.Course.Tee)
	assert.Equal(t, golfworld.Cell{X: 10, Y: 12}, c.Course.Hole)
	assert.Equal(t, []golfworld.Cell{{X: 3, Y: 3}, {X: 4, Y: 3}},
		c.Course.Rough)
	assert.Equal(t, []golfworld.Cell{{X: 6, Y: 6}}, c.Course.Hazard)
	assert.Equal(t, "down", c.Course.WindDirection)
	assert.Equal(t, 2.5, c.Course.WindSpeed)
	assert.Equal(t, 0.5, c.Course.StepCost)
	assert.Equal(t, golfworld.Realized, c.Course.RewardSampling)

	// Missing keys take their default values
	assert.Equal(t, envconfig.Default().Course.EpisodeCutoff,
		c.Course.EpisodeCutoff)
}

func TestLoadJSONRoundTrip(t *testing.T) {
	want := envconfig.Default()
	want.Course.Name = "saved"
	want.Course.SymmetricPutt = true

	data, err := json.Marshal(want)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "course.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	got, err := envconfig.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("GOLFWORLD_COURSE_WIND_SPEED", "12")

	c, err := envconfig.Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, 12.0, c.Course.WindSpeed)
	assert.Equal(t, envconfig.Default().Course.Hole, c.Course.Hole)
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "course.yaml")
	invalid := "course:\n  tee: {x: 1, y: 1}\n  hole: {x: 2, y: 2}\n" +
		"  wind_direction: sideways\n"
	require.NoError(t, os.WriteFile(path, []byte(invalid), 0o644))

	_, err := envconfig.LoadFile(path)
	assert.ErrorIs(t, err, golfworld.ErrInvalidConfig)

	_, err = envconfig.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadFileLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "course.yaml")
	bare := "course:\n  width: 10\n  height: 10\n  tee: {x: 5, y: 1}\n" +
		"  hole: {x: 5, y: 8}\n"
	require.NoError(t, os.WriteFile(path, []byte(bare), 0o644))

	c, err := envconfig.LoadFile(path)
	require.NoError(t, err)
	assert.Empty(t, c.Course.Rough)
	assert.Empty(t, c.Course.Hazard)
	assert.Equal(t, golfworld.Cell{X: 5, Y: 1}, c.Course.Tee)
	assert.Equal(t, golfworld.Cell{X: 5, Y: 8}, c.Course.Hole)

	// Scalars still take their default values
	assert.Equal(t, envconfig.Default().Course.WindSpeed, c.Course.WindSpeed)
}

func TestLoadFileMissingHole(t *testing.T) {
	tests := map[string]string{
		"hole": "course:\n  tee: {x: 5, y: 1}\n",
		"tee":  "course:\n  hole: {x: 5, y: 8}\n",
	}

	for missing, contents := range tests {
		path := filepath.Join(t.TempDir(), "course.yaml")
		require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

		_, err := envconfig.LoadFile(path)
		assert.ErrorIs(t, err, golfworld.ErrInvalidConfig, "missing %v",
			missing)
	}
}

func TestLoadWithoutCourseUsesDefault(t *testing.T) {
	c, err := envconfig.Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, envconfig.Default(), c)
}
