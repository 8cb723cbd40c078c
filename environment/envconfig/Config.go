// Package envconfig provides configuration structs for configuring
// environments with default parameters and tasks. Environment
// configurations in this package are JSON and YAML serializable and can
// be loaded from files and environment variables.
package envconfig

import (
	"fmt"
	"strings"

	env "github.com/samuelfneumann/golfworld/environment"
	"github.com/samuelfneumann/golfworld/environment/golfworld"
	ts "github.com/samuelfneumann/golfworld/timestep"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding
// configuration values, e.g. GOLFWORLD_COURSE_WIND_SPEED
const EnvPrefix = "GOLFWORLD"

// EnvName stores the name of environments that can be configured with
// this package
type EnvName string

// Environments available for configuration
const (
	GolfWorld EnvName = "GolfWorld"
)

// Config implements a specific configuration of a specific environment
type Config struct {
	Environment EnvName          `json:"environment" mapstructure:"environment"`
	Course      golfworld.Config `json:"course" mapstructure:"course"`
}

// NewConfig returns a new GolfWorld environment Config on course c
func NewConfig(c golfworld.Config) Config {
	return Config{
		Environment: GolfWorld,
		Course:      c,
	}
}

// Default returns the Config of the default course. The default course
// is a long, narrow hole with a crosswind, lined with rough and with a
// water hazard in front of the green.
func Default() Config {
	const width, height = 9, 30

	var rough, hazard []golfworld.Cell
	for y := 3; y <= height; y++ {
		rough = append(rough, golfworld.Cell{X: 1, Y: y},
			golfworld.Cell{X: width, Y: y})
	}
	for x := 3; x <= 7; x++ {
		hazard = append(hazard, golfworld.Cell{X: x, Y: 22},
			golfworld.Cell{X: x, Y: 23})
	}

	return NewConfig(golfworld.Config{
		Name:           "default",
		Width:          width,
		Height:         height,
		Tee:            golfworld.Cell{X: 5, Y: 1},
		Hole:           golfworld.Cell{X: 5, Y: 27},
		Rough:          rough,
		Hazard:         hazard,
		WindDirection:  "right",
		WindSpeed:      5,
		Discount:       0.95,
		StepCost:       1,
		EpisodeCutoff:  100,
		RewardSampling: golfworld.Independent,
	})
}

// Create returns the environment described by the Config as well as
// the first timestep of the environment.
func (c Config) Create(seed uint64) (env.Environment, ts.TimeStep, error) {
	switch c.Environment {
	case GolfWorld:
		g, step, err := CreateGolfWorld(c.Course, seed)
		if err != nil {
			return nil, ts.TimeStep{}, fmt.Errorf("create: %w", err)
		}
		return g, step, nil
	}

	return nil, ts.TimeStep{}, fmt.Errorf("create: cannot create "+
		"environment %v, no such environment", c.Environment)
}

// CreateGolfWorld is a factory for creating the GolfWorld environment
// with the Hole task on course c
func CreateGolfWorld(c golfworld.Config, seed uint64) (*golfworld.GolfWorld,
	ts.TimeStep, error) {
	engine, err := golfworld.NewEngine(c, seed)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("createGolfWorld: %w", err)
	}

	task, err := golfworld.NewHole(c)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("createGolfWorld: %w", err)
	}

	return golfworld.New(task, engine)
}

// SetDefaults registers the scalar values of the default Config with v
// so that they can be overridden by files, flags and environment
// variables. The course layout (tee, hole, rough and hazard) is tied to
// the dimensions of the default course and is not registered, see
// SetLayoutDefaults.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("environment", d.Environment)
	v.SetDefault("course.name", d.Course.Name)
	v.SetDefault("course.width", d.Course.Width)
	v.SetDefault("course.height", d.Course.Height)
	v.SetDefault("course.wind_direction", d.Course.WindDirection)
	v.SetDefault("course.wind_speed", d.Course.WindSpeed)
	v.SetDefault("course.discount", d.Course.Discount)
	v.SetDefault("course.step_cost", d.Course.StepCost)
	v.SetDefault("course.episode_cutoff", d.Course.EpisodeCutoff)
	v.SetDefault("course.symmetric_putt", d.Course.SymmetricPutt)
	v.SetDefault("course.reward_sampling", d.Course.RewardSampling)
}

// SetLayoutDefaults registers the layout of the default course with v
func SetLayoutDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("course.tee", cellSetting(d.Course.Tee))
	v.SetDefault("course.hole", cellSetting(d.Course.Hole))
	v.SetDefault("course.rough", cellSettings(d.Course.Rough))
	v.SetDefault("course.hazard", cellSettings(d.Course.Hazard))
}

// Load returns the Config held by v. Scalar values missing from v take
// their default values. If v holds no course from a configuration file,
// the default course is used. Otherwise, the file must place the tee
// and hole, and rough or hazard regions it omits are empty. The course
// is validated before returning.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)
	fromFile := v.InConfig("course")
	if !fromFile {
		SetLayoutDefaults(v)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if fromFile {
		for _, key := range []string{"course.tee", "course.hole"} {
			if !v.IsSet(key) {
				return Config{}, fmt.Errorf("load: %v is not set: %w", key,
					golfworld.ErrInvalidConfig)
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("load: could not decode config: %v", err)
	}

	if err := c.Course.Validate(); err != nil {
		return Config{}, fmt.Errorf("load: %w", err)
	}
	return c, nil
}

// LoadFile reads the Config stored in the JSON or YAML file at path
func LoadFile(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("loadFile: could not read %v: %v", path,
			err)
	}

	return Load(v)
}

// cellSetting returns c in the form viper stores decoded files in
func cellSetting(c golfworld.Cell) map[string]interface{} {
	return map[string]interface{}{"x": c.X, "y": c.Y}
}

func cellSettings(cells []golfworld.Cell) []interface{} {
	settings := make([]interface{}, len(cells))
	for i := range cells {
		settings[i] = cellSetting(cells[i])
	}
	return settings
}
