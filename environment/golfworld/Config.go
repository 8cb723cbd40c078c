package golfworld

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is returned when a course Config cannot be used to
// construct an Engine
var ErrInvalidConfig = errors.New("invalid course config")

// Reward constants
const (
	GoalReward float64 = 10.0
)

// RewardSampling determines how rewards are computed when stepping the
// Engine.
type RewardSampling string

const (
	// Independent rewards evaluate the (state, action) pair with a
	// second, independently sampled shot. The reward may then disagree
	// with the transition that actually occurred.
	Independent RewardSampling = "independent"

	// Realized rewards are computed from the position the ball
	// actually landed in.
	Realized RewardSampling = "realized"
)

// Config describes a single golf course. A Config is read-only once an
// Engine has been constructed from it, and may be shared between any
// number of Engines.
type Config struct {
	Name   string `json:"name" mapstructure:"name"`
	Width  int    `json:"width" mapstructure:"width"`
	Height int    `json:"height" mapstructure:"height"`

	Tee    Cell   `json:"tee" mapstructure:"tee"`
	Hole   Cell   `json:"hole" mapstructure:"hole"`
	Rough  []Cell `json:"rough" mapstructure:"rough"`
	Hazard []Cell `json:"hazard" mapstructure:"hazard"`

	WindDirection string  `json:"wind_direction" mapstructure:"wind_direction"`
	WindSpeed     float64 `json:"wind_speed" mapstructure:"wind_speed"`

	Discount float64 `json:"discount" mapstructure:"discount"`
	StepCost float64 `json:"step_cost" mapstructure:"step_cost"`

	// EpisodeCutoff is the maximum number of steps in an episode of the
	// GolfWorld environment. A cutoff of 0 means episodes only end at
	// the hole.
	EpisodeCutoff int `json:"episode_cutoff" mapstructure:"episode_cutoff"`

	// SymmetricPutt makes putt_left move the ball one unit in the
	// negative x direction. By default putt_left moves the ball in the
	// positive x direction, like putt_right.
	SymmetricPutt bool `json:"symmetric_putt" mapstructure:"symmetric_putt"`

	RewardSampling RewardSampling `json:"reward_sampling" mapstructure:"reward_sampling"`
}

// Validate returns an error wrapping ErrInvalidConfig if the Config
// does not describe a usable course
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("course dimensions (%d, %d) must be positive: %w",
			c.Width, c.Height, ErrInvalidConfig)
	}

	if c.Hole.X < 0 || c.Hole.X > c.Width || c.Hole.Y < 0 ||
		c.Hole.Y > c.Height {
		return fmt.Errorf("hole %v ∉ [0, %d] × [0, %d]: %w", c.Hole,
			c.Width, c.Height, ErrInvalidConfig)
	}

	if c.Tee.X < 0 || c.Tee.X > c.Width+1 || c.Tee.Y < 0 ||
		c.Tee.Y > c.Height+1 {
		return fmt.Errorf("tee %v ∉ [0, %d] × [0, %d]: %w", c.Tee,
			c.Width+1, c.Height+1, ErrInvalidConfig)
	}

	if _, err := ParseDirection(c.WindDirection); err != nil {
		return fmt.Errorf("wind: %v: %w", err, ErrInvalidConfig)
	}

	if math.IsNaN(c.WindSpeed) || c.WindSpeed < 0 {
		return fmt.Errorf("wind speed %v < 0: %w", c.WindSpeed,
			ErrInvalidConfig)
	}

	if math.IsNaN(c.Discount) || c.Discount < 0 || c.Discount > 1 {
		return fmt.Errorf("discount %v ∉ [0, 1]: %w", c.Discount,
			ErrInvalidConfig)
	}

	if math.IsNaN(c.StepCost) || math.IsInf(c.StepCost, 0) {
		return fmt.Errorf("step cost %v is not finite: %w", c.StepCost,
			ErrInvalidConfig)
	}

	if c.EpisodeCutoff < 0 {
		return fmt.Errorf("episode cutoff %d < 0: %w", c.EpisodeCutoff,
			ErrInvalidConfig)
	}

	switch c.RewardSampling {
	case "", Independent, Realized:
	default:
		return fmt.Errorf("unknown reward sampling %q: %w", c.RewardSampling,
			ErrInvalidConfig)
	}

	return nil
}

// Wind returns the wind blowing over the course. Validate should be
// called before Wind.
func (c Config) Wind() Wind {
	direction, _ := ParseDirection(c.WindDirection)
	return Wind{Direction: direction, Speed: c.WindSpeed}
}

// Sampling returns the reward sampling of the course, defaulting to
// Independent
func (c Config) Sampling() RewardSampling {
	if c.RewardSampling == "" {
		return Independent
	}
	return c.RewardSampling
}

// String returns the name of the course with its dimensions
func (c Config) String() string {
	return fmt.Sprintf("%v_h-%d_w-%d", c.Name, c.Height, c.Width)
}
