// Package experiment implements functionality for running a policy
// in an environment and recording how it performs
package experiment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	env "github.com/samuelfneumann/golfworld/environment"
	"github.com/samuelfneumann/golfworld/experiment/trackers"
	ts "github.com/samuelfneumann/golfworld/timestep"
	"gonum.org/v1/gonum/stat"
)

// Rollout runs a Policy in an environment for a fixed number of
// episodes. Each TimeStep is sent to the registered Trackers, which
// cache the data they track until Save is called.
//
// Episodes are ended by the environment Task, so the Task should
// impose an episode cutoff if the Policy may never finish an episode.
type Rollout struct {
	env.Environment
	Policy

	id       uuid.UUID
	episodes int
	trackers []trackers.Tracker
	logger   zerolog.Logger

	returns  []float64
	lengths  []float64
	finished int
}

// NewRollout creates and returns a new Rollout of Policy p in
// environment e which runs for the given number of episodes. Tracked
// data is cached in each of the Trackers t.
func NewRollout(e env.Environment, p Policy, episodes int,
	logger zerolog.Logger, t ...trackers.Tracker) *Rollout {
	id := uuid.New()
	return &Rollout{
		Environment: e,
		Policy:      p,
		id:          id,
		episodes:    episodes,
		trackers:    t,
		logger:      logger.With().Str("run", id.String()).Logger(),
	}
}

// ID returns the unique identifier of the Rollout
func (r *Rollout) ID() uuid.UUID {
	return r.id
}

// Register registers a Tracker with the Rollout so that data
// generated during the Rollout can be tracked and saved
func (r *Rollout) Register(t trackers.Tracker) {
	r.trackers = append(r.trackers, t)
}

// RunEpisode runs a single episode and returns the last timestep of
// the episode
func (r *Rollout) RunEpisode(ctx context.Context) (ts.TimeStep, error) {
	step, err := r.Reset()
	if err != nil {
		return ts.TimeStep{}, fmt.Errorf("runEpisode: %v", err)
	}
	r.track(step)

	episodeReturn := 0.0
	for !step.Last() {
		if err := ctx.Err(); err != nil {
			return step, fmt.Errorf("runEpisode: %w", err)
		}

		action := r.SelectAction(step)
		step, _, err = r.Environment.Step(action)
		if err != nil {
			return step, fmt.Errorf("runEpisode: %w", err)
		}
		r.track(step)
		episodeReturn += step.Reward
	}

	r.returns = append(r.returns, episodeReturn)
	r.lengths = append(r.lengths, float64(step.Number))
	if step.EndType() == ts.TerminalStateReached {
		r.finished++
	}

	r.logger.Debug().
		Int("episode", len(r.returns)).
		Float64("return", episodeReturn).
		Int("shots", step.Number).
		Stringer("end", step.EndType()).
		Msg("episode finished")

	return step, nil
}

// Run runs all episodes of the Rollout. If after is not nil, it is
// called with the episode number and last timestep of each episode.
func (r *Rollout) Run(ctx context.Context,
	after func(episode int, last ts.TimeStep)) (Summary, error) {
	r.logger.Info().Int("episodes", r.episodes).Msg("starting rollout")

	for i := 1; i <= r.episodes; i++ {
		last, err := r.RunEpisode(ctx)
		if err != nil {
			return r.Summary(), fmt.Errorf("run: episode %d: %w", i, err)
		}
		if after != nil {
			after(i, last)
		}
	}

	summary := r.Summary()
	r.logger.Info().Object("summary", summary).Msg("rollout finished")
	return summary, nil
}

// Save saves all the data cached by the Trackers to disk
func (r *Rollout) Save() error {
	var errs []error
	for _, tracker := range r.trackers {
		if err := tracker.Save(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Summary returns a Summary of the episodes run so far
func (r *Rollout) Summary() Summary {
	s := Summary{
		ID:       r.id,
		Episodes: len(r.returns),
		Finished: r.finished,
	}
	if s.Episodes == 0 {
		return s
	}

	s.MeanReturn, s.StdReturn = stat.MeanStdDev(r.returns, nil)
	s.MeanLength = stat.Mean(r.lengths, nil)
	if s.Episodes == 1 {
		s.StdReturn = 0
	}
	return s
}

// track tracks the current timestep by caching its data in each
// Tracker
func (r *Rollout) track(t ts.TimeStep) {
	for _, tracker := range r.trackers {
		tracker.Track(t)
	}
}

// Summary summarizes the episodes run by a Rollout
type Summary struct {
	ID         uuid.UUID
	Episodes   int
	Finished   int // Episodes ending in a terminal state
	MeanReturn float64
	StdReturn  float64
	MeanLength float64
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler
func (s Summary) MarshalZerologObject(e *zerolog.Event) {
	e.Int("episodes", s.Episodes).
		Int("finished", s.Finished).
		Float64("mean_return", s.MeanReturn).
		Float64("std_return", s.StdReturn).
		Float64("mean_length", s.MeanLength)
}

// String implements the fmt.Stringer interface
func (s Summary) String() string {
	return fmt.Sprintf("run %v: %d episodes, %d finished, return %.3f ± "+
		"%.3f, length %.3f", s.ID, s.Episodes, s.Finished, s.MeanReturn,
		s.StdReturn, s.MeanLength)
}
