package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/logrusorgru/aurora"
	"github.com/samuelfneumann/golfworld/environment/envconfig"
	"github.com/samuelfneumann/golfworld/environment/golfworld"
	"github.com/samuelfneumann/golfworld/experiment"
	"github.com/samuelfneumann/golfworld/experiment/trackers"
	ts "github.com/samuelfneumann/golfworld/timestep"
	"github.com/samuelfneumann/golfworld/utils/progressbar"
	"github.com/spf13/cobra"
)

var rolloutCmd = &cobra.Command{
	Use:   "rollout",
	Short: "Run a policy on the course",
	Args:  cobra.NoArgs,
	RunE:  runRollout,
}

func runRollout(cmd *cobra.Command, args []string) error {
	c, err := envconfig.Load(v)
	if err != nil {
		return err
	}

	seed := v.GetUint64("seed")
	g, _, err := envconfig.CreateGolfWorld(c.Course, seed)
	if err != nil {
		return err
	}

	var policy experiment.Policy
	switch v.GetString("policy") {
	case "random":
		policy, err = experiment.NewRandom(g.ActionSpec(), seed+1)
		if err != nil {
			return err
		}

	case "fixed":
		a, err := golfworld.ParseAction(v.GetString("action"))
		if err != nil {
			return err
		}
		policy = experiment.NewFixed(float64(a))

	default:
		return fmt.Errorf("unknown policy %q", v.GetString("policy"))
	}

	episodes := v.GetInt("episodes")
	rollout := experiment.NewRollout(g, policy, episodes, logger.With().
		Str("course", c.Course.String()).Logger())

	out := v.GetString("out")
	if out != "" {
		if err := os.MkdirAll(out, 0o755); err != nil {
			return fmt.Errorf("could not create output directory: %v", err)
		}
		prefix := filepath.Join(out, rollout.ID().String())
		rollout.Register(trackers.NewReturn(prefix + "_return.bin"))
		rollout.Register(trackers.NewEpisodeLength(prefix + "_length.bin"))
	}

	var after func(int, ts.TimeStep)
	if v.GetBool("progress") {
		bar := progressbar.NewManualProgressBar(cmd.ErrOrStderr(), 40, episodes)
		defer bar.Close()
		after = func(int, ts.TimeStep) {
			bar.Increment()
			bar.Display()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt,
		syscall.SIGTERM)
	defer stop()

	summary, err := rollout.Run(ctx, after)
	if err != nil {
		return err
	}

	if out != "" {
		if err := rollout.Save(); err != nil {
			return err
		}
		logger.Info().Str("dir", out).Msg("saved rollout data")
	}

	au := aurora.NewAurora(!v.GetBool("no-color"))
	fmt.Fprintf(cmd.OutOrStdout(), "%v %v\n", au.Cyan(c.Course), summary)
	return nil
}
