// Command golfworld validates, renders and runs rollouts on GolfWorld
// courses.
//
// Courses are read from a JSON or YAML file given by --config. Any
// course value may be overridden by an environment variable, e.g.
// GOLFWORLD_COURSE_WIND_SPEED=3.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/rs/zerolog"
	"github.com/samuelfneumann/golfworld/environment/envconfig"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	v      = viper.New()
	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "golfworld",
	Short: "Stochastic golf course environment",
	Long: `golfworld simulates a golf course as a Markov decision process.

A ball is played from the tee to the hole with a driver, an iron or a
putter. Shots are pushed by wind and dispersed by noise, and playing from
rough or a hazard may force a weaker club.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a course configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := envconfig.Load(v)
		if err != nil {
			return err
		}

		au := aurora.NewAurora(!v.GetBool("no-color"))
		fmt.Fprintf(cmd.OutOrStdout(), "%v course %v: tee %v, hole %v\n",
			au.Green("valid"), au.Bold(c.Course), c.Course.Tee, c.Course.Hole)
		return nil
	},
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print the course layout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := envconfig.Load(v)
		if err != nil {
			return err
		}

		g, _, err := envconfig.CreateGolfWorld(c.Course, v.GetUint64("seed"))
		if err != nil {
			return err
		}
		return g.Render(cmd.OutOrStdout(), !v.GetBool("no-color"))
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Course configuration file (JSON or YAML)")
	flags.Uint64("seed", 0, "Seed for random number generation")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.Bool("no-color", false, "Disable coloured output")

	rollout := rolloutCmd.Flags()
	rollout.Int("episodes", 100, "Number of episodes to run")
	rollout.String("policy", "random", "Policy to run (random, fixed)")
	rollout.String("action", "putt_up", "Action played by the fixed policy")
	rollout.String("out", "", "Directory to save returns and episode "+
		"lengths to")
	rollout.Bool("progress", false, "Display a progress bar")

	// Bind flags to viper for environment variable support
	v.BindPFlags(flags)
	v.BindPFlags(rollout)

	rootCmd.AddCommand(validateCmd, renderCmd, rolloutCmd)
}

// setup reads the configuration file, if any, and creates the logger
func setup() error {
	v.SetEnvPrefix(envconfig.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	level, err := zerolog.ParseLevel(v.GetString("log-level"))
	if err != nil {
		return fmt.Errorf("invalid log level: %v", err)
	}
	logger = zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("could not read config: %v", err)
		}
		logger.Debug().Str("file", v.ConfigFileUsed()).Msg("loaded config")
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
