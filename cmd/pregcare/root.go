package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/terraincognita07/pregcare/internal/cli"
	"github.com/terraincognita07/pregcare/internal/config"
	"github.com/terraincognita07/pregcare/internal/logging"
)

const appName = "PregCare"

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "pregcare",
		Short:         "Self-hosted menstrual cycle and fertility tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCommand(),
		newPhaseCommand(),
		newCalendarCommand(),
		newAnalyzeCommand(),
		newRolloverCommand(),
	)
	return root
}

type environment struct {
	config   *config.Config
	logger   *zap.Logger
	location *time.Location
}

// loadEnvironment reads configuration and builds the logger every command
// shares. The configured location becomes time.Local.
func loadEnvironment() (*environment, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg)
	if err != nil {
		return nil, err
	}

	location, fellBack := cfg.Location()
	if fellBack {
		logger.Warn("invalid TZ, falling back to UTC", zap.String("tz", cfg.Timezone))
	}
	time.Local = location

	return &environment{config: cfg, logger: logger, location: location}, nil
}

func (env *environment) cliOptions() cli.Options {
	return cli.Options{
		DBPath:             env.config.DBPath,
		Location:           env.location,
		DefaultCycleLength: env.config.Cycle.DefaultLength,
		LutealPhaseDays:    env.config.Cycle.LutealPhaseDays,
		Logger:             env.logger,
	}
}

func newPhaseCommand() *cobra.Command {
	var today string
	command := &cobra.Command{
		Use:   "phase",
		Short: "Print the phase of the current cycle",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := loadEnvironment()
			if err != nil {
				return err
			}
			defer func() { _ = env.logger.Sync() }()
			return cli.RunPhaseCommand(cmd.OutOrStdout(), env.cliOptions(), today)
		},
	}
	command.Flags().StringVar(&today, "today", "", "evaluate as of this date (YYYY-MM-DD)")
	return command
}

func newCalendarCommand() *cobra.Command {
	var year, month int
	command := &cobra.Command{
		Use:   "calendar",
		Short: "Print a month grid with phases and symptom markers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := loadEnvironment()
			if err != nil {
				return err
			}
			defer func() { _ = env.logger.Sync() }()
			return cli.RunCalendarCommand(cmd.OutOrStdout(), env.cliOptions(), year, month)
		},
	}
	command.Flags().IntVar(&year, "year", 0, "calendar year (default: current)")
	command.Flags().IntVar(&month, "month", 0, "calendar month 1-12 (default: current)")
	return command
}

func newAnalyzeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Regenerate and print the cycle analysis",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := loadEnvironment()
			if err != nil {
				return err
			}
			defer func() { _ = env.logger.Sync() }()
			return cli.RunAnalyzeCommand(cmd.OutOrStdout(), env.cliOptions())
		},
	}
}

func newRolloverCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rollover",
		Short: "Run the nightly phase refresh and analysis once",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := loadEnvironment()
			if err != nil {
				return err
			}
			defer func() { _ = env.logger.Sync() }()
			return cli.RunRolloverCommand(cmd.OutOrStdout(), env.cliOptions())
		},
	}
}
