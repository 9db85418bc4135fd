package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ZhugeBane/parnaso-v6/internal/adapters/tui"
	"github.com/ZhugeBane/parnaso-v6/internal/config"
	"github.com/spf13/cobra"
)

// skipWire marks commands that run without loading config or opening storage.
const skipWire = "parnaso/skip-wire"

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd, app := newRootCmd()
	defer app.close()

	return rootCmd.ExecuteContext(ctx)
}

func newRootCmd() (*cobra.Command, *app) {
	app := newApp(config.NewViper())
	var configFile string

	rootCmd := &cobra.Command{
		Use:   "parnaso",
		Short: "Parnaso: a writing journal for sessions, projects and daily word goals",
		Long: "parnaso records writing sessions, tracks word counts against a daily goal, " +
			"keeps a streak and runs timed focus sessions. Without a subcommand it opens the interactive app.",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[skipWire] != "" {
				return nil
			}
			return app.wire(cmd, configFile)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return tui.Run(cmd.Context(), app.controller, app.service, app.logger)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (default <data dir>/config.toml)")
	flags.String("data-dir", "", "data directory (default ~/.parnaso)")
	flags.String("storage", "", "storage driver: toml or sqlite")
	flags.String("log-level", "", "log level: debug, info, warn or error")

	_ = app.viper.BindPFlag(config.KeyDataDir, flags.Lookup("data-dir"))
	_ = app.viper.BindPFlag(config.KeyStorageDriver, flags.Lookup("storage"))
	_ = app.viper.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))

	rootCmd.AddCommand(
		newVersionCmd(),
		newRegisterCmd(app),
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newSessionCmd(app),
		newProjectCmd(app),
		newSettingsCmd(app),
		newStatsCmd(app),
		newUsersCmd(app),
		newResetCmd(app),
	)

	return rootCmd, app
}
