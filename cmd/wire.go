package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ZhugeBane/parnaso-v6/internal/adapters/identity/local"
	sqliterepo "github.com/ZhugeBane/parnaso-v6/internal/adapters/repo/sqlite"
	tomlrepo "github.com/ZhugeBane/parnaso-v6/internal/adapters/repo/toml"
	chainstore "github.com/ZhugeBane/parnaso-v6/internal/adapters/secrets/chain"
	"github.com/ZhugeBane/parnaso-v6/internal/application"
	"github.com/ZhugeBane/parnaso-v6/internal/config"
	"github.com/ZhugeBane/parnaso-v6/internal/logging"
	"github.com/ZhugeBane/parnaso-v6/internal/ports"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var errNotSignedIn = errors.New("not signed in: run `parnaso login` or `parnaso register` first")

type app struct {
	viper      *viper.Viper
	cfg        config.Config
	logger     logging.Logger
	clock      ports.Clock
	identity   *local.Store
	store      ports.PersistenceGateway
	service    *application.Service
	controller *application.Controller
	now        func() time.Time

	closers []io.Closer
}

func newApp(v *viper.Viper) *app {
	return &app{
		viper: v,
		clock: ports.SystemClock{},
		now:   time.Now,
	}
}

// wire loads the configuration and builds the adapters for cmd. Running the
// interactive app sends logs to the log file so they do not corrupt the screen;
// other commands log to stderr at warn unless a level was chosen explicitly.
func (a *app) wire(cmd *cobra.Command, configFile string) error {
	if a.controller != nil {
		return nil
	}

	cfg, err := config.Load(a.viper, configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg

	logOutput := cmd.ErrOrStderr()
	level := cfg.LogLevel
	if cmd == cmd.Root() {
		file, err := openLogFile(cfg.LogFile)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, file)
		logOutput = file
	} else if !cmd.Flags().Changed("log-level") && !config.LogLevelSet(a.viper) {
		level = slog.LevelWarn
	}
	a.logger = logging.New(logOutput, level).With("storage", cfg.StorageDriver)

	secrets, err := chainstore.NewBackend(cfg.SecretsBackend, cfg.SecretsDir())
	if err != nil {
		return fmt.Errorf("wire secret store: %w", err)
	}

	store, err := a.openStore(cmd.Context())
	if err != nil {
		return err
	}
	a.store = store

	a.identity = local.NewStore(cfg.DataDir, secrets, a.clock, cfg.TokenTTL)
	a.service = application.NewService(a.identity, a.identity, a.clock)
	a.controller = application.NewController(a.identity, a.store, a.logger)

	a.logger.Debug(cmd.Context(), "wired", "data_dir", cfg.DataDir, "config", cfg.ConfigFile, "secrets", cfg.SecretsBackend)
	return nil
}

func (a *app) openStore(ctx context.Context) (ports.PersistenceGateway, error) {
	switch a.cfg.StorageDriver {
	case config.DriverSQLite:
		repo, err := sqliterepo.Open(ctx, filepath.Join(a.cfg.DataDir, sqliterepo.DatabaseFile), a.clock)
		if err != nil {
			return nil, fmt.Errorf("wire sqlite repository: %w", err)
		}
		a.closers = append(a.closers, repo)
		return repo, nil
	default:
		repo, err := tomlrepo.NewRepository(a.viper, a.clock)
		if err != nil {
			return nil, fmt.Errorf("wire toml repository: %w", err)
		}
		return repo, nil
	}
}

// close waits for background saves and releases the log file and database.
func (a *app) close() {
	if a.controller != nil {
		a.controller.Wait()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i].Close()
	}
	a.closers = nil
}

// signedIn resolves the current user and loads their data. A failed load is
// an error here: commands must not act on an account that only looks empty.
func (a *app) signedIn(ctx context.Context) (application.State, error) {
	loadErr := a.controller.Start(ctx)

	state := a.controller.Snapshot()
	if state.User == nil {
		return state, errNotSignedIn
	}
	if loadErr != nil {
		return state, loadErr
	}

	return state, nil
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return file, nil
}
