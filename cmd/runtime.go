package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/licensure/examprep/internal/config"
	"github.com/licensure/examprep/internal/logging"
	"github.com/licensure/examprep/internal/questiongen"
	"github.com/licensure/examprep/internal/store"
	"github.com/spf13/cobra"
)

// appEnv bundles what every command needs: settings, the open store and
// a logger.
type appEnv struct {
	cfg    config.Config
	store  *store.Store
	logger *slog.Logger

	closers []io.Closer
}

// generatorConfig applies the environment's generation settings to the
// questiongen defaults.
func generatorConfig(cfg config.Config) questiongen.Config {
	gc := questiongen.DefaultConfig()
	gc.StructuredOutput = cfg.StructuredOutput
	return gc
}

// openEnv loads config and opens the store. When tui is set, logs go to
// a file so they do not draw over the terminal UI.
func openEnv(cmd *cobra.Command, tui bool) (*appEnv, error) {
	envFiles, _ := cmd.Flags().GetStringSlice("env-file")
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}

	e := &appEnv{cfg: cfg}

	var logOut io.Writer = cmd.ErrOrStderr()
	if tui {
		logPath := cfg.LogFile
		if logPath == "" {
			logPath = filepath.Join(filepath.Dir(dbPath), "examprep.log")
		}
		f, err := logging.OpenFile(logPath)
		if err != nil {
			return nil, err
		}
		e.closers = append(e.closers, f)
		logOut = f
	}
	e.logger, err = logging.New(cfg.LogLevel, cfg.LogFormat, logOut)
	if err != nil {
		e.Close()
		return nil, err
	}

	st, err := store.Open(dbPath)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}
	e.store = st
	e.closers = append([]io.Closer{st}, e.closers...)

	e.logger.Debug("environment ready", "db", dbPath, "user", cfg.UserID)
	return e, nil
}

// Close releases the store and log file.
func (e *appEnv) Close() error {
	var errs []error
	for _, c := range e.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	e.closers = nil
	return errors.Join(errs...)
}

// warn prints a user-facing warning to stderr.
func warn(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
