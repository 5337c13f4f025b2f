package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/tgienger/worklog/internal/config"
	"github.com/tgienger/worklog/internal/db"
	"github.com/tgienger/worklog/internal/ui"
)

// session holds what a command needs once configuration is resolved
type session struct {
	dataDir  string
	logLevel string

	cfg     config.Config
	log     *slog.Logger
	logFile *os.File
	db      *db.DB
}

// open loads configuration, applies flag overrides and opens the log file
// and the store.
func (s *session) open(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	if s.dataDir != "" {
		cfg.DataDir = s.dataDir
	}
	if s.logLevel != "" {
		cfg.LogLevel = s.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	level, _ := cfg.Level()
	s.cfg = cfg

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	// The terminal owns stdout, so logs go to a file next to the database.
	s.logFile, err = os.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	s.log = slog.New(slog.NewJSONHandler(s.logFile, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(s.log)

	s.db, err = db.Open(ctx, cfg.DBPath())
	if err != nil {
		s.log.Error("failed to open database", "path", cfg.DBPath(), "error", err)
		return fmt.Errorf("initializing database: %w", err)
	}
	s.log.Debug("database opened", "path", cfg.DBPath())
	return nil
}

func (s *session) close() error {
	var errs []error
	if s.db != nil {
		errs = append(errs, s.db.Close())
		s.db = nil
	}
	if s.logFile != nil {
		errs = append(errs, s.logFile.Close())
		s.logFile = nil
	}
	return errors.Join(errs...)
}

func newRootCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worklog",
		Short: "Work log: record and search the tasks your team worked on",
		Long: `worklog records what was done, by whom, when and for how long.
Run it without arguments for the interactive menu, or use the
list and export commands from scripts.`,
		Args:          cobra.NoArgs,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.open(cmd.Context())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			term := ui.NewTeaTerminal(tea.WithAltScreen())
			return ui.NewApp(s.db, term, s.log).Run(cmd.Context())
		},
	}
	cmd.SetVersionTemplate(versionLine() + "\n")

	cmd.PersistentFlags().StringVar(&s.dataDir, "data-dir", "", "directory for the database and log file (env WORKLOG_DATA_DIR)")
	cmd.PersistentFlags().StringVar(&s.logLevel, "log-level", "", "debug, info, warn or error (env WORKLOG_LOG_LEVEL)")

	cmd.AddCommand(newListCmd(s))
	cmd.AddCommand(newExportCmd(s))
	cmd.AddCommand(newVersionCmd())
	return cmd
}
