package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"stickies/internal/board"
	"stickies/internal/storage"
)

var (
	configPath string
	storePath  string
	backend    string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:   "stickies",
	Short: "A sticky-notes board for the terminal",
	Long: `Stickies keeps free-floating note cards on a board you can pan around.
Notes never land on top of each other, and deleted notes can be restored
for a few seconds.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		p := tea.NewProgram(
			initialModel(app.board, app.config, app.logger),
			tea.WithAltScreen(),
			tea.WithMouseCellMotion(),
		)
		// Changes raised from inside Update would block on Send.
		cancel := app.board.Subscribe(func(c board.Change) {
			go p.Send(boardChangedMsg(c))
		})
		defer cancel()

		_, err = p.Run()
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/stickies/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "board file, overrides store_path")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "storage backend: auto, json or sqlite")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "write debug logs")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// app holds what every command needs: config, logger, and a board backed
// by the configured store.
type app struct {
	config  *Config
	logger  *slog.Logger
	board   *board.Board
	kv      storage.KV
	logFile io.Closer
}

func openApp() (*app, error) {
	config, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if storePath != "" {
		config.StorePath = expandPath(storePath)
	}
	if backend != "" {
		config.Backend = backend
	}

	logger, logFile, err := setupLogger(config)
	if err != nil {
		return nil, err
	}

	kv, err := storage.Open(config.Backend, config.StorePath, logger)
	if err != nil {
		if logFile != nil {
			logFile.Close()
		}
		return nil, err
	}
	logger.Debug("opened store", "path", config.StorePath, "backend", config.Backend)

	repo := storage.NewRepository(kv, logger)
	b := board.New(repo,
		board.WithNotes(repo.Load()),
		board.WithLogger(logger),
	)
	return &app{config: config, logger: logger, board: b, kv: kv, logFile: logFile}, nil
}

func (a *app) Close() {
	a.board.Close()
	if err := a.kv.Close(); err != nil {
		a.logger.Error("close store", "error", err)
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
}

// setupLogger logs to a file because the terminal belongs to the UI.
// Without --debug or a configured log file nothing is written.
func setupLogger(config *Config) (*slog.Logger, io.Closer, error) {
	path := config.LogFile
	if path == "" && debug {
		path = filepath.Join(configHome(), "stickies.log")
	}
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), nil, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, f, nil
}
