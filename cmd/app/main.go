package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/akyairhashvil/spiritualpath/internal/audio"
	"github.com/akyairhashvil/spiritualpath/internal/config"
	"github.com/akyairhashvil/spiritualpath/internal/database"
	"github.com/akyairhashvil/spiritualpath/internal/tui"
	"github.com/akyairhashvil/spiritualpath/internal/util"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

var (
	// Global flags
	configPath string
	userFlag   string
	verbose    bool
	noSound    bool
)

// appEnv holds the long-lived dependencies a command needs.
type appEnv struct {
	cfg    *config.Config
	db     *database.Database
	logger *zap.Logger
	bell   *audio.Bell
}

func (e *appEnv) Close() {
	if e.bell != nil {
		e.bell.Close()
	}
	if e.db != nil {
		if err := e.db.Close(); err != nil {
			util.LogError(e.logger, "close database", err)
		}
	}
	if e.logger != nil {
		_ = e.logger.Sync()
	}
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if u := strings.TrimSpace(userFlag); u != "" {
		cfg.UserID = u
	}
	if noSound {
		cfg.Audio.Enabled = false
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openEnv wires config, logging, storage and the bell. A bell that cannot
// reach an audio device is logged and left silent.
func openEnv(ctx context.Context) (*appEnv, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger, err := util.NewLogger(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	db, err := database.Open(ctx, cfg.DatabasePath)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("open database: %w", err)
	}
	bell := audio.NewBell(cfg.Audio, logger.Named("audio"))
	if err := bell.Initialize(); err != nil {
		logger.Warn("completion bell unavailable", zap.Error(err))
	}
	logger.Debug("environment ready",
		zap.String("user", cfg.UserID),
		zap.String("db", db.Path()),
		zap.Bool("sound", bell.Enabled()))
	return &appEnv{cfg: cfg, db: db, logger: logger, bell: bell}, nil
}

// withEnv runs fn with an opened environment and closes it afterwards.
func withEnv(cmd *cobra.Command, fn func(ctx context.Context, env *appEnv) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	env, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer env.Close()
	return fn(ctx, env)
}

var rootCmd = &cobra.Command{
	Use:   "spiritualpath",
	Short: "Meditation timer with guided sessions and a practice log",
	Long: `spiritualpath is a terminal meditation timer.

Run without arguments to open the timer. When stdout is not a terminal the
default session runs headless instead.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, env *appEnv) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return runHeadless(cmd, env, runOptions{seconds: env.cfg.Timer.DefaultSeconds})
			}
			return runTUI(ctx, env)
		})
	},
}

func runTUI(ctx context.Context, env *appEnv) error {
	m, err := tui.NewModel(ctx, tui.Deps{
		DB:      env.db,
		Config:  env.cfg,
		Alerter: env.bell,
		Logger:  env.logger.Named("tui"),
	})
	if err != nil {
		return err
	}
	defer m.Close()

	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if fm, ok := final.(tui.Model); ok {
		fm.Close()
	}
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), tui.VersionLabel())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().StringVar(&userFlag, "user", "", "user ID sessions are recorded for")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVar(&noSound, "no-sound", false, "disable the completion bell")

	rootCmd.AddCommand(runCmd, historyCmd, reportCmd, guidedCmd, exportCmd, importCmd, deleteCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
