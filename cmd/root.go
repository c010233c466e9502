/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tally/internal/app"
	"tally/internal/colors"
	"tally/internal/command"
	"tally/internal/config"
	"tally/internal/display"
	"tally/internal/logging"
	"tally/internal/storage"
	"tally/internal/tui"
	"tally/internal/version"
)

var (
	flagBackend  string
	flagStateDir string
	flagInit     string
	flagLogLevel string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tally",
	Short: "Track spending against monthly targets from your terminal.",
	Long: `Track spending against monthly targets from your terminal.

Running tally without a subcommand opens the interactive session: type
commands at the prompt to record entries and income, review them month
by month, and watch each target's progress. Type 'help' inside the
session for the full command list.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runSession,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Set version for use in help output
	rootCmd.Version = version.String()

	// Hide the completion command
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	rootCmd.Flags().StringVar(&flagBackend, "backend", "", "storage backend: csv or sqlite (default from config)")
	rootCmd.Flags().StringVar(&flagStateDir, "state-dir", "", "directory holding the budget data (default from config)")
	rootCmd.Flags().StringVar(&flagInit, "init", "", "command the session runs on startup (default: list)")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "", "enable file logging at this level: debug, info, warn, error")
}

// runProgram runs the assembled bubbletea program. Swapped out in tests.
var runProgram = func(p *tea.Program) error {
	_, err := p.Run()
	return err
}

// applyFlagOverrides pushes explicitly set flags over the loaded config.
func applyFlagOverrides(cmd *cobra.Command) {
	if cmd.Flags().Changed("backend") {
		config.Set("storage_backend", flagBackend)
	}
	if cmd.Flags().Changed("state-dir") {
		config.Set("state_dir", flagStateDir)
	}
	if cmd.Flags().Changed("init") {
		config.Set("start_command", flagInit)
	}
	if cmd.Flags().Changed("log-level") {
		config.Set("logging_level", flagLogLevel)
		config.Set("logging_enabled", "true")
	}
}

func runSession(cmd *cobra.Command, args []string) error {
	// A missing .env is fine; anything it holds reaches config through
	// the environment.
	_ = godotenv.Load()
	config.Load()
	applyFlagOverrides(cmd)

	if err := logging.InitGlobal(); err != nil {
		colors.Warning(fmt.Sprintf("logging disabled: %v", err))
	}
	defer func() { _ = logging.ShutdownGlobal() }()
	log := logging.GetGlobal()

	backend := config.Get("storage_backend", storage.BackendCSV)
	store, err := storage.NewForBackend(backend, config.Get("state_dir", ""))
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	screens := display.NewController(width, height)
	commands := command.NewController(screens, log)
	app.New(store, log).Register(screens, commands)

	poll, err := time.ParseDuration(config.Get("poll_interval", "500ms"))
	if err != nil {
		poll = 0
	}
	session := tui.New(screens, commands, log, tui.Options{
		StartCommand: config.Get("start_command", "list"),
		PollInterval: poll,
	})

	log.Info("session starting", "backend", backend)
	if err := runProgram(tea.NewProgram(session, tea.WithAltScreen())); err != nil {
		return fmt.Errorf("run session: %w", err)
	}
	log.Info("session ended")
	return nil
}
