package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/ui"
	"github.com/sheikhrachel/go-life/utils"
)

var (
	configFile  string
	logLevel    string
	logFile     string
	patternFile string
	generations int
	autoStop    bool
	intervalMs  int
	stepCount   int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "go-life",
		Short:        "threshold game of life",
		SilenceUsage: true,
		RunE:         runTUI,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error, none")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")
	rootCmd.PersistentFlags().StringVar(&patternFile, "pattern", "", "plaintext pattern to start from")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive terminal board",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless, printing each generation",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&generations, "generations", 0, "stop after this many generations (default from config)")
	runCmd.Flags().BoolVar(&autoStop, "auto-stop", true, "stop on extinction or stagnation")
	runCmd.Flags().IntVar(&intervalMs, "interval", 0, "tick interval in ms (default from config)")

	stepCmd := &cobra.Command{
		Use:   "step",
		Short: "step a pattern read from --pattern or stdin and print it",
		Args:  cobra.NoArgs,
		RunE:  runStep,
	}
	stepCmd.Flags().IntVarP(&stepCount, "count", "n", 1, "number of generations")

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write the default config as yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := utils.SaveConfig(args[0], utils.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(tuiCmd, runCmd, stepCmd, configCmd)
	return rootCmd
}

// loadConfig falls back to defaults when no config file is given
func loadConfig() (utils.Config, error) {
	if configFile == "" {
		return utils.DefaultConfig(), nil
	}
	return utils.LoadConfig(configFile)
}

// newLogger writes to --log-file, or to fallback when none is given
func newLogger(fallback io.Writer) (log.Logger, func(), error) {
	w, closeFn := fallback, func() {}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "[newLogger] failed to open log file: %+v", logFile)
		}
		w, closeFn = f, func() { f.Close() }
	}
	logger, err := utils.NewLogger(w, logLevel)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return logger, closeFn, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	config, err := loadConfig()
	if err != nil {
		return err
	}
	// the alt screen owns the terminal, so only log to a file
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	_, ctrl, err := initializeGame(config, logger)
	if err != nil {
		return err
	}
	level.Info(logger).Log("msg", "starting terminal board", "cols", config.Width/config.CellSize, "rows", config.Height/config.CellSize)
	return ui.Run(ctrl, logger)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	config, err := loadConfig()
	if err != nil {
		return err
	}
	if generations > 0 {
		config.MaxGenerations = generations
	}
	if intervalMs > 0 {
		config.IntervalMs = intervalMs
	}

	logger, closeLog, err := newLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	board, ctrl, err := initializeGame(config, logger)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	out := cmd.OutOrStdout()
	renderer := &model.TerminalRenderer{Out: out}
	stats := utils.NewStats()
	displayGameInfo(out, config, board)

	feed := ui.NewFeed()
	ctrl.OnChange(feed.Publish)
	ctrl.Run()
	defer ctrl.Stop()

	var (
		history       model.History
		stagnantCount int
		lastFrameTime = time.Now()
	)
	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(out, "\nShutting down gracefully...")
			displayFinalStats(out, stats)
			return nil
		case snap := <-feed.Updates():
			if snap.State.Generation == stats.TotalGenerations {
				continue
			}
			frameStart := time.Now()
			// the frame matches snap even if the board has moved on
			grid := snap.Grid()
			status, isStagnant := updateGameState(snap, grid, &history, lastFrameTime, stats)
			lastFrameTime = frameStart
			if isStagnant {
				stagnantCount++
			} else {
				stagnantCount = 0
			}

			renderer.Clear()
			displayGameStatus(out, snap, status, stats)
			renderer.Display(grid)

			if stop, reason := checkStopConditions(snap, stagnantCount, config); stop && (autoStop || reason == reasonMaxGenerations) {
				level.Info(logger).Log("msg", "simulation finished", "reason", reason, "generation", snap.State.Generation)
				fmt.Fprintf(out, "\nStopped: %s\n", reason)
				displayFinalStats(out, stats)
				return nil
			}
		}
	}
}

func runStep(cmd *cobra.Command, args []string) error {
	in := cmd.InOrStdin()
	if patternFile != "" {
		f, err := os.Open(patternFile)
		if err != nil {
			return errors.Wrapf(err, "[runStep] failed to open pattern: %+v", patternFile)
		}
		defer f.Close()
		in = f
	}
	if stepCount < 0 {
		return errors.Errorf("[runStep] count must not be negative, got %d", stepCount)
	}

	grid, err := model.ParseGrid(in)
	if err != nil {
		return err
	}
	for range stepCount {
		grid = grid.Step()
	}
	fmt.Fprint(cmd.OutOrStdout(), grid.String())
	return nil
}
