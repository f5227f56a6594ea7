package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-kit/log"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/sim"
	"github.com/sheikhrachel/go-life/utils"
)

const (
	reasonExtinction     = "extinction"
	reasonStagnation     = "stagnation detected"
	reasonMaxGenerations = "maximum generations reached"
)

// initializeGame builds the board and its controller. The board starts from
// --pattern when given, otherwise it is randomized.
func initializeGame(config utils.Config, logger log.Logger) (*model.Board, *sim.Controller, error) {
	if err := config.Validate(); err != nil {
		return nil, nil, err
	}
	board, err := model.NewBoard(config.BoardConfig())
	if err != nil {
		return nil, nil, err
	}
	ctrl := sim.New(board, sim.WithInterval(config.Interval()), sim.WithLogger(logger))

	if patternFile == "" {
		ctrl.Randomize()
		return board, ctrl, nil
	}

	f, err := os.Open(patternFile)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "[initializeGame] failed to open pattern: %+v", patternFile)
	}
	defer f.Close()

	pattern, err := model.ParseGrid(f)
	if err != nil {
		return nil, nil, err
	}
	ctrl.Load(pattern)
	return board, ctrl, nil
}

// displayGameInfo shows the initial game information
func displayGameInfo(w io.Writer, config utils.Config, board *model.Board) {
	fmt.Fprintf(w, "Grid: %dx%d cells of %dpx | Interval: %dms | Memory Pool: %v\n",
		board.Cols(), board.Rows(), board.CellSize(), config.IntervalMs, config.UseMemoryPool)
	fmt.Fprintf(w, "Initial living cells: %d\n", board.Population())
	fmt.Fprintln(w, "Press Ctrl+C to exit gracefully")
	fmt.Fprintln(w)
}

// updateGameState records the generation and reports its status
func updateGameState(
	snap sim.Snapshot,
	grid *model.Grid,
	history *model.History,
	lastFrameTime time.Time,
	stats *utils.Stats,
) (string, bool) {
	livingCells := snap.Population()
	stats.Update(snap.State.Generation, livingCells, time.Since(lastFrameTime))

	isStagnant := history.IsStagnant(grid)
	history.Record(grid)

	status := "Active"
	if isStagnant {
		status = "Stagnant"
	}
	if livingCells == 0 {
		status = "Extinct"
	}
	return status, isStagnant
}

// displayGameStatus shows the current game status
func displayGameStatus(w io.Writer, snap sim.Snapshot, status string, stats *utils.Stats) {
	density := float64(snap.Population()) / float64(snap.Cols*snap.Rows) * 100
	fmt.Fprintf(w, "Gen: %d | Living: %d | Density: %.1f%% | Status: %s\n",
		snap.State.Generation, snap.Population(), density, status)
	fmt.Fprintf(w, "Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs\n",
		stats.GenerationsPerSecond, stats.AveragePopulation, stats.Runtime().Seconds())
	fmt.Fprintln(w)
}

// displayFinalStats prints the run summary
func displayFinalStats(w io.Writer, stats *utils.Stats) {
	fmt.Fprintf(w, "Final stats: %d generations in %.1f seconds\n",
		stats.TotalGenerations, stats.Runtime().Seconds())
	fmt.Fprintf(w, "Average: %.1f gen/sec, %.1f avg population\n",
		stats.GenerationsPerSecond, stats.AveragePopulation)
}

// checkStopConditions determines if a headless run should end
func checkStopConditions(snap sim.Snapshot, stagnantCount int, config utils.Config) (bool, string) {
	if config.MaxGenerations > 0 && snap.State.Generation >= config.MaxGenerations {
		return true, reasonMaxGenerations
	}
	if snap.Population() == 0 {
		return true, reasonExtinction
	}
	if config.StagnationThreshold > 0 && stagnantCount >= config.StagnationThreshold {
		return true, reasonStagnation
	}
	return false, ""
}
