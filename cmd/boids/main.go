package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lao-tseu-is-alive/go-flocking/internal/viewer"
	"github.com/lao-tseu-is-alive/go-flocking/pkg/flock"
	"github.com/lao-tseu-is-alive/go-flocking/pkg/simulation"
	"github.com/tochemey/goakt/v3/log"
)

var levels = map[string]log.Level{
	"debug": log.DebugLevel,
	"info":  log.InfoLevel,
	"warn":  log.WarningLevel,
	"error": log.ErrorLevel,
}

func main() {
	configFile := flag.String("config", "", "JSON or TOML config file (defaults are used when empty)")
	schemaFile := flag.String("schema", "", "JSON schema overriding the embedded one")
	headless := flag.Bool("headless", false, "run without a window and print stats")
	ticks := flag.Uint64("ticks", 600, "ticks to run in headless mode")
	logLevel := flag.String("log-level", "info", "debug, info, warn or error")
	flag.Parse()

	level, ok := levels[strings.ToLower(*logLevel)]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown log level %q\n", *logLevel)
		os.Exit(2)
	}
	headlessTicks, err := checkTicks(*ticks)
	if *headless && err != nil {
		fmt.Fprintf(os.Stderr, "invalid -ticks: %v\n", err)
		os.Exit(2)
	}
	logger := log.New(level, os.Stdout)

	if err := run(*configFile, *schemaFile, *headless, headlessTicks, logger); err != nil {
		logger.Fatalf("💥 %v", err)
	}
}

// checkTicks converts the -ticks flag, rejecting 0 and values the advance
// message cannot carry.
func checkTicks(n uint64) (uint32, error) {
	switch {
	case n == 0:
		return 0, errors.New("must be at least 1")
	case n > math.MaxUint32:
		return 0, fmt.Errorf("%d exceeds %d", n, uint64(math.MaxUint32))
	}
	return uint32(n), nil
}

func run(configFile, schemaFile string, headless bool, ticks uint32, logger log.Logger) error {
	cfg := simulation.DefaultConfig()
	if configFile != "" {
		var err error
		if cfg, err = simulation.LoadConfig(configFile, schemaFile); err != nil {
			return err
		}
	}

	ctx := context.Background()
	sim, err := simulation.Start(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := sim.Stop(ctx); err != nil {
			logger.Errorf("failed to stop actor system: %v", err)
		}
	}()

	if headless {
		return runHeadless(ctx, sim, ticks, logger)
	}

	ebiten.SetWindowSize(int(cfg.WorldWidth), int(cfg.WorldHeight))
	ebiten.SetWindowTitle("Boids Flocking")
	ebiten.SetTPS(cfg.TicksPerSecond)

	return ebiten.RunGame(viewer.NewGame(ctx, sim, cfg, logger))
}

// headlessChunk bounds the work queued ahead of each stats query, so no Ask
// waits on more than this many ticks.
const headlessChunk = 60

// runHeadless advances the flock as fast as the world actor allows and
// reports the resulting stats.
func runHeadless(ctx context.Context, sim *simulation.Simulation, ticks uint32, logger log.Logger) error {
	var stats flock.Stats
	start := time.Now()
	for done := uint32(0); done < ticks; {
		n := min(headlessChunk, ticks-done)
		if err := sim.Advance(ctx, n); err != nil {
			return err
		}
		// Ask is queued behind the advance, so it returns once those ticks ran.
		var err error
		if stats, err = sim.Stats(ctx); err != nil {
			return err
		}
		done += n
		logger.Debugf("%d/%d ticks, mean speed %.3f", done, ticks, stats.MeanSpeed)
	}
	elapsed := time.Since(start)

	logger.Infof("🏁 %d ticks in %v (%.3f ms/tick)", ticks, elapsed, float64(elapsed.Microseconds())/1000/float64(max(ticks, 1)))
	fmt.Printf("ticks=%d population=%d meanSpeed=%.4f meanNeighbors=%.2f centroid=%v\n",
		stats.Ticks, stats.Population, stats.MeanSpeed, stats.MeanNeighbors, stats.Centroid)
	return nil
}
