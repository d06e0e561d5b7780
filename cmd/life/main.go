// Command life runs one or more engines over the same starting grid, reports
// how long each took and checks that they agree.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"

	"life-engine/internal/config"
	"life-engine/internal/core"
	"life-engine/internal/gridio"
	"life-engine/internal/sim"
)

var errDisagree = errors.New("engines disagree")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "life:", err)
		os.Exit(1)
	}
}

type result struct {
	engine  string
	grid    *core.Grid
	elapsed time.Duration
	growths int
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg := config.DefaultConfig()
	fs := flag.NewFlagSet("life", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := cfg.Parse(fs, args); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	log := config.NewLogger(stderr, cfg.LogLevel)

	g, err := startGrid(cfg)
	if err != nil {
		return err
	}
	for _, name := range cfg.EngineList() {
		if cfg.Sim(name).Aligned() {
			g = gridio.PadToWords(g)
			break
		}
	}
	log.WithFields(logrus.Fields{
		"width":      g.W,
		"height":     g.H,
		"population": g.Population(),
		"iterations": cfg.Iterations,
	}).Info("starting grid ready")

	if cfg.Animate {
		name := cfg.EngineList()[0]
		factory, ok := core.Engines()[name]
		if !ok {
			return fmt.Errorf("%w: %q", sim.ErrUnknownEngine, name)
		}
		tick := time.Duration(cfg.TickMillis) * time.Millisecond
		_, err := gridio.Animate(ctx, stdout, factory(cfg.Workers), g, cfg.Iterations, tick)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	var results []result
	for _, name := range cfg.EngineList() {
		res, err := runEngine(cfg, name, g, log)
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"engine":     res.engine,
			"elapsed":    res.elapsed.Round(time.Microsecond),
			"population": res.grid.Population(),
			"width":      res.grid.W,
			"growths":    res.growths,
		}).Info("engine finished")
		results = append(results, res)
	}

	want := results[0]
	for _, res := range results[1:] {
		if !res.grid.Equal(want.grid) {
			return fmt.Errorf("%w: %s and %s", errDisagree, want.engine, res.engine)
		}
	}
	if len(results) > 1 {
		log.WithField("engines", len(results)).Info("all engines agree")
	}
	if cfg.Print {
		return gridio.Write(stdout, want.grid)
	}
	return nil
}

func startGrid(cfg config.Config) (*core.Grid, error) {
	if cfg.Input != "" {
		return gridio.Load(cfg.Input)
	}
	return core.RandomGrid(cfg.Seed, cfg.Random, cfg.Random, cfg.Density), nil
}

func runEngine(cfg config.Config, name string, g *core.Grid, log logrus.FieldLogger) (result, error) {
	d, err := sim.New(cfg.Sim(name), sim.WithLogger(log))
	if err != nil {
		return result{}, err
	}
	start := time.Now()
	out, err := d.Run(g, cfg.Iterations)
	if err != nil {
		return result{}, fmt.Errorf("%s: %w", name, err)
	}
	return result{engine: name, grid: out, elapsed: time.Since(start), growths: d.Growths()}, nil
}
