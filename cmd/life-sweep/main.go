// Command life-sweep runs many random starting grids with growth enabled
// and reports the ones that spread the furthest.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"life-engine/internal/bitboard"
	"life-engine/internal/core"
	"life-engine/internal/growth"
	"life-engine/internal/sim"
)

type scenario struct {
	seed    int64
	density float64
}

func (s scenario) String() string {
	return fmt.Sprintf("seed=%d density=%.2f", s.seed, s.density)
}

type scenarioResult struct {
	scenario   scenario
	width      int
	growths    int
	population int
	peak       int
	extinctAt  int
	err        error
}

type sweepConfig struct {
	size      int
	steps     int
	seeds     int
	densities []float64
	maxSize   int
	workers   int
}

func main() {
	cfg := sweepConfig{densities: []float64{0.1, 0.2, 0.3, 0.4, 0.5}}
	flag.IntVar(&cfg.size, "size", 64, "side of each random grid (multiple of 64)")
	flag.IntVar(&cfg.steps, "steps", 500, "generations to simulate per scenario")
	flag.IntVar(&cfg.seeds, "seeds", 20, "seeds per density")
	flag.IntVar(&cfg.maxSize, "max-size", 1024, "largest side a grid may grow to")
	flag.IntVar(&cfg.workers, "workers", runtime.NumCPU(), "number of worker goroutines")
	flag.Parse()

	if err := sweep(os.Stdout, cfg); err != nil {
		fmt.Fprintln(os.Stderr, "life-sweep:", err)
		os.Exit(1)
	}
}

func sweep(w io.Writer, cfg sweepConfig) error {
	if err := growth.CheckSize(cfg.size, cfg.size); err != nil {
		return err
	}
	var sets []scenario
	for _, d := range cfg.densities {
		for s := 0; s < cfg.seeds; s++ {
			sets = append(sets, scenario{seed: int64(s + 1), density: d})
		}
	}
	fmt.Fprintf(w, "Sweeping %d scenarios (%d workers, %d steps)\n", len(sets), cfg.workers, cfg.steps)

	jobs := make(chan scenario)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < max(cfg.workers, 1); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sc := range jobs {
				results <- runScenario(cfg, sc)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, sc := range sets {
			jobs <- sc
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	for res := range results {
		if res.err != nil {
			fmt.Fprintf(w, "%s stopped: %v\n", res.scenario, res.err)
		}
		all = append(all, res)
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].width != all[j].width {
			return all[i].width > all[j].width
		}
		if all[i].population != all[j].population {
			return all[i].population > all[j].population
		}
		return all[i].scenario.seed < all[j].scenario.seed
	})

	fmt.Fprintf(w, "\nTop 5 results (elapsed %s):\n", time.Since(start).Round(time.Millisecond))
	for i := 0; i < len(all) && i < 5; i++ {
		res := all[i]
		fmt.Fprintf(w, "%2d) width=%d growths=%d population=%d peak=%d %s\n",
			i+1, res.width, res.growths, res.population, res.peak, res.scenario)
	}
	extinct := 0
	for _, res := range all {
		if res.extinctAt > 0 {
			extinct++
		}
	}
	fmt.Fprintf(w, "\n%d of %d scenarios died out\n", extinct, len(all))
	return nil
}

// runScenario steps one random grid serially; the sweep already runs one
// scenario per worker.
func runScenario(cfg sweepConfig, sc scenario) scenarioResult {
	res := scenarioResult{scenario: sc}
	d, err := sim.New(sim.Config{
		Engine: bitboard.Name,
		Growth: true,
		Policy: growth.Policy{Margin: growth.DefaultMargin, Pad: growth.DefaultPad, MaxSize: cfg.maxSize},
	})
	if err != nil {
		res.err = err
		return res
	}
	g := core.RandomGrid(sc.seed, cfg.size, cfg.size, sc.density)
	if err := d.Start(g, cfg.steps); err != nil {
		res.err = err
		return res
	}
	for d.State() == sim.Stepping {
		if err := d.Step(); err != nil {
			res.err = err
			break
		}
		pop := d.Grid().Population()
		res.peak = max(res.peak, pop)
		if pop == 0 {
			res.extinctAt = d.Generation()
			break
		}
	}
	res.width = d.Width()
	res.growths = d.Growths()
	if g := d.Grid(); g != nil {
		res.population = g.Population()
	}
	return res
}
