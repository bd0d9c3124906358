// Command popsim runs the demographic/genetic population simulator: pick a
// scenario, step it for a number of years, persist the run, and optionally
// serve the result over HTTP for inspection.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/talgya/popsim/internal/api"
	"github.com/talgya/popsim/internal/persistence"
	"github.com/talgya/popsim/internal/scenario"
	"github.com/talgya/popsim/internal/sim"
)

func main() {
	var (
		scenarioName = flag.String("scenario", "baseline", "scenario preset to run")
		seed         = flag.Uint64("seed", 0, "override the scenario's RNG seed (0 = keep preset)")
		years        = flag.Uint("years", 0, "override the scenario's year count (0 = keep preset)")
		size         = flag.Int("n", 0, "override the initial population size (0 = keep preset)")
		dbPath       = flag.String("db", "data/popsim.db", "SQLite database path (empty = no persistence)")
		apiPort      = flag.Int("api", 0, "serve the finished run on this HTTP port (0 = disabled)")
		logEvery     = flag.Uint("log-every", 10, "log a progress line every N years")
		verbose      = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	sc, err := scenario.ByName(*scenarioName)
	if err != nil {
		slog.Error("bad scenario", "error", err)
		os.Exit(1)
	}
	if *seed != 0 {
		sc.Seed = *seed
	}
	if *years != 0 {
		sc.Years = uint32(*years)
	}
	if *size != 0 {
		sc.InitialSize = *size
	}

	slog.Info("popsim starting",
		"scenario", sc.Name,
		"seed", sc.Seed,
		"initial_size", sc.InitialSize,
		"years", sc.Years,
		"polygamy", sc.Env.Polygamy,
		"resources", sc.Env.Resources,
	)

	pop := sim.New(sc.Seed)
	pop.SetEnvironment(sc.Env)
	pop.InitializeRandom(sc.InitialSize, sc.MaxStartAge)

	start := time.Now()
	interval := uint32(*logEvery)
	if interval == 0 {
		interval = sc.Years
	}
	for done := uint32(0); done < sc.Years; {
		step := interval
		if done+step > sc.Years {
			step = sc.Years - done
		}
		pop.Step(step)
		done += step

		n := len(pop.PopulationHistory())
		slog.Info("progress",
			"year", n,
			"population", pop.PopulationHistory()[n-1],
			"births", pop.BirthsHistory()[n-1],
			"deaths", pop.DeathsHistory()[n-1],
			"mean_age", fmt.Sprintf("%.1f", pop.MeanAgeHistory()[n-1]),
		)
	}
	elapsed := time.Since(start)

	totalBirths, totalDeaths := 0, 0
	for _, b := range pop.BirthsHistory() {
		totalBirths += b
	}
	for _, d := range pop.DeathsHistory() {
		totalDeaths += d
	}

	fmt.Printf("\n%s: %s years simulated in %s\n",
		sc.Name, humanize.Comma(int64(sc.Years)), elapsed.Round(time.Millisecond))
	fmt.Printf("population %s → %s (%s births, %s deaths)\n",
		humanize.Comma(int64(sc.InitialSize)),
		humanize.Comma(int64(len(pop.Persons()))),
		humanize.Comma(int64(totalBirths)),
		humanize.Comma(int64(totalDeaths)),
	)

	if *dbPath != "" {
		if err := saveRun(*dbPath, sc, pop); err != nil {
			slog.Error("save failed", "error", err)
			os.Exit(1)
		}
	}

	if *apiPort > 0 {
		server := &api.Server{Pop: pop, Port: *apiPort}
		server.Start()
		fmt.Printf("API: http://localhost:%d/api/v1/status (Ctrl+C to stop)\n", *apiPort)
		select {}
	}
}

func saveRun(path string, sc scenario.Scenario, pop *sim.Population) error {
	if dir := filepath.Dir(path); dir != "." {
		os.MkdirAll(dir, 0755)
	}
	db, err := persistence.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	run := persistence.Run{
		ID:        uuid.NewString(),
		Scenario:  sc.Name,
		Seed:      sc.Seed,
		Years:     sc.Years,
		CreatedAt: time.Now(),
	}
	if err := db.SaveRun(run, pop); err != nil {
		return err
	}
	slog.Info("run saved", "id", run.ID, "db", path)
	return nil
}
