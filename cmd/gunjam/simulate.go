package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gunjam/internal/core"
	"github.com/vovakirdan/gunjam/internal/game"
	"github.com/vovakirdan/gunjam/internal/save"
)

var (
	flagSimGun    string
	flagSimTicks  int
	flagSimScript string
	flagSimRuns   int
	flagSimKeep   bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the arena headless with an autopilot",
	Long: `Play the arena without a terminal and print a summary. Useful for
balancing presets and difficulty settings.

Scripts:
  idle    - Never touches the controls
  turret  - Holds fire and sweeps the aim; never repairs
  defend  - Tracks the nearest enemy and repairs at the anvil

Runs use --seed (or the current time) and count up by one per run.
The high score is not saved unless --keep is given.

Examples:
  gunjam simulate
  gunjam simulate --gun shotgun --runs 10 --seed 1
  gunjam simulate --script turret --difficulty hard --ticks 36000`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	f := simulateCmd.Flags()
	f.StringVar(&flagSimGun, "gun", "", "Gun preset id (default: first preset)")
	f.IntVar(&flagSimTicks, "ticks", 60*60*10, "Maximum frames per run")
	f.StringVar(&flagSimScript, "script", "defend", "Autopilot script: idle, turret, defend")
	f.IntVar(&flagSimRuns, "runs", 1, "Number of runs")
	f.BoolVar(&flagSimKeep, "keep", false, "Save high scores from simulated runs")
}

func runSimulate(_ *cobra.Command, _ []string) {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		fatalf("%v", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		fatalf("%v", err)
	}
	script, err := game.ParseScript(flagSimScript)
	if err != nil {
		fatalf("%v", err)
	}

	var saves save.Backend
	if flagSimKeep {
		store := openStore(logger)
		if store != nil {
			defer store.Close()
		}
		if saves, err = saveBackend(store); err != nil {
			fatalf("opening save directory: %v", err)
		}
	}

	g, err := game.New(game.Options{
		Config:   cfg,
		Gun:      flagSimGun,
		Saves:    saves,
		Settings: save.DefaultSettings(),
		Logger:   logger,
	})
	if err != nil {
		fatalf("%v", err)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rt := core.DefaultConfig()
	rt.TickRate = flagFPS

	start := time.Now()
	sums := make([]game.Summary, 0, flagSimRuns)
	for i := 0; i < flagSimRuns; i++ {
		rt.Seed = seed + int64(i)
		g.Reset(rt)
		sum := game.Simulate(g, game.NewAutopilot(script), flagSimTicks)
		logger.Debug("run finished", "run", i+1, "seed", rt.Seed, "score", sum.Score, "round", sum.Round)
		sums = append(sums, sum)
	}

	fmt.Printf("Gun: %s   Script: %s   Difficulty: %s   Seed: %d\n",
		g.Gun().Name, script, difficultyName(), seed)
	fmt.Println()
	printSummaries(os.Stdout, sums)
	fmt.Printf("\nSimulated %s in %s\n", formatSeconds(totalElapsed(sums)), time.Since(start).Round(time.Millisecond))
}

func difficultyName() string {
	if flagDifficulty == "" {
		return "normal"
	}
	return flagDifficulty
}

func printSummaries(w io.Writer, sums []game.Summary) {
	fmt.Fprintf(w, "  %-4s  %-8s  %-9s  %-5s  %-5s  %-6s  %-4s  %-7s  %-6s  %s\n",
		"Run", "Time", "Score", "Round", "Kills", "Shots", "Jams", "Repairs", "Missed", "Upgrades")
	for i, s := range sums {
		end := ""
		if !s.GameOver {
			end = " (survived)"
		}
		fmt.Fprintf(w, "  %-4d  %-8s  %-9s  %-5d  %-5d  %-6d  %-4d  %-7d  %-6d  %s%s\n",
			i+1, formatSeconds(s.Elapsed), humanize.Comma(int64(s.Score)), s.Round, s.Kills,
			s.Shots, s.Jams, s.Repairs, s.FailedRepairs, strings.Join(s.UpgradeHistory, ","), end)
	}

	if len(sums) < 2 {
		return
	}
	var score, round, kills float64
	for _, s := range sums {
		score += float64(s.Score)
		round += float64(s.Round)
		kills += float64(s.Kills)
	}
	n := float64(len(sums))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Average: score %s   round %.1f   kills %.1f\n",
		humanize.CommafWithDigits(score/n, 1), round/n, kills/n)
}

func totalElapsed(sums []game.Summary) float64 {
	total := 0.0
	for _, s := range sums {
		total += s.Elapsed
	}
	return total
}

// formatSeconds renders simulated seconds as m:ss.
func formatSeconds(secs float64) string {
	d := time.Duration(secs * float64(time.Second)).Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
