package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gunjam/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresStats bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [gun]",
	Short: "Show the best runs",
	Long: `Display the best runs, for one gun or for all of them.

Examples:
  gunjam scores
  gunjam scores shotgun --limit 20
  gunjam scores --stats
  gunjam scores --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresStats, "stats", false, "Show per-gun statistics instead of runs")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every recorded run")
}

func runScores(_ *cobra.Command, args []string) {
	gun := ""
	if len(args) == 1 {
		gun = args[0]
		cfg, err := loadConfig()
		if err != nil {
			fatalf("%v", err)
		}
		if _, ok := cfg.Weapon(gun); !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown gun %q\n", gun)
			fmt.Fprintln(os.Stderr, "Run 'gunjam guns' to see available guns.")
			os.Exit(1)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatalf("opening runs database: %v", err)
	}
	defer store.Close()

	switch {
	case flagScoresClear:
		if err := store.ClearRuns(); err != nil {
			store.Close()
			fatalf("clearing runs: %v", err)
		}
		fmt.Println("All runs deleted.")

	case flagScoresStats:
		stats, err := store.Stats()
		if err != nil {
			store.Close()
			fatalf("reading stats: %v", err)
		}
		printStats(os.Stdout, stats)

	default:
		runs, err := store.TopRuns(gun, flagScoresLimit)
		if err != nil {
			store.Close()
			fatalf("retrieving runs: %v", err)
		}
		title := "all guns"
		if gun != "" {
			title = gun
		}
		printRuns(os.Stdout, title, runs, time.Now())
	}
}

func printRuns(w io.Writer, title string, runs []storage.Run, now time.Time) {
	fmt.Fprintf(w, "Best runs - %s\n", title)
	fmt.Fprintln(w)

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'gunjam play' to set the first score!")
		return
	}

	fmt.Fprintf(w, "  %-4s  %-10s  %-5s  %-5s  %-8s  %-14s  %s\n", "Rank", "Score", "Round", "Kills", "Gun", "When", "Run")
	fmt.Fprintf(w, "  %-4s  %-10s  %-5s  %-5s  %-8s  %-14s  %s\n", "----", "-----", "-----", "-----", "---", "----", "---")
	for i, r := range runs {
		fmt.Fprintf(w, "  %-4d  %-10s  %-5d  %-5d  %-8s  %-14s  %s\n",
			i+1, humanize.Comma(int64(r.Score)), r.Round, r.Kills, r.Gun,
			humanize.RelTime(r.CreatedAt, now, "ago", "from now"), shortID(r.ID))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Best: %s\n", humanize.Comma(int64(runs[0].Score)))
}

func printStats(w io.Writer, stats map[string]*storage.GunStats) {
	if len(stats) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		return
	}

	guns := make([]string, 0, len(stats))
	for g := range stats {
		guns = append(guns, g)
	}
	sort.Strings(guns)

	fmt.Fprintf(w, "  %-8s  %-5s  %-10s  %-10s  %-6s  %-6s  %s\n", "Gun", "Runs", "Best", "Average", "Kills", "Round", "Last played")
	fmt.Fprintf(w, "  %-8s  %-5s  %-10s  %-10s  %-6s  %-6s  %s\n", "---", "----", "----", "-------", "-----", "-----", "-----------")
	for _, g := range guns {
		s := stats[g]
		fmt.Fprintf(w, "  %-8s  %-5d  %-10s  %-10s  %-6s  %-6d  %s\n",
			s.Gun, s.Runs, humanize.Comma(int64(s.HighScore)), humanize.CommafWithDigits(s.AvgScore, 1),
			humanize.Comma(s.TotalKills), s.BestRound, humanize.Time(s.LastPlayed))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
