// gunjam is a terminal arena shooter: hold the gates against waves of
// demons with a gun that jams, and fix it on the anvil under pressure.
//
// Usage:
//
//	gunjam play [--gun id]   - Play (gun picker when --gun is not given)
//	gunjam guns              - List gun presets
//	gunjam scores [gun]      - Show the best runs
//	gunjam settings          - Show or change settings
//	gunjam serve             - Start SSH server for remote play
//	gunjam simulate          - Headless autopilot run for balancing
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible runs
//	--db <path>           - Set database path (default: ~/.gunjam/gunjam.db)
//	--save-dir <dir>      - Keep save records in files instead of the database
//	--config <path>       - Custom config YAML
//	--difficulty <preset> - easy, normal, hard, fixed
//	--log-level <level>   - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagSaveDir    string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gunjam",
	Short: "Gun Jam - hold the gates with a gun that jams",
	Long: `Gun Jam is a terminal arena shooter. Demons pour in from both sides;
stop them before they reach the far gate. Every shot can jam your gun,
and the only fix is the anvil: hit the green zone enough times to get
it firing again.

Available commands:
  play      - Play (pick a gun interactively or with --gun)
  guns      - List gun presets
  scores    - View the best runs
  settings  - Show or change settings
  serve     - Start SSH server for remote play
  simulate  - Headless autopilot run for balancing

Examples:
  gunjam play
  gunjam play --gun shotgun --difficulty hard
  gunjam scores pistol
  gunjam serve --ssh :2222
  gunjam simulate --gun revolver --ticks 36000`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.gunjam/gunjam.db", "Path to runs database")
	pf.StringVar(&flagSaveDir, "save-dir", "", "Directory for save records (default: stored in the database)")
	pf.StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "~/.gunjam/gunjam.log", "Log file for interactive commands")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(gunsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simulateCmd)
}
