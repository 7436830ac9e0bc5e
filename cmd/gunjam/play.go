package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gunjam/internal/platform/tui"
)

var flagGun string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Gun Jam",
	Long: `Start a run. Without --gun a picker lets you choose your weapon.

Controls:
  A/D, ←/→   - Walk
  W/S, ↑/↓   - Aim
  Space      - Jump
  J/F        - Fire (hold)
  R          - Reload
  E/Enter    - Stop the repair marker on the anvil
  1/2/3      - Pick an upgrade
  P/Esc      - Pause
  N          - New run (after game over)
  B          - Back to the gun picker (paused or game over)
  Ctrl+S     - Screenshot
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Slower waves, fewer jams
  normal - The default tuning
  hard   - Faster, bigger waves, more jams
  fixed  - Waves never speed up

Examples:
  gunjam play
  gunjam play --gun revolver
  gunjam play --gun shotgun --difficulty hard
  gunjam play --config ./my-gunjam.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagGun, "gun", "", "Gun preset id (see 'gunjam guns')")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fatalf("%v", err)
	}
	if flagGun != "" {
		if _, ok := cfg.Weapon(flagGun); !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown gun %q\n", flagGun)
			fmt.Fprintln(os.Stderr, "Run 'gunjam guns' to see available guns.")
			os.Exit(1)
		}
	}

	logger, closeLog, err := openLogFile()
	if err != nil {
		fatalf("%v", err)
	}
	defer closeLog()

	store := openStore(logger)
	if store == nil {
		fmt.Fprintln(os.Stderr, "Warning: could not open runs database; run history is off")
	}

	saves, err := saveBackend(store)
	if err != nil {
		logger.Warn("could not open save directory", "dir", flagSaveDir, "error", err)
		saves = nil
	}

	runErr := tui.Run(tui.SessionOptions{
		Guns:    cfg.Weapons,
		NewGame: gameFactory(cfg, saves, loadSettings(saves, logger), logger),
		Store:   store,
		Config:  runtimeConfig(),
		Gun:     flagGun,
		User:    os.Getenv("USER"),
		Logger:  logger,
	})

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		closeLog()
		fatalf("running game: %v", runErr)
	}
}
