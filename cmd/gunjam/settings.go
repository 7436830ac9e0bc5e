package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gunjam/internal/save"
	"github.com/vovakirdan/gunjam/internal/storage"
)

var (
	flagMaster float64
	flagMusic  float64
	flagSFX    float64
	flagShake  bool
	flagReset  bool
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change settings",
	Long: `Show the settings record, or change it with flags.
Volumes are clamped to 0..1.

Examples:
  gunjam settings
  gunjam settings --shake=false
  gunjam settings --master 0.5 --sfx 1
  gunjam settings --reset`,
	Args: cobra.NoArgs,
	Run:  runSettings,
}

func init() {
	f := settingsCmd.Flags()
	f.Float64Var(&flagMaster, "master", 0, "Master volume (0..1)")
	f.Float64Var(&flagMusic, "music", 0, "Music volume (0..1)")
	f.Float64Var(&flagSFX, "sfx", 0, "Sound effects volume (0..1)")
	f.BoolVar(&flagShake, "shake", true, "Camera shake when firing")
	f.BoolVar(&flagReset, "reset", false, "Delete the settings record, restoring defaults")
}

func runSettings(cmd *cobra.Command, _ []string) {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		fatalf("%v", err)
	}

	var store *storage.Store
	if flagSaveDir == "" {
		if store, err = storage.Open(flagDBPath); err != nil {
			fatalf("opening database: %v", err)
		}
		defer store.Close()
	}
	saves, err := saveBackend(store)
	if err != nil {
		fatalf("opening save directory: %v", err)
	}

	var settings save.Settings
	if flagReset {
		if settings, err = resetSettings(saves, logger); err != nil {
			fatalf("%v", err)
		}
		fmt.Println("Settings reset.")
		fmt.Println()
	} else {
		settings = loadSettings(saves, logger)
	}
	changed := false

	flags := cmd.Flags()
	if flags.Changed("master") {
		settings.MasterVolume, changed = flagMaster, true
	}
	if flags.Changed("music") {
		settings.MusicVolume, changed = flagMusic, true
	}
	if flags.Changed("sfx") {
		settings.SFXVolume, changed = flagSFX, true
	}
	if flags.Changed("shake") {
		settings.CameraShakeEnabled, changed = flagShake, true
	}

	if changed {
		settings = settings.Clamped()
		if err := save.Put(saves, save.KeySettings, settings); err != nil {
			fatalf("%v", err)
		}
		fmt.Println("Settings saved.")
		fmt.Println()
	}
	printSettings(os.Stdout, settings)
}

// resetSettings drops the stored settings record and returns what a fresh
// load now yields.
func resetSettings(saves save.Backend, logger *log.Logger) (save.Settings, error) {
	if err := saves.Delete(save.KeySettings); err != nil {
		return save.Settings{}, err
	}
	return loadSettings(saves, logger), nil
}

func printSettings(w io.Writer, s save.Settings) {
	shake := "off"
	if s.CameraShakeEnabled {
		shake = "on"
	}
	fmt.Fprintf(w, "  %-14s %3.0f%%\n", "Master volume", s.MasterVolume*100)
	fmt.Fprintf(w, "  %-14s %3.0f%%\n", "Music volume", s.MusicVolume*100)
	fmt.Fprintf(w, "  %-14s %3.0f%%\n", "SFX volume", s.SFXVolume*100)
	fmt.Fprintf(w, "  %-14s %s\n", "Camera shake", shake)
}
