package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gunjam/internal/config"
)

var gunsCmd = &cobra.Command{
	Use:   "guns",
	Short: "List gun presets",
	Long:  `Shows every gun preset from the active config with its key stats.`,
	Args:  cobra.NoArgs,
	Run:   runGuns,
}

func runGuns(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fatalf("%v", err)
	}
	printGuns(os.Stdout, cfg.Weapons)
}

var (
	gunsCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	gunsHeaderStyle = gunsCellStyle.Bold(true)
)

func printGuns(w io.Writer, guns []config.WeaponConfig) {
	if len(guns) == 0 {
		fmt.Fprintln(w, "No guns configured.")
		return
	}

	fmt.Fprintln(w, "Available guns:")
	fmt.Fprintln(w)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderRow(false).
		BorderColumn(false).
		Headers("ID", "Name", "Damage", "Ammo", "Fire delay", "Reload", "Jam", "Repairs").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return gunsHeaderStyle
			}
			return gunsCellStyle
		})
	for _, g := range guns {
		damage := fmt.Sprintf("%g", g.Damage)
		if g.BulletsPerShot > 1 {
			damage = fmt.Sprintf("%gx%d", g.Damage, g.BulletsPerShot)
		}
		t.Row(g.ID, g.Name, damage,
			fmt.Sprintf("%d", g.MaxAmmo),
			fmt.Sprintf("%gs", g.FireDelay),
			fmt.Sprintf("%gs", g.ReloadTime),
			fmt.Sprintf("%.1f%%", g.JamChance*100),
			fmt.Sprintf("%d", g.RepairsNeeded))
	}
	fmt.Fprintln(w, t.Render())

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'gunjam play --gun <id>' to play with a gun.")
}
