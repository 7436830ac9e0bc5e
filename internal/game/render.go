package game

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/gunjam/internal/combat"
	"github.com/vovakirdan/gunjam/internal/core"
	"github.com/vovakirdan/gunjam/internal/upgrade"
	"github.com/vovakirdan/gunjam/internal/waves"
)

// Visual characters for rendering
const (
	GroundChar  = '▀'
	GateChar    = '▓'
	AnvilChar   = '▄'
	PlayerChar  = '█'
	BulletChar  = '•'
	DemonChar   = '▒'
	FlyerChar   = '◊'
	BossChar    = '█'
	MarkerChar  = '▲'
	JamHintChar = 'v'
)

const helpLine = "←→ move  ↑↓ aim  space jump  j fire  r reload  e repair  p pause  q quit"

// view maps world units onto the playfield rows between the HUD and the
// ground line.
type view struct {
	cols, rows int // Playfield size; rows start at screen row 1
	halfWidth  float64
	height     float64
	dx         int // Camera shake offset in columns
}

func (v view) col(x float64) int {
	return int(math.Floor((x+v.halfWidth)/(2*v.halfWidth)*float64(v.cols))) + v.dx
}

func (v view) row(y float64) int {
	return 1 + (v.rows - 1) - int(math.Floor(y/v.height*float64(v.rows-1)))
}

func (v view) fill(dst *core.Screen, b core.Box, r rune, c core.Color) {
	lo, hi := b.Min(), b.Max()
	x0, x1 := v.col(lo.X), v.col(hi.X)
	y0, y1 := v.row(hi.Y), v.row(lo.Y)
	if x1 == x0 {
		x1++
	}
	for y := y0; y <= y1 && y <= v.rows; y++ {
		for x := x0; x < x1; x++ {
			dst.SetColored(x, y, r, c)
		}
	}
}

// Render draws the current game state into the provided screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	w, h := dst.Width(), dst.Height()
	if w < 20 || h < 8 {
		dst.DrawText(0, 0, "terminal too small")
		return
	}

	v := view{
		cols:      w,
		rows:      h - 3,
		halfWidth: g.cfg.Arena.HalfWidth,
		height:    g.cfg.Arena.Height,
	}
	if g.shake > 0 {
		v.dx = 1
		if int(g.state.Elapsed*60)%2 == 0 {
			v.dx = -1
		}
	}
	now := g.sched.Now()

	g.drawArena(dst, v, now)
	g.drawActors(dst, v, now)
	g.drawHUD(dst)

	status := helpLine
	if g.message != "" {
		status = g.message
	}
	dst.DrawTextCentered(h-1, status, core.ColorMuted)

	switch {
	case g.state.GameOver:
		g.drawGameOver(dst)
	case g.state.Paused:
		drawPanel(dst, []string{"PAUSED", "", "P to resume"}, core.ColorHUD)
	case g.upgrades.Pending():
		g.drawUpgrade(dst)
	case g.repair.Active():
		g.drawRepair(dst)
	}
}

func (g *Game) drawArena(dst *core.Screen, v view, now float64) {
	groundRow := v.rows + 1
	dst.DrawHLine(0, groundRow, dst.Width(), GroundChar, core.ColorGround)

	a := g.cfg.Arena
	for _, gate := range []core.Box{
		core.BoxAt(core.V(-a.HalfWidth+a.GateWidth/2, a.GateHeight/2), core.V(a.GateWidth, a.GateHeight)),
		core.BoxAt(core.V(a.HalfWidth-a.GateWidth/2, a.GateHeight/2), core.V(a.GateWidth, a.GateHeight)),
	} {
		v.fill(dst, gate, GateChar, core.ColorGate)
	}
	v.fill(dst, g.world.anvil, AnvilChar, core.ColorAnvil)

	// Bobbing hint over the anvil while the gun is jammed.
	if wpn := g.holster.Active(); wpn != nil && wpn.Jammed() && !g.repair.Active() {
		bob := core.PingPong(now*2, 1)
		x := v.col(a.AnvilX)
		y := v.row(1.5 + bob)
		dst.SetColored(x, y, JamHintChar, core.ColorWarn)
	}
}

func (g *Game) drawActors(dst *core.Screen, v view, now float64) {
	for _, e := range g.enemies {
		r, c := DemonChar, core.ColorDemon
		switch {
		case e.Template.Boss:
			r, c = BossChar, core.ColorBoss
		case e.Template.Category == waves.CategoryFlying:
			r, c = FlyerChar, core.ColorFlyer
		}
		if e.Flashing(now) {
			c = core.ColorBad
		}
		v.fill(dst, e.Box(), r, c)
	}

	p := g.player
	v.fill(dst, p.Box(), PlayerChar, core.ColorPlayer)
	if wpn := g.holster.Active(); wpn != nil {
		muzzle, angle := p.MuzzlePose()
		dst.SetColored(v.col(muzzle.X), v.row(muzzle.Y), gunRune(wpn, angle, now), core.ColorWeapon)
	}

	for _, s := range g.field.Projectiles() {
		if !s.Dead() {
			dst.SetColored(v.col(s.Pos.X), v.row(s.Pos.Y), BulletChar, core.ColorBullet)
		}
	}
}

// gunRune picks a glyph for the barrel direction, spinning while a
// spin-on-reload gun reloads.
func gunRune(w *combat.Weapon, angle, now float64) rune {
	const spin = `-\|/`
	if w.Reloading() && w.Stats().SpinOnReload {
		return rune(spin[int(now*12)%len(spin)])
	}
	a := math.Mod(angle+360, 180)
	switch {
	case a < 22.5 || a >= 157.5:
		return '─'
	case a < 67.5:
		return '/'
	case a < 112.5:
		return '│'
	default:
		return '\\'
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	left := fmt.Sprintf(" SCORE %s  HI %s  ROUND %d  KILLS %d",
		humanize.Comma(int64(g.state.Score)),
		humanize.Comma(int64(g.state.HighScore)),
		g.spawner.Round(),
		g.state.Kills)
	dst.DrawTextColored(0, 0, left, core.ColorHUD)

	wpn := g.holster.Active()
	if wpn == nil {
		return
	}
	var right string
	color := core.ColorHUD
	switch wpn.State() {
	case combat.StateJammed:
		right, color = "JAMMED", core.ColorBad
	case combat.StateReloading:
		const barW = 10
		filled := int(wpn.ReloadProgress() * barW)
		right = "RELOAD " + strings.Repeat("▓", filled) + strings.Repeat("░", barW-filled)
		color = core.ColorWarn
	default:
		right = fmt.Sprintf("%d/%d", wpn.Ammo(), wpn.MaxAmmo())
		if wpn.Ammo() == 0 {
			color = core.ColorWarn
		}
	}
	right = strings.ToUpper(g.gun.Name) + " " + right + " "
	dst.DrawTextColored(dst.Width()-len([]rune(right)), 0, right, color)
}

func (g *Game) drawRepair(dst *core.Screen) {
	const barW = 40
	m := g.repair
	bar := make([]rune, barW)
	colors := make([]core.Color, barW)
	for i := range bar {
		pos := float64(i) / (barW - 1)
		bar[i], colors[i] = '─', core.ColorMuted
		if math.Abs(pos-m.Target()) <= m.Tolerance()+0.5/(barW-1) {
			bar[i], colors[i] = '█', core.ColorGood
		}
	}

	lines := []string{
		fmt.Sprintf("REPAIR  %d/%d", m.Current(), m.Needed()),
		"",
		string(bar),
		"",
		"E or J when the marker is in the green",
	}
	r := drawPanel(dst, lines, core.ColorAnvil)

	barX := r.X + (r.W-barW)/2
	barY := r.Y + 3
	for i := range bar {
		dst.SetColored(barX+i, barY, bar[i], colors[i])
	}
	marker := int(math.Round(m.Rolling() * (barW - 1)))
	dst.SetColored(barX+marker, barY+1, MarkerChar, core.ColorWarn)
}

func (g *Game) drawUpgrade(dst *core.Screen) {
	lines := []string{"UPGRADE", ""}
	wpn := g.holster.Active()
	rules := g.upgrades.Rules()
	for i, t := range g.upgrades.Eligible() {
		var desc string
		m := wpn.Modifiers()
		switch t {
		case upgrade.TrackReloadTime:
			desc = fmt.Sprintf("Faster reload  x%.2f -> x%.2f", m.ReloadTime, m.ReloadTime-rules.ReloadStep)
		case upgrade.TrackDamage:
			desc = fmt.Sprintf("More damage    x%.2f -> x%.2f", m.Damage, m.Damage+rules.DamageStep)
		case upgrade.TrackJamChance:
			desc = fmt.Sprintf("Fewer jams     x%.2f -> x%.2f", m.JamChance, m.JamChance-rules.JamStep)
		}
		lines = append(lines, fmt.Sprintf("[%d] %s", i+1, desc))
	}
	drawPanel(dst, lines, core.ColorGood)
}

func (g *Game) drawGameOver(dst *core.Screen) {
	lines := []string{
		"GAME OVER",
		"",
		fmt.Sprintf("Score %s   Round %d   Kills %d",
			humanize.Comma(int64(g.state.Score)), g.spawner.Round(), g.state.Kills),
	}
	if g.newHigh {
		lines = append(lines, "New high score!")
	}
	lines = append(lines, "", "N: new run   B: guns   Q: quit")
	drawPanel(dst, lines, core.ColorBad)
}

// drawPanel draws a centered box around lines and returns its rectangle.
func drawPanel(dst *core.Screen, lines []string, c core.Color) core.Rect {
	inner := 0
	for _, l := range lines {
		inner = core.Max(inner, len([]rune(l)))
	}
	r := core.NewRect(0, 0, inner+4, len(lines)+2)
	r.X = (dst.Width() - r.W) / 2
	r.Y = (dst.Height() - r.H) / 2

	dst.DrawRect(r, ' ')
	dst.DrawBox(r, c)
	for i, l := range lines {
		x := r.X + (r.W-len([]rune(l)))/2
		dst.DrawTextColored(x, r.Y+1+i, l, c)
	}
	return r
}
