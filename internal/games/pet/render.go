package pet

import (
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/tetropet/internal/core"
)

const barWidth = 20

// Render draws the pet status, activity list and notifications.
func (g *Game) Render(dst *core.Screen) {
	if g.sim == nil {
		return
	}
	if !g.sim.HasPet() {
		cy := dst.Height() / 2
		dst.DrawTextCentered(cy-1, "No pet yet")
		dst.DrawTextCentered(cy+1, "Press R to adopt")
		return
	}

	p := g.sim.pet
	x := 2
	y := 0

	dst.DrawTextColor(x, y, fmt.Sprintf("%s the %s", p.Name, p.Species), core.ColorBrightWhite)
	y++
	dst.DrawText(x, y, fmt.Sprintf("Level %d  XP %d/%d  Coins %d  Age %.1fd  Mood %s",
		p.Level, p.Experience, p.Level*100, p.Coins, p.Age, g.sim.Mood()))
	y += 2

	stats := []struct {
		label string
		value float64
	}{
		{"Happiness", p.Happiness},
		{"Hunger", p.Hunger},
		{"Energy", p.Energy},
		{"Cleanliness", p.Cleanliness},
		{"Health", p.Health},
	}
	for _, st := range stats {
		dst.DrawText(x, y, fmt.Sprintf("%-12s", st.label))
		drawBar(dst, x+12, y, st.value)
		dst.DrawText(x+12+barWidth+2, y, fmt.Sprintf("%3.0f", st.value))
		y++
	}
	y++

	cooldowns := g.sim.ActivityCooldowns()
	current, busy := g.sim.CurrentActivity()
	for i, id := range slotActivities {
		a := g.sim.activities[g.sim.activityIndex(id)]
		cd := cooldowns[id]

		status := "ready"
		color := core.ColorGreen
		switch {
		case busy && current.ID == id:
			status = fmt.Sprintf("%d%%", g.sim.Progress())
			color = core.ColorBrightCyan
		case !cd.CanUse:
			status = formatRemaining(cd.Remaining)
			color = core.ColorGray
		case p.Coins < a.Cost:
			status = "no coins"
			color = core.ColorRed
		}

		cost := ""
		if a.Cost > 0 {
			cost = fmt.Sprintf("%dc", a.Cost)
		}
		dst.DrawText(x, y, fmt.Sprintf("%d %-9s %4s", i+1, a.Name, cost))
		dst.DrawTextColor(x+17, y, status, color)
		y++
	}
	y++

	if busy {
		dst.DrawText(x, y, fmt.Sprintf("%-12s", current.Name+"..."))
		drawBar(dst, x+12, y, float64(g.sim.Progress()))
		y++
	}
	y++

	for _, n := range g.sim.Notifications() {
		if y >= dst.Height()-1 {
			break
		}
		dst.DrawTextColor(x, y, "» "+n.Text, core.ColorYellow)
		y++
	}

	dst.DrawTextColor(x, dst.Height()-1, "1-6 activities  9 release  Q quit", core.ColorGray)
}

func drawBar(dst *core.Screen, x, y int, value float64) {
	filled := int(value / 100 * barWidth)
	filled = core.Clamp(filled, 0, barWidth)

	color := core.ColorGreen
	switch {
	case value < 30:
		color = core.ColorRed
	case value < 60:
		color = core.ColorYellow
	}
	for i := 0; i < barWidth; i++ {
		if i < filled {
			dst.SetWithColor(x+i, y, '█', color)
		} else {
			dst.SetWithColor(x+i, y, '░', core.ColorGray)
		}
	}
}

func formatRemaining(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d%time.Minute == 0 {
		return strings.TrimSuffix(d.String(), "0s")
	}
	return d.String()
}
