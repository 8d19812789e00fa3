package main

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/boxing/ecs/component"
	"github.com/milk9111/boxing/match"
)

const (
	barWidth  = 360
	barHeight = 14
	margin    = 24

	// flashFor keeps the last hit label on screen.
	flashFor = 800 * time.Millisecond
)

var (
	colBackground = color.NRGBA{R: 0x18, G: 0x18, B: 0x20, A: 0xff}
	colEmpty      = color.NRGBA{R: 0x40, G: 0x40, B: 0x48, A: 0xff}
	colHealth     = color.NRGBA{R: 0xd0, G: 0x30, B: 0x30, A: 0xff}
	colResource   = color.NRGBA{R: 0xe0, G: 0xc0, B: 0x30, A: 0xff}
	colText       = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

type hud struct {
	face    ebtext.Face
	lastHit component.DamageEvent
	hasHit  bool
}

func newHUD() *hud {
	return &hud{face: ebtext.NewGoXFace(basicfont.Face7x13)}
}

func (h *hud) reset() {
	h.hasHit = false
}

func (h *hud) onDamage(evt component.DamageEvent) {
	h.lastHit = evt
	h.hasHit = true
}

func (h *hud) Draw(screen *ebiten.Image, m *match.Match) {
	screen.Fill(colBackground)

	snaps := m.Snapshots()
	h.drawFighter(screen, snaps[0], margin, "P1")
	h.drawFighter(screen, snaps[1], screenWidth-margin-barWidth, "P2")

	r := m.Round()
	status := fmt.Sprintf("Round %d/%d  %s", r.Current, r.Rules.Rounds, r.TimeLeft.Truncate(time.Second))
	if r.Phase == component.PhaseInterlude {
		status = fmt.Sprintf("Round %d in %s", r.Current, r.InterludeLeft.Truncate(100*time.Millisecond))
	}
	h.text(screen, status, screenWidth/2-60, margin)

	if h.hasHit && m.Now()-h.lastHit.At < flashFor {
		msg := fmt.Sprintf("%s %s %s for %d", h.lastHit.Attacker, h.lastHit.HitType, h.lastHit.Action, h.lastHit.Damage)
		h.text(screen, msg, screenWidth/2-100, screenHeight/2)
	}
}

func (h *hud) drawFighter(screen *ebiten.Image, s component.Snapshot, x int, label string) {
	y := margin + 20
	bar(screen, x, y, barWidth, s.Health, component.MaxHealth, colHealth)
	bar(screen, x, y+barHeight+6, barWidth, s.Resource, component.MaxResource, colResource)

	state := s.Posture.String()
	switch {
	case s.Defending:
		state = fmt.Sprintf("guard %s", s.DefenseDirection)
	case s.Posture == component.PostureAttacking || s.Posture == component.PostureEvading:
		state = fmt.Sprintf("%s %s", state, s.CurrentAction)
	}
	if s.Evading {
		state += " (evading)"
	}
	h.text(screen, fmt.Sprintf("%s  %d/%d  %s", label, s.Health, s.Resource, state), x, y+2*barHeight+16)
}

func (h *hud) text(screen *ebiten.Image, s string, x, y int) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(colText)
	ebtext.Draw(screen, s, h.face, op)
}

func bar(screen *ebiten.Image, x, y, width, value, limit int, fill color.Color) {
	screen.SubImage(image.Rect(x, y, x+width, y+barHeight)).(*ebiten.Image).Fill(colEmpty)
	if value <= 0 || limit <= 0 {
		return
	}
	w := width * value / limit
	screen.SubImage(image.Rect(x, y, x+w, y+barHeight)).(*ebiten.Image).Fill(fill)
}
