package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/hungrypig/ecs"
	"github.com/milk9111/hungrypig/ecs/component"
	"github.com/milk9111/hungrypig/sim"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

var hudFace ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)

// camera maps y-up world coordinates onto the y-down screen. The view
// follows the player horizontally and stays pinned to ground level.
type camera struct {
	x     float64
	viewH float64
}

func (c camera) rect(t *component.Transform, col *component.Collider) (float32, float32, float32, float32) {
	left := t.X - col.HalfW - c.x
	top := c.viewH - (t.Y + col.HalfH)
	return float32(left), float32(top), float32(col.HalfW * 2), float32(col.HalfH * 2)
}

func drawWorld(screen *ebiten.Image, s *sim.Simulation) {
	screen.Fill(colornames.Lightskyblue)

	t := s.Tuning()
	snap := s.Snapshot()
	cam := camera{x: snap.PlayerX - t.World.ViewWidth/2, viewH: t.World.ViewHeight}
	w := s.World()

	ecs.ForEach3(w, component.BodyComponent.Kind(), component.TransformComponent.Kind(), component.ColliderComponent.Kind(), func(e ecs.Entity, b *component.Body, tr *component.Transform, col *component.Collider) {
		if !b.Solid() {
			return
		}
		x, y, wd, ht := cam.rect(tr, col)
		fill := colornames.Saddlebrown
		if ecs.Has(w, e, component.TutorialTagComponent.Kind()) {
			fill = colornames.Sienna
		}
		vector.FillRect(screen, x, y, wd, ht, fill, false)
		vector.StrokeRect(screen, x, y, wd, ht, 1, colornames.Black, false)
	})

	ecs.ForEach3(w, component.PickupComponent.Kind(), component.TransformComponent.Kind(), component.ColliderComponent.Kind(), func(_ ecs.Entity, p *component.Pickup, tr *component.Transform, col *component.Collider) {
		x, y, wd, ht := cam.rect(tr, col)
		fill := colornames.Orange
		if p.Kind == component.PickupTruffle {
			fill = colornames.Gold
		}
		vector.FillRect(screen, x, y, wd, ht, fill, false)
	})

	ecs.ForEach3(w, component.BirdComponent.Kind(), component.TransformComponent.Kind(), component.ColliderComponent.Kind(), func(_ ecs.Entity, _ *component.Bird, tr *component.Transform, col *component.Collider) {
		x, y, wd, ht := cam.rect(tr, col)
		vector.FillRect(screen, x, y, wd, ht, colornames.Crimson, false)
	})

	ecs.ForEach3(w, component.PlayerTagComponent.Kind(), component.TransformComponent.Kind(), component.ColliderComponent.Kind(), func(_ ecs.Entity, _ *component.PlayerTag, tr *component.Transform, col *component.Collider) {
		x, y, wd, ht := cam.rect(tr, col)
		vector.FillRect(screen, x, y, wd, ht, colornames.Pink, false)
		vector.StrokeRect(screen, x, y, wd, ht, 1, colornames.Hotpink, false)
	})
}

func drawHUD(screen *ebiten.Image, snap sim.Snapshot, toast string, showToast, debug bool) {
	lines := []string{
		fmt.Sprintf("Hunger: %.0f", snap.Hunger),
		fmt.Sprintf("Truffles: %d", snap.Score),
	}
	if showToast && toast != "" {
		lines = append(lines, "Ate: "+toast)
	}
	if debug {
		effects := make([]string, 0, len(snap.Effects))
		for _, e := range snap.Effects {
			effects = append(effects, fmt.Sprintf("%s@%.1f", e.Kind, e.Expiry))
		}
		lines = append(lines,
			fmt.Sprintf("FPS: %.1f  t=%.2f", ebiten.ActualFPS(), snap.Now),
			fmt.Sprintf("pos=(%.1f, %.1f) grounded=%t", snap.PlayerX, snap.PlayerY, snap.Grounded),
			fmt.Sprintf("chunk=%d next=%d", snap.Chunk, snap.NextChunk),
			"effects: "+strings.Join(effects, " "),
		)
	}

	for i, line := range lines {
		op := &ebtext.DrawOptions{}
		op.GeoM.Translate(8, float64(8+i*16))
		op.ColorScale.ScaleWithColor(color.Black)
		ebtext.Draw(screen, line, hudFace, op)
	}
}
