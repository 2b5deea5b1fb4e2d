package main

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/hungrypig/ecs"
	"github.com/milk9111/hungrypig/ecs/state"
	"github.com/milk9111/hungrypig/ecs/system"
	"github.com/milk9111/hungrypig/prefabs"
	"github.com/milk9111/hungrypig/sim"
)

type screenState int

const (
	screenMenu screenState = iota
	screenPlaying
	screenOver
)

type Game struct {
	sim        *sim.Simulation
	configPath string
	debug      bool

	screen  screenState
	menu    *ebitenui.UI
	over    *ebitenui.UI
	overMsg *widget.Text
	start   bool
	quit    bool

	watcher *prefabs.Watcher
	toast   string
	toastT  float64
}

func NewGame(tuning *prefabs.Tuning, seed uint64, configPath string, debug bool) (*Game, error) {
	s, err := sim.NewSimulation(tuning, seed)
	if err != nil {
		return nil, err
	}

	g := &Game{
		sim:        s,
		configPath: configPath,
		debug:      debug,
		screen:     screenMenu,
	}
	g.menu, _ = NewMenuUI(g, "Hungry Pig", "Play")
	g.over, g.overMsg = NewMenuUI(g, "Game Over", "Restart")

	if debug {
		w, err := prefabs.NewWatcher(prefabs.DefaultDebounce, "prefabs", "prefabs/scripts")
		if err != nil {
			log.Warn("prefab hot reload disabled", "err", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	if g.quit || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	g.applyReloads()

	dt := 1.0 / float64(ebiten.TPS())
	if g.toastT > 0 {
		g.toastT -= dt
	}

	switch g.screen {
	case screenMenu:
		g.menu.Update()
		if g.start || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.start = false
			g.screen = screenPlaying
		}
	case screenPlaying:
		g.sim.Step(dt, readIntent())
		g.handleEvents(g.sim.Events())
		if snap := g.sim.Snapshot(); snap.Outcome == state.OutcomeLost {
			g.overMsg.Label = fmt.Sprintf("%s  Truffles: %d", lossMessage(snap.LossReason), snap.Score)
			g.screen = screenOver
		}
	case screenOver:
		g.over.Update()
		if g.start || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.start = false
			if err := g.sim.Reset(); err != nil {
				return err
			}
			g.screen = screenPlaying
		}
	}
	return nil
}

func (g *Game) handleEvents(events []ecs.Event) {
	for _, evt := range events {
		log.Debug("event", "type", evt.Type, "data", evt.Data)
		switch evt.Type {
		case ecs.EventEffectStarted:
			g.showToast(evt.Data)
		case ecs.EventPlayerLost:
			log.Info("run over", "reason", evt.Data, "score", g.sim.Snapshot().Score)
		}
	}
}

func (g *Game) showToast(data any) {
	if p, ok := data.(system.EffectPayload); ok {
		g.toast = p.Kind.String()
		g.toastT = 2
	}
}

// applyReloads drains the watcher without blocking so edits land between
// steps on the update goroutine.
func (g *Game) applyReloads() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Changes:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(change)
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Warn("prefab watcher", "err", err)
			}
		default:
			return
		}
	}
}

func (g *Game) reload(change prefabs.Change) {
	log.Info("reloading", "path", change.Path, "kind", change.Kind)
	if change.Kind != prefabs.ChangeTuning {
		g.sim.ReloadPrefabs()
		return
	}

	tuning, err := prefabs.LoadTuning(g.configPath)
	if err != nil {
		log.Error("reload tuning", "err", err)
		return
	}
	if err := g.sim.SetTuning(tuning); err != nil {
		if errors.Is(err, prefabs.ErrInvalidTuning) {
			log.Error("rejected tuning", "err", err)
			return
		}
		log.Error("restart after tuning reload", "err", err)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawWorld(screen, g.sim)
	drawHUD(screen, g.sim.Snapshot(), g.toast, g.toastT > 0, g.debug)

	switch g.screen {
	case screenMenu:
		g.menu.Draw(screen)
	case screenOver:
		g.over.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	t := g.sim.Tuning()
	return t.World.ViewWidth, t.World.ViewHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func lossMessage(reason string) string {
	switch reason {
	case system.LossStarved:
		return "You starved!"
	case system.LossFell:
		return "You fell!"
	case system.LossCaught:
		return "The bird got you!"
	default:
		return "Game Over"
	}
}

// readIntent maps keyboard and the first gamepad onto a step intent.
func readIntent() state.Intent {
	const stickDeadzone = 0.2

	var intent state.Intent
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		intent.Horizontal -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		intent.Horizontal += 1
	}
	intent.Jump = ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW)

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		leftX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if leftX > stickDeadzone || leftX < -stickDeadzone {
			intent.Horizontal = leftX
		}
		intent.Jump = intent.Jump || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
	}
	return intent
}
