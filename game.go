package main

import (
	"fmt"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/patrol/common"
	"github.com/milk9111/patrol/config"
	"github.com/milk9111/patrol/ecs"
	"github.com/milk9111/patrol/ecs/component"
	"github.com/milk9111/patrol/ecs/entity"
	"github.com/milk9111/patrol/ecs/system"
	"github.com/milk9111/patrol/levels"
	"github.com/milk9111/patrol/prefabs"
	"go.uber.org/zap"
)

type Game struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	clock     *common.FrameClock

	patrols *system.PatrolSystem
	hazards *system.HazardSystem
	render  *system.RenderSystem

	watcher *prefabs.Watcher

	paused  bool
	quit    bool
	pauseUI *ebitenui.UI

	debug bool
}

func NewGame(cfg config.Config) (*Game, error) {
	return newGame(cfg, system.NewInputSystem(), nil)
}

func newGame(cfg config.Config, input *system.InputSystem, clock *common.FrameClock) (*Game, error) {
	lvl, err := levels.LoadLevelFromFS(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("load level %s: %w", cfg.Level, err)
	}

	world := ecs.NewWorld()
	world.SetPhysicsWorld(ecs.NewPhysicsWorld())
	if err := entity.LoadLevelToWorld(world, lvl); err != nil {
		return nil, err
	}

	invokes := system.NewInvokeSystem()
	invokes.Register(system.MethodRespawn, func(w *ecs.World, e ecs.Entity) {
		system.Respawn(w, e)
	})

	patrols := system.NewPatrolSystem()
	hazards := system.NewHazardSystem()
	render := system.NewRenderSystem()
	render.Debug = cfg.Debug

	// Hazard contacts are pushed and consumed in the same frame, so the life
	// system runs after the hazard system.
	scheduler := ecs.NewScheduler(
		input,
		invokes,
		system.NewPlayerControllerSystem(),
		patrols,
		system.NewHierarchySystem(),
		hazards,
		system.NewPlayerLifeSystem(),
		system.NewCameraSystem(),
	)

	if clock == nil {
		clock = common.NewFrameClock(nil, cfg.MaxDelta)
	}

	g := &Game{
		world:     world,
		scheduler: scheduler,
		clock:     clock,
		patrols:   patrols,
		hazards:   hazards,
		render:    render,
		debug:     cfg.Debug,
	}

	if cfg.WatchPrefabs {
		watcher, err := prefabs.NewWatcher(prefabs.DefaultDirs()...)
		if err != nil {
			zap.L().Warn("prefab hot reload disabled", zap.Error(err))
		} else {
			g.watcher = watcher
		}
	}

	zap.L().Info("game ready", zap.String("level", lvl.Name), zap.Bool("debug", cfg.Debug))
	return g, nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.setPaused(!g.paused)
	}
	if g.paused {
		if g.pauseUI != nil {
			g.pauseUI.Update()
		}
		if g.quit {
			return ebiten.Termination
		}
		return nil
	}
	return g.step()
}

// step advances one frame of simulation.
func (g *Game) step() error {
	g.drainPrefabChanges()

	g.world.Advance(g.clock.Tick())
	g.scheduler.Update(g.world)

	if err := g.patrols.Err(); err != nil {
		return err
	}
	return nil
}

func (g *Game) setPaused(paused bool) {
	if paused == g.paused {
		return
	}
	g.paused = paused
	if paused {
		if g.pauseUI == nil {
			g.pauseUI = NewPauseUI(g)
		}
		return
	}
	g.clock.Reset()
}

// respawnPlayer brings every player back to its spawn pose immediately.
func (g *Game) respawnPlayer() {
	ecs.ForEach(g.world, component.PlayerTagComponent.Kind(), func(e ecs.Entity, _ *component.PlayerTag) {
		system.Respawn(g.world, e)
	})
}

func (g *Game) drainPrefabChanges() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.applyPrefabChange(change)
		case err, ok := <-g.watcher.Errors:
			if ok {
				zap.L().Warn("prefab watcher", zap.Error(err))
			}
		default:
			return
		}
	}
}

func (g *Game) applyPrefabChange(change prefabs.Change) {
	switch change.Kind {
	case prefabs.ChangeScript:
		g.hazards.ReloadScripts()
		zap.L().Info("hazard scripts reloaded", zap.String("file", change.Path))
	case prefabs.ChangeSpec:
		if filepath.Base(change.Path) != entity.PlayerPrefab {
			zap.L().Debug("prefab change ignored", zap.String("file", change.Path))
			return
		}
		n, err := entity.ReloadPlayerTuning(g.world)
		if err != nil {
			zap.L().Warn("player tuning reload failed", zap.Error(err))
			return
		}
		zap.L().Info("player tuning reloaded", zap.Int("players", n))
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)

	if g.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.2f", ebiten.ActualFPS()), 10, common.BaseHeight-20)
	}

	if g.paused && g.pauseUI != nil {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	err := g.watcher.Close()
	g.watcher = nil
	return err
}
