package system

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/patrol/common"
	"github.com/milk9111/patrol/ecs"
	"github.com/milk9111/patrol/ecs/component"
)

const defaultZoom = 32.0

var (
	floorColor  = color.NRGBA{R: 34, G: 38, B: 46, A: 255}
	wallColor   = color.NRGBA{R: 120, G: 128, B: 140, A: 255}
	hazardFill  = color.NRGBA{R: 255, G: 0, B: 0, A: 48}
	hazardLine  = color.NRGBA{R: 255, G: 0, B: 0, A: 200}
	facingColor = color.NRGBA{R: 250, G: 250, B: 250, A: 255}
	markerColor = color.NRGBA{R: 255, G: 210, B: 60, A: 220}
)

// view maps the X/Z plane onto the screen: +X is right and +Z is up.
type view struct {
	camX, camZ float64
	zoom       float64
	halfW      float64
	halfH      float64
}

func (v view) toScreen(p mgl64.Vec3) (float32, float32) {
	x := (p.X()-v.camX)*v.zoom + v.halfW
	y := -(p.Z()-v.camZ)*v.zoom + v.halfH
	return float32(x), float32(y)
}

func (v view) scale(d float64) float32 {
	return float32(d * v.zoom)
}

type RenderSystem struct {
	camEntity ecs.Entity
	Debug     bool
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) viewFor(w *ecs.World, width, height int) view {
	v := view{zoom: defaultZoom, halfW: float64(width) / 2, halfH: float64(height) / 2}
	if !w.IsAlive(r.camEntity) {
		if camEntity, ok := w.First(component.CameraComponent.Kind()); ok {
			r.camEntity = camEntity
		}
	}
	if cam, ok := ecs.Get(w, r.camEntity, component.CameraComponent.Kind()); ok {
		v.camX = cam.X
		v.camZ = cam.Z
		if cam.Zoom > 0 {
			v.zoom = cam.Zoom
		}
	}
	return v
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	screen.Fill(floorColor)
	b := screen.Bounds()
	v := r.viewFor(w, b.Dx(), b.Dy())

	entities := w.Query(component.TransformComponent.Kind(), component.RenderLayerComponent.Kind())
	sort.SliceStable(entities, func(i, j int) bool {
		li, _ := ecs.Get(w, entities[i], component.RenderLayerComponent.Kind())
		lj, _ := ecs.Get(w, entities[j], component.RenderLayerComponent.Kind())
		if li.Index != lj.Index {
			return li.Index < lj.Index
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())

		if wall, ok := ecs.Get(w, e, component.WallComponent.Kind()); ok {
			x, y := v.toScreen(t.Position.Add(mgl64.Vec3{-wall.HalfX, 0, wall.HalfZ}))
			vector.FillRect(screen, x, y, v.scale(wall.HalfX*2), v.scale(wall.HalfZ*2), wallColor, false)
		}

		model, hasModel := ecs.Get(w, e, component.ModelComponent.Kind())
		if h, ok := ecs.Get(w, e, component.HazardComponent.Kind()); ok && (!hasModel || r.Debug) {
			drawHazard(screen, v, t.Position, h)
		}
		if hasModel && model.Visible {
			drawModel(screen, v, t.Position, model)
		}
	}

	if r.Debug {
		r.drawPatrolDebug(w, screen, v)
		if pw := w.PhysicsWorld(); pw != nil {
			DrawPhysicsDebug(pw.Space(), screen, v)
		}
		DrawPlayerDebug(w, screen)
	}
	drawHUD(w, screen)
}

func drawHazard(screen *ebiten.Image, v view, pos mgl64.Vec3, h *component.Hazard) {
	if h.Radius > 0 {
		x, y := v.toScreen(pos)
		vector.FillCircle(screen, x, y, v.scale(h.Radius), hazardFill, true)
		vector.StrokeCircle(screen, x, y, v.scale(h.Radius), 1, hazardLine, true)
		return
	}
	x, y := v.toScreen(pos.Add(mgl64.Vec3{-h.HalfX, 0, h.HalfZ}))
	vector.FillRect(screen, x, y, v.scale(h.HalfX*2), v.scale(h.HalfZ*2), hazardFill, false)
	vector.StrokeRect(screen, x, y, v.scale(h.HalfX*2), v.scale(h.HalfZ*2), 1.0, hazardLine, false)
}

func drawModel(screen *ebiten.Image, v view, pos mgl64.Vec3, m *component.Model) {
	radius := m.Radius
	if radius <= 0 {
		radius = 0.5
	}
	x, y := v.toScreen(pos)
	vector.FillCircle(screen, x, y, v.scale(radius), m.Color, true)

	facing := m.Orientation().Rotate(common.Forward)
	fx, fy := v.toScreen(pos.Add(facing.Mul(radius)))
	vector.StrokeLine(screen, x, y, fx, fy, 2, facingColor, true)
}

// drawPatrolDebug shows the hidden waypoint markers and the loop through them.
func (r *RenderSystem) drawPatrolDebug(w *ecs.World, screen *ebiten.Image, v view) {
	ecs.ForEach(w, component.PatrolComponent.Kind(), func(e ecs.Entity, p *component.Patrol) {
		n := len(p.Points)
		for i, pt := range p.Points {
			x1, y1 := v.toScreen(pt)
			x2, y2 := v.toScreen(p.Points[(i+1)%n])
			vector.StrokeLine(screen, x1, y1, x2, y2, 1, markerColor, true)
			vector.StrokeRect(screen, x1-3, y1-3, 6, 6, 1, markerColor, false)
			if i == p.Current {
				vector.FillRect(screen, x1-2, y1-2, 4, 4, markerColor, false)
			}
		}
	})
}

func drawHUD(w *ecs.World, screen *ebiten.Image) {
	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	life, ok := ecs.Get(w, player, component.LifeComponent.Kind())
	if !ok {
		return
	}
	text := fmt.Sprintf("Deaths: %d", life.Deaths)
	if life.Dead {
		text += "\nRespawning..."
	}
	b := screen.Bounds()
	ebitenutil.DebugPrintAt(screen, text, b.Dx()-120, 10)
}
