// Package viewer draws a running simulation with ebiten and lets the user
// retune the flock while it moves.
package viewer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/lao-tseu-is-alive/go-flocking/pkg/flock"
	"github.com/lao-tseu-is-alive/go-flocking/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-flocking/pkg/ui"
	"github.com/tochemey/goakt/v3/log"
	"golang.org/x/image/font/basicfont"
)

const (
	panelWidth   = 240
	boidLength   = 8.0
	boidWidth    = 5.0
	wingAngle    = 2.5 // radians between the heading and each back corner
	statsPeriod  = time.Second
	maxBatchSize = math.MaxUint16 / 3 // boids per DrawTriangles call
)

// sliderMax caps the sliders of parameters that have no upper bound.
var sliderMax = map[string]float64{
	"maxSpeed":           20,
	"visionRange":        100,
	"separationDistance": 50,
}

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	boidColor     = color.RGBA{R: 100, G: 200, B: 255, A: 255}
)

func init() {
	whiteImage.Fill(color.White)
}

// Game is the ebiten front end of a Simulation.
type Game struct {
	ctx    context.Context
	sim    *simulation.Simulation
	cfg    *simulation.Config
	logger log.Logger

	ctrl      flock.Control
	lastState *flock.Snapshot
	stats     atomic.Pointer[flock.Stats]
	lastPoll  time.Time
	polling   atomic.Bool
	nextSeed  uint64

	// UI Controls
	panel          *ui.Panel
	sliders        map[string]*ui.Slider
	widgetPaused   *ui.Checkbox
	respawnPending bool

	// reused between frames
	vertices []ebiten.Vertex
	indices  []uint16

	// Timing instrumentation
	updateAvg float64 // Rolling average in ms
	drawAvg   float64 // Rolling average in ms
}

// NewGame builds the tuning panel from flock.ParamSpecs, seeded with cfg.Control.
func NewGame(ctx context.Context, sim *simulation.Simulation, cfg *simulation.Config, logger log.Logger) *Game {
	g := &Game{
		ctx:       ctx,
		sim:       sim,
		cfg:       cfg,
		logger:    logger,
		ctrl:      cfg.Control,
		lastState: &flock.Snapshot{},
		nextSeed:  cfg.Seed + 1,
		sliders:   make(map[string]*ui.Slider, len(flock.ParamSpecs)),
	}

	panel := ui.NewPanel(cfg.WorldWidth-panelWidth-10, 10, panelWidth, cfg.WorldHeight-20, "Flock Control")

	for _, group := range groupBySection(flock.ParamSpecs) {
		panel.AddSection(group.title)
		for _, p := range group.params {
			g.addSlider(panel, p)
		}
	}

	panel.AddSection("Simulation")
	g.widgetPaused = panel.AddCheckbox("Paused", false)
	panel.AddButton("Respawn", func() { g.respawnPending = true })

	g.panel = panel
	return g
}

type paramGroup struct {
	title  string
	params []flock.ParamSpec
}

// groupBySection gathers specs under their Section, sections ordered by first
// appearance and specs keeping their relative order.
func groupBySection(specs []flock.ParamSpec) []paramGroup {
	var groups []paramGroup
	index := make(map[string]int)
	for _, p := range specs {
		k, ok := index[p.Section]
		if !ok {
			k = len(groups)
			index[p.Section] = k
			groups = append(groups, paramGroup{title: p.Section})
		}
		groups[k].params = append(groups[k].params, p)
	}
	return groups
}

func (g *Game) addSlider(panel *ui.Panel, p flock.ParamSpec) {
	value, _ := g.ctrl.Get(p.Name)
	hi := p.Max
	if !p.Bounded() {
		hi = max(sliderMax[p.Name], 2*value)
	}
	g.sliders[p.Name] = panel.AddSlider(p.Label, p.Min, hi, value)
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		g.updateAvg = g.updateAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	// 1. Update UI Panel
	g.panel.Update()

	// 2. Push slider changes; the world applies them between two ticks.
	changed := false
	for name, s := range g.sliders {
		if s.Changed() {
			_ = g.ctrl.Set(name, s.Value)
			changed = true
		}
	}
	if changed {
		if err := g.sim.Tune(g.ctx, g.ctrl); err != nil {
			g.logger.Warnf("failed to send tuning update: %v", err)
		}
	}

	if g.respawnPending {
		g.respawnPending = false
		if err := g.sim.Respawn(g.ctx, g.nextSeed); err != nil {
			g.logger.Warnf("failed to respawn: %v", err)
		}
		g.nextSeed++
	}

	// 3. Retrieve Latest State (Non-blocking)
	g.drainSnapshots()

	// 4. Trigger Simulation Step
	if !g.widgetPaused.Value {
		if err := g.sim.Advance(g.ctx, 1); err != nil {
			return fmt.Errorf("failed to advance simulation: %w", err)
		}
	}

	// Polling also keeps the world busy while paused.
	if time.Since(g.lastPoll) >= statsPeriod {
		g.lastPoll = time.Now()
		g.pollStats()
	}
	return nil
}

func (g *Game) drainSnapshots() {
	for {
		select {
		case snap := <-g.sim.Snapshots():
			g.lastState = snap
		default:
			return
		}
	}
}

// pollStats asks for stats off the game loop; Ask waits for the mailbox.
func (g *Game) pollStats() {
	if !g.polling.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer g.polling.Store(false)
		stats, err := g.sim.Stats(g.ctx)
		if err != nil {
			g.logger.Warnf("stats query failed: %v", err)
			return
		}
		g.stats.Store(&stats)
	}()
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.drawAvg = g.drawAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	screen.Fill(color.RGBA{R: 10, G: 10, B: 30, A: 255})

	// 1. Draw all boids from the last known snapshot
	g.drawBoids(screen)

	// 2. Draw UI Panel
	g.panel.Draw(screen)

	// 3. Stats
	stats := g.lastState.Stats
	if polled := g.stats.Load(); polled != nil && polled.Ticks > stats.Ticks {
		stats = *polled
	}
	msg := fmt.Sprintf("FPS: %.2f\nTPS: %.2f\nUpdate: %.2fms\nDraw:   %.2fms\n\nTicks: %d\nBoids: %d\nMean speed: %.2f\nMean neighbors: %.1f\nCentroid: %v",
		ebiten.ActualFPS(),
		ebiten.ActualTPS(),
		g.updateAvg,
		g.drawAvg,
		stats.Ticks,
		stats.Population,
		stats.MeanSpeed,
		stats.MeanNeighbors,
		stats.Centroid)
	ebitenutil.DebugPrintAt(screen, msg, 10, 10)

	if g.widgetPaused.Value {
		text.Draw(screen, "PAUSED", basicfont.Face7x13, int(g.cfg.WorldWidth/2)-21, 24, color.White)
	}
}

// drawBoids renders every agent as a triangle pointing along its heading.
// World y points up, screen y points down, and the origin sits at the centre.
func (g *Game) drawBoids(screen *ebiten.Image) {
	agents := g.lastState.Agents
	cx, cy := g.cfg.WorldWidth/2, g.cfg.WorldHeight/2
	zoom := g.cfg.Zoom

	for lo := 0; lo < len(agents); lo += maxBatchSize {
		hi := min(lo+maxBatchSize, len(agents))
		g.vertices = g.vertices[:0]
		g.indices = g.indices[:0]
		for i, a := range agents[lo:hi] {
			x := cx + a.Pos.X*zoom
			y := cy - a.Pos.Y*zoom
			g.vertices = append(g.vertices,
				vertex(x, y, a.Heading, boidLength),
				vertex(x, y, a.Heading+wingAngle, boidWidth),
				vertex(x, y, a.Heading-wingAngle, boidWidth),
			)
			base := uint16(3 * i)
			g.indices = append(g.indices, base, base+1, base+2)
		}
		screen.DrawTriangles(g.vertices, g.indices, whiteSubImage, &ebiten.DrawTrianglesOptions{})
	}
}

// vertex returns the point at distance r from (x, y) in direction angle,
// angle measured counterclockwise in world space.
func vertex(x, y, angle, r float64) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   float32(x + math.Cos(angle)*r),
		DstY:   float32(y - math.Sin(angle)*r),
		SrcX:   1,
		SrcY:   1,
		ColorR: float32(boidColor.R) / 255,
		ColorG: float32(boidColor.G) / 255,
		ColorB: float32(boidColor.B) / 255,
		ColorA: 1,
	}
}

func (g *Game) Layout(w, h int) (int, int) { return int(g.cfg.WorldWidth), int(g.cfg.WorldHeight) }
