package main

import (
	"fmt"
	"image/color"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/actionkit/action"
	"github.com/milk9111/actionkit/config"
	"github.com/milk9111/actionkit/ecs"
	"github.com/milk9111/actionkit/ecs/component"
	"github.com/milk9111/actionkit/logging"
	"github.com/milk9111/actionkit/recipe"
	"github.com/milk9111/actionkit/sim"
	"github.com/rs/zerolog"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	maxLogLines = 14
	defaultSize = 32
)

var recipeKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

var clipColors = map[string]color.Color{
	"idle":   colornames.Skyblue,
	"walk":   colornames.Lightgreen,
	"wave":   colornames.Gold,
	"crouch": colornames.Orange,
}

type Game struct {
	cfg    config.Config
	world  *ecs.World
	logger zerolog.Logger

	session *sim.Session
	current string
	names   []string
	lines   []string

	ui      *ebitenui.UI
	watcher *recipe.Watcher
	pixel   *ebiten.Image
	paused  bool
	shapes  bool
}

func NewGame(cfg config.Config, start string) (*Game, error) {
	g := &Game{
		cfg:    cfg,
		world:  sim.NewWorld(cfg),
		logger: logging.Get("demo"),
		names:  recipe.Names(),
		pixel:  ebiten.NewImage(1, 1),
	}
	g.pixel.Fill(color.White)

	if cfg.Watch && cfg.RecipeDir != "" {
		w, err := recipe.NewWatcher(cfg.RecipeDir)
		if err != nil {
			return nil, fmt.Errorf("watch %s: %w", cfg.RecipeDir, err)
		}
		g.watcher = w
	}

	g.ui = NewRecipeUI(g)
	if err := g.startRecipe(start); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) startRecipe(name string) error {
	r, err := recipe.LoadRecipe(name)
	if err != nil {
		return err
	}
	if g.session != nil {
		g.session.Stop()
		g.collectEvents()
	}
	s, err := sim.Start(g.world, g.cfg, r)
	if err != nil {
		return err
	}
	g.session = s
	g.current = r.Name
	g.logger.Info().Str("recipe", r.Name).Msg("recipe started")
	g.addLine("-- " + r.Name + ": " + s.Root.String())
	g.collectEvents()
	return nil
}

// StartRecipe is the UI entry point; failures land in the event log.
func (g *Game) StartRecipe(name string) {
	if err := g.startRecipe(name); err != nil {
		g.logger.Warn().Err(err).Str("recipe", name).Msg("start recipe")
		g.addLine("error: " + err.Error())
	}
}

func (g *Game) registry() *action.Registry {
	if g.session == nil {
		return nil
	}
	return g.session.Registry()
}

func (g *Game) StopMove() {
	if reg := g.registry(); reg != nil {
		reg.StopMove()
	}
}

func (g *Game) StopAll() {
	if reg := g.registry(); reg != nil {
		reg.StopAll()
	}
}

func (g *Game) Update() error {
	for i, key := range recipeKeys {
		if i < len(g.names) && inpututil.IsKeyJustPressed(key) {
			g.StartRecipe(g.names[i])
		}
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.StopMove()
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.StopAll()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.StartRecipe(g.current)
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.paused = !g.paused
	case inpututil.IsKeyJustPressed(ebiten.KeyD):
		g.shapes = !g.shapes
	}

	g.pollWatcher()
	g.ui.Update()

	if !g.paused {
		if g.session != nil {
			g.session.Step()
		} else {
			g.world.Step(g.cfg.DeltaTime())
		}
	}
	g.collectEvents()
	return nil
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.names = recipe.Names()
			name := strings.TrimSuffix(strings.TrimSuffix(filepath.Base(path), ".yaml"), ".yml")
			g.addLine("reload " + filepath.Base(path))
			if name == g.current || strings.HasSuffix(path, ".tengo") {
				g.StartRecipe(g.current)
			}
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.logger.Warn().Err(err).Msg("watch")
		default:
			return
		}
	}
}

func (g *Game) collectEvents() {
	if g.session == nil {
		return
	}
	for _, evt := range g.session.Events() {
		g.addLine(sim.FormatEvent(g.session.Frames(), evt))
	}
	for _, evt := range g.session.WorldEvents() {
		g.addLine(sim.FormatWorldEvent(g.session.Frames(), evt))
	}
}

func (g *Game) addLine(line string) {
	g.lines = append(g.lines, line)
	if over := len(g.lines) - maxLogLines; over > 0 {
		g.lines = slices.Delete(g.lines, 0, over)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)

	y := float32(g.cfg.GroundY)
	vector.StrokeLine(screen, 0, y, baseWidth, y, 2, colornames.Lightgrey, false)

	if g.session != nil {
		g.drawEntity(screen, g.session.Entity)
	}
	if pw := g.world.PhysicsWorld(); g.shapes && pw != nil {
		drawSpace(screen, pw.Space())
	}

	ebitenutil.DebugPrint(screen, g.hud())
	ebitenutil.DebugPrintAt(screen, strings.Join(g.lines, "\n"), 10, baseHeight-16*maxLogLines-10)
	g.ui.Draw(screen)
}

func (g *Game) drawEntity(screen *ebiten.Image, e ecs.Entity) {
	ref := ecs.Ref{World: g.world, Entity: e}
	t, ok := ref.Transform()
	if !ok {
		return
	}
	mesh := component.MeshTransform{Scale: 1}
	if m, ok := ref.MeshTransform(); ok {
		mesh = *m
	}

	w, h := float64(defaultSize), float64(defaultSize)
	if body, ok := ecs.Get(g.world, e, component.BodyComponent); ok {
		w, h = body.Width, body.Height
	}
	w *= t.ScaleX * mesh.Scale
	h *= t.ScaleY * mesh.Scale

	var clr color.Color = colornames.Crimson
	if anim, ok := ref.Animation(); ok && anim.Playing {
		if c, ok := clipColors[anim.Current]; ok {
			clr = c
		}
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(-w/2, -h/2)
	op.GeoM.Rotate(t.Rotation + mesh.Rotation)
	op.GeoM.Translate(t.X+mesh.OffsetX, t.Y+mesh.OffsetY)
	op.ColorScale.ScaleWithColor(clr)
	screen.DrawImage(g.pixel, op)
}

func (g *Game) hud() string {
	var b strings.Builder
	fmt.Fprintf(&b, "FPS: %.1f  recipe: %s", ebiten.ActualFPS(), g.current)
	if g.paused {
		b.WriteString("  [paused]")
	}
	b.WriteString("\n1-9 start recipe  S stop move  Space stop all  R restart  P pause  D shapes\n")
	for i, name := range g.names {
		if i >= len(recipeKeys) {
			break
		}
		fmt.Fprintf(&b, "  %d %s\n", i+1, name)
	}

	reg := g.registry()
	if reg == nil {
		return b.String()
	}
	b.WriteString("\nbuckets:\n")
	all := reg.AllActions()
	keys := make([]action.Category, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		for _, a := range all[k] {
			fmt.Fprintf(&b, "  %-24s %s\n", k, a)
		}
	}
	for _, leaf := range reg.ActiveLeaves() {
		fmt.Fprintf(&b, "  leaf %s [%s]\n", leaf.Name(), leaf.Category())
	}
	return b.String()
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
