// Package playing provides the main gameplay scene.
package playing

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/younwookim/spinrun/internal/application/replay"
	"github.com/younwookim/spinrun/internal/application/scene"
	"github.com/younwookim/spinrun/internal/application/state"
	"github.com/younwookim/spinrun/internal/application/system"
	"github.com/younwookim/spinrun/internal/domain/entity"
	"github.com/younwookim/spinrun/internal/domain/tile"
	"github.com/younwookim/spinrun/internal/infrastructure/config"
	"github.com/younwookim/spinrun/internal/infrastructure/logging"
)

// Colors for rendering
var (
	colorBG         = color.RGBA{26, 26, 46, 255}
	colorSolid      = color.RGBA{80, 80, 100, 255}
	colorIce        = color.RGBA{150, 200, 230, 255}
	colorOneWay     = color.RGBA{120, 100, 70, 255}
	colorHazard     = color.RGBA{200, 50, 50, 255}
	colorSlope      = color.RGBA{90, 110, 90, 255}
	colorConveyor   = color.RGBA{110, 110, 60, 255}
	colorItem       = color.RGBA{230, 180, 40, 255}
	colorPlayer     = color.RGBA{100, 200, 100, 255}
	colorPlayerDead = color.RGBA{100, 100, 100, 160}
	colorEnemy      = color.RGBA{200, 100, 100, 255}
	colorSegment    = color.RGBA{170, 80, 80, 255}
	colorBoss       = color.RGBA{180, 60, 200, 255}
	colorShot       = color.RGBA{255, 100, 100, 255}
	colorGold       = color.RGBA{255, 215, 0, 255}
	colorPickup     = color.RGBA{100, 180, 255, 255}
	colorPause      = color.RGBA{0, 0, 0, 128}
	colorGameOver   = color.RGBA{100, 0, 0, 180}
	colorClear      = color.RGBA{0, 80, 0, 180}
)

const shakeDecay = 0.85

// Options configures the scene.
type Options struct {
	Loader     *config.Loader
	Level      string
	Characters []string
	// Seed overrides the tuning seed when set.
	Seed       *int64
	Logger     *log.Logger
	RecordPath string
	// Watcher, when set, triggers a reload of tuning and level on change.
	Watcher *config.Watcher
}

// Controls are the harness keys, read once per frame.
type Controls struct {
	Pause   bool
	Restart bool
	Save    bool
}

func readKeyboard() Controls {
	return Controls{
		Pause:   inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		Restart: inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyZ),
		Save:    inpututil.IsKeyJustPressed(ebiten.KeyF5),
	}
}

// Playing is the main gameplay scene. It owns one Simulation and feeds it
// the ticks the game clock hands out.
type Playing struct {
	loader     *config.Loader
	levelName  string
	characters []string
	seed       *int64
	logger     *log.Logger
	watcher    *config.Watcher

	sim   *system.Simulation
	state state.GameState

	inputSystem  *system.InputSystem
	readInput    func() []system.InputState
	readControls func() Controls

	screenW int
	screenH int
	camX    float64
	camY    float64
	shake   float64
	frame   int

	recorder   *replay.Recorder
	recordPath string
}

// New loads the level and builds its simulation.
// If opts.RecordPath is not empty, gameplay will be recorded.
func New(opts Options) (*Playing, error) {
	if opts.Loader == nil {
		opts.Loader = config.NewEmbeddedLoader()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	tuning, err := opts.Loader.LoadTuning()
	if err != nil {
		return nil, err
	}
	level, err := opts.Loader.LoadLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	p := &Playing{
		loader:       opts.Loader,
		levelName:    opts.Level,
		characters:   opts.Characters,
		seed:         opts.Seed,
		logger:       opts.Logger,
		watcher:      opts.Watcher,
		recordPath:   opts.RecordPath,
		readControls: readKeyboard,
	}
	if err := p.load(tuning, level); err != nil {
		return nil, err
	}
	return p, nil
}

// load replaces the running simulation. The old one is kept on error.
func (p *Playing) load(tuning *config.Tuning, level *config.LevelConfig) error {
	opts := []system.Option{
		system.WithLogger(p.logger),
		system.WithCharacters(p.characters...),
	}
	if p.seed != nil {
		opts = append(opts, system.WithSeed(*p.seed))
	}
	sim, err := system.New(tuning, level, opts...)
	if err != nil {
		return err
	}

	p.sim = sim
	p.state = state.StatePlaying
	p.screenW = tuning.Display.ScreenWidth
	p.screenH = tuning.Display.ScreenHeight
	p.inputSystem = system.NewInputSystem(len(sim.Players))
	p.readInput = p.inputSystem.GetInput
	p.startRecording()
	p.follow()
	return nil
}

// Simulation returns the running simulation.
func (p *Playing) Simulation() *system.Simulation {
	return p.sim
}

// Update runs the ticks due this frame (implements scene.Scene)
func (p *Playing) Update(ticks int) (scene.Scene, error) {
	p.frame++
	p.pollReload()

	c := p.readControls()
	if c.Save {
		p.saveRecording()
	}

	if p.state == state.StatePaused {
		if c.Pause {
			p.state = state.StatePlaying
		}
		return nil, nil
	}
	if p.sim.State.Ended() {
		if c.Restart {
			p.restart()
		}
		return nil, nil
	}
	if c.Pause {
		p.state = state.StatePaused
		return nil, nil
	}

	inputs := p.readInput()
	for i := 0; i < ticks; i++ {
		if i == 1 {
			for j := range inputs {
				inputs[j] = inputs[j].Held()
			}
		}
		if p.recorder != nil {
			p.recorder.Record(inputs)
		}
		p.sim.Step(inputs)
		p.react(p.sim.Events)

		if p.sim.State.Ended() {
			p.state = p.sim.State
			p.finishRecording()
			break
		}
	}

	p.shake *= shakeDecay
	p.follow()
	return nil, nil // nil = stay on this scene
}

func (p *Playing) react(ev entity.Events) {
	switch {
	case ev.PlayerDied:
		p.shake = 6
	case ev.HazardHit, ev.BossPhaseChanged:
		p.shake = max(p.shake, 3)
	}
}

func (p *Playing) restart() {
	p.sim.Reset()
	p.state = state.StatePlaying
	p.shake = 0
	p.startRecording()
	p.follow()
}

// pollReload drains pending config changes and rebuilds the simulation
// once for all of them.
func (p *Playing) pollReload() {
	if p.watcher == nil {
		return
	}
	var changed []string
	for {
		path, ok := p.watcher.Poll()
		if !ok {
			break
		}
		changed = append(changed, path)
	}
	select {
	case err, ok := <-p.watcher.Errors:
		if ok && err != nil {
			p.logger.Warn("config watcher", "err", err)
		}
	default:
	}
	if len(changed) == 0 {
		return
	}
	if err := p.reload(changed...); err != nil {
		p.logger.Error("reload failed", "paths", changed, "err", err)
	}
}

func (p *Playing) reload(paths ...string) error {
	tuning := p.sim.Tuning()
	for _, path := range paths {
		if !config.IsTuningFile(path) {
			continue
		}
		t, err := p.loader.LoadTuning()
		if err != nil {
			return err
		}
		tuning = t
		break
	}
	level, err := p.loader.LoadLevel(p.levelName)
	if err != nil {
		return err
	}

	p.finishRecording()
	if err := p.load(tuning, level); err != nil {
		return err
	}
	p.logger.Info("config reloaded", "level", p.levelName, "paths", paths)
	return nil
}

func (p *Playing) startRecording() {
	if p.recordPath == "" {
		return
	}
	p.recorder = replay.NewRecorder(p.sim.Seed(), p.levelName, p.characters)
	p.logger.Info("recording", "path", p.recordPath, "seed", p.sim.Seed())
}

func (p *Playing) finishRecording() {
	if p.recorder == nil || !p.recorder.IsRecording() {
		return
	}
	p.recorder.Finish(p.sim)
	p.saveRecording()
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	if p.recorder == nil {
		return
	}
	if err := p.recorder.Save(p.recordPath); err != nil {
		p.logger.Warn("failed to save recording", "path", p.recordPath, "err", err)
		return
	}
	p.logger.Info("recording saved", "path", p.recordPath, "frames", p.recorder.FrameCount())
}

// follow centers the camera on the first player, clamped to the world.
func (p *Playing) follow() {
	if len(p.sim.Players) == 0 {
		return
	}
	pl := p.sim.Players[0]
	w := p.sim.World()
	p.camX = clamp(pl.CenterX()-float64(p.screenW)/2, 0, w.PixelWidth()-float64(p.screenW))
	p.camY = clamp(pl.CenterY()-float64(p.screenH)/2, 0, w.PixelHeight()-float64(p.screenH))
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}

// Draw renders the game screen
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	camX, camY := p.camX, p.camY
	if p.shake > 0.5 {
		if p.frame%2 == 0 {
			camX += p.shake
		} else {
			camX -= p.shake
		}
	}

	p.drawTiles(screen, camX, camY)
	for _, ps := range p.sim.Poses() {
		drawPose(screen, ps, camX, camY)
	}
	p.drawHUD(screen)

	switch {
	case p.state == state.StatePaused:
		p.drawOverlay(screen, colorPause, "PAUSED\n\nPress ESC to resume")
	case p.sim.GameOver():
		p.drawOverlay(screen, colorGameOver, "GAME OVER\n\nPress Enter to restart")
	case p.sim.Complete():
		p.drawOverlay(screen, colorClear, "STAGE CLEAR\n\nPress Enter to play again")
	}
}

func (p *Playing) drawTiles(screen *ebiten.Image, camX, camY float64) {
	w := p.sim.World()
	size := w.TileSize()
	fs := float32(size)

	startCol := max(int(camX)/size, 0)
	startRow := max(int(camY)/size, 0)
	endCol := min((int(camX)+p.screenW)/size+1, w.Cols()-1)
	endRow := min((int(camY)+p.screenH)/size+1, w.Rows()-1)

	for row := startRow; row <= endRow; row++ {
		for col := startCol; col <= endCol; col++ {
			def := w.Tile(col, row)
			x := float32(float64(col*size) - camX)
			y := float32(float64(row*size) - camY)

			switch def.Kind {
			case tile.Air:
			case tile.Slope:
				// one-pixel columns from the surface down
				for lx := 0; lx < size; lx++ {
					top := w.SlopeHeight(def.Code, col, row, float64(col*size+lx))
					sy := float32(top - camY)
					vector.FillRect(screen, x+float32(lx), sy, 1, y+fs-sy, colorSlope, false)
				}
			case tile.OneWay:
				vector.FillRect(screen, x, y, fs, fs/4, colorOneWay, false)
			default:
				vector.FillRect(screen, x, y, fs, fs, tileColor(def), false)
			}
		}
	}
}

func tileColor(def tile.Def) color.Color {
	switch {
	case def.Item:
		return colorItem
	case def.Slippery:
		return colorIce
	case def.Kind == tile.Hazard:
		return colorHazard
	case def.Kind == tile.ConveyorLeft, def.Kind == tile.ConveyorRight:
		return colorConveyor
	}
	return colorSolid
}

func drawPose(screen *ebiten.Image, ps entity.Pose, camX, camY float64) {
	var c color.Color
	switch ps.Kind {
	case entity.PosePlayer:
		c = colorPlayer
		if ps.State == "dead" {
			c = colorPlayerDead
		}
	case entity.PoseEnemy:
		c = colorEnemy
	case entity.PoseSegment:
		c = colorSegment
	case entity.PoseBoss:
		c = colorBoss
	case entity.PoseProjectile:
		c = colorShot
	case entity.PosePickup:
		c = colorPickup
		if ps.State == entity.PickupCurrency.String() {
			c = colorGold
		}
	default:
		return
	}

	x := float32(ps.X - camX)
	y := float32(ps.Y - camY)
	vector.FillRect(screen, x, y, float32(ps.W), float32(ps.H), c, false)

	// facing marker
	if ps.Kind == entity.PosePlayer || ps.Kind == entity.PoseEnemy || ps.Kind == entity.PoseBoss {
		mx := x
		if ps.FacingRight {
			mx = x + float32(ps.W) - 2
		}
		vector.FillRect(screen, mx, y+2, 2, 2, color.White, false)
	}
}

func (p *Playing) drawHUD(screen *ebiten.Image) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  tick %d", p.sim.Level().Name, p.sim.Tick)
	if p.recorder != nil && p.recorder.IsRecording() {
		b.WriteString("  REC")
	}
	b.WriteByte('\n')
	for _, pl := range p.sim.Players {
		shield := ""
		if pl.Shield {
			shield = " +shield"
		}
		fmt.Fprintf(&b, "P%d %s lives:%d rings:%d %s%s\n",
			pl.Slot+1, pl.Character, pl.Lives, pl.Currency, pl.State, shield)
	}
	if boss := p.sim.Boss; boss != nil && !boss.Complete {
		fmt.Fprintf(&b, "BOSS %d/%d %s\n", boss.HP, boss.MaxHP, boss.Phase)
	}
	b.WriteString("Arrows/WASD: move | Z/F: jump | C/H: skill | ESC: pause | F5: save")
	ebitenutil.DebugPrint(screen, b.String())
}

func (p *Playing) drawOverlay(screen *ebiten.Image, c color.Color, text string) {
	vector.FillRect(screen, 0, 0, float32(p.screenW), float32(p.screenH), c, false)
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-60, p.screenH/2-20)
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {
	p.logger.Debug("scene enter", "level", p.levelName)
}

// OnExit is called when leaving this scene
func (p *Playing) OnExit() {
	if p.recorder != nil && p.recorder.IsRecording() {
		p.recorder.Stop()
	}
	p.saveRecording()
}
