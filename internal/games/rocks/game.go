// Package rocks hosts the rocks-and-diamonds engine on the arcade platform:
// configuration, the level campaign, frame scheduling, the camera, progress
// persistence and rendering into a core.Screen.
package rocks

import (
	"errors"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/rocks-arcade/internal/config"
	"github.com/vovakirdan/rocks-arcade/internal/core"
	"github.com/vovakirdan/rocks-arcade/internal/games/rocks/engine"
	"github.com/vovakirdan/rocks-arcade/internal/games/rocks/levels"
	"github.com/vovakirdan/rocks-arcade/internal/registry"
	"github.com/vovakirdan/rocks-arcade/internal/storage"
)

// Registered game IDs.
const (
	IDTiles    = "rocks"
	IDEntities = "rocks_entities"
)

// hudHeight is the number of screen rows above the playfield.
const hudHeight = 2

// Package-level settings applied on the next Reset, set from the CLI.
var (
	configPath         string
	difficultyPreset   config.DifficultyPreset
	selectedStartLevel int
	levelsDir          string
	logger             = log.New(io.Discard)
)

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetStartLevel sets the starting level (1-indexed). 0 resumes saved
// progress, or starts from the beginning.
func SetStartLevel(level int) {
	selectedStartLevel = level
}

// GetStartLevel returns the currently selected start level.
func GetStartLevel() int {
	return selectedStartLevel
}

// SetLevelsDir loads the campaign from a directory of level files instead
// of the built-in one.
func SetLevelsDir(dir string) {
	levelsDir = dir
}

// SetLogger replaces the package logger.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

func init() {
	registry.Register(IDTiles, "Dig for diamonds under falling rocks", func() registry.Game {
		return New()
	})
	registry.Register(IDEntities, "Rocks and diamonds with smooth falling objects", func() registry.Game {
		return NewEntities()
	})
}

// Game runs one rocks-and-diamonds session.
type Game struct {
	entities bool // force the entity variant regardless of config

	cfg        config.RocksConfig
	difficulty *config.DifficultyManager
	campaign   *levels.Campaign
	world      *engine.World
	sched      *engine.Scheduler
	camera     Camera
	rng        *rand.Rand

	progress storage.Progress
	profile  string
	startAt  int // 1-indexed level for the next Reset, 0 defers to package settings

	tickRate     int
	screenW      int
	screenH      int
	tick         uint64
	paused       bool
	err          error // fatal setup error, shown instead of the playfield
	generation   int
	completedSeq int
	gravityLevel int
}

// New creates a game using the movables representation from config
// (tiles by default).
func New() *Game {
	return &Game{}
}

// NewEntities creates a game that always uses the entity variant.
func NewEntities() *Game {
	return &Game{entities: true}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.entities {
		return IDEntities
	}
	return IDTiles
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.entities {
		return "Rocks & Diamonds (Entities)"
	}
	return "Rocks & Diamonds"
}

// AttachProgress makes Reset resume from and Step save to store under
// profile. A nil store disables persistence.
func (g *Game) AttachProgress(store storage.Progress, profile string) {
	g.progress = store
	g.profile = profile
}

// StartAt makes the next Reset begin at level (1-indexed) instead of the
// saved progress. It overrides SetStartLevel for this game only.
func (g *Game) StartAt(level int) {
	g.startAt = level
}

// Reset loads configuration and levels and starts the campaign.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	g.screenW, g.screenH = cfg.ScreenW, cfg.ScreenH
	g.tick = 0
	g.paused = false
	g.err = nil
	g.world = nil

	rc, err := config.LoadRocks(configPath)
	if err != nil {
		logger.Warn("config load failed, using defaults", "path", configPath, "error", err)
		rc = config.DefaultRocksConfig()
	}
	if difficultyPreset != "" {
		config.ApplyRocksPreset(&rc, difficultyPreset)
	}
	g.cfg = rc
	g.difficulty = config.NewDifficultyManager(rc.Difficulty)

	campaign, err := LoadCampaign()
	if err != nil {
		logger.Error("no playable levels", "error", err)
		g.err = err
		return
	}
	g.campaign = campaign

	g.world = engine.NewWorld(campaign, engine.Options{
		Width:  rc.Grid.Width,
		Height: rc.Grid.Height,
		Rules:  g.rules(),
	})

	start := g.startLevel(campaign.Count())
	if err := g.world.Load(start); err != nil {
		logger.Warn("start level failed to load", "level", start, "error", err)
		if start == 0 || g.world.Load(0) != nil {
			g.err = err
			g.world = nil
			return
		}
	}

	g.sched = engine.NewScheduler(g.periods(g.world.Player().Level), g.tickRate)
	g.gravityLevel = g.world.Player().Level
	g.completedSeq = g.world.LastCompletion().Seq
	g.camera = newCamera(g.rng, rc.Camera.ShakeRadius)
	g.onLoad()
}

// LoadCampaign returns the campaign from the levels directory set with
// SetLevelsDir, or the built-in one.
func LoadCampaign() (*levels.Campaign, error) {
	if levelsDir != "" {
		c, err := levels.NewLoader(levelsDir).Campaign()
		if err == nil {
			return c, nil
		}
		logger.Warn("levels dir unusable, falling back to built-in levels", "dir", levelsDir, "error", err)
	}
	return levels.Builtin().Campaign()
}

func (g *Game) rules() engine.Rules {
	r := engine.Rules{PushRocks: g.cfg.Rules.PushRocks}
	if g.cfg.Rules.Blast == config.BlastDemolish {
		r.Blast = engine.BlastDemolish
	}
	if g.entities || g.cfg.Rules.Movables == config.MovablesEntities {
		r.Variant = engine.VariantEntities
	}
	return r
}

func (g *Game) periods(level int) engine.Periods {
	return engine.Periods{
		Animation: g.cfg.Timing.Animation(),
		Gravity:   g.difficulty.GravityPeriod(g.cfg.Timing.Gravity(), level),
		Entity:    g.cfg.Timing.Entity(),
	}
}

// startLevel picks the first level to load: an explicit CLI choice, then
// saved progress. Stored indices outside the campaign restart it.
func (g *Game) startLevel(count int) int {
	if g.startAt > 0 {
		idx := g.startAt - 1
		g.startAt = 0
		return engine.ClampLevel(idx, count)
	}
	if selectedStartLevel > 0 {
		idx := selectedStartLevel - 1
		selectedStartLevel = 0
		return engine.ClampLevel(idx, count)
	}
	if g.progress == nil {
		return 0
	}
	idx, err := g.progress.LoadProgress(g.profile)
	if err != nil {
		if !errors.Is(err, storage.ErrNoProgress) {
			logger.Warn("progress load failed", "profile", g.profile, "error", err)
		}
		return 0
	}
	return engine.ClampLevel(idx, count)
}

// Resize updates the viewport without restarting the level.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h
	if g.world != nil {
		g.snapCamera()
	}
}

func (g *Game) viewport() (int, int) {
	return max(g.screenW, 1), max(g.screenH-hudHeight, 1)
}

func (g *Game) snapCamera() {
	lw, lh := g.world.LevelSize()
	vw, vh := g.viewport()
	g.camera.Snap(g.world.Player().Pos, lw, lh, vw, vh)
}

// onLoad runs after every successful level load.
func (g *Game) onLoad() {
	g.generation = g.world.Generation()
	p := g.world.Player()
	if p.Level != g.gravityLevel {
		g.sched.Gravity = engine.NewClock(engine.FramesFor(g.periods(p.Level).Gravity, g.tickRate))
		g.gravityLevel = p.Level
	}
	g.snapCamera()
	logger.Debug("level loaded", "level", p.Level, "name", g.world.LevelName(), "generation", g.generation)

	if g.progress == nil {
		return
	}
	if err := g.progress.SaveProgress(g.profile, p.Level); err != nil {
		logger.Warn("progress save failed", "profile", g.profile, "level", p.Level, "error", err)
	}
}

// Step advances the game by one host frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	if g.world == nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	wasDead := g.world.Player().Dead
	wasWon := g.world.Won()

	if err := g.sched.Frame(g.world, toInput(in)); err != nil {
		logger.Error("level load failed", "level", g.world.Player().Level, "error", err)
	}

	var events []core.Event
	p := g.world.Player()

	if g.world.Feedback().Consume() {
		events = append(events, core.Event{Kind: core.EventThunk, Level: p.Level, Score: p.Score})
		g.camera.Shake(g.cfg.Camera.ShakeFrames)
	}
	if c := g.world.LastCompletion(); c.Seq != g.completedSeq {
		g.completedSeq = c.Seq
		events = append(events, core.Event{Kind: core.EventLevelComplete, Level: c.Level, Score: c.Score})
		logger.Info("level complete", "level", c.Level, "score", c.Score)
	}
	if g.world.Won() && !wasWon {
		events = append(events, core.Event{Kind: core.EventCampaignComplete, Level: p.Level, Score: p.Score})
		logger.Info("campaign complete", "levels", g.campaign.Count())
	}
	if g.world.Generation() != g.generation {
		g.onLoad()
		p = g.world.Player()
		events = append(events, core.Event{Kind: core.EventLevelLoaded, Level: p.Level})
	} else if p.Dead && !wasDead {
		events = append(events, core.Event{Kind: core.EventPlayerDied, Level: p.Level, Score: p.Score})
		logger.Debug("player squashed", "level", p.Level, "at", p.Pos)
	}

	lw, lh := g.world.LevelSize()
	vw, vh := g.viewport()
	g.camera.Follow(p.Pos, lw, lh, vw, vh)
	g.camera.Tick()

	return core.StepResult{State: g.State(), Events: events}
}

func toInput(in core.InputFrame) engine.Input {
	return engine.Input{
		Up:          in.Has(core.ActionUp),
		Down:        in.Has(core.ActionDown),
		Left:        in.Has(core.ActionLeft),
		Right:       in.Has(core.ActionRight),
		Bomb:        in.Has(core.ActionBomb),
		Restart:     in.Has(core.ActionRestart),
		RestartGame: in.Has(core.ActionRestartGame),
	}
}

// State returns the current status.
func (g *Game) State() core.GameState {
	if g.world == nil {
		return core.GameState{GameOver: g.err != nil, Paused: g.paused}
	}
	p := g.world.Player()
	return core.GameState{
		Score:    p.Score,
		Level:    p.Level,
		GameOver: p.Dead || g.world.Won(),
		Won:      g.world.Won(),
		Paused:   g.paused,
	}
}

// World exposes the running simulation for inspection.
func (g *Game) World() *engine.World { return g.world }

// Campaign returns the loaded level campaign.
func (g *Game) Campaign() *levels.Campaign { return g.campaign }
