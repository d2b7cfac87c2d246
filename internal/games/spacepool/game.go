package spacepool

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/tharrisw/SPACEPOOL-sub002/internal/config"
	"github.com/tharrisw/SPACEPOOL-sub002/internal/core"
	"github.com/tharrisw/SPACEPOOL-sub002/internal/registry"
)

// GameState constants
const (
	StateAiming       = "aiming"        // Cue at rest, player lining up a shot
	StateSimulating   = "simulating"    // Balls in motion
	StatePaused       = "paused"        // Game paused
	StateRoundCleared = "round_cleared" // Rack cleared, next rack incoming (gauntlet)
	StateGameOver     = "gameover"      // No lives left
	StateWin          = "win"           // Rack cleared (classic)
)

// GameMode represents the game mode.
type GameMode int

const (
	ModeClassic  GameMode = iota // Clear one rack to win
	ModeGauntlet                 // Endless re-racks on the same crumbling table
)

// Scoring values.
const (
	PointsPocketed = 2 // Ball sunk in a real pocket
	PointsCratered = 1 // Ball lost through blast damage or a crater
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	switch preset {
	case "easy":
		difficultyPreset = config.DifficultyEasy
	case "normal":
		difficultyPreset = config.DifficultyNormal
	case "hard":
		difficultyPreset = config.DifficultyHard
	case "fixed":
		difficultyPreset = config.DifficultyFixed
	default:
		difficultyPreset = ""
	}
}

// Game implements the spacepool game logic. It owns the whole round
// context: surface, damage engine, spawn validator, and the balls in play.
type Game struct {
	mode GameMode

	// Round context (rebuilt every Reset)
	surface   *SurfaceManager
	damage    *DamageEngine
	validator *SpawnValidator
	balls     []*Ball
	rng       *rand.Rand

	// Shot state
	aimAngle float64
	power    float64 // Fraction of max power in [0.05, 1]

	// Game state
	state         string
	score         int
	lives         int
	shots         int
	rack          int
	tickCount     int
	clearDelay    int // Countdown between racks (gauntlet)
	ballsPocketed int
	ballsSmashed  int
	renderDirty   bool // Set by the surface render sink

	// Configuration
	runtime    core.RuntimeConfig
	cfg        config.SpacepoolConfig
	difficulty *config.DifficultyManager

	// Layout
	minScreenW     int
	minScreenH     int
	screenTooSmall bool
}

// New creates a new spacepool game instance (classic mode).
func New() *Game {
	return &Game{mode: ModeClassic}
}

// NewGauntlet creates a new spacepool game instance in gauntlet mode.
func NewGauntlet() *Game {
	return &Game{mode: ModeGauntlet}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeGauntlet {
		return "spacepool_gauntlet"
	}
	return "spacepool"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeGauntlet {
		return "Spacepool (Gauntlet)"
	}
	return "Spacepool"
}

// Reset initializes or restarts the game: loads config, rebuilds the
// surface grid from table geometry, wires the damage engine and spawn
// validator, and racks the balls.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadSpacepool(configPath)
	if err != nil {
		cfg = config.DefaultSpacepoolConfig()
	}
	if difficultyPreset != "" {
		config.ApplySpacepoolPreset(&cfg, difficultyPreset)
	}
	sanitizeConfig(&cfg)
	g.cfg = cfg

	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	if difficultyPreset != "" {
		g.difficulty.SetInitialLevel(config.InitialLevelForPreset(difficultyPreset))
	}
	g.rng = rand.New(rand.NewSource(runtime.Seed))

	g.minScreenW = 40
	g.minScreenH = 16
	g.screenTooSmall = runtime.ScreenW < g.minScreenW || runtime.ScreenH < g.minScreenH

	geo := buildTableGeometry(cfg.Table)
	surface, err := NewSurfaceManager(geo, cfg.Table.CellSize, cfg.Crater, runtime.Seed, func() {
		g.renderDirty = true
	})
	if err != nil {
		// Geometry comes from a sanitized config; failing here is a
		// programming error, not a gameplay condition.
		panic(fmt.Sprintf("spacepool: %v", err))
	}
	g.surface = surface

	damage, err := NewDamageEngine(cfg.Damage, cfg.Crater.Raggedness, g.mutateTerrain)
	if err != nil {
		panic(fmt.Sprintf("spacepool: %v", err))
	}
	g.damage = damage

	g.validator = NewSpawnValidator(surface, cfg.Spawn, runtime.Seed+1)

	g.score = 0
	g.lives = cfg.Gameplay.Lives
	g.shots = 0
	g.rack = 1
	g.tickCount = 0
	g.clearDelay = 0
	g.ballsPocketed = 0
	g.ballsSmashed = 0
	g.aimAngle = 0
	g.power = 0.5
	g.balls = g.balls[:0]

	g.rackBalls()
	g.state = StateAiming
}

// sanitizeConfig clamps user-supplied values the core cannot tolerate.
func sanitizeConfig(cfg *config.SpacepoolConfig) {
	def := config.DefaultSpacepoolConfig()
	if cfg.Table.Width <= 0 || cfg.Table.Height <= 0 {
		cfg.Table = def.Table
	}
	if cfg.Table.CellSize <= 0 {
		cfg.Table.CellSize = def.Table.CellSize
	}
	if cfg.Physics.BallRadius <= 0 {
		cfg.Physics.BallRadius = def.Physics.BallRadius
	}
	if cfg.Crater.Segments <= 0 {
		cfg.Crater.Segments = def.Crater.Segments
	}
	if cfg.Spawn.MaxAttempts <= 0 {
		cfg.Spawn.MaxAttempts = def.Spawn.MaxAttempts
	}
	if cfg.Gameplay.RackSize <= 0 {
		cfg.Gameplay.RackSize = def.Gameplay.RackSize
	}
	if cfg.Gameplay.Lives <= 0 {
		cfg.Gameplay.Lives = def.Gameplay.Lives
	}
}

// buildTableGeometry converts table config into world-space geometry:
// rounded outer bounds, inner playable felt, and six pockets (four
// corners, two mid-rail).
func buildTableGeometry(t config.TableConfig) TableGeometry {
	bounds := core.RectF{X: 0, Y: 0, W: t.Width, H: t.Height}
	inset := t.CornerRadius * 0.7
	return TableGeometry{
		Bounds:       bounds,
		CornerRadius: t.CornerRadius,
		Playable:     bounds.Inset(t.CushionThickness),
		Pockets: []core.Circle{
			{Center: core.V(inset, inset), Radius: t.PocketRadius},
			{Center: core.V(t.Width-inset, inset), Radius: t.PocketRadius},
			{Center: core.V(inset, t.Height-inset), Radius: t.PocketRadius},
			{Center: core.V(t.Width-inset, t.Height-inset), Radius: t.PocketRadius},
			{Center: core.V(t.Width/2, 0), Radius: t.PocketRadius},
			{Center: core.V(t.Width/2, t.Height), Radius: t.PocketRadius},
		},
	}
}

// mutateTerrain is the damage engine's terrain hook. Crater radius grows
// with difficulty in gauntlet mode.
func (g *Game) mutateTerrain(center core.Vec2, radius, raggedness float64) int {
	if g.mode == ModeGauntlet {
		radius *= g.difficulty.CraterScale(g.score, g.tickCount)
	}
	return g.surface.DestroyRadius(center, radius, raggedness)
}

// cueStart returns the preferred cue ball position.
func (g *Game) cueStart() core.Vec2 {
	return core.V(g.cfg.Table.Width*0.25, g.cfg.Table.Height*0.5)
}

// rackBalls places the cue ball and a triangle of object balls, validating
// every position through the spawn validator. On a fresh table every slot
// is legal; on a gauntlet re-rack the validator has to dodge craters.
func (g *Game) rackBalls() {
	// Cue ball first.
	cuePos, ok := g.validator.FindValidPoint(g.cueStart(), g.cfg.Spawn.Clearance, g.occupiedPositions(), 0)
	if !ok {
		cuePos = g.cueStart() // Last-resort policy: use the preferred point
	}
	cue := &Ball{Pos: cuePos, Kind: KindCue}
	cue.Handle = g.damage.Register(KindCue, g.cfg.Damage.CueMaxHealth, g.cfg.Damage.CueArmor, cuePos)
	g.balls = append(g.balls, cue)

	// Triangle of object balls at the foot spot.
	g.placeRack(g.rackKinds())
}

// placeRack spawns one triangle of object balls at the foot spot. Each
// slot goes through the spawn validator so re-racks dodge craters. Racked
// balls sit nearly touching, so slot validation uses the ball diameter
// rather than the wider respawn clearance.
func (g *Game) placeRack(kinds []BallKind) {
	clearance := g.cfg.Physics.BallRadius * 2
	apex := core.V(g.cfg.Table.Width*0.68, g.cfg.Table.Height*0.5)
	spacing := g.cfg.Physics.BallRadius*2 + 0.5

	i := 0
	for row := 0; i < len(kinds); row++ {
		for col := 0; col <= row && i < len(kinds); col++ {
			slot := core.V(
				apex.X+float64(row)*spacing,
				apex.Y+(float64(col)-float64(row)/2)*spacing,
			)
			pos, ok := g.validator.FindValidPoint(slot, clearance, g.occupiedPositions(), 0)
			if !ok {
				pos = slot
			}
			g.spawnObjectBall(kinds[i], pos)
			i++
		}
	}
}

// rackKinds builds the shuffled kind list for one rack: one eight ball,
// a couple of volatiles, one charged, and solids/stripes for the rest.
// Gauntlet racks get hotter as the rack number climbs.
func (g *Game) rackKinds() []BallKind {
	n := g.cfg.Gameplay.RackSize
	volatiles := 2
	charged := 1
	if g.mode == ModeGauntlet && g.rack > 1 {
		volatiles += (g.rack - 1) / 2
		charged += (g.rack - 1) / 3
	}

	kinds := make([]BallKind, 0, n)
	kinds = append(kinds, KindEight)
	for i := 0; i < volatiles && len(kinds) < n; i++ {
		kinds = append(kinds, KindVolatile)
	}
	for i := 0; i < charged && len(kinds) < n; i++ {
		kinds = append(kinds, KindCharged)
	}
	for len(kinds) < n {
		if len(kinds)%2 == 0 {
			kinds = append(kinds, KindSolid)
		} else {
			kinds = append(kinds, KindStripe)
		}
	}

	g.rng.Shuffle(len(kinds), func(i, j int) {
		kinds[i], kinds[j] = kinds[j], kinds[i]
	})
	return kinds
}

// spawnObjectBall registers and places one non-cue ball.
func (g *Game) spawnObjectBall(kind BallKind, pos core.Vec2) {
	b := &Ball{Pos: pos, Kind: kind}
	b.Handle = g.damage.Register(kind, g.cfg.Damage.BallMaxHealth, g.cfg.Damage.ObjectArmor, pos)
	if kind.Abilities().Has(AbilityTimedCharge) {
		b.Fuse = g.difficulty.FuseTicks(g.cfg.Damage.ChargedFuseTicks, g.score, g.tickCount)
	}
	g.balls = append(g.balls, b)
}

// occupiedPositions returns the positions of all balls still in play.
func (g *Game) occupiedPositions() []core.Vec2 {
	out := make([]core.Vec2, 0, len(g.balls))
	for _, b := range g.balls {
		if !b.Gone {
			out = append(out, b.Pos)
		}
	}
	return out
}

// cueBall returns the live cue ball, or nil after it was lost.
func (g *Game) cueBall() *Ball {
	for _, b := range g.balls {
		if b.Kind == KindCue && !b.Gone {
			return b
		}
	}
	return nil
}

// liveBalls returns the number of object balls still in play.
func (g *Game) liveBalls() int {
	n := 0
	for _, b := range g.balls {
		if !b.Gone && b.Kind != KindCue {
			n++
		}
	}
	return n
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	// Handle restart
	if in.Has(core.ActionRestart) && (g.state == StateGameOver || g.state == StateWin) {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		switch g.state {
		case StatePaused:
			g.state = StateAiming
		case StateAiming, StateSimulating:
			g.state = StatePaused
		}
	}

	if g.state == StatePaused || g.state == StateGameOver || g.state == StateWin {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++

	// Delay between gauntlet racks
	if g.state == StateRoundCleared {
		g.clearDelay--
		if g.clearDelay <= 0 {
			g.nextRack()
		}
		return core.StepResult{State: g.State()}
	}

	g.updateFuses()

	switch g.state {
	case StateAiming:
		g.updateAiming(in)
	case StateSimulating:
		g.updateSimulation()
	}

	g.consumeEvents()

	return core.StepResult{State: g.State()}
}

// updateAiming handles aim, power, and the shot itself.
func (g *Game) updateAiming(in core.InputFrame) {
	if in.Has(core.ActionAimLeft) {
		g.aimAngle -= g.cfg.Physics.AimStep
	}
	if in.Has(core.ActionAimRight) {
		g.aimAngle += g.cfg.Physics.AimStep
	}
	if in.Has(core.ActionPowerUp) {
		g.power = core.ClampF(g.power+g.cfg.Physics.PowerStep, 0.05, 1)
	}
	if in.Has(core.ActionPowerDown) {
		g.power = core.ClampF(g.power-g.cfg.Physics.PowerStep, 0.05, 1)
	}

	if in.Has(core.ActionShoot) {
		cue := g.cueBall()
		if cue == nil {
			return
		}
		cue.Vel = core.FromAngle(g.aimAngle).Scale(g.power * g.cfg.Physics.MaxPower)
		g.shots++
		g.state = StateSimulating
	}
}

// updateSimulation advances the physics and handles balls falling through
// pockets and craters.
func (g *Game) updateSimulation() {
	// Move everything.
	for _, b := range g.balls {
		integrateBall(b, g.surface, g.cfg.Physics)
		if !b.Gone {
			g.damage.UpdatePosition(b.Handle, b.Pos)
		}
	}

	// Resolve ball-ball collisions and convert impulses into damage.
	dmgScale := g.difficulty.DamageScale(g.score, g.tickCount)
	for i := 0; i < len(g.balls); i++ {
		for j := i + 1; j < len(g.balls); j++ {
			impulse, hit := collideBalls(g.balls[i], g.balls[j], g.cfg.Physics)
			if hit {
				g.damage.ApplyCollisionDamage(g.balls[i].Handle, g.balls[j].Handle, impulse*dmgScale)
			}
		}
	}

	// Balls over open hazards fall through the table.
	for _, b := range g.balls {
		if b.Gone || !g.surface.IsOpenHazard(b.Pos) {
			continue
		}
		g.ballFell(b)
	}

	// Once everything is at rest, hand control back to the player.
	if g.state == StateSimulating && g.allStopped() {
		g.state = StateAiming
		g.checkRackCleared()
	}
}

// ballFell handles a ball dropping through a pocket or a crater.
func (g *Game) ballFell(b *Ball) {
	pocketed := g.surface.Classify(b.Pos) == CellPocket
	rec, tracked := g.damage.Record(b.Handle)
	b.Gone = true
	b.Pocketed = pocketed
	b.Vel = core.Vec2{}
	g.damage.Unregister(b.Handle)

	if b.Kind == KindCue {
		// A cue blown up this tick already has a destruction notification
		// queued; that path charges the life. Charging it here too would
		// cost two lives for one cue.
		if !tracked || !rec.Destroyed {
			g.loseCue()
		}
		return
	}

	if pocketed {
		g.score += PointsPocketed
		g.ballsPocketed++
	} else {
		g.score += PointsCratered
		g.ballsSmashed++
	}
}

// loseCue costs a life and respawns the cue ball if any remain.
func (g *Game) loseCue() {
	g.lives--
	if g.lives <= 0 {
		g.state = StateGameOver
		return
	}
	g.respawnCue()
}

// respawnCue places a fresh cue ball through the spawn validator. On a
// heavily damaged table the validator may fail; the last-resort policy is
// to use the preferred spot regardless.
func (g *Game) respawnCue() {
	pos, ok := g.validator.FindValidPoint(g.cueStart(), g.cfg.Spawn.Clearance, g.occupiedPositions(), 0)
	if !ok {
		pos = g.cueStart()
	}

	cue := &Ball{Pos: pos, Kind: KindCue}
	cue.Handle = g.damage.Register(KindCue, g.cfg.Damage.CueMaxHealth, g.cfg.Damage.CueArmor, pos)
	g.balls = append(g.balls, cue)
}

// updateFuses counts down charged balls and detonates them on expiry.
func (g *Game) updateFuses() {
	for _, b := range g.balls {
		if b.Gone || !b.Kind.Abilities().Has(AbilityTimedCharge) {
			continue
		}
		b.Fuse--
		if b.Fuse <= 0 {
			g.damage.TriggerCharge(b.Handle)
		}
	}
}

// consumeEvents drains the damage engine's event queue and applies the
// game-level consequences.
func (g *Game) consumeEvents() {
	for _, ev := range g.damage.DrainEvents() {
		switch ev.Kind {
		case EventDestroyed:
			g.onBallDestroyed(ev)
		case EventPrimaryDestroyed:
			g.loseCue()
		case EventAllCleared:
			g.onRackCleared()
		}
	}
}

// onBallDestroyed removes the destroyed ball from play and scores it.
func (g *Game) onBallDestroyed(ev Event) {
	for _, b := range g.balls {
		if b.Handle != ev.Handle || b.Gone {
			continue
		}
		b.Gone = true
		b.Vel = core.Vec2{}
		g.damage.Unregister(b.Handle)
		if b.Kind != KindCue {
			g.score += PointsCratered
			g.ballsSmashed++
		}
		return
	}
}

// checkRackCleared covers the pocketing path: the engine only announces
// all-cleared on destruction or deregistration, both of which have already
// happened by the time the balls stop.
func (g *Game) checkRackCleared() {
	if g.liveBalls() == 0 && g.state == StateAiming {
		g.onRackCleared()
	}
}

// onRackCleared ends the round (classic) or schedules the next rack.
func (g *Game) onRackCleared() {
	if g.state == StateGameOver || g.state == StateWin || g.state == StateRoundCleared {
		return
	}
	if g.mode == ModeClassic {
		g.state = StateWin
		return
	}
	g.state = StateRoundCleared
	g.clearDelay = 90 // 1.5 seconds at 60 ticks
}

// nextRack starts a fresh rack in gauntlet mode. The table keeps all its
// damage; only the balls are replaced.
func (g *Game) nextRack() {
	g.rack++
	g.damage.ResetClearedLatch()

	// Drop everything except the cue ball.
	kept := g.balls[:0]
	for _, b := range g.balls {
		if b.Kind == KindCue && !b.Gone {
			kept = append(kept, b)
		}
	}
	g.balls = kept

	if g.cueBall() == nil {
		g.respawnCue()
	}

	g.placeRack(g.rackKinds())
	g.state = StateAiming
}

// allStopped reports whether every ball in play is at rest.
func (g *Game) allStopped() bool {
	for _, b := range g.balls {
		if b.Moving() {
			return false
		}
	}
	return true
}

// RoundStats reports the finished round for persistence.
func (g *Game) RoundStats() core.RoundStats {
	outcome := "quit"
	switch g.state {
	case StateWin:
		outcome = "win"
	case StateGameOver:
		outcome = "gameover"
	}
	return core.RoundStats{
		Outcome:        outcome,
		Shots:          g.shots,
		Racks:          g.rack,
		BallsPocketed:  g.ballsPocketed,
		BallsSmashed:   g.ballsSmashed,
		CellsDestroyed: g.surface.DestroyedCells(),
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.state == StateGameOver || g.state == StateWin,
		Paused:   g.state == StatePaused,
	}
}

// aimRay samples points along the current aim direction for rendering.
func (g *Game) aimRay() []core.Vec2 {
	cue := g.cueBall()
	if cue == nil {
		return nil
	}
	dir := core.FromAngle(g.aimAngle)
	length := 8 + g.power*16
	pts := make([]core.Vec2, 0, 12)
	for d := 2.0; d < length; d += 1.5 {
		p := cue.Pos.Add(dir.Scale(d))
		if blocksBall(g.surface.Classify(p)) {
			break
		}
		pts = append(pts, p)
	}
	return pts
}

// normalizeAngle keeps the aim angle readable in the HUD.
func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// Register the game variants with the registry
func init() {
	registry.Register("spacepool", func() registry.Game {
		return New()
	})
	registry.Register("spacepool_gauntlet", func() registry.Game {
		return NewGauntlet()
	})
}
