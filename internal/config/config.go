// Package config provides YAML-based game configuration loading and
// difficulty management for the spacepool platform.
package config

// SpacepoolConfig contains all configuration for the spacepool game.
type SpacepoolConfig struct {
	Table      TableConfig      `yaml:"table"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Crater     CraterConfig     `yaml:"crater"`
	Damage     DamageConfig     `yaml:"damage"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Gameplay   GameplayConfig   `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// TableConfig defines the table geometry in world units.
type TableConfig struct {
	Width            float64 `yaml:"width"`
	Height           float64 `yaml:"height"`
	CornerRadius     float64 `yaml:"corner_radius"`
	CushionThickness float64 `yaml:"cushion_thickness"`
	PocketRadius     float64 `yaml:"pocket_radius"`
	CellSize         float64 `yaml:"cell_size"`
}

// PhysicsConfig defines ball movement parameters.
type PhysicsConfig struct {
	Friction           float64 `yaml:"friction"`            // Per-tick velocity retention factor
	StopSpeed          float64 `yaml:"stop_speed"`          // Speed below which a ball stops
	MaxPower           float64 `yaml:"max_power"`           // Maximum cue strike speed
	PowerStep          float64 `yaml:"power_step"`          // Power change per tick held
	AimStep            float64 `yaml:"aim_step"`            // Aim rotation in radians per tick held
	BallRadius         float64 `yaml:"ball_radius"`
	Restitution        float64 `yaml:"restitution"`         // Ball-ball bounce energy retention
	CushionRestitution float64 `yaml:"cushion_restitution"` // Cushion bounce energy retention
}

// CraterConfig defines the crater generation parameters.
// The defaults are empirically tuned; they are kept configurable rather
// than derived.
type CraterConfig struct {
	InnerFraction float64 `yaml:"inner_fraction"` // Fully destroyed zone as a fraction of radius
	Segments      int     `yaml:"segments"`       // Angular segments for edge irregularity
	Perturbation  float64 `yaml:"perturbation"`   // Max per-segment radius perturbation
	Raggedness    float64 `yaml:"raggedness"`     // Positional noise weight on the crater edge
	SpikeLow      float64 `yaml:"spike_low"`      // Edge progress below which spikes may form
	SpikeHigh     float64 `yaml:"spike_high"`     // Edge progress above which notches may form
	SpikeBoost    float64 `yaml:"spike_boost"`    // Probability adjustment for spikes/notches
}

// DamageConfig defines health, armor, and damage tuning per ball kind.
type DamageConfig struct {
	MinImpulse        float64 `yaml:"min_impulse"`         // Collisions below this never damage
	ImpulseScale      float64 `yaml:"impulse_scale"`       // Raw damage per unit of impulse
	BallMaxHealth     int     `yaml:"ball_max_health"`
	CueMaxHealth      int     `yaml:"cue_max_health"`
	CueArmor          float64 `yaml:"cue_armor"`           // Fractional damage reduction for the cue ball
	ObjectArmor       float64 `yaml:"object_armor"`        // Fractional damage reduction for object balls
	SameKindMult      float64 `yaml:"same_kind_mult"`      // Multiplier when source kind == target kind
	CueSameKindMult   float64 `yaml:"cue_same_kind_mult"`  // Lower self-damage multiplier for the cue
	VolatileRadius    float64 `yaml:"volatile_radius"`     // Crater/area radius on volatile destruction
	VolatileDamage    float64 `yaml:"volatile_damage"`
	ChargedFuseTicks  int     `yaml:"charged_fuse_ticks"`  // Ticks until a charged ball triggers
	ChargedRadius     float64 `yaml:"charged_radius"`
	ChargedDamage     float64 `yaml:"charged_damage"`
}

// SpawnConfig defines respawn placement search parameters.
type SpawnConfig struct {
	Clearance      float64 `yaml:"clearance"`       // Required distance to pockets and other balls
	OffsetDistance float64 `yaml:"offset_distance"` // Distance for the directional fallback probes
	MaxAttempts    int     `yaml:"max_attempts"`    // Random sample bound before degrading
}

// GameplayConfig defines round-level rules.
type GameplayConfig struct {
	Lives    int `yaml:"lives"`
	RackSize int `yaml:"rack_size"` // Object balls per rack
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	DamageMultiplier float64 `yaml:"damage_multiplier"` // Extra incoming damage at max difficulty
	FuseReduction    int     `yaml:"fuse_reduction"`    // Charged-ball fuse reduction in ticks at max
	CraterGrowth     float64 `yaml:"crater_growth"`     // Extra crater radius fraction at max
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
