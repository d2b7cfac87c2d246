package config

import (
	_ "embed"
)

//go:embed defaults/spacepool.yaml
var defaultSpacepoolYAML []byte

// DefaultSpacepoolConfig returns the default spacepool configuration.
// Kept in sync with defaults/spacepool.yaml as the last-resort fallback.
func DefaultSpacepoolConfig() SpacepoolConfig {
	return SpacepoolConfig{
		Table: TableConfig{
			Width:            160.0,
			Height:           80.0,
			CornerRadius:     10.0,
			CushionThickness: 3.0,
			PocketRadius:     4.0,
			CellSize:         1.0,
		},
		Physics: PhysicsConfig{
			Friction:           0.985,
			StopSpeed:          0.02,
			MaxPower:           2.5,
			PowerStep:          0.04,
			AimStep:            0.045,
			BallRadius:         1.0,
			Restitution:        0.94,
			CushionRestitution: 0.6,
		},
		Crater: CraterConfig{
			InnerFraction: 0.67,
			Segments:      16,
			Perturbation:  0.4,
			Raggedness:    0.5,
			SpikeLow:      0.3,
			SpikeHigh:     0.7,
			SpikeBoost:    0.4,
		},
		Damage: DamageConfig{
			MinImpulse:       0.35,
			ImpulseScale:     45.0,
			BallMaxHealth:    100,
			CueMaxHealth:     200,
			CueArmor:         0.75,
			ObjectArmor:      0.0,
			SameKindMult:     1.0,
			CueSameKindMult:  0.25,
			VolatileRadius:   9.0,
			VolatileDamage:   60.0,
			ChargedFuseTicks: 900,
			ChargedRadius:    12.0,
			ChargedDamage:    80.0,
		},
		Spawn: SpawnConfig{
			Clearance:      3.0,
			OffsetDistance: 6.0,
			MaxAttempts:    500,
		},
		Gameplay: GameplayConfig{
			Lives:    3,
			RackSize: 10,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 50,
			},
			Scaling: ScalingConfig{
				DamageMultiplier: 0.5,
				FuseReduction:    300,
				CraterGrowth:     0.35,
			},
		},
	}
}
