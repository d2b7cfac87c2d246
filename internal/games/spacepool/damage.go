package spacepool

import (
	"errors"

	"github.com/tharrisw/SPACEPOOL-sub002/internal/config"
	"github.com/tharrisw/SPACEPOOL-sub002/internal/core"
)

// Handle identifies a health record inside the DamageEngine's arena.
// A handle pairs a slot index with the slot's generation at registration
// time; unregistering bumps the generation, so a stale handle stops
// resolving even after the slot is recycled for a new record. Other
// systems hold handles, never record pointers, so record lifetime is
// owned entirely by the engine.
type Handle struct {
	idx int32
	gen uint32
}

// NoHandle is the invalid zero handle. Generations start at 1, so the
// zero value never resolves.
var NoHandle Handle

// Valid reports whether the handle could refer to a record.
func (h Handle) Valid() bool {
	return h.gen != 0
}

// HealthRecord tracks one damageable object. Records are created by
// Register, mutated only by the engine, and recycled after Unregister.
type HealthRecord struct {
	Health    int
	MaxHealth int
	Armor     float64 // Fractional damage reduction in [0, 1]
	Kind      BallKind
	Destroyed bool
	Exempt    bool      // Not counted toward the all-cleared condition
	LastPos   core.Vec2 // Updated by the host each tick; used for craters

	active bool   // Slot is in use
	gen    uint32 // Slot generation; must match the handle's to resolve
}

// EventKind enumerates the notifications the engine emits.
type EventKind int

const (
	// EventDamaged fires whenever effective damage lands on a live record.
	EventDamaged EventKind = iota
	// EventDestroyed fires exactly once per record, at the first transition
	// to zero health.
	EventDestroyed
	// EventPrimaryDestroyed fires when the cue ball is destroyed, signaling
	// the host to respawn it.
	EventPrimaryDestroyed
	// EventAllCleared fires once per round, when no non-exempt live
	// records remain.
	EventAllCleared
)

// Event is one notification produced during an engine call. Events are
// queued and drained by the host each tick instead of being delivered
// through callbacks, so the host stays in control of ordering.
type Event struct {
	Kind   EventKind
	Handle Handle
	Ball   BallKind
	Pos    core.Vec2
	Amount int // Effective damage for EventDamaged
}

// TerrainMutator is the surface-destruction hook the engine calls when a
// crater-capable record detonates. Wired to SurfaceManager.DestroyRadius.
type TerrainMutator func(center core.Vec2, radius, raggedness float64) int

// DamageEngine tracks per-object health, applies point, collision, and
// area damage with armor and same-kind rules, and drives destruction
// transitions. Records live in a dense arena addressed by handles.
//
// Operations on unregistered or already-destroyed handles are silent
// no-ops: same-frame races (two collisions against a ball already at zero
// health) are expected and must never fault.
type DamageEngine struct {
	records []HealthRecord
	free    []int32

	cfg        config.DamageConfig
	terrain    TerrainMutator
	raggedness float64

	events          []Event
	allClearedFired bool
}

// NewDamageEngine creates an engine with its terrain-mutation hook wired.
// A nil hook is a fatal configuration error surfaced at construction.
func NewDamageEngine(cfg config.DamageConfig, raggedness float64, terrain TerrainMutator) (*DamageEngine, error) {
	if terrain == nil {
		return nil, errors.New("spacepool: damage engine requires a terrain mutator")
	}
	return &DamageEngine{
		cfg:        cfg,
		terrain:    terrain,
		raggedness: raggedness,
	}, nil
}

// Register creates a health record at full health and returns its handle.
func (e *DamageEngine) Register(kind BallKind, maxHealth int, armor float64, pos core.Vec2) Handle {
	rec := HealthRecord{
		Health:    maxHealth,
		MaxHealth: maxHealth,
		Armor:     core.ClampF(armor, 0, 1),
		Kind:      kind,
		Exempt:    kind.Abilities().Has(AbilityExempt),
		LastPos:   pos,
		active:    true,
	}

	if n := len(e.free); n > 0 {
		idx := e.free[n-1]
		e.free = e.free[:n-1]
		rec.gen = e.records[idx].gen // Already bumped by Unregister
		e.records[idx] = rec
		return Handle{idx: idx, gen: rec.gen}
	}

	rec.gen = 1
	e.records = append(e.records, rec)
	return Handle{idx: int32(len(e.records) - 1), gen: 1}
}

// Unregister removes a record. Subsequent operations on the handle are
// no-ops, even once the slot is recycled. Unregistering an unknown handle
// is itself a no-op.
func (e *DamageEngine) Unregister(h Handle) {
	rec := e.record(h)
	if rec == nil {
		return
	}
	rec.active = false
	rec.gen++ // Invalidate every outstanding handle to this slot
	e.free = append(e.free, h.idx)

	// Deregistration shrinks the tracked set: a ball pocketed cleanly can
	// be the last one standing.
	e.checkAllCleared()
}

// record returns the live record for a handle, or nil for handles that
// are invalid, unregistered, or stale from a previous slot generation.
func (e *DamageEngine) record(h Handle) *HealthRecord {
	if !h.Valid() || h.idx < 0 || int(h.idx) >= len(e.records) {
		return nil
	}
	rec := &e.records[h.idx]
	if !rec.active || rec.gen != h.gen {
		return nil
	}
	return rec
}

// Record returns a copy of the health record for a handle.
// ok is false for unregistered handles.
func (e *DamageEngine) Record(h Handle) (HealthRecord, bool) {
	rec := e.record(h)
	if rec == nil {
		return HealthRecord{}, false
	}
	return *rec, true
}

// UpdatePosition refreshes a record's last known position. Craters and
// area damage triggered by destruction use this position.
func (e *DamageEngine) UpdatePosition(h Handle, pos core.Vec2) {
	if rec := e.record(h); rec != nil {
		rec.LastPos = pos
	}
}

// ApplyDamage applies raw damage to a record after armor and same-kind
// multipliers. Health is clamped at zero; the destroyed transition and its
// notification happen exactly once.
func (e *DamageEngine) ApplyDamage(h Handle, raw float64, sourceKind BallKind) {
	rec := e.record(h)
	if rec == nil || rec.Destroyed || raw <= 0 {
		return
	}

	effective := raw * (1 - rec.Armor)
	if sourceKind == rec.Kind {
		effective *= e.sameKindMult(rec.Kind)
	}

	dmg := int(effective)
	if dmg <= 0 {
		return
	}

	rec.Health -= dmg
	if rec.Health < 0 {
		rec.Health = 0
	}

	e.events = append(e.events, Event{
		Kind:   EventDamaged,
		Handle: h,
		Ball:   rec.Kind,
		Pos:    rec.LastPos,
		Amount: dmg,
	})

	if rec.Health == 0 {
		e.destroy(h, rec)
	}
}

// sameKindMult returns the same-kind damage multiplier for a kind.
// The cue ball takes reduced self-category damage.
func (e *DamageEngine) sameKindMult(kind BallKind) float64 {
	if kind == KindCue {
		return e.cfg.CueSameKindMult
	}
	return e.cfg.SameKindMult
}

// destroy performs the one-time destruction transition for a record.
func (e *DamageEngine) destroy(h Handle, rec *HealthRecord) {
	rec.Destroyed = true

	e.events = append(e.events, Event{
		Kind:   EventDestroyed,
		Handle: h,
		Ball:   rec.Kind,
		Pos:    rec.LastPos,
	})
	if rec.Kind == KindCue {
		e.events = append(e.events, Event{
			Kind:   EventPrimaryDestroyed,
			Handle: h,
			Ball:   rec.Kind,
			Pos:    rec.LastPos,
		})
	}

	// Crater-capable kinds blow terrain and deal area damage at their last
	// position. The two calls share geometry but are independent: terrain
	// destruction alone deals no damage.
	if rec.Kind.Abilities().Has(AbilityCrater) {
		radius, amount := e.cfg.VolatileRadius, e.cfg.VolatileDamage
		if rec.Kind.Abilities().Has(AbilityTimedCharge) {
			radius, amount = e.cfg.ChargedRadius, e.cfg.ChargedDamage
		}
		e.Detonate(rec.LastPos, radius, amount)
	}

	e.checkAllCleared()
}

// TriggerCharge force-destroys a record whose fuse ran out. The normal
// destruction path fires, so the blast uses the charged geometry and the
// destruction notification is delivered exactly once.
func (e *DamageEngine) TriggerCharge(h Handle) {
	rec := e.record(h)
	if rec == nil || rec.Destroyed {
		return
	}
	rec.Health = 0
	e.destroy(h, rec)
}

// Detonate carves a crater and applies flat area damage with the same
// center and radius. Used for volatile destruction and charged-fuse
// triggers alike.
func (e *DamageEngine) Detonate(center core.Vec2, radius, amount float64) {
	e.terrain(center, radius, e.raggedness)
	e.ApplyAreaDamage(center, radius, amount)
}

// ApplyCollisionDamage converts a collision impulse into damage on both
// records. Impulses below the configured threshold model glancing or soft
// contacts and never cause damage.
func (e *DamageEngine) ApplyCollisionDamage(a, b Handle, impulse float64) {
	if impulse < e.cfg.MinImpulse {
		return
	}

	raw := impulse * e.cfg.ImpulseScale

	recA := e.record(a)
	recB := e.record(b)

	// Each side is damaged with the other side's kind as source, so the
	// same-kind rules apply per pairing. A missing side still damages the
	// other (the record may already be unregistered this frame).
	if recA != nil {
		src := KindSolid
		if recB != nil {
			src = recB.Kind
		}
		e.ApplyDamage(a, raw, src)
	}
	if recB != nil {
		src := KindSolid
		if recA != nil {
			src = recA.Kind
		}
		e.ApplyDamage(b, raw, src)
	}
}

// ApplyAreaDamage applies a flat amount to every live record within radius
// of center. No falloff: full amount inside, zero outside.
func (e *DamageEngine) ApplyAreaDamage(center core.Vec2, radius, amount float64) {
	for i := range e.records {
		rec := &e.records[i]
		if !rec.active || rec.Destroyed {
			continue
		}
		if rec.LastPos.DistTo(center) > radius {
			continue
		}
		// Area damage carries no source kind bias; use the target's own
		// armor only.
		e.ApplyDamage(Handle{idx: int32(i), gen: rec.gen}, amount, kindNone)
	}
}

// kindNone is a source kind that never matches any target kind, so
// same-kind multipliers do not apply to area damage.
const kindNone BallKind = 0xFF

// Heal restores health up to the record's maximum. Destroyed records stay
// destroyed; healing them is a no-op.
func (e *DamageEngine) Heal(h Handle, amount int) {
	rec := e.record(h)
	if rec == nil || rec.Destroyed || amount <= 0 {
		return
	}
	rec.Health += amount
	if rec.Health > rec.MaxHealth {
		rec.Health = rec.MaxHealth
	}
}

// checkAllCleared emits EventAllCleared the first time no live,
// non-exempt, non-destroyed records remain.
func (e *DamageEngine) checkAllCleared() {
	if e.allClearedFired {
		return
	}
	for i := range e.records {
		rec := &e.records[i]
		if rec.active && !rec.Exempt && !rec.Destroyed {
			return
		}
	}
	e.allClearedFired = true
	e.events = append(e.events, Event{Kind: EventAllCleared})
}

// ResetClearedLatch re-arms the all-cleared notification for a new rack.
func (e *DamageEngine) ResetClearedLatch() {
	e.allClearedFired = false
}

// DrainEvents returns all queued events and clears the queue.
// The host consumes these once per tick.
func (e *DamageEngine) DrainEvents() []Event {
	if len(e.events) == 0 {
		return nil
	}
	out := e.events
	e.events = nil
	return out
}

// LiveCount returns the number of live, non-destroyed, non-exempt records.
func (e *DamageEngine) LiveCount() int {
	n := 0
	for i := range e.records {
		rec := &e.records[i]
		if rec.active && !rec.Exempt && !rec.Destroyed {
			n++
		}
	}
	return n
}
