package spacepool

import (
	"testing"

	"github.com/tharrisw/SPACEPOOL-sub002/internal/config"
	"github.com/tharrisw/SPACEPOOL-sub002/internal/core"
)

// noTerrain is a terrain mutator for tests that don't care about craters.
func noTerrain(core.Vec2, float64, float64) int { return 0 }

func newTestEngine(t *testing.T) *DamageEngine {
	t.Helper()
	e, err := NewDamageEngine(config.DefaultSpacepoolConfig().Damage, 0.5, noTerrain)
	if err != nil {
		t.Fatalf("NewDamageEngine: %v", err)
	}
	return e
}

func TestNewDamageEngineRequiresTerrain(t *testing.T) {
	if _, err := NewDamageEngine(config.DefaultSpacepoolConfig().Damage, 0.5, nil); err == nil {
		t.Fatal("expected error for nil terrain mutator")
	}
}

func TestApplyDamageArmorMath(t *testing.T) {
	e := newTestEngine(t)
	h := e.Register(KindSolid, 100, 0.25, core.V(1, 1))

	e.ApplyDamage(h, 80, KindCue)

	rec, ok := e.Record(h)
	if !ok {
		t.Fatal("record vanished")
	}
	// 80 raw at 25% armor is 60 effective.
	if rec.Health != 40 {
		t.Errorf("health = %d, want 40", rec.Health)
	}
	if rec.Destroyed {
		t.Error("record should not be destroyed")
	}
}

func TestApplyDamageSameKindMultiplier(t *testing.T) {
	e := newTestEngine(t)

	// Cue hit by cue-kind damage takes a quarter of it.
	cue := e.Register(KindCue, 200, 0, core.V(1, 1))
	e.ApplyDamage(cue, 100, KindCue)
	rec, _ := e.Record(cue)
	if rec.Health != 175 {
		t.Errorf("cue health = %d, want 175", rec.Health)
	}

	// Non-matching kind applies no multiplier.
	solid := e.Register(KindSolid, 100, 0, core.V(2, 2))
	e.ApplyDamage(solid, 30, KindStripe)
	rec, _ = e.Record(solid)
	if rec.Health != 70 {
		t.Errorf("solid health = %d, want 70", rec.Health)
	}
}

func TestDestroyedNotificationFiresOnce(t *testing.T) {
	e := newTestEngine(t)
	h := e.Register(KindSolid, 100, 0, core.V(1, 1))

	e.ApplyDamage(h, 50, KindStripe)
	e.ApplyDamage(h, 50, KindStripe)
	// Extra damage after destruction must be a no-op.
	e.ApplyDamage(h, 50, KindStripe)

	destroys := 0
	for _, ev := range e.DrainEvents() {
		if ev.Kind == EventDestroyed && ev.Handle == h {
			destroys++
		}
	}
	if destroys != 1 {
		t.Errorf("EventDestroyed fired %d times, want 1", destroys)
	}

	rec, ok := e.Record(h)
	if !ok {
		t.Fatal("destroyed record should stay registered until unregistered")
	}
	if rec.Health != 0 || !rec.Destroyed {
		t.Errorf("record = %+v, want health 0 destroyed", rec)
	}
}

func TestPrimaryDestroyedEvent(t *testing.T) {
	e := newTestEngine(t)
	cue := e.Register(KindCue, 10, 0, core.V(1, 1))

	e.ApplyDamage(cue, 50, KindStripe)

	var sawPrimary bool
	for _, ev := range e.DrainEvents() {
		if ev.Kind == EventPrimaryDestroyed {
			sawPrimary = true
		}
	}
	if !sawPrimary {
		t.Error("expected EventPrimaryDestroyed for the cue ball")
	}
}

func TestUnregisteredHandleIsNoOp(t *testing.T) {
	e := newTestEngine(t)
	h := e.Register(KindSolid, 100, 0, core.V(1, 1))
	// A second live ball keeps the table from clearing when h leaves.
	e.Register(KindStripe, 100, 0, core.V(2, 2))
	e.Unregister(h)

	e.ApplyDamage(h, 50, KindStripe)
	e.UpdatePosition(h, core.V(9, 9))
	e.Heal(h, 50)
	e.Unregister(h)

	if _, ok := e.Record(h); ok {
		t.Error("unregistered handle should not resolve")
	}
	if evs := e.DrainEvents(); len(evs) != 0 {
		t.Errorf("got %d events for unregistered handle, want 0", len(evs))
	}
}

func TestCollisionDamageThreshold(t *testing.T) {
	e := newTestEngine(t)
	a := e.Register(KindSolid, 100, 0, core.V(1, 1))
	b := e.Register(KindStripe, 100, 0, core.V(2, 1))

	// Below the minimum impulse: glancing contact, no damage.
	e.ApplyCollisionDamage(a, b, 0.3)
	recA, _ := e.Record(a)
	recB, _ := e.Record(b)
	if recA.Health != 100 || recB.Health != 100 {
		t.Errorf("sub-threshold impulse dealt damage: %d, %d", recA.Health, recB.Health)
	}

	// Above it, both sides take impulse*scale.
	e.ApplyCollisionDamage(a, b, 1.0)
	recA, _ = e.Record(a)
	recB, _ = e.Record(b)
	if recA.Health != 55 || recB.Health != 55 {
		t.Errorf("health after 1.0 impulse = %d, %d, want 55, 55", recA.Health, recB.Health)
	}
}

func TestAreaDamageSkipsSameKindMultiplier(t *testing.T) {
	e := newTestEngine(t)
	// A cue in the blast radius takes full (unmultiplied) area damage;
	// only armor applies.
	cue := e.Register(KindCue, 200, 0.5, core.V(1, 1))
	far := e.Register(KindSolid, 100, 0, core.V(50, 50))

	e.ApplyAreaDamage(core.V(0, 0), 10, 40)

	rec, _ := e.Record(cue)
	if rec.Health != 180 {
		t.Errorf("cue health = %d, want 180", rec.Health)
	}
	rec, _ = e.Record(far)
	if rec.Health != 100 {
		t.Errorf("ball outside radius took damage: %d", rec.Health)
	}
}

func TestVolatileDestructionCratersTerrain(t *testing.T) {
	var craterAt core.Vec2
	var craterRadius float64
	craters := 0
	e, err := NewDamageEngine(config.DefaultSpacepoolConfig().Damage, 0.5,
		func(center core.Vec2, radius, _ float64) int {
			craterAt, craterRadius = center, radius
			craters++
			return 5
		})
	if err != nil {
		t.Fatalf("NewDamageEngine: %v", err)
	}

	h := e.Register(KindVolatile, 100, 0, core.V(7, 3))
	e.UpdatePosition(h, core.V(8, 4))
	e.ApplyDamage(h, 150, KindCue)

	if craters != 1 {
		t.Fatalf("terrain mutator called %d times, want 1", craters)
	}
	if craterAt != core.V(8, 4) {
		t.Errorf("crater at %v, want last position (8,4)", craterAt)
	}
	cfg := config.DefaultSpacepoolConfig().Damage
	if craterRadius != cfg.VolatileRadius {
		t.Errorf("crater radius = %v, want %v", craterRadius, cfg.VolatileRadius)
	}
}

func TestTriggerChargeUsesChargedGeometry(t *testing.T) {
	var craterRadius float64
	e, err := NewDamageEngine(config.DefaultSpacepoolConfig().Damage, 0.5,
		func(_ core.Vec2, radius, _ float64) int {
			craterRadius = radius
			return 0
		})
	if err != nil {
		t.Fatalf("NewDamageEngine: %v", err)
	}

	h := e.Register(KindCharged, 100, 0, core.V(5, 5))
	e.TriggerCharge(h)

	cfg := config.DefaultSpacepoolConfig().Damage
	if craterRadius != cfg.ChargedRadius {
		t.Errorf("crater radius = %v, want %v", craterRadius, cfg.ChargedRadius)
	}

	rec, _ := e.Record(h)
	if !rec.Destroyed {
		t.Error("triggered ball should be destroyed")
	}

	// A second trigger is a no-op.
	craterRadius = 0
	e.TriggerCharge(h)
	if craterRadius != 0 {
		t.Error("repeat trigger fired the terrain mutator again")
	}
}

func TestHeal(t *testing.T) {
	e := newTestEngine(t)
	h := e.Register(KindSolid, 100, 0, core.V(1, 1))

	e.ApplyDamage(h, 30, KindStripe)
	e.Heal(h, 100)
	rec, _ := e.Record(h)
	if rec.Health != 100 {
		t.Errorf("health = %d, want clamped to 100", rec.Health)
	}

	e.ApplyDamage(h, 150, KindStripe)
	e.Heal(h, 100)
	rec, _ = e.Record(h)
	if rec.Health != 0 || !rec.Destroyed {
		t.Error("healing a destroyed record should be a no-op")
	}
}

func TestAllClearedLatch(t *testing.T) {
	e := newTestEngine(t)
	cue := e.Register(KindCue, 200, 0, core.V(1, 1))
	a := e.Register(KindSolid, 100, 0, core.V(2, 2))
	b := e.Register(KindStripe, 100, 0, core.V(3, 3))

	e.ApplyDamage(a, 200, KindCue)
	if sawAllCleared(e.DrainEvents()) {
		t.Fatal("all-cleared fired with a ball remaining")
	}

	// The cue is exempt; destroying the last object ball clears the table.
	e.ApplyDamage(b, 200, KindCue)
	if !sawAllCleared(e.DrainEvents()) {
		t.Fatal("all-cleared did not fire")
	}

	// Latched: registering and destroying another ball does not re-fire
	// until the latch is reset.
	c := e.Register(KindSolid, 100, 0, core.V(4, 4))
	e.ApplyDamage(c, 200, KindCue)
	if sawAllCleared(e.DrainEvents()) {
		t.Fatal("all-cleared re-fired without a latch reset")
	}

	e.ResetClearedLatch()
	d := e.Register(KindSolid, 100, 0, core.V(5, 5))
	e.ApplyDamage(d, 200, KindCue)
	if !sawAllCleared(e.DrainEvents()) {
		t.Fatal("all-cleared did not fire after latch reset")
	}

	_ = cue
}

func TestUnregisterTriggersAllCleared(t *testing.T) {
	e := newTestEngine(t)
	e.Register(KindCue, 200, 0, core.V(1, 1))
	a := e.Register(KindSolid, 100, 0, core.V(2, 2))

	// Pocketing the last object ball deregisters it without destruction.
	e.Unregister(a)
	if !sawAllCleared(e.DrainEvents()) {
		t.Fatal("all-cleared did not fire on deregistration")
	}
}

func sawAllCleared(events []Event) bool {
	for _, ev := range events {
		if ev.Kind == EventAllCleared {
			return true
		}
	}
	return false
}

func TestHandleReuse(t *testing.T) {
	e := newTestEngine(t)
	a := e.Register(KindSolid, 100, 0, core.V(1, 1))
	e.Unregister(a)

	// The slot is recycled, but the recycled handle is a new generation
	// and compares unequal to the stale one.
	b := e.Register(KindStripe, 100, 0, core.V(2, 2))
	if b == a {
		t.Error("recycled slot handed out the same handle generation")
	}
	rec, ok := e.Record(b)
	if !ok || rec.Kind != KindStripe {
		t.Errorf("reused handle has wrong record: %+v", rec)
	}
}

func TestStaleHandleCannotTouchRecycledSlot(t *testing.T) {
	e := newTestEngine(t)
	stale := e.Register(KindSolid, 100, 0, core.V(1, 1))
	e.Unregister(stale)

	fresh := e.Register(KindStripe, 100, 0, core.V(2, 2))
	e.DrainEvents()

	// Every mutation through the stale handle must leave the new record
	// alone.
	e.ApplyDamage(stale, 50, KindCue)
	e.UpdatePosition(stale, core.V(9, 9))
	e.Heal(stale, 50)
	e.TriggerCharge(stale)
	e.Unregister(stale)

	if _, ok := e.Record(stale); ok {
		t.Error("stale handle resolved after its slot was recycled")
	}
	rec, ok := e.Record(fresh)
	if !ok {
		t.Fatal("fresh record vanished")
	}
	if rec.Health != 100 || rec.Destroyed || rec.LastPos != core.V(2, 2) {
		t.Errorf("stale handle mutated the recycled slot: %+v", rec)
	}
	if evs := e.DrainEvents(); len(evs) != 0 {
		t.Errorf("stale handle produced %d events, want 0", len(evs))
	}
}
