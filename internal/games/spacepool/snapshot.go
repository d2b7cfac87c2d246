package spacepool

// Snapshot captures the externally observable game state at one tick.
// Two games stepped identically from the same seed produce equal
// snapshots.
type Snapshot struct {
	Tick           int
	State          string
	Score          int
	Lives          int
	Shots          int
	Rack           int
	BallsLive      int
	CueX, CueY     float64
	AimAngle       float64
	Power          float64
	DestroyedCells int
}

// Snapshot returns the current snapshot.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:           g.tickCount,
		State:          g.state,
		Score:          g.score,
		Lives:          g.lives,
		Shots:          g.shots,
		Rack:           g.rack,
		BallsLive:      g.liveBalls(),
		AimAngle:       normalizeAngle(g.aimAngle),
		Power:          g.power,
		DestroyedCells: g.surface.DestroyedCells(),
	}
	if cue := g.cueBall(); cue != nil {
		s.CueX, s.CueY = cue.Pos.X, cue.Pos.Y
	}
	return s
}
