package pathmgr

import (
	"math"
	"time"
)

// startupGrace is how long the dispatcher withholds the no-waypoints orbit
// primitive after construction, per spec.md Scenario 1.
const startupGrace = 10 * time.Second

// pathStrategy is the capability shared by the line, fillet, and Dubins
// managers: produce a primitive for this tick, and discard any internal
// state when the dispatcher swaps strategies out from under it.
type pathStrategy interface {
	tick(m *Manager, pose Pose, cfg Config) Primitive
	reset()
}

// TargetChangeFunc is invoked once per logical change of the active target
// waypoint (the "target waypoint changed" marker of spec.md 4.C/4.G).
type TargetChangeFunc func(Waypoint)

// Manager is the top-level dispatcher: it owns the waypoint list, the
// index-sequencer state, the cached orbit direction, and the active
// line/fillet/Dubins strategy, and produces one Primitive per Tick call.
//
// Manager is not safe for concurrent use; callers must serialize waypoint
// mutation with Tick (see the inbox in transport.go).
type Manager struct {
	Waypoints WaypointList

	idxA int

	orbitDir   int8 // sticky: 0 means uncomputed
	wpCategory int  // 0, 1, or 2 (meaning >=2), tracks N to know when to reset orbitDir

	start time.Time

	hasPrimitive bool
	last         Primitive

	line   *lineManager
	fillet *filletManager
	dubins *dubinsManager
	active pathStrategy

	OnTargetChanged TargetChangeFunc
	Logger          *Logger
	Metrics         *Metrics
}

// NewManager constructs a Manager with an empty waypoint list. now is the
// instant construction occurs, used to gate the no-waypoints grace period.
func NewManager(now time.Time, logger *Logger) *Manager {
	m := &Manager{start: now, Logger: logger}
	m.line = &lineManager{}
	m.fillet = &filletManager{}
	m.dubins = &dubinsManager{}
	return m
}

func (m *Manager) publishTarget(idx int) {
	m.Metrics.ObserveTransition()
	if m.OnTargetChanged != nil && idx >= 0 && idx < m.Waypoints.N() {
		m.OnTargetChanged(m.Waypoints.At(idx))
	}
}

// Tick advances the dispatcher by one pose sample and returns the path
// primitive to hand to the follower. now is used only to evaluate the
// no-waypoints startup grace period.
func (m *Manager) Tick(pose Pose, cfg Config, now time.Time) Primitive {
	n := m.Waypoints.N()
	m.syncCategory(n)

	var p Primitive
	var strategy string
	switch {
	case n == 0:
		p, strategy = m.tickEmpty(pose, cfg, now), "empty"
	case n == 1:
		p, strategy = m.tickSingle(pose, cfg), "single"
	case m.Waypoints.At(m.idxA).UseChi:
		m.engage(m.dubins)
		p, strategy = m.dubins.tick(m, pose, cfg), "dubins"
		m.remember(p)
	default:
		m.engage(m.fillet)
		p, strategy = m.fillet.tick(m, pose, cfg), "fillet"
		m.remember(p)
	}
	m.Metrics.Observe(strategy, m.idxA, p)
	return p
}

// syncCategory resets the sticky orbit direction whenever the waypoint
// count crosses the {0}, {1}, {>=2} boundaries (spec.md Design Notes, 9).
func (m *Manager) syncCategory(n int) {
	cat := 2
	if n == 0 {
		cat = 0
	} else if n == 1 {
		cat = 1
	}
	if cat != m.wpCategory {
		m.orbitDir = 0
	}
	m.wpCategory = cat
}

// engage swaps in s as the active strategy, discarding the previous
// strategy's internal state if it differs.
func (m *Manager) engage(s pathStrategy) {
	if m.active != s {
		s.reset()
		m.active = s
	}
}

func (m *Manager) remember(p Primitive) {
	m.last = p
	m.hasPrimitive = true
}

// tickEmpty implements spec.md 4.G rule 1: hold the previous primitive
// during the startup grace period, then orbit the origin.
func (m *Manager) tickEmpty(pose Pose, cfg Config, now time.Time) Primitive {
	if now.Sub(m.start) < startupGrace {
		return m.last
	}
	if m.Logger != nil {
		m.Logger.WarnRateLimited("no-waypoints-grace", "no waypoints received, orbiting origin",
			"default_altitude", cfg.DefaultAltitude)
	}
	p := Primitive{
		Flag:  false,
		VaD:   cfg.DefaultAirspeed,
		C:     Vec3{0, 0, -cfg.DefaultAltitude},
		Rho:   cfg.RMin,
		Lamda: 1,
	}
	m.remember(p)
	return p
}

// tickSingle implements spec.md 4.G rule 2: orbit the sole waypoint.
func (m *Manager) tickSingle(pose Pose, cfg Config) Primitive {
	wp := m.Waypoints.At(0)
	p := Primitive{
		Flag:  false,
		VaD:   wp.VaD,
		C:     wp.W,
		Rho:   cfg.RMin,
		Lamda: m.orbitDirection(pose, wp.W[0], wp.W[1]),
	}
	m.remember(p)
	return p
}

// orbitDirection implements spec.md 4.G: the cheapest direction to orbit a
// point, cached so the choice never oscillates for a given center.
func (m *Manager) orbitDirection(pose Pose, cN, cE float64) int8 {
	if m.orbitDir != 0 {
		return m.orbitDir
	}
	d := Vec3{pose.Pn - cN, pose.Pe - cE, 0}
	course := Vec3{math.Sin(pose.Chi), math.Cos(pose.Chi), 0}
	if cross2(d, course) >= 0 {
		m.orbitDir = 1
	} else {
		m.orbitDir = -1
	}
	return m.orbitDir
}
