package pathmgr

import (
	"testing"
	"time"
)

func TestManagerHoldsLastPrimitiveDuringStartupGrace(t *testing.T) {
	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	m := NewManager(start, nil)
	cfg := Config{RMin: 30, DefaultAltitude: 100, DefaultAirspeed: 18}

	got := m.Tick(Pose{}, cfg, start.Add(2*time.Second))
	if got != (Primitive{}) {
		t.Fatalf("primitive during grace period = %v, want the zero value (nothing published yet)", got)
	}
}

func TestManagerOrbitsOriginAfterGracePeriod(t *testing.T) {
	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	m := NewManager(start, nil)
	cfg := Config{RMin: 30, DefaultAltitude: 100, DefaultAirspeed: 18}

	got := m.Tick(Pose{Pn: 500, Pe: 0, Chi: 0}, cfg, start.Add(11*time.Second))

	if got.Flag {
		t.Fatal("expected an orbit primitive with no waypoints loaded")
	}
	if got.C != (Vec3{0, 0, -100}) {
		t.Fatalf("orbit center = %v, want the origin at -default_altitude", got.C)
	}
	if got.Rho != 30 {
		t.Fatalf("Rho = %v, want R_min (30)", got.Rho)
	}
	if got.Lamda != 1 {
		t.Fatalf("Lamda = %d, want 1 (clockwise)", got.Lamda)
	}
	if got.VaD != 18 {
		t.Fatalf("VaD = %v, want default_airspeed (18)", got.VaD)
	}
}

func TestManagerOrbitsSoleWaypointWithStickyDirection(t *testing.T) {
	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	m := NewManager(start, nil)
	m.Waypoints.Append(Waypoint{W: Vec3{100, 0, -60}, VaD: 17})
	cfg := Config{RMin: 25}

	p1 := m.Tick(Pose{Pn: 0, Pe: 0, Chi: 0}, cfg, start)
	if p1.Flag {
		t.Fatal("expected an orbit primitive for a single waypoint")
	}
	if p1.C != (Vec3{100, 0, -60}) {
		t.Fatalf("orbit center = %v, want the sole waypoint", p1.C)
	}

	// Approaching from a very different heading must not flip the cached
	// orbit direction once it has been chosen.
	p2 := m.Tick(Pose{Pn: 200, Pe: 50, Chi: 3.0}, cfg, start.Add(time.Second))
	if p2.Lamda != p1.Lamda {
		t.Fatalf("orbit direction changed from %d to %d across ticks", p1.Lamda, p2.Lamda)
	}
}

func TestManagerResetsOrbitDirectionWhenWaypointCountChangesCategory(t *testing.T) {
	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	m := NewManager(start, nil)
	m.Waypoints.Append(Waypoint{W: Vec3{100, 0, -60}, VaD: 17})
	cfg := Config{RMin: 25}

	m.Tick(Pose{Pn: 0, Pe: 0, Chi: 0}, cfg, start)
	if m.orbitDir == 0 {
		t.Fatal("expected orbitDir to be cached after the first tick")
	}

	m.Waypoints.Append(Waypoint{W: Vec3{200, 100, -60}, VaD: 17})
	m.Tick(Pose{Pn: 0, Pe: 0, Chi: 0}, cfg, start)
	// Category moved from 1 (single) to 2 (>=2, engaging fillet/line);
	// orbitDir must have been invalidated at the boundary crossing even
	// though the new path no longer orbits a point directly.
	if m.wpCategory != 2 {
		t.Fatalf("wpCategory = %d, want 2", m.wpCategory)
	}
	if m.orbitDir != 0 {
		t.Fatalf("orbitDir = %d after crossing into the >=2 category, want 0 (reset)", m.orbitDir)
	}
}

func TestManagerEngageResetsStrategyOnSwitch(t *testing.T) {
	m := newTestManager()
	m.fillet = &filletManager{state: filletOrbit}
	m.dubins = &dubinsManager{state: dubinStraight}

	m.engage(m.fillet)
	if m.fillet.state != filletStraight {
		t.Fatalf("fillet state = %v, want reset to filletStraight on engage", m.fillet.state)
	}

	m.engage(m.fillet) // engaging the same strategy again must not reset it
	m.fillet.state = filletOrbit
	m.engage(m.fillet)
	if m.fillet.state != filletOrbit {
		t.Fatal("re-engaging the already-active strategy should not reset its state")
	}
}
