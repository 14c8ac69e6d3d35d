package pathmgr

// indexResult is the outcome of advancing the waypoint-sequencer indices for
// one tick: the next two waypoints along the route, or a fully-formed
// primitive when the sequencer itself must short-circuit the tick (the
// orbit_last terminal case).
type indexResult struct {
	idxB, idxC int

	done      bool
	primitive Primitive
}

// advanceIndices derives idxB (the waypoint currently being approached) and
// idxC (the one after it) from the manager's idxA, handling list wraparound,
// temporary-waypoint consumption, and the orbit_last terminal case. It is
// shared by the line and fillet managers; the Dubins manager advances idxA
// directly instead, since it reasons about configurations rather than legs.
func (m *Manager) advanceIndices(pose Pose, cfg Config) indexResult {
	if m.Waypoints.temporary && m.idxA == 1 {
		m.Waypoints.popFront()
		m.idxA = 0
		n := m.Waypoints.N()
		idxB, idxC := 1%n, 2%n
		m.publishTarget(idxB)
		return indexResult{idxB: idxB, idxC: idxC}
	}

	n := m.Waypoints.N()

	if m.idxA == n-1 {
		if cfg.OrbitLast {
			wp := m.Waypoints.At(m.idxA)
			p := Primitive{
				Flag:  false,
				VaD:   wp.VaD,
				C:     wp.W,
				Rho:   cfg.RMin,
				Lamda: m.orbitDirection(pose, wp.W[0], wp.W[1]),
			}
			return indexResult{idxB: 0, idxC: 1, done: true, primitive: p}
		}
		return indexResult{idxB: 0, idxC: 1}
	}

	if m.idxA == n-2 {
		return indexResult{idxB: n - 1, idxC: 0}
	}

	return indexResult{idxB: m.idxA + 1, idxC: m.idxA + 2}
}

// advanceIdxA moves idxA on to the waypoint the vehicle has just reached,
// wrapping to 0 at the end of the list, and publishes the new target (the
// waypoint after the new idxA).
func (m *Manager) advanceIdxA() {
	n := m.Waypoints.N()
	if m.idxA == n-1 {
		m.idxA = 0
	} else {
		m.idxA++
	}
	m.publishTarget(m.nextLegEnd())
}
