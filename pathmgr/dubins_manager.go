package pathmgr

type dubinState int

const (
	dubinFirst dubinState = iota
	dubinBeforeH1
	dubinBeforeH1WrongSide
	dubinStraight
	dubinBeforeH3
	dubinBeforeH3WrongSide
)

// dubinsManager flies Dubins paths between waypoints that require a
// specific course at the waypoint itself, rather than merely passing near
// it. A path is solved once per leg and then followed by tracking which of
// its three half-planes the vehicle has crossed.
type dubinsManager struct {
	state dubinState
	path  DubinsPath
}

func (d *dubinsManager) reset() { d.state = dubinFirst }

func (d *dubinsManager) tick(m *Manager, pose Pose, cfg Config) Primitive {
	p := pose.ned()
	vaD := m.Waypoints.At(m.idxA).VaD

	if d.state == dubinFirst {
		d.plan(m, cfg, m.idxA, m.nextLegEnd())
		d.state = d.sideOfH1(p)
	}

	switch d.state {
	case dubinBeforeH1, dubinBeforeH1WrongSide:
		prim := Primitive{
			Flag:  false,
			VaD:   vaD,
			C:     d.path.Cs,
			Rho:   d.path.R,
			Lamda: d.path.Lams,
		}
		if d.state == dubinBeforeH1 {
			if d.path.H1(p) >= 0 {
				d.state = dubinStraight
			}
		} else if d.path.H1(p) < 0 {
			d.state = dubinBeforeH1
		}
		return prim

	case dubinStraight:
		prim := Primitive{
			Flag: true,
			VaD:  vaD,
			R:    d.path.W1,
			Q:    d.path.Q1,
		}
		if d.path.H2(p) >= 0 {
			d.state = d.sideOfH3(p)
		}
		return prim

	default: // dubinBeforeH3, dubinBeforeH3WrongSide
		prim := Primitive{
			Flag:  false,
			VaD:   vaD,
			C:     d.path.Ce,
			Rho:   d.path.R,
			Lamda: d.path.Lame,
		}
		if d.state == dubinBeforeH3 {
			if d.path.H3(p) >= 0 {
				idxB := m.dubinsAdvance()
				d.plan(m, cfg, m.idxA, idxB)
				d.state = d.sideOfH1(p)
			}
		} else if d.path.H3(p) < 0 {
			d.state = dubinBeforeH3
		}
		return prim
	}
}

// plan solves the Dubins path for the leg from waypoint idxA to waypoint
// idxB. A solve failure (configurations closer than 2*R) leaves the
// previous path in place and is reported through the logger; the manager
// keeps following the stale path, and the next solve is attempted only at
// the next FIRST entry or H3 crossing.
func (d *dubinsManager) plan(m *Manager, cfg Config, idxA, idxB int) {
	start := m.Waypoints.At(idxA)
	end := m.Waypoints.At(idxB)
	path, err := SolveDubins(start.W, start.ChiD, end.W, end.ChiD, cfg.RMin)
	if m.Metrics != nil {
		m.Metrics.DubinsSolves.Inc()
	}
	if err != nil {
		if m.Metrics != nil {
			m.Metrics.DubinsFailures.Inc()
		}
		if m.Logger != nil {
			m.Logger.WarnRateLimited("dubins-solve-failed", "failed to solve dubins path", "error", err)
		}
		return
	}
	d.path = path
}

func (d *dubinsManager) sideOfH1(p Vec3) dubinState {
	if d.path.H1(p) >= 0 {
		return dubinBeforeH1WrongSide
	}
	return dubinBeforeH1
}

func (d *dubinsManager) sideOfH3(p Vec3) dubinState {
	if d.path.H3(p) >= 0 {
		return dubinBeforeH3WrongSide
	}
	return dubinBeforeH3
}

// nextLegEnd returns the waypoint index that terminates the leg currently
// departing idxA, with the same end-of-list wraparound as advanceIndices.
// Strategy swaps (engage) re-enter dubinFirst at whatever idxA the
// dispatcher happens to be on, not necessarily 0, so this cannot be a
// literal waypoint-1 like the reference implementation's always-first-leg
// solve.
func (m *Manager) nextLegEnd() int {
	n := m.Waypoints.N()
	if m.idxA == n-1 {
		return 0
	}
	return m.idxA + 1
}

// dubinsAdvance moves idxA to the next leg's start, returning the index of
// the waypoint that terminates it. It mirrors advanceIndices' wraparound
// but, unlike the line and fillet managers, the Dubins manager needs the
// new idxB immediately to solve the next path rather than on the following
// tick.
func (m *Manager) dubinsAdvance() int {
	n := m.Waypoints.N()
	var idxB int
	switch {
	case m.idxA == n-1:
		m.idxA = 0
		idxB = 1
	case m.idxA == n-2:
		m.idxA++
		idxB = 0
	default:
		m.idxA++
		idxB = m.idxA + 1
	}
	m.publishTarget(idxB)
	return idxB
}
