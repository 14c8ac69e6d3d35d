package pathmgr

// lineManager flies direct legs between consecutive waypoints, switching to
// the next leg when the vehicle crosses the plane bisecting the corner at
// the waypoint it is approaching. It has no persistent state of its own:
// idxA lives on Manager, which is why reset is a no-op.
type lineManager struct{}

func (l *lineManager) reset() {}

func (l *lineManager) tick(m *Manager, pose Pose, cfg Config) Primitive {
	res := m.advanceIndices(pose, cfg)
	if res.done {
		return res.primitive
	}

	n := m.Waypoints.N()
	if cfg.OrbitLast && (m.idxA == n-1 || m.idxA == n-2) {
		return m.last
	}

	from := m.Waypoints.At(m.idxA)
	wim1 := from.W
	wi := m.Waypoints.At(res.idxB).W
	wip1 := m.Waypoints.At(res.idxC).W

	return m.lineLeg(pose, wim1, wi, wip1, from.VaD)
}

// lineLeg builds the straight-line primitive for the leg from wim1 to wi,
// and advances idxA once the vehicle crosses the bisecting plane at wi
// towards wip1. It is shared with the fillet manager's acute-angle and
// too-few-waypoints fallbacks so indices are only ever advanced once per
// tick.
func (m *Manager) lineLeg(pose Pose, wim1, wi, wip1 Vec3, vaD float64) Primitive {
	qim1 := wi.sub(wim1).normalized()
	qi := wip1.sub(wi).normalized()

	ni := qim1.add(qi).normalized()
	if ni == (Vec3{}) {
		ni = qim1
	}

	prim := Primitive{
		Flag: true,
		VaD:  vaD,
		R:    wim1,
		Q:    qim1,
	}

	if beyond(pose.ned(), wi, ni) > 0 {
		m.advanceIdxA()
	}

	return prim
}
