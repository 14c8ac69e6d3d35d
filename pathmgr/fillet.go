package pathmgr

import "math"

type filletState int

const (
	filletStraight filletState = iota
	filletTransition
	filletOrbit
)

// filletManager rounds corners between line legs with a minimum-radius
// orbit arc instead of flying straight through each waypoint. It falls back
// to the line manager when there are too few waypoints to fillet, or when a
// corner is too acute for R_min to fit inside it.
type filletManager struct {
	state filletState
}

func (f *filletManager) reset() { f.state = filletStraight }

func (f *filletManager) tick(m *Manager, pose Pose, cfg Config) Primitive {
	n := m.Waypoints.N()
	if n < 3 {
		return m.line.tick(m, pose, cfg)
	}

	res := m.advanceIndices(pose, cfg)
	if res.done {
		return res.primitive
	}
	if cfg.OrbitLast && m.idxA == n-1 {
		return m.last
	}

	from := m.Waypoints.At(m.idxA)
	wim1 := from.W
	wi := m.Waypoints.At(res.idxB).W
	wip1 := m.Waypoints.At(res.idxC).W

	legIn := wi.sub(wim1)
	legOut := wip1.sub(wi)
	distIn, distOut := legIn.norm(), legOut.norm()
	qim1 := legIn.normalized()
	qi := legOut.normalized()

	varrho := math.Acos(-qim1.dot(qi))
	maxR := math.Min(distIn, distOut) * math.Sin(varrho/2)

	if cfg.RMin > maxR {
		if m.Logger != nil {
			m.Logger.WarnRateLimited("fillet-too-acute",
				"corner too acute for the minimum turn radius, falling back to line management",
				"max_r", maxR, "r_min", cfg.RMin)
		}
		if cfg.OrbitLast && m.idxA == n-2 {
			return m.last
		}
		return m.lineLeg(pose, wim1, wi, wip1, from.VaD)
	}

	p := pose.ned()

	switch f.state {
	case filletStraight:
		prim := Primitive{Flag: true, VaD: from.VaD, R: wim1, Q: qim1}
		z := wi.sub(qim1.scale(cfg.RMin / math.Tan(varrho/2)))
		if beyond(p, z, qim1) > 0 {
			if qi.equal(qim1) {
				m.advanceIdxA()
				return prim
			}
			f.state = filletTransition
		}
		return prim

	case filletTransition:
		c := wi.sub(qim1.sub(qi).normalized().scale(cfg.RMin / math.Sin(varrho/2)))
		prim := Primitive{
			Flag:  false,
			VaD:   from.VaD,
			R:     wim1,
			Q:     qi,
			C:     c,
			Rho:   cfg.RMin,
			Lamda: filletLamda(qim1, qi),
		}
		if cfg.OrbitLast && m.idxA == n-2 {
			m.idxA++
			m.publishTarget(m.idxA)
			f.state = filletStraight
			return prim
		}
		z := wi.add(qi.scale(cfg.RMin / math.Tan(varrho/2)))
		if beyond(p, z, qi) < 0 {
			f.state = filletOrbit
		}
		return prim

	default: // filletOrbit
		c := wi.sub(qim1.sub(qi).normalized().scale(cfg.RMin / math.Sin(varrho/2)))
		prim := Primitive{
			Flag:  false,
			VaD:   from.VaD,
			R:     wim1,
			Q:     qi,
			C:     c,
			Rho:   cfg.RMin,
			Lamda: filletLamda(qim1, qi),
		}
		z := wi.add(qi.scale(cfg.RMin / math.Tan(varrho/2)))
		if beyond(p, z, qi) > 0 {
			m.advanceIdxA()
			f.state = filletStraight
		}
		return prim
	}
}

func filletLamda(qim1, qi Vec3) int8 {
	if cross2(qim1, qi) > 0 {
		return 1
	}
	return -1
}
