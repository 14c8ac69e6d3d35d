package pathmgr

import (
	"fmt"
	"math"
)

// DubinsPath is the shortest CSC (circle-straight-circle) path connecting
// two oriented configurations at a fixed minimum turn radius.
type DubinsPath struct {
	Cs, Ce     Vec3    // start-arc, end-arc centers
	Lams, Lame int8    // turn directions, +1 clockwise
	W1, W2     Vec3    // straight-segment entry, exit
	Q1         Vec3    // straight-segment unit direction
	W3         Vec3    // terminal point (= end position)
	Q3         Vec3    // terminal unit direction
	R          float64 // turn radius used
	L          float64 // total path length
}

// H1 is the half-plane (W1, Q1): entry to the straight segment.
func (d DubinsPath) H1(p Vec3) float64 { return beyond(p, d.W1, d.Q1) }

// H2 is the half-plane (W2, Q1): exit of the straight segment.
func (d DubinsPath) H2(p Vec3) float64 { return beyond(p, d.W2, d.Q1) }

// H3 is the half-plane (W3, Q3): arrival at the end configuration.
func (d DubinsPath) H3(p Vec3) float64 { return beyond(p, d.W3, d.Q3) }

// ErrDubinsTooClose is returned when the two configurations are closer than
// 2R and no CSC path can be constructed.
type ErrDubinsTooClose struct {
	Dist, MinDist float64
}

func (e ErrDubinsTooClose) Error() string {
	return fmt.Sprintf("dubins: distance between configurations %.3f is below the required minimum %.3f (2*R)", e.Dist, e.MinDist)
}

// SolveDubins computes the shortest of the four CSC candidates (RSR, RSL,
// LSR, LSL, in that tie-breaking order) connecting (startPos, startChi) to
// (endPos, endChi) with turn radius R. On failure it returns the zero value
// and an error; callers must leave any previously computed path untouched.
func SolveDubins(startPos Vec3, startChi float64, endPos Vec3, endChi float64, R float64) (DubinsPath, error) {
	dn, de := endPos[0]-startPos[0], endPos[1]-startPos[1]
	if dist := math.Hypot(dn, de); dist < 2*R {
		return DubinsPath{}, ErrDubinsTooClose{Dist: dist, MinDist: 2 * R}
	}

	e1 := Vec3{1, 0, 0}

	crs := startPos.add(rotZ(startChi + math.Pi/2).apply(e1).scale(R))
	cls := startPos.add(rotZ(startChi - math.Pi/2).apply(e1).scale(R))
	cre := endPos.add(rotZ(endChi + math.Pi/2).apply(e1).scale(R))
	cle := endPos.add(rotZ(endChi - math.Pi/2).apply(e1).scale(R))

	const sentinel = 9999.0

	// RSR
	thetaRSR := math.Atan2(cre[1]-crs[1], cre[0]-crs[0])
	lenRSR := cre.sub(crs).norm() +
		R*mo(twoPi+mo(thetaRSR-math.Pi/2)-mo(startChi-math.Pi/2)) +
		R*mo(twoPi+mo(endChi-math.Pi/2)-mo(thetaRSR-math.Pi/2))

	// RSL
	var lenRSL, thetaRSL2 float64
	ellRSL := cle.sub(crs).norm()
	thetaRSL := math.Atan2(cle[1]-crs[1], cle[0]-crs[0])
	if ellRSL <= 2*R {
		lenRSL = sentinel
	} else {
		thetaRSL2 = thetaRSL - math.Pi/2 + math.Asin(2*R/ellRSL)
		lenRSL = math.Sqrt(ellRSL*ellRSL-4*R*R) +
			R*mo(twoPi+mo(thetaRSL2)-mo(startChi-math.Pi/2)) +
			R*mo(twoPi+mo(thetaRSL2+math.Pi)-mo(endChi+math.Pi/2))
	}

	// LSR
	var lenLSR, thetaLSR2 float64
	ellLSR := cre.sub(cls).norm()
	thetaLSR := math.Atan2(cre[1]-cls[1], cre[0]-cls[0])
	if ellLSR <= 2*R {
		lenLSR = sentinel
	} else {
		thetaLSR2 = math.Acos(2 * R / ellLSR)
		lenLSR = math.Sqrt(ellLSR*ellLSR-4*R*R) +
			R*mo(twoPi+mo(startChi+math.Pi/2)-mo(thetaLSR+thetaLSR2)) +
			R*mo(twoPi+mo(endChi-math.Pi/2)-mo(thetaLSR+thetaLSR2-math.Pi))
	}

	// LSL
	thetaLSL := math.Atan2(cle[1]-cls[1], cle[0]-cls[0])
	lenLSL := cle.sub(cls).norm() +
		R*mo(twoPi+mo(startChi+math.Pi/2)-mo(thetaLSL+math.Pi/2)) +
		R*mo(twoPi+mo(thetaLSL+math.Pi/2)-mo(endChi+math.Pi/2))

	idx := 1
	L := lenRSR
	if lenRSL < L {
		L = lenRSL
		idx = 2
	}
	if lenLSR < L {
		L = lenLSR
		idx = 3
	}
	if lenLSL < L {
		L = lenLSL
		idx = 4
	}

	path := DubinsPath{R: R, L: L}
	switch idx {
	case 1: // RSR
		path.Cs, path.Lams = crs, 1
		path.Ce, path.Lame = cre, 1
		path.Q1 = cre.sub(crs).normalized()
		path.W1 = path.Cs.add(rotZ(-math.Pi / 2).apply(path.Q1).scale(R))
		path.W2 = path.Ce.add(rotZ(-math.Pi / 2).apply(path.Q1).scale(R))
	case 2: // RSL
		path.Cs, path.Lams = crs, 1
		path.Ce, path.Lame = cle, -1
		path.Q1 = rotZ(thetaRSL2 + math.Pi/2).apply(e1)
		path.W1 = path.Cs.add(rotZ(thetaRSL2).apply(e1).scale(R))
		path.W2 = path.Ce.add(rotZ(thetaRSL2 + math.Pi).apply(e1).scale(R))
	case 3: // LSR
		path.Cs, path.Lams = cls, -1
		path.Ce, path.Lame = cre, 1
		path.Q1 = rotZ(thetaLSR + thetaLSR2 - math.Pi/2).apply(e1)
		path.W1 = path.Cs.add(rotZ(thetaLSR + thetaLSR2).apply(e1).scale(R))
		path.W2 = path.Ce.add(rotZ(thetaLSR + thetaLSR2 - math.Pi).apply(e1).scale(R))
	case 4: // LSL
		path.Cs, path.Lams = cls, -1
		path.Ce, path.Lame = cle, -1
		path.Q1 = cle.sub(cls).normalized()
		path.W1 = path.Cs.add(rotZ(math.Pi / 2).apply(path.Q1).scale(R))
		path.W2 = path.Ce.add(rotZ(math.Pi / 2).apply(path.Q1).scale(R))
	}
	path.W3 = endPos
	path.Q3 = rotZ(endChi).apply(e1)

	return path, nil
}
