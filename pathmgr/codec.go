package pathmgr

import "github.com/vmihailenco/msgpack/v5"

// WaypointCommand is the wire form of a single waypoint insertion, sent by
// a mission planner over UDP. The engine keeps float64 internally; the wire
// codec narrows to float32 at this boundary, matching the external
// interface's "as floats" contract.
type WaypointCommand struct {
	N         float32 `msgpack:"n"`
	E         float32 `msgpack:"e"`
	D         float32 `msgpack:"d"`
	ChiD      float32 `msgpack:"chi_d"`
	VaD       float32 `msgpack:"va_d"`
	UseChi    bool    `msgpack:"use_chi"`
	Temporary bool    `msgpack:"temporary"`
	Clear     bool    `msgpack:"clear"`
}

// PoseMessage is the wire form of one vehicle pose sample.
type PoseMessage struct {
	Pn  float32 `msgpack:"pn"`
	Pe  float32 `msgpack:"pe"`
	H   float32 `msgpack:"h"`
	Chi float32 `msgpack:"chi"`
	Va  float32 `msgpack:"va"`
}

// PrimitiveMessage is the wire form of a Primitive, published once per tick
// for the downstream path follower.
type PrimitiveMessage struct {
	Flag  bool       `msgpack:"flag"`
	VaD   float32    `msgpack:"va_d"`
	R     [3]float32 `msgpack:"r"`
	Q     [3]float32 `msgpack:"q"`
	C     [3]float32 `msgpack:"c"`
	Rho   float32    `msgpack:"rho"`
	Lamda int8       `msgpack:"lamda"`
}

// ToWire converts a Primitive to its wire representation.
func (p Primitive) ToWire() PrimitiveMessage {
	return PrimitiveMessage{
		Flag:  p.Flag,
		VaD:   float32(p.VaD),
		R:     vec3to32(p.R),
		Q:     vec3to32(p.Q),
		C:     vec3to32(p.C),
		Rho:   float32(p.Rho),
		Lamda: p.Lamda,
	}
}

func vec3to32(v Vec3) [3]float32 {
	return [3]float32{float32(v[0]), float32(v[1]), float32(v[2])}
}

// TargetWaypointMessage announces a change of the waypoint the manager is
// currently flying towards, for visualization and telemetry consumers.
type TargetWaypointMessage struct {
	W    [3]float32 `msgpack:"w"`
	VaD  float32    `msgpack:"va_d"`
	ChiD float32    `msgpack:"chi_d"`
	// LLA is always false: this engine never produces geodetic
	// waypoints, the field exists for wire compatibility with
	// collaborators that also publish lat/lon/alt targets.
	LLA bool `msgpack:"lla"`
}

func targetWaypointMessage(w Waypoint) TargetWaypointMessage {
	return TargetWaypointMessage{W: vec3to32(w.W), VaD: float32(w.VaD), ChiD: float32(w.ChiD)}
}

// EncodePrimitive serializes a primitive for transmission.
func EncodePrimitive(p Primitive) ([]byte, error) {
	return msgpack.Marshal(p.ToWire())
}

// DecodeWaypointCommand parses a waypoint command received over UDP.
func DecodeWaypointCommand(b []byte) (WaypointCommand, error) {
	var cmd WaypointCommand
	err := msgpack.Unmarshal(b, &cmd)
	return cmd, err
}

// DecodePoseMessage parses a pose sample received over UDP.
func DecodePoseMessage(b []byte) (PoseMessage, error) {
	var msg PoseMessage
	err := msgpack.Unmarshal(b, &msg)
	return msg, err
}

// EncodeTargetWaypoint serializes a target-waypoint-changed announcement.
func EncodeTargetWaypoint(w Waypoint) ([]byte, error) {
	return msgpack.Marshal(targetWaypointMessage(w))
}

func (p PoseMessage) toPose() Pose {
	return Pose{Pn: float64(p.Pn), Pe: float64(p.Pe), H: float64(p.H), Chi: float64(p.Chi), Va: float64(p.Va)}
}
