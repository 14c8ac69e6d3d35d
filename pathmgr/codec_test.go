package pathmgr

import (
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

func TestEncodeDecodeWaypointCommandRoundTrips(t *testing.T) {
	cmd := WaypointCommand{N: 100, E: -50, D: -60, ChiD: 1.5, VaD: 18, UseChi: true}
	b, err := msgpack.Marshal(cmd)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := DecodeWaypointCommand(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != cmd {
		t.Fatalf("round-tripped command = %+v, want %+v", got, cmd)
	}
}

func TestEncodePrimitiveNarrowsToFloat32(t *testing.T) {
	p := Primitive{Flag: false, VaD: 18, C: Vec3{100, 200, -50}, Rho: 25, Lamda: -1}
	b, err := EncodePrimitive(p)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(b) == 0 {
		t.Fatal("expected a non-empty payload")
	}
	var got PrimitiveMessage
	if err := msgpack.Unmarshal(b, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.C != ([3]float32{100, 200, -50}) || got.Rho != float32(25) || got.VaD != float32(18) || got.Lamda != -1 {
		t.Fatalf("decoded primitive = %+v, want float32 C=(100,200,-50), Rho=25, VaD=18, Lamda=-1", got)
	}
}

func TestTargetWaypointMessageLLAIsAlwaysFalse(t *testing.T) {
	w := Waypoint{W: Vec3{1, 2, -3}, ChiD: 0.5, VaD: 20}
	msg := targetWaypointMessage(w)
	if msg.LLA {
		t.Fatal("LLA must always be false: this engine never produces geodetic waypoints")
	}
	if msg.W != vec3to32(w.W) {
		t.Fatalf("W = %v, want %v", msg.W, vec3to32(w.W))
	}
}

func TestPoseMessageToPoseWidensToFloat64(t *testing.T) {
	msg := PoseMessage{Pn: 10, Pe: -5, H: 100, Chi: 0.25, Va: 18}
	p := msg.toPose()
	if p.Pn != 10 || p.Pe != -5 || p.H != 100 || p.Chi != 0.25 || p.Va != 18 {
		t.Fatalf("toPose() = %+v, want widened fields matching %+v", p, msg)
	}
}
