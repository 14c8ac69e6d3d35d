package pathmgr

import (
	"context"
	"fmt"
	"net"
	"sync"
)

// TransportConfig controls the UDP listener and sender pair the CLI wires
// up around a Manager.
type TransportConfig struct {
	PoseAddr       string `json:"pose_addr"`        // where the vehicle publishes pose samples
	CommandAddr    string `json:"command_addr"`     // where waypoint commands are received
	PrimitiveAddr  string `json:"primitive_addr"`   // where primitives are sent for the follower
	TargetAddr     string `json:"target_addr"`      // where target-waypoint-changed announcements are sent
	ReadBufferSize int    `json:"read_buffer_size"`
}

// inbox holds the most recent pose sample and any waypoint commands
// received between ticks, guarded by a mutex so the UDP receive goroutines
// never race with the tick loop's drain.
type inbox struct {
	mu       sync.Mutex
	pose     Pose
	hasPose  bool
	commands []WaypointCommand
}

func (b *inbox) putPose(p Pose) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pose = p
	b.hasPose = true
}

func (b *inbox) putCommand(c WaypointCommand) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.commands = append(b.commands, c)
}

// drain returns the latest pose and all queued commands, clearing the
// command queue. It must be called once at the start of every tick.
func (b *inbox) drain() (Pose, bool, []WaypointCommand) {
	b.mu.Lock()
	defer b.mu.Unlock()
	cmds := b.commands
	b.commands = nil
	return b.pose, b.hasPose, cmds
}

// applyCommand mutates the waypoint list per a received WaypointCommand.
// Clear takes precedence over insertion; Temporary, after the append, flags
// list element 0 (the new waypoint only when the list was empty) as
// consumable once the vehicle reaches waypoint index 1.
func applyCommand(list *WaypointList, c WaypointCommand) {
	if c.Clear {
		list.Clear()
		return
	}
	list.Append(Waypoint{
		W:      Vec3{float64(c.N), float64(c.E), float64(c.D)},
		ChiD:   float64(c.ChiD),
		VaD:    float64(c.VaD),
		UseChi: c.UseChi,
	})
	if c.Temporary {
		list.MarkTemporary()
	}
}

// listenPose spawns a goroutine that decodes pose samples from a UDP socket
// into box, until ctx is canceled.
func listenPose(ctx context.Context, addr string, bufSize int, box *inbox) error {
	conn, err := listenUDP(addr)
	if err != nil {
		return fmt.Errorf("pose listener: %w", err)
	}
	if bufSize <= 0 {
		bufSize = 512
	}
	go func() {
		<-ctx.Done()
		conn.Close()
	}()
	go func() {
		buf := make([]byte, bufSize)
		for {
			n, _, err := conn.ReadFromUDP(buf)
			if err != nil {
				return
			}
			msg, err := DecodePoseMessage(buf[:n])
			if err != nil {
				continue
			}
			box.putPose(msg.toPose())
		}
	}()
	return nil
}

// listenCommands spawns a goroutine that decodes waypoint commands from a
// UDP socket into box, until ctx is canceled.
func listenCommands(ctx context.Context, addr string, bufSize int, box *inbox) error {
	conn, err := listenUDP(addr)
	if err != nil {
		return fmt.Errorf("command listener: %w", err)
	}
	if bufSize <= 0 {
		bufSize = 512
	}
	go func() {
		<-ctx.Done()
		conn.Close()
	}()
	go func() {
		buf := make([]byte, bufSize)
		for {
			n, _, err := conn.ReadFromUDP(buf)
			if err != nil {
				return
			}
			cmd, err := DecodeWaypointCommand(buf[:n])
			if err != nil {
				continue
			}
			box.putCommand(cmd)
		}
	}()
	return nil
}

func listenUDP(addr string) (*net.UDPConn, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, err
	}
	return net.ListenUDP("udp", udpAddr)
}

// PrimitiveSender publishes primitives and target-waypoint-changed
// announcements over UDP.
type PrimitiveSender struct {
	primitiveConn *net.UDPConn
	targetConn    *net.UDPConn
}

// NewPrimitiveSender dials the primitive and target-waypoint UDP addresses.
// Either address may be empty, in which case that channel is disabled.
func NewPrimitiveSender(cfg TransportConfig) (*PrimitiveSender, error) {
	s := &PrimitiveSender{}
	if cfg.PrimitiveAddr != "" {
		conn, err := dialUDP(cfg.PrimitiveAddr)
		if err != nil {
			return nil, fmt.Errorf("primitive sender: %w", err)
		}
		s.primitiveConn = conn
	}
	if cfg.TargetAddr != "" {
		conn, err := dialUDP(cfg.TargetAddr)
		if err != nil {
			return nil, fmt.Errorf("target sender: %w", err)
		}
		s.targetConn = conn
	}
	return s, nil
}

func dialUDP(addr string) (*net.UDPConn, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, err
	}
	return net.DialUDP("udp", nil, udpAddr)
}

// Close releases both UDP sockets.
func (s *PrimitiveSender) Close() error {
	if s == nil {
		return nil
	}
	var err error
	if s.primitiveConn != nil {
		err = s.primitiveConn.Close()
	}
	if s.targetConn != nil {
		if e := s.targetConn.Close(); err == nil {
			err = e
		}
	}
	return err
}

// SendPrimitive encodes and transmits p, ignoring send errors: a dropped
// UDP datagram is superseded by next tick's primitive regardless.
func (s *PrimitiveSender) SendPrimitive(p Primitive) {
	if s == nil || s.primitiveConn == nil {
		return
	}
	b, err := EncodePrimitive(p)
	if err != nil {
		return
	}
	_, _ = s.primitiveConn.Write(b)
}

// SendTarget encodes and transmits a target-waypoint-changed announcement.
func (s *PrimitiveSender) SendTarget(w Waypoint) {
	if s == nil || s.targetConn == nil {
		return
	}
	b, err := EncodeTargetWaypoint(w)
	if err != nil {
		return
	}
	_, _ = s.targetConn.Write(b)
}
