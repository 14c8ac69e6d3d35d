package pathmgr

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

// Run wires a Manager to UDP transport and, if enabled, a Prometheus HTTP
// endpoint, and drives its tick loop at cfg.Hz until ctx is canceled. It
// returns the first error encountered by any of its goroutines.
func Run(ctx context.Context, cfg AppConfig, logger *Logger) error {
	metrics, err := NewMetrics(nil)
	if err != nil {
		return err
	}

	box := &inbox{}
	if err := listenPose(ctx, cfg.Transport.PoseAddr, cfg.Transport.ReadBufferSize, box); err != nil {
		return err
	}
	if cfg.Transport.CommandAddr != "" {
		if err := listenCommands(ctx, cfg.Transport.CommandAddr, cfg.Transport.ReadBufferSize, box); err != nil {
			return err
		}
	}

	sender, err := NewPrimitiveSender(cfg.Transport)
	if err != nil {
		return err
	}
	defer sender.Close()

	mgr := NewManager(time.Now(), logger)
	mgr.Metrics = metrics
	mgr.OnTargetChanged = func(w Waypoint) { sender.SendTarget(w) }

	eg, ctx := errgroup.WithContext(ctx)

	if cfg.Metrics.Enabled {
		eg.Go(func() error { return serveMetrics(ctx, cfg.Metrics.Addr) })
	}

	eg.Go(func() error { return tickLoop(ctx, cfg, box, sender, mgr) })

	return eg.Wait()
}

func serveMetrics(ctx context.Context, addr string) error {
	if addr == "" {
		addr = "127.0.0.1:9107"
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	server := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		_ = server.Close()
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func tickLoop(ctx context.Context, cfg AppConfig, box *inbox, sender *PrimitiveSender, mgr *Manager) error {
	dtTarget := time.Duration(float64(time.Second) / cfg.Hz)
	ticker := time.NewTicker(dtTarget)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			pose, hasPose, commands := box.drain()
			for _, c := range commands {
				applyCommand(&mgr.Waypoints, c)
			}
			if !hasPose {
				continue
			}
			p := mgr.Tick(pose, cfg.Engine, now)
			sender.SendPrimitive(p)
		}
	}
}
