package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"fixedwing-pathmgr/pathmgr"
)

func main() {
	var configPath string
	var poseAddr string
	var commandAddr string
	flag.StringVar(&configPath, "config", "config.json", "Path to JSON config.")
	flag.StringVar(&poseAddr, "pose-addr", "", "Override transport.pose_addr (host:port).")
	flag.StringVar(&commandAddr, "command-addr", "", "Override transport.command_addr (host:port).")
	flag.Parse()

	cfg, err := pathmgr.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("load config %q: %v", configPath, err)
	}

	if poseAddr != "" {
		cfg.Transport.PoseAddr = poseAddr
	}
	if commandAddr != "" {
		cfg.Transport.CommandAddr = commandAddr
	}

	logger := pathmgr.NewLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := pathmgr.Run(ctx, cfg, logger); err != nil && err != context.Canceled {
		logger.Error("pathmgr exited", "error", err)
		os.Exit(1)
	}
}
