package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"tiltbox/internal/assets"
	"tiltbox/internal/config"
	"tiltbox/internal/game"
	"tiltbox/internal/orientation"
	"tiltbox/internal/transport/ws"
)

func main() {
	// Change working directory to executable location for deployed builds.
	// Skip this for "go run" which puts the binary in a temp directory.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			os.Chdir(execDir)
		}
	}

	configPath := flag.String("config", config.ConfigPath, "config file")
	keyboard := flag.Bool("keyboard", false, "tilt with the arrow keys instead of a phone")
	listen := flag.String("listen", "", "sensor server address, overrides listen_addr")
	noModel := flag.Bool("no-model", false, "skip the detailed ball model")
	writeConfig := flag.Bool("write-config", false, "write the effective config to -config and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *listen != "" {
		cfg.ListenAddr = *listen
	}
	if *writeConfig {
		if err := config.Save(*configPath, cfg); err != nil {
			log.Fatalf("Failed to write config: %v", err)
		}
		log.Printf("Config: wrote %s", *configPath)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var model *assets.Handle[assets.ModelFile]
	if !*noModel && cfg.ModelPath != "" {
		model = assets.LoadModelAsync(ctx, cfg.ModelPath)
	}

	opts := game.Options{Config: cfg, Model: model, Keyboard: *keyboard}

	var g *game.Game
	var server *ws.Server
	if !*keyboard {
		server = ws.NewServer(func(raw orientation.RawSample) { g.HandleSample(raw) })
		opts.Gate = server
	}

	g, err = game.New(opts)
	if err != nil {
		log.Fatalf("Failed to create game: %v", err)
	}

	// samples only flow once g is set
	if server != nil {
		go func() {
			if err := server.ListenAndServe(ctx, cfg.ListenAddr); err != nil {
				log.Printf("Sensor: %v", err)
			}
		}()
	}

	if err := g.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Game stopped: %v", err)
	}
}
