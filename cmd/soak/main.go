// Soak test: random phone tilts against every ceiling margin, checking the ball never
// leaves the box.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"time"

	"tiltbox/internal/config"
	"tiltbox/internal/orientation"
	"tiltbox/internal/sim"
)

const tolerance = 1e-6

func main() {
	steps := flag.Int("steps", 20000, "physics steps per run")
	runs := flag.Int("runs", 5, "runs per configuration")
	tiltEvery := flag.Int("tilt-every", 6, "steps between tilt samples (6 is 100ms at 60Hz)")
	seed := flag.Uint64("seed", 42, "random seed")
	flag.Parse()

	failed := false
	for _, margin := range []float64{config.CeilingMargin40, config.CeilingMargin70, config.CeilingMargin100} {
		for _, restitution := range []float64{0.5, 0.9} {
			cfg := config.Default()
			cfg.CeilingMargin = margin
			cfg.Restitution = restitution
			if !soak(cfg, *runs, *steps, *tiltEvery, *seed) {
				failed = true
			}
		}
	}
	if failed {
		os.Exit(1)
	}
}

func soak(cfg config.Config, runs, steps, tiltEvery int, seed uint64) bool {
	rng := rand.New(rand.NewPCG(seed, uint64(cfg.CeilingMargin)))

	start := time.Now()
	escapes := 0
	bounces := 0
	maxSpeed := 0.0
	for run := 0; run < runs; run++ {
		s, err := sim.New(cfg)
		if err != nil {
			log.Fatalf("Failed to create simulation: %v", err)
		}
		for step := 0; step < steps; step++ {
			if step%tiltEvery == 0 {
				raw := orientation.NewRawSample(rng.Float64()*360, rng.Float64()*180-90, rng.Float64()*180-90)
				s.SetOrientation(orientation.ToRadians(raw).Quat(orientation.OrderXYZ))
			}
			s.Advance()
			if !s.Contained(tolerance) {
				escapes++
				s.ResetBall()
			}
			maxSpeed = max(maxSpeed, s.Ball.Speed())
		}
		bounces += s.Bounces()
	}
	elapsed := time.Since(start)

	status := "ok"
	if escapes > 0 {
		status = "ESCAPED"
	}
	fmt.Printf("margin %3.0f  e=%.1f: %d runs x %d steps in %8v | %6d bounces | max speed %7.1f | %d escapes %s\n",
		cfg.CeilingMargin, cfg.Restitution, runs, steps, elapsed.Round(time.Millisecond),
		bounces, maxSpeed, escapes, status)
	return escapes == 0
}
