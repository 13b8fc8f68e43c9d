package engine

import (
	"log/slog"
	"sync"
	"time"
)

// Runner drives the simulation at a wall-clock cadence. One Tick per
// interval; the speed multiplier stretches simulated time, not wall time.
type Runner struct {
	Sim      *Simulation
	Interval time.Duration

	// Mu serializes ticks against outside observers (the HTTP API).
	// All simulation state stays single-writer.
	Mu *sync.Mutex

	// OnSnapshotDue is called between ticks whenever the periodic
	// persistence threshold has been crossed.
	OnSnapshotDue func()

	running bool
	stop    chan struct{}
}

// NewRunner creates a runner with the default one-second cadence.
func NewRunner(sim *Simulation) *Runner {
	return &Runner{
		Sim:      sim,
		Interval: time.Second,
		stop:     make(chan struct{}),
	}
}

// Run blocks, ticking until Stop is called.
func (r *Runner) Run() {
	r.running = true
	slog.Info("simulation started", "time", r.Sim.Clock.String(), "speed", r.Sim.Clock.Speed)

	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()

	for r.running {
		select {
		case <-ticker.C:
			if r.Mu != nil {
				r.Mu.Lock()
			}
			r.Sim.Tick()
			due := r.Sim.SnapshotDue()
			if r.Mu != nil {
				r.Mu.Unlock()
			}
			if due && r.OnSnapshotDue != nil {
				r.OnSnapshotDue()
			}
		case <-r.stop:
			r.running = false
		}
	}

	slog.Info("simulation stopped", "time", r.Sim.Clock.String())
}

// Stop halts the loop after the current tick.
func (r *Runner) Stop() {
	select {
	case r.stop <- struct{}{}:
	default:
	}
}
