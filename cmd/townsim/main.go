// Command townsim runs the Tiny Town life simulation.
package main

import (
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"sync"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/talgya/tiny-town/internal/api"
	"github.com/talgya/tiny-town/internal/catalog"
	"github.com/talgya/tiny-town/internal/engine"
	"github.com/talgya/tiny-town/internal/entropy"
	"github.com/talgya/tiny-town/internal/persistence"
	"github.com/talgya/tiny-town/internal/remote"
	"github.com/talgya/tiny-town/internal/resident"
	"github.com/talgya/tiny-town/internal/town"
)

const saveSlot = "autosave"

func main() {
	godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	dbPath := envOr("TOWNSIM_DB", "data/town.db")
	townName := envOr("TOWNSIM_TOWN", "Littlebrook")
	apiPort := envInt("TOWNSIM_PORT", 8080)
	seed := int64(envInt("TOWNSIM_SEED", 0))
	adminKey := os.Getenv("TOWNSIM_ADMIN_KEY")
	hubURL := os.Getenv("TOWNSIM_HUB_URL")

	// ── Catalog ───────────────────────────────────────────────────────
	cat := catalog.Default()
	if path := os.Getenv("TOWNSIM_CATALOG"); path != "" {
		loaded, err := catalog.Load(path)
		if err != nil {
			slog.Error("catalog rejected, keeping defaults", "path", path, "error", err)
		} else {
			cat = loaded
			slog.Info("catalog loaded", "path", path)
		}
	}

	// ── Slot store ────────────────────────────────────────────────────
	os.MkdirAll(filepath.Dir(dbPath), 0o755)
	store, err := persistence.Open(dbPath)
	if err != nil {
		slog.Error("failed to open save store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	rng := entropy.New(seed)
	log := engine.NewEventLog(store)

	// ── Restore or fresh ──────────────────────────────────────────────
	var sim *engine.Simulation
	snap, err := store.LoadSlot(saveSlot)
	switch {
	case err == nil:
		sim = persistence.Restore(snap, cat, rng, log)
		slog.Info("save restored",
			"version", snap.Version,
			"residents", len(sim.Residents),
			"workplaces", len(sim.Town.Workplaces),
			"time", sim.Clock.String(),
		)
	case errors.Is(err, persistence.ErrNoSlot):
		sim = freshTown(cat, rng, log, townName)
	default:
		var incompat *persistence.IncompatibleError
		if errors.As(err, &incompat) {
			slog.Warn("saved game is from an incompatible version, starting fresh", "error", incompat)
		} else {
			slog.Warn("saved game could not be read, starting fresh", "error", err)
		}
		sim = freshTown(cat, rng, log, townName)
	}

	if hubURL != "" {
		link := remote.Dial(hubURL)
		defer link.Close()
		sim.Remote = link
	}

	// ── Run ───────────────────────────────────────────────────────────
	var mu sync.Mutex
	save := func() error {
		mu.Lock()
		snap := persistence.Capture(sim)
		mu.Unlock()
		return store.SaveSlot(saveSlot, snap)
	}

	runner := engine.NewRunner(sim)
	runner.Mu = &mu
	runner.OnSnapshotDue = func() {
		if err := save(); err != nil {
			slog.Error("periodic save failed", "error", err)
		}
	}

	apiServer := &api.Server{
		Sim:        sim,
		Mu:         &mu,
		Port:       apiPort,
		AdminKey:   adminKey,
		OnSnapshot: save,
	}
	apiServer.Start()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		runner.Stop()
	}()

	slog.Info("town is alive",
		"town", sim.Town.Name,
		"residents", len(sim.Residents),
		"workplaces", len(sim.Town.Workplaces),
	)
	runner.Run()

	if err := save(); err != nil {
		slog.Error("final save failed", "error", err)
	}
}

// freshTown builds a new simulation: every blueprint gets a construction
// site (the first one comes pre-built so there is somewhere to go), and an
// initial cast moves in.
func freshTown(cat *catalog.Catalog, rng *entropy.Source, log *engine.EventLog, name string) *engine.Simulation {
	var workplaces []*town.Workplace
	for i := range cat.Blueprints {
		bp := &cat.Blueprints[i]
		w := &town.Workplace{
			ID:          uint64(i + 1),
			BlueprintID: bp.ID,
			Blueprint:   bp,
		}
		if i == 0 {
			w.Built = true
			w.Progress = bp.TotalCost
		}
		workplaces = append(workplaces, w)
	}

	t := town.New(name, workplaces)
	t.Treasury = 500

	spawner := resident.NewSpawner(rng, cat)
	if names := os.Getenv("TOWNSIM_RESIDENT_NAMES"); names != "" {
		spawner.SetCustomNames(splitNames(names))
	}
	cast := spawner.SpawnPopulation(envInt("TOWNSIM_POPULATION", 16))

	sim := engine.New(cat, rng, t, cast, log)
	sim.ObserverName = os.Getenv("TOWNSIM_OBSERVER")
	slog.Info("new town founded", "town", name, "residents", len(cast))
	return sim
}

func splitNames(csv string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(csv); i++ {
		if i == len(csv) || csv[i] == ',' {
			if name := csv[start:i]; name != "" {
				out = append(out, name)
			}
			start = i + 1
		}
	}
	return out
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
