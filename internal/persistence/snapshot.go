// Package persistence owns serialization of the full simulation state:
// the versioned snapshot document, save-compatibility checks, field-level
// migration, and the SQLite slot store.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/talgya/tiny-town/internal/catalog"
	"github.com/talgya/tiny-town/internal/engine"
	"github.com/talgya/tiny-town/internal/entropy"
	"github.com/talgya/tiny-town/internal/resident"
	"github.com/talgya/tiny-town/internal/town"
)

// CurrentVersion is the semantic version written into every snapshot.
// Loads require an exact major match and minor ≥ MinMinor.
const (
	CurrentVersion = "2.3.0"
	MajorRequired  = 2
	MinMinor       = 1
)

// IncompatibleError reports a save that cannot be loaded. Callers fall
// back to a fresh simulation.
type IncompatibleError struct {
	SaveVersion string
	Reason      string
}

func (e *IncompatibleError) Error() string {
	return fmt.Sprintf("save version %s incompatible with %s: %s", e.SaveVersion, CurrentVersion, e.Reason)
}

// workplaceRecord wraps a workplace for serialization. The embedded legacy
// field supports the historical save shape that referenced buildings by
// display name instead of blueprint id.
type workplaceRecord struct {
	town.Workplace
	LegacyName string `json:"building_name,omitempty"`
}

// Snapshot is the versioned aggregate of all simulation state.
type Snapshot struct {
	Version string    `json:"version"`
	SavedAt time.Time `json:"savedAt"`

	Residents  []*resident.Resident `json:"agents"`
	Workplaces []*workplaceRecord   `json:"workplaces"`

	TownTreasury       int     `json:"townTreasury"`
	ClockMinutes       float64 `json:"clockMinutes"`
	Weekday            int     `json:"weekday"`
	ElapsedDays        uint64  `json:"elapsedDays"`
	SpeedMultiplier    float64 `json:"speedMultiplier"`
	LastImmigrationDay uint64  `json:"lastImmigrationDay"`

	TownName            string   `json:"townName"`
	CustomResidentNames []string `json:"customResidentNames,omitempty"`
	ObserverName        string   `json:"observerName,omitempty"`
}

// Capture builds a snapshot of the live simulation at the current version.
func Capture(sim *engine.Simulation) *Snapshot {
	records := make([]*workplaceRecord, 0, len(sim.Town.Workplaces))
	for _, w := range sim.Town.Workplaces {
		records = append(records, &workplaceRecord{Workplace: *w})
	}
	residents := sim.Residents
	if residents == nil {
		// An empty town still serializes "agents" as an array.
		residents = []*resident.Resident{}
	}
	return &Snapshot{
		Version:             CurrentVersion,
		SavedAt:             time.Now().UTC(),
		Residents:           residents,
		Workplaces:          records,
		TownTreasury:        sim.Town.Treasury,
		ClockMinutes:        sim.Clock.Minutes,
		Weekday:             sim.Clock.Weekday,
		ElapsedDays:         sim.Clock.ElapsedDays,
		SpeedMultiplier:     sim.Clock.Speed,
		LastImmigrationDay:  sim.Town.LastImmigrationDay,
		TownName:            sim.Town.Name,
		CustomResidentNames: sim.CustomResidentNames,
		ObserverName:        sim.ObserverName,
	}
}

// Decode parses and validates raw snapshot bytes: structural schema check,
// JSON decode, version compatibility, then migration of older shapes.
func Decode(data []byte) (*Snapshot, error) {
	if err := validateSchema(data); err != nil {
		return nil, fmt.Errorf("corrupt snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("corrupt snapshot: %w", err)
	}
	if err := checkVersion(snap.Version); err != nil {
		return nil, err
	}
	migrate(&snap)
	return &snap, nil
}

// Encode serializes a snapshot to JSON.
func (s *Snapshot) Encode() ([]byte, error) {
	return json.Marshal(s)
}

// Restore builds a live simulation from a decoded snapshot. Workplaces
// whose blueprint no longer exists are dropped with a warning rather than
// failing the load.
func Restore(snap *Snapshot, cat *catalog.Catalog, rng *entropy.Source, log *engine.EventLog) *engine.Simulation {
	var workplaces []*town.Workplace
	for _, rec := range snap.Workplaces {
		w := rec.Workplace
		bp := cat.Blueprint(w.BlueprintID)
		if bp == nil && rec.LegacyName != "" {
			if bp = cat.BlueprintByName(rec.LegacyName); bp != nil {
				w.BlueprintID = bp.ID
			}
		}
		if bp == nil {
			slog.Warn("dropping workplace with unknown blueprint",
				"workplace_id", w.ID, "blueprint_id", w.BlueprintID, "legacy_name", rec.LegacyName)
			continue
		}
		w.Blueprint = bp
		wc := w
		workplaces = append(workplaces, &wc)
	}

	t := town.New(snap.TownName, workplaces)
	t.Treasury = snap.TownTreasury
	t.LastImmigrationDay = snap.LastImmigrationDay

	sim := engine.New(cat, rng, t, snap.Residents, log)
	sim.Clock.Minutes = snap.ClockMinutes
	sim.Clock.Weekday = snap.Weekday
	sim.Clock.ElapsedDays = snap.ElapsedDays
	sim.Clock.Speed = snap.SpeedMultiplier
	if sim.Clock.Speed == 0 {
		sim.Clock.Speed = 1
	}
	sim.CustomResidentNames = snap.CustomResidentNames
	sim.ObserverName = snap.ObserverName
	sim.Spawner.SetCustomNames(snap.CustomResidentNames)
	return sim
}

func checkVersion(version string) error {
	major, minor, ok := parseVersion(version)
	if !ok {
		return &IncompatibleError{SaveVersion: version, Reason: "unparseable version tag"}
	}
	if major != MajorRequired {
		return &IncompatibleError{SaveVersion: version, Reason: fmt.Sprintf("major version %d required", MajorRequired)}
	}
	if minor < MinMinor {
		return &IncompatibleError{SaveVersion: version, Reason: fmt.Sprintf("minor version %d or newer required", MinMinor)}
	}
	return nil
}

func parseVersion(v string) (major, minor int, ok bool) {
	parts := strings.SplitN(v, ".", 3)
	if len(parts) < 2 {
		return 0, 0, false
	}
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	minor, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return major, minor, true
}

// migrate backfills fields introduced since the minimum supported version
// with their documented defaults. Snapshots at the current minor pass
// through untouched.
func migrate(snap *Snapshot) {
	_, minor, _ := parseVersion(snap.Version)
	if minor >= currentMinor() {
		return
	}
	for _, r := range snap.Residents {
		// Credibility and job satisfaction arrived after 2.1; older saves
		// decode them as zero.
		if r.Credibility == 0 {
			r.Credibility = 50
		}
		if r.JobSatisfaction == 0 {
			r.JobSatisfaction = 50
		}
		if r.MaxLifespan == 0 {
			r.MaxLifespan = 75
		}
		if r.Relationships == nil {
			r.Relationships = make(map[resident.ID]*resident.Relationship)
		}
	}
	for _, rec := range snap.Workplaces {
		if rec.RevenueHistory == nil {
			rec.RevenueHistory = []int{}
		}
		if rec.StaffPayHistory == nil {
			rec.StaffPayHistory = []int{}
		}
		// Missing treasuries and counters stay at their zero defaults.
	}
	snap.Version = CurrentVersion
}

func currentMinor() int {
	_, minor, _ := parseVersion(CurrentVersion)
	return minor
}
