// Simulation ties together the clock, residents, town, and all systems,
// and advances them one bounded unit per tick.
package engine

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/talgya/tiny-town/internal/catalog"
	"github.com/talgya/tiny-town/internal/entropy"
	"github.com/talgya/tiny-town/internal/resident"
	"github.com/talgya/tiny-town/internal/town"
)

// SnapshotEveryMinutes is the accumulated sim-time between periodic saves.
const SnapshotEveryMinutes = 720

// RemoteLink is the multiplayer collaborator contract. Calls are
// fire-and-forget; the simulation never blocks on, or rolls back for,
// a remote peer.
type RemoteLink interface {
	AttemptConsume(agentID uint64, remoteTownID, venueID string, amount int)
	Notices() []RemoteNotice
}

// RemoteNotice is an inbound fact from a peer town, consumed as a
// log-worthy event with no ordering guarantees.
type RemoteNotice struct {
	Kind      string // "arrived", "departed", "revenue"
	AgentName string
	TownID    string
	Amount    int
}

// SimStats tracks aggregate town statistics, refreshed daily.
type SimStats struct {
	Population   int     `json:"population"`
	Employed     int     `json:"employed"`
	TotalMoney   int     `json:"total_money"`
	AvgHappiness float64 `json:"avg_happiness"`
	Births       int     `json:"births"`
	Deaths       int     `json:"deaths"`
	Emigrations  int     `json:"emigrations"`
}

// Simulation holds the complete town state and wires the systems together.
type Simulation struct {
	Clock     *Clock
	Residents []*resident.Resident
	Index     map[resident.ID]*resident.Resident
	Town      *town.Town
	Log       *EventLog
	Catalog   *catalog.Catalog
	RNG       *entropy.Source
	Spawner   *resident.Spawner
	Remote    RemoteLink // Optional; nil when playing offline
	Stats     SimStats

	// Save round-trip bookkeeping.
	ObserverName        string
	CustomResidentNames []string

	sinceSnapshot float64
	snapshotDue   bool
}

// New creates a simulation over an existing cast and town.
func New(cat *catalog.Catalog, rng *entropy.Source, t *town.Town, cast []*resident.Resident, log *EventLog) *Simulation {
	s := &Simulation{
		Clock:     NewClock(),
		Residents: cast,
		Town:      t,
		Log:       log,
		Catalog:   cat,
		RNG:       rng,
		Spawner:   resident.NewSpawner(rng, cat),
	}
	s.Reindex()
	for _, r := range cast {
		s.Spawner.MarkNameUsed(r.Name)
	}
	s.refreshStats()
	return s
}

// Reindex rebuilds the resident ID index and the spawner's next ID.
func (s *Simulation) Reindex() {
	s.Index = make(map[resident.ID]*resident.Resident, len(s.Residents))
	var maxID resident.ID
	for _, r := range s.Residents {
		s.Index[r.ID] = r
		if r.ID > maxID {
			maxID = r.ID
		}
	}
	if s.Spawner != nil {
		s.Spawner.SetNextID(maxID + 1)
	}
}

// Tick performs one bounded unit of simulated work: time advance, rollover
// bookkeeping, hourly passes, and decisions for max(1, floor(speed)) residents.
func (s *Simulation) Tick() {
	hours, days := s.Clock.Advance()

	for i := 0; i < days; i++ {
		s.rollDay()
	}
	for i := 0; i < hours; i++ {
		s.hourlyPass()
	}

	decisions := int(s.Clock.Speed)
	if decisions < 1 {
		decisions = 1
	}
	for i := 0; i < decisions && len(s.Residents) > 0; i++ {
		r := s.Residents[s.RNG.Intn(len(s.Residents))]
		s.Decide(r)
	}

	s.drainRemote()

	s.sinceSnapshot += BaseStepMinutes * s.Clock.Speed
	if s.sinceSnapshot >= SnapshotEveryMinutes {
		s.sinceSnapshot = 0
		s.snapshotDue = true
	}
}

// SnapshotDue reports (and clears) the periodic-save flag. The caller takes
// the snapshot between ticks, never during one.
func (s *Simulation) SnapshotDue() bool {
	due := s.snapshotDue
	s.snapshotDue = false
	return due
}

// rollDay runs day-boundary bookkeeping.
func (s *Simulation) rollDay() {
	for _, w := range s.Town.Workplaces {
		w.RollDay()
	}
	s.dailyPopulation()
	s.refreshStats()

	slog.Info("daily report",
		"time", s.Clock.String(),
		"population", s.Stats.Population,
		"employed", s.Stats.Employed,
		"avg_happiness", fmt.Sprintf("%.1f", s.Stats.AvgHappiness),
		"treasury", s.Town.Treasury,
		"births", s.Stats.Births,
		"deaths", s.Stats.Deaths,
	)
}

// hourlyPass runs the election pass, slow credibility recovery, and the
// hourly population checks.
func (s *Simulation) hourlyPass() {
	s.runElections()
	for _, r := range s.Residents {
		// Credibility trends toward its baseline, never regenerating above it.
		if r.Credibility < 50 {
			r.Credibility++
		}
	}
	s.hourlyPopulation()
}

// drainRemote consumes pending peer-town notices as independent facts.
func (s *Simulation) drainRemote() {
	if s.Remote == nil {
		return
	}
	for _, n := range s.Remote.Notices() {
		switch n.Kind {
		case "arrived":
			s.emit(fmt.Sprintf("%s arrived from the town of %s", n.AgentName, n.TownID), "system")
		case "departed":
			s.emit(fmt.Sprintf("%s went back to %s", n.AgentName, n.TownID), "system")
		case "revenue":
			s.Town.Treasury += n.Amount
			s.emit(fmt.Sprintf("%d coins credited from %s", n.Amount, n.TownID), "economy")
		}
	}
}

// emit appends one narrated line to the event log.
func (s *Simulation) emit(message, category string) {
	s.Log.Emit(s.Clock.String(), message, category)
}

// addResident registers a new resident in all indexes.
func (s *Simulation) addResident(r *resident.Resident) {
	s.Residents = append(s.Residents, r)
	s.Index[r.ID] = r
}

// removeResident purges a resident from the cast, every workplace roster,
// and every other resident's relationship map. Used for death and emigration.
func (s *Simulation) removeResident(id resident.ID) {
	for i, r := range s.Residents {
		if r.ID == id {
			s.Residents = append(s.Residents[:i], s.Residents[i+1:]...)
			break
		}
	}
	delete(s.Index, id)
	for _, w := range s.Town.Workplaces {
		w.RemoveStaff(id)
	}
	for _, other := range s.Residents {
		other.Forget(id)
	}
}

// sortedResidents returns the cast ordered by ID, for passes that need a
// stable iteration order.
func (s *Simulation) sortedResidents() []*resident.Resident {
	out := make([]*resident.Resident, len(s.Residents))
	copy(out, s.Residents)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Simulation) refreshStats() {
	st := SimStats{
		Births:      s.Stats.Births,
		Deaths:      s.Stats.Deaths,
		Emigrations: s.Stats.Emigrations,
	}
	total := 0
	for _, r := range s.Residents {
		st.Population++
		st.TotalMoney += r.Money
		total += r.Happiness
		if r.Employed() {
			st.Employed++
		}
	}
	if st.Population > 0 {
		st.AvgHappiness = float64(total) / float64(st.Population)
	}
	s.Stats = st
}
