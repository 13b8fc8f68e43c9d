package engine

import (
	"github.com/talgya/tiny-town/internal/catalog"
	"github.com/talgya/tiny-town/internal/entropy"
	"github.com/talgya/tiny-town/internal/resident"
	"github.com/talgya/tiny-town/internal/town"
)

// newTestSim builds a simulation over hand-placed workplaces and residents.
// Blueprints are resolved from the default catalog by BlueprintID.
func newTestSim(seed int64, workplaces []*town.Workplace, cast []*resident.Resident) *Simulation {
	cat := catalog.Default()
	for _, w := range workplaces {
		w.Blueprint = cat.Blueprint(w.BlueprintID)
	}
	t := town.New("Testford", workplaces)
	return New(cat, entropy.New(seed), t, cast, NewEventLog(nil))
}

// tavern builds a standalone built tavern with its blueprint resolved.
func tavern() *town.Workplace {
	w := &town.Workplace{ID: 7, BlueprintID: "tavern", Built: true}
	w.Blueprint = catalog.Default().Blueprint("tavern")
	return w
}

// testAdult builds a resident with neutral vitals and no random state.
func testAdult(id resident.ID, name string) *resident.Resident {
	return &resident.Resident{
		ID:              id,
		Name:            name,
		Age:             30,
		MaxLifespan:     90,
		Happiness:       60,
		Money:           100,
		Personality:     "cheerful",
		JobSatisfaction: 50,
		Credibility:     50,
		Relationships:   make(map[resident.ID]*resident.Relationship),
	}
}
