// Resident spawning: initial population, immigrants, and newborns.
package resident

import (
	"fmt"

	"github.com/talgya/tiny-town/internal/catalog"
	"github.com/talgya/tiny-town/internal/entropy"
)

// Spawner creates residents with fresh IDs, names, and psychology.
type Spawner struct {
	rng    *entropy.Source
	cat    *catalog.Catalog
	nextID ID

	poolIdx     int
	customNames []string // Caller-supplied names, consumed before the pool
	usedNames   map[string]bool
}

// NewSpawner creates a resident spawner sharing the simulation's random source.
func NewSpawner(rng *entropy.Source, cat *catalog.Catalog) *Spawner {
	return &Spawner{
		rng:       rng,
		cat:       cat,
		nextID:    1,
		usedNames: make(map[string]bool),
	}
}

// SetNextID sets the next ID to be issued (used when restoring a save).
func (s *Spawner) SetNextID(id ID) {
	if id > s.nextID {
		s.nextID = id
	}
}

// SetCustomNames queues caller-supplied resident names, consumed before the
// reserved pool.
func (s *Spawner) SetCustomNames(names []string) {
	s.customNames = names
}

// MarkNameUsed records an existing resident's name so generated names stay
// unique after a restore.
func (s *Spawner) MarkNameUsed(name string) {
	s.usedNames[name] = true
}

// Spawn creates one adult resident with a unique name.
func (s *Spawner) Spawn() *Resident {
	return s.spawnNamed(s.nextName(), s.rng.Range(AdultAge, 50))
}

// SpawnPopulation creates the initial cast.
func (s *Spawner) SpawnPopulation(count int) []*Resident {
	out := make([]*Resident, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, s.Spawn())
	}
	return out
}

// SpawnChild creates a newborn: family surname, age zero, and a weighted
// subset of the parents' combined traits filtered through the conflict table.
func (s *Spawner) SpawnChild(mother, father *Resident, bornMinute uint64) *Resident {
	name := s.uniqueName(func() string {
		return givenNames[s.rng.Intn(len(givenNames))] + " " + Surname(mother.Name)
	})
	child := s.spawnNamed(name, 0)
	child.BornMinute = bornMinute
	child.Money = 0
	child.Traits = s.inheritTraits(mother, father)
	child.Parents = []ID{mother.ID}
	if father.ID != mother.ID {
		child.Parents = append(child.Parents, father.ID)
	}
	return child
}

// inheritTraits draws up to four traits from the union of both parents'
// traits. Successive slots are filled with 70/60/10/2 percent probability,
// skipping candidates that conflict with what the child already has.
func (s *Spawner) inheritTraits(mother, father *Resident) []string {
	pool := append([]string{}, mother.Traits...)
	for _, t := range father.Traits {
		found := false
		for _, have := range pool {
			if have == t {
				found = true
				break
			}
		}
		if !found {
			pool = append(pool, t)
		}
	}
	if len(pool) == 0 {
		return nil
	}

	slotChance := [4]float64{0.70, 0.60, 0.10, 0.02}
	var inherited []string
	for slot := 0; slot < 4 && len(pool) > 0; slot++ {
		if !s.rng.Chance(slotChance[slot]) {
			break
		}
		idx := s.rng.Intn(len(pool))
		candidate := pool[idx]
		pool = append(pool[:idx], pool[idx+1:]...)
		if s.cat.Compatible(inherited, candidate) {
			inherited = append(inherited, candidate)
		}
	}
	return inherited
}

func (s *Spawner) spawnNamed(name string, age int) *Resident {
	id := s.nextID
	s.nextID++

	personality := s.cat.Personalities[s.rng.Intn(len(s.cat.Personalities))].Name

	// Adults start with 0–2 random non-conflicting traits; children inherit.
	var traits []string
	if age >= AdultAge {
		for n := s.rng.Intn(3); n > 0; n-- {
			candidate := s.cat.Traits[s.rng.Intn(len(s.cat.Traits))].Name
			if s.cat.Compatible(traits, candidate) {
				traits = append(traits, candidate)
			}
		}
	}

	return &Resident{
		ID:              id,
		Name:            name,
		Happiness:       s.rng.Range(50, 80),
		Money:           s.rng.Range(30, 120),
		Age:             age,
		MaxLifespan:     s.rng.Range(60, 90),
		Personality:     personality,
		Traits:          traits,
		Relationships:   make(map[ID]*Relationship),
		JobSatisfaction: 50,
		Credibility:     50,
	}
}

// nextName takes from custom names first, then the reserved pool, then
// procedural generation with uniqueness retries.
func (s *Spawner) nextName() string {
	for len(s.customNames) > 0 {
		name := s.customNames[0]
		s.customNames = s.customNames[1:]
		if name != "" && !s.usedNames[name] {
			s.usedNames[name] = true
			return name
		}
	}
	for s.poolIdx < len(namePool) {
		name := namePool[s.poolIdx]
		s.poolIdx++
		if !s.usedNames[name] {
			s.usedNames[name] = true
			return name
		}
	}
	return s.uniqueName(func() string {
		return givenNames[s.rng.Intn(len(givenNames))] + " " + surnames[s.rng.Intn(len(surnames))]
	})
}

// uniqueName retries a generator until the name is unused, suffixing a
// numeral as a last resort.
func (s *Spawner) uniqueName(gen func() string) string {
	for attempt := 0; attempt < 50; attempt++ {
		name := gen()
		if !s.usedNames[name] {
			s.usedNames[name] = true
			return name
		}
	}
	base := gen()
	for n := 2; ; n++ {
		name := fmt.Sprintf("%s %d", base, n)
		if !s.usedNames[name] {
			s.usedNames[name] = true
			return name
		}
	}
}
