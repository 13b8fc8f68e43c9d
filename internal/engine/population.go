// Population dynamics: aging, death, birth, immigration, and
// happiness-driven emigration.
package engine

import (
	"fmt"

	"github.com/talgya/tiny-town/internal/resident"
)

const (
	// SimDaysPerYear is the number of sim-days in one sim-year.
	SimDaysPerYear      = 360
	minutesPerYear      = SimDaysPerYear * MinutesPerDay
	hospitalDeliveryFee = 100

	populationSoftCap       = 50
	emigrationScoreFloor    = 30
	emigrationDailyChance   = 0.05
	immigrationIntervalDays = 15
)

// hourlyPopulation runs aging, lifespan deaths, and due births.
func (s *Simulation) hourlyPopulation() {
	now := s.Clock.Abs()

	for _, r := range s.sortedResidents() {
		if s.Index[r.ID] == nil {
			continue // Removed earlier this pass.
		}

		s.ageResident(r, now)

		if r.Age > r.MaxLifespan {
			s.Stats.Deaths++
			s.emit(fmt.Sprintf("%s has passed away at the age of %d", r.Name, r.Age), "death")
			s.removeResident(r.ID)
			continue
		}

		if r.Pregnancy != nil && now >= r.Pregnancy.DueMinute {
			s.deliverChild(r, now)
		}
	}
}

// ageResident increments age once per sim-year derived from the birth
// timestamp, or probabilistically for residents who pre-date the town.
func (s *Simulation) ageResident(r *resident.Resident, now uint64) {
	if r.BornMinute > 0 {
		expected := int((now - r.BornMinute) / minutesPerYear)
		if expected > r.Age {
			r.Age = expected
		}
		return
	}
	// No birth record: roughly one birthday per sim-year of hourly checks.
	if s.RNG.Chance(1.0 / (float64(SimDaysPerYear) * 24)) {
		r.Age++
	}
}

// deliverChild handles a due pregnancy: hospital if affordable, home
// delivery otherwise, then a newborn wired into the family.
func (s *Simulation) deliverChild(carrier *resident.Resident, now uint64) {
	otherParent := s.Index[carrier.Pregnancy.OtherParent]
	if otherParent == nil {
		otherParent = carrier // Other parent gone; the family record points home.
	}

	hospital := s.Town.Hospital()
	if hospital != nil && carrier.Money >= hospitalDeliveryFee {
		carrier.Spend(hospitalDeliveryFee)
		s.Distribute(hospital, hospitalDeliveryFee)
		s.emit(fmt.Sprintf("%s gave birth safely at the %s", carrier.Name, hospital.Blueprint.Name), "birth")
	} else {
		s.emit(fmt.Sprintf("%s gave birth at home — a tense night, but all is well", carrier.Name), "birth")
	}

	child := s.Spawner.SpawnChild(carrier, otherParent, now)
	s.addResident(child)
	carrier.Pregnancy = nil

	carrier.Children = append(carrier.Children, child.ID)
	if otherParent.ID != carrier.ID {
		otherParent.Children = append(otherParent.Children, child.ID)
	}
	parents := []*resident.Resident{carrier}
	if otherParent.ID != carrier.ID {
		parents = append(parents, otherParent)
	}
	for _, parent := range parents {
		child.RelationshipWith(parent.ID).Love = 80
		child.RelationshipWith(parent.ID).Status = resident.StatusFriend
		parent.RelationshipWith(child.ID).Love = 90
		parent.RelationshipWith(child.ID).Status = resident.StatusFriend
	}

	s.Stats.Births++
	s.emit(fmt.Sprintf("Welcome to the world, %s!", child.Name), "birth")
}

// dailyPopulation runs emigration checks and scheduled immigration.
func (s *Simulation) dailyPopulation() {
	s.processEmigration()
	s.processImmigration()
}

// townHappiness blends personal and civic signals into one contentment
// score for the emigration check.
func (s *Simulation) townHappiness(r *resident.Resident) float64 {
	score := 0.5*float64(r.Happiness) + 0.3*float64(r.JobSatisfaction)
	if r.PartnerID != 0 {
		score += 10
	}
	friends := 0
	for _, rel := range r.Relationships {
		if rel.Status == resident.StatusFriend || rel.Status == resident.StatusBestFriend {
			friends++
		}
	}
	if friends > 5 {
		friends = 5
	}
	score += float64(friends) * 2

	if over := len(s.Residents) - populationSoftCap; over > 0 {
		score -= float64(over)
	}
	return score
}

// processEmigration gives deeply unhappy residents a small daily chance of
// leaving for good. Same cleanup as death, without the obituary.
func (s *Simulation) processEmigration() {
	for _, r := range s.sortedResidents() {
		if s.Index[r.ID] == nil {
			continue
		}
		if s.townHappiness(r) >= emigrationScoreFloor {
			continue
		}
		if !s.RNG.Chance(emigrationDailyChance) {
			continue
		}
		s.Stats.Emigrations++
		s.emit(fmt.Sprintf("%s packed up and left town for a better life", r.Name), "social")
		s.removeResident(r.ID)
	}
}

// processImmigration adds one newcomer every fixed number of elapsed days,
// a stranger to everyone.
func (s *Simulation) processImmigration() {
	if s.Clock.ElapsedDays < s.Town.LastImmigrationDay+immigrationIntervalDays {
		return
	}
	s.Town.LastImmigrationDay = s.Clock.ElapsedDays

	newcomer := s.Spawner.Spawn()
	for _, r := range s.Residents {
		newcomer.RelationshipWith(r.ID)
		r.RelationshipWith(newcomer.ID)
	}
	s.addResident(newcomer)
	s.emit(fmt.Sprintf("%s has moved into town", newcomer.Name), "social")
}
