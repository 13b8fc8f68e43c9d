// Work execution: revenue, on-the-job trait learning, negligence, job
// satisfaction, and resignations.
package engine

import (
	"fmt"

	"github.com/talgya/tiny-town/internal/resident"
	"github.com/talgya/tiny-town/internal/town"
)

const (
	slackFireThreshold = 3 // Caught slacking this often gets you fired

	resignCooldownMinutes = 3 * MinutesPerDay
	rehireBanMinutes      = 30 * MinutesPerDay // One-month re-hire ban after resigning
)

// work executes one shift tick at the resident's workplace.
func (s *Simulation) work(r *resident.Resident, w *town.Workplace) {
	mods := s.Catalog.Modifiers(r.Traits)

	// A shift wears on you.
	r.AddHappiness(-1)

	// An agent with no traits yet can pick one up on the job: 70/30
	// weighted toward the workplace's recommended traits.
	if len(r.Traits) == 0 && s.RNG.Chance(0.10) {
		s.learnTrait(r, w)
	}

	// Negligence: trait-weighted chance to slack off, a further chance of
	// being caught, halved for clever agents.
	if s.RNG.Chance(0.05 + mods.Negligence) {
		catchChance := 0.5
		if mods.Clever {
			catchChance *= 0.5
		}
		if s.RNG.Chance(catchChance) {
			if r.SlackCaught == nil {
				r.SlackCaught = make(map[uint64]int)
			}
			r.SlackCaught[w.ID]++
			r.AddHappiness(-3)
			if r.SlackCaught[w.ID] >= slackFireThreshold {
				s.fire(r, w)
				return
			}
			s.emit(fmt.Sprintf("%s was caught slacking off at the %s", r.Name, w.Blueprint.Name), "work")
		} else {
			s.emit(fmt.Sprintf("%s dodges work at the %s and gets away with it", r.Name, w.Blueprint.Name), "work")
		}
		s.updateSatisfaction(r, w)
		return
	}

	// An honest shift: a sale comes in and the revenue is distributed.
	revenue := 0
	if len(w.Blueprint.Items) > 0 {
		item := w.Blueprint.Items[s.RNG.Intn(len(w.Blueprint.Items))]
		revenue = item.Price
	} else {
		revenue = w.BaseWage()
	}
	s.Distribute(w, float64(revenue))
	s.emit(fmt.Sprintf("%s works a shift as %s at the %s", r.Name, r.Job.Role, w.Blueprint.Name), "work")

	s.updateSatisfaction(r, w)
	s.maybeResign(r, w, mods.Resign)
}

// learnTrait teaches a traitless agent a first trait, biased toward the
// workplace's recommended list.
func (s *Simulation) learnTrait(r *resident.Resident, w *town.Workplace) {
	var candidate string
	if len(w.Blueprint.RecommendedTraits) > 0 && s.RNG.Chance(0.7) {
		candidate = w.Blueprint.RecommendedTraits[s.RNG.Intn(len(w.Blueprint.RecommendedTraits))]
	} else {
		candidate = s.Catalog.Traits[s.RNG.Intn(len(s.Catalog.Traits))].Name
	}
	if s.Catalog.Compatible(r.Traits, candidate) {
		r.Traits = append(r.Traits, candidate)
		s.emit(fmt.Sprintf("%s is becoming %s from working at the %s", r.Name, candidate, w.Blueprint.Name), "work")
	}
}

// updateSatisfaction drifts job satisfaction toward a blend of current
// happiness and the workplace's wage signal.
func (s *Simulation) updateSatisfaction(r *resident.Resident, w *town.Workplace) {
	target := (r.Happiness + w.BaseWage()*2) / 2
	if target > 100 {
		target = 100
	}
	if target > r.JobSatisfaction {
		r.JobSatisfaction++
	} else if target < r.JobSatisfaction {
		r.JobSatisfaction--
	}
}

// maybeResign rolls a trait-weighted resignation chance once satisfaction
// drops below the threshold.
func (s *Simulation) maybeResign(r *resident.Resident, w *town.Workplace, resignDelta float64) {
	if r.JobSatisfaction >= 30 {
		return
	}
	if !s.RNG.Chance(0.05 + resignDelta) {
		return
	}
	now := s.Clock.Abs()
	w.RemoveStaff(r.ID)
	r.Job = nil
	r.ResignCooldownUntil = now + resignCooldownMinutes
	r.LastResigned = &resident.Resigned{WorkplaceID: w.ID, AtMinute: now}
	r.JobSatisfaction = 50
	s.emit(fmt.Sprintf("%s has had enough and quits the %s", r.Name, w.Blueprint.Name), "work")
}

// fire terminates employment for repeated negligence.
func (s *Simulation) fire(r *resident.Resident, w *town.Workplace) {
	w.RemoveStaff(r.ID)
	r.Job = nil
	r.AddHappiness(-10)
	r.AddCredibility(-5)
	r.JobSatisfaction = 50
	s.emit(fmt.Sprintf("%s was fired from the %s for slacking one time too many", r.Name, w.Blueprint.Name), "work")
}
