// The per-resident decision state machine. Exactly one branch runs per
// invocation, in strict priority order; the first match wins.
package engine

import (
	"fmt"

	"github.com/talgya/tiny-town/internal/resident"
	"github.com/talgya/tiny-town/internal/town"
)

const (
	survivalFloor   = 20 // Cash level that forces income-seeking
	happinessFloor  = 20 // Happiness level that forces rest
	desireThreshold = 85 // Desire level that triggers a relief attempt
	desirePerTick   = 2

	reliefSoloMinutes  = 30
	reliefJointMinutes = 60

	allowanceAmount = 5
	buildPerAction  = 15
)

// Decide chooses and executes exactly one action for the resident.
func (s *Simulation) Decide(r *resident.Resident) {
	now := s.Clock.Abs()

	// Expired intoxication wears off silently.
	if r.Intoxicated && now >= r.IntoxicatedUntil {
		r.Intoxicated = false
		r.IntoxicatedUntil = 0
	}

	// 1. Sleep window.
	if s.inSleepWindow(r) {
		s.sleep(r)
		return
	}

	// 2. Resignation cooldown expiry.
	if r.ResignCooldownUntil != 0 && now >= r.ResignCooldownUntil {
		r.ResignCooldownUntil = 0
		s.emit(fmt.Sprintf("%s is ready to look for work again", r.Name), "work")
		return
	}

	// 3. Juvenile restrictions: no jobs, street work, or vice income.
	if !r.IsAdult() {
		if r.Money < survivalFloor {
			s.seekAllowance(r)
			return
		}
		s.freeTime(r, false)
		return
	}

	// 4. Active employment.
	if r.Employed() {
		w := s.Town.Workplace(r.Job.WorkplaceID)
		if w == nil {
			r.Job = nil
		} else if w.IsOpenAt(s.Clock.Hour(), s.Clock.Weekday) {
			// Round-the-clock venues gate each tick probabilistically
			// instead of guaranteeing a shift.
			if !w.AlwaysOpen() || s.RNG.Chance(0.5) {
				s.work(r, w)
				return
			}
		}
	}

	// 5. Survival pressure.
	if !r.Employed() && r.Money < survivalFloor && r.ResignCooldownUntil == 0 {
		s.scrapeBy(r)
		return
	}

	// 6. Low-happiness override.
	if r.Happiness < happinessFloor {
		r.AddHappiness(3)
		s.emit(fmt.Sprintf("%s takes a quiet moment to recover", r.Name), "social")
		return
	}

	// 7. In-progress relief.
	if r.Relief.Active {
		s.continueRelief(r, now)
		return
	}

	// 8. Desire accumulation and threshold-triggered relief attempt.
	r.AddDesire(desirePerTick)
	if r.Desire > desireThreshold {
		if s.attemptRelief(r, now) {
			return
		}
	}

	// 9. Weighted free-time choice.
	s.freeTime(r, true)
}

func (s *Simulation) inSleepWindow(r *resident.Resident) bool {
	p := s.Catalog.Personality(r.Personality)
	if p == nil {
		return false
	}
	hour := s.Clock.Hour()
	if p.SleepStart == p.SleepEnd {
		return false
	}
	if p.SleepStart < p.SleepEnd {
		return hour >= p.SleepStart && hour < p.SleepEnd
	}
	return hour >= p.SleepStart || hour < p.SleepEnd
}

func (s *Simulation) sleep(r *resident.Resident) {
	restore := 1
	if r.HasTrait("stoical") {
		restore = 2
	}
	r.AddHappiness(restore)
	r.SleepMinutes += uint64(BaseStepMinutes * s.Clock.Speed)
	s.emit(fmt.Sprintf("%s is sound asleep", r.Name), "social")
}

// seekAllowance is the juvenile fallback: a living parent with cash chips
// in, otherwise the town treasury does.
func (s *Simulation) seekAllowance(r *resident.Resident) {
	for _, pid := range r.Parents {
		parent := s.Index[pid]
		if parent != nil && parent.Money >= allowanceAmount {
			parent.Spend(allowanceAmount)
			r.Earn(allowanceAmount, "allowance", 0)
			s.emit(fmt.Sprintf("%s gets pocket money from %s", r.Name, parent.Name), "economy")
			return
		}
	}
	if s.Town.Treasury >= allowanceAmount {
		s.Town.Treasury -= allowanceAmount
		r.Earn(allowanceAmount, "allowance", 0)
		s.emit(fmt.Sprintf("%s collects a small allowance from the town", r.Name), "economy")
		return
	}
	s.emit(fmt.Sprintf("%s goes without pocket money today", r.Name), "economy")
}

// scrapeBy forces an income action on a broke, unemployed adult: vice work
// or a low-paid odd job, weighted by trait.
func (s *Simulation) scrapeBy(r *resident.Resident) {
	mods := s.Catalog.Modifiers(r.Traits)
	if s.RNG.Chance(0.3 + mods.Vice) {
		pay := s.RNG.Range(5, 15)
		r.Earn(pay, "vice", 0)
		r.AddHappiness(-2)
		s.emit(fmt.Sprintf("%s earns %d coins working the street", r.Name, pay), "work")
		return
	}
	pay := s.RNG.Range(3, 8)
	r.Earn(pay, "oddjob", 0)
	s.emit(fmt.Sprintf("%s picks up an odd job for %d coins", r.Name, pay), "work")
}

// continueRelief completes or carries on an in-progress relief activity.
func (s *Simulation) continueRelief(r *resident.Resident, now uint64) {
	if now < r.Relief.EndsMinute {
		s.emit(fmt.Sprintf("%s is otherwise occupied", r.Name), "social")
		return
	}
	partnerID := r.Relief.PartnerID
	r.Relief = resident.Relief{}
	r.Desire = 0
	r.AddHappiness(10)
	if partnerID != 0 {
		if partner := s.Index[partnerID]; partner != nil {
			resident.AddMirroredLove(r, partner, 2)
		}
		s.emit(fmt.Sprintf("%s emerges looking very pleased", r.Name), "social")
		return
	}
	s.emit(fmt.Sprintf("%s feels much more relaxed now", r.Name), "social")
}

// attemptRelief tries a consenting-partner search, then self-relief.
// Returns false when neither works, letting the agent fall through.
func (s *Simulation) attemptRelief(r *resident.Resident, now uint64) bool {
	// Partner preference: spouse or lover first, then any FWB.
	var candidates []resident.ID
	if r.PartnerID != 0 {
		candidates = append(candidates, r.PartnerID)
	}
	candidates = append(candidates, r.FWBs...)

	for _, id := range candidates {
		p := s.Index[id]
		if p == nil || p.Relief.Active || !p.IsAdult() {
			continue
		}
		// Consent roll: willing when their own desire is up or the bond is warm.
		if p.Desire > 40 || s.RNG.Chance(float64(resident.MutualLove(r, p))/200) {
			end := now + reliefJointMinutes
			r.Relief = resident.Relief{Active: true, PartnerID: p.ID, EndsMinute: end}
			p.Relief = resident.Relief{Active: true, PartnerID: r.ID, EndsMinute: end}
			s.emit(fmt.Sprintf("%s and %s slip away together", r.Name, p.Name), "social")
			return true
		}
	}

	if s.RNG.Chance(0.5) {
		r.Relief = resident.Relief{Active: true, EndsMinute: now + reliefSoloMinutes}
		s.emit(fmt.Sprintf("%s takes some private time", r.Name), "social")
		return true
	}
	return false
}

// freeTime runs the weighted choice between construction, socializing at an
// open venue, and passive rest. Juveniles skip construction.
func (s *Simulation) freeTime(r *resident.Resident, allowBuild bool) {
	mods := s.Catalog.Modifiers(r.Traits)

	buildWeight := 0.0
	var favored *town.Workplace
	pending := s.Town.Pending()
	if allowBuild && len(pending) > 0 {
		buildWeight = 0.25 + mods.Build
		if mods.MoneyLoving {
			buildWeight += 0.10
		}
		// A pending building that recommends one of the agent's traits
		// pulls them toward the site.
		for _, w := range pending {
			for _, t := range w.Blueprint.RecommendedTraits {
				if r.HasTrait(t) {
					buildWeight += 0.20
					favored = w
					break
				}
			}
			if favored != nil {
				break
			}
		}
	}

	socialWeight := 0.35 + mods.Social
	if p := s.Catalog.Personality(r.Personality); p != nil {
		socialWeight += p.SocialBias
	}
	open := s.Town.OpenAt(s.Clock.Hour(), s.Clock.Weekday)
	if len(open) == 0 {
		socialWeight = 0
	}

	if buildWeight < 0 {
		buildWeight = 0
	}
	if socialWeight < 0 {
		socialWeight = 0
	}

	roll := s.RNG.Float()
	switch {
	case roll < buildWeight:
		site := favored
		if site == nil {
			site = pending[s.RNG.Intn(len(pending))]
		}
		s.contribute(r, site)
	case roll < buildWeight+socialWeight:
		venue := open[s.RNG.Intn(len(open))]
		s.socialize(r, venue)
	default:
		r.AddHappiness(1)
		s.emit(fmt.Sprintf("%s idles the hours away", r.Name), "social")
	}
}

// contribute adds construction progress at a pending site.
func (s *Simulation) contribute(r *resident.Resident, w *town.Workplace) {
	if w.Contribute(buildPerAction) {
		s.emit(fmt.Sprintf("%s lays the final brick — the %s is finished!", r.Name, w.Blueprint.Name), "economy")
		return
	}
	r.AddHappiness(1)
	s.emit(fmt.Sprintf("%s helps build the %s (%d/%d)", r.Name, w.Blueprint.Name, w.Progress, w.Blueprint.TotalCost), "economy")
}
