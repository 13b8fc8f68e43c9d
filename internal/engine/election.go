// The hourly election and hiring pass: weighted voting for vacant
// leadership, owner-choice hiring for open roles, and the vice-trade
// secondary recruitment.
package engine

import (
	"fmt"
	"sort"

	"github.com/talgya/tiny-town/internal/resident"
	"github.com/talgya/tiny-town/internal/town"
)

const (
	voteYesThreshold = 50
	voteNoThreshold  = 25
	voteNoiseBound   = 10

	bribeAmount        = 20
	bribeBonus         = 30
	bribeRejectPenalty = 20
	reportedPenalty    = 40

	electionFailLimit      = 3
	electionCooldownLength = 7 * MinutesPerDay

	winnerCredibilityBonus = 10
)

// electionCycle holds the transient per-cycle flags. It lives for one
// election pass at one workplace and is discarded afterward, so nothing
// gets bolted onto the residents themselves.
type electionCycle struct {
	bribedBy   map[resident.ID]resident.ID // Voter → candidate who bought them
	rejectedBy map[resident.ID]resident.ID // Voter → candidate whose bribe they refused
	reported   map[resident.ID]bool        // Candidate → caught bribing
}

// runElections runs the hourly pass over every built workplace with roles.
func (s *Simulation) runElections() {
	for _, w := range s.Town.Workplaces {
		if !w.Built || w.Blueprint == nil || len(w.Blueprint.Roles) == 0 {
			continue
		}
		if !w.HasStaff() {
			s.electLeader(w)
		} else if w.Understaffed() {
			s.ownerHire(w)
		}
		if w.Blueprint.ViceTrade && w.HasStaff() {
			s.viceRecruit(w)
		}
		s.tryUpgrade(w)
	}
}

// electLeader fills a vacant leadership slot by weighted vote.
func (s *Simulation) electLeader(w *town.Workplace) {
	now := s.Clock.Abs()
	candidates := s.eligibleCandidates(w, now)
	if len(candidates) == 0 {
		s.emit(fmt.Sprintf("Nobody stood for the %s this time", w.Blueprint.Name), "election")
		return
	}

	cycle := &electionCycle{
		bribedBy:   make(map[resident.ID]resident.ID),
		rejectedBy: make(map[resident.ID]resident.ID),
		reported:   make(map[resident.ID]bool),
	}

	for _, cand := range candidates {
		s.maybeBribe(cand, cycle)
	}

	yes := make(map[resident.ID]int, len(candidates))
	no := make(map[resident.ID]int, len(candidates))
	for _, voter := range s.sortedResidents() {
		for _, cand := range candidates {
			if voter.ID == cand.ID {
				yes[cand.ID]++ // A candidate always backs themself.
				continue
			}
			score := s.voteScore(voter, cand, cycle)
			if score >= voteYesThreshold {
				yes[cand.ID]++
			} else if score <= voteNoThreshold {
				no[cand.ID]++
			}
		}
	}

	// Winner: most yes votes among candidates with yes > no and yes ≥ 1.
	// Candidates are evaluated in ascending ID order, so ties resolve to
	// the lowest id. Stable tie-break, never random.
	var winner *resident.Resident
	var mostYes *resident.Resident
	for _, cand := range candidates {
		if mostYes == nil || yes[cand.ID] > yes[mostYes.ID] {
			mostYes = cand
		}
		if yes[cand.ID] < 1 || yes[cand.ID] <= no[cand.ID] {
			continue
		}
		if winner == nil || yes[cand.ID] > yes[winner.ID] {
			winner = cand
		}
	}

	if winner != nil {
		w.Staff = []resident.ID{winner.ID}
		winner.Job = &resident.Job{WorkplaceID: w.ID, Role: w.Blueprint.Roles[0]}
		winner.AddCredibility(winnerCredibilityBonus)
		winner.JobSatisfaction = 50
		delete(winner.SlackCaught, w.ID)
		delete(winner.ElectionFailures, w.ID)
		s.emit(fmt.Sprintf("%s wins the vote (%d for, %d against) and now runs the %s",
			winner.Name, yes[winner.ID], no[winner.ID], w.Blueprint.Name), "election")
	} else if mostYes != nil {
		if mostYes.ElectionFailures == nil {
			mostYes.ElectionFailures = make(map[uint64]int)
		}
		mostYes.ElectionFailures[w.ID]++
		if mostYes.ElectionFailures[w.ID] >= electionFailLimit {
			if mostYes.ElectionCooldowns == nil {
				mostYes.ElectionCooldowns = make(map[uint64]uint64)
			}
			mostYes.ElectionCooldowns[w.ID] = now + electionCooldownLength
			s.emit(fmt.Sprintf("%s has failed to win the %s too often and steps back for a while",
				mostYes.Name, w.Blueprint.Name), "election")
		} else {
			s.emit(fmt.Sprintf("No candidate convinced the town to run the %s", w.Blueprint.Name), "election")
		}
	}
	// cycle is discarded here; all transient flags die with it.
}

// eligibleCandidates collects unemployed adults clear of every cooldown,
// in ascending ID order.
func (s *Simulation) eligibleCandidates(w *town.Workplace, now uint64) []*resident.Resident {
	var out []*resident.Resident
	for _, r := range s.sortedResidents() {
		if !r.IsAdult() || r.Employed() || r.ResignCooldownUntil > now {
			continue
		}
		// One-month re-hire ban at the workplace they walked out of.
		if r.LastResigned != nil && r.LastResigned.WorkplaceID == w.ID &&
			now < r.LastResigned.AtMinute+rehireBanMinutes {
			continue
		}
		// Election-failure cooldowns auto-clear once expired, taking the
		// failure count with them.
		if until, ok := r.ElectionCooldowns[w.ID]; ok {
			if now < until {
				continue
			}
			delete(r.ElectionCooldowns, w.ID)
			delete(r.ElectionFailures, w.ID)
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// maybeBribe gives a candidate a small chance to buy a vote, preferring
// poorer targets. The bribe can be witnessed and reported, or the witness
// silenced with a counter-bribe if they love money.
func (s *Simulation) maybeBribe(cand *resident.Resident, cycle *electionCycle) {
	if !s.RNG.Chance(0.10) || cand.Money < bribeAmount {
		return
	}

	// Sample a few residents and lean on the poorest.
	var target *resident.Resident
	for i := 0; i < 3; i++ {
		pick := s.Residents[s.RNG.Intn(len(s.Residents))]
		if pick.ID == cand.ID || !pick.IsAdult() {
			continue
		}
		if target == nil || pick.Money < target.Money {
			target = pick
		}
	}
	if target == nil {
		return
	}

	targetMods := s.Catalog.Modifiers(target.Traits)
	if targetMods.MoneyLoving || target.Money < survivalFloor {
		cand.Spend(bribeAmount)
		target.Earn(bribeAmount, "bribe", 0)
		cycle.bribedBy[target.ID] = cand.ID
	} else {
		cycle.rejectedBy[target.ID] = cand.ID
	}

	// A third party may have seen the exchange.
	if s.RNG.Chance(0.30) {
		witness := s.Residents[s.RNG.Intn(len(s.Residents))]
		if witness.ID == cand.ID || witness.ID == target.ID {
			return
		}
		witnessMods := s.Catalog.Modifiers(witness.Traits)
		if witnessMods.MoneyLoving && cand.Money >= bribeAmount {
			cand.Spend(bribeAmount)
			witness.Earn(bribeAmount, "bribe", 0)
			return // Silenced.
		}
		cycle.reported[cand.ID] = true
		s.emit(fmt.Sprintf("%s was seen buying votes and got reported", cand.Name), "election")
	}
}

// voteScore computes one voter's disposition toward one candidate.
func (s *Simulation) voteScore(voter, cand *resident.Resident, cycle *electionCycle) int {
	score := resident.MutualLove(voter, cand)
	if cycle.bribedBy[voter.ID] == cand.ID {
		score += bribeBonus
	}
	if cycle.rejectedBy[voter.ID] == cand.ID {
		score -= bribeRejectPenalty
	}
	score -= 50 - cand.Credibility
	if cycle.reported[cand.ID] {
		score -= reportedPenalty
	}
	score += s.RNG.Range(-voteNoiseBound, voteNoiseBound)
	return score
}

// ownerHire fills the next open role with the unemployed adult the owner
// likes best.
func (s *Simulation) ownerHire(w *town.Workplace) {
	owner := s.Index[w.Owner()]
	if owner == nil {
		return
	}
	now := s.Clock.Abs()

	var best *resident.Resident
	bestLove := -1
	for _, r := range s.sortedResidents() {
		if !r.IsAdult() || r.Employed() || r.ResignCooldownUntil > now || r.ID == owner.ID {
			continue
		}
		if r.LastResigned != nil && r.LastResigned.WorkplaceID == w.ID &&
			now < r.LastResigned.AtMinute+rehireBanMinutes {
			continue
		}
		if love := resident.MutualLove(owner, r); love > bestLove {
			best, bestLove = r, love
		}
	}
	if best == nil {
		return
	}

	role := w.NextRole()
	w.Staff = append(w.Staff, best.ID)
	best.Job = &resident.Job{WorkplaceID: w.ID, Role: role}
	best.JobSatisfaction = 50
	s.emit(fmt.Sprintf("%s hires %s as %s at the %s", owner.Name, best.Name, role, w.Blueprint.Name), "election")
}

// viceRecruit probabilistically staffs the vice-trade venue with alluring
// residents, up to the role cap.
func (s *Simulation) viceRecruit(w *town.Workplace) {
	if !w.Understaffed() || !s.RNG.Chance(0.20) {
		return
	}
	now := s.Clock.Abs()
	for _, r := range s.sortedResidents() {
		if !r.IsAdult() || r.Employed() || r.ResignCooldownUntil > now {
			continue
		}
		if !s.Catalog.Modifiers(r.Traits).Alluring {
			continue
		}
		role := w.NextRole()
		w.Staff = append(w.Staff, r.ID)
		r.Job = &resident.Job{WorkplaceID: w.ID, Role: role}
		r.JobSatisfaction = 50
		s.emit(fmt.Sprintf("%s starts working nights at the %s", r.Name, w.Blueprint.Name), "election")
		return
	}
}
