// Social interaction and the relationship/romance state machine:
// friendship thresholds, confessions, proposals, mistresses, FWB bonds,
// intimacy, and infidelity fallout.
package engine

import (
	"fmt"

	"github.com/talgya/tiny-town/internal/resident"
	"github.com/talgya/tiny-town/internal/town"
)

const (
	friendThreshold     = 30
	bestFriendThreshold = 70
	confessThreshold    = 70

	persuasionThreshold = 60

	pregnancyChance  = 0.20
	pregnancyMinutes = 10 * MinutesPerDay

	intoxicationMinutes = 240

	travelCooldownMinutes = 180
)

// socialize takes the resident to an open venue: a purchase, a chance
// encounter, and whatever the relationship lattice allows from there.
func (s *Simulation) socialize(r *resident.Resident, venue *town.Workplace) {
	// Buy something; the venue's revenue event runs through the distributor.
	if len(venue.Blueprint.Items) > 0 {
		item := venue.Blueprint.Items[s.RNG.Intn(len(venue.Blueprint.Items))]
		if r.Spend(item.Price) {
			s.Distribute(venue, float64(item.Price))
			if item.Name == "contraceptives" {
				r.Contraceptives++
			}
			// At most one hub trip per cooldown window.
			if now := s.Clock.Abs(); s.Remote != nil && now >= r.TravelCooldownUntil {
				s.Remote.AttemptConsume(uint64(r.ID), "", venue.Blueprint.ID, item.Price)
				r.TravelCooldownUntil = now + travelCooldownMinutes
			}
		}
	}

	other := s.pickCompanion(r)
	if other == nil {
		r.AddHappiness(1)
		s.emit(fmt.Sprintf("%s enjoys a quiet visit to the %s", r.Name, venue.Blueprint.Name), "social")
		return
	}

	resident.AddMirroredLove(r, other, s.RNG.Range(1, 3))
	r.AddHappiness(2)
	other.AddHappiness(1)
	s.updateFriendship(r, other)
	s.emit(fmt.Sprintf("%s spends time with %s at the %s", r.Name, other.Name, venue.Blueprint.Name), "social")

	// Vice venues loosen everyone up.
	if venue.Blueprint.ViceVenue && !r.Intoxicated && s.RNG.Chance(0.2) {
		r.Intoxicated = true
		r.IntoxicatedUntil = s.Clock.Abs() + intoxicationMinutes
		r.AddHappiness(5)
	}

	if r.IsAdult() && other.IsAdult() {
		s.tryRomance(r, other, venue)
	}
}

// pickCompanion returns a random other resident, or nil in a town of one.
func (s *Simulation) pickCompanion(r *resident.Resident) *resident.Resident {
	if len(s.Residents) < 2 {
		return nil
	}
	for i := 0; i < 5; i++ {
		pick := s.Residents[s.RNG.Intn(len(s.Residents))]
		if pick.ID != r.ID {
			return pick
		}
	}
	return nil
}

// updateFriendship promotes along the platonic lattice. Promotions are
// monotonic: a bond never falls back to stranger, and romantic statuses
// are left alone.
func (s *Simulation) updateFriendship(a, b *resident.Resident) {
	relA := a.RelationshipWith(b.ID)
	relB := b.RelationshipWith(a.ID)

	if relA.Status == resident.StatusStranger && relA.Love > friendThreshold {
		relA.Status = resident.StatusFriend
	}
	if relB.Status == resident.StatusStranger && relB.Love > friendThreshold {
		relB.Status = resident.StatusFriend
	}
	if relA.Status == resident.StatusFriend && relB.Status == resident.StatusFriend &&
		relA.Love > bestFriendThreshold && relB.Love > bestFriendThreshold {
		relA.Status = resident.StatusBestFriend
		relB.Status = resident.StatusBestFriend
		s.emit(fmt.Sprintf("%s and %s are now best friends", a.Name, b.Name), "social")
	}
}

// tryRomance walks the romantic branch for one encounter.
func (s *Simulation) tryRomance(a, b *resident.Resident, venue *town.Workplace) {
	relA := a.RelationshipWith(b.ID)

	switch {
	case a.PartnerID == 0 && b.PartnerID == 0 && !relA.Status.Romantic():
		s.tryConfession(a, b, venue)
	case a.PartnerID == b.ID && relA.Status == resident.StatusLover:
		s.tryProposal(a, b, venue)
	case a.PartnerID != 0 && a.PartnerID != b.ID && venue.Blueprint.ChaosVenue:
		s.tryMistress(a, b)
	}

	// FWB runs in parallel with everything non-exclusive.
	if !a.IsFWB(b.ID) && a.PartnerID != b.ID {
		s.tryFWB(a, b)
	}

	if venue.Blueprint.ViceVenue {
		s.tryIntimacy(a, b)
	}
}

// tryConfession can promote an unattached pair straight to lovers once
// affection clears the bar.
func (s *Simulation) tryConfession(a, b *resident.Resident, venue *town.Workplace) {
	if resident.MutualLove(a, b) <= confessThreshold {
		return
	}
	chance := 0.10
	if p := s.Catalog.Personality(a.Personality); p != nil {
		chance += p.ConfessionBias
	}
	if venue.Blueprint.ViceVenue {
		chance += 0.05
	}
	if !s.RNG.Chance(chance) {
		return
	}

	// The target weighs the offer with their own modifiers.
	accept := 0.5 + float64(resident.MutualLove(a, b))/200
	if p := s.Catalog.Personality(b.Personality); p != nil {
		accept += p.ConfessionBias
	}
	if s.RNG.Chance(accept) {
		resident.SetMirrored(a, b, resident.StatusLover)
		a.PartnerID = b.ID
		b.PartnerID = a.ID
		a.AddHappiness(20)
		b.AddHappiness(20)
		s.emit(fmt.Sprintf("%s confessed to %s — they are now a couple!", a.Name, b.Name), "romance")
	} else {
		resident.AddMirroredLove(a, b, -10)
		a.AddHappiness(-10)
		s.emit(fmt.Sprintf("%s confessed to %s and was turned down", a.Name, b.Name), "romance")
	}
}

// tryProposal can turn lovers into spouses, boosted heavily at the
// marriage venue.
func (s *Simulation) tryProposal(a, b *resident.Resident, venue *town.Workplace) {
	chance := 0.05
	if p := s.Catalog.Personality(a.Personality); p != nil {
		chance += p.ProposalBias
	}
	if venue.Blueprint.MarriageVenue {
		chance *= 5
	}
	if !s.RNG.Chance(chance) {
		return
	}

	if s.RNG.Chance(0.6 + float64(resident.MutualLove(a, b))/200) {
		resident.SetMirrored(a, b, resident.StatusSpouse)
		a.AddHappiness(30)
		b.AddHappiness(30)
		s.emit(fmt.Sprintf("%s and %s are married!", a.Name, b.Name), "romance")
	} else {
		a.AddHappiness(-25)
		b.AddHappiness(-10)
		s.emit(fmt.Sprintf("%s proposed to %s and was refused", a.Name, b.Name), "romance")
	}
}

// tryMistress lets a committed resident form a side bond at a chaos venue.
func (s *Simulation) tryMistress(a, b *resident.Resident) {
	if b.PartnerID == a.ID || a.RelationshipWith(b.ID).Status.Romantic() {
		return
	}
	if !s.RNG.Chance(0.02) {
		return
	}
	resident.SetMirrored(a, b, resident.StatusMistress)
	resident.AddMirroredLove(a, b, 10)
	s.emit(fmt.Sprintf("%s and %s have been seeing a lot of each other lately...", a.Name, b.Name), "romance")
}

// tryFWB forms a relief-oriented bond: direct compatibility for two
// libertines, otherwise a persuasion roll that can fail and sour things.
func (s *Simulation) tryFWB(a, b *resident.Resident) {
	modsA := s.Catalog.Modifiers(a.Traits)
	modsB := s.Catalog.Modifiers(b.Traits)

	if modsA.Libertine && modsB.Libertine {
		s.bondFWB(a, b)
		return
	}

	// Persuasion only comes up when the initiator is wound up enough.
	if a.Desire < desireThreshold || !s.RNG.Chance(0.15) {
		return
	}
	score := resident.MutualLove(a, b)/2 + int(modsB.Persuasion) + (b.Happiness-50)/5 + b.Desire/4
	if p := s.Catalog.Personality(b.Personality); p != nil {
		score += int(p.ReliefBias * 100)
	}
	if score >= persuasionThreshold {
		s.bondFWB(a, b)
	} else {
		resident.AddMirroredLove(a, b, -5)
		s.emit(fmt.Sprintf("%s made an awkward suggestion to %s and regrets it", a.Name, b.Name), "romance")
	}
}

func (s *Simulation) bondFWB(a, b *resident.Resident) {
	a.AddFWB(b.ID)
	b.AddFWB(a.ID)
	relA := a.RelationshipWith(b.ID)
	relB := b.RelationshipWith(a.ID)
	if !relA.Status.Romantic() {
		relA.Status = resident.StatusFWB
	}
	if !relB.Status.Romantic() {
		relB.Status = resident.StatusFWB
	}
	s.emit(fmt.Sprintf("%s and %s have come to an arrangement", a.Name, b.Name), "romance")
}

// tryIntimacy runs the vice-venue intimacy event: counters, affection,
// contraception vs pregnancy, and the infidelity discovery sub-roll.
func (s *Simulation) tryIntimacy(a, b *resident.Resident) {
	rel := a.RelationshipWith(b.ID)
	intimate := rel.Status.Romantic() || rel.Status == resident.StatusFWB || a.IsFWB(b.ID)
	if !intimate || !s.RNG.Chance(0.3) {
		return
	}

	a.IntimacyCount++
	b.IntimacyCount++
	resident.AddMirroredLove(a, b, 3)
	a.AddHappiness(10)
	b.AddHappiness(10)
	a.Desire = 0
	b.Desire = 0

	switch {
	case a.Contraceptives > 0:
		a.Contraceptives--
	case b.Contraceptives > 0:
		b.Contraceptives--
	case a.Pregnancy == nil && b.Pregnancy == nil && s.RNG.Chance(pregnancyChance):
		carrier, otherParent := a, b
		if s.RNG.Chance(0.5) {
			carrier, otherParent = b, a
		}
		carrier.Pregnancy = &resident.Pregnancy{
			OtherParent: otherParent.ID,
			DueMinute:   s.Clock.Abs() + pregnancyMinutes,
		}
		s.emit(fmt.Sprintf("%s is expecting a child", carrier.Name), "romance")
	}

	// Unfaithfulness can come to light.
	s.maybeDiscoverAffair(a, b)
	s.maybeDiscoverAffair(b, a)
}

// maybeDiscoverAffair severs the cheater's primary partnership when an
// affair is found out. Both sides drop to "ex" with affection reset.
func (s *Simulation) maybeDiscoverAffair(cheater, with *resident.Resident) {
	if cheater.PartnerID == 0 || cheater.PartnerID == with.ID {
		return
	}
	if !s.RNG.Chance(0.25) {
		return
	}
	partner := s.Index[cheater.PartnerID]
	if partner == nil {
		cheater.PartnerID = 0
		return
	}
	resident.SetMirrored(cheater, partner, resident.StatusEx)
	cheater.RelationshipWith(partner.ID).Love = 0
	partner.RelationshipWith(cheater.ID).Love = 0
	cheater.PartnerID = 0
	partner.PartnerID = 0
	cheater.AddHappiness(-20)
	partner.AddHappiness(-30)
	s.emit(fmt.Sprintf("%s found out about %s and %s — it's over between them",
		partner.Name, cheater.Name, with.Name), "romance")
}
