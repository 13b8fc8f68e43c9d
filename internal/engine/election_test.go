package engine

import (
	"testing"

	"github.com/talgya/tiny-town/internal/resident"
	"github.com/talgya/tiny-town/internal/town"
)

// electionSim sets up a vacant tavern and a beloved broke candidate. The
// candidate cannot afford a bribe and the voters' affection is high enough
// that vote noise cannot flip the outcome.
func electionSim() (*Simulation, *town.Workplace, *resident.Resident) {
	w := &town.Workplace{ID: 7, BlueprintID: "tavern", Built: true}

	cand := testAdult(1, "Ada Bramble")
	cand.Money = 10 // Below the bribe price.

	voterA := testAdult(2, "Felix Thorn")
	voterA.Job = &resident.Job{WorkplaceID: 99, Role: "clerk"}
	voterB := testAdult(3, "Greta Hollow")
	voterB.Job = &resident.Job{WorkplaceID: 99, Role: "clerk"}

	s := newTestSim(1, []*town.Workplace{w}, []*resident.Resident{cand, voterA, voterB})
	for _, v := range []*resident.Resident{voterA, voterB} {
		v.RelationshipWith(cand.ID).Love = 100
		cand.RelationshipWith(v.ID).Love = 100
	}
	return s, w, cand
}

func TestElectLeaderWinnerTakesOver(t *testing.T) {
	s, w, cand := electionSim()

	s.electLeader(w)

	if len(w.Staff) != 1 || w.Staff[0] != cand.ID {
		t.Fatalf("Staff = %v, want [%d]", w.Staff, cand.ID)
	}
	if cand.Job == nil || cand.Job.WorkplaceID != w.ID || cand.Job.Role != "keeper" {
		t.Fatalf("winner job = %+v", cand.Job)
	}
	if cand.Credibility != 50+winnerCredibilityBonus {
		t.Fatalf("winner credibility = %d, want %d", cand.Credibility, 50+winnerCredibilityBonus)
	}
	if cand.JobSatisfaction != 50 {
		t.Fatalf("winner satisfaction = %d, want 50", cand.JobSatisfaction)
	}
}

func TestElectLeaderNoCandidates(t *testing.T) {
	s, w, cand := electionSim()
	cand.Job = &resident.Job{WorkplaceID: 99, Role: "clerk"} // Everyone employed now.

	s.electLeader(w)

	if len(w.Staff) != 0 {
		t.Fatalf("Staff = %v, want empty", w.Staff)
	}
	if s.Log.Len() != 1 {
		t.Fatalf("expected one narration line, got %d", s.Log.Len())
	}
}

func TestEligibleCandidatesFilters(t *testing.T) {
	s, w, cand := electionSim()
	now := s.Clock.Abs()

	if got := s.eligibleCandidates(w, now); len(got) != 1 || got[0].ID != cand.ID {
		t.Fatalf("baseline candidates = %v", got)
	}

	// Active election cooldown excludes the candidate.
	cand.ElectionCooldowns = map[uint64]uint64{w.ID: now + 1000}
	cand.ElectionFailures = map[uint64]int{w.ID: 3}
	if got := s.eligibleCandidates(w, now); len(got) != 0 {
		t.Fatalf("cooldown ignored, candidates = %v", got)
	}

	// An expired cooldown auto-clears, failures included.
	cand.ElectionCooldowns[w.ID] = now - 1
	if got := s.eligibleCandidates(w, now); len(got) != 1 {
		t.Fatalf("expired cooldown still excluding, candidates = %v", got)
	}
	if _, ok := cand.ElectionCooldowns[w.ID]; ok {
		t.Fatal("expired cooldown should be deleted")
	}
	if _, ok := cand.ElectionFailures[w.ID]; ok {
		t.Fatal("failure count should clear with the cooldown")
	}
}

func TestEligibleCandidatesRehireBan(t *testing.T) {
	s, w, cand := electionSim()
	now := s.Clock.Abs()

	cand.LastResigned = &resident.Resigned{WorkplaceID: w.ID, AtMinute: now}
	if got := s.eligibleCandidates(w, now); len(got) != 0 {
		t.Fatal("resignee should be banned from their old workplace")
	}

	// The ban is per-workplace.
	other := &town.Workplace{ID: 8, BlueprintID: "bakery", Built: true}
	other.Blueprint = s.Catalog.Blueprint("bakery")
	if got := s.eligibleCandidates(other, now); len(got) != 1 {
		t.Fatal("the ban must not extend to other workplaces")
	}
}

func TestOwnerHirePicksBestLiked(t *testing.T) {
	w := &town.Workplace{ID: 7, BlueprintID: "tavern", Built: true, Staff: []resident.ID{1}}
	owner := testAdult(1, "Ada Bramble")
	owner.Job = &resident.Job{WorkplaceID: 7, Role: "keeper"}
	liked := testAdult(2, "Felix Thorn")
	other := testAdult(3, "Greta Hollow")

	s := newTestSim(1, []*town.Workplace{w}, []*resident.Resident{owner, liked, other})
	owner.RelationshipWith(liked.ID).Love = 80
	liked.RelationshipWith(owner.ID).Love = 80
	owner.RelationshipWith(other.ID).Love = 20
	other.RelationshipWith(owner.ID).Love = 20

	s.ownerHire(w)

	if len(w.Staff) != 2 || w.Staff[1] != liked.ID {
		t.Fatalf("Staff = %v, want owner plus %d", w.Staff, liked.ID)
	}
	if liked.Job == nil || liked.Job.Role != "bartender" {
		t.Fatalf("hire job = %+v, want bartender", liked.Job)
	}
}

func TestVoteScoreComponents(t *testing.T) {
	s, _, cand := electionSim()
	voter := s.Index[2]
	cycle := &electionCycle{
		bribedBy:   map[resident.ID]resident.ID{},
		rejectedBy: map[resident.ID]resident.ID{},
		reported:   map[resident.ID]bool{},
	}

	// Love 100, credibility 50: score = 100 + noise.
	base := s.voteScore(voter, cand, cycle)
	if base < 100-voteNoiseBound || base > 100+voteNoiseBound {
		t.Fatalf("base score = %d, want 100 within noise", base)
	}

	cycle.reported[cand.ID] = true
	cand.Credibility = 20
	reported := s.voteScore(voter, cand, cycle)
	// 100 - 30 (credibility gap) - 40 (reported) = 30, within noise.
	if reported < 30-voteNoiseBound || reported > 30+voteNoiseBound {
		t.Fatalf("penalized score = %d, want 30 within noise", reported)
	}
}
