package engine

import (
	"testing"

	"github.com/talgya/tiny-town/internal/resident"
	"github.com/talgya/tiny-town/internal/town"
)

func TestUpdateFriendshipPromotes(t *testing.T) {
	a := testAdult(1, "Ada Bramble")
	b := testAdult(2, "Felix Thorn")
	s := newTestSim(1, nil, []*resident.Resident{a, b})

	a.RelationshipWith(b.ID).Love = 40
	b.RelationshipWith(a.ID).Love = 40
	s.updateFriendship(a, b)
	if a.RelationshipWith(b.ID).Status != resident.StatusFriend {
		t.Fatal("love past the threshold should promote to friend")
	}
	if b.RelationshipWith(a.ID).Status != resident.StatusFriend {
		t.Fatal("promotion should apply on both sides")
	}

	a.RelationshipWith(b.ID).Love = 80
	b.RelationshipWith(a.ID).Love = 80
	s.updateFriendship(a, b)
	if a.RelationshipWith(b.ID).Status != resident.StatusBestFriend {
		t.Fatal("mutual high love between friends should promote to best friend")
	}
}

func TestUpdateFriendshipNeedsBothSidesForBestFriend(t *testing.T) {
	a := testAdult(1, "Ada Bramble")
	b := testAdult(2, "Felix Thorn")
	s := newTestSim(1, nil, []*resident.Resident{a, b})

	a.RelationshipWith(b.ID).Love = 80
	a.RelationshipWith(b.ID).Status = resident.StatusFriend
	b.RelationshipWith(a.ID).Love = 40
	b.RelationshipWith(a.ID).Status = resident.StatusFriend

	s.updateFriendship(a, b)
	if a.RelationshipWith(b.ID).Status == resident.StatusBestFriend {
		t.Fatal("one-sided affection must not reach best friend")
	}
}

func TestUpdateFriendshipLeavesRomanceAlone(t *testing.T) {
	a := testAdult(1, "Ada Bramble")
	b := testAdult(2, "Felix Thorn")
	s := newTestSim(1, nil, []*resident.Resident{a, b})

	resident.SetMirrored(a, b, resident.StatusLover)
	a.RelationshipWith(b.ID).Love = 90
	b.RelationshipWith(a.ID).Love = 90
	s.updateFriendship(a, b)
	if a.RelationshipWith(b.ID).Status != resident.StatusLover {
		t.Fatal("romantic statuses must not be rewritten by the friendship lattice")
	}
}

func TestBondFWB(t *testing.T) {
	a := testAdult(1, "Ada Bramble")
	b := testAdult(2, "Felix Thorn")
	s := newTestSim(1, nil, []*resident.Resident{a, b})

	s.bondFWB(a, b)

	if !a.IsFWB(b.ID) || !b.IsFWB(a.ID) {
		t.Fatal("FWB lists should update on both sides")
	}
	if a.RelationshipWith(b.ID).Status != resident.StatusFWB {
		t.Fatalf("status = %s, want fwb", a.RelationshipWith(b.ID).Status)
	}
}

func TestBondFWBKeepsRomanticStatus(t *testing.T) {
	a := testAdult(1, "Ada Bramble")
	b := testAdult(2, "Felix Thorn")
	s := newTestSim(1, nil, []*resident.Resident{a, b})

	resident.SetMirrored(a, b, resident.StatusMistress)
	s.bondFWB(a, b)
	if a.RelationshipWith(b.ID).Status != resident.StatusMistress {
		t.Fatal("an existing romantic status must survive an FWB bond")
	}
	if !a.IsFWB(b.ID) {
		t.Fatal("the FWB list should still be updated")
	}
}

func TestConfessionRequiresAffection(t *testing.T) {
	a := testAdult(1, "Ada Bramble")
	b := testAdult(2, "Felix Thorn")
	w := tavern()
	s := newTestSim(1, nil, []*resident.Resident{a, b})

	// Mutual love at the threshold is not enough; nothing may change.
	a.RelationshipWith(b.ID).Love = 70
	b.RelationshipWith(a.ID).Love = 70
	for i := 0; i < 50; i++ {
		s.tryConfession(a, b, w)
	}
	if a.PartnerID != 0 || b.PartnerID != 0 {
		t.Fatal("confession must not fire at or below the love threshold")
	}
	if a.RelationshipWith(b.ID).Love != 70 {
		t.Fatal("a non-attempt must not move affection")
	}
}

func TestSocializeRemoteTravelCooldown(t *testing.T) {
	r := testAdult(1, "Ada Bramble")
	r.Money = 1000
	w := tavern()
	s := newTestSim(1, []*town.Workplace{w}, []*resident.Resident{r})
	hub := &fakeRemote{}
	s.Remote = hub

	s.socialize(r, w)
	if hub.consume != 1 {
		t.Fatalf("consume = %d, want 1", hub.consume)
	}
	if r.TravelCooldownUntil != s.Clock.Abs()+travelCooldownMinutes {
		t.Fatalf("cooldown = %d", r.TravelCooldownUntil)
	}

	// A second purchase inside the window stays local.
	s.socialize(r, w)
	if hub.consume != 1 {
		t.Fatalf("consume = %d, the cooldown must hold", hub.consume)
	}

	// An expired window opens the hub again.
	r.TravelCooldownUntil = s.Clock.Abs()
	s.socialize(r, w)
	if hub.consume != 2 {
		t.Fatalf("consume = %d, want 2 after the cooldown", hub.consume)
	}
}
