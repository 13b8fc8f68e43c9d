package resident

// Status is the categorical label of a pair's bond.
type Status string

const (
	StatusStranger   Status = "stranger"
	StatusFriend     Status = "friend"
	StatusBestFriend Status = "bestfriend"
	StatusLover      Status = "lover"
	StatusSpouse     Status = "spouse"
	StatusMistress   Status = "mistress"
	StatusFWB        Status = "fwb"
	StatusEx         Status = "ex"
)

// Romantic reports whether the status is an active romantic bond.
func (s Status) Romantic() bool {
	return s == StatusLover || s == StatusSpouse || s == StatusMistress
}

// Relationship is one side of a directed pair record. Both residents keep
// independent copies that the romance system updates in lockstep.
type Relationship struct {
	Love   int    `json:"love"` // 0–100
	Status Status `json:"status"`
}

// AddLove adjusts the love score, clamped to [0, 100] immediately.
func (rel *Relationship) AddLove(delta int) {
	rel.Love = clamp(rel.Love+delta, 0, 100)
}

// RelationshipWith returns this resident's side of the bond with other,
// creating a stranger record on first contact.
func (r *Resident) RelationshipWith(other ID) *Relationship {
	if r.Relationships == nil {
		r.Relationships = make(map[ID]*Relationship)
	}
	rel, ok := r.Relationships[other]
	if !ok {
		rel = &Relationship{Status: StatusStranger}
		r.Relationships[other] = rel
	}
	return rel
}

// Forget removes all record of another resident. Used when that resident
// dies or emigrates.
func (r *Resident) Forget(other ID) {
	delete(r.Relationships, other)
	if r.PartnerID == other {
		r.PartnerID = 0
	}
	for i, id := range r.FWBs {
		if id == other {
			r.FWBs = append(r.FWBs[:i], r.FWBs[i+1:]...)
			break
		}
	}
	if r.Relief.Active && r.Relief.PartnerID == other {
		r.Relief = Relief{}
	}
	if r.Pregnancy != nil && r.Pregnancy.OtherParent == other {
		r.Pregnancy.OtherParent = 0
	}
}

// MutualLove averages the two directed love scores between a and b.
func MutualLove(a, b *Resident) int {
	return (a.RelationshipWith(b.ID).Love + b.RelationshipWith(a.ID).Love) / 2
}

// SetMirrored sets the same status on both sides of a pair.
func SetMirrored(a, b *Resident, status Status) {
	a.RelationshipWith(b.ID).Status = status
	b.RelationshipWith(a.ID).Status = status
}

// AddMirroredLove applies the same love delta to both sides of a pair.
func AddMirroredLove(a, b *Resident, delta int) {
	a.RelationshipWith(b.ID).AddLove(delta)
	b.RelationshipWith(a.ID).AddLove(delta)
}
