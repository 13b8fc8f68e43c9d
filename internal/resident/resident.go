// Package resident provides the agent data model: vitals, psychology,
// employment, the social graph, and reproductive state.
package resident

// ID is a stable identifier for a resident. Display names are a separate,
// renamable attribute and are never used as keys.
type ID uint64

// Job binds a resident to a role at a workplace.
type Job struct {
	WorkplaceID uint64 `json:"workplace_id"`
	Role        string `json:"role"`
}

// Pregnancy tracks an expected birth.
type Pregnancy struct {
	OtherParent ID     `json:"other_parent"`
	DueMinute   uint64 `json:"due_minute"` // Absolute sim-minute
}

// Resigned records the most recent resignation, enforcing the one-month
// re-hire ban at that workplace.
type Resigned struct {
	WorkplaceID uint64 `json:"workplace_id"`
	AtMinute    uint64 `json:"at_minute"`
}

// Relief tracks an in-progress desire-relief activity.
type Relief struct {
	Active     bool   `json:"active"`
	PartnerID  ID     `json:"partner_id,omitempty"` // Zero for self-relief
	EndsMinute uint64 `json:"ends_minute"`
}

// Resident is one autonomous agent in the town.
type Resident struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`

	// Vitals
	Happiness   int    `json:"happiness"` // 0–100
	Money       int    `json:"money"`     // ≥0 currency units
	Age         int    `json:"age"`       // Sim-years
	MaxLifespan int    `json:"max_lifespan"`
	BornMinute  uint64 `json:"born_minute"` // Absolute sim-minute; 0 = unknown (pre-dates the town)

	// Psychology
	Personality string   `json:"personality"`
	Traits      []string `json:"traits"` // 0–4, pairwise non-conflicting

	// Employment
	Job *Job `json:"job,omitempty"`

	// Social
	Relationships map[ID]*Relationship `json:"relationships"`
	PartnerID     ID                   `json:"partner_id,omitempty"` // Exclusive partner, 0 = none

	// Reproductive
	Pregnancy      *Pregnancy `json:"pregnancy,omitempty"`
	Contraceptives int        `json:"contraceptives"`
	Children       []ID       `json:"children,omitempty"`
	Parents        []ID       `json:"parents,omitempty"`

	// Cooldowns (absolute sim-minutes; 0 = inactive)
	ResignCooldownUntil uint64            `json:"resign_cooldown_until,omitempty"`
	ElectionCooldowns   map[uint64]uint64 `json:"election_cooldowns,omitempty"`    // Workplace ID → until-minute
	ElectionFailures    map[uint64]int    `json:"election_failures,omitempty"`     // Workplace ID → failed cycles
	LastResigned        *Resigned         `json:"last_resigned,omitempty"`
	TravelCooldownUntil uint64            `json:"travel_cooldown_until,omitempty"`

	// Vice / activity
	Desire           int    `json:"desire"` // 0–100
	Intoxicated      bool   `json:"intoxicated"`
	IntoxicatedUntil uint64 `json:"intoxicated_until,omitempty"`
	Relief           Relief `json:"relief"`
	FWBs             []ID   `json:"fwbs,omitempty"`
	IntimacyCount    int    `json:"intimacy_count"`

	// Bookkeeping
	IncomeByCategory map[string]int `json:"income_by_category,omitempty"`
	IncomeByWork     map[uint64]int `json:"income_by_work,omitempty"` // Workplace ID → lifetime earnings
	SlackCaught      map[uint64]int `json:"slack_caught,omitempty"`   // Workplace ID → times caught
	JobSatisfaction  int            `json:"job_satisfaction"`         // 0–100
	Credibility      int            `json:"credibility"`              // 0–100, regenerates toward 50
	SleepMinutes     uint64         `json:"sleep_minutes"`
}

// Adult age band boundary. Residents younger than this cannot hold jobs,
// do street work, or earn vice income.
const AdultAge = 16

// IsAdult reports whether the resident is outside the juvenile band.
func (r *Resident) IsAdult() bool { return r.Age >= AdultAge }

// Employed reports whether the resident currently holds a job.
func (r *Resident) Employed() bool { return r.Job != nil }

// HasTrait reports whether the resident carries the named trait.
func (r *Resident) HasTrait(name string) bool {
	for _, t := range r.Traits {
		if t == name {
			return true
		}
	}
	return false
}

// AddHappiness adjusts happiness, clamped to [0, 100].
func (r *Resident) AddHappiness(delta int) {
	r.Happiness = clamp(r.Happiness+delta, 0, 100)
}

// AddDesire adjusts desire, clamped to [0, 100].
func (r *Resident) AddDesire(delta int) {
	r.Desire = clamp(r.Desire+delta, 0, 100)
}

// AddCredibility adjusts credibility, clamped to [0, 100].
func (r *Resident) AddCredibility(delta int) {
	r.Credibility = clamp(r.Credibility+delta, 0, 100)
}

// Earn credits money to the resident and both income ledgers.
func (r *Resident) Earn(amount int, category string, workplaceID uint64) {
	if amount <= 0 {
		return
	}
	r.Money += amount
	if r.IncomeByCategory == nil {
		r.IncomeByCategory = make(map[string]int)
	}
	r.IncomeByCategory[category] += amount
	if workplaceID != 0 {
		if r.IncomeByWork == nil {
			r.IncomeByWork = make(map[uint64]int)
		}
		r.IncomeByWork[workplaceID] += amount
	}
}

// Spend debits money, flooring at zero. Returns false (and deducts nothing)
// if the resident cannot afford the amount.
func (r *Resident) Spend(amount int) bool {
	if amount < 0 || r.Money < amount {
		return false
	}
	r.Money -= amount
	return true
}

// IsFWB reports whether the other resident is on the friends-with-benefits list.
func (r *Resident) IsFWB(other ID) bool {
	for _, id := range r.FWBs {
		if id == other {
			return true
		}
	}
	return false
}

// AddFWB records a friends-with-benefits bond (idempotent).
func (r *Resident) AddFWB(other ID) {
	if !r.IsFWB(other) {
		r.FWBs = append(r.FWBs, other)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
