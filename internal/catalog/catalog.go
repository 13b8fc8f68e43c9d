// Package catalog holds the static configuration tables the simulation is
// built from: personality archetypes, character traits with their conflict
// graph, and workplace blueprints. Tables are immutable after load.
package catalog

// Personality is a behavioral archetype. Every resident has exactly one.
// Biases are numeric deltas combined generically by the decision engine,
// so new personalities stay additive.
type Personality struct {
	Name       string `yaml:"name"`
	SleepStart int    `yaml:"sleep_start"` // Hour sleep begins (may wrap midnight)
	SleepEnd   int    `yaml:"sleep_end"`   // Hour sleep ends

	SocialBias     float64 `yaml:"social_bias"`     // Free-time socializing weight delta
	ConfessionBias float64 `yaml:"confession_bias"` // Romance confession probability delta
	ProposalBias   float64 `yaml:"proposal_bias"`   // Marriage proposal probability delta
	ReliefBias     float64 `yaml:"relief_bias"`     // Desire-relief persuasion delta
}

// Trait is a character trait. Residents carry up to four, pairwise
// non-conflicting per the conflict lists.
type Trait struct {
	Name      string   `yaml:"name"`
	Conflicts []string `yaml:"conflicts"`

	// Modifier deltas, combined additively wherever a decision branch
	// consults traits.
	NegligenceDelta float64 `yaml:"negligence_delta"` // Work slacking probability
	ResignDelta     float64 `yaml:"resign_delta"`     // Resignation probability
	BuildWeight     float64 `yaml:"build_weight"`     // Free-time construction weight
	SocialWeight    float64 `yaml:"social_weight"`    // Free-time socializing weight
	ViceBias        float64 `yaml:"vice_bias"`        // Survival-pressure vice income bias
	PersuasionDelta float64 `yaml:"persuasion_delta"` // FWB persuasion score delta
	Clever          bool    `yaml:"clever"`           // Halves negligence catch chance
	MoneyLoving     bool    `yaml:"money_loving"`     // Bribe acceptance, build boost
	Alluring        bool    `yaml:"alluring"`         // Vice-trade secondary hiring pool
	Libertine       bool    `yaml:"libertine"`        // Direct FWB compatibility
}

// SellableItem is a priced item a workplace offers.
type SellableItem struct {
	Name  string `yaml:"name"`
	Price int    `yaml:"price"`
}

// Blueprint is the static definition a workplace is instantiated from.
type Blueprint struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	TotalCost  int   `yaml:"total_cost"`  // Construction progress required
	OpenHour   int   `yaml:"open_hour"`   // Inclusive; OpenHour==CloseHour means 24h
	CloseHour  int   `yaml:"close_hour"`  // Exclusive; window may wrap midnight
	ClosedDays []int `yaml:"closed_days"` // Weekday indexes, 0=Monday

	Roles []string       `yaml:"roles"` // Index 0 is the owner/manager role
	Items []SellableItem `yaml:"items"`

	ViceVenue     bool `yaml:"vice_venue"`     // Intimacy/intoxication outcomes possible
	ChaosVenue    bool `yaml:"chaos_venue"`    // Mistress bonds possible
	MarriageVenue bool `yaml:"marriage_venue"` // Proposal probability boost
	Hospital      bool `yaml:"hospital"`       // Paid deliveries
	ViceTrade     bool `yaml:"vice_trade"`     // Secondary trait-gated hiring

	RecommendedTraits []string `yaml:"recommended_traits"` // Trait-learning pool
}

// Catalog bundles the three tables plus derived lookups.
type Catalog struct {
	Personalities []Personality
	Traits        []Trait
	Blueprints    []Blueprint

	personalityByName map[string]*Personality
	traitByName       map[string]*Trait
	blueprintByID     map[string]*Blueprint
	conflictPairs     map[[2]string]bool
}

// index builds the lookup maps. Called once after load.
func (c *Catalog) index() {
	c.personalityByName = make(map[string]*Personality, len(c.Personalities))
	for i := range c.Personalities {
		c.personalityByName[c.Personalities[i].Name] = &c.Personalities[i]
	}
	c.traitByName = make(map[string]*Trait, len(c.Traits))
	c.conflictPairs = make(map[[2]string]bool)
	for i := range c.Traits {
		t := &c.Traits[i]
		c.traitByName[t.Name] = t
		for _, other := range t.Conflicts {
			c.conflictPairs[[2]string{t.Name, other}] = true
			c.conflictPairs[[2]string{other, t.Name}] = true
		}
	}
	c.blueprintByID = make(map[string]*Blueprint, len(c.Blueprints))
	for i := range c.Blueprints {
		c.blueprintByID[c.Blueprints[i].ID] = &c.Blueprints[i]
	}
}

// Personality returns the archetype with the given name, or nil.
func (c *Catalog) Personality(name string) *Personality {
	return c.personalityByName[name]
}

// Trait returns the trait with the given name, or nil.
func (c *Catalog) Trait(name string) *Trait {
	return c.traitByName[name]
}

// Blueprint returns the blueprint with the given id, or nil.
func (c *Catalog) Blueprint(id string) *Blueprint {
	return c.blueprintByID[id]
}

// BlueprintByName resolves a blueprint by display name. Supports the legacy
// save shape that referenced buildings by name instead of id.
func (c *Catalog) BlueprintByName(name string) *Blueprint {
	for i := range c.Blueprints {
		if c.Blueprints[i].Name == name {
			return &c.Blueprints[i]
		}
	}
	return nil
}

// Conflicts reports whether two traits are mutually exclusive.
func (c *Catalog) Conflicts(a, b string) bool {
	return c.conflictPairs[[2]string{a, b}]
}

// Compatible reports whether candidate can join the existing trait set
// without violating the conflict graph or duplicating a trait.
func (c *Catalog) Compatible(existing []string, candidate string) bool {
	if c.traitByName[candidate] == nil {
		return false
	}
	for _, have := range existing {
		if have == candidate || c.Conflicts(have, candidate) {
			return false
		}
	}
	return true
}

// TraitModifiers sums the modifier deltas across a resident's trait set.
type TraitModifiers struct {
	Negligence float64
	Resign     float64
	Build      float64
	Social     float64
	Vice       float64
	Persuasion float64

	Clever      bool
	MoneyLoving bool
	Alluring    bool
	Libertine   bool
}

// Modifiers combines the named traits into one additive modifier set.
// Unknown trait names contribute nothing.
func (c *Catalog) Modifiers(names []string) TraitModifiers {
	var m TraitModifiers
	for _, name := range names {
		t := c.traitByName[name]
		if t == nil {
			continue
		}
		m.Negligence += t.NegligenceDelta
		m.Resign += t.ResignDelta
		m.Build += t.BuildWeight
		m.Social += t.SocialWeight
		m.Vice += t.ViceBias
		m.Persuasion += t.PersuasionDelta
		m.Clever = m.Clever || t.Clever
		m.MoneyLoving = m.MoneyLoving || t.MoneyLoving
		m.Alluring = m.Alluring || t.Alluring
		m.Libertine = m.Libertine || t.Libertine
	}
	return m
}
