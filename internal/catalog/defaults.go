package catalog

// Default builds the compiled-in catalog used when no YAML override is
// supplied. Table contents mirror the shipped game data.
func Default() *Catalog {
	c := &Catalog{
		Personalities: defaultPersonalities(),
		Traits:        defaultTraits(),
		Blueprints:    defaultBlueprints(),
	}
	c.index()
	return c
}

func defaultPersonalities() []Personality {
	return []Personality{
		{Name: "cheerful", SleepStart: 23, SleepEnd: 7, SocialBias: 0.15, ConfessionBias: 0.05, ProposalBias: 0.02, ReliefBias: 0},
		{Name: "brooding", SleepStart: 2, SleepEnd: 10, SocialBias: -0.15, ConfessionBias: -0.03, ProposalBias: -0.01, ReliefBias: 0.05},
		{Name: "romantic", SleepStart: 0, SleepEnd: 8, SocialBias: 0.05, ConfessionBias: 0.10, ProposalBias: 0.05, ReliefBias: 0.05},
		{Name: "stoic", SleepStart: 22, SleepEnd: 5, SocialBias: -0.05, ConfessionBias: -0.05, ProposalBias: 0, ReliefBias: -0.05},
		{Name: "restless", SleepStart: 3, SleepEnd: 9, SocialBias: 0.10, ConfessionBias: 0.02, ProposalBias: -0.02, ReliefBias: 0.10},
	}
}

func defaultTraits() []Trait {
	return []Trait{
		{Name: "hardworking", Conflicts: []string{"lazy"}, NegligenceDelta: -0.04, ResignDelta: -0.03, BuildWeight: 0.10},
		{Name: "lazy", Conflicts: []string{"hardworking"}, NegligenceDelta: 0.06, ResignDelta: 0.04, BuildWeight: -0.10},
		{Name: "clever", Conflicts: []string{"gullible"}, Clever: true},
		{Name: "gullible", Conflicts: []string{"clever"}, PersuasionDelta: 10},
		{Name: "money-loving", Conflicts: []string{"generous"}, MoneyLoving: true, BuildWeight: 0.15, ViceBias: 0.10},
		{Name: "generous", Conflicts: []string{"money-loving"}, SocialWeight: 0.05},
		{Name: "sociable", Conflicts: []string{"solitary"}, SocialWeight: 0.20, PersuasionDelta: 5},
		{Name: "solitary", Conflicts: []string{"sociable"}, SocialWeight: -0.20},
		{Name: "alluring", Conflicts: nil, Alluring: true, PersuasionDelta: 15},
		{Name: "libertine", Conflicts: []string{"faithful"}, Libertine: true, ViceBias: 0.15, PersuasionDelta: 10},
		{Name: "faithful", Conflicts: []string{"libertine"}, PersuasionDelta: -15},
		{Name: "hot-headed", Conflicts: []string{"stoical"}, ResignDelta: 0.05, NegligenceDelta: 0.02},
		{Name: "stoical", Conflicts: []string{"hot-headed"}, ResignDelta: -0.04},
	}
}

func defaultBlueprints() []Blueprint {
	return []Blueprint{
		{
			ID: "bakery", Name: "Bakery", Description: "Fresh bread and gossip from dawn.",
			TotalCost: 500, OpenHour: 6, CloseHour: 18, ClosedDays: []int{6},
			Roles: []string{"baker", "assistant"},
			Items: []SellableItem{{Name: "bread", Price: 6}, {Name: "cake", Price: 14}},
			RecommendedTraits: []string{"hardworking", "generous"},
		},
		{
			ID: "tavern", Name: "Rusty Tankard", Description: "Drinks, music and bad decisions.",
			TotalCost: 800, OpenHour: 16, CloseHour: 2, ClosedDays: nil,
			Roles: []string{"keeper", "bartender", "musician"},
			Items: []SellableItem{{Name: "ale", Price: 8}, {Name: "stew", Price: 12}},
			ViceVenue: true, ChaosVenue: true,
			RecommendedTraits: []string{"sociable", "hot-headed"},
		},
		{
			ID: "chapel", Name: "Hilltop Chapel", Description: "Weddings and quiet reflection.",
			TotalCost: 1200, OpenHour: 8, CloseHour: 20, ClosedDays: []int{0},
			Roles: []string{"officiant"},
			Items: []SellableItem{{Name: "ceremony", Price: 40}},
			MarriageVenue: true,
			RecommendedTraits: []string{"faithful", "stoical"},
		},
		{
			ID: "clinic", Name: "Town Clinic", Description: "Patches wounds, delivers babies.",
			TotalCost: 1500, OpenHour: 0, CloseHour: 0, ClosedDays: nil,
			Roles: []string{"doctor", "nurse"},
			Items: []SellableItem{{Name: "checkup", Price: 25}, {Name: "delivery", Price: 100}},
			Hospital: true,
			RecommendedTraits: []string{"clever", "hardworking"},
		},
		{
			ID: "nightclub", Name: "Velvet Room", Description: "The town's worst-kept secret.",
			TotalCost: 1000, OpenHour: 20, CloseHour: 4, ClosedDays: []int{1},
			Roles: []string{"proprietor", "host", "host"},
			Items: []SellableItem{{Name: "company", Price: 30}, {Name: "champagne", Price: 22}},
			ViceVenue: true, ChaosVenue: true, ViceTrade: true,
			RecommendedTraits: []string{"alluring", "libertine"},
		},
		{
			ID: "market", Name: "Market Hall", Description: "Everything a household needs.",
			TotalCost: 600, OpenHour: 7, CloseHour: 19, ClosedDays: []int{6},
			Roles: []string{"grocer", "clerk"},
			Items: []SellableItem{{Name: "groceries", Price: 10}, {Name: "contraceptives", Price: 5}},
			RecommendedTraits: []string{"money-loving", "clever"},
		},
	}
}
