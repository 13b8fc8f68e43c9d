package town

// Town is the global aggregate: the treasury pool and all workplaces.
type Town struct {
	Name       string       `json:"name"`
	Treasury   int          `json:"treasury"` // Receives ownerless revenue
	Workplaces []*Workplace `json:"workplaces"`

	LastImmigrationDay uint64 `json:"last_immigration_day"`

	index map[uint64]*Workplace
}

// New creates a town with the given workplaces and builds the lookup index.
func New(name string, workplaces []*Workplace) *Town {
	t := &Town{Name: name, Workplaces: workplaces}
	t.Reindex()
	return t
}

// Reindex rebuilds the ID lookup. Call after replacing the workplace list.
func (t *Town) Reindex() {
	t.index = make(map[uint64]*Workplace, len(t.Workplaces))
	for _, w := range t.Workplaces {
		t.index[w.ID] = w
	}
}

// Workplace returns the workplace with the given ID, or nil.
func (t *Town) Workplace(id uint64) *Workplace {
	return t.index[id]
}

// OpenAt returns all workplaces operating at the given hour and weekday.
func (t *Town) OpenAt(hour, weekday int) []*Workplace {
	var open []*Workplace
	for _, w := range t.Workplaces {
		if w.IsOpenAt(hour, weekday) {
			open = append(open, w)
		}
	}
	return open
}

// Pending returns workplaces still under construction.
func (t *Town) Pending() []*Workplace {
	var pending []*Workplace
	for _, w := range t.Workplaces {
		if !w.Built {
			pending = append(pending, w)
		}
	}
	return pending
}

// Hospital returns the first built hospital, or nil.
func (t *Town) Hospital() *Workplace {
	for _, w := range t.Workplaces {
		if w.Built && w.Blueprint != nil && w.Blueprint.Hospital {
			return w
		}
	}
	return nil
}
