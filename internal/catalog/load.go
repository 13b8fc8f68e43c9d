package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileTables is the YAML shape of a catalog override file. Any section left
// empty keeps the compiled-in defaults.
type fileTables struct {
	Personalities []Personality `yaml:"personalities"`
	Traits        []Trait       `yaml:"traits"`
	Blueprints    []Blueprint   `yaml:"blueprints"`
}

// Load reads a catalog override file and merges it over the defaults.
// Invalid table entries are rejected at the boundary; the caller keeps
// whatever catalog it already had.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var ft fileTables
	if err := yaml.Unmarshal(raw, &ft); err != nil {
		return nil, fmt.Errorf("catalog yaml: %w", err)
	}

	c := Default()
	if len(ft.Personalities) > 0 {
		c.Personalities = ft.Personalities
	}
	if len(ft.Traits) > 0 {
		c.Traits = ft.Traits
	}
	if len(ft.Blueprints) > 0 {
		c.Blueprints = ft.Blueprints
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	c.index()
	return c, nil
}

func (c *Catalog) validate() error {
	if len(c.Personalities) == 0 {
		return fmt.Errorf("catalog: at least one personality required")
	}
	for _, p := range c.Personalities {
		if p.Name == "" {
			return fmt.Errorf("catalog: personality with blank name")
		}
		if p.SleepStart < 0 || p.SleepStart > 23 || p.SleepEnd < 0 || p.SleepEnd > 23 {
			return fmt.Errorf("catalog: personality %q sleep hours out of range", p.Name)
		}
	}
	for _, t := range c.Traits {
		if t.Name == "" {
			return fmt.Errorf("catalog: trait with blank name")
		}
	}
	for _, b := range c.Blueprints {
		if b.ID == "" || b.Name == "" {
			return fmt.Errorf("catalog: blueprint with blank id or name")
		}
		if b.TotalCost <= 0 {
			return fmt.Errorf("catalog: blueprint %q needs a positive total cost", b.ID)
		}
	}
	return nil
}
