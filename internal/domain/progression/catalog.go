package progression

// Catalog is the read-only monster and constants data a Rules value works from.
// It is never mutated after NewCatalog returns.
type Catalog struct {
	monsters  map[string]MonsterDefinition
	constants map[string]int
}

func NewCatalog(monsters map[string]MonsterDefinition, constants map[string]int) Catalog {
	c := Catalog{
		monsters:  make(map[string]MonsterDefinition, len(monsters)),
		constants: make(map[string]int, len(constants)),
	}
	for name, m := range monsters {
		m.Name = name
		m.Traits = append([]string(nil), m.Traits...)
		c.monsters[name] = m.Normalize()
	}
	for k, v := range constants {
		c.constants[k] = v
	}
	return c
}

func (c Catalog) Monster(name string) (MonsterDefinition, bool) {
	m, ok := c.monsters[name]
	if !ok {
		return MonsterDefinition{}, false
	}
	m.Traits = append([]string{}, m.Traits...)
	return m, true
}

func (c Catalog) Constant(name string) (int, bool) {
	v, ok := c.constants[name]
	return v, ok
}

// Monsters returns a copy of every definition keyed by type name.
func (c Catalog) Monsters() map[string]MonsterDefinition {
	out := make(map[string]MonsterDefinition, len(c.monsters))
	for name, m := range c.monsters {
		m.Traits = append([]string{}, m.Traits...)
		out[name] = m
	}
	return out
}

func (c Catalog) Constants() map[string]int {
	out := make(map[string]int, len(c.constants))
	for k, v := range c.constants {
		out[k] = v
	}
	return out
}

func (c Catalog) Len() int {
	return len(c.monsters)
}
