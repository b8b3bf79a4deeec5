package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// System is a backend users can be granted access to.
type System struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var (
	ErrEmptySystemID     = errors.New("system id must not be empty")
	ErrDuplicateSystemID = errors.New("duplicate system id")
)

// Catalog is the fixed, read-only set of systems. It is safe for concurrent
// use because nothing mutates it after New returns.
type Catalog struct {
	systems []System
	byID    map[string]int
}

func New(systems []System) (*Catalog, error) {
	c := &Catalog{
		systems: make([]System, 0, len(systems)),
		byID:    make(map[string]int, len(systems)),
	}
	for _, s := range systems {
		id := strings.TrimSpace(s.ID)
		if id == "" {
			return nil, ErrEmptySystemID
		}
		if _, dup := c.byID[id]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSystemID, id)
		}
		s.ID = id
		c.byID[id] = len(c.systems)
		c.systems = append(c.systems, s)
	}
	return c, nil
}

// List returns a copy of the systems in catalog order.
func (c *Catalog) List() []System {
	out := make([]System, len(c.systems))
	copy(out, c.systems)
	return out
}

func (c *Catalog) Get(id string) (System, bool) {
	i, ok := c.byID[id]
	if !ok {
		return System{}, false
	}
	return c.systems[i], true
}

func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.systems))
	for i, s := range c.systems {
		ids[i] = s.ID
	}
	return ids
}

func (c *Catalog) Len() int {
	return len(c.systems)
}
