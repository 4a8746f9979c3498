package domain

import "fmt"

// Question is a single feedback question of an exhibit.
type Question struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

// Exhibit is one installation with its description and ordered questions.
type Exhibit struct {
	Name      string     `json:"name" yaml:"-"`
	OneLiner  string     `json:"one_liner,omitempty" yaml:"one_liner"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// Catalog is the immutable index of exhibits, preserving source order.
// Build it with NewCatalog; the zero value is an empty catalog.
type Catalog struct {
	names    []string
	exhibits map[string]Exhibit
}

// NewCatalog builds a catalog from exhibits in priority order.
// A repeated name replaces the earlier definition but keeps its position.
// Duplicate question ids within an exhibit are rejected, as are ids reserved
// for navigational prompts.
func NewCatalog(exhibits ...Exhibit) (*Catalog, error) {
	c := &Catalog{exhibits: make(map[string]Exhibit, len(exhibits))}
	for _, ex := range exhibits {
		if ex.Name == "" {
			return nil, fmt.Errorf("exhibit without name")
		}
		seen := make(map[string]bool, len(ex.Questions))
		for _, q := range ex.Questions {
			if IsNavigational(q.ID) {
				return nil, fmt.Errorf("exhibit %q: %w: %q", ex.Name, ErrReservedQuestionID, q.ID)
			}
			if seen[q.ID] {
				return nil, fmt.Errorf("exhibit %q: duplicate question id %q", ex.Name, q.ID)
			}
			seen[q.ID] = true
		}
		if _, exists := c.exhibits[ex.Name]; !exists {
			c.names = append(c.names, ex.Name)
		}
		ex.Questions = append([]Question(nil), ex.Questions...)
		c.exhibits[ex.Name] = ex
	}
	return c, nil
}

// Names returns exhibit names in catalog order.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.names...)
}

// Lookup returns the exhibit with the given name.
func (c *Catalog) Lookup(name string) (Exhibit, bool) {
	if c == nil {
		return Exhibit{}, false
	}
	ex, ok := c.exhibits[name]
	return ex, ok
}

// Len returns the number of exhibits.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.names)
}
