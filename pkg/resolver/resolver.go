package resolver

import (
	"strings"

	"github.com/aretw0/docent/pkg/domain"
)

// Resolver maps free text to canonical exhibit names by case-insensitive
// substring containment. It holds no mutable state and is safe to share.
type Resolver struct {
	catalog []string
	roster  []string
	table   Table
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithRoster replaces DefaultRoster.
func WithRoster(names []string) Option {
	return func(r *Resolver) {
		r.roster = append([]string(nil), names...)
	}
}

// WithTable replaces DefaultTable.
func WithTable(t Table) Option {
	return func(r *Resolver) {
		r.table = append(Table(nil), t...)
	}
}

// New creates a Resolver over the catalog names.
func New(cat *domain.Catalog, opts ...Option) *Resolver {
	r := &Resolver{
		catalog: cat.Names(),
		roster:  DefaultRoster(),
		table:   DefaultTable(),
	}
	for _, opt := range opts {
		opt(r)
	}
	for i := range r.table {
		r.table[i].Phrase = strings.ToLower(r.table[i].Phrase)
	}
	return r
}

// Resolve returns the first exhibit mentioned in text. Catalog names are
// tried first, then the roster, then the keyword table, each in order.
// When several candidates match, iteration order decides.
func (r *Resolver) Resolve(text string) (string, bool) {
	t := strings.ToLower(text)
	for _, name := range r.catalog {
		if strings.Contains(t, strings.ToLower(name)) {
			return name, true
		}
	}
	for _, name := range r.roster {
		if strings.Contains(t, strings.ToLower(name)) {
			return name, true
		}
	}
	for _, kw := range r.table {
		if strings.Contains(t, kw.Phrase) {
			return kw.Exhibit, true
		}
	}
	return "", false
}

// ClosedSet lists every name the resolver knows: catalog names followed by
// roster names the catalog does not define.
func (r *Resolver) ClosedSet() []string {
	seen := make(map[string]bool, len(r.catalog)+len(r.roster))
	out := make([]string, 0, len(r.catalog)+len(r.roster))
	for _, names := range [][]string{r.catalog, r.roster} {
		for _, n := range names {
			if !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	return out
}
