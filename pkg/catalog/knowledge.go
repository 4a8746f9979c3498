package catalog

import (
	"fmt"
	"strings"

	"github.com/aretw0/docent/pkg/domain"
)

// DefaultDescription stands in for exhibits without a one-liner.
const DefaultDescription = "An interactive display."

// KnowledgeBase renders one "- name: description" line per exhibit, in
// catalog order.
func KnowledgeBase(cat *domain.Catalog) string {
	var b strings.Builder
	for i, name := range cat.Names() {
		ex, _ := cat.Lookup(name)
		desc := ex.OneLiner
		if desc == "" {
			desc = DefaultDescription
		}
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "- %s: %s", name, desc)
	}
	return b.String()
}
