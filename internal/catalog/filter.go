package catalog

import (
	"strings"

	"cempagamez/internal/domain"
)

// Filter keeps games whose title contains query, ignoring case. A blank query
// returns the catalog unchanged.
func Filter(c domain.Catalog, query string) domain.Catalog {
	if strings.TrimSpace(query) == "" {
		return c
	}
	needle := strings.ToLower(query)
	out := make(domain.Catalog, 0, len(c))
	for _, g := range c {
		if strings.Contains(strings.ToLower(g.Title), needle) {
			out = append(out, g)
		}
	}
	return out
}
