package repository

import (
	"sort"

	"github.com/vocaprep/interview-engine/internal/entity"
)

// Catalog is the static registry of interview domains. Loaded once at
// startup and immutable afterwards.
type Catalog struct {
	byID  map[string]entity.Domain
	order []string
}

func NewCatalog(domains []entity.Domain) *Catalog {
	byID := make(map[string]entity.Domain, len(domains))
	order := make([]string, 0, len(domains))

	for _, d := range domains {
		if _, exists := byID[d.ID]; exists {
			continue
		}
		byID[d.ID] = d
		order = append(order, d.ID)
	}
	sort.Strings(order)

	return &Catalog{byID: byID, order: order}
}

func (c *Catalog) Get(domainID string) (entity.Domain, error) {
	d, ok := c.byID[domainID]
	if !ok {
		return entity.Domain{}, entity.ErrUnknownDomain
	}
	return d, nil
}

// List returns all domains in stable (ID-sorted) order.
func (c *Catalog) List() []entity.Domain {
	out := make([]entity.Domain, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}
