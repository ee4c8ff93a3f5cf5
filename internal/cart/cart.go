package cart

import (
	"encoding/json"

	"cempagamez/internal/domain"
)

// Cart is an insertion-ordered set of game ids. The zero value is an empty cart.
// Entries are never removed; a new session starts a new cart.
type Cart struct {
	ids []string
}

// New builds a cart from ids, dropping duplicates and blanks.
func New(ids ...string) Cart {
	var c Cart
	for _, id := range ids {
		c = c.With(id)
	}
	return c
}

// With returns a cart that also holds id. The receiver is left unchanged, and
// adding an id that is already present returns an equal cart.
func (c Cart) With(id string) Cart {
	if id == "" || c.Contains(id) {
		return c
	}
	ids := make([]string, len(c.ids), len(c.ids)+1)
	copy(ids, c.ids)
	return Cart{ids: append(ids, id)}
}

// Add puts id in the cart and reports whether it was new.
func (c *Cart) Add(id string) bool {
	n := c.Count()
	*c = c.With(id)
	return c.Count() > n
}

func (c Cart) Contains(id string) bool {
	for _, have := range c.ids {
		if have == id {
			return true
		}
	}
	return false
}

// Count is the number of distinct ids, which is what the header badge shows.
func (c Cart) Count() int { return len(c.ids) }

func (c Cart) Empty() bool { return len(c.ids) == 0 }

// IDs returns a copy of the ids in insertion order.
func (c Cart) IDs() []string {
	out := make([]string, len(c.ids))
	copy(out, c.ids)
	return out
}

// Items resolves the cart against the current catalog, in catalog order. Ids that
// are no longer in the catalog are skipped.
func (c Cart) Items(catalog domain.Catalog) []domain.Game {
	out := make([]domain.Game, 0, len(c.ids))
	for _, g := range catalog {
		if c.Contains(g.ID) {
			out = append(out, g)
		}
	}
	return out
}

// Total sums the prices of the resolvable items.
func (c Cart) Total(catalog domain.Catalog) float64 {
	return domain.PaymentIntent{Items: c.Items(catalog)}.Total()
}

func (c Cart) MarshalJSON() ([]byte, error) {
	if c.ids == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.ids)
}

func (c *Cart) UnmarshalJSON(b []byte) error {
	var ids []string
	if err := json.Unmarshal(b, &ids); err != nil {
		return err
	}
	*c = New(ids...)
	return nil
}
