package storefront

import (
	"fmt"

	"cempagamez/internal/catalog"
	"cempagamez/internal/checkout"
	"cempagamez/internal/domain"
	"cempagamez/internal/pagination"
)

// Card is one game tile on the store screen.
type Card struct {
	Game   domain.Game
	Price  string
	InCart bool
	// Images is the fallback chain the page walks when an image fails to load.
	Images []string
}

// View is the derived, render-ready form of a session against the current catalog.
type View struct {
	State   AppState
	Loading bool

	Cards      []Card
	Matches    int
	Nav        pagination.Nav
	NoResults  string
	PageStatus string

	CartItems []Card
	CartTotal string
	CartCount int

	Payment *checkout.Handoff
}

// Derive computes everything the screens show. loaded is false while the first
// catalog load is still running.
func Derive(s AppState, games domain.Catalog, loaded bool, m checkout.Merchant) View {
	v := View{State: s, Loading: !loaded, CartCount: s.Cart.Count()}

	filtered := catalog.Filter(games, s.Search)
	page, total := pagination.Paginate(filtered, s.Page, pagination.PerPage)
	v.Matches = len(filtered)
	v.Nav = pagination.NewNav(s.Page, total)
	v.Cards = cards(page, s)
	if total > 0 {
		v.PageStatus = fmt.Sprintf("Page %d of %d", s.Page, total)
	}
	if loaded && len(filtered) == 0 {
		v.NoResults = fmt.Sprintf(`No games found matching "%s"`, s.Search)
	}

	items := s.Cart.Items(games)
	v.CartItems = cards(items, s)
	v.CartTotal = checkout.Sum(items).StringFixed(2)

	if s.Payment != nil {
		h := m.Handoff(*s.Payment)
		v.Payment = &h
	}
	return v
}

func cards(games []domain.Game, s AppState) []Card {
	out := make([]Card, 0, len(games))
	for _, g := range games {
		out = append(out, Card{
			Game:   g,
			Price:  checkout.RM(g.Price),
			InCart: s.Cart.Contains(g.ID),
			Images: catalog.ImageCandidates(g),
		})
	}
	return out
}
