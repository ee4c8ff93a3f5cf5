package storefront

import (
	"cempagamez/internal/checkout"
	"cempagamez/internal/domain"
)

// Event is one user intent. Reduce is the only place events change state.
type Event interface{ event() }

type (
	SetView   struct{ View domain.ViewState }
	SetSearch struct{ Query string }
	GoToPage  struct{ Page int }
	AddToCart struct{ ID string }
	// PayIndividual opens the payment view for one game, in the cart or not.
	PayIndividual struct{ ID string }
	CheckoutAll   struct{}
	ClosePayment  struct{}
	ToggleTheme   struct{}
	ChatSent      struct{ Message domain.ChatMessage }
	ChatReplied   struct{ Message domain.ChatMessage }
	// CatalogChanged reports the generation of the catalog the next events run against.
	CatalogChanged struct{ Generation uint64 }
)

func (SetView) event()       {}
func (SetSearch) event()     {}
func (GoToPage) event()      {}
func (AddToCart) event()     {}
func (PayIndividual) event() {}
func (CheckoutAll) event()   {}
func (ClosePayment) event()  {}
func (ToggleTheme) event()   {}
func (ChatSent) event()      {}
func (ChatReplied) event()   {}
func (CatalogChanged) event() {}

// Reduce returns the state after ev. It has no side effects and never mutates s;
// ids that are not in catalog leave the state unchanged.
func Reduce(s AppState, catalog domain.Catalog, ev Event) AppState {
	switch e := ev.(type) {
	case SetView:
		s.View = e.View
	case CatalogChanged:
		// A different catalog means a different filtered list: back to the first page.
		if e.Generation != s.CatalogGen {
			s.CatalogGen = e.Generation
			s.Page = 1
		}
	case SetSearch:
		s.Search = e.Query
		s.Page = 1
	case GoToPage:
		if e.Page >= 1 {
			s.Page = e.Page
		}
	case AddToCart:
		if _, ok := catalog.ByID(e.ID); ok {
			s.Cart = s.Cart.With(e.ID)
		}
	case PayIndividual:
		if g, ok := catalog.ByID(e.ID); ok {
			intent := checkout.PayIndividual(g)
			s.Payment = &intent
		}
	case CheckoutAll:
		intent := checkout.CheckoutAll(catalog, s.Cart)
		if len(intent.Items) > 0 {
			s.Payment = &intent
		}
	case ClosePayment:
		s.Payment = nil
	case ToggleTheme:
		s.DarkMode = !s.DarkMode
	case ChatSent:
		s.Chat = appendMessage(s.Chat, e.Message)
		s.ChatPending = true
	case ChatReplied:
		s.Chat = appendMessage(s.Chat, e.Message)
		s.ChatPending = false
	}
	return s
}

func appendMessage(chat []domain.ChatMessage, m domain.ChatMessage) []domain.ChatMessage {
	out := make([]domain.ChatMessage, len(chat), len(chat)+1)
	copy(out, chat)
	return append(out, m)
}
