package storefront

import (
	"cempagamez/internal/cart"
	"cempagamez/internal/domain"
)

const (
	GreetingID = "0"
	Greeting   = "Hi there! I'm AIni. Looking for a specific type of game or need a recommendation?"
)

// AppState is everything one visitor's session holds. It is serialized as a whole
// into the session store and only ever replaced, never edited in place.
type AppState struct {
	View        domain.ViewState      `json:"view"`
	Search      string                `json:"search"`
	Page        int                   `json:"page"`
	DarkMode    bool                  `json:"dark_mode"`
	Cart        cart.Cart             `json:"cart"`
	Payment     *domain.PaymentIntent `json:"payment,omitempty"`
	Chat        []domain.ChatMessage  `json:"chat"`
	ChatPending bool                  `json:"chat_pending"`
	// CatalogGen is the catalog generation Page was chosen against.
	CatalogGen uint64 `json:"catalog_gen"`
}

// NewState is a fresh session: store screen, first page, dark theme, empty cart
// and the assistant's greeting.
func NewState() AppState {
	return AppState{
		View:     domain.ViewStore,
		Page:     1,
		DarkMode: true,
		Chat: []domain.ChatMessage{
			{ID: GreetingID, Role: domain.RoleModel, Text: Greeting},
		},
	}
}

// PaymentOpen reports whether the payment view is showing.
func (s AppState) PaymentOpen() bool { return s.Payment != nil }
