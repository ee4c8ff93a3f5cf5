package handlers

import (
	"cempagamez/internal/assistant"
	"cempagamez/internal/catalog"
	"cempagamez/internal/checkout"
	"cempagamez/internal/session"
)

type Deps struct {
	StoreHandler     *StoreHandler
	CartHandler      *CartHandler
	CheckoutHandler  *CheckoutHandler
	PrefsHandler     *PrefsHandler
	AssistantHandler *AssistantHandler
	APIHandler       *APIHandler
}

// NewDeps builds every handler over one shared set of services. snapshots may be nil.
func NewDeps(games *catalog.Service, sessions session.Store, bot *assistant.Service, m checkout.Merchant, snapshots Snapshots) *Deps {
	s := &screens{games: games, sessions: sessions, merchant: m}
	return &Deps{
		StoreHandler:     &StoreHandler{s},
		CartHandler:      &CartHandler{s},
		CheckoutHandler:  &CheckoutHandler{s},
		PrefsHandler:     &PrefsHandler{s},
		AssistantHandler: &AssistantHandler{screens: s, Bot: bot},
		APIHandler:       &APIHandler{screens: s, Bot: bot, Snapshots: snapshots},
	}
}
