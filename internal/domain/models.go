package domain

// Game is one purchasable catalog entry. Values are never mutated after a catalog is built.
type Game struct {
	ID          string  `json:"id" db:"id"`
	Title       string  `json:"title" db:"title"`
	Description string  `json:"description" db:"description"`
	Price       float64 `json:"price" db:"price"`
	ImageURL    string  `json:"imageUrl" db:"image_url"`
	Category    string  `json:"category" db:"category"`
	Rating      float64 `json:"rating" db:"rating"`
	ReleaseDate string  `json:"releaseDate" db:"release_date"`
}

// Catalog is the ordered game list produced by one load cycle.
type Catalog []Game

// ByID returns the first game carrying id.
func (c Catalog) ByID(id string) (Game, bool) {
	for _, g := range c {
		if g.ID == id {
			return g, true
		}
	}
	return Game{}, false
}

type ViewState string

const (
	ViewStore ViewState = "STORE"
	ViewCart  ViewState = "CART"
)

// ParseView maps a route name to a screen; unknown names fall back to the store.
func ParseView(s string) ViewState {
	switch s {
	case "cart", string(ViewCart):
		return ViewCart
	default:
		return ViewStore
	}
}

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

type ChatMessage struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// PaymentIntent lists what is being paid for. It only lives while the payment view is open.
type PaymentIntent struct {
	Items []Game `json:"items"`
}

// Total is the unrounded sum of item prices.
func (p PaymentIntent) Total() float64 {
	total := 0.0
	for _, g := range p.Items {
		total += g.Price
	}
	return total
}
