package handlers

import (
	"github.com/gofiber/fiber/v2"

	"cempagamez/internal/domain"
	"cempagamez/internal/log"
	"cempagamez/internal/metrics"
	"cempagamez/internal/storefront"
	"cempagamez/internal/validate"
)

type CartHandler struct {
	*screens
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	st, err := h.apply(c, storefront.SetView{View: domain.ViewCart})
	if err != nil {
		return err
	}
	return h.show(c, st)
}

// Add puts a game in the cart. The visitor stays where they were and the card
// switches to "Added to Cart".
func (h *CartHandler) Add(c *fiber.Ctx) error {
	id, ok := validate.ID(c.FormValue("gameId"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "gameId"})
		return c.Status(fiber.StatusBadRequest).SendString("missing gameId")
	}
	if _, found := h.games.Catalog().ByID(id); !found {
		return NotFound(c, fiber.StatusNotFound, "This game is no longer available")
	}

	before, err := h.state(c)
	if err != nil {
		return err
	}
	st, err := h.apply(c, storefront.AddToCart{ID: id})
	if err != nil {
		return err
	}
	if st.Cart.Count() > before.Cart.Count() {
		metrics.CartAdds.Inc()
		log.Audit(c, "cart.add", map[string]any{"game_id": id, "count": st.Cart.Count()})
	}
	return back(c, st)
}
