package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"cempagamez/internal/checkout"
	"cempagamez/internal/log"
	"cempagamez/internal/metrics"
	"cempagamez/internal/storefront"
	"cempagamez/internal/validate"
)

// CheckoutHandler opens and closes the payment view. Nothing is charged here:
// the view hands the buyer off to the external gateway and messaging link.
type CheckoutHandler struct {
	*screens
}

func (h *CheckoutHandler) PayIndividual(c *fiber.Ctx) error {
	// The cart page query-escapes ids into the path.
	raw, err := url.QueryUnescape(c.Params("id"))
	if err != nil {
		raw = ""
	}
	id, ok := validate.ID(raw)
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "id"})
		return NotFound(c, fiber.StatusBadRequest, "Invalid game")
	}
	if _, found := h.games.Catalog().ByID(id); !found {
		return NotFound(c, fiber.StatusNotFound, "This game is no longer available")
	}
	st, err := h.apply(c, storefront.PayIndividual{ID: id})
	if err != nil {
		return err
	}
	h.opened(c, st, "single")
	return back(c, st)
}

func (h *CheckoutHandler) CheckoutAll(c *fiber.Ctx) error {
	st, err := h.apply(c, storefront.CheckoutAll{})
	if err != nil {
		return err
	}
	if st.PaymentOpen() {
		h.opened(c, st, "all")
	}
	return back(c, st)
}

func (h *CheckoutHandler) Close(c *fiber.Ctx) error {
	st, err := h.apply(c, storefront.ClosePayment{})
	if err != nil {
		return err
	}
	return back(c, st)
}

func (h *CheckoutHandler) opened(c *fiber.Ctx, st storefront.AppState, kind string) {
	metrics.PaymentHandoffs.WithLabelValues(kind).Inc()
	log.Audit(c, "checkout.open", map[string]any{
		"kind":  kind,
		"items": len(st.Payment.Items),
		"total": checkout.Total(*st.Payment),
	})
}
