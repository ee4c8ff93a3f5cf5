package handlers

import (
	"github.com/gofiber/fiber/v2"

	"cempagamez/internal/domain"
	"cempagamez/internal/log"
	"cempagamez/internal/storefront"
	"cempagamez/internal/validate"
)

// PrefsHandler covers navigation and the theme switch.
type PrefsHandler struct {
	*screens
}

func (h *PrefsHandler) ToggleTheme(c *fiber.Ctx) error {
	st, err := h.apply(c, storefront.ToggleTheme{})
	if err != nil {
		return err
	}
	return back(c, st)
}

func (h *PrefsHandler) SetView(c *fiber.Ctx) error {
	name, ok := validate.View(c.Params("name"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "view"})
		return NotFound(c, fiber.StatusNotFound, "Page not found")
	}
	st, err := h.apply(c, storefront.SetView{View: domain.ParseView(name)})
	if err != nil {
		return err
	}
	return back(c, st)
}
