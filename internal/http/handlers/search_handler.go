package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"cempagamez/internal/domain"
	"cempagamez/internal/log"
	"cempagamez/internal/storefront"
	"cempagamez/internal/validate"
)

var badQueryMessage = fmt.Sprintf("Enter a search term of at most %d characters", validate.MaxQueryLen)

// StoreHandler serves the catalog grid with search and pagination.
type StoreHandler struct {
	*screens
}

// Home renders the store. Optional q and page query parameters are applied to
// the session first, so search and page links are plain GETs.
func (h *StoreHandler) Home(c *fiber.Ctx) error {
	events := []storefront.Event{storefront.SetView{View: domain.ViewStore}}

	if raw := c.Query("q"); c.Request().URI().QueryArgs().Has("q") {
		q, ok := validate.Q(raw)
		if !ok {
			log.Security(c, "validation.fail", map[string]any{"field": "q"})
			return NotFound(c, fiber.StatusBadRequest, badQueryMessage)
		}
		events = append(events, storefront.SetSearch{Query: q})
	}
	if raw := c.Query("page"); raw != "" {
		events = append(events, storefront.GoToPage{Page: validate.Page(raw)})
	}

	st, err := h.apply(c, events...)
	if err != nil {
		return err
	}
	return h.show(c, st)
}

// Search takes the search form post and resets to the first page.
func (h *StoreHandler) Search(c *fiber.Ctx) error {
	q, ok := validate.Q(c.FormValue("q"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "q"})
		return NotFound(c, fiber.StatusBadRequest, badQueryMessage)
	}
	if _, err := h.apply(c, storefront.SetView{View: domain.ViewStore}, storefront.SetSearch{Query: q}); err != nil {
		return err
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}
