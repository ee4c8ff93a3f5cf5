package handlers

import (
	"github.com/gofiber/fiber/v2"

	"cempagamez/internal/assistant"
	"cempagamez/internal/catalog"
	"cempagamez/internal/log"
	"cempagamez/internal/pagination"
	"cempagamez/internal/repos"
	"cempagamez/internal/validate"
)

// Snapshots reports the last catalog recorded from the remote API.
type Snapshots interface {
	Info() (repos.SnapshotInfo, bool, error)
}

type APIHandler struct {
	*screens
	Bot       *assistant.Service
	Snapshots Snapshots
}

// Catalog returns one page of the (optionally filtered) catalog as JSON.
func (h *APIHandler) Catalog(c *fiber.Ctx) error {
	q, ok := validate.Q(c.Query("q"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "q"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": badQueryMessage})
	}
	page := validate.Page(c.Query("page"))

	filtered := catalog.Filter(h.games.Catalog(), q)
	items, total := pagination.Paginate(filtered, page, pagination.PerPage)
	return c.JSON(fiber.Map{
		"loaded":      h.games.Loaded(),
		"source":      h.games.Source(),
		"query":       q,
		"page":        page,
		"total_pages": total,
		"matches":     len(filtered),
		"games":       items,
	})
}

// Recommendation suggests one game the visitor has not put in the cart yet.
func (h *APIHandler) Recommendation(c *fiber.Ctx) error {
	st, err := h.state(c)
	if err != nil {
		return err
	}
	text := h.Bot.Recommend(c.UserContext(), st.Cart.IDs(), h.games.Catalog())
	return c.JSON(fiber.Map{"recommendation": text})
}

// Health reports liveness, where the catalog came from and when the remote API
// last answered.
func (h *APIHandler) Health(c *fiber.Ctx) error {
	out := fiber.Map{
		"ok":             true,
		"catalog_loaded": h.games.Loaded(),
		"catalog_source": h.games.Source(),
		"games":          len(h.games.Catalog()),
	}
	if h.Snapshots != nil {
		info, ok, err := h.Snapshots.Info()
		switch {
		case err != nil:
			log.Error(c, "snapshot.info", err, nil)
		case ok:
			out["last_remote"] = fiber.Map{"source": info.Source, "taken_at": info.TakenAt}
		}
	}
	return c.JSON(out)
}
