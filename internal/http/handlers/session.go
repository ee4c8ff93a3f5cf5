package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"cempagamez/internal/catalog"
	"cempagamez/internal/checkout"
	"cempagamez/internal/domain"
	applog "cempagamez/internal/log"
	"cempagamez/internal/session"
	"cempagamez/internal/storefront"
)

// SessionCookie carries the storefront session id. It has no expiry, so the
// browser drops it when the session ends.
const SessionCookie = "sid"

// Session makes sure every request carries a session id and exposes it through Locals.
func Session() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies(SessionCookie)
		if sid != "" {
			if _, err := uuid.Parse(sid); err != nil {
				applog.Security(c, "session.invalid", nil)
				sid = ""
			}
		}
		if sid == "" {
			sid = uuid.NewString()
			c.Cookie(&fiber.Cookie{Name: SessionCookie, Value: sid, Path: "/", HTTPOnly: true, SameSite: "Lax"})
		}
		c.Locals(applog.SessionLocal, sid)
		return c.Next()
	}
}

func sessionID(c *fiber.Ctx) string {
	sid, _ := c.Locals(applog.SessionLocal).(string)
	return sid
}

// screens is what every storefront handler shares: the live catalog, the
// session store and the payment hand-off endpoints.
type screens struct {
	games    *catalog.Service
	sessions session.Store
	merchant checkout.Merchant
}

func (s *screens) state(c *fiber.Ctx) (storefront.AppState, error) {
	return session.Load(c.UserContext(), s.sessions, sessionID(c))
}

// apply runs events through the reducer against the current catalog and stores the result.
// A catalog reload since the session's last visit is applied first.
func (s *screens) apply(c *fiber.Ctx, events ...storefront.Event) (storefront.AppState, error) {
	games := s.games.Catalog()
	events = append([]storefront.Event{storefront.CatalogChanged{Generation: s.games.Generation()}}, events...)
	return s.sessions.Update(c.UserContext(), sessionID(c), func(st storefront.AppState) storefront.AppState {
		for _, ev := range events {
			st = storefront.Reduce(st, games, ev)
		}
		return st
	})
}

// show renders the screen st.View points at.
func (s *screens) show(c *fiber.Ctx, st storefront.AppState) error {
	v := storefront.Derive(st, s.games.Catalog(), s.games.Loaded(), s.merchant)
	tmpl := "store"
	if st.View == domain.ViewCart {
		tmpl = "cart"
	}
	return render(c, tmpl, fiber.Map{"V": v})
}

// back redirects to the screen the visitor was on.
func back(c *fiber.Ctx, st storefront.AppState) error {
	if st.View == domain.ViewCart {
		return c.Redirect("/cart", fiber.StatusSeeOther)
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}
