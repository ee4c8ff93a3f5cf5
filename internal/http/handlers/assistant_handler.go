package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"cempagamez/internal/assistant"
	"cempagamez/internal/domain"
	"cempagamez/internal/log"
	"cempagamez/internal/storefront"
	"cempagamez/internal/validate"
)

type AssistantHandler struct {
	*screens
	Bot *assistant.Service
}

func (h *AssistantHandler) Panel(c *fiber.Ctx) error {
	st, err := h.state(c)
	if err != nil {
		return err
	}
	return h.panel(c, fiber.StatusOK, st, "")
}

func (h *AssistantHandler) panel(c *fiber.Ctx, status int, st storefront.AppState, msg string) error {
	c.Status(status)
	v := storefront.Derive(st, h.games.Catalog(), h.games.Loaded(), h.merchant)
	return render(c, "assistant", fiber.Map{"V": v, "Err": msg})
}

// Send posts one message and waits for the reply. A blank message is ignored and
// a second message while one is pending is refused.
func (h *AssistantHandler) Send(c *fiber.Ctx) error {
	text := c.FormValue("message")
	if err := validate.Struct(assistant.ChatRequest{Message: strings.TrimSpace(text)}); err != nil {
		if strings.TrimSpace(text) == "" {
			return c.Redirect("/assistant", fiber.StatusSeeOther)
		}
		log.Security(c, "validation.fail", map[string]any{"field": "message", "len": len(text)})
		st, serr := h.state(c)
		if serr != nil {
			return serr
		}
		return h.panel(c, fiber.StatusBadRequest, st, "That message is too long.")
	}

	release, err := h.Bot.Begin(sessionID(c))
	if errors.Is(err, assistant.ErrBusy) {
		st, serr := h.state(c)
		if serr != nil {
			return serr
		}
		return h.panel(c, fiber.StatusTooManyRequests, st, "AIni is still answering your last message.")
	}
	defer release()

	st, err := h.apply(c, storefront.ChatSent{Message: domain.ChatMessage{
		ID: uuid.NewString(), Role: domain.RoleUser, Text: text,
	}})
	if err != nil {
		return err
	}
	prior := st.Chat[:len(st.Chat)-1]
	reply := h.Bot.Reply(c.UserContext(), prior, text, h.games.Catalog())

	if _, err := h.apply(c, storefront.ChatReplied{Message: domain.ChatMessage{
		ID: uuid.NewString(), Role: domain.RoleModel, Text: reply,
	}}); err != nil {
		return err
	}
	return c.Redirect("/assistant", fiber.StatusSeeOther)
}
