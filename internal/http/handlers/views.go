package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	html "github.com/gofiber/template/html/v2"

	"cempagamez/internal/storefront"
)

// NewEngine loads the screen templates from dir with the helpers they use.
func NewEngine(dir string) *html.Engine {
	engine := html.New(dir, ".html")
	engine.AddFunc("join", strings.Join)
	// cardData hands a card partial its game plus the form token.
	engine.AddFunc("cardData", func(c storefront.Card, csrf string) fiber.Map {
		return fiber.Map{
			"Game":      c.Game,
			"Price":     c.Price,
			"InCart":    c.InCart,
			"Images":    c.Images,
			"CSRFToken": csrf,
		}
	})
	return engine
}
