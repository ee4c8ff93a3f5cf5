package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "cempagamez/internal/log"
)

const serverErrorMessage = "Something went wrong. Please try again."

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	// Pick up the token the CSRF middleware put into Locals
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		// Fall back to the cookie so forms never carry an empty hidden field.
		tok = c.Cookies("csrf_")
	}
	if tok != "" {
		data["CSRFToken"] = tok
	}
	return c.Render(tmpl, data)
}

// NotFound renders the shared message page with status.
func NotFound(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).Render("notfound", fiber.Map{"Message": msg})
}

// ErrorHandler is the app-wide fiber error handler. Client errors keep their
// status and message; anything else is logged and shown as a generic 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		return NotFound(c, fe.Code, fe.Message)
	}

	applog.Error(c, "server.error", err, nil)
	if rerr := NotFound(c, fiber.StatusInternalServerError, serverErrorMessage); rerr != nil {
		return c.Status(fiber.StatusInternalServerError).SendString(serverErrorMessage)
	}
	return nil
}
