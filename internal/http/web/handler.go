package web

import (
	_ "embed"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

//go:embed console.html
var consoleHTML string

// Handler serves the admin console. The page itself is unauthenticated; it
// prompts for the admin key client-side and sends it with every API call.
type Handler struct {
	console templ.Component
}

func NewHandler() *Handler {
	return &Handler{
		console: templ.Raw(consoleHTML),
	}
}

// GET /admin
func (h *Handler) Console(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return h.console.Render(c.Request().Context(), c.Response())
}
