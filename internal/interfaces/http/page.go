package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/backoffice-api/internal/application/dto"
)

// pageFromQuery lee limit/offset del query string y aplica los defaults.
func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	p := dto.PageRequest{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	p.DefaultPage()
	return p
}
