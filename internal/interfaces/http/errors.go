package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/jhoicas/catalogo-productos/internal/application/dto"
	"github.com/jhoicas/catalogo-productos/internal/domain"
	"github.com/jhoicas/catalogo-productos/pkg/logger"
)

// ErrorHandler traduce los errores que llegan al final de la cadena: página HTML para las vistas
// y dto.ErrorResponse para /api.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, body := classifyError(err)
		if status >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error no controlado")
		}

		if strings.HasPrefix(c.Path(), "/api") || c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMEApplicationJSON {
			return c.Status(status).JSON(body)
		}
		c.Status(status)
		if rerr := c.Render("errors/error", fiber.Map{
			"Title":   body.Code,
			"Status":  status,
			"Message": body.Message,
		}, ViewLayout); rerr != nil {
			return c.Status(status).SendString(body.Message)
		}
		return nil
	}
}

func classifyError(err error) (int, dto.ErrorResponse) {
	var fe *fiber.Error
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	case errors.Is(err, domain.ErrStorage):
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "STORAGE", Message: "no se pudo guardar la imagen"}
	case errors.As(err, &fe):
		return fe.Code, dto.ErrorResponse{Code: strings.ToUpper(strings.ReplaceAll(fiberStatusText(fe.Code), " ", "_")), Message: fe.Message}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"}
	}
}

func fiberStatusText(code int) string {
	if s := utils.StatusMessage(code); s != "" {
		return s
	}
	return "error"
}
