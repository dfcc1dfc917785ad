package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mtaabiz/internal/application/dto"
	"github.com/jhoicas/mtaabiz/internal/application/messaging"
	"github.com/jhoicas/mtaabiz/internal/domain/content"
	"github.com/jhoicas/mtaabiz/pkg/logger"
)

// ContentHandler generación de textos y contenido estático (público).
type ContentHandler struct {
	log *logger.Logger
}

// NewContentHandler construye el handler.
func NewContentHandler(log *logger.Logger) *ContentHandler {
	return &ContentHandler{log: log}
}

// Message godoc
// @Summary      Generar mensaje para cliente
// @Tags         content
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GenerateMessageRequest  true  "message_type, tone, client_name, amount"
// @Success      200  {object}  dto.GeneratedTextResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/content/messages/ [post]
func (h *ContentHandler) Message(c *fiber.Ctx) error {
	var in dto.GenerateMessageRequest
	if done, err := parseBody(c, &in); done {
		return err
	}
	out, err := messaging.GenerateMessage(in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Caption godoc
// @Summary      Generar caption para redes sociales
// @Tags         content
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GenerateCaptionRequest  true  "platform, business_type, business_name, product"
// @Success      200  {object}  dto.GeneratedTextResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/content/captions/ [post]
func (h *ContentHandler) Caption(c *fiber.Ctx) error {
	var in dto.GenerateCaptionRequest
	if done, err := parseBody(c, &in); done {
		return err
	}
	out, err := messaging.GenerateCaption(in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Guide godoc
// @Summary      Guía de registro de negocio
// @Tags         content
// @Produce      json
// @Success      200  {array}  content.RegistrationStep
// @Router       /api/guide/registration/ [get]
func (h *ContentHandler) Guide(c *fiber.Ctx) error {
	return c.JSON(content.RegistrationGuide())
}

// Plans godoc
// @Summary      Planes de precios
// @Tags         content
// @Produce      json
// @Success      200  {array}  content.Plan
// @Router       /api/plans/ [get]
func (h *ContentHandler) Plans(c *fiber.Ctx) error {
	return c.JSON(content.Plans())
}
