package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mtaabiz/internal/application/dto"
	"github.com/jhoicas/mtaabiz/internal/application/messaging"
	"github.com/jhoicas/mtaabiz/pkg/logger"
)

// MessageHandler biblioteca de mensajes guardados.
type MessageHandler struct {
	uc  *messaging.MessageUseCase
	log *logger.Logger
}

// NewMessageHandler construye el handler.
func NewMessageHandler(uc *messaging.MessageUseCase, log *logger.Logger) *MessageHandler {
	return &MessageHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar mensajes guardados
// @Tags         messages
// @Security     TokenAuth
// @Produce      json
// @Success      200  {array}  dto.MessageTemplateResponse
// @Router       /api/messages/ [get]
func (h *MessageHandler) List(c *fiber.Ctx) error {
	page, done, err := parsePage(c)
	if done {
		return err
	}
	out, err := h.uc.List(c.UserContext(), GetUserID(c), page)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Guardar mensaje
// @Tags         messages
// @Security     TokenAuth
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string  false  "clave del envío"
// @Param        body  body  dto.CreateMessageTemplateRequest  true  "title, content, category"
// @Success      201  {object}  dto.MessageTemplateResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/messages/ [post]
func (h *MessageHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMessageTemplateRequest
	if done, err := parseBody(c, &in); done {
		return err
	}
	out, created, err := h.uc.Create(c.UserContext(), GetUserID(c), c.Get(HeaderIdempotencyKey), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	if !created {
		return c.Status(fiber.StatusOK).JSON(out)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
