package http

import (
	"mime"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mtaabiz/internal/application/billing"
	"github.com/jhoicas/mtaabiz/internal/application/dto"
	"github.com/jhoicas/mtaabiz/pkg/logger"
)

const (
	// HeaderIdempotencyKey identifica un envío; repetirlo devuelve el registro ya creado.
	HeaderIdempotencyKey = "Idempotency-Key"

	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// InvoiceHandler facturas guardadas, exportación y PDF.
type InvoiceHandler struct {
	invoices *billing.InvoiceUseCase
	compose  *billing.ComposeUseCase
	export   *billing.ExportUseCase
	log      *logger.Logger
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(invoices *billing.InvoiceUseCase, compose *billing.ComposeUseCase, export *billing.ExportUseCase, log *logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices, compose: compose, export: export, log: log}
}

// List godoc
// @Summary      Listar facturas (más recientes primero)
// @Tags         invoices
// @Security     TokenAuth
// @Produce      json
// @Param        limit   query  int  false  "máx 100"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}   dto.InvoiceResponse
// @Router       /api/invoices/ [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	page, done, err := parsePage(c)
	if done {
		return err
	}
	out, err := h.invoices.List(c.UserContext(), GetUserID(c), page)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Guardar factura
// @Tags         invoices
// @Security     TokenAuth
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string  false  "clave del envío"
// @Param        body  body  dto.CreateInvoiceRequest  true  "client_name, amount, date_issued, due_date, status"
// @Success      201  {object}  dto.InvoiceResponse
// @Success      200  {object}  dto.InvoiceResponse  "reenvío con la misma clave"
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse  "LIMIT_REACHED"
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/invoices/ [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if done, err := parseBody(c, &in); done {
		return err
	}
	out, created, err := h.invoices.Create(c.UserContext(), GetUserID(c), c.Get(HeaderIdempotencyKey), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	if !created {
		return c.Status(fiber.StatusOK).JSON(out)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Export godoc
// @Summary      Exportar historial de facturas (XLSX)
// @Tags         invoices
// @Security     TokenAuth
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /api/invoices/export/ [get]
func (h *InvoiceHandler) Export(c *fiber.Ctx) error {
	data, filename, err := h.export.Export(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, contentTypeXLSX)
	c.Set(fiber.HeaderContentDisposition, attachment(filename))
	return c.Send(data)
}

// PDF godoc
// @Summary      Generar el PDF de un borrador de factura
// @Tags         invoices
// @Security     TokenAuth
// @Accept       json
// @Produce      application/pdf
// @Param        body  body  dto.ComposeInvoiceRequest  true  "borrador"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/invoices/pdf/ [post]
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	var in dto.ComposeInvoiceRequest
	if done, err := parseBody(c, &in); done {
		return err
	}
	draft, err := billing.DraftFromRequest(in, time.Now())
	if err != nil {
		return writeError(c, h.log, err)
	}
	data, filename, err := h.compose.Compose(c.UserContext(), draft)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, contentTypePDF)
	c.Set(fiber.HeaderContentDisposition, attachment(filename))
	return c.Send(data)
}

// attachment Content-Disposition con filename*= (RFC 6266) si el nombre no es ASCII.
func attachment(filename string) string {
	return mime.FormatMediaType("attachment", map[string]string{"filename": filename})
}

// parsePage lee limit/offset del query string.
func parsePage(c *fiber.Ctx) (dto.PageRequest, bool, error) {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return page, true, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "Invalid pagination parameters."})
	}
	if err := validate.Struct(page); err != nil {
		return page, true, validationResponse(c, err)
	}
	page.DefaultPage()
	return page, false, nil
}
