package http

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mtaabiz/internal/application/dto"
	"github.com/jhoicas/mtaabiz/internal/domain"
	"github.com/jhoicas/mtaabiz/internal/domain/content"
	"github.com/jhoicas/mtaabiz/pkg/logger"
)

var validate = newValidator()

// newValidator reporta los campos con su nombre JSON.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.ToLower(f.Name)
		}
		return name
	})
	return v
}

// parseBody decodifica y valida el cuerpo; si falla ya escribió la respuesta (done=true).
func parseBody(c *fiber.Ctx, out interface{}) (done bool, err error) {
	if err := c.BodyParser(out); err != nil {
		return true, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_BODY", Message: "Invalid request body.",
		})
	}
	if err := validate.Struct(out); err != nil {
		return true, validationResponse(c, err)
	}
	return false, nil
}

// validationResponse 400 VALIDATION con campo -> regla.
func validationResponse(c *fiber.Ctx, err error) error {
	fields := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields[fieldPath(fe.Namespace())] = fe.Tag()
		}
	}
	names := make([]string, 0, len(fields))
	for k := range fields {
		names = append(names, k)
	}
	msg := "Invalid input."
	if len(names) > 0 {
		sort.Strings(names)
		msg = "Invalid value for: " + strings.Join(names, ", ")
	}
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msg, Fields: fields})
}

// fieldPath quita el nombre del struct raíz: "CreateInvoiceRequest.client_name" -> "client_name".
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// writeError traduce errores de dominio al contrato {code, message}.
// Los errores no reconocidos se registran y responden 500 sin detalle interno.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	var vErr *content.ValidationError
	if errors.As(err, &vErr) {
		fields := make(map[string]string, len(vErr.Fields))
		for _, f := range vErr.Fields {
			fields[f] = "required"
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: vErr.Error(), Fields: fields})
	}
	var uErr *content.UnknownVariantError
	if errors.As(err, &uErr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_OPTION", Message: uErr.Error()})
	}

	status, code, msg := fiber.StatusInternalServerError, "INTERNAL", "Something went wrong. Please try again."
	switch {
	case errors.Is(err, domain.ErrBadCredentials):
		status, code, msg = fiber.StatusBadRequest, "INVALID_CREDENTIALS", "Incorrect Credentials"
	case errors.Is(err, domain.ErrUsernameTaken):
		status, code, msg = fiber.StatusConflict, "USERNAME_EXISTS", "A user with that username already exists."
	case errors.Is(err, domain.ErrLimitReached):
		status, code, msg = fiber.StatusForbidden, "LIMIT_REACHED", "Monthly invoice limit reached. Upgrade to PRO for unlimited invoices."
	case errors.Is(err, domain.ErrSubmissionPending):
		status, code, msg = fiber.StatusConflict, "SUBMISSION_IN_PROGRESS", "This submission is already being processed."
	case errors.Is(err, domain.ErrKeyReused):
		status, code, msg = fiber.StatusUnprocessableEntity, "IDEMPOTENCY_KEY_REUSED", "This Idempotency-Key was already used for a different request."
	case errors.Is(err, domain.ErrForbidden):
		status, code, msg = fiber.StatusForbidden, "FORBIDDEN", "You do not have permission to perform this action."
	case errors.Is(err, domain.ErrUnauthorized):
		status, code, msg = fiber.StatusUnauthorized, "INVALID_TOKEN", "Invalid token."
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrNotFound):
		status, code, msg = fiber.StatusNotFound, "NOT_FOUND", "Not found."
	case errors.Is(err, domain.ErrInvalidInput):
		status, code, msg = fiber.StatusBadRequest, "VALIDATION", inputMessage(err)
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrDuplicate):
		status, code, msg = fiber.StatusConflict, "CONFLICT", "The resource already exists."
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("error no controlado")
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// inputMessage detalle tras el sentinel: "invalid input: client name is required" -> "Client name is required."
func inputMessage(err error) string {
	s := err.Error()
	prefix := domain.ErrInvalidInput.Error() + ": "
	if i := strings.Index(s, prefix); i >= 0 {
		s = s[i+len(prefix):]
	} else {
		return "Invalid input."
	}
	if s == "" {
		return "Invalid input."
	}
	s = strings.ToUpper(s[:1]) + s[1:]
	if !strings.HasSuffix(s, ".") {
		s += "."
	}
	return s
}
