package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/mtaabiz/internal/application/dto"
	"github.com/jhoicas/mtaabiz/internal/application/ports"
	"github.com/jhoicas/mtaabiz/internal/domain"
	"github.com/jhoicas/mtaabiz/internal/domain/entity"
	"github.com/jhoicas/mtaabiz/internal/domain/repository"
)

// InvoiceUseCase guarda y lista las facturas del usuario.
type InvoiceUseCase struct {
	txRunner         InvoiceTxRunner
	invoiceRepo      repository.InvoiceRepository
	guard            ports.SubmissionGuard
	freeInvoiceLimit int
	now              func() time.Time
}

// NewInvoiceUseCase construye el caso de uso. freeInvoiceLimit aplica a cuentas no PRO por mes calendario.
func NewInvoiceUseCase(
	txRunner InvoiceTxRunner,
	invoiceRepo repository.InvoiceRepository,
	guard ports.SubmissionGuard,
	freeInvoiceLimit int,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:         txRunner,
		invoiceRepo:      invoiceRepo,
		guard:            guard,
		freeInvoiceLimit: freeInvoiceLimit,
		now:              time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *InvoiceUseCase) WithClock(now func() time.Time) *InvoiceUseCase {
	uc.now = now
	return uc
}

// Create guarda una factura. Con idempotencyKey, un reenvío devuelve la factura ya creada
// y created=false; dos envíos simultáneos con la misma clave no se procesan a la vez.
//
// Retorna:
//   - domain.ErrInvalidInput      monto negativo o fechas inválidas.
//   - domain.ErrLimitReached      cuenta gratuita con el cupo del mes agotado.
//   - domain.ErrSubmissionPending otro envío con la misma clave está en curso.
//   - domain.ErrKeyReused         la clave ya se usó con otro contenido.
func (uc *InvoiceUseCase) Create(ctx context.Context, userID, idempotencyKey string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, bool, error) {
	inv, err := uc.buildInvoice(userID, idempotencyKey, in)
	if err != nil {
		return nil, false, err
	}

	if idempotencyKey != "" {
		release, err := uc.guard.Acquire(ctx, ports.SubmissionKey("invoice", userID, idempotencyKey))
		if err != nil {
			return nil, false, err
		}
		defer release()

		existing, err := uc.invoiceRepo.GetByIdempotencyKey(ctx, userID, idempotencyKey)
		if err != nil {
			return nil, false, err
		}
		if existing != nil {
			return replayInvoice(existing, inv)
		}
	}

	err = uc.txRunner.RunInvoice(ctx, func(userRepo repository.UserRepository, invoiceRepo repository.InvoiceRepository) error {
		if err := userRepo.LockByID(ctx, userID); err != nil {
			return err
		}
		user, err := userRepo.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}
		if !user.IsPro {
			count, err := invoiceRepo.CountByUserSince(ctx, userID, monthStart(inv.CreatedAt))
			if err != nil {
				return err
			}
			if count >= uc.freeInvoiceLimit {
				return domain.ErrLimitReached
			}
		}
		return invoiceRepo.Create(ctx, inv)
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) && idempotencyKey != "" {
			// otro proceso sin guardia compartida ganó la carrera
			existing, gErr := uc.invoiceRepo.GetByIdempotencyKey(ctx, userID, idempotencyKey)
			if gErr == nil && existing != nil {
				return replayInvoice(existing, inv)
			}
		}
		return nil, false, err
	}
	return ToInvoiceResponse(inv), true, nil
}

// List devuelve las facturas del usuario, más recientes primero.
func (uc *InvoiceUseCase) List(ctx context.Context, userID string, page dto.PageRequest) ([]dto.InvoiceResponse, error) {
	page.DefaultPage()
	list, err := uc.invoiceRepo.ListByUser(ctx, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, *ToInvoiceResponse(inv))
	}
	return out, nil
}

func (uc *InvoiceUseCase) buildInvoice(userID, idempotencyKey string, in dto.CreateInvoiceRequest) (*entity.Invoice, error) {
	name := strings.TrimSpace(in.ClientName)
	if name == "" {
		return nil, fmt.Errorf("%w: client_name es obligatorio", domain.ErrInvalidInput)
	}
	if in.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount no puede ser negativo", domain.ErrInvalidInput)
	}
	issued, err := time.Parse(dto.DateLayout, in.DateIssued)
	if err != nil {
		return nil, fmt.Errorf("%w: date_issued: %v", domain.ErrInvalidInput, err)
	}
	due, err := time.Parse(dto.DateLayout, in.DueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: due_date: %v", domain.ErrInvalidInput, err)
	}
	status := in.Status
	if status == "" {
		status = entity.InvoiceStatusPending
	}
	if !entity.ValidInvoiceStatus(status) {
		return nil, fmt.Errorf("%w: status %q", domain.ErrInvalidInput, status)
	}
	inv := &entity.Invoice{
		ID:             uuid.New().String(),
		UserID:         userID,
		ClientName:     name,
		Amount:         in.Amount.Round(2),
		DateIssued:     issued,
		DueDate:        due,
		Status:         status,
		IdempotencyKey: idempotencyKey,
		CreatedAt:      uc.now(),
	}
	if idempotencyKey != "" {
		inv.RequestHash = invoiceFingerprint(inv)
	}
	return inv, nil
}

// invoiceFingerprint huella de los campos enviados, ya normalizados.
func invoiceFingerprint(inv *entity.Invoice) string {
	return ports.RequestFingerprint(
		inv.ClientName,
		inv.Amount.StringFixed(2),
		inv.DateIssued.Format(dto.DateLayout),
		inv.DueDate.Format(dto.DateLayout),
		inv.Status,
	)
}

// replayInvoice devuelve la factura ya guardada si el reenvío trae el mismo contenido.
// Filas sin huella (anteriores a la columna) se aceptan como repetición.
func replayInvoice(existing, incoming *entity.Invoice) (*dto.InvoiceResponse, bool, error) {
	if existing.RequestHash != "" && existing.RequestHash != incoming.RequestHash {
		return nil, false, fmt.Errorf("%w: invoice", domain.ErrKeyReused)
	}
	return ToInvoiceResponse(existing), false, nil
}

// ToInvoiceResponse mapea la entidad al contrato JSON.
func ToInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		ID:         dto.FlexibleID(inv.ID),
		ClientName: inv.ClientName,
		Amount:     inv.Amount,
		DateIssued: inv.DateIssued.Format(dto.DateLayout),
		DueDate:    inv.DueDate.Format(dto.DateLayout),
		Status:     inv.Status,
		CreatedAt:  inv.CreatedAt,
	}
}

func monthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
