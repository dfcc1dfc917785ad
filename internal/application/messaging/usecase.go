package messaging

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

// MessageUseCase biblioteca de plantillas de mensaje del usuario.
type MessageUseCase struct {
	repo  repository.MessageRepository
	guard ports.SubmissionGuard
	now   func() time.Time
}

// NewMessageUseCase construye el caso de uso.
func NewMessageUseCase(repo repository.MessageRepository, guard ports.SubmissionGuard) *MessageUseCase {
	return &MessageUseCase{repo: repo, guard: guard, now: time.Now}
}

// Create guarda una plantilla. Con idempotencyKey un reenvío devuelve la ya guardada (created=false).
func (uc *MessageUseCase) Create(ctx context.Context, userID, idempotencyKey string, in dto.CreateMessageTemplateRequest) (*dto.MessageTemplateResponse, bool, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Content) == "" {
		return nil, false, fmt.Errorf("%w: title y content son obligatorios", domain.ErrInvalidInput)
	}
	if !entity.ValidMessageCategory(in.Category) {
		return nil, false, fmt.Errorf("%w: category %q", domain.ErrInvalidInput, in.Category)
	}

	title := strings.TrimSpace(in.Title)
	var hash string
	if idempotencyKey != "" {
		hash = ports.RequestFingerprint(title, in.Content, in.Category)
		release, err := uc.guard.Acquire(ctx, ports.SubmissionKey("message", userID, idempotencyKey))
		if err != nil {
			return nil, false, err
		}
		defer release()

		existing, err := uc.repo.GetByIdempotencyKey(ctx, userID, idempotencyKey)
		if err != nil {
			return nil, false, err
		}
		if existing != nil {
			return replayMessage(existing, hash)
		}
	}

	msg := &entity.MessageTemplate{
		ID:             uuid.New().String(),
		UserID:         userID,
		Title:          title,
		Content:        in.Content,
		Category:       in.Category,
		IdempotencyKey: idempotencyKey,
		RequestHash:    hash,
		CreatedAt:      uc.now(),
	}
	if err := uc.repo.Create(ctx, msg); err != nil {
		if errors.Is(err, domain.ErrDuplicate) && idempotencyKey != "" {
			if existing, gErr := uc.repo.GetByIdempotencyKey(ctx, userID, idempotencyKey); gErr == nil && existing != nil {
				return replayMessage(existing, hash)
			}
		}
		return nil, false, err
	}
	return ToMessageTemplateResponse(msg), true, nil
}

// List devuelve la biblioteca del usuario, más recientes primero.
func (uc *MessageUseCase) List(ctx context.Context, userID string, page dto.PageRequest) ([]dto.MessageTemplateResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByUser(ctx, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MessageTemplateResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *ToMessageTemplateResponse(m))
	}
	return out, nil
}

// replayMessage devuelve la plantilla ya guardada si el reenvío trae el mismo contenido.
func replayMessage(existing *entity.MessageTemplate, hash string) (*dto.MessageTemplateResponse, bool, error) {
	if existing.RequestHash != "" && existing.RequestHash != hash {
		return nil, false, fmt.Errorf("%w: message", domain.ErrKeyReused)
	}
	return ToMessageTemplateResponse(existing), false, nil
}

// ToMessageTemplateResponse mapea la entidad al contrato JSON.
func ToMessageTemplateResponse(m *entity.MessageTemplate) *dto.MessageTemplateResponse {
	return &dto.MessageTemplateResponse{
		ID:        dto.FlexibleID(m.ID),
		Title:     m.Title,
		Content:   m.Content,
		Category:  m.Category,
		CreatedAt: m.CreatedAt,
	}
}
