package billing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mtaabiz/internal/application/billing"
	"github.com/jhoicas/mtaabiz/internal/application/dto"
	"github.com/jhoicas/mtaabiz/internal/domain"
	"github.com/jhoicas/mtaabiz/internal/domain/entity"
)

type fakeRenderer struct {
	got *billing.InvoiceLayout
	err error
}

func (f *fakeRenderer) Render(_ context.Context, l *billing.InvoiceLayout) ([]byte, error) {
	f.got = l
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-fake"), nil
}

func TestComposeUseCase_Compose_OK(t *testing.T) {
	r := &fakeRenderer{}
	uc := billing.NewComposeUseCase(r, billing.DefaultIssuer())
	pdf, name, err := uc.Compose(context.Background(), sampleDraft())
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), pdf)
	assert.Equal(t, "INV-654321-John-Kamau.pdf", name)
	require.NotNil(t, r.got)
	assert.Equal(t, "KES 2,000.00", r.got.TotalValue)
}

func TestComposeUseCase_SinCliente_NoRenderiza(t *testing.T) {
	r := &fakeRenderer{}
	uc := billing.NewComposeUseCase(r, billing.DefaultIssuer())
	d := sampleDraft()
	d.ClientName = " "
	_, _, err := uc.Compose(context.Background(), d)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, r.got)
}

func TestComposeUseCase_SinLineasConDescripcion_RetornaInvalidInput(t *testing.T) {
	uc := billing.NewComposeUseCase(&fakeRenderer{}, billing.DefaultIssuer())
	d := entity.NewInvoiceDraft(time.Now())
	d.ClientName = "Acme"
	_, _, err := uc.Compose(context.Background(), d)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestComposeUseCase_ErrorDelRenderer_SeEnvuelve(t *testing.T) {
	boom := errors.New("boom")
	uc := billing.NewComposeUseCase(&fakeRenderer{err: boom}, billing.DefaultIssuer())
	_, _, err := uc.Compose(context.Background(), sampleDraft())
	assert.ErrorIs(t, err, boom)
}

func TestDraftFromRequest_YSavedInvoiceRequest(t *testing.T) {
	now := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	d, err := billing.DraftFromRequest(dto.ComposeInvoiceRequest{
		IssuedAt:   "2024-02-01",
		ClientName: "Acme",
		Items: []dto.LineItemRequest{
			{Description: "A", Quantity: 2, UnitPrice: decimal.NewFromInt(10)},
			{Description: "", Quantity: 1, UnitPrice: decimal.NewFromInt(5)},
		},
	}, now)
	require.NoError(t, err)
	assert.Len(t, d.Items, 2)
	assert.Equal(t, entity.NewInvoiceNumber(now), d.InvoiceNumber)

	saved := billing.SavedInvoiceRequest(d)
	assert.Equal(t, "2024-02-01", saved.DateIssued)
	assert.Equal(t, "2024-03-02", saved.DueDate)
	assert.True(t, saved.Amount.Equal(decimal.NewFromInt(25)))
	assert.Equal(t, entity.InvoiceStatusPending, saved.Status)

	_, err = billing.DraftFromRequest(dto.ComposeInvoiceRequest{IssuedAt: "05/03/2024"}, now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
