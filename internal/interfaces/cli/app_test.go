package cli_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mtaabiz/internal/application/billing"
	"github.com/jhoicas/mtaabiz/internal/application/dto"
	"github.com/jhoicas/mtaabiz/internal/application/session"
	"github.com/jhoicas/mtaabiz/internal/domain"
	"github.com/jhoicas/mtaabiz/internal/interfaces/cli"
)

type fakeAPI struct {
	user     *dto.UserResponse
	status   *dto.AccountStatusResponse
	saveErr  error
	invoices []dto.CreateInvoiceRequest
	invKeys  []string
	messages []dto.CreateMessageTemplateRequest
	msgKeys  []string
}

func (f *fakeAPI) Login(ctx context.Context, username, password string) (*dto.AuthResponse, error) {
	if password != "secret123" {
		return nil, errors.New("Incorrect Credentials")
	}
	f.user = &dto.UserResponse{ID: "1", Username: username, Email: username + "@example.com"}
	return &dto.AuthResponse{Token: "tok", User: f.user}, nil
}

func (f *fakeAPI) Signup(ctx context.Context, username, email, password string) (*dto.AuthResponse, error) {
	f.user = &dto.UserResponse{ID: "2", Username: username, Email: email}
	return &dto.AuthResponse{Token: "tok", User: f.user}, nil
}

func (f *fakeAPI) Logout(ctx context.Context) error { return nil }

func (f *fakeAPI) CurrentUser(ctx context.Context) (*dto.UserResponse, error) {
	if f.user == nil {
		return nil, errors.New("Invalid token.")
	}
	return f.user, nil
}

func (f *fakeAPI) AccountStatus(ctx context.Context) (*dto.AccountStatusResponse, error) {
	return f.status, nil
}

func (f *fakeAPI) UpgradeTest(ctx context.Context) (*dto.MessageResponse, error) {
	return &dto.MessageResponse{Message: "Account upgraded to PRO (test mode)."}, nil
}

func (f *fakeAPI) ListInvoices(ctx context.Context) ([]dto.InvoiceResponse, error) {
	return []dto.InvoiceResponse{{ID: "9", ClientName: "Mama Mboga", Amount: decimal.NewFromInt(500), DateIssued: "2026-10-01", DueDate: "2026-10-31", Status: "PENDING"}}, nil
}

func (f *fakeAPI) CreateInvoice(ctx context.Context, key string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.invKeys = append(f.invKeys, key)
	f.invoices = append(f.invoices, in)
	return &dto.InvoiceResponse{ID: "9", ClientName: in.ClientName, Amount: in.Amount}, nil
}

func (f *fakeAPI) ExportInvoices(ctx context.Context) ([]byte, error) { return []byte("xlsx"), nil }

func (f *fakeAPI) ListMessages(ctx context.Context) ([]dto.MessageTemplateResponse, error) {
	return nil, nil
}

func (f *fakeAPI) CreateMessage(ctx context.Context, key string, in dto.CreateMessageTemplateRequest) (*dto.MessageTemplateResponse, error) {
	f.msgKeys = append(f.msgKeys, key)
	f.messages = append(f.messages, in)
	return &dto.MessageTemplateResponse{ID: "3", Title: in.Title}, nil
}

type memTokens struct{ token string }

func (m *memTokens) Token() (string, error)   { return m.token, nil }
func (m *memTokens) SaveToken(t string) error { m.token = t; return nil }
func (m *memTokens) ClearToken() error        { m.token = ""; return nil }

type fakeRenderer struct{}

func (fakeRenderer) Render(ctx context.Context, l *billing.InvoiceLayout) ([]byte, error) {
	return []byte("%PDF-fake " + l.TotalValue), nil
}

type harness struct {
	api    *fakeAPI
	tokens *memTokens
	out    *bytes.Buffer
	dir    string
	copied string
}

// newHarness loggedIn=true simula un token guardado que el servidor reconoce.
func newHarness(t *testing.T, loggedIn bool) *harness {
	t.Helper()
	h := &harness{api: &fakeAPI{}, tokens: &memTokens{}, out: &bytes.Buffer{}, dir: t.TempDir()}
	if loggedIn {
		h.api.user = &dto.UserResponse{ID: "1", Username: "wanjiku", Email: "w@example.com"}
		h.tokens.token = "tok"
	}
	return h
}

func (h *harness) run(args ...string) error {
	sess := session.New(h.api, h.tokens, nil)
	app := cli.NewApp(cli.Deps{
		Session:   sess,
		API:       h.api,
		Composer:  billing.NewComposeUseCase(fakeRenderer{}, billing.DefaultIssuer()),
		Copy:      func(s string) error { h.copied = s; return nil },
		Out:       h.out,
		Err:       &bytes.Buffer{},
		OutputDir: h.dir,
		Now:       func() time.Time { return time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC) },
	})
	return app.Run(append([]string{"mtaabiz"}, args...))
}

func TestInvoiceCreate_GuardaYEscribePDF(t *testing.T) {
	h := newHarness(t, true)

	err := h.run("invoice", "create", "--client", "Mama Mboga", "--number", "INV-000123",
		"--item", "Sukuma wiki:10:50", "--item", "Delivery:1:1,200")
	require.NoError(t, err)

	require.Len(t, h.api.invoices, 1)
	require.Len(t, h.api.invKeys, 1)
	assert.True(t, strings.HasPrefix(h.api.invKeys[0], "invoice:"), h.api.invKeys[0])
	assert.NotContains(t, h.api.invKeys[0], "INV-000123")
	saved := h.api.invoices[0]
	assert.Equal(t, "Mama Mboga", saved.ClientName)
	assert.True(t, saved.Amount.Equal(decimal.NewFromInt(1700)), saved.Amount.String())
	assert.Equal(t, "2026-10-18", saved.DateIssued)
	assert.Equal(t, "PENDING", saved.Status)

	pdf, err := os.ReadFile(filepath.Join(h.dir, "INV-000123-Mama-Mboga.pdf"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
	assert.Contains(t, h.out.String(), "Saved to Dashboard")
}

func TestInvoiceCreate_SinSesionNoEscribe(t *testing.T) {
	h := newHarness(t, false)

	err := h.run("invoice", "create", "--client", "Mama Mboga", "--item", "Sukuma wiki:10:50")
	require.ErrorIs(t, err, cli.ErrNotLoggedIn)

	entries, _ := os.ReadDir(h.dir)
	assert.Empty(t, entries)
}

func TestInvoiceCreate_FallaGuardarNoEscribePDF(t *testing.T) {
	h := newHarness(t, true)
	h.api.saveErr = errors.New("You have reached the free limit of 10 invoices this month.")

	err := h.run("invoice", "create", "--client", "Mama Mboga", "--item", "Sukuma wiki:10:50")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to save invoice or generate PDF")

	entries, _ := os.ReadDir(h.dir)
	assert.Empty(t, entries)
}

func TestInvoiceCreate_NoSaveSinSesion(t *testing.T) {
	h := newHarness(t, false)

	err := h.run("invoice", "create", "--no-save", "--client", "Mama Mboga", "--number", "INV-1", "--item", "Sukuma wiki:10:50")
	require.NoError(t, err)
	assert.Empty(t, h.api.invoices)
	_, err = os.Stat(filepath.Join(h.dir, "INV-1-Mama-Mboga.pdf"))
	assert.NoError(t, err)
}

func TestInvoiceCreate_SinLineasConDescripcion(t *testing.T) {
	h := newHarness(t, true)

	err := h.run("invoice", "create", "--client", "Mama Mboga", "--item", ":1:100")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "Add at least one item with a description.", cli.ErrorMessage(err))
	assert.Empty(t, h.api.invoices)
}

func TestInvoiceCreate_ItemMalFormado(t *testing.T) {
	h := newHarness(t, true)

	err := h.run("invoice", "create", "--client", "Mama Mboga", "--item", "Sukuma wiki")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, h.api.invoices)
}

func TestMessageGenerate_EnlaceYCopia(t *testing.T) {
	h := newHarness(t, false)

	err := h.run("message", "generate", "--type", "payment-reminder", "--client", "Wanjiku", "--amount", "KES 500", "--copy")
	require.NoError(t, err)

	out := h.out.String()
	assert.Contains(t, out, "Dear Wanjiku,")
	assert.Contains(t, out, "https://wa.me/?text=Dear%20Wanjiku%2C")
	assert.Contains(t, h.copied, "KES 500")
	assert.Empty(t, h.api.messages)
}

func TestMessageGenerate_GuardarEnBiblioteca(t *testing.T) {
	h := newHarness(t, true)

	err := h.run("message", "generate", "--type", "thank-you", "--tone", "friendly", "--client", "Otieno", "--save")
	require.NoError(t, err)

	require.Len(t, h.api.messages, 1)
	assert.Equal(t, "thank-you for Otieno", h.api.messages[0].Title)
	assert.Equal(t, "MARKETING", h.api.messages[0].Category)
	require.Len(t, h.api.msgKeys, 1)
	assert.Contains(t, h.api.msgKeys[0], "message:")
}

func TestMessageGenerate_MismoTextoEnOtraEjecucion_SeGuardaDeNuevo(t *testing.T) {
	h := newHarness(t, true)
	args := []string{"message", "generate", "--type", "thank-you", "--client", "Otieno", "--save"}

	require.NoError(t, h.run(args...))
	require.NoError(t, h.run(args...))

	require.Len(t, h.api.msgKeys, 2)
	assert.Equal(t, h.api.messages[0].Content, h.api.messages[1].Content)
	assert.NotEqual(t, h.api.msgKeys[0], h.api.msgKeys[1])
}

func TestInvoiceCreate_MismoNumeroEnOtraEjecucion_ClaveDistinta(t *testing.T) {
	h := newHarness(t, true)
	args := []string{"invoice", "create", "--client", "Mama Mboga", "--number", "INV-000123", "--item", "Sukuma wiki:10:50"}

	require.NoError(t, h.run(args...))
	args[3] = "Duka la Juma"
	require.NoError(t, h.run(args...))

	require.Len(t, h.api.invKeys, 2)
	assert.NotEqual(t, h.api.invKeys[0], h.api.invKeys[1])
	assert.Equal(t, "Duka la Juma", h.api.invoices[1].ClientName)
}

func TestMessageGenerate_TonoInvalido(t *testing.T) {
	h := newHarness(t, false)

	err := h.run("message", "generate", "--type", "payment-reminder", "--tone", "angry", "--client", "Wanjiku")
	require.Error(t, err)
	assert.Contains(t, cli.ErrorMessage(err), `unknown tone "angry"`)
}

func TestStatus_PlanGratuito(t *testing.T) {
	h := newHarness(t, true)
	limit := 10
	h.api.status = &dto.AccountStatusResponse{InvoiceCount: 3, Limit: &limit}

	require.NoError(t, h.run("status"))
	assert.Contains(t, h.out.String(), "Plan: Free (3/10 invoices this month)")
}

func TestLogin_GuardaToken(t *testing.T) {
	h := newHarness(t, false)

	require.NoError(t, h.run("login", "--username", "wanjiku", "--password", "secret123"))
	assert.Equal(t, "tok", h.tokens.token)
	assert.Contains(t, h.out.String(), "Logged in as wanjiku")
}

func TestLogout_BorraToken(t *testing.T) {
	h := newHarness(t, true)

	require.NoError(t, h.run("logout"))
	assert.Empty(t, h.tokens.token)
}

func TestInvoiceExport_EscribeArchivo(t *testing.T) {
	h := newHarness(t, true)

	require.NoError(t, h.run("invoice", "export"))
	data, err := os.ReadFile(filepath.Join(h.dir, "invoices.xlsx"))
	require.NoError(t, err)
	assert.Equal(t, "xlsx", string(data))
}

func TestInvoiceList_Tabla(t *testing.T) {
	h := newHarness(t, true)

	require.NoError(t, h.run("invoice", "list"))
	assert.Contains(t, h.out.String(), "Mama Mboga")
	assert.Contains(t, h.out.String(), "PENDING")
}

func TestGuideYPlans(t *testing.T) {
	h := newHarness(t, false)

	require.NoError(t, h.run("guide"))
	require.NoError(t, h.run("plans"))
	out := h.out.String()
	assert.Contains(t, out, "Reserve Your Business Name")
	assert.Contains(t, out, "Silver (Business)")
	assert.Contains(t, out, "Most Popular")
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "", cli.ErrorMessage(nil))
	assert.Equal(t, "Client name is required.", cli.ErrorMessage(fmt.Errorf("%w: client name is required", domain.ErrInvalidInput)))
	assert.Equal(t, "Invalid input.", cli.ErrorMessage(domain.ErrInvalidInput))
	assert.Equal(t, "Please log in first: mtaabiz login", cli.ErrorMessage(cli.ErrNotLoggedIn))

	var buf bytes.Buffer
	cli.PrintError(&buf, cli.ErrNotLoggedIn)
	assert.Contains(t, buf.String(), "Please log in first")
}
