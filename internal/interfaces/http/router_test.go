package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mtaabiz/internal/application/auth"
	"github.com/jhoicas/mtaabiz/internal/application/billing"
	"github.com/jhoicas/mtaabiz/internal/application/dto"
	"github.com/jhoicas/mtaabiz/internal/application/messaging"
	"github.com/jhoicas/mtaabiz/internal/infrastructure/guard"
	"github.com/jhoicas/mtaabiz/internal/infrastructure/memory"
	"github.com/jhoicas/mtaabiz/internal/infrastructure/xlsx"
	apphttp "github.com/jhoicas/mtaabiz/internal/interfaces/http"
	"github.com/jhoicas/mtaabiz/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testJWTSecret = "test-secret-key-for-unit-tests"

type fakeRenderer struct{}

func (fakeRenderer) Render(context.Context, *billing.InvoiceLayout) ([]byte, error) {
	return []byte("%PDF-1.3 fake"), nil
}

type appOptions struct {
	freeLimit    int
	allowUpgrade bool
}

// buildTestApp arma la API completa sobre el store en memoria.
func buildTestApp(t *testing.T, opts appOptions) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	g := guard.NewMemoryGuard()
	authUC := auth.NewAuthUseCase(store.Users(), store.Tokens(), store.Invoices(),
		auth.JWTConfig{Secret: testJWTSecret, Issuer: "mtaabiz-test"},
		auth.AccountPolicy{FreeInvoiceLimit: opts.freeLimit, AllowTestUpgrade: opts.allowUpgrade},
	)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:    authUC,
		InvoiceUC: billing.NewInvoiceUseCase(store.TxRunner(), store.Invoices(), g, opts.freeLimit),
		ComposeUC: billing.NewComposeUseCase(fakeRenderer{}, billing.DefaultIssuer()),
		ExportUC:  billing.NewExportUseCase(store.Invoices(), xlsx.NewInvoiceExporter()),
		MessageUC: messaging.NewMessageUseCase(store.Messages(), g),
		Log:       logger.Nop(),
		Service:   "mtaabiz-test",
	})
	return app
}

// doJSON lanza la petición y devuelve la respuesta.
func doJSON(t *testing.T, app *fiber.App, method, path, authHeader string, body interface{}, headers ...string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// register crea un usuario y devuelve el header "Token <t>".
func register(t *testing.T, app *fiber.App, username string) string {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/auth/register/", "", dto.RegisterRequest{
		Username: username, Email: username + "@example.co.ke", Password: "supersecret",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out dto.AuthResponse
	decode(t, resp, &out)
	require.NotEmpty(t, out.Token)
	return "Token " + out.Token
}

func invoiceBody() dto.CreateInvoiceRequest {
	var in dto.CreateInvoiceRequest
	_ = json.Unmarshal([]byte(`{"client_name":"Acme","amount":"1500.00","date_issued":"2024-03-05","due_date":"2024-04-04"}`), &in)
	return in
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	app := buildTestApp(t, appOptions{freeLimit: 10})
	resp := doJSON(t, app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegister_UsernameDuplicado_409(t *testing.T) {
	app := buildTestApp(t, appOptions{freeLimit: 10})
	register(t, app, "wanjiku")

	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Username: "wanjiku", Email: "other@example.co.ke", Password: "supersecret",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	var e dto.ErrorResponse
	decode(t, resp, &e)
	assert.Equal(t, "USERNAME_EXISTS", e.Code)
}

func TestRegister_Validacion_CamposJSON(t *testing.T) {
	app := buildTestApp(t, appOptions{freeLimit: 10})
	resp := doJSON(t, app, http.MethodPost, "/api/auth/register/", "", dto.RegisterRequest{
		Username: "ab", Email: "not-an-email", Password: "short",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var e dto.ErrorResponse
	decode(t, resp, &e)
	assert.Equal(t, "VALIDATION", e.Code)
	assert.Equal(t, "min", e.Fields["username"])
	assert.Equal(t, "email", e.Fields["email"])
	assert.Equal(t, "min", e.Fields["password"])
}

func TestLogin_CredencialesIncorrectas_400(t *testing.T) {
	app := buildTestApp(t, appOptions{freeLimit: 10})
	register(t, app, "otieno")

	for _, in := range []dto.LoginRequest{
		{Username: "otieno", Password: "wrong-password"},
		{Username: "nobody", Password: "supersecret"},
	} {
		resp := doJSON(t, app, http.MethodPost, "/api/auth/login/", "", in)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var e dto.ErrorResponse
		decode(t, resp, &e)
		assert.Equal(t, "INVALID_CREDENTIALS", e.Code)
		assert.Equal(t, "Incorrect Credentials", e.Message)
	}
}

func TestAuthMiddleware_TokenYBearer(t *testing.T) {
	app := buildTestApp(t, appOptions{freeLimit: 10})
	header := register(t, app, "akinyi")
	raw := header[len("Token "):]

	for _, h := range []string{"Token " + raw, "Bearer " + raw} {
		resp := doJSON(t, app, http.MethodGet, "/api/auth/user", h, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, h)
		var u dto.UserResponse
		decode(t, resp, &u)
		assert.Equal(t, "akinyi", u.Username)
	}
}

func TestAuthMiddleware_SinHeaderOTokenInvalido_401(t *testing.T) {
	app := buildTestApp(t, appOptions{freeLimit: 10})
	for _, h := range []string{"", "Token token.invalido.aqui", "Basic abc", "Token "} {
		resp := doJSON(t, app, http.MethodGet, "/api/auth/user/", h, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, h)
	}
}

func TestLogout_RevocaToken(t *testing.T) {
	app := buildTestApp(t, appOptions{freeLimit: 10})
	header := register(t, app, "kamau")

	resp := doJSON(t, app, http.MethodPost, "/api/auth/logout/", header, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/auth/user/", header, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Facturas
// ──────────────────────────────────────────────────────────────────────────────

func TestInvoices_CrearListarYReenvio(t *testing.T) {
	app := buildTestApp(t, appOptions{freeLimit: 10})
	header := register(t, app, "njeri")

	resp := doJSON(t, app, http.MethodPost, "/api/invoices/", header, invoiceBody(), "Idempotency-Key", "invoice:INV-000001")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var first dto.InvoiceResponse
	decode(t, resp, &first)
	assert.Equal(t, "PENDING", first.Status)
	assert.Equal(t, "2024-04-04", first.DueDate)

	resp = doJSON(t, app, http.MethodPost, "/api/invoices", header, invoiceBody(), "Idempotency-Key", "invoice:INV-000001")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var replay dto.InvoiceResponse
	decode(t, resp, &replay)
	assert.Equal(t, first.ID, replay.ID)

	resp = doJSON(t, app, http.MethodGet, "/api/invoices/?limit=10", header, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []dto.InvoiceResponse
	decode(t, resp, &list)
	assert.Len(t, list, 1)
}

func TestInvoices_MismaClaveOtroCuerpo_422(t *testing.T) {
	app := buildTestApp(t, appOptions{freeLimit: 10})
	header := register(t, app, "achieng")

	resp := doJSON(t, app, http.MethodPost, "/api/invoices/", header, invoiceBody(), "Idempotency-Key", "invoice:0b7e")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	otro := invoiceBody()
	otro.ClientName = "Duka la Juma"
	resp = doJSON(t, app, http.MethodPost, "/api/invoices/", header, otro, "Idempotency-Key", "invoice:0b7e")
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	var e dto.ErrorResponse
	decode(t, resp, &e)
	assert.Equal(t, "IDEMPOTENCY_KEY_REUSED", e.Code)

	resp = doJSON(t, app, http.MethodGet, "/api/invoices/", header, nil)
	var list []dto.InvoiceResponse
	decode(t, resp, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Acme", list[0].ClientName)
}

func TestInvoices_ListSinLimit_DevuelveTodas(t *testing.T) {
	app := buildTestApp(t, appOptions{freeLimit: 30})
	header := register(t, app, "kiprop")
	for i := 0; i < 23; i++ {
		resp := doJSON(t, app, http.MethodPost, "/api/invoices/", header, invoiceBody())
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := doJSON(t, app, http.MethodGet, "/api/invoices/", header, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []dto.InvoiceResponse
	decode(t, resp, &list)
	assert.Len(t, list, 23)

	resp = doJSON(t, app, http.MethodGet, "/api/invoices/export/", header, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestInvoices_LimiteGratuito_403YUpgrade(t *testing.T) {
	app := buildTestApp(t, appOptions{freeLimit: 1, allowUpgrade: true})
	header := register(t, app, "mwangi")

	resp := doJSON(t, app, http.MethodPost, "/api/invoices/", header, invoiceBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/invoices/", header, invoiceBody())
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	var e dto.ErrorResponse
	decode(t, resp, &e)
	assert.Equal(t, "LIMIT_REACHED", e.Code)

	resp = doJSON(t, app, http.MethodGet, "/api/auth/status/", header, nil)
	var st dto.AccountStatusResponse
	decode(t, resp, &st)
	assert.False(t, st.IsPro)
	assert.Equal(t, 1, st.InvoiceCount)
	require.NotNil(t, st.Limit)
	assert.Equal(t, 1, *st.Limit)

	resp = doJSON(t, app, http.MethodPost, "/api/auth/upgrade-test/", header, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/invoices/", header, invoiceBody())
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/auth/status/", header, nil)
	var raw map[string]interface{}
	decode(t, resp, &raw)
	assert.Equal(t, true, raw["is_pro"])
	assert.Nil(t, raw["limit"])
}

func TestUpgradeTest_DeshabilitadoEnProduccion_403(t *testing.T) {
	app := buildTestApp(t, appOptions{freeLimit: 10, allowUpgrade: false})
	header := register(t, app, "chebet")
	resp := doJSON(t, app, http.MethodPost, "/api/auth/upgrade-test/", header, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestInvoices_PDFYExport(t *testing.T) {
	app := buildTestApp(t, appOptions{freeLimit: 10})
	header := register(t, app, "wafula")

	body := map[string]interface{}{
		"invoice_number": "INV-123456",
		"issued_at":      "2024-03-05",
		"client_name":    "Mama Mboga",
		"items": []map[string]interface{}{
			{"description": "Sukuma", "quantity": 2, "unit_price": "50"},
		},
	}
	resp := doJSON(t, app, http.MethodPost, "/api/invoices/pdf/", header, body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "INV-123456-Mama-Mboga.pdf")

	body["client_name"] = ""
	resp = doJSON(t, app, http.MethodPost, "/api/invoices/pdf/", header, body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/invoices/export/", header, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")
}

func TestInvoices_PDF_NombreNoASCII_FilenameEstrella(t *testing.T) {
	app := buildTestApp(t, appOptions{freeLimit: 10})
	header := register(t, app, "nduta")

	body := map[string]interface{}{
		"invoice_number": "INV-000042",
		"issued_at":      "2024-03-05",
		"client_name":    "Café Ñandú",
		"items": []map[string]interface{}{
			{"description": "Chai", "quantity": 1, "unit_price": "80"},
		},
	}
	resp := doJSON(t, app, http.MethodPost, "/api/invoices/pdf/", header, body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cd := resp.Header.Get("Content-Disposition")
	assert.Equal(t, "attachment; filename*=utf-8''INV-000042-Caf%C3%A9-%C3%91and%C3%BA.pdf", cd)

	_, params, err := mime.ParseMediaType(cd)
	require.NoError(t, err)
	assert.Equal(t, "INV-000042-Café-Ñandú.pdf", params["filename"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Mensajes y contenido
// ──────────────────────────────────────────────────────────────────────────────

func TestMessages_GuardarYListar(t *testing.T) {
	app := buildTestApp(t, appOptions{freeLimit: 10})
	header := register(t, app, "auma")

	in := dto.CreateMessageTemplateRequest{Title: "Payment Reminder for Acme", Content: "Hello", Category: "REMINDER"}
	resp := doJSON(t, app, http.MethodPost, "/api/messages/", header, in)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	in.Category = "SPAM"
	resp = doJSON(t, app, http.MethodPost, "/api/messages/", header, in)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var e dto.ErrorResponse
	decode(t, resp, &e)
	assert.Equal(t, "oneof", e.Fields["category"])

	resp = doJSON(t, app, http.MethodGet, "/api/messages/", header, nil)
	var list []dto.MessageTemplateResponse
	decode(t, resp, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "REMINDER", list[0].Category)
}

func TestContent_GenerarMensaje(t *testing.T) {
	app := buildTestApp(t, appOptions{freeLimit: 10})

	resp := doJSON(t, app, http.MethodPost, "/api/content/messages/", "", dto.GenerateMessageRequest{
		MessageType: "payment-reminder", Tone: "polite", ClientName: "Acme",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.GeneratedTextResponse
	decode(t, resp, &out)
	assert.Contains(t, out.Text, "Acme")
	assert.Contains(t, out.ShareURL, "https://wa.me/?text=")
	assert.Equal(t, "REMINDER", out.Category)

	resp = doJSON(t, app, http.MethodPost, "/api/content/messages/", "", dto.GenerateMessageRequest{
		MessageType: "payment-reminder", Tone: "polite",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var e dto.ErrorResponse
	decode(t, resp, &e)
	assert.Equal(t, "VALIDATION", e.Code)
	assert.Equal(t, "required", e.Fields["client_name"])

	resp = doJSON(t, app, http.MethodPost, "/api/content/captions/", "", dto.GenerateCaptionRequest{
		Platform: "tiktok", BusinessType: "food", BusinessName: "X", Product: "Y",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	decode(t, resp, &e)
	assert.Equal(t, "INVALID_OPTION", e.Code)
}

func TestContent_GuiaYPlanes(t *testing.T) {
	app := buildTestApp(t, appOptions{freeLimit: 10})

	resp := doJSON(t, app, http.MethodGet, "/api/guide/registration/", "", nil)
	var steps []map[string]interface{}
	decode(t, resp, &steps)
	assert.Len(t, steps, 5)

	resp = doJSON(t, app, http.MethodGet, "/api/plans", "", nil)
	var plans []map[string]interface{}
	decode(t, resp, &plans)
	assert.Len(t, plans, 3)
}
