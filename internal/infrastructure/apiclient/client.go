// Package apiclient es el cliente HTTP del API remoto de MtaaBiz.
// Cada llamada es un único intento, sin reintentos; toda falla es un *Error.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/mtaabiz/internal/application/dto"
	"github.com/jhoicas/mtaabiz/pkg/logger"
)

// maxBodyBytes tope de lectura de respuestas (el export XLSX es el más grande).
const maxBodyBytes = 16 << 20

// TokenSource entrega el token vigente al momento de cada llamada.
type TokenSource interface {
	Token() (string, error)
}

// Client cliente del API remoto.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	log        *logger.Logger
	guard      *inflight
}

// New construye el cliente. baseURL sin barra final, p. ej. http://localhost:8000/api.
func New(baseURL string, timeout time.Duration, tokens TokenSource, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
		log:        log,
		guard:      newInflight(),
	}
}

// WithHTTPClient reemplaza el http.Client (tests).
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// ── Auth ──────────────────────────────────────────────────────────────────────

// Login POST /auth/login/.
func (c *Client) Login(ctx context.Context, username, password string) (*dto.AuthResponse, error) {
	var out dto.AuthResponse
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/login/",
		body:   dto.LoginRequest{Username: username, Password: password},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Signup POST /auth/register/.
func (c *Client) Signup(ctx context.Context, username, email, password string) (*dto.AuthResponse, error) {
	var out dto.AuthResponse
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/register/",
		body:   dto.RegisterRequest{Username: username, Email: email, Password: password},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout POST /auth/logout/. Cualquier 2xx (incluido 204 sin cuerpo) es éxito.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, request{method: http.MethodPost, path: "/auth/logout/", auth: true}, nil)
}

// CurrentUser GET /auth/user/.
func (c *Client) CurrentUser(ctx context.Context) (*dto.UserResponse, error) {
	var out dto.UserResponse
	if err := c.do(ctx, request{method: http.MethodGet, path: "/auth/user/", auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AccountStatus GET /auth/status/.
func (c *Client) AccountStatus(ctx context.Context) (*dto.AccountStatusResponse, error) {
	var out dto.AccountStatusResponse
	if err := c.do(ctx, request{method: http.MethodGet, path: "/auth/status/", auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpgradeTest POST /auth/upgrade-test/.
func (c *Client) UpgradeTest(ctx context.Context) (*dto.MessageResponse, error) {
	var out dto.MessageResponse
	if err := c.do(ctx, request{method: http.MethodPost, path: "/auth/upgrade-test/", auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ── Facturas ──────────────────────────────────────────────────────────────────

// ListInvoices GET /invoices/.
func (c *Client) ListInvoices(ctx context.Context) ([]dto.InvoiceResponse, error) {
	var out []dto.InvoiceResponse
	if err := c.do(ctx, request{method: http.MethodGet, path: "/invoices/", auth: true}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateInvoice POST /invoices/ a lo sumo una vez por submissionKey (identidad del borrador).
func (c *Client) CreateInvoice(ctx context.Context, submissionKey string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	v, shared, err := c.guard.do(submissionKey, func() (any, error) {
		var out dto.InvoiceResponse
		err := c.do(ctx, request{
			method:         http.MethodPost,
			path:           "/invoices/",
			auth:           true,
			body:           in,
			idempotencyKey: submissionKey,
		}, &out)
		return &out, err
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.log.Debug().Str("key", submissionKey).Msg("apiclient: envío duplicado, se reutiliza el resultado")
	}
	return v.(*dto.InvoiceResponse), nil
}

// ExportInvoices GET /invoices/export/ (hoja de cálculo).
func (c *Client) ExportInvoices(ctx context.Context) ([]byte, error) {
	var out []byte
	if err := c.do(ctx, request{method: http.MethodGet, path: "/invoices/export/", auth: true, raw: &out}, nil); err != nil {
		return nil, err
	}
	return out, nil
}

// ── Mensajes ──────────────────────────────────────────────────────────────────

// ListMessages GET /messages/.
func (c *Client) ListMessages(ctx context.Context) ([]dto.MessageTemplateResponse, error) {
	var out []dto.MessageTemplateResponse
	if err := c.do(ctx, request{method: http.MethodGet, path: "/messages/", auth: true}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateMessage POST /messages/ a lo sumo una vez por submissionKey.
func (c *Client) CreateMessage(ctx context.Context, submissionKey string, in dto.CreateMessageTemplateRequest) (*dto.MessageTemplateResponse, error) {
	v, _, err := c.guard.do(submissionKey, func() (any, error) {
		var out dto.MessageTemplateResponse
		err := c.do(ctx, request{
			method:         http.MethodPost,
			path:           "/messages/",
			auth:           true,
			body:           in,
			idempotencyKey: submissionKey,
		}, &out)
		return &out, err
	})
	if err != nil {
		return nil, err
	}
	return v.(*dto.MessageTemplateResponse), nil
}

// ── Transporte ────────────────────────────────────────────────────────────────

type request struct {
	method         string
	path           string
	auth           bool
	body           any
	idempotencyKey string
	raw            *[]byte // si no es nil recibe el cuerpo crudo en vez de decodificar JSON
}

// do ejecuta la llamada y decodifica la respuesta 2xx en out (si out no es nil).
func (c *Client) do(ctx context.Context, r request, out any) error {
	var body io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return &Error{Kind: KindTransport, Message: MessageFallback, Err: fmt.Errorf("serializar request: %w", err)}
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, body)
	if err != nil {
		return transportError(fmt.Errorf("crear HTTP request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", r.idempotencyKey)
	}
	if r.auth && c.tokens != nil {
		token, err := c.tokens.Token()
		if err != nil {
			c.log.Debug().Err(err).Msg("apiclient: no se pudo leer el token")
		}
		if token != "" {
			req.Header.Set("Authorization", "Token "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("method", r.method).Str("path", r.path).Msg("apiclient: llamada HTTP fallida")
		if ctx.Err() != nil {
			return transportError(ctx.Err())
		}
		return transportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return transportError(fmt.Errorf("leer respuesta: %w", err))
	}
	c.log.Debug().
		Str("method", r.method).
		Str("path", r.path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("apiclient: respuesta")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp.StatusCode, raw)
	}
	if r.raw != nil {
		*r.raw = raw
		return nil
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		if out != nil {
			return decodeError(resp.StatusCode, fmt.Errorf("cuerpo vacío"))
		}
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return decodeError(resp.StatusCode, err)
	}
	return nil
}
