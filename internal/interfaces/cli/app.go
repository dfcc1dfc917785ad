// Package cli expone el cliente de MtaaBiz como comandos de terminal (urfave/cli).
package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/jhoicas/mtaabiz/internal/application/billing"
	"github.com/jhoicas/mtaabiz/internal/application/dto"
	"github.com/jhoicas/mtaabiz/internal/application/session"
	"github.com/jhoicas/mtaabiz/internal/domain"
	"github.com/jhoicas/mtaabiz/pkg/logger"
)

// API operaciones remotas que usan los comandos, además de las de la sesión.
type API interface {
	AccountStatus(ctx context.Context) (*dto.AccountStatusResponse, error)
	UpgradeTest(ctx context.Context) (*dto.MessageResponse, error)
	ListInvoices(ctx context.Context) ([]dto.InvoiceResponse, error)
	CreateInvoice(ctx context.Context, submissionKey string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	ExportInvoices(ctx context.Context) ([]byte, error)
	ListMessages(ctx context.Context) ([]dto.MessageTemplateResponse, error)
	CreateMessage(ctx context.Context, submissionKey string, in dto.CreateMessageTemplateRequest) (*dto.MessageTemplateResponse, error)
}

// Deps dependencias del CLI. Copy y Now son opcionales.
type Deps struct {
	Session   *session.Session
	API       API
	Composer  *billing.ComposeUseCase
	Copy      func(text string) error
	Out       io.Writer
	Err       io.Writer
	OutputDir string
	Now       func() time.Time
	Version   string
	Log       *logger.Logger
}

// ErrNotLoggedIn el comando necesita una sesión.
var ErrNotLoggedIn = errors.New("Please log in first: mtaabiz login")

type app struct {
	Deps
	p printer
}

// NewApp arma la aplicación de comandos. La sesión se inicializa una vez en Before.
func NewApp(deps Deps) *cli.App {
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	if deps.Err == nil {
		deps.Err = os.Stderr
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.OutputDir == "" {
		deps.OutputDir = "."
	}
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	a := &app{Deps: deps, p: printer{out: deps.Out, errOut: deps.Err}}

	return &cli.App{
		Name:                      "mtaabiz",
		Usage:                     "invoices, business messages and captions for Kenyan small businesses",
		Version:                   deps.Version,
		Writer:                    deps.Out,
		ErrWriter:                 deps.Err,
		HideHelpCommand:           true,
		DisableSliceFlagSeparator: true,
		Before: func(c *cli.Context) error {
			a.Session.Init(c.Context)
			return nil
		},
		Commands: []*cli.Command{
			a.loginCommand(),
			a.signupCommand(),
			a.logoutCommand(),
			a.whoamiCommand(),
			a.statusCommand(),
			a.upgradeTestCommand(),
			a.invoiceCommand(),
			a.messageCommand(),
			a.captionCommand(),
			a.guideCommand(),
			a.plansCommand(),
		},
	}
}

func (a *app) requireAuth() error {
	if !a.Session.IsAuthenticated() {
		return ErrNotLoggedIn
	}
	return nil
}

// ErrorMessage texto para mostrar al usuario a partir de cualquier error de un comando.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		s := err.Error()
		prefix := domain.ErrInvalidInput.Error() + ": "
		if i := strings.Index(s, prefix); i >= 0 && len(s) > i+len(prefix) {
			s = s[i+len(prefix):]
			return strings.ToUpper(s[:1]) + s[1:] + "."
		}
		return "Invalid input."
	}
	return err.Error()
}

// PrintError escribe el mensaje de error con el estilo del CLI.
func PrintError(w io.Writer, err error) {
	printer{out: w, errOut: w}.fail(ErrorMessage(err))
}
