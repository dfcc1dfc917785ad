package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/urfave/cli/v2"

	"github.com/jhoicas/mtaabiz/internal/application/billing"
	"github.com/jhoicas/mtaabiz/internal/application/dto"
	"github.com/jhoicas/mtaabiz/internal/domain"
	"github.com/jhoicas/mtaabiz/internal/domain/entity"
	"github.com/jhoicas/mtaabiz/pkg/money"
)

func (a *app) invoiceCommand() *cli.Command {
	return &cli.Command{
		Name:  "invoice",
		Usage: "create, list and export invoices",
		Subcommands: []*cli.Command{
			{
				Name:      "create",
				Usage:     "save an invoice to your account and write its PDF",
				UsageText: `mtaabiz invoice create --client "Mama Mboga" --item "Sukuma wiki:10:50" [--item ...]`,
				Flags:     draftFlags(true),
				Action:    a.invoiceCreate,
			},
			{
				Name:   "pdf",
				Usage:  "write the PDF of an invoice without saving it",
				Flags:  draftFlags(false),
				Action: a.invoicePDF,
			},
			{
				Name:   "list",
				Usage:  "list saved invoices, newest first",
				Action: a.invoiceList,
			},
			{
				Name:  "export",
				Usage: "download all saved invoices as an Excel workbook",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "destination file (default: invoices.xlsx in the output directory)"},
				},
				Action: a.invoiceExport,
			},
		},
	}
}

func draftFlags(withSave bool) []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{Name: "client", Aliases: []string{"c"}, Usage: "client name", Required: true},
		&cli.StringFlag{Name: "email", Usage: "client email"},
		&cli.StringFlag{Name: "phone", Usage: "client phone"},
		&cli.StringFlag{Name: "notes", Usage: "notes or payment terms printed on the invoice"},
		&cli.StringFlag{Name: "number", Usage: "invoice number (default: generated)"},
		&cli.StringFlag{Name: "date", Usage: "issue date YYYY-MM-DD (default: today)"},
		&cli.StringSliceFlag{Name: "item", Aliases: []string{"i"}, Usage: `line item "description:quantity:price" (repeatable)`, Required: true},
		&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output directory for the PDF"},
	}
	if withSave {
		flags = append(flags, &cli.BoolFlag{Name: "no-save", Usage: "only write the PDF, do not save to your account"})
	}
	return flags
}

// draftFromFlags arma el borrador; el número se genera una sola vez aquí.
func (a *app) draftFromFlags(c *cli.Context) (*entity.InvoiceDraft, error) {
	draft := entity.NewInvoiceDraft(a.Now())
	if s := c.String("date"); s != "" {
		t, err := time.Parse(dto.DateLayout, s)
		if err != nil {
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrInvalidInput)
		}
		draft.IssuedAt = t
	}
	if s := c.String("number"); s != "" {
		draft.InvoiceNumber = s
	}
	draft.ClientName = c.String("client")
	draft.ClientEmail = c.String("email")
	draft.ClientPhone = c.String("phone")
	draft.Notes = c.String("notes")
	draft.Items = nil
	for _, raw := range c.StringSlice("item") {
		it, err := ParseItem(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		draft.AddItem(it.Description, it.Quantity, it.UnitPrice)
	}
	return draft, nil
}

// invoiceCreate guarda primero en la cuenta y solo si eso funciona escribe el PDF.
func (a *app) invoiceCreate(c *cli.Context) error {
	draft, err := a.draftFromFlags(c)
	if err != nil {
		return err
	}
	if err := billing.ValidateDraft(draft); err != nil {
		return err
	}
	if !c.Bool("no-save") {
		if err := a.requireAuth(); err != nil {
			return err
		}
		saved, err := a.API.CreateInvoice(c.Context, draft.SubmissionKey(), billing.SavedInvoiceRequest(draft))
		if err != nil {
			a.Log.Debug().Err(err).Str("invoice", draft.InvoiceNumber).Msg("cli: guardar factura falló")
			return fmt.Errorf("Failed to save invoice or generate PDF. Please try again. (%s)", ErrorMessage(err))
		}
		a.p.ok("Saved to Dashboard: invoice has been saved to your account (" + saved.ID.String() + ")")
	}
	return a.writePDF(c, draft)
}

func (a *app) invoicePDF(c *cli.Context) error {
	draft, err := a.draftFromFlags(c)
	if err != nil {
		return err
	}
	return a.writePDF(c, draft)
}

func (a *app) writePDF(c *cli.Context, draft *entity.InvoiceDraft) error {
	pdf, filename, err := a.Composer.Compose(c.Context, draft)
	if err != nil {
		return err
	}
	dir := c.String("out")
	if dir == "" {
		dir = a.OutputDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return fmt.Errorf("write PDF: %w", err)
	}
	a.p.ok("PDF written to " + path)
	a.p.line("Total due: " + money.KES.Format(draft.Total()))
	return nil
}

func (a *app) invoiceList(c *cli.Context) error {
	if err := a.requireAuth(); err != nil {
		return err
	}
	invoices, err := a.API.ListInvoices(c.Context)
	if err != nil {
		return err
	}
	if len(invoices) == 0 {
		a.p.muted("No invoices yet. Create one with `mtaabiz invoice create`.")
		return nil
	}
	rows := make([][]string, 0, len(invoices))
	for _, inv := range invoices {
		rows = append(rows, []string{inv.ClientName, money.KES.Format(inv.Amount), inv.DateIssued, inv.DueDate, inv.Status})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers("CLIENT", "AMOUNT", "ISSUED", "DUE", "STATUS").
		Rows(rows...)
	a.p.line(t.Render())
	return nil
}

func (a *app) invoiceExport(c *cli.Context) error {
	if err := a.requireAuth(); err != nil {
		return err
	}
	data, err := a.API.ExportInvoices(c.Context)
	if err != nil {
		return err
	}
	path := c.String("out")
	if path == "" {
		path = filepath.Join(a.OutputDir, "invoices.xlsx")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	a.p.ok("Exported to " + path)
	return nil
}
