package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ------- estilos de salida (Lip Gloss) -------
var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("29"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	panelStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

// printer salida estilizada hacia out (resultados) y errOut (fallos).
type printer struct {
	out    io.Writer
	errOut io.Writer
}

func (p printer) title(s string) { fmt.Fprintln(p.out, titleStyle.Render(s)) }
func (p printer) ok(s string)    { fmt.Fprintln(p.out, successStyle.Render("✔ "+s)) }
func (p printer) muted(s string) { fmt.Fprintln(p.out, mutedStyle.Render(s)) }
func (p printer) line(s string)  { fmt.Fprintln(p.out, s) }
func (p printer) fail(s string)  { fmt.Fprintln(p.errOut, errorStyle.Render("✖ "+s)) }

func (p printer) panel(lines ...string) {
	fmt.Fprintln(p.out, panelStyle.Render(strings.Join(lines, "\n")))
}

func (p printer) link(label, url string) {
	fmt.Fprintln(p.out, mutedStyle.Render(label)+" "+accentStyle.Render(url))
}
