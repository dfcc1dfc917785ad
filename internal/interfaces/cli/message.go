package cli

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/jhoicas/mtaabiz/internal/application/dto"
	"github.com/jhoicas/mtaabiz/internal/application/messaging"
	"github.com/jhoicas/mtaabiz/internal/domain/content"
)

func (a *app) messageCommand() *cli.Command {
	return &cli.Command{
		Name:  "message",
		Usage: "generate and save business messages",
		Subcommands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "generate a business message ready to send on WhatsApp",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "type", Aliases: []string{"t"}, Usage: "one of " + joinVariants(content.MessageTypes), Required: true},
					&cli.StringFlag{Name: "tone", Usage: "one of " + joinVariants(content.Tones), Value: string(content.TonePolite)},
					&cli.StringFlag{Name: "client", Aliases: []string{"c"}, Usage: "client name", Required: true},
					&cli.StringFlag{Name: "amount", Aliases: []string{"a"}, Usage: "amount owed, e.g. \"KES 2,500\""},
					&cli.BoolFlag{Name: "copy", Usage: "copy the message to the clipboard"},
					&cli.BoolFlag{Name: "save", Usage: "save the message to your library"},
				},
				Action: a.messageGenerate,
			},
			{
				Name:   "list",
				Usage:  "list saved messages, newest first",
				Action: a.messageList,
			},
		},
	}
}

func (a *app) messageGenerate(c *cli.Context) error {
	gen, err := messaging.GenerateMessage(dto.GenerateMessageRequest{
		MessageType: c.String("type"),
		Tone:        c.String("tone"),
		ClientName:  c.String("client"),
		Amount:      c.String("amount"),
	})
	if err != nil {
		return err
	}
	a.showGenerated(gen, c.Bool("copy"))
	if !c.Bool("save") {
		return nil
	}
	if err := a.requireAuth(); err != nil {
		return err
	}
	key := messaging.MessageSubmissionKey(uuid.NewString(), gen.Title, gen.Text)
	if _, err := a.API.CreateMessage(c.Context, key, messaging.SaveRequest(gen)); err != nil {
		return err
	}
	a.p.ok("Saved to your library as \"" + gen.Title + "\"")
	return nil
}

func (a *app) messageList(c *cli.Context) error {
	if err := a.requireAuth(); err != nil {
		return err
	}
	msgs, err := a.API.ListMessages(c.Context)
	if err != nil {
		return err
	}
	if len(msgs) == 0 {
		a.p.muted("No saved messages yet.")
		return nil
	}
	for _, m := range msgs {
		a.p.title(fmt.Sprintf("%s [%s]", m.Title, m.Category))
		a.p.panel(m.Content)
	}
	return nil
}

// showGenerated texto en un panel, enlace de WhatsApp y copia opcional al portapapeles.
// Si el portapapeles falla el texto ya está en pantalla; solo se avisa.
func (a *app) showGenerated(gen *dto.GeneratedTextResponse, copyText bool) {
	a.p.panel(gen.Text)
	a.p.link("Share on WhatsApp:", gen.ShareURL)
	if !copyText {
		return
	}
	if a.Copy == nil {
		a.p.muted("Clipboard is not available here.")
		return
	}
	if err := a.Copy(gen.Text); err != nil {
		a.Log.Debug().Err(err).Msg("cli: portapapeles no disponible")
		a.p.muted("Could not copy to the clipboard.")
		return
	}
	a.p.ok("Copied!")
}

func joinVariants[T ~string](vs []T) string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = string(v)
	}
	return strings.Join(out, ", ")
}
