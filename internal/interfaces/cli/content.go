package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/jhoicas/mtaabiz/internal/application/dto"
	"github.com/jhoicas/mtaabiz/internal/application/messaging"
	"github.com/jhoicas/mtaabiz/internal/domain/content"
)

func (a *app) captionCommand() *cli.Command {
	return &cli.Command{
		Name:  "caption",
		Usage: "marketing captions for social media",
		Subcommands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "generate a caption for a product",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "platform", Usage: "one of " + joinVariants(content.Platforms), Value: string(content.PlatformInstagram)},
					&cli.StringFlag{Name: "business-type", Usage: "one of " + joinVariants(content.BusinessTypes), Value: string(content.BusinessFood)},
					&cli.StringFlag{Name: "business", Aliases: []string{"b"}, Usage: "business name", Required: true},
					&cli.StringFlag{Name: "product", Usage: "product or service", Required: true},
					&cli.BoolFlag{Name: "copy", Usage: "copy the caption to the clipboard"},
				},
				Action: func(c *cli.Context) error {
					gen, err := messaging.GenerateCaption(dto.GenerateCaptionRequest{
						Platform:     c.String("platform"),
						BusinessType: c.String("business-type"),
						BusinessName: c.String("business"),
						Product:      c.String("product"),
					})
					if err != nil {
						return err
					}
					a.showGenerated(gen, c.Bool("copy"))
					return nil
				},
			},
		},
	}
}

func (a *app) guideCommand() *cli.Command {
	return &cli.Command{
		Name:  "guide",
		Usage: "how to register a business in Kenya, step by step",
		Action: func(c *cli.Context) error {
			for _, s := range content.RegistrationGuide() {
				a.p.title(fmt.Sprintf("%d. %s", s.Number, s.Title))
				a.p.line(s.Description)
				for _, d := range s.Details {
					a.p.line("  • " + d)
				}
				if s.Fees != "" {
					a.p.muted("  Fees: " + s.Fees)
				}
				if s.Link != "" {
					a.p.link("  Visit:", s.Link)
				}
				a.p.line("")
			}
			return nil
		},
	}
}

func (a *app) plansCommand() *cli.Command {
	return &cli.Command{
		Name:  "plans",
		Usage: "subscription plans",
		Action: func(c *cli.Context) error {
			for _, p := range content.Plans() {
				head := fmt.Sprintf("%s  %s/month", p.Name, p.Price)
				if p.Popular {
					head += "  ★ Most Popular"
				}
				lines := []string{titleStyle.Render(head), mutedStyle.Render(p.Description)}
				for _, f := range p.Features {
					lines = append(lines, "✔ "+f)
				}
				a.p.panel(lines...)
			}
			return nil
		},
	}
}
