package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

func (a *app) loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "log in and remember the session on this machine",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Required: true},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Required: true, EnvVars: []string{"MTAABIZ_PASSWORD"}},
		},
		Action: func(c *cli.Context) error {
			if err := a.Session.Login(c.Context, c.String("username"), c.String("password")); err != nil {
				return err
			}
			a.p.ok("Logged in as " + a.displayName())
			return nil
		},
	}
}

func (a *app) signupCommand() *cli.Command {
	return &cli.Command{
		Name:  "signup",
		Usage: "create an account and log in",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Required: true},
			&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Required: true},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Required: true, EnvVars: []string{"MTAABIZ_PASSWORD"}},
		},
		Action: func(c *cli.Context) error {
			if err := a.Session.Signup(c.Context, c.String("username"), c.String("email"), c.String("password")); err != nil {
				return err
			}
			a.p.ok("Account created. Welcome, " + a.displayName() + "!")
			return nil
		},
	}
}

func (a *app) logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "log out and forget the saved session",
		Action: func(c *cli.Context) error {
			a.Session.Logout(c.Context)
			a.p.ok("Logged out.")
			return nil
		},
	}
}

func (a *app) whoamiCommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "show the logged in user",
		Action: func(c *cli.Context) error {
			u := a.Session.User()
			if u == nil {
				a.p.muted("Not logged in.")
				return nil
			}
			a.p.line(fmt.Sprintf("%s <%s>", u.Username, u.Email))
			return nil
		},
	}
}

func (a *app) statusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "show the plan and invoices used this month",
		Action: func(c *cli.Context) error {
			if err := a.requireAuth(); err != nil {
				return err
			}
			st, err := a.API.AccountStatus(c.Context)
			if err != nil {
				return err
			}
			if st.IsPro || st.Limit == nil {
				a.p.line(fmt.Sprintf("Plan: PRO (%d invoices this month, unlimited)", st.InvoiceCount))
				return nil
			}
			a.p.line(fmt.Sprintf("Plan: Free (%d/%d invoices this month)", st.InvoiceCount, *st.Limit))
			if st.InvoiceCount >= *st.Limit {
				a.p.muted("Free limit reached. Run `mtaabiz plans` to see upgrade options.")
			}
			return nil
		},
	}
}

func (a *app) upgradeTestCommand() *cli.Command {
	return &cli.Command{
		Name:   "upgrade-test",
		Usage:  "mark the account as PRO without payment (test servers only)",
		Hidden: true,
		Action: func(c *cli.Context) error {
			if err := a.requireAuth(); err != nil {
				return err
			}
			resp, err := a.API.UpgradeTest(c.Context)
			if err != nil {
				return err
			}
			a.p.ok(resp.Message)
			return nil
		},
	}
}

// displayName usuario de la sesión o "your account" si el servidor no lo devolvió.
func (a *app) displayName() string {
	if u := a.Session.User(); u != nil && u.Username != "" {
		return u.Username
	}
	return "your account"
}
