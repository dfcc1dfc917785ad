package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/atotto/clipboard"

	"github.com/jhoicas/mtaabiz/internal/application/billing"
	"github.com/jhoicas/mtaabiz/internal/application/session"
	"github.com/jhoicas/mtaabiz/internal/infrastructure/apiclient"
	infrapdf "github.com/jhoicas/mtaabiz/internal/infrastructure/pdf"
	"github.com/jhoicas/mtaabiz/internal/infrastructure/tokenstore"
	"github.com/jhoicas/mtaabiz/internal/interfaces/cli"
	"github.com/jhoicas/mtaabiz/pkg/config"
	"github.com/jhoicas/mtaabiz/pkg/logger"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "could not load configuration:", err)
		os.Exit(1)
	}

	// stdout queda para la salida de los comandos
	log := logger.New(logger.Config{
		Env:    "development",
		Level:  clientLogLevel(),
		Output: os.Stderr,
	})

	store := tokenstore.NewFileStore(cfg.Client.TokenFile)
	api := apiclient.New(cfg.Client.APIURL, cfg.Client.Timeout, store, log)
	sess := session.New(api, store, log)

	composer := billing.NewComposeUseCase(infrapdf.NewMarotoComposer(), billing.Issuer{
		Name:     cfg.Billing.IssuerName,
		Location: cfg.Billing.IssuerLocation,
		Email:    cfg.Billing.IssuerEmail,
	})

	var copyFn func(string) error
	if !clipboard.Unsupported {
		copyFn = clipboard.WriteAll
	}

	app := cli.NewApp(cli.Deps{
		Session:   sess,
		API:       api,
		Composer:  composer,
		Copy:      copyFn,
		Out:       os.Stdout,
		Err:       os.Stderr,
		OutputDir: cfg.Client.OutputDir,
		Version:   version,
		Log:       log,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil {
		var apiErr *apiclient.Error
		if errors.As(err, &apiErr) {
			log.Debug().Str("detail", apiErr.Detail()).Msg("cli: llamada remota fallida")
		}
		cli.PrintError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// clientLogLevel silencioso salvo MTAABIZ_DEBUG=1.
func clientLogLevel() string {
	if os.Getenv("MTAABIZ_DEBUG") == "1" {
		return "debug"
	}
	return "warn"
}
