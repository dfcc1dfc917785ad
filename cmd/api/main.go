// @title           MtaaBiz API
// @version         1.0
// @description     API de MtaaBiz: cuentas, facturas, mensajes y plantillas de contenido.
// @BasePath        /
// @securityDefinitions.apikey TokenAuth
// @in header
// @name Authorization
// @description "Token <token>"
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/mtaabiz/docs"
	"github.com/jhoicas/mtaabiz/internal/application/auth"
	"github.com/jhoicas/mtaabiz/internal/application/billing"
	"github.com/jhoicas/mtaabiz/internal/application/messaging"
	"github.com/jhoicas/mtaabiz/internal/application/ports"
	"github.com/jhoicas/mtaabiz/internal/domain/repository"
	"github.com/jhoicas/mtaabiz/internal/infrastructure/guard"
	"github.com/jhoicas/mtaabiz/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/mtaabiz/internal/infrastructure/pdf"
	"github.com/jhoicas/mtaabiz/internal/infrastructure/postgres"
	"github.com/jhoicas/mtaabiz/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/mtaabiz/internal/interfaces/http"
	"github.com/jhoicas/mtaabiz/migrations"
	"github.com/jhoicas/mtaabiz/pkg/config"
	"github.com/jhoicas/mtaabiz/pkg/logger"
)

// repositories puertos de persistencia según STORAGE_DRIVER.
type repositories struct {
	users    repository.UserRepository
	tokens   repository.TokenRepository
	invoices repository.InvoiceRepository
	messages repository.MessageRepository
	tx       billing.InvoiceTxRunner
	close    func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.StorageDriver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	repos := openRepositories(ctx, cfg, log)
	defer repos.close()

	submissionGuard := openGuard(ctx, cfg, log)

	authUC := auth.NewAuthUseCase(repos.users, repos.tokens, repos.invoices,
		auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
		auth.AccountPolicy{
			FreeInvoiceLimit: cfg.Billing.FreeInvoiceLimit,
			AllowTestUpgrade: !cfg.App.IsProduction(),
		},
	)
	invoiceUC := billing.NewInvoiceUseCase(repos.tx, repos.invoices, submissionGuard, cfg.Billing.FreeInvoiceLimit)
	composeUC := billing.NewComposeUseCase(infrapdf.NewMarotoComposer(), billing.Issuer{
		Name:     cfg.Billing.IssuerName,
		Location: cfg.Billing.IssuerLocation,
		Email:    cfg.Billing.IssuerEmail,
	})
	exportUC := billing.NewExportUseCase(repos.invoices, xlsx.NewInvoiceExporter())
	messageUC := messaging.NewMessageUseCase(repos.messages, submissionGuard)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "MtaaBiz API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		InvoiceUC: invoiceUC,
		ComposeUC: composeUC,
		ExportUC:  exportUC,
		MessageUC: messageUC,
		Log:       log,
		Service:   cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openRepositories(ctx context.Context, cfg *config.Config, log *logger.Logger) repositories {
	if cfg.App.StorageDriver == "memory" {
		log.Warn().Msg("STORAGE_DRIVER=memory: los datos se pierden al reiniciar")
		store := memory.NewStore()
		return repositories{
			users:    store.Users(),
			tokens:   store.Tokens(),
			invoices: store.Invoices(),
			messages: store.Messages(),
			tx:       store.TxRunner(),
			close:    func() {},
		}
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, migrations.Files, log); err != nil {
			pool.Close()
			log.Fatal().Err(err).Msg("migraciones")
		}
	}
	return repositories{
		users:    postgres.NewUserRepository(pool),
		tokens:   postgres.NewTokenRepository(pool),
		invoices: postgres.NewInvoiceRepository(pool),
		messages: postgres.NewMessageRepository(pool),
		tx:       postgres.NewTxRunner(pool),
		close:    pool.Close,
	}
}

// openGuard usa locks de Redis si REDIS_ADDRESS está definido; si no, la guardia en memoria.
func openGuard(ctx context.Context, cfg *config.Config, log *logger.Logger) ports.SubmissionGuard {
	if cfg.Redis.Addr == "" {
		return guard.NewMemoryGuard()
	}
	rdb, err := guard.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
	}
	log.Info().Str("addr", cfg.Redis.Addr).Msg("guardia de envíos con Redis")
	return guard.NewRedisGuard(rdb, cfg.Redis.LockTTL, log)
}
