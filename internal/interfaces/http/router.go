package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mtaabiz/internal/application/auth"
	"github.com/jhoicas/mtaabiz/internal/application/billing"
	"github.com/jhoicas/mtaabiz/internal/application/messaging"
	"github.com/jhoicas/mtaabiz/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	InvoiceUC *billing.InvoiceUseCase
	ComposeUC *billing.ComposeUseCase
	ExportUC  *billing.ExportUseCase
	MessageUC *messaging.MessageUseCase
	Log       *logger.Logger
	Service   string
}

// Router registra las rutas de la API. Con StrictRouting=false (default de Fiber)
// cada ruta acepta la barra final opcional.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.Service})
	})

	api := app.Group("/api")
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.Service})
	})
	requireAuth := AuthMiddleware(deps.AuthUC)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC, log)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", requireAuth, authHandler.Logout)
	authGroup.Get("/user", requireAuth, authHandler.Me)
	authGroup.Get("/status", requireAuth, authHandler.Status)
	authGroup.Post("/upgrade-test", requireAuth, authHandler.UpgradeTest)

	// Invoices (protegido)
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.ComposeUC, deps.ExportUC, log)
	invoices := api.Group("/invoices", requireAuth)
	invoices.Get("/", invoiceHandler.List)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/export", invoiceHandler.Export)
	invoices.Post("/pdf", invoiceHandler.PDF)

	// Messages (protegido)
	messageHandler := NewMessageHandler(deps.MessageUC, log)
	messages := api.Group("/messages", requireAuth)
	messages.Get("/", messageHandler.List)
	messages.Post("/", messageHandler.Create)

	// Contenido (público)
	contentHandler := NewContentHandler(log)
	api.Post("/content/messages", contentHandler.Message)
	api.Post("/content/captions", contentHandler.Caption)
	api.Get("/guide/registration", contentHandler.Guide)
	api.Get("/plans", contentHandler.Plans)
}
