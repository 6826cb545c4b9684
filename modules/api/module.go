package api

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	domain "github.com/MilorES/ComandesJSDR-Back/domain/user"
	"github.com/MilorES/ComandesJSDR-Back/modules/auth"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// APIModule is the HTTP API module. It depends on the auth and article
// modules and exposes their services over REST.
type APIModule struct {
	app              *fiber.App
	authContainer    mono.ServiceContainer
	articleContainer mono.ServiceContainer
	authPort         auth.AuthPort
	port             string
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule.
func NewModule() *APIModule {
	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "3000"
	}
	return &APIModule{
		port: port,
	}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"auth", "article"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "auth":
		m.authContainer = container
		m.authPort = auth.NewAuthAdapter(container)
	case "article":
		m.articleContainer = container
	}
}

// Start initializes the Fiber HTTP server.
func (m *APIModule) Start(_ context.Context) error {
	if m.authContainer == nil {
		return fmt.Errorf("auth dependency not set")
	}
	if m.articleContainer == nil {
		return fmt.Errorf("article dependency not set")
	}

	m.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
	})

	m.app.Use(recover.New())
	m.app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	m.app.Use(cors.New())

	m.setupRoutes()

	go func() {
		if err := m.app.Listen(":" + m.port); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	log.Printf("[api] HTTP server started on :%s", m.port)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.Shutdown()
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"port": m.port,
		},
	}
}

// setupRoutes configures all API routes.
func (m *APIModule) setupRoutes() {
	handlers := NewHandlers(m.authContainer, m.articleContainer, m.authPort)

	api := m.app.Group("/api")

	// Public liveness endpoint
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"service":   "comandes-api",
			"timestamp": time.Now().UTC(),
		})
	})

	// Authentication routes; login is the only public one
	authRoutes := api.Group("/auth")
	authRoutes.Post("/login", handlers.Login)

	authProtected := authRoutes.Group("", AuthMiddleware(m.authPort))
	authProtected.Get("/me", handlers.Me)
	authProtected.Post("/refresh", handlers.Refresh)
	authProtected.Post("/change-password", handlers.ChangePassword)

	// Article catalog; public, matching the original API surface
	articles := api.Group("/articles")
	articles.Get("/categories", handlers.ListCategories)
	articles.Get("/", handlers.ListArticles)
	articles.Post("/", handlers.CreateArticle)
	articles.Get("/:id", handlers.GetArticle)
	articles.Put("/:id", handlers.UpdateArticle)
	articles.Delete("/:id", handlers.DeleteArticle)

	// User management; administrators only
	users := api.Group("/users", AuthMiddleware(m.authPort), RequireRole(domain.RoleAdministrator))
	users.Get("/", handlers.ListUsers)
	users.Post("/", handlers.CreateUser)
	users.Get("/:id", handlers.GetUser)
	users.Put("/:id", handlers.UpdateUser)
	users.Delete("/:id", handlers.DeleteUser)
}

// customErrorHandler handles Fiber errors.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   "server_error",
		Message: message,
	})
}
