package api

import (
	"context"
	"fmt"
	"log"

	"github.com/SahilGarg15/TaskFlow/modules/analytics"
	"github.com/SahilGarg15/TaskFlow/modules/auth"
	"github.com/SahilGarg15/TaskFlow/modules/cache"
	"github.com/SahilGarg15/TaskFlow/modules/comment"
	"github.com/SahilGarg15/TaskFlow/modules/export"
	"github.com/SahilGarg15/TaskFlow/modules/task"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// APIModule is the HTTP API module.
type APIModule struct {
	app           *fiber.App
	port          int
	authContainer mono.ServiceContainer
	authAdapter   auth.AuthPort
	taskPort      task.Port
	commentPort   comment.Port
	analyticsPort analytics.Port
	exportPort    export.Port
	cache         *cache.Cache
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule listening on the given port.
func NewModule(port int) *APIModule {
	return &APIModule{port: port}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"auth", "task", "comment", "analytics", "export"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "auth":
		m.authContainer = container
		m.authAdapter = auth.NewAuthAdapter(container)
	case "task":
		m.taskPort = task.NewAdapter(container)
	case "comment":
		m.commentPort = comment.NewAdapter(container)
	case "analytics":
		m.analyticsPort = analytics.NewAdapter(container)
	case "export":
		m.exportPort = export.NewAdapter(container)
	}
}

// SetCache wires the shared Redis cache for the stats endpoint. Optional.
func (m *APIModule) SetCache(c *cache.Cache) {
	m.cache = c
}

// Start initializes the Fiber HTTP server.
func (m *APIModule) Start(_ context.Context) error {
	if m.authContainer == nil {
		return fmt.Errorf("auth dependency not set")
	}
	if m.taskPort == nil {
		return fmt.Errorf("task dependency not set")
	}
	if m.commentPort == nil {
		return fmt.Errorf("comment dependency not set")
	}
	if m.analyticsPort == nil {
		return fmt.Errorf("analytics dependency not set")
	}
	if m.exportPort == nil {
		return fmt.Errorf("export dependency not set")
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
		if err := m.app.Listen(fmt.Sprintf(":%d", m.port)); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	log.Printf("[api] HTTP server started on :%d", m.port)
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
	handlers := NewHandlers(
		m.authContainer, m.authAdapter,
		m.taskPort, m.commentPort, m.analyticsPort, m.exportPort,
		m.cache,
	)

	m.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"module": "api",
		})
	})

	v1 := m.app.Group("/api/v1")

	// Public auth routes
	authRoutes := v1.Group("/auth")
	authRoutes.Post("/register", handlers.Register)
	authRoutes.Post("/login", handlers.Login)
	authRoutes.Post("/refresh", handlers.Refresh)

	// Protected routes (require authentication)
	protected := v1.Group("")
	protected.Use(AuthMiddleware(m.authAdapter))

	protected.Get("/profile", handlers.Profile)
	protected.Get("/cache/stats", handlers.CacheStats)

	// Fixed paths must be registered before /tasks/:id.
	tasks := protected.Group("/tasks")
	tasks.Get("/stats", handlers.TaskStats)
	tasks.Get("/analytics", handlers.TaskAnalytics)
	tasks.Put("/bulk", handlers.BulkUpdateTasks)
	tasks.Get("/", handlers.ListTasks)
	tasks.Post("/", handlers.CreateTask)
	tasks.Get("/:id", handlers.GetTask)
	tasks.Put("/:id", handlers.UpdateTask)
	tasks.Delete("/:id", handlers.DeleteTask)
	tasks.Put("/:id/archive", handlers.ArchiveTask)
	tasks.Post("/:id/duplicate", handlers.DuplicateTask)

	comments := protected.Group("/comments")
	comments.Get("/task/:taskId", handlers.ListComments)
	comments.Post("/task/:taskId", handlers.AddComment)
	comments.Put("/:commentId", handlers.UpdateComment)
	comments.Delete("/:commentId", handlers.DeleteComment)

	exports := protected.Group("/export")
	exports.Get("/csv", handlers.ExportCSV)
	exports.Get("/json", handlers.ExportJSON)
	exports.Post("/import", handlers.ImportTasks)
}

// customErrorHandler handles Fiber errors.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(Response{
		Success: false,
		Message: message,
	})
}
