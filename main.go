package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	analyticsmod "github.com/SahilGarg15/TaskFlow/modules/analytics"
	apimod "github.com/SahilGarg15/TaskFlow/modules/api"
	authmod "github.com/SahilGarg15/TaskFlow/modules/auth"
	cachemod "github.com/SahilGarg15/TaskFlow/modules/cache"
	commentmod "github.com/SahilGarg15/TaskFlow/modules/comment"
	exportmod "github.com/SahilGarg15/TaskFlow/modules/export"
	notificationmod "github.com/SahilGarg15/TaskFlow/modules/notification"
	taskmod "github.com/SahilGarg15/TaskFlow/modules/task"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Load configuration from environment
	redisAddr := getEnv("REDIS_ADDR", "localhost:6379")
	httpPort := getEnvInt("HTTP_PORT", 3000)
	cacheTTL := getEnvDuration("CACHE_TTL", 5*time.Minute)
	cachePrefix := getEnv("CACHE_PREFIX", "taskflow:")

	log.Println("=== TaskFlow ===")
	log.Printf("Redis: %s", redisAddr)
	log.Printf("HTTP Port: %d", httpPort)
	log.Printf("Cache TTL: %s", cacheTTL)

	// Create modules
	cacheModule := cachemod.NewModuleWithConfig(redisAddr, cachePrefix, cacheTTL)
	authModule := authmod.NewModule()
	taskModule := taskmod.NewModule()
	commentModule := commentmod.NewModule()
	analyticsModule := analyticsmod.NewModule()
	exportModule := exportmod.NewModule()
	notificationModule := notificationmod.NewModule()
	apiModule := apimod.NewModule(httpPort)

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
	)
	if err != nil {
		log.Fatalf("Failed to create mono application: %v", err)
	}

	// Register modules
	app.Register(cacheModule)
	app.Register(authModule)
	app.Register(taskModule)
	app.Register(commentModule)
	app.Register(analyticsModule)
	app.Register(exportModule)
	app.Register(notificationModule)
	app.Register(apiModule)

	// Start modules
	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		log.Fatalf("Failed to start app: %v", err)
	}

	// The cache is shared infrastructure, not a service container; wire it by
	// hand once the Redis connection exists.
	analyticsModule.SetCache(cacheModule.GetCache())
	apiModule.SetCache(cacheModule.GetCache())

	log.Println("=== Application Started ===")
	log.Printf("API available at http://localhost:%d", httpPort)

	// Setup graceful shutdown using gelmium/graceful-shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

// getEnv returns environment variable value or default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns environment variable as int or default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Warning: invalid int value for %s: %s, using default: %d", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvDuration returns environment variable as duration or default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		log.Printf("Warning: invalid duration value for %s: %s, using default: %s", key, value, defaultValue)
	}
	return defaultValue
}
