package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/MilorES/ComandesJSDR-Back/modules/api"
	"github.com/MilorES/ComandesJSDR-Back/modules/article"
	"github.com/MilorES/ComandesJSDR-Back/modules/auth"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// The signing secret is mandatory; refuse to start without it.
	jwtConfig, err := auth.LoadJWTConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Register modules: service providers first, then the HTTP module
	// that depends on them.
	app.Register(auth.NewModule(jwtConfig))
	app.Register(article.NewModule())
	app.Register(api.NewModule())

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	log.Println("Comandes API started")

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
