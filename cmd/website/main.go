// Package main runs the Screenify website: the landing page, its
// sign-in gate and the signed-in home.
package main

import (
	"log/slog"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/prajwalgurnule/Screenify/internal/config"
	"github.com/prajwalgurnule/Screenify/internal/content"
	"github.com/prajwalgurnule/Screenify/internal/handlers"
	"github.com/prajwalgurnule/Screenify/internal/metrics"
	"github.com/prajwalgurnule/Screenify/internal/server"
	"github.com/prajwalgurnule/Screenify/internal/session"
	"github.com/prajwalgurnule/Screenify/internal/signin"
	"github.com/prajwalgurnule/Screenify/internal/tracing"
	"github.com/prajwalgurnule/Screenify/pkg/logger"
)

func main() {
	// Load() won't overwrite existing vars, Overload() will
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")

	fx.New(
		fx.WithLogger(func(log *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: log}
		}),

		// Infrastructure modules
		logger.Module,
		config.Module,
		tracing.Module,
		metrics.Module,
		server.Module,

		// Site modules
		content.Module,
		session.Module,
		signin.Module,
		handlers.Module,
	).Run()
}
