package main

import (
	"log"

	"resume-agent/internal/bootstrap"
	"resume-agent/internal/shared/config"
	"resume-agent/internal/shared/server"
	"resume-agent/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()

	if err := telemetry.Init(cfg.Debug); err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer telemetry.Sync()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}

	addr := server.Addr(cfg.Port)
	telemetry.Info("server.start",
		"addr", addr,
		"model", cfg.OpenRouterModel,
		"llm_configured", cfg.OpenRouterAPIKey != "",
	)

	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
