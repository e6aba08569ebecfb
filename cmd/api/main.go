package main

import (
	"flag"
	"net/http"
	"os"
	"time"

	"procurement-timeline/internal/adapters/auth/portal"
	pg "procurement-timeline/internal/adapters/storage/postgres"
	"procurement-timeline/internal/config"
	"procurement-timeline/internal/platform/logger"
	"procurement-timeline/internal/ports/auth"
	"procurement-timeline/internal/router"
)

func main() {
	configPath := flag.String("config", "", "path al archivo de configuración YAML (opcional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		// todavía no hay logger configurado: salida directa
		os.Stderr.WriteString("config error: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    "procurement-timeline",
	})

	var verifier auth.AuthVerifier
	if cfg.Portal.BaseURL != "" && cfg.Portal.APIKey != "" {
		client, err := portal.NewClient(portal.Config{
			BaseURL: cfg.Portal.BaseURL,
			APIKey:  cfg.Portal.APIKey,
		})
		if err != nil {
			log.Error("portal client init failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		verifier = portal.NewVerifier(client)
	} else {
		log.Warn("portal auth not configured, running in dev mode", nil)
	}

	opts := router.Options{
		AuthVerifier: verifier,
		Logger:       log,
		DemoData:     cfg.DemoData,
	}

	if cfg.DBDSN != "" {
		db, err := pg.Open(cfg.DBDSN)
		if err != nil {
			log.Error("postgres open failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		defer db.Close()
		opts.DB = db
	}

	srv := &http.Server{
		Addr:         cfg.Listen,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": cfg.Listen})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
