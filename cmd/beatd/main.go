package main

import (
	"context"
	"crypto/rand"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/ivlev/beat2scene/internal/api"
	"github.com/ivlev/beat2scene/internal/catalog"
	"github.com/ivlev/beat2scene/internal/config"
	"github.com/ivlev/beat2scene/internal/engine"
	"github.com/ivlev/beat2scene/internal/templates"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetLevel(logrus.InfoLevel)

	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		logrus.Info("no .env file found, using system environment variables")
	}

	addr := getenv("BEATD_ADDR", ":8080")
	cfg := config.Default()
	cfg.CatalogPath = getenv("BEATD_CATALOG", cfg.CatalogPath)
	log := logrus.WithField("service", "beatd")

	var dir catalog.Directory
	var res catalog.Resolver
	cat, err := catalog.ReadCatalog(cfg.CatalogPath)
	switch {
	case err == nil:
		dir, res = cat.Directory(), cat.Resolver()
		log.WithFields(logrus.Fields{"catalog": cfg.CatalogPath, "characters": len(cat.Characters)}).Info("catalog loaded")
	case errors.Is(err, os.ErrNotExist):
		log.WithField("catalog", cfg.CatalogPath).Warn("catalog not found, layered characters will not resolve")
	default:
		log.Fatalf("catalog: %v", err)
	}

	project := engine.NewProject(&cfg, dir, res, log)
	server := api.NewServer(project, templates.NewULIDSource(time.Now, rand.Reader))

	srv := &http.Server{
		Addr:    addr,
		Handler: server.Router(),
	}

	go func() {
		log.Infof("listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown: %v", err)
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
