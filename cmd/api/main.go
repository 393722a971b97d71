package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	cachedartifact "flowscope/internal/cache/artifact"
	"flowscope/internal/gateway/config"
	"flowscope/internal/gateway/handler"
	"flowscope/internal/gateway/server"
	"flowscope/internal/progress"
	artifactrepo "flowscope/internal/repository/artifact"
	"flowscope/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	origin, err := newArtifactStore(cfg.Artifact)
	if err != nil {
		log.Fatalf("init artifact store: %v", err)
	}
	store := cachedartifact.NewCachedStore(origin, cachedartifact.DefaultCacheConfig())

	sessions, err := session.NewService(store)
	if err != nil {
		log.Fatalf("init session service: %v", err)
	}
	broker := progress.NewBroker()

	mux := server.NewMux(
		handler.NewNavigationHandler(sessions),
		handler.NewArtifactHandler(sessions, broker),
		handler.NewProgressHandler(broker),
	)
	srv := server.New(cfg.Port, mux)

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("artifact backend: %s", cfg.Artifact.Backend)
	if err := srv.Start(); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func newArtifactStore(cfg config.ArtifactConfig) (artifactrepo.Store, error) {
	switch cfg.Backend {
	case "disk":
		return artifactrepo.NewDiskStore(cfg.DiskRoot), nil
	case "postgres":
		return artifactrepo.OpenPostgresStore(cfg.PostgresDSN)
	case "s3":
		return artifactrepo.NewS3Store(artifactrepo.S3Config{
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Bucket:    cfg.S3.Bucket,
			UseSSL:    cfg.S3.UseSSL,
		})
	default:
		return artifactrepo.NewMemoryStore(), nil
	}
}
