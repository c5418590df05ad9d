package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/formbureau/formdesk/internal/artifact"
	"github.com/formbureau/formdesk/internal/audit"
	"github.com/formbureau/formdesk/internal/bureau"
	"github.com/formbureau/formdesk/internal/config"
	"github.com/formbureau/formdesk/internal/httpserver"
	"github.com/formbureau/formdesk/internal/service"
	"github.com/formbureau/formdesk/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	if err := db.Ping(); err != nil {
		log.Fatalf("db ping: %v", err)
	}

	st := store.NewPGStore(db)
	writer, err := newArtifactWriter(cfg)
	if err != nil {
		log.Fatalf("artifact writer init: %v", err)
	}
	emitter, err := newAuditEmitter(cfg)
	if err != nil {
		log.Fatalf("audit emitter init: %v", err)
	}
	defer emitter.Close()

	factory := bureau.NewFactory(writer, bureau.NewRandomSource(cfg.RandomSeed))
	svc := service.New(st, factory, emitter)
	server := httpserver.New(cfg, svc, st)

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: server.Router(),
	}

	go func() {
		log.Printf("formdesk service listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server error: %v", err)
		}
	}()

	waitForShutdown(httpServer)
}

func newArtifactWriter(cfg config.Config) (bureau.ArtifactWriter, error) {
	if cfg.ArtifactBucket != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Printf("artifacts to s3://%s/%s", cfg.ArtifactBucket, cfg.ArtifactPrefix)
		return artifact.NewS3Writer(ctx, cfg.ArtifactBucket, cfg.ArtifactPrefix)
	}
	log.Printf("artifacts to local dir %s", cfg.ArtifactDir)
	return artifact.NewFileWriter(cfg.ArtifactDir)
}

func newAuditEmitter(cfg config.Config) (audit.Emitter, error) {
	if len(cfg.KafkaBrokers) > 0 {
		log.Printf("audit events to kafka topic %s", cfg.KafkaTopic)
		return audit.NewKafkaEmitter(audit.KafkaEmitterConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
		})
	}
	return audit.NewLogEmitter(), nil
}

func waitForShutdown(srv *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
