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

	_ "github.com/jackc/pgx/v5/stdlib"

	"cardvault.org/internal/auth"
	"cardvault.org/internal/card"
	"cardvault.org/internal/httpapi"
	"cardvault.org/internal/obs"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

func main() {
	obs.Init()
	obs.InitBuildInfo(version, commit)

	secret := os.Getenv("CARDVAULT_AUTH_SECRET")
	if secret == "" {
		log.Fatal("missing CARDVAULT_AUTH_SECRET")
	}

	tokenOpts := []auth.TokenOption{}
	if raw := os.Getenv("CARDVAULT_TOKEN_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			log.Fatalf("parse CARDVAULT_TOKEN_TTL: %v", err)
		}
		tokenOpts = append(tokenOpts, auth.WithTTL(ttl))
	}
	if issuer := os.Getenv("CARDVAULT_TOKEN_ISSUER"); issuer != "" {
		tokenOpts = append(tokenOpts, auth.WithIssuer(issuer))
	}
	tokens, err := auth.NewTokens(secret, tokenOpts...)
	if err != nil {
		log.Fatalf("token service: %v", err)
	}

	// Подключение к БД (если задан DSN), чтобы /readyz мог пинговать БД.
	// Без DSN сервис работает на in-memory хранилищах.
	var (
		db            *sql.DB
		identityStore auth.IdentityStore
		cardStore     card.Store
	)
	if dsn := os.Getenv("CARDVAULT_PG_DSN"); dsn != "" {
		db, err = sql.Open("pgx", dsn)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)
		identityStore = auth.NewPGStore(db)
		cardStore = card.NewPGStore(db)
	} else {
		log.Println("CARDVAULT_PG_DSN not set, using in-memory stores")
		identityStore = auth.NewMemoryStore()
		cardStore = card.NewMemoryStore()
	}

	authSvc, err := auth.NewService(identityStore, tokens)
	if err != nil {
		log.Fatalf("auth service: %v", err)
	}
	cardSvc, err := card.NewService(cardStore)
	if err != nil {
		log.Fatalf("card service: %v", err)
	}

	api := httpapi.New(httpapi.ReadyProbe{DB: db}, version, authSvc, cardSvc)

	addr := os.Getenv("CARDVAULT_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting cardvault-api %s on %s", version, srv.Addr)

	// graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	if db != nil {
		_ = db.Close()
	}
	log.Println("Stopped")
}
