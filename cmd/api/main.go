package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/propnest/realty/backend/internal/config"
	"github.com/propnest/realty/backend/internal/handler"
	"github.com/propnest/realty/backend/internal/model/property"
	"github.com/propnest/realty/backend/internal/model/report"
	"github.com/propnest/realty/backend/internal/service/auth"
	"github.com/propnest/realty/backend/internal/service/chat"
	"github.com/propnest/realty/backend/internal/service/contact"
	"github.com/propnest/realty/backend/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if err := os.MkdirAll(cfg.Storage.DataDir, 0o755); err != nil {
		log.Fatalf("failed to create data dir: %v", err)
	}
	db, err := store.NewBoltStore(cfg.Storage.DBPath())
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if n, err := db.SeedProperties(property.Seed()); err != nil {
		log.Fatalf("failed to seed properties: %v", err)
	} else if n > 0 {
		log.Printf("seeded %d properties", n)
	}

	chatService := chat.NewService(chat.Config{TypingDelay: cfg.Chat.TypingDelay})
	defer chatService.Close()
	go runCleanup(ctx, chatService, cfg.Chat)

	var authService *auth.Service
	if cfg.Admin.Enabled() {
		authService, err = auth.NewService(db, auth.Config{
			TokenSecret: cfg.Admin.TokenSecret,
			TokenTTL:    cfg.Admin.TokenTTL,
		})
		if err != nil {
			log.Fatalf("failed to initialize admin auth: %v", err)
		}
		if cfg.Admin.Username != "" {
			if err := authService.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
				log.Fatalf("failed to provision admin: %v", err)
			}
		}
		log.Println("admin panel enabled")
	} else {
		log.Println("ADMIN_TOKEN_SECRET not set, admin panel disabled")
	}

	var sender contact.Sender
	if cfg.Contact.Enabled() {
		sender = contact.NewEmailRelay(contact.RelayConfig{
			BaseURL:    cfg.Contact.RelayURL,
			ServiceID:  cfg.Contact.ServiceID,
			TemplateID: cfg.Contact.TemplateID,
			PublicKey:  cfg.Contact.PublicKey,
			PrivateKey: cfg.Contact.PrivateKey,
			Timeout:    cfg.Contact.Timeout,
		})
		log.Println("contact email relay configured")
	} else {
		log.Println("contact relay credentials missing, inquiries will only be stored")
	}
	contactService := contact.NewService(sender, db)

	router := handler.NewRouter(handler.Dependencies{
		Chat:           chatService,
		Contact:        contactService,
		Auth:           authService,
		Properties:     db,
		Leads:          db,
		Reports:        report.NewLibrary(report.Seed()),
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	startServer(ctx, cfg.Server, router)
}

// runCleanup periodically closes chat sessions nobody has touched for a while.
func runCleanup(ctx context.Context, svc *chat.Service, cfg config.ChatConfig) {
	if cfg.CleanupInterval <= 0 || cfg.SessionIdleTTL <= 0 {
		return
	}
	ticker := time.NewTicker(cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			svc.Cleanup(cfg.SessionIdleTTL)
		}
	}
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("PropNest backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Printf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
