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

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/AnshRaj112/jurnal-backend/internal/app"
	"github.com/AnshRaj112/jurnal-backend/internal/config"
	"github.com/AnshRaj112/jurnal-backend/internal/middleware"
	"github.com/AnshRaj112/jurnal-backend/internal/observability"
	"github.com/AnshRaj112/jurnal-backend/internal/routes"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()
	observability.Configure(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.Open(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to start: ", err)
	}
	defer a.Close()

	if err := a.Migrate(ctx); err != nil {
		log.Fatal("Failed to prepare storage: ", err)
	}
	log.Printf("✅ Storage ready (%s), journal time zone %s", cfg.StorageBackend, cfg.Location())

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLogger(cfg.TrustProxy))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity(cfg.AllowedHost) {
			r.Use(mw)
		}
		log.Println("✅ Production security enabled (security headers, host check)")
	}
	r.Use(middleware.Locale)

	routes.SetupRoutes(r, a.Handler())

	log.Println("📋 Registered routes:")
	chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		log.Printf("  %-6s %s", method, route)
		return nil
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		// AI calls can take up to AI_TIMEOUT
		WriteTimeout: cfg.AITimeout + 15*time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}()

	log.Printf("🚀 Jurnal backend running on :%s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("Failed to start server:", err)
	}
	log.Println("👋 Server stopped")
}
