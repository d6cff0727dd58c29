package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	limiter "github.com/ulule/limiter/v3"
	limiterhttp "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/billsplit/internal/auth"
	"github.com/mmynk/billsplit/internal/config"
	"github.com/mmynk/billsplit/internal/metrics"
	"github.com/mmynk/billsplit/internal/middleware"
	"github.com/mmynk/billsplit/internal/receipt"
	"github.com/mmynk/billsplit/internal/service"
	"github.com/mmynk/billsplit/internal/storage/sqlite"
	"github.com/mmynk/billsplit/pkg/api"
	"github.com/mmynk/billsplit/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New("billsplit", registry)

	// Interceptors for every Connect handler. Auth must wrap logging for the
	// subject to be logged.
	var interceptors []connect.Interceptor
	var jwtManager *auth.JWTManager
	if cfg.AuthEnabled() {
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
		interceptors = append(interceptors, middleware.RequireAuth(jwtManager, api.AuthServiceLoginProcedure))
	} else {
		slog.Warn("APP_PASSWORD not set, all endpoints are open")
	}
	interceptors = append(interceptors, middleware.LoggingInterceptor())
	handlerOpts := connect.WithInterceptors(interceptors...)

	billService := service.NewBillService(store, m)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(m.Middleware)
	r.Use(middleware.RequestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins(cfg),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "Connect-Protocol-Version", "Connect-Timeout-Ms"},
		ExposedHeaders: []string{"Connect-Protocol-Version", "Connect-Timeout-Ms"},
		MaxAge:         300,
	}))

	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))

	// Register Connect services
	billPath, billHandler := api.NewBillServiceHandler(billService, handlerOpts)
	r.Mount(billPath, billHandler)

	if cfg.AuthEnabled() {
		gate, err := auth.NewPasswordGate(cfg.AppPassword)
		if err != nil {
			slog.Error("Failed to initialize password gate", "error", err)
			os.Exit(1)
		}
		authPath, authHandler := api.NewAuthServiceHandler(service.NewAuthService(gate, jwtManager, slog.Default()), handlerOpts)
		r.Mount(authPath, authHandler)
	}

	// Receipt upload, rate limited per client IP
	var extractor receipt.Extractor
	if cfg.OCREnabled() {
		extractor = receipt.NewClient(cfg.VeryfiBaseURL, cfg.VeryfiClientID, cfg.VeryfiAPIKey, cfg.OCRTimeout)
	} else {
		slog.Warn("Veryfi credentials not set, receipt scanning disabled")
	}
	rate, err := limiter.NewRateFromFormatted(cfg.ReceiptRateLimit)
	if err != nil {
		slog.Error("Invalid RECEIPT_RATE_LIMIT", "value", cfg.ReceiptRateLimit, "error", err)
		os.Exit(1)
	}
	receiptLimiter := limiterhttp.NewMiddleware(limiter.New(memory.NewStore(), rate))
	r.Group(func(g chi.Router) {
		g.Use(receiptLimiter.Handler)
		if jwtManager != nil {
			g.Use(middleware.RequireAuthHTTP(jwtManager))
		}
		g.Method(http.MethodPost, "/api/receipt", service.NewReceiptHandler(extractor, billService, m))
	})

	// Serve static files from frontend/static
	staticDir, err := filepath.Abs(cfg.StaticPath)
	if err != nil {
		slog.Error("Failed to resolve static path", "error", err)
		os.Exit(1)
	}
	slog.Info("Serving static files", "path", staticDir)
	r.NotFound(staticHandler(staticDir))

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	h2cHandler := h2c.NewHandler(r, &http2.Server{})

	addr := cfg.HTTPAddr()
	slog.Info("Connect server starting", "address", addr, "url", "http://localhost"+addr)
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

// staticHandler serves files under dir, falling back to index.html for
// unknown paths.
func staticHandler(dir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Unknown Connect procedures should not get the SPA shell
		if strings.HasPrefix(r.URL.Path, "/billsplit.v1.") || strings.HasPrefix(r.URL.Path, "/api/") {
			http.NotFound(w, r)
			return
		}

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(dir, filepath.Clean("/"+urlPath))
		if info, err := os.Stat(filePath); err != nil || info.IsDir() {
			http.ServeFile(w, r, filepath.Join(dir, "index.html"))
			return
		}

		http.ServeFile(w, r, filePath)
	}
}

func allowedOrigins(cfg *config.Config) []string {
	if len(cfg.CORSAllowedOrigins) == 0 {
		return []string{"*"}
	}
	return cfg.CORSAllowedOrigins
}
