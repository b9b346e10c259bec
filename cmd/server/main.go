package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saqify/backend/internal/config"
	"github.com/saqify/backend/internal/forwarder"
	"github.com/saqify/backend/internal/handler"
	"github.com/saqify/backend/internal/logging"
	"github.com/saqify/backend/internal/notify"
	"github.com/saqify/backend/internal/repository"
	"github.com/saqify/backend/internal/service"
	"github.com/saqify/backend/internal/storage"
	"github.com/saqify/backend/pkg/auth"
	"github.com/saqify/backend/pkg/formrelay"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// logging is not configured yet
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	ctx := context.Background()

	// Postgres は任意（DATABASE_URL 未設定なら使わない）
	var pool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		pool, err = repository.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			logging.Fatal("failed to connect to database", "error", err)
		}
		defer pool.Close()
	}

	// 注文ストア
	var orderRepo repository.OrderRepository
	switch cfg.OrderStore {
	case config.OrderStoreFile:
		dir, name := filepath.Split(cfg.OrderFile)
		orderRepo = repository.NewFileOrderRepository(storage.NewLocalStorage(dir), name)
	case config.OrderStorePostgres:
		orderRepo = repository.NewPgOrderRepository(pool)
	}

	var userRepo repository.UserRepository = repository.NewMemoryUserRepository()
	var contactRepo repository.ContactRepository
	if pool != nil {
		userRepo = repository.NewPgUserRepository(pool)
		contactRepo = repository.NewPgContactRepository(pool)
	}

	var wishlistRepo repository.WishlistRepository = repository.NewMemoryWishlistRepository()
	if cfg.RedisURL != "" {
		rdb, err := repository.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logging.Fatal("failed to connect to redis", "error", err)
		}
		defer rdb.Close()
		wishlistRepo = repository.NewRedisWishlistRepository(rdb)
	}

	// 転送先（設定されたものだけ）
	var sinks []forwarder.Sink
	if cfg.FormRelayURL != "" {
		sinks = append(sinks, forwarder.NewRelaySink(formrelay.NewClient(cfg.FormRelayURL, cfg.FormRelayTimeout)))
	} else {
		slog.Warn("FORM_RELAY_URL not set; submissions will not be relayed")
	}
	if orderRepo != nil {
		sinks = append(sinks, forwarder.NewOrderStoreSink(orderRepo))
	}
	if contactRepo != nil {
		sinks = append(sinks, forwarder.NewContactStoreSink(contactRepo))
	}
	if cfg.TelegramEnabled() {
		tg, err := notify.NewTelegramSink(cfg.TelegramBotToken, cfg.TelegramChatID, cfg.FormRelayTimeout)
		if err != nil {
			// 通知は任意なので起動は続ける
			slog.Error("telegram disabled", "error", err)
		} else {
			sinks = append(sinks, tg)
		}
	}
	fwd := forwarder.New(sinks...)
	slog.Info("submission sinks configured", "sinks", fwd.Sinks())

	// 全転送先をまとめた上限。リクエストは最長でもこの時間で返る
	forwardTimeout := cfg.FormRelayTimeout + 5*time.Second
	contactService := service.NewContactService(fwd, forwardTimeout)
	orderService := service.NewOrderService(fwd, orderRepo, service.NewOrderIDGenerator(), forwardTimeout)
	authService := service.NewAuthService(userRepo)
	wishlistService := service.NewWishlistService(wishlistRepo)

	var db repository.DB
	if pool != nil {
		db = pool
	}
	h := handler.New(db, cfg.FrontendURL)
	contactHandler := handler.NewContactHandler(contactService)
	orderHandler := handler.NewOrderHandler(orderService)
	authHandler := handler.NewAuthHandler(authService, handler.AuthConfig{
		GoogleClientID:     cfg.GoogleClientID,
		GoogleClientSecret: cfg.GoogleClientSecret,
		GoogleRedirectPath: "/api/auth/google/callback",
		BackendURL:         cfg.BackendURL,
		SessionSecret:      cfg.SessionSecret,
		FrontendURL:        cfg.FrontendURL,
		SecureCookies:      cfg.IsProduction(),
	})
	meHandler := handler.NewMeHandler()
	wishlistHandler := handler.NewWishlistHandler(wishlistService)

	requireAuth := auth.RequireAuth(auth.SessionSecretBytes(cfg.SessionSecret))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)

	// フォーム受付
	mux.HandleFunc("POST /api/contact", contactHandler.Submit)
	mux.HandleFunc("POST /api/submit-order", orderHandler.Submit)
	mux.HandleFunc("GET /api/orders", orderHandler.List)

	// 認証
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/auth/google/login", authHandler.GoogleLoginURL)
	mux.HandleFunc("GET /api/auth/google/callback", authHandler.GoogleCallback)

	// 認証必要エンドポイント
	mux.Handle("GET /api/me", requireAuth(http.HandlerFunc(meHandler.Me)))
	mux.Handle("GET /api/me/wishlist", requireAuth(http.HandlerFunc(wishlistHandler.List)))
	mux.Handle("POST /api/me/wishlist/toggle", requireAuth(http.HandlerFunc(wishlistHandler.Toggle)))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.RequestLogger(handler.Recoverer(handler.SecurityHeaders(h.CORS(mux)))),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: forwardTimeout + 5*time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr, "order_store", string(cfg.OrderStore))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
