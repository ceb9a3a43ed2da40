package main

import (
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/NoobYoup/amis-nextjs-sub001/internal/admintoken"
	"github.com/NoobYoup/amis-nextjs-sub001/internal/app"
	"github.com/NoobYoup/amis-nextjs-sub001/internal/config"
	"github.com/NoobYoup/amis-nextjs-sub001/internal/ratelimit"
	"github.com/NoobYoup/amis-nextjs-sub001/internal/server"
	"github.com/NoobYoup/amis-nextjs-sub001/internal/util"
	"github.com/NoobYoup/amis-nextjs-sub001/pkg/media"
	"github.com/NoobYoup/amis-nextjs-sub001/pkg/store"
)

func main() {
	cfg, err := config.Load(config.ConfigPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	leeway, err := config.ParseJWTLeeway(cfg.JWTLeeway)
	if err != nil {
		log.Fatalf("failed to parse jwt leeway: %v", err)
	}

	logger := util.InitLogger(cfg.LogLevel)

	st, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Error("store close failed", "err", err)
		}
	}()

	host, err := media.NewMinioHost(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MediaBaseURL, cfg.MinioUseSSL)
	if err != nil {
		log.Fatalf("failed to init media host: %v", err)
	}

	appCore, err := app.New(app.Config{
		Store: st,
		Media: host,
	})
	if err != nil {
		log.Fatalf("failed to init app: %v", err)
	}

	verifier, err := admintoken.NewVerifier(admintoken.Config{
		JWKSURL:  cfg.AuthJWKSURL,
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
		Leeway:   leeway,
	})
	if err != nil {
		log.Fatalf("failed to init token verifier: %v", err)
	}

	adminLimit := cfg.AdminRateLimit
	if adminLimit <= 0 {
		adminLimit = 30
	}
	limiter, err := ratelimit.NewRedisFixedWindowLimiter(cfg.RedisAddr, cfg.RedisPassword, "school:ratelimit:admin", adminLimit, cfg.AdminRateWindow())
	if err != nil {
		log.Fatalf("failed to init rate limiter: %v", err)
	}

	trustedProxies, err := util.NewTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		log.Fatalf("failed to parse trusted proxies: %v", err)
	}

	httpServer := server.New(server.Config{
		App:            appCore,
		TokenVerifier:  verifier,
		AdminLimiter:   limiter,
		TrustedProxies: trustedProxies,
		MaxUploadBytes: cfg.MaxUploadBytes,
		RequestTimeout: cfg.RequestTimeout(),
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      httpServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "err", err)
	}
}
