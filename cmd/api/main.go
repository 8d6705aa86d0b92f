package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"chickpick/internal/cache"
	"chickpick/internal/cart"
	"chickpick/internal/config"
	"chickpick/internal/db"
	"chickpick/internal/httpserver"
	categoryrepo "chickpick/internal/repository/category"
	orderrepo "chickpick/internal/repository/order"
	productrepo "chickpick/internal/repository/product"
	profilerepo "chickpick/internal/repository/profile"
	reviewrepo "chickpick/internal/repository/review"
	tokenrepo "chickpick/internal/repository/token"
	catalogsvc "chickpick/internal/service/catalog"
	checkoutsvc "chickpick/internal/service/checkout"
	identitysvc "chickpick/internal/service/identity"
	ordersvc "chickpick/internal/service/order"
	reviewsvc "chickpick/internal/service/review"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()

	var stash cache.Stash
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Printf("redis unreachable at %s, carts held in memory only: %v", cfg.RedisAddr, err)
		stash = cache.NewMemoryStash()
	} else {
		stash = cache.NewRedisStash(redisClient, 0)
	}

	productRepo := productrepo.NewPostgres(dbpool, logger)
	categoryRepo := categoryrepo.NewPostgres(dbpool)
	profileRepo := profilerepo.NewPostgres(dbpool, logger)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	reviewRepo := reviewrepo.NewPostgres(dbpool)
	tokenRepo := tokenrepo.NewPostgres(dbpool)

	identityService := identitysvc.New(profileRepo, tokenRepo)
	catalogService := catalogsvc.New(productRepo, categoryRepo)
	reviewService := reviewsvc.New(reviewRepo)
	orderService := ordersvc.New(orderRepo)
	checkoutService := checkoutsvc.New(identityService, orderRepo, logger)
	cartManager := cart.NewManager(stash, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		IdentitySvc:    identityService,
		CatalogSvc:     catalogService,
		ReviewSvc:      reviewService,
		OrderSvc:       orderService,
		CheckoutSvc:    checkoutService,
		Carts:          cartManager,
		ProfileRepo:    profileRepo,
		ProductRepo:    productRepo,
		AllowedOrigins: cfg.AllowedOrigins,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
