package main

import (
	"context"
	"database/sql"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"google.golang.org/grpc"

	"github.com/rl1809/stock-gen/internal/adapter/handler"
	"github.com/rl1809/stock-gen/internal/adapter/storage"
	"github.com/rl1809/stock-gen/internal/config"
	"github.com/rl1809/stock-gen/internal/core/domain"
	"github.com/rl1809/stock-gen/internal/core/service"
	"github.com/rl1809/stock-gen/internal/port"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	roles, err := config.LoadRoles(cfg.RolesFile)
	if err != nil {
		log.Fatalf("failed to load roles: %v", err)
	}

	// Initialize stock store
	var stockRepo port.StockRepository
	switch cfg.StorageBackend {
	case "mysql":
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatalf("failed to connect mysql: %v", err)
		}
		defer db.Close()
		db.SetMaxOpenConns(50)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)

		if err := db.PingContext(ctx); err != nil {
			log.Fatalf("failed to ping mysql: %v", err)
		}
		adapter := storage.NewMySQLAdapter(db)
		if err := adapter.InitSchema(ctx); err != nil {
			log.Fatalf("failed to init mysql schema: %v", err)
		}
		stockRepo = adapter
		log.Println("using mysql stock store")
	default:
		stockRepo = storage.NewFileAdapter(cfg.StockFile)
		log.Printf("using file stock store: %s", cfg.StockFile)
	}

	// Bootstrap an empty document on first run
	if _, err := stockRepo.Load(ctx); err != nil {
		log.Fatalf("failed to load stock store: %v", err)
	}

	// Initialize cooldown store
	var cooldownRepo port.CooldownRepository
	switch cfg.CooldownBackend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			PoolSize: 100,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("failed to connect redis: %v", err)
		}
		defer rdb.Close()
		cooldownRepo = storage.NewRedisAdapter(rdb, cfg.FreeCooldown)
		log.Println("using redis cooldown store")
	default:
		cooldownRepo = storage.NewMemoryAdapter()
		log.Println("using in-memory cooldown store (cooldowns reset on restart)")
	}

	// Initialize service
	premiumRoles := domain.NewRoleSet(roles.PremiumRoles...)
	policy := service.AccessPolicy{
		FreeGenRole:  roles.FreeGenRole,
		PremiumRoles: premiumRoles,
	}
	cooldowns := service.NewCooldownTracker(cooldownRepo, premiumRoles, cfg.FreeCooldown, cfg.PremiumCooldown)
	stockService := service.NewStockService(stockRepo, policy, cooldowns)

	// Initialize gRPC server
	grpcServer := grpc.NewServer()
	handler.NewGRPCHandler(stockService).Register(grpcServer)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	go func() {
		log.Printf("gRPC server listening on %s", cfg.GRPCAddr)
		if err := grpcServer.Serve(lis); err != nil {
			log.Printf("gRPC server error: %v", err)
		}
	}()

	// Initialize HTTP server
	mux := http.NewServeMux()
	handler.NewHTTPHandler(stockService).Routes(mux)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mux,
	}

	go func() {
		log.Printf("HTTP server listening on %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	log.Println("HTTP server stopped")

	grpcServer.GracefulStop()
	log.Println("gRPC server stopped")
}
