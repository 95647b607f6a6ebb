package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"

	"github.com/rl1809/minimart/internal/adapter/handler"
	"github.com/rl1809/minimart/internal/adapter/storage"
	"github.com/rl1809/minimart/internal/core/service"
	"github.com/rl1809/minimart/internal/port"
)

const (
	defaultHTTPAddr  = ":8080"
	defaultBackend   = "csv"
	defaultCSVPath   = "products.csv"
	defaultMySQLDSN  = "root:root@tcp(localhost:3306)/minimart?parseTime=true"
	defaultRedisAddr = "localhost:6379"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := newStore(ctx)
	if err != nil {
		log.Fatalf("failed to init store: %v", err)
	}
	defer closeStore()

	// Load catalog; malformed rows are logged and skipped.
	catalog := service.NewCatalog()
	rows, err := store.Load(ctx)
	if err != nil {
		log.Fatalf("failed to load catalog: %v", err)
	}
	for _, perr := range catalog.Load(rows) {
		log.Printf("skipping catalog row: %v", perr)
	}
	log.Printf("loaded %d products", catalog.Len())

	ledger := service.NewLedger()
	cart := service.NewCart(catalog)
	checkout := service.NewCheckout(catalog, ledger)

	h := handler.NewHTTPHandler(catalog, cart, checkout, ledger, store)
	srv := &http.Server{
		Addr:    getEnv("HTTP_ADDR", defaultHTTPAddr),
		Handler: h.Router(),
	}

	go func() {
		log.Printf("HTTP server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
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
	srv.Shutdown(shutdownCtx)
	log.Println("HTTP server stopped")

	// Persist the catalog before terminating.
	if err := store.Save(shutdownCtx, catalog.Export()); err != nil {
		log.Printf("persist catalog: %v", err)
	} else {
		log.Println("catalog persisted")
	}
}

func newStore(ctx context.Context) (port.CatalogStore, func(), error) {
	backend := getEnv("STORE_BACKEND", defaultBackend)
	switch backend {
	case "csv":
		return storage.NewCSVStore(getEnv("CSV_PATH", defaultCSVPath)), func() {}, nil

	case "mysql":
		db, err := sql.Open("mysql", getEnv("MYSQL_DSN", defaultMySQLDSN))
		if err != nil {
			return nil, nil, fmt.Errorf("connect mysql: %w", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("ping mysql: %w", err)
		}
		st := storage.NewMySQLStore(db)
		if err := st.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		log.Println("connected to mysql")
		return st, func() { db.Close() }, nil

	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: getEnv("REDIS_ADDR", defaultRedisAddr)})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		log.Println("connected to redis")
		return storage.NewRedisStore(rdb), func() { rdb.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", backend)
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
