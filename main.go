package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"studio-admin/internal/auth"
	"studio-admin/internal/category"
	"studio-admin/internal/category/category_api"
	category_db "studio-admin/internal/category/db"
	"studio-admin/internal/config"
	"studio-admin/internal/database/migrations"
	"studio-admin/internal/kafka"
	"studio-admin/internal/logger"
	"studio-admin/internal/orders"
	orders_db "studio-admin/internal/orders/db"
	"studio-admin/internal/orders/order_api"
	"studio-admin/internal/orders/qr"
	orders_redis "studio-admin/internal/orders/redis"
	"studio-admin/internal/plans"
	plans_db "studio-admin/internal/plans/db"
	"studio-admin/internal/plans/plan_api"
	"studio-admin/internal/products"
	products_db "studio-admin/internal/products/db"
	"studio-admin/internal/products/product_api"
	"studio-admin/internal/timeslots"
	timeslots_db "studio-admin/internal/timeslots/db"
	"studio-admin/internal/timeslots/timeslot_api"
	"studio-admin/internal/upload"
	"studio-admin/internal/upload/upload_api"
)

func verifyConnections(ctx context.Context, cfg *config.Config, log *logger.Logger) (*bun.DB, *redis.Client) {
	var sqldb *sql.DB
	var err error
	maxRetries := 5

	for i := 0; i < maxRetries; i++ {
		log.Info("DATABASE", fmt.Sprintf("Attempting to connect to PostgreSQL (attempt %d/%d)", i+1, maxRetries))
		sqldb, err = sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			log.Error("DATABASE", fmt.Sprintf("Failed to open PostgreSQL: %v", err))
			time.Sleep(2 * time.Second)
			continue
		}

		err = sqldb.Ping()
		if err == nil {
			break
		}

		log.Error("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL: %v", err))
		if i < maxRetries-1 {
			time.Sleep(2 * time.Second)
		}
	}

	if err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL after %d attempts: %v", maxRetries, err))
	}

	sqldb.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	log.Info("DATABASE", "✅ PostgreSQL connection successful")

	bunDB := bun.NewDB(sqldb, pgdialect.New())

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Redis connection error: %v", err))
	}
	log.Info("DATABASE", fmt.Sprintf("✅ Redis connection successful to %s", cfg.Redis.Addr))

	return bunDB, redisClient
}

func main() {
	log := logger.NewLogger()
	defer log.Close()

	log.Info("APP", "Starting Studio Admin service initialization")

	if err := godotenv.Load(); err != nil {
		log.Warn("CONFIG", ".env file not found, using environment variables")
	} else {
		log.Info("CONFIG", "Loaded environment variables from .env file")
	}
	cfg := config.Load()

	ctx := context.Background()

	log.Info("APP", "Verifying database connections")
	bunDB, redisClient := verifyConnections(ctx, cfg, log)
	defer bunDB.Close()
	defer redisClient.Close()

	if cfg.Database.AutoMigrate {
		runner := migrations.NewRunner(bunDB, "./migrations")
		if err := runner.MigrateUp(); err != nil {
			log.Fatal("DATABASE", fmt.Sprintf("Migrations failed: %v", err))
		}
		_ = runner.Close()
		log.Info("DATABASE", "Migrations applied")
	}

	var publisher orders.EventPublisher = kafka.NoopPublisher{}
	if cfg.Kafka.Enabled {
		topics := kafka.Topics{
			OrderCompleted: cfg.Kafka.Topics.OrderCompleted,
			OrderCanceled:  cfg.Kafka.Topics.OrderCanceled,
		}
		producer := kafka.NewProducer(cfg.Kafka.Brokers, topics, log)
		defer producer.Close()

		if err := kafka.EnsureTopicsExist(cfg.Kafka.Brokers, []string{topics.OrderCompleted, topics.OrderCanceled}); err != nil {
			log.Warn("KAFKA", fmt.Sprintf("Topic creation might have failed: %v", err))
		} else {
			log.Info("KAFKA", "Required topics ensured successfully")
		}
		publisher = producer
	} else {
		log.Warn("KAFKA", "Kafka disabled, order events will not be streamed")
	}

	var refunder orders.Refunder = &orders.NoopRefunder{Log: log}
	if cfg.Stripe.Enabled {
		stripeRefunder, err := orders.NewStripeRefunder(cfg.Stripe.SecretKey, log)
		if err != nil {
			log.Fatal("STRIPE", fmt.Sprintf("Stripe initialization failed: %v", err))
		}
		refunder = stripeRefunder
	}

	categoryService := category.NewService(
		&category_db.DB{Bun: bunDB},
		&category.RedisTreeCache{Client: redisClient},
	)
	planService := plans.NewService(&plans_db.DB{Bun: bunDB}, categoryService)
	productService := products.NewService(&products_db.DB{Bun: bunDB}, categoryService)
	timeSlotService := timeslots.NewService(&timeslots_db.DB{Bun: bunDB})
	orderService := orders.NewService(
		&orders_db.DB{Bun: bunDB},
		orders_redis.NewLock(redisClient),
		publisher,
		refunder,
	)

	uploadStore := upload.NewStore(cfg.Upload.Dir, cfg.Upload.BaseURL)

	categoryHandler := category_api.NewHandler(categoryService, log)
	planHandler := plan_api.NewHandler(planService, log)
	productHandler := product_api.NewHandler(productService, log)
	timeSlotHandler := timeslot_api.NewHandler(timeSlotService, log)
	orderHandler := order_api.NewHandler(orderService, qr.NewQRGenerator(cfg.Auth.QRSecret), log)
	uploadHandler := upload_api.NewHandler(uploadStore, log)

	log.Info("HTTP", "Setting up router and middleware")
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Language", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Uploaded assets are public, the dashboard and the storefront both
	// render them.
	r.Handle(cfg.Upload.BaseURL+"/*", http.StripPrefix(cfg.Upload.BaseURL+"/",
		http.FileServer(http.Dir(cfg.Upload.Dir))))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(cfg.Auth.OIDCIssuer, cfg.Auth.SessionCookie, log))
		log.Info("AUTH", "OIDC middleware applied to admin API routes")

		r.Route("/api", func(r chi.Router) {
			categoryHandler.RegisterRoutes(r)
			planHandler.RegisterRoutes(r)
			productHandler.RegisterRoutes(r)
			timeSlotHandler.RegisterRoutes(r)
			orderHandler.RegisterRoutes(r)
			uploadHandler.RegisterRoutes(r)
		})
		log.Info("ROUTER", "Admin routes registered under /api")
	})

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP", fmt.Sprintf("🚀 Studio Admin service running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	log.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	log.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("HTTP", fmt.Sprintf("Server Shutdown Failed: %v", err))
	} else {
		log.Info("HTTP", "✅ Studio Admin service shutdown complete")
	}
}
