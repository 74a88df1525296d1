package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"

	"github.com/alphacoop/gateway-settings-api/audit"
	"github.com/alphacoop/gateway-settings-api/configs"
	"github.com/alphacoop/gateway-settings-api/datastore/gorm"
	"github.com/alphacoop/gateway-settings-api/handlers"
	"github.com/alphacoop/gateway-settings-api/handlers/middleware"
	"github.com/alphacoop/gateway-settings-api/keyvalue"
	kvgorm "github.com/alphacoop/gateway-settings-api/keyvalue/gorm"
	kvlocal "github.com/alphacoop/gateway-settings-api/keyvalue/local"
	kvredis "github.com/alphacoop/gateway-settings-api/keyvalue/redis"
	"github.com/alphacoop/gateway-settings-api/migrations"
	"github.com/alphacoop/gateway-settings-api/settings"
	"github.com/alphacoop/gateway-settings-api/webhook"
)

const version = "0.3.0"

var (
	sha1ver   string // sha1 revision used to build the program
	buildTime string // when the executable was built
)

func main() {
	var printVersion bool

	// If we should just print the version number and exit
	flag.BoolVar(&printVersion, "version", false, "if true, print version and exit")
	flag.Parse()

	if printVersion {
		fmt.Printf("v%s build on %s from sha1 %s\n", version, buildTime, sha1ver)
		os.Exit(0)
	}

	cfg, err := configs.Parse()
	if err != nil {
		panic(err)
	}

	runServer(cfg)

	os.Exit(0)
}

func runServer(cfg *configs.Config) {
	configs.ConfigureLogger(cfg.LogLevel)

	log.Info("Starting server")

	// Database
	db, err := gorm.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer gorm.Close(db)

	if err := migrations.Migrate(db); err != nil {
		log.Fatal(err)
	}

	// Durable store for the settings record
	var kv keyvalue.Store
	switch cfg.KeyValueStoreType {
	case "local":
		kv = kvlocal.NewStore()
	case "shared":
		kv = kvgorm.NewStore(db)
	case "redis":
		if cfg.KeyValueRedisURL == "" {
			log.Fatal("keyvalue store set to redis but Redis URL is empty")
		}
		rs := kvredis.NewStore(cfg.KeyValueRedisURL)
		defer func() {
			if err := rs.Close(); err != nil {
				log.Warn(err)
			}
		}()
		kv = rs
	default:
		log.Fatalf("keyvalue store type '%s' not supported", cfg.KeyValueStoreType)
	}

	// Services
	auditService := audit.NewService(audit.NewGormStore(db))

	updateRatelimiter := ratelimit.New(cfg.SettingsMaxUpdateRate, ratelimit.WithoutSlack)

	settingsService := settings.NewService(
		kv,
		settings.WithAuditor(auditService),
		settings.WithUpdateRatelimiter(updateRatelimiter),
	)

	// Push settings updates downstream
	if cfg.SettingsWebhookURL != "" {
		notifier := webhook.NewNotifier(cfg.SettingsWebhookURL, cfg.SettingsWebhookTimeout, settingsService)
		unsubscribe := settingsService.Subscribe(notifier.Notify)
		defer func() {
			unsubscribe()
			notifier.Close()
			log.Info("Stopped settings webhook notifier")
		}()
	}

	// HTTP handling
	settingsHandler := handlers.NewSettings(settingsService)
	auditHandler := handlers.NewAudit(auditService)

	r := mux.NewRouter()

	// Catch the api version
	rv := r.PathPrefix("/{apiVersion}").Subrouter()

	// Debug
	rv.Handle("/debug", handlers.Debug("https://github.com/alphacoop/gateway-settings-api", sha1ver, buildTime)).Methods(http.MethodGet)

	// Health
	rv.HandleFunc("/health/ready", handlers.HandleHealthReady).Methods(http.MethodGet)
	rv.Handle("/health/liveness", handlers.Liveness(func() (interface{}, error) {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		if err := sqlDB.Ping(); err != nil {
			return nil, err
		}
		return map[string]string{"database": "ok"}, nil
	})).Methods(http.MethodGet)

	// Settings
	rv.Handle("/settings", settingsHandler.GetSettings()).Methods(http.MethodGet)
	rv.Handle("/settings", settingsHandler.SetSettings()).Methods(http.MethodPost)
	rv.Handle("/settings/audit", auditHandler.List()).Methods(http.MethodGet)

	h := http.TimeoutHandler(r, cfg.ServerRequestTimeout, "request timed out")
	h = handlers.UseCors(h)
	h = middleware.LoggingHandler(h)
	h = handlers.UseCompress(h)
	h = handlers.UseJson(h)

	// Idempotency key handling for POSTs
	if !cfg.DisableIdempotencyMiddleware {
		var is handlers.IdempotencyStore
		switch cfg.IdempotencyStoreType {
		// Shared SQL store (same as for main app)
		case handlers.IdempotencyStoreTypeShared.String():
			is = handlers.NewIdempotencyStoreGorm(db)
		// Redis, separate from app db
		case handlers.IdempotencyStoreTypeRedis.String():
			if cfg.IdempotencyRedisURL == "" {
				log.Fatal("idempotency middleware store set to redis but Redis URL is empty")
			}
			pool := &redis.Pool{
				MaxIdle:   80,
				MaxActive: 1000,
				Dial: func() (redis.Conn, error) {
					return redis.DialURL(cfg.IdempotencyRedisURL)
				},
			}
			defer func() {
				log.Info("Closing Redis pool..")
				if err := pool.Close(); err != nil {
					log.Warn(err)
				}
			}()
			is = handlers.NewIdempotencyStoreRedis(pool)
		case handlers.IdempotencyStoreTypeLocal.String():
			is = handlers.NewIdempotencyStoreLocal()
		default:
			log.Fatalf("idempotency store type '%s' not supported", cfg.IdempotencyStoreType)
		}

		h = handlers.UseIdempotency(h, handlers.IdempotencyHandlerOptions{
			Expiry: 1 * time.Hour,
		}, is)
	}

	// Server boilerplate
	srv := &http.Server{
		Handler:      h,
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		WriteTimeout: 0, // Disabled, set cfg.ServerRequestTimeout instead
		ReadTimeout:  0, // Disabled, set cfg.ServerRequestTimeout instead
	}

	// Run our server in a goroutine so that it doesn't block.
	go func() {
		log.
			WithFields(log.Fields{
				"host": cfg.Host,
				"port": cfg.Port,
			}).
			Info("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error(err)
	}

	log.Info("Server stopped")
}
