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
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/gestao/cadastrobackend/config"
	"github.com/gestao/cadastrobackend/database"
	"github.com/gestao/cadastrobackend/dto"
	"github.com/gestao/cadastrobackend/handlers"
	"github.com/gestao/cadastrobackend/logging"
	"github.com/gestao/cadastrobackend/repository"
	"github.com/gestao/cadastrobackend/services"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Info: No .env file found or error loading: %v", err)
	}

	if err := logging.InitLogger(); err != nil {
		log.Fatalf("FATAL: Failed to initialize logger: %v", err)
	}
	defer logging.Sync()
	logger := logging.Logger

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	switch cfg.DateFormat {
	case config.DateFormatISO:
		dto.SetDateLayout(dto.LayoutISO)
	default:
		dto.SetDateLayout(dto.LayoutBR)
	}

	db, err := database.InitGormDB(cfg.DatabasePath, database.ParseLogLevel(cfg.DBLogLevel))
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer database.Close(db)

	if err := database.AutoMigrateModels(db); err != nil {
		logger.Fatal("failed to migrate database schema", zap.Error(err))
	}

	store := repository.NewGormStore(db)
	personService := services.NewPersonService(store, logging.Named("person"))
	addressService := services.NewAddressService(store, logging.Named("address"))

	paging := handlers.Paging{DefaultSize: cfg.DefaultPageSize, MaxSize: cfg.MaxPageSize}
	personHandler := &handlers.PersonHandler{People: personService, Addresses: addressService, Paging: paging}
	addressHandler := &handlers.AddressHandler{Addresses: addressService, Paging: paging}

	logger.Info("configuration loaded",
		zap.String("database", cfg.DatabasePath),
		zap.String("date_format", cfg.DateFormat),
		zap.Int("default_page_size", cfg.DefaultPageSize),
		zap.Int("max_page_size", cfg.MaxPageSize),
		zap.Strings("cors_origins", cfg.CORSAllowedOrigins),
	)

	r := chi.NewRouter()

	corsOptions := cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}

	corsHandler := cors.New(corsOptions)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(handlers.RequestLogger(logging.Named("http")))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(corsHandler.Handler)

	handlers.RegisterRoutes(r, personHandler, addressHandler, store)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	logger.Info("server exited")
}
