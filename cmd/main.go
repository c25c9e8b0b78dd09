package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coldchain/internal/catalog"
	"coldchain/internal/handlers"
	"coldchain/internal/logger"
	"coldchain/internal/repository"
	"coldchain/internal/server"
	"coldchain/internal/service"

	"github.com/spf13/viper"

	_ "coldchain/docs"
)

const defaultSimTick = 1 * time.Second

// @title        Cold Chain Monitoring API
// @version      1.0
// @description  Spoilage prediction, route evaluation and emergency rescue triage for refrigerated cargo.
// @BasePath     /
func main() {
	// load config.yml first so the log level can come from it
	configErr := loadConfig()

	log := logger.Get(viper.GetString("log.level"))
	if configErr != nil {
		log.Fatalw("error reading config", "err", configErr)
	}

	// product catalog, salvage profiles and chaos telemetry
	cat, err := catalog.Load()
	if err != nil {
		log.Fatalw("failed to load product catalog", "err", err)
	}

	// open DB
	db, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(db)
	services := service.NewService(repos, cat)
	apiHandler := handlers.NewHandler(services, log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// start simulator unless disabled in config
	if simEnabled() {
		go services.Simulator.Run(ctx, simTick())
	}

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, services.Stream, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

func simEnabled() bool {
	if !viper.IsSet("sim.enabled") {
		return true
	}
	return viper.GetBool("sim.enabled")
}

func simTick() time.Duration {
	if d := viper.GetDuration("sim.tick"); d > 0 {
		return d
	}
	return defaultSimTick
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "coldchain.db")
		dbPath = "coldchain.db"
	}
	return repository.InitDB(dbPath)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, hub *service.Hub, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines and drop stream subscribers
	cancel()
	hub.Close()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
