package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "flight_booking/docs"
	"flight_booking/internal/config"
	"flight_booking/internal/handlers"
	"flight_booking/internal/logger"
	"flight_booking/internal/metrics"
	"flight_booking/internal/notify"
	"flight_booking/internal/relay"
	"flight_booking/internal/repository"
	"flight_booking/internal/repository/db"
	"flight_booking/internal/server"
	"flight_booking/internal/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// @title                       Flight Booking Status API
// @version                     1.0
// @description                 Real-time flight status notifications, status snapshots and authenticated status updates.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Init(cfg.Log.Level, cfg.Log.Encoding)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// open DB
	conn, err := openDB(ctx, cfg)
	if err != nil {
		log.Fatalw("failed to init postgres", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close postgres", "err", cerr)
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(cfg.Metrics.Namespace, reg)

	// wire dependencies
	hub := notify.NewHub(
		notify.WithMetrics(m),
		notify.WithSubscriberBuffer(cfg.Broker.SubscriberBuffer),
	)
	feed := repository.NewPgChangeFeed(cfg.DB.DSN, cfg.Feed.Channel,
		repository.WithReconnectInterval(cfg.Feed.ReconnectInterval),
		repository.WithFeedLogger(log.Named("change_feed")),
	)
	repos := repository.NewRepository(conn, feed)
	services := service.NewService(repos, hub, service.Options{
		SigningKey: cfg.Auth.SigningKey,
		TokenTTL:   cfg.Auth.TokenTTL,
		Enrichment: cfg.Feed.Enrichment,
		FeedBuffer: cfg.Feed.Buffer,
		Log:        log,
		Metrics:    m,
	})
	apiHandler := handlers.NewHandler(services, log,
		handlers.WithHeartbeat(cfg.Stream.HeartbeatInterval),
		handlers.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})),
	)

	// start change feed pipeline
	if err := services.Feed.Start(ctx); err != nil {
		log.Fatalw("failed to start status feed", "err", err)
	}

	// optional relay to an external bus
	stopRelay := startRelay(ctx, cfg.Relay, hub, log)

	// start HTTP server
	srv := server.New(server.Options{
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	})
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	// graceful shutdown
	waitForShutdown(cfg.Server.ShutdownTimeout, services.Feed, hub, stopRelay, srv, log)
}

// openDB initializes the Postgres pool and schema using configuration.
func openDB(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	return db.InitDB(ctx, db.Options{
		DSN:          cfg.DB.DSN,
		MaxOpenConns: cfg.DB.MaxOpenConns,
		MaxIdleConns: cfg.DB.MaxIdleConns,
		FeedChannel:  cfg.Feed.Channel,
	})
}

// startRelay forwards broker events to the configured sink. The returned func
// stops the relay and closes the sink.
func startRelay(ctx context.Context, cfg config.RelayConfig, hub *notify.Hub, log *logger.Logger) func() {
	sink, err := relay.NewSink(cfg)
	if err != nil {
		log.Fatalw("failed to create relay sink", "sink", cfg.Sink, "err", err)
	}
	if sink == nil {
		return func() {}
	}

	relayCtx, relayCancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		relay.New(hub, sink, cfg.Topic, log.Named("relay")).Run(relayCtx)
	}()

	return func() {
		relayCancel()
		<-done
		if err := sink.Close(); err != nil {
			log.Errorw("failed to close relay sink", "err", err)
		}
	}
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		log.Infow("http_server_listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown:
// the feed stops first, then the hub closes every stream, then the server drains.
func waitForShutdown(timeout time.Duration, feed service.Feed, hub *notify.Hub, stopRelay func(), srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	feed.Stop()
	stopRelay()
	hub.Close()

	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
	_ = log.Sync()
}
