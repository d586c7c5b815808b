package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "geofence-api/docs"
	"geofence-api/internal/config"
	"geofence-api/internal/geo"
	"geofence-api/internal/handler"
	"geofence-api/internal/publisher"
	"geofence-api/internal/registry"
	"geofence-api/internal/repository"
	"geofence-api/internal/service"
	"geofence-api/internal/subscriber"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

//	@title			Geofence API
//	@version		1.0
//	@description	Decodes vehicle GGA sentences and matches them against registered client zones.
//	@BasePath		/
func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}
	config.SetupLogger(cfg.Log)

	zones := cfg.Zones
	if len(zones) == 0 {
		zones = registry.DefaultZones()
	}
	reg, err := registry.New(zones)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid client registry")
	}
	log.Info().Int("clients", reg.Len()).Bool("strict_nearest", cfg.Matching.StrictNearest).Msg("client registry loaded")

	// Fix history is optional
	var store service.FixStore
	if cfg.DBSource != "" {
		conn, err := pgxpool.New(ctx, cfg.DBSource)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot connect to db")
		}
		defer conn.Close()

		repo := repository.NewRepository(conn)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("cannot prepare db schema")
		}
		store = repo
	}

	// Match events are optional
	var matches service.MatchPublisher
	if cfg.AMQP.URL != "" {
		conn, err := publisher.Dial(cfg.AMQP.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot connect to rabbitmq")
		}
		defer conn.Close()

		pub, err := publisher.NewMatchPublisher(conn, cfg.AMQP.Exchange)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot open rabbitmq channel")
		}
		defer pub.Close()
		matches = pub
	}

	// Initialize layers
	locationService := service.NewLocationService(reg, geo.Matcher{StrictNearest: cfg.Matching.StrictNearest}, store, matches)

	locationHandler := handler.NewLocationHandler(locationService)
	clientHandler := handler.NewClientHandler(reg)

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           handler.NewRouter(locationHandler, clientHandler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", cfg.ServerAddress).Msg("starting http server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if cfg.MQTT.Broker != "" {
		client, err := subscriber.Connect(cfg.MQTT)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot connect to mqtt broker")
		}
		sub := subscriber.NewLocationSubscriber(client, cfg.MQTT.Topic, cfg.MQTT.QoS, locationService)

		g.Go(func() error {
			if err := sub.Start(); err != nil {
				return err
			}
			<-gctx.Done()
			log.Info().Msg("stopping mqtt subscriber")
			sub.Stop()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("server stopped")
}
