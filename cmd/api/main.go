package main

import (
	"context"
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "atlas_recs/internal/adapters/http_server"
	"atlas_recs/internal/adapters/observability"
	redisad "atlas_recs/internal/adapters/redis"
	"atlas_recs/internal/app"
	"atlas_recs/internal/domain"
	"atlas_recs/internal/recommend"
	"atlas_recs/internal/shared"
	"atlas_recs/internal/storage/csvstore"
	mysqlrepo "atlas_recs/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// With a DSN the tables come from MySQL, otherwise from the CSV
	// files the seeder writes.
	var source domain.TableSource
	if cfg.MySQLDSN != "" {
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.Ping(); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		log.Info().Msg("database connection ok")
		source = mysqlrepo.New(db)
	} else {
		source = csvstore.New(cfg.DataDir)
	}

	tables, err := source.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("loading tables failed")
	}

	metric, err := recommend.ParseMetric(cfg.Metric)
	if err != nil {
		log.Fatal().Err(err).Msg("bad similarity metric")
	}
	engine := recommend.NewEngine(tables, recommend.Config{
		K:              cfg.K,
		Metric:         metric,
		LikedThreshold: cfg.LikedThreshold,
		ColdStartMin:   cfg.ColdStartMin,
		PriceTolerance: cfg.PriceTolerance,
		DefaultN:       cfg.DefaultN,
		MaxN:           cfg.MaxN,
	})

	// deps
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	q := app.NewQueryService(tables, cache, cfg.CacheTTL)

	// http
	srv := server.New(cfg.RecommendRPS)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q, Engine: engine, Metric: string(metric)})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
