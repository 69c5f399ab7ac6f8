package main

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"atlas_recs/internal/adapters/observability"
	"atlas_recs/internal/domain"
	"atlas_recs/internal/seed"
	"atlas_recs/internal/shared"
	mysqlrepo "atlas_recs/internal/storage/mysql"
)

const ratingBatchSize = 1000

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Int("hotels", cfg.SeedHotels).
		Int("users", cfg.SeedUsers).
		Int("ratings", cfg.SeedRatings).
		Int64("seed", cfg.SeedSeed).
		Msg("seeder starting")

	tables := seed.New(seed.Config{
		Hotels:  cfg.SeedHotels,
		Users:   cfg.SeedUsers,
		Ratings: cfg.SeedRatings,
		Seed:    cfg.SeedSeed,
	}).Generate()

	if err := seed.WriteCSV(cfg.DataDir, tables); err != nil {
		log.Fatal().Err(err).Msg("writing CSV files failed")
	}
	log.Info().Str("dir", cfg.DataDir).Msg("CSV files written")

	if cfg.MySQLDSN == "" {
		log.Info().Msg("MYSQL_DSN empty, skipping database load")
		return
	}

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("schema creation failed")
	}

	if err := repo.UpsertHotels(ctx, tables.Hotels); err != nil {
		log.Fatal().Err(err).Msg("loading hotels failed")
	}
	if err := repo.UpsertUsers(ctx, tables.Users); err != nil {
		log.Fatal().Err(err).Msg("loading users failed")
	}

	// Ratings are the bulk of the data; load batches concurrently.
	sem := semaphore.NewWeighted(int64(cfg.SeedWorkers))
	var wg sync.WaitGroup

	for start := 0; start < len(tables.Ratings); start += ratingBatchSize {
		end := min(start+ratingBatchSize, len(tables.Ratings))
		batch := tables.Ratings[start:end]

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, int64(1)); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(batch []domain.Rating, offset int) {
			defer wg.Done()
			defer sem.Release(int64(1))

			if err := repo.UpsertRatings(ctx, batch); err != nil {
				log.Warn().Int("offset", offset).Err(err).Msg("rating batch failed")
				return
			}
		}(batch, start)
	}

	wg.Wait()
	log.Info().
		Int("hotels", len(tables.Hotels)).
		Int("users", len(tables.Users)).
		Int("ratings", len(tables.Ratings)).
		Msg("seeding completed")
}
