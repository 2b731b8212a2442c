package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/totototosssss/num/internal/catalog"
	"github.com/totototosssss/num/internal/config"
	"github.com/totototosssss/num/internal/game"
	"github.com/totototosssss/num/internal/httpserver"
	"github.com/totototosssss/num/internal/oeis"
	"github.com/totototosssss/num/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := catalog.Init(cfg.PoolFile); err != nil {
		log.Fatal().Err(err).Msg("failed to load sequence pool")
	}

	provider := oeis.NewClient(cfg.OEISBaseURL, game.TermsToDisplay+1)
	engine := game.NewEngine(provider, cfg.FetchRetryDelay)
	mem := store.NewMemoryStore()

	srv := httpserver.New(mem, engine, catalog.IDs())
	log.Info().Str("port", cfg.Port).Int("pool", catalog.Stats()).Msg("starting num server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
