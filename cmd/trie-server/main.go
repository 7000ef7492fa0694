package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/kumarlokesh/sysd/exercises/trie-dup/internal/api"
	"github.com/kumarlokesh/sysd/exercises/trie-dup/internal/config"
	"github.com/kumarlokesh/sysd/exercises/trie-dup/internal/logging"
	"github.com/kumarlokesh/sysd/exercises/trie-dup/internal/tree"
	"github.com/kumarlokesh/sysd/exercises/trie-dup/internal/trie"
)

func main() {
	configPath := pflag.String("config", "", "path to config file")
	pflag.String("host", "localhost", "server host")
	pflag.Int("port", 8080, "server port")
	pflag.String("policy", tree.PolicyIsomorphic, "subtree match policy (isomorphic, strict)")
	pflag.String("log-level", "info", "log level")
	pflag.String("log-format", "console", "log format (console, json)")
	pflag.Parse()

	cfg, err := config.Load(*configPath, pflag.CommandLine)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	logger, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create logger")
	}
	log.Logger = logger

	match, err := tree.MatcherFor(cfg.Search.Policy)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid match policy")
	}
	t := trie.New(trie.WithFinder(tree.NewFinder(tree.WithMatcher(match))))

	srv := api.NewServer(cfg.Server.Addr(), t, logger)

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info().Str("signal", sig.String()).Msg("received signal")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return
	}
	log.Info().Msg("server stopped")
}
