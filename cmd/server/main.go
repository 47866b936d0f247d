package main

import (
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/lovejzzz/GrooveLounge/internal/config"
	"github.com/lovejzzz/GrooveLounge/internal/game"
	"github.com/lovejzzz/GrooveLounge/internal/persist"
	"github.com/lovejzzz/GrooveLounge/internal/server"
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("load configuration")
	}
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	catalog, err := game.Load(cfg.CatalogPath)
	if err != nil {
		log.WithError(err).Fatal("load catalog")
	}

	stores := fileStores(cfg.DataDir)
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		stores = redisStores(client)
		log.WithField("addr", cfg.RedisAddr).Info("saving profiles to redis")
	} else {
		log.WithField("dir", cfg.DataDir).Info("saving profiles to files")
	}

	srv := server.New(catalog, cfg.StartingCoins, stores)

	log.WithField("addr", cfg.Addr).Info("listening")
	if err := srv.Router().Run(cfg.Addr); err != nil {
		log.WithError(err).Fatal("http server")
	}
}

func fileStores(dataDir string) server.StoreFactory {
	return func(profileID string) (persist.Store, error) {
		return persist.NewFileStore(dataDir, profileID)
	}
}

func redisStores(client *redis.Client) server.StoreFactory {
	return func(profileID string) (persist.Store, error) {
		return persist.NewRedisStore(client, profileID), nil
	}
}
