package cmd

import (
	"github.com/sirupsen/logrus"

	"gitlabtree/internal/adapters/filesystem"
	"gitlabtree/internal/adapters/gitlab"
	"gitlabtree/internal/adapters/sqlite"
	"gitlabtree/internal/application"
	"gitlabtree/internal/config"
	"gitlabtree/internal/logging"
	"gitlabtree/internal/ports"
)

// newStore picks the snapshot backend from the cache path's extension
func newStore(path string) ports.SnapshotStore {
	if sqlite.Handles(path) {
		return sqlite.NewSnapshotStore(path)
	}
	return filesystem.NewSnapshotStore(path)
}

func newCache(settings config.CacheSettings, logger *logrus.Logger) *application.Cache {
	return application.NewCache(newStore(settings.Path), settings.TTL, logging.Component(logger, "cache"))
}

func newIngestor(cfg *config.Config, logger *logrus.Logger) *application.Ingestor {
	client := gitlab.New(gitlab.Options{
		BaseURL:          cfg.URL,
		Token:            cfg.Token,
		AllAvailable:     cfg.Filters.AllAvailable,
		Owned:            cfg.Filters.Owned,
		TopLevelOnly:     cfg.Filters.TopLevelOnly,
		IncludeSubgroups: cfg.Filters.IncludeSubgroups,
		Visibility:       cfg.Filters.Visibility,
		Log:              logging.Component(logger, "gitlab"),
	})
	return application.NewIngestor(client, newCache(cfg.Cache, logger), cfg.PerPage, logging.Component(logger, "ingest"))
}
