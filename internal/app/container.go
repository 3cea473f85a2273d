// Package app assembles the service from its parts. Construction order
// follows the dependency chain: config, logger, storage, catalog, engine,
// usecases, delivery.
package app

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"

	"skillmatch/internal/config"
	"skillmatch/internal/database"
	dbpostgres "skillmatch/internal/database/postgres"
	"skillmatch/internal/domain/matching"
	"skillmatch/internal/embedding"
	"skillmatch/internal/infrastructure/cache"
	"skillmatch/internal/logger"
	"skillmatch/internal/ranking"
	"skillmatch/internal/repository"
	"skillmatch/internal/taxonomy"
	"skillmatch/internal/usecase"
	"skillmatch/internal/ws"
)

const maxDefaultWorkers = 8

type Container struct {
	Config config.Config
	Logger *zap.Logger
	DB     database.DB

	Store   *taxonomy.Store
	Hub     *ws.Hub
	Catalog usecase.CatalogUsecase
	Match   usecase.MatchUsecase
	Rank    usecase.RankUsecase

	vectors *cache.RedisVectors
}

// NewContainer builds every dependency. The database is optional: without
// DB_HOST and DB_NAME the service runs purely in memory on the default
// taxonomy.
func NewContainer(cfg config.Config) (*Container, error) {
	log, err := logger.New(cfg.App.Environment)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	c := &Container{Config: cfg, Logger: log}

	if cfg.Database.HasDatabase() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		db, err := dbpostgres.Connect(ctx, cfg.Database)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		c.DB = db
	} else {
		log.Info("no database configured, catalog runs in memory only")
	}

	c.vectors = cache.NewRedisVectors(cfg.Redis, log)

	c.Store = taxonomy.NewStore()
	c.Hub = ws.NewHub(log)

	var repo repository.CatalogRepository
	if c.DB != nil {
		repo = repository.NewPostgresCatalogRepository(c.DB)
	}
	catalogUC := usecase.NewCatalogUsecase(c.Store, repo, ws.NewNotifier(c.Hub, log))
	c.Catalog = catalogUC

	hydrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	loaded, err := catalogUC.Hydrate(hydrateCtx)
	cancel()
	if err != nil {
		c.closeOnFailure()
		return nil, fmt.Errorf("hydrate catalog: %w", err)
	}
	log.Info("catalog hydrated", zap.Int("skills", loaded))

	engine, err := buildEngine(cfg, c.Store, log)
	if err != nil {
		c.closeOnFailure()
		return nil, err
	}

	embedder := pickEmbedder(cfg.Embedding, log)
	vectorCache := embedding.NewCache(cfg.Embedding.CacheCapacity, c.vectors, log)

	c.Match = usecase.NewMatchUsecase(engine, vectorCache, embedder)

	workers := cfg.Ranking.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
		if workers > maxDefaultWorkers {
			workers = maxDefaultWorkers
		}
	}
	opts := ranking.DefaultOptions()
	opts.Workers = workers
	c.Rank = usecase.NewRankUsecase(ranking.NewRanker(engine, opts), vectorCache, embedder)

	return c, nil
}

// buildEngine layers the optional matching YAML over the built-in
// strategies, tunables and region groups.
func buildEngine(cfg config.Config, store *taxonomy.Store, log *zap.Logger) (*matching.Engine, error) {
	file, err := config.LoadMatchingFile(cfg.Matching.ConfigPath)
	if err != nil {
		return nil, err
	}

	registry := matching.NewRegistry()
	for name, w := range file.Strategies {
		if err := registry.Register(name, matching.Weights{
			SkillOverlap:       w.SkillOverlap,
			ExperienceFit:      w.ExperienceFit,
			LocationFit:        w.LocationFit,
			SemanticSimilarity: w.SemanticSimilarity,
			CompensationFit:    w.CompensationFit,
		}); err != nil {
			return nil, fmt.Errorf("register strategy %q: %w", name, err)
		}
		log.Info("registered strategy", zap.String("name", name))
	}

	tun := matching.DefaultTunables()
	if v := file.Tunables.EquivalentWeight; v != nil {
		tun.EquivalentWeight = *v
	}
	if v := file.Tunables.PrerequisiteCredit; v != nil {
		tun.PrerequisiteCredit = *v
	}
	if v := file.Tunables.PreferredWeight; v != nil {
		tun.PreferredWeight = *v
	}
	if v := file.Tunables.OverqualFloor; v != nil {
		tun.OverqualFloor = *v
	}
	if v := file.Tunables.CompensationMaxGap; v != nil {
		tun.CompensationMaxGap = *v
	}

	return matching.NewEngine(store, registry, tun, regionFuncFrom(file.Regions)), nil
}

// regionFuncFrom turns {region: [locations]} groups into a same-region
// predicate. Nil when no groups are configured.
func regionFuncFrom(groups map[string][]string) matching.RegionFunc {
	if len(groups) == 0 {
		return nil
	}
	regionOf := make(map[string]string, len(groups))
	for region, locations := range groups {
		for _, loc := range locations {
			regionOf[taxonomy.NormalizeID(loc)] = region
		}
	}
	return func(a, b string) bool {
		ra, okA := regionOf[taxonomy.NormalizeID(a)]
		rb, okB := regionOf[taxonomy.NormalizeID(b)]
		return okA && okB && ra == rb
	}
}

func pickEmbedder(cfg config.EmbeddingConfig, log *zap.Logger) embedding.Embedder {
	if remote := embedding.NewOpenAIEmbedder(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Dimension); remote != nil {
		log.Info("using remote embedder", zap.String("model", remote.Model()))
		return remote
	}
	local := embedding.NewHashingEmbedder(cfg.Dimension)
	log.Info("using local embedder", zap.String("model", local.Model()))
	return local
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	c.Hub.Stop()

	var firstErr error
	if c.vectors != nil {
		if err := c.vectors.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	_ = c.Logger.Sync()
	return firstErr
}

// closeOnFailure releases what was acquired before construction failed.
func (c *Container) closeOnFailure() {
	if c.vectors != nil {
		_ = c.vectors.Close()
	}
	if c.DB != nil {
		_ = c.DB.Close()
	}
}
