// Package bootstrap builds the collaborators shared by the HTTP server, the CLI
// and scheduled jobs from configuration.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"chatshop.GO/config"
	"chatshop.GO/model/repository/catalog"
	"chatshop.GO/service/search"
	"chatshop.GO/service/session"
)

type ServiceContext struct {
	Config       *config.Config
	SearchConfig config.SearchConfig
	Logger       *slog.Logger

	DB      *gorm.DB
	Elastic *elasticsearch.Client
	Redis   *redis.Client

	Catalog  catalog.Finder
	Sessions session.Store
	// Memory is set when sessions live in process; the sweep job uses it.
	Memory *session.MemoryStore
	Engine *search.Engine
}

// NewServiceContext wires the catalog backend, the slot store and the engine.
func NewServiceContext(cfg *config.Config, logger *slog.Logger) (*ServiceContext, error) {
	searchCfg, err := config.LoadSearchConfig()
	if err != nil {
		return nil, fmt.Errorf("load search config: %w", err)
	}
	svc := &ServiceContext{Config: cfg, SearchConfig: searchCfg, Logger: logger}

	if err := svc.initCatalog(); err != nil {
		return nil, err
	}
	if err := svc.initSessions(); err != nil {
		return nil, err
	}

	svc.Engine = search.NewEngine(svc.Catalog, svc.Sessions, searchCfg, search.Options{
		PageSize:       cfg.PageSize,
		CatalogTimeout: cfg.CatalogTimeout,
		Logger:         logger,
	})
	return svc, nil
}

func (s *ServiceContext) initCatalog() error {
	switch s.Config.CatalogBackend {
	case "elastic":
		client, err := config.NewElasticClient()
		if err != nil {
			return fmt.Errorf("init elasticsearch client: %w", err)
		}
		s.Elastic = client
		s.Catalog = catalog.NewElasticRepository(client, config.ElasticIndex())
		s.Logger.Info("catalog backend initialized", "backend", "elastic", "index", config.ElasticIndex())
	case "file":
		repo, err := catalog.NewMemoryRepositoryFromFile(s.Config.CatalogFile)
		if err != nil {
			return err
		}
		s.Catalog = repo
		s.Logger.Info("catalog backend initialized", "backend", "file", "path", s.Config.CatalogFile)
	default:
		db, err := config.NewDB()
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		s.DB = db
		repo := catalog.NewSQLRepository(db)
		if config.GetEnv("DB_DRIVER", "mysql") == "sqlite" {
			if err := repo.AutoMigrate(); err != nil {
				return fmt.Errorf("migrate sqlite catalog: %w", err)
			}
		}
		s.Catalog = repo
		s.Logger.Info("catalog backend initialized", "backend", "sql")
	}
	return nil
}

func (s *ServiceContext) initSessions() error {
	if s.Config.SessionBackend == "redis" {
		config.InitRedis()
		if config.RedisClient == nil {
			return fmt.Errorf("SESSION_BACKEND=redis requires REDIS_ADDR")
		}
		if err := config.RedisClient.Ping(context.Background()).Err(); err != nil {
			s.Logger.Warn("redis not reachable at startup", "err", err)
		}
		s.Redis = config.RedisClient
		s.Sessions = session.NewRedisStore(config.RedisClient, s.Config.SessionTTL)
		s.Logger.Info("session store initialized", "backend", "redis", "ttl", s.Config.SessionTTL)
		return nil
	}
	s.Memory = session.NewMemoryStore(s.Config.SessionMax, s.Config.SessionTTL)
	s.Sessions = s.Memory
	s.Logger.Info("session store initialized", "backend", "memory",
		"max", s.Config.SessionMax, "ttl", s.Config.SessionTTL)
	return nil
}

// SQLCatalog returns the gorm-backed repository, or nil for other backends.
func (s *ServiceContext) SQLCatalog() *catalog.SQLRepository {
	repo, _ := s.Catalog.(*catalog.SQLRepository)
	return repo
}

// Close releases connections opened by NewServiceContext.
func (s *ServiceContext) Close() {
	if s.Redis != nil {
		_ = s.Redis.Close()
	}
	if s.DB != nil {
		if sqlDB, err := s.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
