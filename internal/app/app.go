package app

import (
	"context"
	"fmt"
	"net/http"

	"gorm.io/gorm"

	"dogwalk-app-go/internal/config"
	"dogwalk-app-go/internal/db"
	"dogwalk-app-go/internal/domain/access"
	dogdomain "dogwalk-app-go/internal/domain/dog"
	groupdomain "dogwalk-app-go/internal/domain/group"
	keyworddomain "dogwalk-app-go/internal/domain/keyword"
	matchdomain "dogwalk-app-go/internal/domain/match"
	statsdomain "dogwalk-app-go/internal/domain/stats"
	userdomain "dogwalk-app-go/internal/domain/user"
	walkdomain "dogwalk-app-go/internal/domain/walk"
	"dogwalk-app-go/internal/repository/inmemory"
	dogrepo "dogwalk-app-go/internal/repository/postgres/dog"
	grouprepo "dogwalk-app-go/internal/repository/postgres/group"
	keywordrepo "dogwalk-app-go/internal/repository/postgres/keyword"
	matchrepo "dogwalk-app-go/internal/repository/postgres/match"
	statsrepo "dogwalk-app-go/internal/repository/postgres/stats"
	userrepo "dogwalk-app-go/internal/repository/postgres/user"
	walkrepo "dogwalk-app-go/internal/repository/postgres/walk"
	"dogwalk-app-go/internal/transport/httpserver"
	"dogwalk-app-go/internal/transport/httpserver/handler"
	"dogwalk-app-go/pkg/logger"
)

type App struct {
	cfg        config.Config
	log        logger.Logger
	httpServer *http.Server
	db         *gorm.DB
}

type repositories struct {
	users    userdomain.Repository
	dogs     dogdomain.Repository
	keywords keyworddomain.Repository
	groups   groupdomain.Repository
	walks    walkdomain.Repository
	matches  matchdomain.Repository
	stats    statsdomain.Repository
}

func New(bootLog logger.Logger) (*App, error) {
	bootLog.Info("app: loading config")
	cfg, err := config.Load(bootLog)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log := logger.NewFromConfig(cfg.Env, cfg.LogLevel, cfg.LogFormat).With("service", "dogwalk-app")

	a := &App{cfg: cfg, log: log}

	repos, err := a.initStorage()
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing services")
	handlers, users := newHandlers(cfg, repos, log)

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, handlers, users, log)

	log.Info("app: initializing http server")
	a.httpServer = httpserver.New(cfg, router)
	return a, nil
}

func (a *App) initStorage() (repositories, error) {
	if a.cfg.StorageDriver == config.StorageDriverMemory {
		a.log.Warn("app: using in-memory storage, data is lost on restart")
		return memoryRepositories(inmemory.NewStore()), nil
	}

	if a.cfg.DB.AutoMigrate {
		a.log.Info("app: applying migrations")
		if err := db.Migrate(a.cfg.DB.GetDSN(), db.DirectionUp); err != nil {
			return repositories{}, fmt.Errorf("migrate: %w", err)
		}
	}

	a.log.Info("app: initializing database")
	conn, err := db.NewPostgres(a.cfg.DB, a.log)
	if err != nil {
		return repositories{}, err
	}
	a.db = conn
	return postgresRepositories(conn), nil
}

func memoryRepositories(store *inmemory.Store) repositories {
	return repositories{
		users:    store.Users(),
		dogs:     store.Dogs(),
		keywords: store.Keywords(),
		groups:   store.Groups(),
		walks:    store.Walks(),
		matches:  store.Matches(),
		stats:    store.Stats(),
	}
}

func postgresRepositories(conn *gorm.DB) repositories {
	return repositories{
		users:    userrepo.NewPostgres(conn),
		dogs:     dogrepo.NewPostgres(conn),
		keywords: keywordrepo.NewPostgres(conn),
		groups:   grouprepo.NewPostgres(conn),
		walks:    walkrepo.NewPostgres(conn),
		matches:  matchrepo.NewPostgres(conn),
		stats:    statsrepo.NewPostgres(conn),
	}
}

// newHandlers builds every service on top of repos. The user service is
// returned separately because the auth middleware saves profiles through it.
func newHandlers(cfg config.Config, repos repositories, log logger.Logger) (*handler.Handlers, *userdomain.Service) {
	users := userdomain.NewService(repos.users)
	groups := groupdomain.NewService(repos.groups)

	handlers := handler.New(handler.Services{
		Users:    users,
		Dogs:     dogdomain.NewService(repos.dogs),
		Keywords: keyworddomain.NewServiceWithCache(repos.keywords, inmemory.NewKeywordCache(), cfg.Keywords.CacheTTL),
		Groups:   groups,
		Walks:    walkdomain.NewService(repos.walks),
		Matches:  matchdomain.NewService(repos.matches),
		Stats:    statsdomain.NewServiceWithCacheTTL(repos.stats, cfg.Stats.CacheTTL),
		Access:   access.NewChecker(groups),
	}, log)
	return handlers, users
}

// NewMemoryHandler wires the full HTTP stack on in-memory storage.
func NewMemoryHandler(cfg config.Config, log logger.Logger) (http.Handler, *inmemory.Store) {
	store := inmemory.NewStore()
	handlers, users := newHandlers(cfg, memoryRepositories(store), log)
	return httpserver.NewRouter(cfg, handlers, users, log), store
}

// NewPostgresHandler wires the full HTTP stack on an existing connection.
// Migrations are the caller's responsibility.
func NewPostgresHandler(cfg config.Config, conn *gorm.DB, log logger.Logger) http.Handler {
	handlers, users := newHandlers(cfg, postgresRepositories(conn), log)
	return httpserver.NewRouter(cfg, handlers, users, log)
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Logger() logger.Logger {
	return a.log
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SeedKeywords upserts the vocabulary through the configured storage.
func SeedKeywords(ctx context.Context, cfg config.Config, keywords []keyworddomain.Keyword, log logger.Logger) (int, error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		return 0, fmt.Errorf("seeding needs STORAGE_DRIVER=%s", config.StorageDriverPostgres)
	}
	conn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return 0, err
	}
	defer func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	return keyworddomain.NewService(keywordrepo.NewPostgres(conn)).Seed(ctx, keywords)
}
