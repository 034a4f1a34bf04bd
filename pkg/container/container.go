package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"library-backend/internal/config"
	infraCache "library-backend/internal/infrastructure/cache"
	infraDatabase "library-backend/internal/infrastructure/database"
	"library-backend/pkg/cache"
	"library-backend/pkg/database"
	"library-backend/pkg/jwt"

	bookHandler "library-backend/internal/domains/book/handler"
	bookRepo "library-backend/internal/domains/book/repository"
	bookService "library-backend/internal/domains/book/service"
	loanHandler "library-backend/internal/domains/loan/handler"
	loanRepo "library-backend/internal/domains/loan/repository"
	loanService "library-backend/internal/domains/loan/service"
	studentHandler "library-backend/internal/domains/student/handler"
	studentRepo "library-backend/internal/domains/student/repository"
	studentService "library-backend/internal/domains/student/service"
)

// Container is the root of the dependency graph. One instance per
// process, built front to back: config, infrastructure, repositories,
// services, handlers.
type Container struct {
	Config     *config.Config
	DB         *infraDatabase.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager
	TxManager  database.TxManager

	BookRepo    bookRepo.RepositoryInterface
	StudentRepo studentRepo.RepositoryInterface
	LoanRepo    loanRepo.RepositoryInterface

	BookService    bookService.ServiceInterface
	StudentService studentService.ServiceInterface
	LoanService    loanService.ServiceInterface

	BookHandler    *bookHandler.Handler
	StudentHandler *studentHandler.Handler
	LoanHandler    *loanHandler.Handler
}

// NewContainer builds and initializes the whole dependency graph
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("[Container] Config loaded (environment: %s)", cfg.App.Environment)

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := infraDatabase.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	log.Println("[Container] Database connected")

	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)

	// Redis is a cache here, not a source of truth. A failed connection
	// degrades reads but must not block startup.
	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		if err := rc.Connect(context.Background()); err != nil {
			log.Printf("[Container] Redis connection failed (non-critical): %v", err)
		} else {
			log.Println("[Container] Redis connected")
		}
	}
	c.Cache = redisCache

	c.JWTManager = jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	c.TxManager = database.NewTxManager(db.Pool)

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Println("[Container] Initialized")
	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.BookRepo = bookRepo.NewRepository(pool)
	c.StudentRepo = studentRepo.NewRepository(pool)
	c.LoanRepo = loanRepo.NewRepository(pool)
}

func (c *Container) initServices() {
	c.BookService = bookService.NewService(c.BookRepo, c.Cache)
	c.StudentService = studentService.NewService(c.StudentRepo, c.JWTManager)
	c.LoanService = loanService.NewService(c.LoanRepo, c.BookRepo, c.TxManager, c.Cache)
}

func (c *Container) initHandlers() {
	c.BookHandler = bookHandler.NewHandler(c.BookService)
	c.StudentHandler = studentHandler.NewHandler(c.StudentService)
	c.LoanHandler = loanHandler.NewHandler(c.LoanService)
}

// Cleanup releases infrastructure resources on shutdown
func (c *Container) Cleanup() {
	if c.DB != nil && c.DB.Pool != nil {
		c.DB.Pool.Close()
		log.Println("[Container] Database connections closed")
	}

	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
			if err := rc.Close(); err != nil {
				log.Printf("[Container] Failed to close Redis: %v", err)
			} else {
				log.Println("[Container] Redis connections closed")
			}
		}
	}
}
