package factory

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"satay/internal/config"
	"satay/internal/domain"
	"satay/internal/repository"
	"satay/internal/service"
	"satay/pkg/logger"
	"satay/pkg/session"
)

type Factory interface {
	GetLogger() logger.Logger
	GetConfig() *config.Config
	GetDB() *sql.DB
	GetRedisClient() *redis.Client
	GetSessionStore() session.Store

	GetUserRepository() domain.UserRepository
	GetProductRepository() domain.ProductRepository
	GetOrderRepository() domain.OrderRepository

	GetUserService() domain.UserService
	GetProductService() domain.ProductService
	GetOrderService() domain.OrderService
}

type AppFactory struct {
	config       *config.Config
	logger       logger.Logger
	db           *sql.DB
	redisClient  *redis.Client
	sessionStore session.Store

	userRepository    domain.UserRepository
	productRepository domain.ProductRepository
	orderRepository   domain.OrderRepository

	userService    domain.UserService
	productService domain.ProductService
	orderService   domain.OrderService
}

func NewFactory() (Factory, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := logger.New(logger.LogLevel(cfg.LogLevel), nil)

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("veritabanı bağlantısı kurulamadı: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("veritabanı bağlantısı test edilemedi: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx := context.Background()
	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("Redis bağlantısı kurulamadı: %w", err)
	}

	sessionStore := session.NewRedisStore(redisClient, log, "satay", cfg.Session.TTL)

	factory := &AppFactory{
		config:       cfg,
		logger:       log,
		db:           db,
		redisClient:  redisClient,
		sessionStore: sessionStore,
	}

	factory.initRepositories()
	factory.initServices()

	return factory, nil
}

func (f *AppFactory) initRepositories() {
	f.userRepository = repository.NewUserRepository(f.db, f.logger)
	f.productRepository = repository.NewProductRepository(f.db, f.logger)
	f.orderRepository = repository.NewOrderRepository(f.db, f.logger)
}

func (f *AppFactory) initServices() {
	f.userService = service.NewUserService(f.userRepository, f.logger)
	f.productService = service.NewProductService(f.productRepository, f.logger)
	f.orderService = service.NewOrderService(f.orderRepository, f.logger)
}

func (f *AppFactory) GetLogger() logger.Logger {
	return f.logger
}

func (f *AppFactory) GetConfig() *config.Config {
	return f.config
}

func (f *AppFactory) GetDB() *sql.DB {
	return f.db
}

func (f *AppFactory) GetRedisClient() *redis.Client {
	return f.redisClient
}

func (f *AppFactory) GetSessionStore() session.Store {
	return f.sessionStore
}

func (f *AppFactory) GetUserRepository() domain.UserRepository {
	return f.userRepository
}

func (f *AppFactory) GetProductRepository() domain.ProductRepository {
	return f.productRepository
}

func (f *AppFactory) GetOrderRepository() domain.OrderRepository {
	return f.orderRepository
}

func (f *AppFactory) GetUserService() domain.UserService {
	return f.userService
}

func (f *AppFactory) GetProductService() domain.ProductService {
	return f.productService
}

func (f *AppFactory) GetOrderService() domain.OrderService {
	return f.orderService
}
