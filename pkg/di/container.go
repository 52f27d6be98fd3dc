package di

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"taskmanager-api/application/serviceimpl"
	"taskmanager-api/domain/repositories"
	"taskmanager-api/domain/services"
	"taskmanager-api/infrastructure/mongodb"
	"taskmanager-api/interfaces/api/handlers"
	"taskmanager-api/pkg/config"
	"taskmanager-api/pkg/logger"
)

type Container struct {
	Config *config.Config

	// Infrastructure
	MongoClient *mongo.Client
	MongoDB     *mongo.Database

	// Repositories
	TaskRepository repositories.TaskRepository

	// Services
	TaskService services.TaskService
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Initialize() error {
	if err := c.initConfig(); err != nil {
		return err
	}

	if err := c.initLogger(); err != nil {
		return err
	}

	if err := c.initDatabase(); err != nil {
		return err
	}

	c.initRepositories()
	c.initServices()

	return nil
}

func (c *Container) initConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	c.Config = cfg
	logger.Info("Configuration loaded")
	return nil
}

func (c *Container) initLogger() error {
	logConfig := logger.Config{
		Level:      c.Config.Log.Level,
		Format:     c.Config.Log.Format,
		Output:     c.Config.Log.Output,
		FilePath:   c.Config.Log.FilePath,
		MaxSize:    c.Config.Log.MaxSize,
		MaxBackups: c.Config.Log.MaxBackups,
		MaxAge:     c.Config.Log.MaxAge,
		Compress:   c.Config.Log.Compress,
	}

	if err := logger.Init(logConfig); err != nil {
		return err
	}

	logger.Info("Logger initialized", "level", c.Config.Log.Level, "format", c.Config.Log.Format)
	return nil
}

func (c *Container) initDatabase() error {
	client, db, err := mongodb.NewDatabase(c.Config.Mongo)
	if err != nil {
		return err
	}
	c.MongoClient = client
	c.MongoDB = db

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	logger.Info("Database connected", "database", c.Config.Mongo.Database)
	return nil
}

func (c *Container) initRepositories() {
	c.TaskRepository = mongodb.NewTaskRepository(c.MongoDB)
	logger.Info("Repositories initialized")
}

func (c *Container) initServices() {
	c.TaskService = serviceimpl.NewTaskService(c.TaskRepository)
	logger.Info("Services initialized")
}

func (c *Container) GetConfig() *config.Config {
	return c.Config
}

// GetHandlerServices bundles the dependencies the HTTP layer needs.
func (c *Container) GetHandlerServices() *handlers.Services {
	return &handlers.Services{
		TaskService: c.TaskService,
		DatabasePing: func(ctx context.Context) error {
			return mongodb.Ping(ctx, c.MongoClient)
		},
	}
}

// Cleanup closes the database connection on shutdown.
func (c *Container) Cleanup() error {
	logger.Info("Starting cleanup...")

	if c.MongoClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.MongoClient.Disconnect(ctx); err != nil {
			return err
		}
		logger.Info("Database connection closed")
	}

	return nil
}
