package main

import (
	"context"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"taskmanager-api/domain/models"
	"taskmanager-api/infrastructure/mongodb"
	"taskmanager-api/pkg/config"
	"taskmanager-api/pkg/logger"
)

func sampleTasks(now time.Time) []*models.Task {
	due := func(days int) *time.Time {
		d := now.Add(time.Duration(days) * 24 * time.Hour)
		return &d
	}

	return []*models.Task{
		{
			Title:       "Complete project documentation",
			Description: "Write comprehensive API documentation for the Task Manager",
			Priority:    models.PriorityHigh,
			DueDate:     due(7),
		},
		{
			Title:       "Review code changes",
			Description: "Review pull request #123 for the new feature",
			Priority:    models.PriorityMedium,
			DueDate:     due(3),
			Completed:   true,
		},
		{
			Title:       "Update dependencies",
			Description: "Update packages to latest versions",
			Priority:    models.PriorityLow,
		},
		{
			Title:       "Write unit tests",
			Description: "Add comprehensive test coverage for new components",
			Priority:    models.PriorityHigh,
			DueDate:     due(5),
		},
		{
			Title:       "Deploy to production",
			Description: "Deploy the latest version to production environment",
			Priority:    models.PriorityMedium,
			DueDate:     due(10),
		},
		{
			Title:       "Setup CI/CD pipeline",
			Description: "Configure GitHub Actions for automated testing and deployment",
			Priority:    models.PriorityHigh,
			Completed:   true,
		},
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	if err := logger.Init(logger.DefaultConfig()); err != nil {
		panic("Failed to init logger: " + err.Error())
	}

	logger.Info("Starting database seeding...")

	client, db, err := mongodb.NewDatabase(cfg.Mongo)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	defer client.Disconnect(ctx)

	deleted, err := db.Collection("tasks").DeleteMany(ctx, bson.M{})
	if err != nil {
		logger.Error("Failed to clear tasks", "error", err)
		os.Exit(1)
	}
	logger.Info("Cleared existing tasks", "count", deleted.DeletedCount)

	now := time.Now().UTC()
	repo := mongodb.NewTaskRepository(db)
	tasks := sampleTasks(now)
	for _, task := range tasks {
		task.ID = primitive.NewObjectID()
		task.CreatedAt = now
		task.UpdatedAt = now
		if err := repo.Create(ctx, task); err != nil {
			logger.Error("Failed to seed task", "title", task.Title, "error", err)
			os.Exit(1)
		}
	}

	logger.Info("Database seeding completed", "count", len(tasks))
}
