package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"taskmanager-api/domain/models"
	"taskmanager-api/domain/repositories"
	"taskmanager-api/pkg/errs"
)

const taskCollection = "tasks"

type TaskRepositoryImpl struct {
	collection *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) repositories.TaskRepository {
	return &TaskRepositoryImpl{collection: db.Collection(taskCollection)}
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *models.Task) error {
	_, err := r.collection.InsertOne(ctx, task)
	if err != nil {
		// latent: no task field carries a unique index today
		if mongo.IsDuplicateKeyError(err) {
			return errs.Duplicate("")
		}
		return err
	}
	return nil
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	var task models.Task
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

// List translates the query into an equality filter and a single-field
// sort. An unknown sort field passes through to Mongo opaquely.
func (r *TaskRepositoryImpl) List(ctx context.Context, query models.TaskQuery) ([]*models.Task, error) {
	filter := bson.M{}
	if query.Completed != nil {
		filter["completed"] = *query.Completed
	}
	if query.Priority != "" {
		filter["priority"] = query.Priority
	}

	direction := 1
	if query.SortDesc {
		direction = -1
	}
	opts := options.Find().SetSort(bson.D{{Key: query.SortBy, Value: direction}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	tasks := []*models.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepositoryImpl) Update(ctx context.Context, task *models.Task) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": task.ID}, task)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.Duplicate("")
		}
		return err
	}
	if result.MatchedCount == 0 {
		return repositories.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repositories.ErrTaskNotFound
	}
	return nil
}
