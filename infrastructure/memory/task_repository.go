package memory

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"taskmanager-api/domain/models"
	"taskmanager-api/domain/repositories"
)

// TaskRepository is an in-memory store with the same TaskQuery semantics
// as the Mongo repository. It backs tests and seed dry runs.
type TaskRepository struct {
	mu    sync.RWMutex
	tasks map[primitive.ObjectID]models.Task
	order []primitive.ObjectID
}

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{
		tasks: make(map[primitive.ObjectID]models.Task),
	}
}

func (r *TaskRepository) Create(_ context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[task.ID] = *task
	r.order = append(r.order, task.ID)
	return nil
}

func (r *TaskRepository) GetByID(_ context.Context, id primitive.ObjectID) (*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	task, ok := r.tasks[id]
	if !ok {
		return nil, repositories.ErrTaskNotFound
	}
	return &task, nil
}

func (r *TaskRepository) List(_ context.Context, query models.TaskQuery) ([]*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*models.Task, 0, len(r.order))
	for _, id := range r.order {
		task := r.tasks[id]
		if query.Completed != nil && task.Completed != *query.Completed {
			continue
		}
		if query.Priority != "" && task.Priority != query.Priority {
			continue
		}
		copied := task
		matched = append(matched, &copied)
	}

	sortTasks(matched, query)
	return matched, nil
}

func (r *TaskRepository) Update(_ context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[task.ID]; !ok {
		return repositories.ErrTaskNotFound
	}
	r.tasks[task.ID] = *task
	return nil
}

func (r *TaskRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return repositories.ErrTaskNotFound
	}
	delete(r.tasks, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// sortTasks orders by a single known field; an unknown field leaves
// insertion order untouched, which discriminates nothing.
func sortTasks(tasks []*models.Task, query models.TaskQuery) {
	less := lessFunc(query.SortBy)
	if less == nil {
		return
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		if query.SortDesc {
			return less(tasks[j], tasks[i])
		}
		return less(tasks[i], tasks[j])
	})
}

func lessFunc(field string) func(a, b *models.Task) bool {
	switch field {
	case "createdAt":
		return func(a, b *models.Task) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case "updatedAt":
		return func(a, b *models.Task) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	case "dueDate":
		return func(a, b *models.Task) bool {
			// missing due dates sort before present ones, matching Mongo's
			// null-first ascending order
			if a.DueDate == nil {
				return b.DueDate != nil
			}
			if b.DueDate == nil {
				return false
			}
			return a.DueDate.Before(*b.DueDate)
		}
	case "title":
		return func(a, b *models.Task) bool { return a.Title < b.Title }
	case "priority":
		return func(a, b *models.Task) bool { return a.Priority < b.Priority }
	case "completed":
		return func(a, b *models.Task) bool { return !a.Completed && b.Completed }
	default:
		return nil
	}
}
