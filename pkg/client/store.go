package client

import (
	"context"
	"errors"
	"sync"

	"taskmanager-api/domain/dto"
)

// ErrDeleteNotConfirmed is returned when the confirmation step rejects a
// delete; no request is issued in that case.
var ErrDeleteNotConfirmed = errors.New("delete not confirmed")

// ConfirmFunc gates destructive operations. It receives the task about to
// be deleted and reports whether to proceed.
type ConfirmFunc func(task dto.TaskResponse) bool

// Store reconciles an optimistic local snapshot of the task list with
// server responses: completion toggles apply locally first and revert on
// failure, deletes require confirmation, and list refreshes are driven by
// an externally bumped refresh token rather than a push channel or timer.
type Store struct {
	client        *Client
	confirmDelete ConfirmFunc

	mu         sync.Mutex
	tasks      []dto.TaskResponse
	lastToken  int
	filters    ListFilters
	draft      dto.CreateTaskRequest
	submitting bool
}

func NewStore(client *Client, confirmDelete ConfirmFunc) *Store {
	return &Store{
		client:        client,
		confirmDelete: confirmDelete,
		lastToken:     -1,
	}
}

// Tasks returns a copy of the current snapshot.
func (s *Store) Tasks() []dto.TaskResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make([]dto.TaskResponse, len(s.tasks))
	copy(snapshot, s.tasks)
	return snapshot
}

func (s *Store) SetFilters(filters ListFilters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = filters
}

// Sync reloads the list when token differs from the last one seen. An
// unchanged token is a no-op; there is no interval polling.
func (s *Store) Sync(ctx context.Context, token int) error {
	s.mu.Lock()
	if token == s.lastToken {
		s.mu.Unlock()
		return nil
	}
	filters := s.filters
	s.mu.Unlock()

	tasks, err := s.client.ListTasks(ctx, filters)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.tasks = tasks
	s.lastToken = token
	s.mu.Unlock()
	return nil
}

// ToggleCompleted flips a task's completion flag locally, then issues the
// update. On failure the local state is reverted and the error returned
// for the caller to surface.
func (s *Store) ToggleCompleted(ctx context.Context, id string) error {
	s.mu.Lock()
	index := s.indexOf(id)
	if index < 0 {
		s.mu.Unlock()
		return errors.New("unknown task: " + id)
	}
	completed := !s.tasks[index].Completed
	s.tasks[index].Completed = completed
	s.mu.Unlock()

	updated, err := s.client.UpdateTask(ctx, id, dto.UpdateTaskRequest{Completed: &completed})
	if err != nil {
		s.mu.Lock()
		if index := s.indexOf(id); index >= 0 {
			s.tasks[index].Completed = !completed
		}
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	if index := s.indexOf(id); index >= 0 {
		s.tasks[index] = updated
	}
	s.mu.Unlock()
	return nil
}

// Delete asks for confirmation before issuing the call. A declined
// confirmation leaves the snapshot and the server untouched.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	index := s.indexOf(id)
	if index < 0 {
		s.mu.Unlock()
		return errors.New("unknown task: " + id)
	}
	task := s.tasks[index]
	s.mu.Unlock()

	if s.confirmDelete != nil && !s.confirmDelete(task) {
		return ErrDeleteNotConfirmed
	}

	if err := s.client.DeleteTask(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	if index := s.indexOf(id); index >= 0 {
		s.tasks = append(s.tasks[:index], s.tasks[index+1:]...)
	}
	s.mu.Unlock()
	return nil
}

// SetDraft stages the create form state.
func (s *Store) SetDraft(draft dto.CreateTaskRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = draft
}

func (s *Store) Draft() dto.CreateTaskRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

func (s *Store) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

// SubmitDraft sends the staged create request. The draft is cleared only
// after a confirmed successful response; on failure it stays intact and
// the envelope's message is returned verbatim through the error.
func (s *Store) SubmitDraft(ctx context.Context) (dto.TaskResponse, error) {
	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return dto.TaskResponse{}, errors.New("submit already in progress")
	}
	s.submitting = true
	draft := s.draft
	s.mu.Unlock()

	created, err := s.client.CreateTask(ctx, draft)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false
	if err != nil {
		return dto.TaskResponse{}, err
	}

	s.draft = dto.CreateTaskRequest{}
	s.tasks = append(s.tasks, created)
	return created, nil
}

// caller must hold s.mu
func (s *Store) indexOf(id string) int {
	for i, task := range s.tasks {
		if task.ID == id {
			return i
		}
	}
	return -1
}
