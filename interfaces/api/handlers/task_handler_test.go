package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"taskmanager-api/application/serviceimpl"
	"taskmanager-api/domain/dto"
	"taskmanager-api/infrastructure/memory"
	"taskmanager-api/interfaces/api/handlers"
	"taskmanager-api/interfaces/api/middleware"
	"taskmanager-api/interfaces/api/routes"
	"taskmanager-api/pkg/errs"
)

func newTestApp() *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(false),
	})

	repo := memory.NewTaskRepository()
	h := handlers.NewHandlers(&handlers.Services{
		TaskService:  serviceimpl.NewTaskService(repo),
		DatabasePing: func(context.Context) error { return nil },
	})
	routes.SetupRoutes(app, h)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, raw
}

func createTask(t *testing.T, app *fiber.App, body map[string]any) dto.TaskResponse {
	t.Helper()
	resp, raw := doJSON(t, app, http.MethodPost, "/api/tasks", body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", resp.StatusCode, raw)
	}
	var result struct {
		Data dto.TaskResponse `json:"data"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatalf("unmarshal create response: %v", err)
	}
	return result.Data
}

func TestCreateTaskEndpoint(t *testing.T) {
	app := newTestApp()

	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
	task := createTask(t, app, map[string]any{
		"title":    "  Ship the release  ",
		"priority": "high",
		"dueDate":  tomorrow,
	})

	if task.Title != "Ship the release" {
		t.Errorf("Title = %q, want trimmed", task.Title)
	}
	if task.Priority != "high" || task.Completed {
		t.Errorf("unexpected task: %+v", task)
	}
	if task.Status != "Pending" {
		t.Errorf("Status = %q, want Pending", task.Status)
	}
	if task.DaysUntilDue == nil {
		t.Error("expected daysUntilDue for a dated task")
	}
	if task.ID == "" {
		t.Error("expected a server-assigned id")
	}
}

// One bad request must report every field violation at once.
func TestCreateTaskCollectsAllViolations(t *testing.T) {
	app := newTestApp()

	resp, raw := doJSON(t, app, http.MethodPost, "/api/tasks", map[string]any{
		"title":       "",
		"description": strings.Repeat("A", 1001),
		"priority":    "bogus",
		"dueDate":     "2020-01-01",
	})

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	var envelope errs.Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if envelope.Error != "Validation failed" {
		t.Errorf("error = %q", envelope.Error)
	}
	if envelope.Details.Type != errs.KindValidation {
		t.Errorf("details.type = %q, want ValidationError", envelope.Details.Type)
	}
	if len(envelope.Details.ValidationErrors) < 4 {
		t.Fatalf("violations = %d, want at least 4: %+v",
			len(envelope.Details.ValidationErrors), envelope.Details.ValidationErrors)
	}

	seen := map[string]bool{}
	for _, violation := range envelope.Details.ValidationErrors {
		seen[violation.Field] = true
	}
	for _, field := range []string{"title", "description", "priority", "dueDate"} {
		if !seen[field] {
			t.Errorf("missing violation for %s", field)
		}
	}
}

func TestGetTaskMalformedID(t *testing.T) {
	app := newTestApp()

	resp, raw := doJSON(t, app, http.MethodGet, "/api/tasks/not-a-valid-id", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	var envelope errs.Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if envelope.Details.Type != errs.KindCast {
		t.Errorf("details.type = %q, want CastError", envelope.Details.Type)
	}
	if !strings.Contains(envelope.Details.Message, "not-a-valid-id") {
		t.Errorf("details.message = %q, want it to name the bad id", envelope.Details.Message)
	}
}

func TestGetTaskNotFound(t *testing.T) {
	app := newTestApp()

	// well-formed hex id with no matching record
	resp, raw := doJSON(t, app, http.MethodGet, "/api/tasks/507f1f77bcf86cd799439011", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}

	var envelope errs.Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if envelope.Details.Type != errs.KindNotFound {
		t.Errorf("details.type = %q, want NotFoundError", envelope.Details.Type)
	}
}

func TestListTasksPriorityFilter(t *testing.T) {
	app := newTestApp()

	createTask(t, app, map[string]any{"title": "one", "priority": "high"})
	createTask(t, app, map[string]any{"title": "two", "priority": "low"})
	createTask(t, app, map[string]any{"title": "three", "priority": "medium"})
	createTask(t, app, map[string]any{"title": "four", "priority": "high"})

	resp, raw := doJSON(t, app, http.MethodGet, "/api/tasks?priority=high", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, raw)
	}

	var result struct {
		Success bool               `json:"success"`
		Count   int                `json:"count"`
		Data    []dto.TaskResponse `json:"data"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatalf("unmarshal list: %v", err)
	}
	if !result.Success || result.Count != 2 || len(result.Data) != 2 {
		t.Fatalf("count = %d, want exactly the high-priority subset", result.Count)
	}
	for _, task := range result.Data {
		if task.Priority != "high" {
			t.Errorf("task %q has priority %q", task.Title, task.Priority)
		}
	}
}

// A present-but-malformed completed value filters for false instead of
// being ignored.
func TestListTasksCompletedCoercionQuirk(t *testing.T) {
	app := newTestApp()

	done := createTask(t, app, map[string]any{"title": "done"})
	createTask(t, app, map[string]any{"title": "open"})

	completed := true
	resp, raw := doJSON(t, app, http.MethodPut, "/api/tasks/"+done.ID, map[string]any{"completed": completed})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("toggle status = %d, body %s", resp.StatusCode, raw)
	}

	tests := []struct {
		query      string
		wantTitles []string
	}{
		{"?completed=true", []string{"done"}},
		{"?completed=false", []string{"open"}},
		{"?completed=garbage", []string{"open"}},
		{"", []string{"done", "open"}},
	}

	for _, tt := range tests {
		t.Run("completed"+tt.query, func(t *testing.T) {
			resp, raw := doJSON(t, app, http.MethodGet, "/api/tasks"+tt.query+stableSort(tt.query), nil)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			var result struct {
				Data []dto.TaskResponse `json:"data"`
			}
			if err := json.Unmarshal(raw, &result); err != nil {
				t.Fatalf("unmarshal list: %v", err)
			}
			if len(result.Data) != len(tt.wantTitles) {
				t.Fatalf("len = %d, want %d (%+v)", len(result.Data), len(tt.wantTitles), result.Data)
			}
			for i, want := range tt.wantTitles {
				if result.Data[i].Title != want {
					t.Errorf("data[%d].Title = %q, want %q", i, result.Data[i].Title, want)
				}
			}
		})
	}
}

// appends a deterministic sort to an existing query string
func stableSort(query string) string {
	if query == "" {
		return "?sortBy=title&sortOrder=asc"
	}
	return "&sortBy=title&sortOrder=asc"
}

func TestUpdateTaskPartialPatch(t *testing.T) {
	app := newTestApp()

	created := createTask(t, app, map[string]any{
		"title":       "keep title",
		"description": "keep description",
		"priority":    "low",
	})

	resp, raw := doJSON(t, app, http.MethodPut, "/api/tasks/"+created.ID, map[string]any{"completed": true})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, raw)
	}

	var result struct {
		Data dto.TaskResponse `json:"data"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatalf("unmarshal update: %v", err)
	}

	task := result.Data
	if !task.Completed {
		t.Error("Completed = false, want true")
	}
	if task.Title != "keep title" || task.Description != "keep description" || task.Priority != "low" {
		t.Errorf("untouched fields changed: %+v", task)
	}
	if task.Status != "Completed" {
		t.Errorf("Status = %q, want Completed", task.Status)
	}
}

func TestUpdateTaskEmptyTitleRejected(t *testing.T) {
	app := newTestApp()
	created := createTask(t, app, map[string]any{"title": "valid"})

	resp, raw := doJSON(t, app, http.MethodPut, "/api/tasks/"+created.ID, map[string]any{"title": "   "})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, body %s", resp.StatusCode, raw)
	}

	var envelope errs.Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if envelope.Details.Type != errs.KindValidation {
		t.Errorf("details.type = %q, want ValidationError", envelope.Details.Type)
	}
}

func TestDeleteTaskIdempotence(t *testing.T) {
	app := newTestApp()
	created := createTask(t, app, map[string]any{"title": "doomed"})

	resp, raw := doJSON(t, app, http.MethodDelete, "/api/tasks/"+created.ID, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("first delete status = %d", resp.StatusCode)
	}
	if len(raw) != 0 {
		t.Errorf("first delete body = %q, want empty", raw)
	}

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/tasks/"+created.ID, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", resp.StatusCode)
	}
}

func TestUnmatchedRouteListsKnownRoutes(t *testing.T) {
	app := newTestApp()

	resp, raw := doJSON(t, app, http.MethodGet, "/api/unknown", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}

	var envelope errs.Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if envelope.Error != "Route not found" {
		t.Errorf("error = %q", envelope.Error)
	}
	if len(envelope.Details.AvailableRoutes) == 0 {
		t.Error("expected the known routes to be listed")
	}
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp()

	resp, raw := doJSON(t, app, http.MethodGet, "/health", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var result struct {
		Status   string `json:"status"`
		Time     string `json:"time"`
		Database string `json:"database"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatalf("unmarshal health: %v", err)
	}
	if result.Status != "ok" || result.Database != "connected" || result.Time == "" {
		t.Errorf("health = %+v", result)
	}
}

func TestHealthReportsDisconnected(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(false)})
	h := handlers.NewHandlers(&handlers.Services{
		TaskService:  serviceimpl.NewTaskService(memory.NewTaskRepository()),
		DatabasePing: func(context.Context) error { return fmt.Errorf("connection refused") },
	})
	routes.SetupRoutes(app, h)

	resp, raw := doJSON(t, app, http.MethodGet, "/health", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var result struct {
		Database string `json:"database"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatalf("unmarshal health: %v", err)
	}
	if result.Database != "disconnected" {
		t.Errorf("database = %q, want disconnected", result.Database)
	}
}
