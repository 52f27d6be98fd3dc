package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"taskmanager-api/domain/dto"
	"taskmanager-api/pkg/errs"
)

// Client is the HTTP half of the sync layer: thin calls against the task
// API that surface the server's error envelope verbatim.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

// APIError carries the server's error envelope. Error() returns the
// envelope's short message unchanged so callers can show it as-is.
type APIError struct {
	Status   int
	Envelope errs.Envelope
}

func (e *APIError) Error() string {
	if e.Envelope.Error != "" {
		return e.Envelope.Error
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// ListFilters mirrors the list query parameters. Completed is a pointer so
// the key can be omitted entirely.
type ListFilters struct {
	Completed *string
	Priority  string
	SortBy    string
	SortOrder string
}

func (f ListFilters) encode() string {
	values := url.Values{}
	if f.Completed != nil {
		values.Set("completed", *f.Completed)
	}
	if f.Priority != "" {
		values.Set("priority", f.Priority)
	}
	if f.SortBy != "" {
		values.Set("sortBy", f.SortBy)
	}
	if f.SortOrder != "" {
		values.Set("sortOrder", f.SortOrder)
	}
	return values.Encode()
}

type listEnvelope struct {
	Success bool               `json:"success"`
	Count   int                `json:"count"`
	Data    []dto.TaskResponse `json:"data"`
}

type taskEnvelope struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    dto.TaskResponse `json:"data"`
}

func (c *Client) ListTasks(ctx context.Context, filters ListFilters) ([]dto.TaskResponse, error) {
	endpoint := c.baseURL + "/api/tasks"
	if query := filters.encode(); query != "" {
		endpoint += "?" + query
	}

	var result listEnvelope
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

func (c *Client) GetTask(ctx context.Context, id string) (dto.TaskResponse, error) {
	var result taskEnvelope
	err := c.do(ctx, http.MethodGet, c.baseURL+"/api/tasks/"+id, nil, &result)
	return result.Data, err
}

func (c *Client) CreateTask(ctx context.Context, req dto.CreateTaskRequest) (dto.TaskResponse, error) {
	var result taskEnvelope
	err := c.do(ctx, http.MethodPost, c.baseURL+"/api/tasks", req, &result)
	return result.Data, err
}

func (c *Client) UpdateTask(ctx context.Context, id string, req dto.UpdateTaskRequest) (dto.TaskResponse, error) {
	var result taskEnvelope
	err := c.do(ctx, http.MethodPut, c.baseURL+"/api/tasks/"+id, req, &result)
	return result.Data, err
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.baseURL+"/api/tasks/"+id, nil, nil)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, result any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		// a non-envelope body still yields a usable status-based error
		_ = json.NewDecoder(resp.Body).Decode(&apiErr.Envelope)
		return apiErr
	}

	if result == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(result)
}
