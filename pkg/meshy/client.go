// Package meshy wraps the external 3D generation provider's HTTP API: task
// creation for the text-to-3d pipeline (preview and refine stages) and
// image-to-3d, status reads, and a bounded poll loop.
package meshy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	TaskTypeTextTo3D  = "text-to-3d"
	TaskTypeImageTo3D = "image-to-3d"
)

// Provider-side task statuses.
const (
	StatusPending    = "PENDING"
	StatusInProgress = "IN_PROGRESS"
	StatusSucceeded  = "SUCCEEDED"
	StatusFailed     = "FAILED"
)

const (
	defaultTransientInterval = 3 * time.Second
	defaultErrorInterval     = 5 * time.Second
	defaultMaxAttempts       = 20
)

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client

	// Poll tuning, overridable in tests.
	TransientInterval time.Duration
	ErrorInterval     time.Duration
	MaxAttempts       int
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:           baseURL,
		apiKey:            apiKey,
		http:              &http.Client{Timeout: 30 * time.Second},
		TransientInterval: defaultTransientInterval,
		ErrorInterval:     defaultErrorInterval,
		MaxAttempts:       defaultMaxAttempts,
	}
}

// APIError is a non-2xx response from the provider.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("meshy api error: %d - %s", e.StatusCode, e.Body)
}

// ErrPollTimeout reports that a task stayed non-terminal for the whole
// polling budget.
type ErrPollTimeout struct {
	TaskId   string
	Attempts int
}

func (e *ErrPollTimeout) Error() string {
	return fmt.Sprintf("polling timeout: task %s did not complete within %d attempts", e.TaskId, e.Attempts)
}

type ModelUrls struct {
	GLB string `json:"glb,omitempty"`
	FBX string `json:"fbx,omitempty"`
	OBJ string `json:"obj,omitempty"`
}

// Task is the provider's view of a generation job. Result fields stay empty
// until the task reaches a terminal status.
type Task struct {
	Id           string    `json:"id"`
	Status       string    `json:"status"`
	Progress     int       `json:"progress"`
	ModelUrls    ModelUrls `json:"model_urls"`
	ThumbnailUrl string    `json:"thumbnail_url"`
	TaskError    *struct {
		Message string `json:"message"`
	} `json:"task_error,omitempty"`
}

// Terminal reports whether the task has finished, successfully or not.
func (t *Task) Terminal() bool {
	return t.Status == StatusSucceeded || t.Status == StatusFailed
}

type createResponse struct {
	Result string `json:"result"`
}

// CreatePreviewTask starts the untextured mesh stage of the text-to-3d
// pipeline and returns the provider task id.
func (c *Client) CreatePreviewTask(ctx context.Context, prompt string) (string, error) {
	body := map[string]interface{}{
		"mode":      "preview",
		"prompt":    prompt,
		"art_style": "realistic",
		"topology":  "quad",
	}
	return c.createTask(ctx, "/openapi/v2/text-to-3d", body)
}

// CreateRefineTask starts texturing for a finished preview task.
func (c *Client) CreateRefineTask(ctx context.Context, previewTaskId string) (string, error) {
	body := map[string]interface{}{
		"mode":            "refine",
		"preview_task_id": previewTaskId,
		"enable_pbr":      true,
	}
	return c.createTask(ctx, "/openapi/v2/text-to-3d", body)
}

// CreateImageTask starts an image-to-3d generation from a hosted image URL.
func (c *Client) CreateImageTask(ctx context.Context, imageUrl string) (string, error) {
	body := map[string]interface{}{
		"image_url": imageUrl,
	}
	return c.createTask(ctx, "/openapi/v1/image-to-3d", body)
}

func (c *Client) createTask(ctx context.Context, path string, body map[string]interface{}) (string, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var created createResponse
	if err := json.Unmarshal(raw, &created); err != nil {
		return "", fmt.Errorf("malformed create response: %w", err)
	}
	if created.Result == "" {
		return "", fmt.Errorf("no task id in create response: %s", string(raw))
	}

	return created.Result, nil
}

// GetTask reads the current status of a task.
func (c *Client) GetTask(ctx context.Context, taskType, taskId string) (*Task, error) {
	path, err := statusPath(taskType, taskId)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var task Task
	if err := json.Unmarshal(raw, &task); err != nil {
		return nil, fmt.Errorf("malformed status response: %w", err)
	}

	return &task, nil
}

// PollUntilTerminal repeatedly reads a task until it finishes: 3s between
// non-terminal statuses, 5s after a transport error, giving up after
// MaxAttempts reads with ErrPollTimeout. Polling is advisory and idempotent;
// it never mutates provider state.
func (c *Client) PollUntilTerminal(ctx context.Context, taskType, taskId string) (*Task, error) {
	var lastErr error

	for attempt := 0; attempt < c.MaxAttempts; attempt++ {
		task, err := c.GetTask(ctx, taskType, taskId)
		if err != nil {
			lastErr = err
			if waitErr := sleepCtx(ctx, c.ErrorInterval); waitErr != nil {
				return nil, waitErr
			}
			continue
		}

		if task.Terminal() {
			return task, nil
		}

		lastErr = nil
		if waitErr := sleepCtx(ctx, c.TransientInterval); waitErr != nil {
			return nil, waitErr
		}
	}

	if lastErr != nil {
		return nil, fmt.Errorf("polling gave up after %d attempts: %w", c.MaxAttempts, lastErr)
	}
	return nil, &ErrPollTimeout{TaskId: taskId, Attempts: c.MaxAttempts}
}

func statusPath(taskType, taskId string) (string, error) {
	switch taskType {
	case TaskTypeTextTo3D:
		return "/openapi/v2/text-to-3d/" + taskId, nil
	case TaskTypeImageTo3D:
		return "/openapi/v1/image-to-3d/" + taskId, nil
	default:
		return "", fmt.Errorf("unknown task type: %s", taskType)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
