//go:build !gcloud

package taskqueue

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/KasumiMercury/primind-event-reminder/internal/observability/logging"
	"github.com/KasumiMercury/primind-event-reminder/internal/observability/tracing"
)

type PrimindTasksClient struct {
	baseURL       string
	queueName     string
	targetURL     string
	callbackToken string
	httpClient    *http.Client
	maxRetries    int
}

func NewPrimindTasksClient(baseURL, queueName, targetURL string, maxRetries int) *PrimindTasksClient {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	return &PrimindTasksClient{
		baseURL:   baseURL,
		queueName: queueName,
		targetURL: targetURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		maxRetries: maxRetries,
	}
}

// WithCallbackToken makes every registered task carry token in
// CallbackTokenHeader when it calls back.
func (c *PrimindTasksClient) WithCallbackToken(token string) *PrimindTasksClient {
	c.callbackToken = token
	return c
}

func (c *PrimindTasksClient) tasksURL() string {
	if c.queueName != "" && c.queueName != "default" {
		return fmt.Sprintf("%s/tasks/%s", c.baseURL, c.queueName)
	}
	return fmt.Sprintf("%s/tasks", c.baseURL)
}

func (c *PrimindTasksClient) RegisterNotification(ctx context.Context, task *NotificationTask) (*TaskResponse, error) {
	if err := validateTaskID(task.NotificationID); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(task)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal notification task: %w", err)
	}

	headers := map[string]string{
		"Content-Type": "application/json",
	}
	if c.callbackToken != "" {
		headers[CallbackTokenHeader] = c.callbackToken
	}

	primindReq := PrimindTaskRequest{
		Task: PrimindTask{
			Name: task.NotificationID,
			HTTPRequest: PrimindHTTPRequest{
				URL:     c.targetURL,
				Body:    base64.StdEncoding.EncodeToString(payload),
				Headers: headers,
			},
		},
	}

	if !task.ScheduleAt.IsZero() {
		primindReq.Task.ScheduleTime = task.ScheduleAt.UTC().Format(time.RFC3339)
	}

	reqBody, err := json.Marshal(primindReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal primind request: %w", err)
	}

	var resp *TaskResponse
	err = retry(ctx, c.maxRetries, "task registration", []slog.Attr{
		slog.String("notification_id", task.NotificationID),
		slog.String("user_id", task.UserID),
	}, func() error {
		r, err := c.doRegister(ctx, reqBody, task)
		if err != nil {
			return err
		}
		resp = r
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register task after %d retries: %w", c.maxRetries, err)
	}

	return resp, nil
}

func (c *PrimindTasksClient) doRegister(ctx context.Context, reqBody []byte, task *NotificationTask) (*TaskResponse, error) {
	endpoint := c.tasksURL()
	notificationID, userID := task.NotificationID, task.UserID

	slog.DebugContext(ctx, "registering notification to Primind Tasks",
		slog.String("url", endpoint),
		slog.String("notification_id", notificationID),
		slog.String("user_id", userID),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.decorate(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.WarnContext(ctx, "failed to send request to Primind Tasks",
			slog.String("notification_id", notificationID),
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
	case resp.StatusCode == http.StatusConflict:
		// An earlier attempt registered the task and its response was lost.
		slog.InfoContext(ctx, "notification task already registered to Primind Tasks",
			slog.String("notification_id", notificationID),
			slog.String("user_id", userID),
		)
		return &TaskResponse{
			Name:         notificationID,
			ScheduleTime: task.ScheduleAt,
		}, nil
	default:
		slog.WarnContext(ctx, "unexpected status code from Primind Tasks",
			slog.String("notification_id", notificationID),
			slog.String("user_id", userID),
			slog.Int("status_code", resp.StatusCode),
		)
		return nil, classifyStatus(resp.StatusCode)
	}

	var primindResp PrimindTaskResponse
	if err := json.NewDecoder(resp.Body).Decode(&primindResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	scheduleTime, _ := time.Parse(time.RFC3339, primindResp.ScheduleTime)
	createTime, _ := time.Parse(time.RFC3339, primindResp.CreateTime)

	slog.InfoContext(ctx, "notification task registered to Primind Tasks",
		slog.String("task_name", primindResp.Name),
		slog.String("notification_id", notificationID),
		slog.String("user_id", userID),
	)

	return &TaskResponse{
		Name:         primindResp.Name,
		ScheduleTime: scheduleTime,
		CreateTime:   createTime,
	}, nil
}

func (c *PrimindTasksClient) DeleteTask(ctx context.Context, taskID string) error {
	if err := validateTaskID(taskID); err != nil {
		return err
	}

	err := retry(ctx, c.maxRetries, "task deletion", []slog.Attr{
		slog.String("task_id", taskID),
	}, func() error {
		return c.doDelete(ctx, taskID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete task after %d retries: %w", c.maxRetries, err)
	}

	return nil
}

func (c *PrimindTasksClient) doDelete(ctx context.Context, taskID string) error {
	queue := c.queueName
	if queue == "" {
		queue = "default"
	}
	endpoint := fmt.Sprintf("%s/tasks/%s/%s", c.baseURL, queue, url.PathEscape(taskID))

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.decorate(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.WarnContext(ctx, "failed to send delete request to Primind Tasks",
			slog.String("task_id", taskID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		slog.InfoContext(ctx, "task deleted from Primind Tasks",
			slog.String("task_id", taskID),
		)
		return nil
	case http.StatusNotFound:
		slog.InfoContext(ctx, "task not found in Primind Tasks (may have fired or been cancelled)",
			slog.String("task_id", taskID),
		)
		return nil
	default:
		slog.WarnContext(ctx, "unexpected status code when deleting task",
			slog.String("task_id", taskID),
			slog.Int("status_code", resp.StatusCode),
		)
		return classifyStatus(resp.StatusCode)
	}
}

// classifyStatus turns an unexpected response code into an error. Client
// errors other than 408 and 429 are not retried.
func classifyStatus(code int) error {
	err := fmt.Errorf("unexpected status code: %d", code)
	if code >= 400 && code < 500 && code != http.StatusRequestTimeout && code != http.StatusTooManyRequests {
		return permanent(err)
	}
	return err
}

func (c *PrimindTasksClient) decorate(ctx context.Context, req *http.Request) {
	req.Header.Set("x-request-id", logging.ValidateAndExtractRequestID(logging.RequestIDFromContext(ctx)))
	tracing.InjectToHTTPRequest(ctx, req)
}
