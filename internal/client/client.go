// Package client talks to a running medboard server.
package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/medboard/internal/services"
)

var ErrServerUnreachable = errors.New("server unreachable")

// RemoteError is an {"error": ...} reply from the server.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (err *RemoteError) Error() string {
	return fmt.Sprintf("server error (%d): %s", err.StatusCode, err.Message)
}

type Client struct {
	baseURL string
	timeout time.Duration
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		timeout: timeout,
	}
}

func (client *Client) Diagnose(ctx context.Context, query string) (services.Answer, error) {
	return client.postQuery(ctx, "/api/diagnose", query)
}

func (client *Client) PatientQuery(ctx context.Context, query string) (services.Answer, error) {
	return client.postQuery(ctx, "/api/patient-query", query)
}

type queryPayload struct {
	Query string `json:"query"`
}

type answerPayload struct {
	Answer     string   `json:"answer"`
	Source     string   `json:"source"`
	Conditions []string `json:"conditions"`
	Error      string   `json:"error"`
}

type postResult struct {
	status  int
	body    []byte
	payload answerPayload
	errs    []error
}

func (client *Client) postQuery(ctx context.Context, path string, query string) (services.Answer, error) {
	timeout, err := client.requestTimeout(ctx)
	if err != nil {
		return services.Answer{}, err
	}

	done := make(chan postResult, 1)
	go func() {
		agent := fiber.Post(client.baseURL + path)
		agent.JSON(queryPayload{Query: query})
		agent.Timeout(timeout)

		result := postResult{}
		result.status, result.body, result.errs = agent.Struct(&result.payload)
		done <- result
	}()

	var result postResult
	select {
	case <-ctx.Done():
		return services.Answer{}, ctx.Err()
	case result = <-done:
	}

	if result.status == 0 {
		return services.Answer{}, fmt.Errorf("%w: %v", ErrServerUnreachable, errors.Join(result.errs...))
	}
	if result.payload.Error != "" {
		return services.Answer{}, &RemoteError{StatusCode: result.status, Message: result.payload.Error}
	}
	if len(result.errs) > 0 || result.status >= fiber.StatusBadRequest {
		return services.Answer{}, &RemoteError{StatusCode: result.status, Message: strings.TrimSpace(string(result.body))}
	}

	return services.Answer{
		Source:     result.payload.Source,
		Text:       result.payload.Answer,
		Conditions: result.payload.Conditions,
	}, nil
}

func (client *Client) requestTimeout(ctx context.Context) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	timeout := client.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); timeout <= 0 || remaining < timeout {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		return 0, context.DeadlineExceeded
	}
	return timeout, nil
}
