package client

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/medboard/internal/services"
)

func startTestServer(t *testing.T, register func(app *fiber.App)) string {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	register(app)
	go func() {
		_ = app.Listener(listener)
	}()
	t.Cleanup(func() {
		_ = app.Shutdown()
	})

	return "http://" + listener.Addr().String()
}

func closedPortURL(t *testing.T) string {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	address := listener.Addr().String()
	require.NoError(t, listener.Close())
	return "http://" + address
}

func TestDiagnoseDecodesAnswer(t *testing.T) {
	received := make(chan string, 1)
	baseURL := startTestServer(t, func(app *fiber.App) {
		app.Post("/api/diagnose", func(c *fiber.Ctx) error {
			payload := queryPayload{}
			if err := c.BodyParser(&payload); err != nil {
				return err
			}
			received <- payload.Query
			return c.JSON(fiber.Map{"answer": "Possibly a sprain.", "source": "remote"})
		})
	})

	answer, err := New(baseURL+"/", time.Second).Diagnose(context.Background(), "swollen ankle")
	require.NoError(t, err)
	assert.Equal(t, services.Answer{Source: "remote", Text: "Possibly a sprain."}, answer)
	assert.Equal(t, "swollen ankle", <-received)
}

func TestPatientQueryReturnsRemoteError(t *testing.T) {
	baseURL := startTestServer(t, func(app *fiber.App) {
		app.Post("/api/patient-query", func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "remote assistant is not configured"})
		})
	})

	_, err := New(baseURL, time.Second).PatientQuery(context.Background(), "how many?")

	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, fiber.StatusServiceUnavailable, remoteErr.StatusCode)
	assert.Equal(t, "remote assistant is not configured", remoteErr.Message)
	assert.False(t, errors.Is(err, ErrServerUnreachable))
}

func TestDiagnoseNonJSONFailure(t *testing.T) {
	baseURL := startTestServer(t, func(app *fiber.App) {
		app.Post("/api/diagnose", func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusBadGateway).SendString("upstream down")
		})
	})

	_, err := New(baseURL, time.Second).Diagnose(context.Background(), "x")

	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, fiber.StatusBadGateway, remoteErr.StatusCode)
	assert.Equal(t, "upstream down", remoteErr.Message)
}

func TestDiagnoseUnreachableServer(t *testing.T) {
	_, err := New(closedPortURL(t), time.Second).Diagnose(context.Background(), "x")
	assert.ErrorIs(t, err, ErrServerUnreachable)
}

func TestDiagnoseCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(closedPortURL(t), time.Second).Diagnose(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRequestTimeoutUsesEarlierDeadline(t *testing.T) {
	client := New("http://example.invalid", time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	timeout, err := client.requestTimeout(ctx)
	require.NoError(t, err)
	assert.LessOrEqual(t, timeout, 5*time.Second)

	timeout, err = client.requestTimeout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, time.Minute, timeout)
}
