package middleware

import (
	"io"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/koperasi-tentera/authapi/internal/logging"
)

func setupTestApp(t *testing.T) (*fiber.App, *atomic.Int64, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}

	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	app := fiber.New()
	app.Use(Idempotency(cache, time.Minute, logging.Discard()))

	var calls atomic.Int64
	app.Post("/register", func(c *fiber.Ctx) error {
		n := calls.Add(1)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"call": n})
	})

	cleanup := func() {
		cache.Close()
		mr.Close()
	}
	return app, &calls, cleanup
}

func postRegister(t *testing.T, app *fiber.App, key string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, "/register", strings.NewReader("{}"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func TestIdempotencyPassthroughWithoutHeader(t *testing.T) {
	app, calls, cleanup := setupTestApp(t)
	defer cleanup()

	postRegister(t, app, "")
	postRegister(t, app, "")

	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 handler calls without header, got %d", got)
	}
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	app, calls, cleanup := setupTestApp(t)
	defer cleanup()

	status1, body1 := postRegister(t, app, "key-1")
	status2, body2 := postRegister(t, app, "key-1")

	if status1 != fiber.StatusOK || status2 != fiber.StatusOK {
		t.Fatalf("unexpected statuses %d, %d", status1, status2)
	}
	if body1 != body2 {
		t.Fatalf("replayed body differs: %q vs %q", body1, body2)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected handler to run once, got %d", got)
	}
}

func TestIdempotencyDistinctKeys(t *testing.T) {
	app, calls, cleanup := setupTestApp(t)
	defer cleanup()

	_, body1 := postRegister(t, app, "key-a")
	_, body2 := postRegister(t, app, "key-b")

	if body1 == body2 {
		t.Fatalf("distinct keys must not share responses")
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 handler calls, got %d", got)
	}
}
