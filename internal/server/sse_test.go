package server_test

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shahar-caura/glutenguard/internal/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSSEHubBroadcast(t *testing.T) {
	hub := server.NewSSEHub(slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect two SSE clients.
	bodies := make([]string, 2)
	done := make(chan int, 2)

	for i := range 2 {
		req := httptest.NewRequest("GET", "/api/events", nil)
		rec := &flushRecorder{ResponseRecorder: httptest.NewRecorder()}

		go func() {
			// This blocks until context is cancelled.
			hub.ServeHTTP(rec, req.WithContext(ctx))
			bodies[i] = rec.Body.String()
			done <- i
		}()
	}

	require.Eventually(t, func() bool { return hub.Clients() == 2 }, 2*time.Second, 10*time.Millisecond)

	hub.Publish("favorites", map[string]string{"action": "added", "barcode": "5000159484695"})

	// Give the clients time to write the event.
	time.Sleep(100 * time.Millisecond)
	cancel()

	for range 2 {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("timeout waiting for SSE clients to finish")
		}
	}

	for i, body := range bodies {
		assert.True(t, strings.Contains(body, "event: favorites\ndata: "),
			"client %d did not receive event: %s", i, body)
		assert.Contains(t, body, `"barcode":"5000159484695"`)
	}
	assert.Equal(t, 0, hub.Clients())
}

func TestSSEHubPublishWithoutClients(t *testing.T) {
	hub := server.NewSSEHub(nil)
	assert.NotPanics(t, func() { hub.Publish("check", map[string]int{"n": 1}) })
}

// flushRecorder wraps httptest.ResponseRecorder to implement http.Flusher.
type flushRecorder struct {
	*httptest.ResponseRecorder
}

func (f *flushRecorder) Flush() {
	// no-op for testing; data is already in the buffer.
}
