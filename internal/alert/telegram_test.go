package alert_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realtysync/provider-sync/internal/adapter"
	"github.com/realtysync/provider-sync/internal/alert"
)

func newTelegram(url string) alert.Notifier {
	return alert.NewTelegramNotifier(alert.TelegramConfig{
		APIURL:     url,
		BotToken:   "123456:secret",
		ChatID:     "-100",
		MaxElapsed: 5 * time.Second,
	}, adapter.NewHTTPClient(5*time.Second), adapter.NewJSON())
}

func TestTelegramNotifier_Notify(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/bot123456:secret/sendMessage", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":1}}`))
	}))
	defer server.Close()

	n := newTelegram(server.URL + "/")
	require.True(t, n.Configured())
	require.NoError(t, n.Notify(context.Background(), "hello"))

	assert.Equal(t, "-100", got["chat_id"])
	assert.Equal(t, "hello", got["text"])
	assert.Equal(t, true, got["disable_web_page_preview"])
}

func TestTelegramNotifier_RetriesTooManyRequests(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"ok":false,"description":"Too Many Requests: retry after 1"}`))
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	require.NoError(t, newTelegram(server.URL).Notify(context.Background(), "hello"))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestTelegramNotifier_RejectedIsNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"description":"Bad Request: chat not found"}`))
	}))
	defer server.Close()

	err := newTelegram(server.URL).Notify(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestTelegramNotifier_NotConfigured(t *testing.T) {
	n := alert.NewTelegramNotifier(alert.TelegramConfig{ChatID: "-100"}, adapter.NewHTTPClient(time.Second), adapter.NewJSON())

	assert.False(t, n.Configured())
	assert.Error(t, n.Notify(context.Background(), "hello"))
}
