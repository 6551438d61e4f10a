package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTelegramSend(t *testing.T) {
	var got telegramMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		json.NewEncoder(w).Encode(telegramResponse{OK: true})
	}))
	defer srv.Close()

	sink := NewTelegram(TelegramConfig{
		BotToken: "test-token",
		ChatID:   "-100123",
		APIURL:   srv.URL + "/bot%s/sendMessage",
	}, nil)

	if !sink.Enabled() {
		t.Fatalf("sink should be enabled with credentials")
	}
	if err := sink.Send(context.Background(), "<b>hello</b>"); err != nil {
		t.Fatalf("send: %v", err)
	}

	if got.ChatID != "-100123" {
		t.Fatalf("chat_id = %q", got.ChatID)
	}
	if got.Text != "<b>hello</b>" {
		t.Fatalf("text = %q", got.Text)
	}
	if got.ParseMode != "HTML" {
		t.Fatalf("parse_mode = %q, want HTML", got.ParseMode)
	}
}

func TestTelegramSendAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(telegramResponse{OK: false, ErrorCode: 400, Description: "Bad Request: chat not found"})
	}))
	defer srv.Close()

	sink := NewTelegram(TelegramConfig{
		BotToken: "test-token",
		ChatID:   "-100123",
		APIURL:   srv.URL + "/bot%s/sendMessage",
	}, nil)

	err := sink.Send(context.Background(), "hello")
	if err == nil {
		t.Fatalf("expected an error from a rejected message")
	}
}

func TestTelegramDisabledIsNoop(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Errorf("disabled sink must not reach the API")
	}))
	defer srv.Close()

	sink := NewTelegram(TelegramConfig{APIURL: srv.URL + "/bot%s/sendMessage"}, nil)
	if sink.Enabled() {
		t.Fatalf("sink without credentials should be disabled")
	}
	if err := sink.Send(context.Background(), "hello"); err != nil {
		t.Fatalf("disabled send should be a no-op, got %v", err)
	}
}
