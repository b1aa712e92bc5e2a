package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTelegramSender_SendText(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sender := &TelegramSender{token: "test-token", baseURL: srv.URL, client: srv.Client()}

	if err := sender.SendText(context.Background(), 42, "hello"); err != nil {
		t.Fatalf("send: %v", err)
	}

	if gotPath != "/bottest-token/sendMessage" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotBody["chat_id"].(float64) != 42 || gotBody["text"] != "hello" {
		t.Fatalf("unexpected body %+v", gotBody)
	}
}

func TestTelegramSender_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	sender := &TelegramSender{token: "t", baseURL: srv.URL, client: srv.Client()}

	if err := sender.SendText(context.Background(), 42, "hello"); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}
