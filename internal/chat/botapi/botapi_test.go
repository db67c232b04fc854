package botapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSend(t *testing.T) {
	var gotPath string
	var gotBody sendMessageRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		json.NewEncoder(w).Encode(apiResponse{OK: true})
	}))
	defer srv.Close()

	cli, err := New(srv.URL, "test-token")
	if err != nil {
		t.Fatal(err)
	}
	if err := cli.Send(context.Background(), 42, "привет"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if gotPath != "/bottest-token/sendMessage" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotBody.ChatID != 42 || gotBody.Text != "привет" {
		t.Fatalf("unexpected body %+v", gotBody)
	}
}

func TestSendAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(apiResponse{OK: false, Description: "bot was blocked by the user"})
	}))
	defer srv.Close()

	cli, err := New(srv.URL, "t")
	if err != nil {
		t.Fatal(err)
	}
	err = cli.Send(context.Background(), 7, "x")
	if err == nil || !strings.Contains(err.Error(), "blocked") {
		t.Fatalf("expected delivery error, got %v", err)
	}
}

func TestNewRequiresToken(t *testing.T) {
	if _, err := New("", ""); err == nil {
		t.Fatal("expected error for empty token")
	}
	cli, err := New("", "tok")
	if err != nil {
		t.Fatal(err)
	}
	if cli.baseURL != DefaultBaseURL {
		t.Fatalf("expected default base URL, got %q", cli.baseURL)
	}
}
