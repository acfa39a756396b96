// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreAnyFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreAnyFunction("net/http.(*persistConn).writeLoop"),
	)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClientWithConfig(&ClientConfig{
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
	})
}

// =============================================================================
// LIST RULEBOOKS TESTS
// =============================================================================

func TestListRulebooks_PreservesOrder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/rulebooks" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`["zeta.pdf", "alpha.pdf", "Rising_Sun_Rulebook.pdf"]`))
	})

	names, err := client.ListRulebooks(context.Background())
	if err != nil {
		t.Fatalf("ListRulebooks() error = %v", err)
	}

	want := []string{"zeta.pdf", "alpha.pdf", "Rising_Sun_Rulebook.pdf"}
	if len(names) != len(want) {
		t.Fatalf("ListRulebooks() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestListRulebooks_NullIsEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`null`))
	})

	names, err := client.ListRulebooks(context.Background())
	if err != nil {
		t.Fatalf("ListRulebooks() error = %v", err)
	}
	if names == nil || len(names) != 0 {
		t.Errorf("ListRulebooks() = %#v, want empty non-nil slice", names)
	}
}

func TestListRulebooks_RemoteError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("rulebooks dir unreadable"))
	})

	_, err := client.ListRulebooks(context.Background())
	if err == nil {
		t.Fatal("ListRulebooks() should fail on 500")
	}

	var re *RemoteError
	if !errors.As(err, &re) {
		t.Fatalf("error = %T, want *RemoteError", err)
	}
	if re.Status != http.StatusInternalServerError {
		t.Errorf("Status = %d, want 500", re.Status)
	}
	if re.Body != "rulebooks dir unreadable" {
		t.Errorf("Body = %q, want verbatim server text", re.Body)
	}
	if got := Message(err); got != "rulebooks dir unreadable" {
		t.Errorf("Message() = %q, want body only", got)
	}
}

func TestListRulebooks_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(url)
	_, err := client.ListRulebooks(context.Background())
	if !IsTransport(err) {
		t.Fatalf("error = %v, want TransportError", err)
	}
	if IsRemote(err) {
		t.Error("connection failure should not be a RemoteError")
	}
	if StatusCode(err) != 0 {
		t.Errorf("StatusCode() = %d, want 0", StatusCode(err))
	}
}

func TestListRulebooks_MalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "a list"`))
	})

	_, err := client.ListRulebooks(context.Background())
	if !IsTransport(err) {
		t.Fatalf("error = %v, want TransportError", err)
	}
}

// =============================================================================
// UPLOAD TESTS
// =============================================================================

func TestUploadRulebook_MultipartField(t *testing.T) {
	content := []byte("%PDF-1.7 fake rulebook")

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/rulebooks" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("FormFile(file) error = %v", err)
			return
		}
		defer file.Close()

		got, _ := io.ReadAll(file)
		if string(got) != string(content) {
			t.Errorf("uploaded content = %q, want %q", got, content)
		}
		if header.Filename != "My Rules.pdf" {
			t.Errorf("filename = %q, want 'My Rules.pdf'", header.Filename)
		}
		if len(r.MultipartForm.File) != 1 || len(r.MultipartForm.Value) != 0 {
			t.Errorf("form should carry exactly one field, got files=%d values=%d",
				len(r.MultipartForm.File), len(r.MultipartForm.Value))
		}
		w.Write([]byte(`{"filename": "my_rules.pdf"}`))
	})

	result, err := client.UploadRulebook(context.Background(), content, "My Rules.pdf")
	if err != nil {
		t.Fatalf("UploadRulebook() error = %v", err)
	}
	if result.Filename != "my_rules.pdf" {
		t.Errorf("Filename = %q, want backend-confirmed 'my_rules.pdf'", result.Filename)
	}
}

func TestUploadRulebook_NoFilename(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	result, err := client.UploadRulebook(context.Background(), []byte("x"), "x.pdf")
	if err != nil {
		t.Fatalf("UploadRulebook() error = %v", err)
	}
	if result.Filename != "" {
		t.Errorf("Filename = %q, want empty", result.Filename)
	}
}

func TestUploadRulebook_Rejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"Only PDF files are allowed"}`))
	})

	_, err := client.UploadRulebook(context.Background(), []byte("hello"), "notes.txt")
	if StatusCode(err) != http.StatusBadRequest {
		t.Fatalf("StatusCode() = %d, want 400 (err = %v)", StatusCode(err), err)
	}
	if !strings.Contains(Message(err), "Only PDF files are allowed") {
		t.Errorf("Message() = %q, want server body", Message(err))
	}
}

// =============================================================================
// CHAT TESTS
// =============================================================================

func TestSendChatMessage_OmitsEmptyRulebook(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		var raw map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			t.Errorf("decode body: %v", err)
			return
		}
		if _, ok := raw["rulebook"]; ok {
			t.Errorf("rulebook field should be absent, body = %v", raw)
		}
		if raw["message"] != "What is a Kami?" {
			t.Errorf("message = %v", raw["message"])
		}
		w.Write([]byte(`{"reply": "A shrine deity."}`))
	})

	reply, err := client.SendChatMessage(context.Background(), "What is a Kami?", "")
	if err != nil {
		t.Fatalf("SendChatMessage() error = %v", err)
	}
	if reply.Text != "A shrine deity." {
		t.Errorf("Text = %q", reply.Text)
	}
}

func TestSendChatMessage_SendsRulebook(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode body: %v", err)
			return
		}
		if req.Rulebook != "rising_sun.pdf" {
			t.Errorf("rulebook = %q, want rising_sun.pdf", req.Rulebook)
		}
		w.Write([]byte(`{"reply": "ok"}`))
	})

	if _, err := client.SendChatMessage(context.Background(), "hi", "rising_sun.pdf"); err != nil {
		t.Fatalf("SendChatMessage() error = %v", err)
	}
}

func TestSendChatMessage_MissingReplyIsEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"something_else": 1}`))
	})

	reply, err := client.SendChatMessage(context.Background(), "hi", "")
	if err != nil {
		t.Fatalf("missing reply should not fail, got %v", err)
	}
	if reply.Text != "" {
		t.Errorf("Text = %q, want empty", reply.Text)
	}
}

func TestSendChatMessage_RemoteError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Gemini error: quota"))
	})

	_, err := client.SendChatMessage(context.Background(), "hi", "")
	if !IsRemote(err) {
		t.Fatalf("error = %v, want RemoteError", err)
	}
}

func TestSendChatMessage_ContextCancelled(t *testing.T) {
	release := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.SendChatMessage(ctx, "hi", "")
	if !IsTransport(err) {
		t.Fatalf("error = %v, want TransportError", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error should wrap context.DeadlineExceeded, got %v", err)
	}
}

// =============================================================================
// HEALTH TESTS
// =============================================================================

func TestHealth(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr bool
	}{
		{"ok", http.StatusOK, `{"status":"ok"}`, false},
		{"degraded", http.StatusOK, `{"status":"starting"}`, true},
		{"down", http.StatusServiceUnavailable, `down`, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/health" {
					t.Errorf("path = %q", r.URL.Path)
				}
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			})

			_, err := client.Health(context.Background())
			if (err != nil) != tc.wantErr {
				t.Errorf("Health() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

// =============================================================================
// ERROR FORMATTING TESTS
// =============================================================================

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"remote with body", &RemoteError{Op: OpSendChat, Status: 404, Body: "no such rulebook\n"}, "404 Not Found: no such rulebook"},
		{"list body only", &RemoteError{Op: OpListRulebooks, Status: 500, Body: "boom"}, "boom"},
		{"upload body only", &RemoteError{Op: OpUploadRulebook, Status: 400, Body: "Only PDF files are supported"}, "Only PDF files are supported"},
		{"upload empty body", &RemoteError{Op: OpUploadRulebook, Status: 413}, "413 Request Entity Too Large"},
		{"remote empty body", &RemoteError{Status: 502}, "502 Bad Gateway"},
		{"remote unknown status", &RemoteError{Status: 599, Body: "odd"}, "599: odd"},
		{"transport", &TransportError{Op: "list rulebooks", Cause: errors.New("connection refused")}, "list rulebooks: connection refused"},
		{"wrapped remote", errors.Join(errors.New("refresh"), &RemoteError{Status: 500, Body: "x"}), "500 Internal Server Error: x"},
		{"plain", errors.New("boom"), "boom"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Message(tc.err); got != tc.want {
				t.Errorf("Message() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	client := NewClient("http://example.test:8000/")
	if client.BaseURL() != "http://example.test:8000" {
		t.Errorf("BaseURL() = %q", client.BaseURL())
	}
	if NewClient("").BaseURL() != "http://127.0.0.1:8000" {
		t.Errorf("empty base URL should fall back to default, got %q", NewClient("").BaseURL())
	}
}

func TestNewClient_NoClientTimeout(t *testing.T) {
	client := NewClientWithConfig(&ClientConfig{BaseURL: "http://example.test"})
	if client.httpClient.Timeout != 0 {
		t.Errorf("http.Client.Timeout = %v, want 0 (requests are bounded by ctx only)", client.httpClient.Timeout)
	}
}
