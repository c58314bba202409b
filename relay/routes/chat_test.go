package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"relay/relay/auth"
	"relay/relay/controllers"
	"relay/relay/services/agent"
	"relay/relay/types"
)

type fakeVerifier struct {
	ident *auth.Identity
	err   error
}

func (f *fakeVerifier) Verify(ctx context.Context, token string) (*auth.Identity, error) {
	return f.ident, f.err
}

type fakeStream struct{ ch chan []byte }

func (s *fakeStream) Chunks() <-chan []byte { return s.ch }

func (s *fakeStream) Err() error { return nil }

func (s *fakeStream) Close() error { return nil }

type fakeInvoker struct {
	reply    string
	err      error
	calls    int
	sessions []string
}

func (f *fakeInvoker) InvokeAgent(ctx context.Context, sessionID, inputText string) (agent.Stream, error) {
	f.calls++
	f.sessions = append(f.sessions, sessionID)
	if f.err != nil {
		return nil, f.err
	}
	s := &fakeStream{ch: make(chan []byte, 1)}
	if f.reply != "" {
		s.ch <- []byte(f.reply)
	}
	close(s.ch)
	return s, nil
}

func chatServer(t *testing.T, inv *fakeInvoker) *httptest.Server {
	t.Helper()
	verifier := &fakeVerifier{ident: &auth.Identity{
		Email:  "user@example.com",
		Sub:    "abc123",
		Groups: []string{"admin"},
	}}
	srv := httptest.NewServer(ChatRoutes(controllers.NewChatController(agent.NewGateway(inv)), verifier))
	t.Cleanup(srv.Close)
	return srv
}

func postChat(t *testing.T, srv *httptest.Server, token string, body interface{}) (*http.Response, map[string]string) {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req, err := http.NewRequest("POST", srv.URL+"/", bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	decoded := map[string]string{}
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func TestChatRequiresCredential(t *testing.T) {
	inv := &fakeInvoker{reply: "hi"}
	srv := chatServer(t, inv)

	resp, body := postChat(t, srv, "", types.ChatRequest{Message: "hello"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
	if body["error"] != "No token provided" {
		t.Errorf("error = %q", body["error"])
	}
	if inv.calls != 0 {
		t.Errorf("agent called %d times without credential", inv.calls)
	}
}

func TestChatEmptyMessage(t *testing.T) {
	inv := &fakeInvoker{reply: "hi"}
	srv := chatServer(t, inv)

	for _, msg := range []string{"", "   "} {
		resp, body := postChat(t, srv, "tok", types.ChatRequest{Message: msg})
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("message %q: status = %d, want 400", msg, resp.StatusCode)
		}
		if body["error"] != "Message is required" {
			t.Errorf("message %q: error = %q", msg, body["error"])
		}
	}
	if inv.calls != 0 {
		t.Errorf("agent called %d times for empty messages", inv.calls)
	}
}

func TestChatSessionDefaulting(t *testing.T) {
	inv := &fakeInvoker{reply: "hi"}
	srv := chatServer(t, inv)

	// Two calls without a session id continue one derived conversation.
	for i := 0; i < 2; i++ {
		resp, body := postChat(t, srv, "tok", types.ChatRequest{Message: "hello"})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		if body["sessionId"] != "session-abc123" {
			t.Errorf("sessionId = %q, want session-abc123", body["sessionId"])
		}
		if body["response"] != "hi" {
			t.Errorf("response = %q", body["response"])
		}
		if body["user"] != "user@example.com" {
			t.Errorf("user = %q", body["user"])
		}
	}
	if len(inv.sessions) != 2 || inv.sessions[0] != inv.sessions[1] {
		t.Errorf("sessions = %v", inv.sessions)
	}
}

func TestChatExplicitSessionID(t *testing.T) {
	inv := &fakeInvoker{reply: "hi"}
	srv := chatServer(t, inv)

	resp, body := postChat(t, srv, "tok", types.ChatRequest{Message: "hello", SessionID: "my-thread"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if body["sessionId"] != "my-thread" {
		t.Errorf("sessionId = %q, want my-thread", body["sessionId"])
	}
	if len(inv.sessions) != 1 || inv.sessions[0] != "my-thread" {
		t.Errorf("sessions = %v", inv.sessions)
	}
}

func TestChatUpstreamFailureIsGeneric(t *testing.T) {
	inv := &fakeInvoker{err: errors.New("ThrottlingException: rate exceeded for agent arn:aws:...")}
	srv := chatServer(t, inv)

	resp, body := postChat(t, srv, "tok", types.ChatRequest{Message: "hello"})
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}
	if body["error"] != "Failed to get response from agent." {
		t.Errorf("error = %q, upstream detail must not leak", body["error"])
	}
}

func TestChatInvalidBody(t *testing.T) {
	srv := chatServer(t, &fakeInvoker{})
	req, _ := http.NewRequest("POST", srv.URL+"/", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Authorization", "Bearer tok")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
