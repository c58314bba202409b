// Package client holds the chat session store and the HTTP client the
// frontends use to talk to the backend.
package client

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultTitle is replaced by a prefix of the first message.
	DefaultTitle = "New Chat"

	titlePrefixLen = 30
	titleEllipsis  = "..."

	// ErrorReply is appended as the assistant turn when a send fails, so
	// the visible history always records that a reply was attempted.
	ErrorReply = "Sorry, I encountered an error while processing your message. Please try again."
)

// Sender forwards one message to the backend and returns the reply text.
type Sender interface {
	Send(ctx context.Context, sessionID, message string) (string, error)
}

// Store is the client-side state container. All mutation is copy-on-write:
// session values are replaced, never edited in place, and every state
// change notifies subscribers.
type Store struct {
	mu        sync.Mutex
	sender    Sender
	sessions  []ChatSession // newest first
	currentID string
	loading   bool
	darkMode  bool
	subs      []func()
}

func NewStore(sender Sender) *Store {
	return &Store{sender: sender}
}

// Subscribe registers fn to run after every state change.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

func (s *Store) notify() {
	s.mu.Lock()
	subs := append([]func(){}, s.subs...)
	s.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

// NewSession creates an empty session titled "New Chat", prepends it and
// makes it current.
func (s *Store) NewSession() string {
	sess := ChatSession{
		ID:        uuid.New().String(),
		Title:     DefaultTitle,
		CreatedAt: time.Now(),
	}
	s.mu.Lock()
	s.sessions = append([]ChatSession{sess}, s.sessions...)
	s.currentID = sess.ID
	s.mu.Unlock()
	s.notify()
	return sess.ID
}

// SetCurrent selects the session rendered by the frontend.
func (s *Store) SetCurrent(id string) {
	s.mu.Lock()
	s.currentID = id
	s.mu.Unlock()
	s.notify()
}

// CurrentSession returns a copy of the selected session, or nil when none
// is selected or the id is unknown. Never panics.
func (s *Store) CurrentSession() *ChatSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(s.currentID)
	if idx < 0 {
		return nil
	}
	sess := cloneSession(s.sessions[idx])
	return &sess
}

// Sessions returns a snapshot of all sessions, newest first.
func (s *Store) Sessions() []ChatSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ChatSession, len(s.sessions))
	for i, sess := range s.sessions {
		out[i] = cloneSession(sess)
	}
	return out
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Store) DarkMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.darkMode
}

func (s *Store) ToggleDarkMode() {
	s.mu.Lock()
	s.darkMode = !s.darkMode
	s.mu.Unlock()
	s.notify()
}

// SendMessage appends the user turn immediately, then resolves exactly one
// assistant turn asynchronously: the reply on success, ErrorReply on
// failure. The loading flag is cleared on both paths. The returned channel
// closes when the turn has settled.
func (s *Store) SendMessage(ctx context.Context, text string) <-chan struct{} {
	done := make(chan struct{})
	id := s.ensureCurrent()

	userMsg := ChatMessage{
		ID:        uuid.New().String(),
		Role:      RoleUser,
		Content:   text,
		Timestamp: time.Now(),
	}
	s.mu.Lock()
	s.replaceLocked(id, func(sess ChatSession) ChatSession {
		sess.Messages = append(sess.Messages, userMsg)
		if sess.Title == DefaultTitle {
			sess.Title = deriveTitle(text)
		}
		return sess
	})
	s.loading = true
	s.mu.Unlock()
	s.notify()

	go func() {
		defer close(done)
		reply, err := s.sender.Send(ctx, id, text)
		if err != nil {
			reply = ErrorReply
		}
		assistantMsg := ChatMessage{
			ID:        uuid.New().String(),
			Role:      RoleAssistant,
			Content:   reply,
			Timestamp: time.Now(),
		}
		s.mu.Lock()
		s.replaceLocked(id, func(sess ChatSession) ChatSession {
			sess.Messages = append(sess.Messages, assistantMsg)
			return sess
		})
		s.loading = false
		s.mu.Unlock()
		s.notify()
	}()
	return done
}

func (s *Store) ensureCurrent() string {
	s.mu.Lock()
	if s.indexLocked(s.currentID) >= 0 {
		id := s.currentID
		s.mu.Unlock()
		return id
	}
	s.mu.Unlock()
	return s.NewSession()
}

// replaceLocked swaps one session for a transformed copy inside a fresh
// slice. update receives a clone, so the old state is never mutated.
func (s *Store) replaceLocked(id string, update func(ChatSession) ChatSession) {
	idx := s.indexLocked(id)
	if idx < 0 {
		return
	}
	next := make([]ChatSession, len(s.sessions))
	copy(next, s.sessions)
	next[idx] = update(cloneSession(s.sessions[idx]))
	s.sessions = next
}

func (s *Store) indexLocked(id string) int {
	if id == "" {
		return -1
	}
	for i, sess := range s.sessions {
		if sess.ID == id {
			return i
		}
	}
	return -1
}

func cloneSession(sess ChatSession) ChatSession {
	msgs := make([]ChatMessage, len(sess.Messages))
	copy(msgs, sess.Messages)
	sess.Messages = msgs
	return sess
}

func deriveTitle(text string) string {
	runes := []rune(text)
	if len(runes) > titlePrefixLen {
		runes = runes[:titlePrefixLen]
	}
	return string(runes) + titleEllipsis
}
