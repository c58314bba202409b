package client

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestSaveLoadSessions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.bolt")

	sender := &fakeSender{reply: "ok"}
	s := NewStore(sender)
	s.NewSession()
	<-s.SendMessage(context.Background(), "first conversation")
	time.Sleep(time.Millisecond) // distinct CreatedAt ordering
	s.NewSession()
	<-s.SendMessage(context.Background(), "second conversation")

	if err := s.SaveSessions(path); err != nil {
		t.Fatalf("SaveSessions: %v", err)
	}

	restored := NewStore(sender)
	if err := restored.LoadSessions(path); err != nil {
		t.Fatalf("LoadSessions: %v", err)
	}

	got := restored.Sessions()
	want := s.Sessions()
	if len(got) != len(want) {
		t.Fatalf("sessions = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i].ID {
			t.Errorf("order mismatch at %d: %s vs %s", i, got[i].ID, want[i].ID)
		}
		if got[i].Title != want[i].Title {
			t.Errorf("title mismatch: %q vs %q", got[i].Title, want[i].Title)
		}
		if len(got[i].Messages) != len(want[i].Messages) {
			t.Errorf("messages mismatch in %s", got[i].ID)
		}
	}
	if restored.CurrentSession() != nil {
		t.Error("restored store should have no selection")
	}
}

func TestLoadSessionsMissingFile(t *testing.T) {
	s := NewStore(&fakeSender{})
	if err := s.LoadSessions(filepath.Join(t.TempDir(), "nope.bolt")); err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if len(s.Sessions()) != 0 {
		t.Error("store should stay empty")
	}
}
