package client

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"
)

var sessionsBucket = []byte("chat_sessions")

// SaveSessions writes a snapshot of every session to a BoltDB file. The
// bucket is recreated so the file reflects the snapshot exactly.
func (s *Store) SaveSessions(path string) error {
	sessions := s.Sessions()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	return db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(sessionsBucket) != nil {
			if err := tx.DeleteBucket(sessionsBucket); err != nil {
				return err
			}
		}
		b, err := tx.CreateBucket(sessionsBucket)
		if err != nil {
			return err
		}
		for _, sess := range sessions {
			enc, err := json.Marshal(sess)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(sess.ID), enc); err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadSessions replaces the store's sessions with the saved snapshot,
// newest first by creation time. A missing file leaves the store empty.
func (s *Store) LoadSessions(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	var sessions []ChatSession
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(sessionsBucket)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var sess ChatSession
			if json.Unmarshal(v, &sess) != nil {
				// Skip malformed entries instead of failing the whole load.
				return nil
			}
			sessions = append(sessions, sess)
			return nil
		})
	})
	if err != nil {
		return err
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})

	s.mu.Lock()
	s.sessions = sessions
	if s.indexLocked(s.currentID) < 0 {
		s.currentID = ""
	}
	s.mu.Unlock()
	s.notify()
	return nil
}
