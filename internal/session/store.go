package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/reedham/waxwing/internal/domain"
	bolt "go.etcd.io/bbolt"
)

var (
	bucketSession = []byte("session")
	keyCurrent    = []byte("current")
)

// Store implements domain.SessionStore using BoltDB. The current session
// is also held in memory so the HTTP transport's per-request reads never
// touch disk.
type Store struct {
	db *bolt.DB

	mu      sync.RWMutex
	current *domain.Session
}

// NewStore opens (or creates) the session database under dataDir. An
// empty dataDir yields a memory-only store that does not survive restarts.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		return &Store{}, nil
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dataDir, "waxwing.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open session db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSession)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	s := &Store{db: db}
	s.current = s.load()
	return s, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get returns the current session, if any.
func (s *Store) Get() (*domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil, false
	}
	snapshot := *s.current
	return &snapshot, true
}

// Set replaces the stored session.
func (s *Store) Set(session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := *session
	s.current = &snapshot
	return s.persist(&snapshot)
}

// Clear removes the stored session.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	if s.db == nil {
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSession).Delete(keyCurrent)
	})
}

// UpdateAccessToken rewrites only the access token field of the persisted
// session. Without a session it is a no-op; callers that need to know
// must check Get first.
func (s *Store) UpdateAccessToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}
	s.current.AccessToken = token
	return s.persist(s.current)
}

func (s *Store) load() *domain.Session {
	if s.db == nil {
		return nil
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketSession).Get(keyCurrent); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if data == nil {
		return nil
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil
	}
	return &session
}

func (s *Store) persist(session *domain.Session) error {
	if s.db == nil {
		return nil
	}

	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSession).Put(keyCurrent, data)
	})
}
