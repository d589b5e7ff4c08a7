package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gjalla/gjalla/pkg/domain"
)

// FileEventStore records audit events in a hash-chained JSON Lines file.
type FileEventStore struct {
	mu       sync.RWMutex
	path     string
	baseDir  string
	lastHash string
	loaded   bool
}

// NewFileEventStore creates an event store backed by events.jsonl under
// baseDir. The directory is created on first write, not at construction time,
// so that initialization checks stay accurate.
func NewFileEventStore(baseDir string) *FileEventStore {
	return &FileEventStore{
		path:    filepath.Join(baseDir, EventsFile),
		baseDir: baseDir,
	}
}

// Append chains the event to the log and writes it.
func (s *FileEventStore) Append(event domain.Event) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLastHash(); err != nil {
		return err
	}

	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	event.PrevHash = s.lastHash
	event.Hash = event.CalculateHash()

	if err := os.MkdirAll(s.baseDir, 0700); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600) // #nosec G304
	if err != nil {
		return fmt.Errorf("open events file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close events file: %w", cerr)
		}
	}()

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write event: %w", err)
	}

	s.lastHash = event.Hash
	return nil
}

// LoadAll returns all events in chronological order.
func (s *FileEventStore) LoadAll() ([]domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loadEvents()
}

// VerifyIntegrity checks the hash chain for tampering and returns a
// description of each violation found.
func (s *FileEventStore) VerifyIntegrity() ([]string, error) {
	evts, err := s.LoadAll()
	if err != nil {
		return nil, err
	}

	var violations []string
	lastHash := ""
	for i, e := range evts {
		if e.PrevHash != lastHash {
			violations = append(violations, fmt.Sprintf("event %d (%s): PrevHash mismatch", i, e.ID))
		}
		if e.Hash != e.CalculateHash() {
			violations = append(violations, fmt.Sprintf("event %d (%s): hash mismatch, possible tampering", i, e.ID))
		}
		lastHash = e.Hash
	}
	return violations, nil
}

// ensureLastHash lazily seeds the chain tail from the existing log. Callers
// must hold the write lock.
func (s *FileEventStore) ensureLastHash() error {
	if s.loaded {
		return nil
	}
	evts, err := s.loadEvents()
	if err != nil {
		return err
	}
	if len(evts) > 0 {
		s.lastHash = evts[len(evts)-1].Hash
	}
	s.loaded = true
	return nil
}

func (s *FileEventStore) loadEvents() ([]domain.Event, error) {
	f, err := os.Open(s.path) // #nosec G304
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open events file: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	var result []domain.Event
	scanner := bufio.NewScanner(f)

	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var event domain.Event
		if err := json.Unmarshal(line, &event); err != nil {
			return nil, fmt.Errorf("unmarshal event: %w", err)
		}
		result = append(result, event)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan events: %w", err)
	}
	return result, nil
}

// RecordEvent appends an audit event to the workspace log.
func (r *FilesystemRepository) RecordEvent(event domain.Event) error {
	return r.events.Append(event)
}

// LoadEvents returns the workspace audit log in chronological order.
func (r *FilesystemRepository) LoadEvents() ([]domain.Event, error) {
	return r.events.LoadAll()
}

// VerifyEventLog reports hash chain violations in the workspace audit log.
func (r *FilesystemRepository) VerifyEventLog() ([]string, error) {
	return r.events.VerifyIntegrity()
}
