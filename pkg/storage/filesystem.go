// Package storage persists gjalla artifacts in the .gjalla/ directory of a
// project.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"gopkg.in/yaml.v3"

	"github.com/gjalla/gjalla/pkg/domain/config"
	"github.com/gjalla/gjalla/pkg/domain/session"
)

const GjallaDir = ".gjalla"
const ConfigFile = "config.yaml"
const SessionsDir = "sessions"
const BackupsDir = "backups"
const EventsFile = "events.jsonl"

type FilesystemRepository struct {
	root        string
	backupDir   string
	retryConfig retry.Config
	events      *FileEventStore
}

func NewFilesystemRepository(root string) *FilesystemRepository {
	return &FilesystemRepository{
		root: root,
		retryConfig: retry.Config{
			MaxAttempts:   3,
			InitialDelay:  10 * time.Millisecond,
			BackoffPolicy: retry.BackoffExponential,
		},
		events: NewFileEventStore(filepath.Join(root, GjallaDir)),
	}
}

// Root returns the project root directory.
func (r *FilesystemRepository) Root() string {
	return r.root
}

// SetBackupDir overrides where session backups are kept, as a path relative
// to the project root. Empty restores the default .gjalla/backups location.
func (r *FilesystemRepository) SetBackupDir(rel string) error {
	if rel == "" {
		r.backupDir = ""
		return nil
	}
	clean := filepath.Clean(rel)
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("backup directory must be relative to the project: %s", rel)
	}
	r.backupDir = clean
	return nil
}

// backupPath resolves where a session's copy of rel lives.
func (r *FilesystemRepository) backupPath(sessionID, rel string) (string, error) {
	if r.backupDir != "" {
		return filepath.Join(r.root, r.backupDir, sessionID, filepath.FromSlash(rel)), nil
	}
	return r.ResolvePath(filepath.Join(BackupsDir, sessionID, rel))
}

// ResolvePath ensures the path stays within the .gjalla directory and
// prevents traversal.
func (r *FilesystemRepository) ResolvePath(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("filename cannot be empty")
	}

	baseDir := filepath.Join(r.root, GjallaDir)
	cleanPath := filepath.Clean(filepath.Join(baseDir, name))

	if cleanPath != baseDir && !strings.HasPrefix(cleanPath, baseDir+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid file path: %s", name)
	}
	return cleanPath, nil
}

func (r *FilesystemRepository) Initialize() error {
	for _, dir := range []string{"", SessionsDir, BackupsDir} {
		path := filepath.Join(r.root, GjallaDir, dir)
		// G301: Use 0700 for directories
		if err := os.MkdirAll(path, 0700); err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
	}
	return nil
}

func (r *FilesystemRepository) IsInitialized() bool {
	_, err := os.Stat(filepath.Join(r.root, GjallaDir))
	return err == nil
}

func (r *FilesystemRepository) SaveConfig(cfg *config.Config) error {
	path, err := r.ResolvePath(ConfigFile)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// G306: Use 0600 for files
	return os.WriteFile(path, data, 0600)
}

func (r *FilesystemRepository) LoadConfig() (*config.Config, error) {
	retryer := retry.New[*config.Config](r.retryConfig)

	return retryer.Do(context.Background(), func(ctx context.Context) (*config.Config, error) {
		path, err := r.ResolvePath(ConfigFile)
		if err != nil {
			return nil, err
		}

		// #nosec G304 -- Path is resolved and validated via ResolvePath
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return config.Default(), nil
			}
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		return config.Parse(data)
	})
}

func (r *FilesystemRepository) SaveSession(s *session.Session) error {
	if errs := s.Validate(); len(errs) > 0 {
		return fmt.Errorf("refusing to save invalid session: %v", errs)
	}

	path, err := r.ResolvePath(filepath.Join(SessionsDir, s.ID+".json"))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create sessions directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

func (r *FilesystemRepository) LoadSession(id string) (*session.Session, error) {
	retryer := retry.New[*session.Session](r.retryConfig)

	return retryer.Do(context.Background(), func(ctx context.Context) (*session.Session, error) {
		path, err := r.ResolvePath(filepath.Join(SessionsDir, id+".json"))
		if err != nil {
			return nil, err
		}

		// #nosec G304 -- Path is resolved and validated via ResolvePath
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read session %s: %w", id, err)
		}

		var s session.Session
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to unmarshal session %s: %w", id, err)
		}
		return &s, nil
	})
}

// ListSessions returns all recorded sessions, newest first.
func (r *FilesystemRepository) ListSessions() ([]*session.Session, error) {
	dir, err := r.ResolvePath(SessionsDir)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	var sessions []*session.Session
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		s, err := r.LoadSession(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})
	return sessions, nil
}

// BackupFile copies a project file into the session's backup directory,
// preserving its relative path.
func (r *FilesystemRepository) BackupFile(sessionID string, rel string) error {
	target, err := r.backupPath(sessionID, rel)
	if err != nil {
		return err
	}
	return copyFile(filepath.Join(r.root, filepath.FromSlash(rel)), target)
}

// RestoreFile copies a backed-up file back to its original relative path.
func (r *FilesystemRepository) RestoreFile(sessionID string, rel string) error {
	source, err := r.backupPath(sessionID, rel)
	if err != nil {
		return err
	}
	return copyFile(source, filepath.Join(r.root, filepath.FromSlash(rel)))
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0700); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(dst), err)
	}

	in, err := os.Open(src) // #nosec G304 -- paths derive from recorded session ops
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return out.Close()
}
