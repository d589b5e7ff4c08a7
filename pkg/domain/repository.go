package domain

import (
	"github.com/gjalla/gjalla/pkg/domain/config"
	"github.com/gjalla/gjalla/pkg/domain/session"
)

// WorkspaceRepository handles the persistence of gjalla artifacts in the .gjalla/ directory.
type WorkspaceRepository interface {
	Initialize() error
	IsInitialized() bool
	Root() string
	SaveConfig(cfg *config.Config) error
	LoadConfig() (*config.Config, error)
	SaveSession(s *session.Session) error
	LoadSession(id string) (*session.Session, error)
	ListSessions() ([]*session.Session, error)
	BackupFile(sessionID string, path string) error
	RestoreFile(sessionID string, path string) error
	RecordEvent(event Event) error
	LoadEvents() ([]Event, error)
}
