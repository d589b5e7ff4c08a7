package application

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gjalla/gjalla/pkg/domain"
	"github.com/gjalla/gjalla/pkg/domain/session"
)

// UndoService reverses the file moves recorded by an organize session.
type UndoService struct {
	repo  domain.WorkspaceRepository
	audit domain.AuditLogger
}

func NewUndoService(repo domain.WorkspaceRepository, audit domain.AuditLogger) *UndoService {
	return &UndoService{repo: repo, audit: audit}
}

// UndoResult describes what an undo run restored, or would restore.
type UndoResult struct {
	Session  *session.Session
	Restored []session.FileOp
	DryRun   bool
}

// ListSessions returns all recorded sessions, newest first.
func (s *UndoService) ListSessions() ([]*session.Session, error) {
	return s.repo.ListSessions()
}

// Resolve picks the session to undo: the named one, or the most recent
// undoable session when id is empty.
func (s *UndoService) Resolve(id string) (*session.Session, error) {
	if id != "" {
		return s.repo.LoadSession(id)
	}

	sessions, err := s.repo.ListSessions()
	if err != nil {
		return nil, err
	}
	for _, sess := range sessions {
		if sess.Undoable() {
			return sess, nil
		}
	}
	return nil, ErrNoUndoableSession
}

// Undo moves every file of the session back to where it came from, in
// reverse order. A move whose target has since disappeared is restored from
// the session backup instead.
func (s *UndoService) Undo(id string, dryRun bool) (*UndoResult, error) {
	sess, err := s.Resolve(id)
	if err != nil {
		return nil, err
	}
	if !sess.Undoable() {
		return nil, fmt.Errorf("session %s is %s and cannot be undone", sess.ID, sess.Status)
	}

	moves := sess.Moves()
	result := &UndoResult{Session: sess, DryRun: dryRun}

	if dryRun {
		result.Restored = moves
		return result, nil
	}

	root := s.repo.Root()
	for i := len(moves) - 1; i >= 0; i-- {
		move := moves[i]
		src := filepath.Join(root, filepath.FromSlash(move.Target))
		dst := filepath.Join(root, filepath.FromSlash(move.Source))

		if err := os.MkdirAll(filepath.Dir(dst), 0750); err != nil {
			return nil, fmt.Errorf("create %s: %w", filepath.Dir(move.Source), err)
		}

		if err := os.Rename(src, dst); err != nil {
			if restoreErr := s.repo.RestoreFile(sess.ID, move.Source); restoreErr != nil {
				return nil, fmt.Errorf("restore %s: %w (after move-back failed: %v)", move.Source, restoreErr, err)
			}
		}
		result.Restored = append(result.Restored, move)
	}

	if err := sess.Transition(session.EventUndo); err != nil {
		return nil, err
	}
	if err := s.repo.SaveSession(sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	if err := s.audit.Log("organize.undo", "cli", map[string]interface{}{
		"session_id":     sess.ID,
		"files_restored": len(result.Restored),
	}); err != nil {
		return nil, fmt.Errorf("write audit log: %w", err)
	}
	return result, nil
}
