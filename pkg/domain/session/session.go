// Package session models organize backup sessions: what was moved, where,
// and whether the operation can still be undone.
package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status values for a session's lifecycle.
type Status string

const (
	StatusRecorded Status = "recorded"
	StatusApplied  Status = "applied"
	StatusUndone   Status = "undone"
	StatusFailed   Status = "failed"
)

// OpType identifies what a FileOp did.
type OpType string

const (
	OpMove   OpType = "move"
	OpCreate OpType = "create"
	OpWrite  OpType = "write"
)

// FileOp is one recorded filesystem operation, in application order.
type FileOp struct {
	Type      OpType    `json:"type"`
	Source    string    `json:"source,omitempty"`
	Target    string    `json:"target"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is the manifest of a single organize run.
type Session struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	Operation  string    `json:"operation"`
	ProjectDir string    `json:"project_dir"`
	Status     Status    `json:"status"`
	Ops        []FileOp  `json:"ops"`
}

// New creates a session in the recorded state.
func New(operation, projectDir string) *Session {
	return &Session{
		ID:         uuid.New().String(),
		CreatedAt:  time.Now(),
		Operation:  operation,
		ProjectDir: projectDir,
		Status:     StatusRecorded,
	}
}

// Record appends an operation to the manifest.
func (s *Session) Record(op FileOp) {
	if op.Timestamp.IsZero() {
		op.Timestamp = time.Now()
	}
	s.Ops = append(s.Ops, op)
}

// Moves returns only the move operations, in application order.
func (s *Session) Moves() []FileOp {
	var moves []FileOp
	for _, op := range s.Ops {
		if op.Type == OpMove {
			moves = append(moves, op)
		}
	}
	return moves
}

// Transition moves the session through its lifecycle. Illegal transitions
// (undoing a session twice, applying a failed one) are rejected.
func (s *Session) Transition(event string) error {
	sm, err := newLifecycle(string(s.Status))
	if err != nil {
		return err
	}
	if err := sm.Fire(event); err != nil {
		return err
	}
	s.Status = Status(sm.Current())
	return nil
}

// Undoable reports whether the session can still be restored.
func (s *Session) Undoable() bool {
	return s.Status == StatusApplied
}

// Validate checks the manifest for structural integrity.
func (s *Session) Validate() []error {
	var errs []error
	if s.ID == "" {
		errs = append(errs, fmt.Errorf("session ID is required"))
	}
	if s.Operation == "" {
		errs = append(errs, fmt.Errorf("session operation is required"))
	}
	switch s.Status {
	case StatusRecorded, StatusApplied, StatusUndone, StatusFailed:
	default:
		errs = append(errs, fmt.Errorf("unknown session status: %s", s.Status))
	}
	for i, op := range s.Ops {
		if op.Target == "" {
			errs = append(errs, fmt.Errorf("op %d has no target", i))
		}
		if op.Type == OpMove && op.Source == "" {
			errs = append(errs, fmt.Errorf("move op %d has no source", i))
		}
	}
	return errs
}
