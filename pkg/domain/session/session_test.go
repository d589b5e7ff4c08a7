package session_test

import (
	"testing"

	"github.com/gjalla/gjalla/pkg/domain/session"
)

func TestSessionLifecycle(t *testing.T) {
	s := session.New("organize", "/tmp/project")

	if s.ID == "" {
		t.Fatal("session should get an ID")
	}
	if s.Status != session.StatusRecorded {
		t.Fatalf("new session status = %q", s.Status)
	}
	if s.Undoable() {
		t.Error("recorded session is not yet undoable")
	}

	if err := s.Transition(session.EventApply); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if s.Status != session.StatusApplied {
		t.Errorf("status = %q, want applied", s.Status)
	}
	if !s.Undoable() {
		t.Error("applied session should be undoable")
	}

	if err := s.Transition(session.EventUndo); err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if s.Status != session.StatusUndone {
		t.Errorf("status = %q, want undone", s.Status)
	}

	// Undoing twice is illegal.
	if err := s.Transition(session.EventUndo); err == nil {
		t.Error("expected error undoing an undone session")
	}
}

func TestSessionFailure(t *testing.T) {
	s := session.New("organize", ".")
	if err := s.Transition(session.EventFail); err != nil {
		t.Fatalf("fail transition: %v", err)
	}
	if s.Status != session.StatusFailed {
		t.Errorf("status = %q", s.Status)
	}
	// A failed session cannot be applied.
	if err := s.Transition(session.EventApply); err == nil {
		t.Error("expected error applying a failed session")
	}
}

func TestSessionRecordAndMoves(t *testing.T) {
	s := session.New("organize", ".")
	s.Record(session.FileOp{Type: session.OpCreate, Target: "specs"})
	s.Record(session.FileOp{Type: session.OpMove, Source: "a.md", Target: "specs/features/a.md"})
	s.Record(session.FileOp{Type: session.OpMove, Source: "b.md", Target: "specs/fixes/b.md"})

	if len(s.Ops) != 3 {
		t.Fatalf("ops = %d", len(s.Ops))
	}
	for _, op := range s.Ops {
		if op.Timestamp.IsZero() {
			t.Error("Record should stamp operations")
		}
	}

	moves := s.Moves()
	if len(moves) != 2 || moves[0].Source != "a.md" {
		t.Errorf("Moves() = %v", moves)
	}
}

func TestSessionValidate(t *testing.T) {
	s := session.New("organize", ".")
	if errs := s.Validate(); len(errs) != 0 {
		t.Errorf("fresh session should validate: %v", errs)
	}

	bad := &session.Session{Status: session.Status("bogus"), Ops: []session.FileOp{{Type: session.OpMove}}}
	errs := bad.Validate()
	// Missing ID, missing operation, bad status, move without source, op without target.
	if len(errs) != 5 {
		t.Errorf("expected 5 errors, got %v", errs)
	}
}
