package application

import "errors"

var (
	// ErrAlreadyInitialized is returned by init when a workspace exists.
	ErrAlreadyInitialized = errors.New("workspace already initialized")
	// ErrNoUndoableSession is returned by undo when no applied session exists.
	ErrNoUndoableSession = errors.New("no undoable session found")
	// ErrNoRequirementsDoc is returned when no requirements document exists yet.
	ErrNoRequirementsDoc = errors.New("no requirements document found")
	// ErrNoStructuredFiles is returned by the kiro scan when nothing matched.
	ErrNoStructuredFiles = errors.New("no structured requirements found under .kiro/")
)
