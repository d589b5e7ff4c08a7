package application

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gjalla/gjalla/pkg/domain"
	"github.com/gjalla/gjalla/pkg/domain/organize"
	"github.com/gjalla/gjalla/pkg/domain/requirements"
	"github.com/gjalla/gjalla/pkg/domain/session"
	"github.com/gjalla/gjalla/pkg/domain/template"
)

// Status is the workspace summary shown by the status command.
type Status struct {
	Initialized     bool     `json:"initialized"`
	ComplianceScore float64  `json:"compliance_score"`
	MissingDirs     []string `json:"missing_dirs,omitempty"`
	UnexpectedDirs  []string `json:"unexpected_dirs,omitempty"`

	RequirementsTotal  int            `json:"requirements_total"`
	RequirementsByType map[string]int `json:"requirements_by_type,omitempty"`

	LintedDocuments int `json:"linted_documents"`
	LintViolations  int `json:"lint_violations"`

	LastSessionID     string         `json:"last_session_id,omitempty"`
	LastSessionStatus session.Status `json:"last_session_status,omitempty"`
	SessionCount      int            `json:"session_count"`
	EventCount        int            `json:"event_count"`
}

// StatusService assembles the workspace summary.
type StatusService struct {
	repo     domain.WorkspaceRepository
	validate *ValidateService
}

func NewStatusService(repo domain.WorkspaceRepository) *StatusService {
	return &StatusService{repo: repo, validate: NewValidateService(repo)}
}

// Summary inspects the workspace without changing it.
func (s *StatusService) Summary() (*Status, error) {
	st := &Status{Initialized: s.repo.IsInitialized()}
	root := s.repo.Root()

	report, err := organize.ValidateStructure(root, template.Default())
	if err != nil {
		return nil, err
	}
	st.ComplianceScore = report.ComplianceScore
	st.MissingDirs = report.MissingDirs
	st.UnexpectedDirs = report.UnexpectedDirs

	if content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(ScaffoldPath))); err == nil { // #nosec G304
		summary := requirements.ParseSummary(string(content))
		st.RequirementsTotal = summary.Total
		if len(summary.ByType) > 0 {
			st.RequirementsByType = summary.ByType
		}
	}

	if lint, err := s.validate.ValidateAll(); err == nil {
		st.LintedDocuments = lint.DocumentsLinted
		st.LintViolations = lint.TotalViolations
	}

	sessions, err := s.repo.ListSessions()
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	st.SessionCount = len(sessions)
	if len(sessions) > 0 {
		st.LastSessionID = sessions[0].ID
		st.LastSessionStatus = sessions[0].Status
	}

	events, err := s.repo.LoadEvents()
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	st.EventCount = len(events)

	return st, nil
}
