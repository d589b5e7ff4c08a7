package application

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/gjalla/gjalla/pkg/domain"
	"github.com/gjalla/gjalla/pkg/domain/classify"
	"github.com/gjalla/gjalla/pkg/domain/config"
	"github.com/gjalla/gjalla/pkg/domain/organize"
	"github.com/gjalla/gjalla/pkg/domain/session"
	"github.com/gjalla/gjalla/pkg/domain/template"
)

// OrganizeService classifies documentation files and moves them into the
// template directory structure, recording an undoable session.
type OrganizeService struct {
	repo  domain.WorkspaceRepository
	audit domain.AuditLogger
}

func NewOrganizeService(repo domain.WorkspaceRepository, audit domain.AuditLogger) *OrganizeService {
	return &OrganizeService{repo: repo, audit: audit}
}

// OrganizeOptions control a single organize run.
type OrganizeOptions struct {
	// DryRun computes the plan without touching the filesystem.
	DryRun bool
	// CreateAggregates additionally writes the extracted requirements
	// aggregate after organizing.
	CreateAggregates bool
	// TemplateDir overrides the built-in directory template.
	TemplateDir string
	// BackupDir overrides the configured backup location for this run.
	BackupDir string
}

// OrganizeResult is everything a run produced, including the plan that was
// (or would be) applied.
type OrganizeResult struct {
	Classification *classify.Result
	Report         *organize.StructureReport
	Plan           *organize.Plan
	Session        *session.Session
	AggregatePath  string
	DryRun         bool
}

// Organize runs discovery, classification, structure validation, and the
// move plan. Unless DryRun is set the plan is applied and recorded as an
// undoable session with per-file backups.
func (s *OrganizeService) Organize(ctx context.Context, opts OrganizeOptions) (*OrganizeResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	cfg, err := s.repo.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.BackupDir != "" {
		cfg.BackupDir = opts.BackupDir
	}

	root := s.repo.Root()
	files, err := DiscoverFiles(root, cfg)
	if err != nil {
		return nil, err
	}

	patterns, err := patternsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	classification := classify.New(patterns).ClassifyFiles(files)
	if errs := classification.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("inconsistent classification result: %v", errs)
	}

	tmpl, err := s.loadTemplate(opts.TemplateDir)
	if err != nil {
		return nil, err
	}

	report, err := organize.ValidateStructure(root, tmpl)
	if err != nil {
		return nil, err
	}

	plan, err := organize.BuildPlan(root, tmpl, report, classification.Files)
	if err != nil {
		return nil, err
	}

	result := &OrganizeResult{
		Classification: classification,
		Report:         report,
		Plan:           plan,
		DryRun:         opts.DryRun,
	}

	if opts.DryRun {
		return result, nil
	}

	sess, err := s.apply(plan)
	if err != nil {
		return nil, err
	}
	result.Session = sess

	if err := s.audit.Log("organize.apply", "cli", map[string]interface{}{
		"session_id":   sess.ID,
		"files_moved":  len(plan.Moves),
		"dirs_created": len(plan.CreateDirs),
	}); err != nil {
		return nil, fmt.Errorf("write audit log: %w", err)
	}

	if opts.CreateAggregates {
		_, path, err := NewRequirementsService(s.repo, s.audit).WriteAggregate()
		if err != nil {
			return nil, err
		}
		result.AggregatePath = path
	}
	return result, nil
}

// apply executes the plan, backing each moved file up first so that a
// partial failure can still be undone.
func (s *OrganizeService) apply(plan *organize.Plan) (*session.Session, error) {
	root := s.repo.Root()
	sess := session.New("organize", root)

	fail := func(cause error) (*session.Session, error) {
		if err := sess.Transition(session.EventFail); err == nil {
			_ = s.repo.SaveSession(sess)
		}
		return nil, cause
	}

	for _, rel := range plan.CreateDirs {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(full, 0750); err != nil {
			return fail(fmt.Errorf("create %s: %w", rel, err))
		}
		sess.Record(session.FileOp{Type: session.OpCreate, Target: rel})
	}

	for _, move := range plan.Moves {
		if err := s.repo.BackupFile(sess.ID, move.Source); err != nil {
			return fail(fmt.Errorf("backup %s: %w", move.Source, err))
		}

		src := filepath.Join(root, filepath.FromSlash(move.Source))
		dst := filepath.Join(root, filepath.FromSlash(move.Target))
		if err := os.MkdirAll(filepath.Dir(dst), 0750); err != nil {
			return fail(fmt.Errorf("create %s: %w", filepath.Dir(move.Target), err))
		}
		if err := os.Rename(src, dst); err != nil {
			return fail(fmt.Errorf("move %s: %w", move.Source, err))
		}
		sess.Record(session.FileOp{Type: session.OpMove, Source: move.Source, Target: move.Target})
	}

	if err := sess.Transition(session.EventApply); err != nil {
		return nil, err
	}
	if err := s.repo.SaveSession(sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}

func (s *OrganizeService) loadTemplate(dir string) (*template.OrgTemplate, error) {
	if dir == "" {
		return template.Default(), nil
	}
	tmpl, err := template.LoadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("load template from %s: %w", dir, err)
	}
	if errs := tmpl.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid template %s: %v", dir, errs)
	}
	return tmpl, nil
}

// patternsFromConfig compiles the user's category overrides. Without
// overrides the built-in categories apply.
func patternsFromConfig(cfg *config.Config) (map[string]classify.Pattern, error) {
	if len(cfg.Categories) == 0 {
		return classify.DefaultPatterns(), nil
	}

	patterns := make(map[string]classify.Pattern, len(cfg.Categories))
	for name, cat := range cfg.Categories {
		p := classify.Pattern{Keywords: cat.Keywords}
		if cat.Filename != "" {
			re, err := regexp.Compile(cat.Filename)
			if err != nil {
				return nil, fmt.Errorf("category %q filename pattern: %w", name, err)
			}
			p.FilenamePattern = re
		}
		patterns[name] = p
	}
	return patterns, nil
}
