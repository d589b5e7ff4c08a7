// Package template holds the requirements-document scaffold and the
// organization templates that describe where documentation files belong.
package template

import (
	"strings"
	"text/template"
	"time"
)

// scaffoldSource is the fill-in-the-blank requirements document emitted by
// init. Bracketed text is replaced by the author; the validate command
// reports any placeholder that survives.
const scaffoldSource = `# {{.Project}} Requirements Document

## Introduction

[Provide a brief overview of the feature or system, its purpose, and the
problem it solves.]

## Target Users

[Describe who will use this feature: roles, expertise, and context.]

## Goals

[List the outcomes this work should achieve.]

## Requirements

### Requirement 1: [Title]

**User Story:** As a [role], I want [feature], so that [benefit].

#### Acceptance Criteria

1. WHEN [event] THEN the [system] SHALL [response]
2. WHEN [event] AND [condition] THEN the [system] SHALL [response]
3. IF [precondition] THEN the [system] SHALL [response]
4. WHILE [condition] THE [system] SHALL [response]

## Non-Functional Requirements

[List quality-attribute constraints: performance, security, reliability.]

## Acceptance Criteria Summary

- [ ] All requirements have user stories
- [ ] All requirements have at least one acceptance criterion
- [ ] All acceptance criteria use a controlled sentence form
- [ ] Non-functional requirements reviewed

---
Generated by gjalla on {{.Date}}
`

var scaffoldTemplate = template.Must(template.New("scaffold").Parse(scaffoldSource))

// Scaffold renders the requirements document skeleton for a new project.
func Scaffold(project string) string {
	if strings.TrimSpace(project) == "" {
		project = "[Project Name]"
	}
	var b strings.Builder
	_ = scaffoldTemplate.Execute(&b, map[string]string{
		"Project": project,
		"Date":    time.Now().Format("2006-01-02"),
	})
	return b.String()
}
