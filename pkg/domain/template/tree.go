package template

import (
	"fmt"
	"strings"
)

// ParseTree reads a directory layout from a box-drawing tree listing, the
// format used by directory.md template files:
//
//	specs/
//	├── features/
//	│   └── auth/
//	└── reference/
//
// Indentation depth is derived from the prefix width; four columns per level.
func ParseTree(listing string) (Tree, error) {
	root := Tree{}
	// Stack of trees by depth; depth 0 is the root.
	stack := []Tree{root}

	for lineNum, raw := range strings.Split(listing, "\n") {
		line := strings.TrimRight(raw, " \t")
		if strings.TrimSpace(line) == "" {
			continue
		}

		depth, name, err := parseTreeLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum+1, err)
		}
		if name == "" {
			continue
		}

		if depth >= len(stack) {
			return nil, fmt.Errorf("line %d: indentation skips a level: %q", lineNum+1, raw)
		}
		parent := stack[depth]
		child := Tree{}
		parent[name] = child
		stack = append(stack[:depth+1], child)
	}

	if len(root) == 0 {
		return nil, fmt.Errorf("tree listing contains no directories")
	}
	return root, nil
}

// parseTreeLine splits one listing line into its depth and directory name.
// Lines naming files (no trailing slash) are skipped by returning an empty
// name.
func parseTreeLine(line string) (int, string, error) {
	prefix := 0
	rest := line
	for {
		if strings.HasPrefix(rest, "│   ") {
			rest = strings.TrimPrefix(rest, "│   ")
			prefix++
			continue
		}
		if strings.HasPrefix(rest, "    ") {
			rest = strings.TrimPrefix(rest, "    ")
			prefix++
			continue
		}
		break
	}

	depth := prefix
	switch {
	case strings.HasPrefix(rest, "├── "):
		rest = strings.TrimPrefix(rest, "├── ")
		depth++
	case strings.HasPrefix(rest, "└── "):
		rest = strings.TrimPrefix(rest, "└── ")
		depth++
	}

	name := strings.TrimSpace(rest)
	if name == "" {
		return 0, "", fmt.Errorf("empty entry")
	}
	if !strings.HasSuffix(name, "/") {
		// A file, not a directory.
		return depth, "", nil
	}
	return depth, strings.TrimSuffix(name, "/"), nil
}
