package template

import (
	"fmt"
	"sort"
)

// Tree is a nested directory structure: name -> subtree.
type Tree map[string]Tree

// OrgTemplate describes the directory layout organize enforces and where
// each classification category lands.
type OrgTemplate struct {
	Name      string
	Structure Tree
	// Placement maps a category to a relative directory, e.g.
	// "features" -> "specs/features".
	Placement map[string]string
}

// Default returns the built-in organization template:
// specs/{features,fixes,reference}.
func Default() *OrgTemplate {
	return &OrgTemplate{
		Name: "default",
		Structure: Tree{
			"specs": Tree{
				"features":  Tree{},
				"fixes":     Tree{},
				"reference": Tree{},
			},
		},
		Placement: map[string]string{
			"features":  "specs/features",
			"fixes":     "specs/fixes",
			"reference": "specs/reference",
		},
	}
}

// Directories flattens the structure into sorted relative paths, parents
// before children.
func (t *OrgTemplate) Directories() []string {
	var dirs []string
	var walk func(tree Tree, prefix string)
	walk = func(tree Tree, prefix string) {
		names := make([]string, 0, len(tree))
		for name := range tree {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			path := name
			if prefix != "" {
				path = prefix + "/" + name
			}
			dirs = append(dirs, path)
			walk(tree[name], path)
		}
	}
	walk(t.Structure, "")
	return dirs
}

// Categories returns the sorted category names the template can place.
func (t *OrgTemplate) Categories() []string {
	cats := make([]string, 0, len(t.Placement))
	for c := range t.Placement {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats
}

// Validate checks the template for structural integrity.
func (t *OrgTemplate) Validate() []error {
	var errs []error
	if t.Name == "" {
		errs = append(errs, fmt.Errorf("template name is required"))
	}
	if len(t.Structure) == 0 {
		errs = append(errs, fmt.Errorf("template must define at least one directory"))
	}
	known := make(map[string]bool)
	for _, dir := range t.Directories() {
		known[dir] = true
	}
	for category, dir := range t.Placement {
		if category == "" {
			errs = append(errs, fmt.Errorf("placement rule with empty category"))
		}
		if !known[dir] {
			errs = append(errs, fmt.Errorf("placement for %q targets %q, which is not in the structure", category, dir))
		}
	}
	return errs
}
