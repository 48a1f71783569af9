// Package validate checks a finished output tree without modifying it:
// naming conventions on every emitted path, and the targets of every
// Markdown link and image.
package validate

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/mdforge/core/scan"
)

// Issue is one validation finding.
type Issue struct {
	Path    string // output-relative path of the offending file
	Line    int    // 1-based line in that file, 0 for naming issues
	Message string
}

func (i Issue) String() string {
	if i.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", i.Path, i.Line, i.Message)
	}
	return fmt.Sprintf("%s: %s", i.Path, i.Message)
}

// Validator runs read-only checks over one output root.
type Validator struct {
	outputRoot string
}

// New creates a Validator for the given output root.
func New(outputRoot string) *Validator {
	return &Validator{outputRoot: outputRoot}
}

// Run executes every check and returns the findings. An empty slice means
// the tree passed.
func (v *Validator) Run() ([]Issue, error) {
	var issues []Issue

	named, err := v.checkNaming()
	if err != nil {
		return nil, err
	}
	issues = append(issues, named...)

	linked, err := v.checkMarkdown()
	if err != nil {
		return nil, err
	}
	issues = append(issues, linked...)

	slog.Info("validation finished", "issues", len(issues))
	return issues, nil
}

// checkNaming flags every file or directory that is not lowercase or
// contains whitespace.
func (v *Validator) checkNaming() ([]Issue, error) {
	var issues []Issue
	err := filepath.WalkDir(v.outputRoot, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if p == v.outputRoot {
			return nil
		}
		rel, err := filepath.Rel(v.outputRoot, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		name := d.Name()
		if name != strings.ToLower(name) {
			issues = append(issues, Issue{Path: rel, Message: "name is not lowercase"})
		}
		if strings.ContainsAny(name, " \t") {
			issues = append(issues, Issue{Path: rel, Message: "name contains whitespace"})
		}
		return nil
	})
	return issues, err
}

// mdLinkRegex matches Markdown links [text](url); mdImageRegex matches the
// image form. The image regex must run first so its matches can be
// excluded from the link pass.
var (
	mdLinkRegex  = regexp.MustCompile(`\[([^\]]*)\]\(([^)\s]+)[^)]*\)`)
	mdImageRegex = regexp.MustCompile(`!\[([^\]]*)\]\(([^)\s]+)[^)]*\)`)
)

func (v *Validator) checkMarkdown() ([]Issue, error) {
	var issues []Issue
	err := filepath.WalkDir(v.outputRoot, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		rel, err := filepath.Rel(v.outputRoot, p)
		if err != nil {
			return err
		}
		found, err := v.checkFile(filepath.ToSlash(rel), p)
		if err != nil {
			return err
		}
		issues = append(issues, found...)
		return nil
	})
	return issues, err
}

func (v *Validator) checkFile(rel, abs string) ([]Issue, error) {
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", rel, err)
	}

	var issues []Issue
	for n, line := range strings.Split(string(data), "\n") {
		images := mdImageRegex.FindAllStringSubmatch(line, -1)
		seen := make(map[string]bool, len(images))
		for _, m := range images {
			seen[m[2]] = true
			issues = append(issues, v.checkTarget(rel, n+1, m[2], true)...)
		}
		for _, m := range mdLinkRegex.FindAllStringSubmatch(line, -1) {
			if seen[m[2]] {
				continue
			}
			issues = append(issues, v.checkTarget(rel, n+1, m[2], false)...)
		}
	}
	return issues, nil
}

// checkTarget verifies one link or image target. External and special
// targets pass untouched; everything else must be root-absolute and must
// exist under the output root.
func (v *Validator) checkTarget(rel string, line int, target string, image bool) []Issue {
	if scan.IsExternalURL(target) || scan.IsSpecialLink(target) {
		return nil
	}

	label := "link"
	if image {
		label = "image"
	}
	if !strings.HasPrefix(target, "/") {
		return []Issue{{Path: rel, Line: line,
			Message: fmt.Sprintf("relative %s target %q", label, target)}}
	}

	pathPart, _ := scan.SplitAnchor(target)
	if pathPart == "" {
		return nil
	}
	abs := filepath.Join(v.outputRoot, filepath.FromSlash(strings.TrimPrefix(pathPart, "/")))
	if _, err := os.Stat(abs); err != nil {
		return []Issue{{Path: rel, Line: line,
			Message: fmt.Sprintf("broken %s target %q", label, target)}}
	}
	return nil
}
