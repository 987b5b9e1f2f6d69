package walker

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// ignoreRule is one pattern line of a .gitignore file.
type ignoreRule struct {
	pattern  string
	negate   bool
	dirOnly  bool
	anchored bool   // pattern contains a slash and is relative to base
	base     string // directory holding the .gitignore
}

// gitIgnore accumulates the rules of every .gitignore met during one walk.
// Rules are evaluated in load order; the last matching rule wins.
type gitIgnore struct {
	rules []ignoreRule
}

// load appends the rules of dir/.gitignore. A missing or unreadable file
// contributes nothing.
func (g *gitIgnore) load(dir string) {
	f, err := os.Open(filepath.Join(dir, ".gitignore"))
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		g.rules = append(g.rules, parseIgnoreRule(line, dir))
	}
}

func parseIgnoreRule(line, base string) ignoreRule {
	rule := ignoreRule{base: base}
	if strings.HasPrefix(line, "!") {
		rule.negate = true
		line = line[1:]
	}
	if strings.HasSuffix(line, "/") {
		rule.dirOnly = true
		line = strings.TrimSuffix(line, "/")
	}
	if strings.Contains(line, "/") {
		rule.anchored = true
		line = strings.TrimPrefix(line, "/")
	}
	rule.pattern = line
	return rule
}

// ignored reports whether path is excluded by the loaded rules.
func (g *gitIgnore) ignored(path string, isDir bool) bool {
	ignored := false
	for _, rule := range g.rules {
		if rule.dirOnly && !isDir {
			continue
		}
		if rule.matches(path) {
			ignored = !rule.negate
		}
	}
	return ignored
}

func (r ignoreRule) matches(path string) bool {
	rel, err := filepath.Rel(r.base, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return false
	}
	if !r.anchored {
		matched, _ := filepath.Match(r.pattern, filepath.Base(path))
		return matched
	}
	return matchParts(splitPath(r.pattern), splitPath(rel))
}

// matchParts matches path components against pattern components, where a
// "**" component matches zero or more directories.
func matchParts(pattern, path []string) bool {
	if len(pattern) == 0 {
		return len(path) == 0
	}
	if pattern[0] == "**" {
		for i := 0; i <= len(path); i++ {
			if matchParts(pattern[1:], path[i:]) {
				return true
			}
		}
		return false
	}
	if len(path) == 0 {
		return false
	}
	if matched, _ := filepath.Match(pattern[0], path[0]); !matched {
		return false
	}
	return matchParts(pattern[1:], path[1:])
}

func splitPath(path string) []string {
	var parts []string
	for _, p := range strings.Split(filepath.ToSlash(path), "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
