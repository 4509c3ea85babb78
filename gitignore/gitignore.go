// Package gitignore filters workspace scans through .gitignore rules, so
// outlines skip what the repository itself ignores.
package gitignore

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// Matcher holds the compiled rules of every .gitignore under a root.
type Matcher struct {
	root  string
	rules []rule
}

// rule is one compiled .gitignore line. base is the directory the line's
// file sits in, relative to the root; its rules apply below it only.
type rule struct {
	glob     string
	base     string
	negate   bool
	dirOnly  bool
	anchored bool
}

// New walks root and compiles every .gitignore it finds. Hidden directories
// are not descended into; unreadable files contribute no rules.
func New(root string) (*Matcher, error) {
	m := &Matcher{root: root}
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() && strings.HasPrefix(info.Name(), ".") && path != root {
			return filepath.SkipDir
		}
		if info.Name() == ".gitignore" {
			base, _ := filepath.Rel(root, filepath.Dir(path))
			if base == "." {
				base = ""
			}
			m.load(path, base)
		}
		return nil
	})
	return m, err
}

func (m *Matcher) load(path, base string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if r, ok := compile(sc.Text(), base); ok {
			m.rules = append(m.rules, r)
		}
	}
}

// compile turns one .gitignore line into a rule. Blank lines and comments
// compile to nothing.
func compile(line, base string) (rule, bool) {
	line = strings.TrimRight(line, " ")
	if line == "" || strings.HasPrefix(line, "#") {
		return rule{}, false
	}
	r := rule{base: base}
	if strings.HasPrefix(line, "!") {
		r.negate = true
		line = line[1:]
	}
	if strings.HasSuffix(line, "/") {
		r.dirOnly = true
		line = strings.TrimSuffix(line, "/")
	}
	// A slash anywhere in the body anchors the rule to its base directory;
	// without one it matches a name at any depth.
	if strings.HasPrefix(line, "/") {
		r.anchored = true
		line = line[1:]
	} else if strings.Contains(line, "/") {
		r.anchored = true
	}
	r.glob = line
	return r, true
}

// Match reports whether a path, relative to the root, is ignored. A nil
// matcher ignores nothing. Paths under an ignored directory are ignored
// with it.
func (m *Matcher) Match(path string, isDir bool) bool {
	if m == nil || len(m.rules) == 0 {
		return false
	}
	path = strings.TrimPrefix(filepath.ToSlash(path), "./")

	segs := strings.Split(path, "/")
	for i := 1; i < len(segs); i++ {
		if m.matchPath(strings.Join(segs[:i], "/"), true) {
			return true
		}
	}
	return m.matchPath(path, isDir)
}

// matchPath applies the rules in file order; the last hit wins, so a later
// negation can resurrect an ignored path.
func (m *Matcher) matchPath(path string, isDir bool) bool {
	ignored := false
	for _, r := range m.rules {
		if r.matches(path, isDir) {
			ignored = !r.negate
		}
	}
	return ignored
}

func (r *rule) matches(path string, isDir bool) bool {
	if r.dirOnly && !isDir {
		return false
	}
	if r.base != "" {
		if !strings.HasPrefix(path, r.base+"/") {
			return false
		}
		path = strings.TrimPrefix(path, r.base+"/")
	}
	segs := strings.Split(path, "/")
	if !r.anchored {
		// An unanchored rule is a single name; ignored ancestors were
		// already checked, so only the last segment is left to test.
		return matchSegment(r.glob, segs[len(segs)-1])
	}
	return matchSegments(strings.Split(r.glob, "/"), segs)
}

// matchSegments matches a slash-split glob against path segments. A "**"
// segment spans any number of them.
func matchSegments(glob, segs []string) bool {
	if len(glob) == 0 {
		return len(segs) == 0
	}
	if glob[0] == "**" {
		for i := 0; i <= len(segs); i++ {
			if matchSegments(glob[1:], segs[i:]) {
				return true
			}
		}
		return false
	}
	if len(segs) == 0 || !matchSegment(glob[0], segs[0]) {
		return false
	}
	return matchSegments(glob[1:], segs[1:])
}

// matchSegment matches one path segment against a glob segment, where *
// matches any run of characters and ? exactly one. Neither crosses a slash,
// since segments never contain one.
func matchSegment(glob, seg string) bool {
	gx, sx := 0, 0
	star, mark := -1, 0
	for sx < len(seg) {
		switch {
		case gx < len(glob) && glob[gx] == '*':
			star, mark = gx, sx
			gx++
		case gx < len(glob) && (glob[gx] == '?' || glob[gx] == seg[sx]):
			gx++
			sx++
		case star >= 0:
			mark++
			gx, sx = star+1, mark
		default:
			return false
		}
	}
	for gx < len(glob) && glob[gx] == '*' {
		gx++
	}
	return gx == len(glob)
}
