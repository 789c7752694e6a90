package repo

import (
	"path"
	"regexp"
	"strings"

	"github.com/odvcencio/gitlet/pkg/fsys"
)

// IgnoreFile is the per-repository ignore list in the working-tree root.
const IgnoreFile = ".gitletignore"

// IgnoreChecker decides whether a working-tree path is ignored. The
// .gitlet/ directory is always ignored. Later patterns override earlier
// ones, which makes "!" negation work.
type IgnoreChecker struct {
	patterns []ignorePattern
}

type ignorePattern struct {
	glob     string
	negated  bool
	dirOnly  bool
	anchored bool // contains a slash: match the full path, not the base name
	regex    *regexp.Regexp
}

// NewIgnoreChecker builds a checker from the lines of .gitletignore
// (read through work, missing is fine) followed by extra patterns.
func NewIgnoreChecker(work fsys.FS, extra []string) *IgnoreChecker {
	ic := &IgnoreChecker{}
	if data, err := work.ReadFile(IgnoreFile); err == nil {
		for _, line := range strings.Split(string(data), "\n") {
			ic.AddPattern(line)
		}
	}
	for _, line := range extra {
		ic.AddPattern(line)
	}
	return ic
}

// AddPattern appends one gitignore-style pattern. Blank lines and
// comments are skipped.
func (ic *IgnoreChecker) AddPattern(line string) {
	line = strings.TrimRight(line, " \t\r")
	if line == "" || strings.HasPrefix(line, "#") {
		return
	}
	p := ignorePattern{}
	if strings.HasPrefix(line, "!") {
		p.negated = true
		line = line[1:]
	}
	if strings.HasSuffix(line, "/") {
		p.dirOnly = true
		line = strings.TrimRight(line, "/")
	}
	if strings.HasPrefix(line, "/") {
		p.anchored = true
		line = strings.TrimLeft(line, "/")
	}
	if line == "" {
		return
	}
	p.anchored = p.anchored || strings.Contains(line, "/")
	p.glob = line
	if strings.Contains(line, "**") {
		if re, err := regexp.Compile(globToRegex(line)); err == nil {
			p.regex = re
		}
	}
	ic.patterns = append(ic.patterns, p)
}

// IsIgnored reports whether the slash-separated repository path rel is
// ignored. isDir tells whether rel itself names a directory.
func (ic *IgnoreChecker) IsIgnored(rel string, isDir bool) bool {
	if rel == DirName || hasDirPrefix(rel, DirName) {
		return true
	}
	ignored := false
	for i := range ic.patterns {
		p := &ic.patterns[i]
		if p.matches(rel, isDir) {
			ignored = !p.negated
		}
	}
	return ignored
}

// Skip adapts IsIgnored to fsys.SkipFunc.
func (ic *IgnoreChecker) Skip(rel string, isDir bool) bool {
	return ic.IsIgnored(rel, isDir)
}

func (p *ignorePattern) matches(rel string, isDir bool) bool {
	// A pattern naming a directory also covers everything below it.
	segments := strings.Split(rel, "/")
	for i := 1; i < len(segments); i++ {
		if p.matchOne(strings.Join(segments[:i], "/")) {
			return true
		}
	}
	if p.dirOnly && !isDir {
		return false
	}
	return p.matchOne(rel)
}

func (p *ignorePattern) matchOne(target string) bool {
	if !p.anchored {
		target = path.Base(target)
	}
	if p.regex != nil {
		return p.regex.MatchString(target)
	}
	ok, _ := path.Match(p.glob, target)
	return ok
}

// globToRegex translates a glob with "**" into an anchored regexp.
func globToRegex(glob string) string {
	var b strings.Builder
	b.WriteString("^")
	for i := 0; i < len(glob); i++ {
		ch := glob[i]
		switch {
		case ch == '*' && strings.HasPrefix(glob[i:], "**/"):
			b.WriteString("(?:.*/)?")
			i += 2
		case ch == '*' && strings.HasPrefix(glob[i:], "**"):
			b.WriteString(".*")
			i++
		case ch == '*':
			b.WriteString("[^/]*")
		case ch == '?':
			b.WriteString("[^/]")
		default:
			b.WriteString(regexp.QuoteMeta(string(ch)))
		}
	}
	b.WriteString("$")
	return b.String()
}

// ignoreChecker builds the checker for the repository's current ignore
// configuration.
func (r *Repo) ignoreChecker() *IgnoreChecker {
	return NewIgnoreChecker(r.Work, r.Config.Ignore.Patterns)
}
