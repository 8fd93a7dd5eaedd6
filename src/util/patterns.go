package util

import (
	"regexp"
	"strings"

	"sustainabot/src/config"
)

// ExclusionMatcher matches files and functions against exclusion patterns
type ExclusionMatcher struct {
	files            map[string]bool
	filePatterns     []*regexp.Regexp
	functionPatterns []*regexp.Regexp
}

// NewExclusionMatcher creates a new exclusion matcher from config.
// Patterns that fail to compile are reported and skipped.
func NewExclusionMatcher(cfg config.ExclusionsConfig) *ExclusionMatcher {
	m := &ExclusionMatcher{
		files: make(map[string]bool, len(cfg.Files)),
	}

	for _, f := range cfg.Files {
		m.files[f] = true
	}

	for _, p := range cfg.FilePatterns {
		re, err := compileGlob(p)
		if err != nil {
			Warn("Ignoring invalid file exclusion pattern %q: %v", p, err)
			continue
		}
		m.filePatterns = append(m.filePatterns, re)
	}

	for _, p := range cfg.FunctionPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			Warn("Ignoring invalid function exclusion pattern %q: %v", p, err)
			continue
		}
		m.functionPatterns = append(m.functionPatterns, re)
	}

	return m
}

// MatchesFile checks if a slash-separated relative path should be excluded
func (m *ExclusionMatcher) MatchesFile(filePath string) bool {
	if m.files[filePath] {
		return true
	}
	for _, re := range m.filePatterns {
		if re.MatchString(filePath) {
			return true
		}
	}
	return false
}

// MatchesFunction checks if a function name should be excluded
func (m *ExclusionMatcher) MatchesFunction(funcName string) bool {
	if funcName == "" {
		return false
	}
	for _, re := range m.functionPatterns {
		if re.MatchString(funcName) {
			return true
		}
	}
	return false
}

// MatchGlob matches a slash-separated path against a glob pattern.
// "*" and "?" stay within one path segment, "**" spans segments.
func MatchGlob(pattern, path string) bool {
	re, err := compileGlob(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(path)
}

func compileGlob(pattern string) (*regexp.Regexp, error) {
	var sb strings.Builder
	sb.WriteString("^")

	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case strings.HasPrefix(pattern[i:], "**/"):
			sb.WriteString("(?:.*/)?")
			i += 2
		case strings.HasPrefix(pattern[i:], "/**") && i+3 == len(pattern):
			sb.WriteString("(?:/.*)?")
			i += 2
		case strings.HasPrefix(pattern[i:], "**"):
			sb.WriteString(".*")
			i++
		case c == '*':
			sb.WriteString("[^/]*")
		case c == '?':
			sb.WriteString("[^/]")
		default:
			sb.WriteString(regexp.QuoteMeta(string(c)))
		}
	}

	sb.WriteString("$")
	return regexp.Compile(sb.String())
}
