// Package estimator produces per-function resource measurements from source
// files. The aggregation and threshold logic treat it as an opaque
// collaborator behind the Estimator interface.
package estimator

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/src-d/enry/v2"

	"sustainabot/src/model"
)

// ErrUnsupportedLanguage is returned for files no estimator understands
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Estimator measures the functions of one source file
type Estimator interface {
	Analyze(ctx context.Context, path string) ([]model.FunctionRecord, error)
}

// Registry selects an estimator by detected language
type Registry struct {
	byLanguage map[string]Estimator
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{byLanguage: make(map[string]Estimator)}
}

// Register binds an estimator to a language name as reported by enry
func (r *Registry) Register(language string, e Estimator) {
	r.byLanguage[language] = e
}

// Languages returns the registered language names, sorted
func (r *Registry) Languages() []string {
	names := make([]string, 0, len(r.byLanguage))
	for name := range r.byLanguage {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DetectLanguage resolves the language of a file, looking at content only
// when the file name is ambiguous
func DetectLanguage(path string, content func() []byte) string {
	lang := enry.GetLanguage(filepath.Base(path), nil)
	if lang == "" && content != nil {
		lang = enry.GetLanguage(filepath.Base(path), content())
	}
	return lang
}

// ForLanguage returns the estimator bound to language
func (r *Registry) ForLanguage(language string) (Estimator, bool) {
	e, ok := r.byLanguage[language]
	return e, ok
}

// Analyze dispatches path to the estimator of its language
func (r *Registry) Analyze(ctx context.Context, path string) ([]model.FunctionRecord, error) {
	lang := DetectLanguage(path, nil)
	e, ok := r.ForLanguage(lang)
	if !ok {
		return nil, fmt.Errorf("%w: %s (%q)", ErrUnsupportedLanguage, path, lang)
	}
	return e.Analyze(ctx, path)
}
