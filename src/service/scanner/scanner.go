// Package scanner discovers candidate source files under a root and runs the
// estimator over them, isolating per-file failures.
package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/src-d/enry/v2"

	"sustainabot/src/config"
	"sustainabot/src/model"
	"sustainabot/src/service/estimator"
	"sustainabot/src/util"
)

// FileResult is the estimation outcome of one file
type FileResult struct {
	Path    string
	Records []model.FunctionRecord
	Err     error
}

// Result is the outcome of a directory scan.
// Records keep discovery order: files in lexical walk order, functions in
// source order within a file.
type Result struct {
	Root    string
	Records []model.FunctionRecord

	// FilesAnalyzed counts files that yielded at least one record
	FilesAnalyzed int
	// FilesEmpty counts files estimated without error but with no functions
	FilesEmpty int
	// FilesFailed counts files whose estimation failed; they contribute nothing
	FilesFailed int
	// FilesDiscovered counts candidate files handed to the estimator
	FilesDiscovered int
}

// Scanner walks directories and estimates candidate files
type Scanner struct {
	cfg         config.ScanConfig
	estimator   estimator.Estimator
	exclusions  *util.ExclusionMatcher
	extensions  map[string]bool
	excludeDirs map[string]bool
	maxFileSize uint64
}

// New creates a scanner
func New(cfg config.ScanConfig, est estimator.Estimator) (*Scanner, error) {
	maxSize, err := cfg.MaxFileSizeBytes()
	if err != nil {
		return nil, err
	}

	s := &Scanner{
		cfg:         cfg,
		estimator:   est,
		exclusions:  util.NewExclusionMatcher(cfg.Exclusions),
		extensions:  make(map[string]bool, len(cfg.Extensions)),
		excludeDirs: make(map[string]bool, len(cfg.ExcludeDirs)),
		maxFileSize: maxSize,
	}
	for _, ext := range cfg.Extensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		s.extensions[ext] = true
	}
	for _, dir := range cfg.ExcludeDirs {
		s.excludeDirs[dir] = true
	}

	return s, nil
}

// Discover lists candidate files under root in lexical order.
// An unreadable root is an error; unreadable entries below it are skipped.
func (s *Scanner) Discover(root string) ([]string, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("reading root %s: %w", root, err)
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			util.Debug("Skipping unreadable %s: %v", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if path != root && s.skipDir(d.Name(), rel) {
				util.Debug("Excluding directory %s", rel)
				return filepath.SkipDir
			}
			return nil
		}

		if s.acceptFile(path, rel, d) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	return files, nil
}

func (s *Scanner) skipDir(name, rel string) bool {
	if s.excludeDirs[name] {
		return true
	}
	return s.cfg.SkipVendored && enry.IsVendor(rel+"/")
}

func (s *Scanner) acceptFile(path, rel string, d fs.DirEntry) bool {
	if d.Type()&fs.ModeSymlink != 0 && !s.cfg.FollowLinks {
		return false
	}
	if !s.extensions[strings.ToLower(filepath.Ext(path))] {
		return false
	}
	if s.exclusions.MatchesFile(rel) {
		util.Debug("Excluding file %s", rel)
		return false
	}
	if s.cfg.SkipVendored && enry.IsVendor(rel) {
		return false
	}

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	if s.maxFileSize > 0 && uint64(info.Size()) > s.maxFileSize {
		util.Debug("Skipping %s: %d bytes exceeds size limit", rel, info.Size())
		return false
	}
	return true
}

// Scan discovers files under root and estimates them in parallel.
// Failed files are logged and excluded; only a bad root or cancellation
// aborts the scan.
func (s *Scanner) Scan(ctx context.Context, root string) (*Result, error) {
	startTime := time.Now()

	files, err := s.Discover(root)
	if err != nil {
		return nil, err
	}
	util.Debug("Discovered %d candidate files under %s", len(files), root)

	results := s.estimateAll(ctx, files)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("scan interrupted: %w", err)
	}

	res := &Result{Root: root, FilesDiscovered: len(files)}
	for _, fr := range results {
		if fr.Err != nil {
			util.Info("Skipping %s: %v", fr.Path, fr.Err)
			res.FilesFailed++
			continue
		}

		kept := s.filterFunctions(fr.Records)
		if len(kept) == 0 {
			res.FilesEmpty++
			continue
		}
		res.FilesAnalyzed++
		res.Records = append(res.Records, kept...)
	}

	util.Info("Scan complete: %d files analyzed, %d failed, %d functions (took %v)",
		res.FilesAnalyzed, res.FilesFailed, len(res.Records), time.Since(startTime))
	return res, nil
}

// estimateAll runs the estimator with bounded parallelism and returns
// results in the order of files
func (s *Scanner) estimateAll(ctx context.Context, files []string) []FileResult {
	var (
		results = make([]FileResult, len(files))
		wg      sync.WaitGroup
		sem     = make(chan struct{}, max(1, s.cfg.MaxParallelFiles))
	)

	for i, path := range files {
		results[i] = FileResult{Path: path}

		// Acquire semaphore before spawning so at most MaxParallelFiles goroutines exist
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			results[i].Err = ctx.Err()
			continue
		}

		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			defer func() { <-sem }() // Release semaphore

			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return
			}

			records, err := s.estimateFile(ctx, path)
			results[i].Records = records
			results[i].Err = err
		}(i, path)
	}

	wg.Wait()
	return results
}

// estimateFile shields the scan from estimator panics
func (s *Scanner) estimateFile(ctx context.Context, path string) (records []model.FunctionRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			records = nil
			err = fmt.Errorf("estimator panic: %v", r)
		}
	}()

	return s.estimator.Analyze(ctx, path)
}

func (s *Scanner) filterFunctions(records []model.FunctionRecord) []model.FunctionRecord {
	kept := records[:0:0]
	for _, r := range records {
		if r.Location.Name != nil && s.exclusions.MatchesFunction(*r.Location.Name) {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}
