package estimator

import (
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"

	"sustainabot/src/config"
	"sustainabot/src/model"
)

// GoEstimator measures Go functions, methods and function literals
type GoEstimator struct {
	cfg       config.EstimatorConfig
	detectors []Detector
}

// NewGoEstimator creates a Go source estimator
func NewGoEstimator(cfg config.EstimatorConfig) *GoEstimator {
	return &GoEstimator{
		cfg:       cfg,
		detectors: NewDetectors(cfg),
	}
}

// Analyze reads and measures one Go file
func (e *GoEstimator) Analyze(ctx context.Context, path string) ([]model.FunctionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return e.AnalyzeSource(path, src)
}

// AnalyzeSource measures Go source already in memory.
// Records are returned in source order.
func (e *GoEstimator) AnalyzeSource(path string, src []byte) ([]model.FunctionRecord, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, src, parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	var records []model.FunctionRecord
	ast.Inspect(file, func(n ast.Node) bool {
		switch fn := n.(type) {
		case *ast.FuncDecl:
			if fn.Body == nil {
				return false
			}
			name, self := declName(fn)
			records = append(records, e.measure(fset, path, fn.Pos(), fn.End(), fn.Body, &name, self))
		case *ast.FuncLit:
			records = append(records, e.measure(fset, path, fn.Pos(), fn.End(), fn.Body, nil, selfRef{}))
		}
		return true
	})

	return records, nil
}

func (e *GoEstimator) measure(fset *token.FileSet, path string, start, end token.Pos, body *ast.BlockStmt, name *string, self selfRef) model.FunctionRecord {
	stats := collectStats(body, self, e.cfg.AssumedLoopIters)
	pos := fset.Position(start)
	stats.Lines = fset.Position(end).Line - pos.Line + 1
	if name != nil {
		stats.Name = *name
	} else {
		stats.Anonymous = true
	}

	patterns := detectPatterns(e.detectors, stats)
	usage := estimateResources(stats, e.cfg)
	health := scoreHealth(stats, usage, patterns, e.cfg)

	return model.FunctionRecord{
		Location: model.Location{
			Name:   name,
			File:   path,
			Line:   pos.Line,
			Column: pos.Column,
		},
		Resources:       usage,
		Health:          health,
		Recommendations: recommend(patterns, health, usage),
		Patterns:        patterns,
	}
}

// declName returns "Func" or "Type.Method" and the recursion matcher
func declName(fn *ast.FuncDecl) (string, selfRef) {
	self := selfRef{funcName: fn.Name.Name}
	if fn.Recv == nil || len(fn.Recv.List) == 0 {
		return fn.Name.Name, self
	}

	recv := fn.Recv.List[0]
	if len(recv.Names) > 0 {
		self.recvName = recv.Names[0].Name
	} else {
		// unnamed receivers cannot recurse through the receiver
		self.funcName = ""
	}

	return receiverType(recv.Type) + "." + fn.Name.Name, self
}

func receiverType(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return receiverType(t.X)
	case *ast.IndexExpr:
		return receiverType(t.X)
	case *ast.IndexListExpr:
		return receiverType(t.X)
	case *ast.Ident:
		return t.Name
	}
	return "?"
}
