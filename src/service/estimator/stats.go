package estimator

import (
	"go/ast"
	"go/token"
	"math"
)

// maxWeightedLoopDepth caps the loop multiplier so deep nests stay finite
const maxWeightedLoopDepth = 3

// FuncStats are the raw operation counts of one function body
type FuncStats struct {
	Name      string
	Anonymous bool
	Lines     int

	Ops    int
	Calls  int
	Allocs int

	WeightedOps    float64
	WeightedCalls  float64
	WeightedAllocs float64

	Loops        int
	MaxLoopDepth int
	MaxNesting   int

	AllocsInLoop int
	ConcatInLoop int
	Recursive    bool
}

// selfRef identifies calls that recurse into the measured function
type selfRef struct {
	funcName string
	recvName string // receiver variable for methods
}

func (s selfRef) matches(call *ast.CallExpr) bool {
	if s.funcName == "" {
		return false
	}
	switch fn := call.Fun.(type) {
	case *ast.Ident:
		return s.recvName == "" && fn.Name == s.funcName
	case *ast.SelectorExpr:
		x, ok := fn.X.(*ast.Ident)
		return ok && s.recvName != "" && x.Name == s.recvName && fn.Sel.Name == s.funcName
	}
	return false
}

type statsVisitor struct {
	stats     *FuncStats
	self      selfRef
	loopIters float64
	loopDepth int
	nesting   int
}

func collectStats(body *ast.BlockStmt, self selfRef, loopIters int) *FuncStats {
	stats := &FuncStats{}
	if body == nil {
		return stats
	}
	iters := float64(loopIters)
	if iters < 1 {
		iters = 1
	}
	ast.Walk(statsVisitor{stats: stats, self: self, loopIters: iters}, body)
	return stats
}

func (v statsVisitor) weight() float64 {
	depth := v.loopDepth
	if depth > maxWeightedLoopDepth {
		depth = maxWeightedLoopDepth
	}
	return math.Pow(v.loopIters, float64(depth))
}

func (v statsVisitor) nested(loop bool) statsVisitor {
	child := v
	child.nesting++
	if child.nesting > v.stats.MaxNesting {
		v.stats.MaxNesting = child.nesting
	}
	if loop {
		child.loopDepth++
		if child.loopDepth > v.stats.MaxLoopDepth {
			v.stats.MaxLoopDepth = child.loopDepth
		}
	}
	return child
}

func (v statsVisitor) op() {
	v.stats.Ops++
	v.stats.WeightedOps += v.weight()
}

func (v statsVisitor) alloc() {
	v.stats.Allocs++
	v.stats.WeightedAllocs += v.weight()
	if v.loopDepth > 0 {
		v.stats.AllocsInLoop++
	}
}

func (v statsVisitor) Visit(node ast.Node) ast.Visitor {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	case *ast.FuncLit:
		// measured as its own function
		return nil

	case *ast.ForStmt, *ast.RangeStmt:
		v.op()
		v.stats.Loops++
		return v.nested(true)

	case *ast.IfStmt:
		v.op()
		child := v.nested(false)
		walkAll(child, n.Init, n.Cond, n.Body)
		if n.Else != nil {
			// else-if chains stay at the same depth
			if elseIf, ok := n.Else.(*ast.IfStmt); ok {
				ast.Walk(v, elseIf)
			} else {
				ast.Walk(child, n.Else)
			}
		}
		return nil

	case *ast.SwitchStmt, *ast.TypeSwitchStmt, *ast.SelectStmt:
		v.op()
		return v.nested(false)

	case *ast.CallExpr:
		v.stats.Calls++
		v.stats.WeightedCalls += v.weight()
		if isAllocCall(n) {
			v.alloc()
		}
		if v.self.matches(n) {
			v.stats.Recursive = true
		}

	case *ast.CompositeLit:
		v.alloc()

	case *ast.AssignStmt:
		v.op()
		if v.loopDepth > 0 && n.Tok == token.ADD_ASSIGN && len(n.Rhs) == 1 && looksLikeString(n.Rhs[0]) {
			v.stats.ConcatInLoop++
			v.alloc()
		}

	case *ast.BinaryExpr:
		v.op()
		if v.loopDepth > 0 && n.Op == token.ADD && (looksLikeString(n.X) || looksLikeString(n.Y)) {
			v.stats.ConcatInLoop++
		}

	case *ast.IncDecStmt, *ast.ReturnStmt, *ast.SendStmt, *ast.UnaryExpr, *ast.IndexExpr:
		v.op()

	case *ast.GoStmt:
		v.op()
		v.alloc()
	}

	return v
}

func walkAll(v ast.Visitor, nodes ...ast.Node) {
	for _, n := range nodes {
		if n != nil {
			ast.Walk(v, n)
		}
	}
}

func isAllocCall(call *ast.CallExpr) bool {
	switch fn := call.Fun.(type) {
	case *ast.Ident:
		switch fn.Name {
		case "make", "new", "append":
			return true
		}
	case *ast.SelectorExpr:
		if pkg, ok := fn.X.(*ast.Ident); ok && pkg.Name == "fmt" {
			switch fn.Sel.Name {
			case "Sprintf", "Sprint", "Sprintln", "Errorf":
				return true
			}
		}
	}
	return false
}

// looksLikeString reports whether an expression is evidently a string value
func looksLikeString(expr ast.Expr) bool {
	switch e := expr.(type) {
	case *ast.BasicLit:
		return e.Kind == token.STRING
	case *ast.CallExpr:
		if sel, ok := e.Fun.(*ast.SelectorExpr); ok {
			if pkg, ok := sel.X.(*ast.Ident); ok {
				return (pkg.Name == "fmt" && (sel.Sel.Name == "Sprintf" || sel.Sel.Name == "Sprint")) ||
					(pkg.Name == "strconv" && sel.Sel.Name == "Itoa")
			}
		}
		if id, ok := e.Fun.(*ast.Ident); ok {
			return id.Name == "string"
		}
	case *ast.BinaryExpr:
		return e.Op == token.ADD && (looksLikeString(e.X) || looksLikeString(e.Y))
	case *ast.ParenExpr:
		return looksLikeString(e.X)
	}
	return false
}
