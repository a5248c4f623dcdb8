// Package errcheck - упрощённый анализатор необработанных ошибок.
package errcheck

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

var Analyzer = &analysis.Analyzer{
	Name:     "simpleerrcheck",
	Doc:      "reports calls whose error result is dropped as a bare statement",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

// Пакеты и типы, ошибки которых принято игнорировать.
var excludedPkgs = map[string]bool{
	"fmt": true,
}

var excludedRecv = map[string]bool{
	"bytes.Buffer":     true,
	"*bytes.Buffer":    true,
	"strings.Builder":  true,
	"*strings.Builder": true,
	"hash.Hash":        true,
}

func run(pass *analysis.Pass) (interface{}, error) {
	inspect := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.ExprStmt)(nil),
	}

	inspect.Preorder(nodeFilter, func(n ast.Node) {
		call, ok := n.(*ast.ExprStmt).X.(*ast.CallExpr)
		if !ok {
			return
		}
		if returnsError(pass, call) && !excluded(pass, call) {
			pass.Reportf(call.Pos(), "returned error is not handled")
		}
	})
	return nil, nil
}

func returnsError(pass *analysis.Pass, call *ast.CallExpr) bool {
	sig, ok := pass.TypesInfo.TypeOf(call.Fun).(*types.Signature)
	if !ok {
		return false
	}
	results := sig.Results()
	if results.Len() == 0 {
		return false
	}
	return types.Identical(results.At(results.Len()-1).Type(), types.Universe.Lookup("error").Type())
}

func excluded(pass *analysis.Pass, call *ast.CallExpr) bool {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	if t := pass.TypesInfo.TypeOf(sel.X); t != nil && excludedRecv[t.String()] {
		return true
	}
	fn, ok := pass.TypesInfo.Uses[sel.Sel].(*types.Func)
	if !ok {
		return false
	}
	if fn.Type().(*types.Signature).Recv() != nil {
		return false
	}
	return fn.Pkg() != nil && excludedPkgs[fn.Pkg().Path()]
}
