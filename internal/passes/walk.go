package passes

import (
	"github.com/veosotano/lilc/internal/ast"
	"github.com/veosotano/lilc/internal/root"
)

// WalkEnvironment runs ast.Walk over every top-level declaration in
// env.Root plus the synthesized main function, the read-only
// counterpart to RewriteTopLevel for passes (the validator, the type
// guesser's several read/annotate sub-phases) that need to visit every
// node without needing to splice the tree.
func WalkEnvironment(env *root.Environment, visit func(n ast.Node) bool) {
	v := ast.VisitorFunc(visit)
	for _, n := range env.Root {
		ast.Walk(n, v)
	}
	if env.Main != nil {
		ast.Walk(env.Main, v)
	}
}
