package passes

import (
	"github.com/veosotano/lilc/internal/ast"
	"github.com/veosotano/lilc/internal/root"
)

// Rewriter is called once per node during Rewrite's traversal. It
// returns the nodes that should replace n (nil to delete it, a single
// node to replace it in place, more than one to splice several nodes
// where it stood) and whether it matched at all; when matched is
// false, n is kept as-is and Rewrite still recurses into its children.
//
// This is the substrate the preprocessor pass (needs splicing, #if
// branch selection, #paste expansion) and the structure lowerer
// (splicing a resolved "if type-of(x) is T" branch in place) both
// build on: neither the teacher's Stmt/Expr sum nor ast.Node expose a
// generic "replace this child" operation (Children() has no matching
// setter, deliberately — see ast.Node's doc comment on parent
// back-references), so container-shaped nodes are rewritten through
// their own typed, exported slice fields instead of reflection.
type Rewriter func(n ast.Node) (replacement []ast.Node, matched bool)

// expandSequence rewrites one exported []ast.Node slice in place,
// splicing each node's replacement (or nothing, for a deletion) where
// it stood, then recursing into every surviving or newly-spliced node
// so a single traversal handles arbitrarily nested expansions (a
// pasted snippet that itself contains a #needs, for instance).
func expandSequence(nodes []ast.Node, rw Rewriter) []ast.Node {
	out := make([]ast.Node, 0, len(nodes))
	for _, n := range nodes {
		if repl, matched := rw(n); matched {
			for _, r := range repl {
				RewriteChildren(r, rw)
				out = append(out, r)
			}
			continue
		}
		RewriteChildren(n, rw)
		out = append(out, n)
	}
	return out
}

// rewriteSingle rewrites a single optional-node field (Assignment.Value,
// VarDecl.InitVal, and the like): fields that hold at most one node
// rather than a sequence, but where a compile-time instruction
// (#getConfig, a color literal) can still legally appear and must be
// replaceable.
func rewriteSingle(n ast.Node, rw Rewriter) ast.Node {
	if n == nil {
		return nil
	}
	if repl, matched := rw(n); matched {
		if len(repl) == 0 {
			return nil
		}
		RewriteChildren(repl[0], rw)
		return repl[0]
	}
	RewriteChildren(n, rw)
	return n
}

// RewriteChildren dispatches on n's concrete type and rewrites every
// child slot it owns, reassigning each exported slice/field the node
// actually exposes. Leaf nodes (literals, names, selectors) fall
// through the default case untouched.
func RewriteChildren(n ast.Node, rw Rewriter) {
	switch c := n.(type) {
	case *ast.FunctionDecl:
		c.Body = expandSequence(c.Body, rw)
		if c.Finally != nil {
			c.Finally = rewriteSingle(c.Finally, rw)
		}
	case *ast.ClassDecl:
		c.Body = expandSequence(c.Body, rw)
	case *ast.ConversionDecl:
		c.Body = expandSequence(c.Body, rw)
	case *ast.SnippetInstruction:
		c.Body = expandSequence(c.Body, rw)
	case *ast.IfInstruction:
		c.Then = expandSequence(c.Then, rw)
		c.Else = expandSequence(c.Else, rw)
	case *ast.FlowControl:
		c.Arguments = expandSequence(c.Arguments, rw)
		c.Then = expandSequence(c.Then, rw)
		c.Else = expandSequence(c.Else, rw)
	case *ast.Rule:
		c.Values = expandSequence(c.Values, rw)
		for _, child := range c.ChildRules {
			RewriteChildren(child, rw)
		}
	case *ast.ObjectDefinition:
		c.Properties = expandSequence(c.Properties, rw)
	case *ast.ValueList:
		c.Values = expandSequence(c.Values, rw)
	case *ast.StringFunction:
		c.Arguments = expandSequence(c.Arguments, rw)
	case *ast.FunctionCall:
		c.Arguments = expandSequence(c.Arguments, rw)
		if c.Subject != nil {
			c.Subject = rewriteSingle(c.Subject, rw)
		}
	case *ast.ValuePath:
		c.Segments = expandSequence(c.Segments, rw)
	case *ast.Assignment:
		if c.Value != nil {
			c.Value = rewriteSingle(c.Value, rw)
		}
	case *ast.VarDecl:
		if c.InitVal != nil {
			c.InitVal = rewriteSingle(c.InitVal, rw)
		}
	case *ast.FlowControlCall:
		if c.Argument != nil {
			c.Argument = rewriteSingle(c.Argument, rw)
		}
	case *ast.IndexAccessor:
		if c.Argument != nil {
			c.Argument = rewriteSingle(c.Argument, rw)
		}
	case *ast.Expression:
		if c.Left != nil {
			c.Left = rewriteSingle(c.Left, rw)
		}
		if c.Right != nil {
			c.Right = rewriteSingle(c.Right, rw)
		}
	case *ast.UnaryExpression:
		if c.Value != nil {
			c.Value = rewriteSingle(c.Value, rw)
		}
		if c.Subject != nil {
			c.Subject = rewriteSingle(c.Subject, rw)
		}
	case *ast.Instruction:
		if c.Argument != nil {
			c.Argument = rewriteSingle(c.Argument, rw)
		}
	}
}

// RewriteTopLevel rewrites env.Root and env.Main's body, the two
// top-level sequences every compilation unit has, then recurses into
// every surviving declaration's own children.
func RewriteTopLevel(env *root.Environment, rw Rewriter) {
	env.Root = expandSequence(env.Root, rw)
	if env.Main != nil {
		RewriteChildren(env.Main, rw)
	}
}
