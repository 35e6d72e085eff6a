package passes

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/veosotano/lilc/internal/ast"
	"github.com/veosotano/lilc/internal/builder"
	"github.com/veosotano/lilc/internal/root"
	"github.com/veosotano/lilc/internal/types"
)

// buildWrappedFunction drives the real NodeStart/NodeData/NodeEnd/
// NodeCommit event protocol to commit a top-level function the way the
// builder actually produces one: a *ast.VarDecl named name whose
// InitVal is the *ast.FunctionDecl, never a bare FunctionDecl dropped
// straight into env.Root. Every pass under test here is exercised
// against that real shape instead of a hand-assembled fixture.
func buildWrappedFunction(b *builder.Builder, name string) *ast.FunctionDecl {
	b.NodeStart(ast.KindVarDecl)
	b.NodeData(name)
	b.NodeStart(ast.KindFunctionDecl)
	b.NodeData(name)
	b.NodeEnd()
	b.NodeCommit()
	b.NodeEnd()
	b.NodeCommit()

	v := b.Env.Root[len(b.Env.Root)-1].(*ast.VarDecl)
	return v.InitVal.(*ast.FunctionDecl)
}

// buildNamedStringCall drives the same event protocol to commit a
// top-level call "name(value)" into main's body, value being a string
// literal.
func buildNamedStringCall(b *builder.Builder, name, value string) {
	b.NodeStart(ast.KindFunctionCall)
	b.NodeStart(ast.KindValuePath)
	b.NodeStart(ast.KindVarName)
	b.NodeData(name)
	b.NodeEnd()
	b.NodeCommit()
	b.NodeEnd()
	b.NodeCommit()

	b.NodeStart(ast.KindStringLiteral)
	b.NodeData(value)
	b.NodeEnd()
	b.NodeCommit()

	b.NodeEnd()
	b.NodeCommit()
}

func TestPipeline_ResolvesAndInfersAcrossBuilderProducedFunctionWrapper(t *testing.T) {
	env := root.New()
	b := builder.New(env)

	fn := buildWrappedFunction(b, "describe")
	fn.Parameters = []ast.Parameter{{Name: "subject"}}

	buildNamedStringCall(b, "describe", "hi")
	b.Finish()

	require.Empty(t, b.Errors())

	failedPass, err := DefaultPipeline(silentLogger(), nil, nil, "", nil, nil).Execute(env)
	require.NoError(t, err)
	require.Empty(t, failedPass)

	call, ok := env.Main.Body[0].(*ast.FunctionCall)
	require.True(t, ok, "expected the first statement in main to be the describe call, got %#v", env.Main.Body[0])
	require.Same(t, fn, call.ResolvedCallee, "expected the call to resolve to the builder-produced function wrapped in a VarDecl")
	require.Equal(t, types.Str, fn.Parameters[0].Type, "expected the parameter's type to be inferred from the caller's actual argument")
	require.Equal(t, types.Null, fn.ReturnType, "expected a function with no return statement to get a null return type")
}

func TestPipeline_ManglesBuilderProducedOverloadsByParameterType(t *testing.T) {
	env := root.New()
	b := builder.New(env)

	strVersion := buildWrappedFunction(b, "greet")
	strVersion.Parameters = []ast.Parameter{{Name: "who", Type: types.Str}}
	strVersion.ReturnType = types.Null

	intVersion := buildWrappedFunction(b, "greet")
	intVersion.Parameters = []ast.Parameter{{Name: "who", Type: types.I64}}
	intVersion.ReturnType = types.Null

	b.Finish()
	require.Empty(t, b.Errors())

	failedPass, err := DefaultPipeline(silentLogger(), nil, nil, "", nil, nil).Execute(env)
	require.NoError(t, err)
	require.Empty(t, failedPass)

	require.Equal(t, "_lil_f5_greet_str", strVersion.MangledName)
	require.Equal(t, "_lil_f5_greet_l", intVersion.MangledName)
}
