package passes

import (
	"testing"

	"github.com/veosotano/lilc/internal/ast"
	"github.com/veosotano/lilc/internal/root"
)

func TestPreprocessor_IfTrueKeepsThenBranch(t *testing.T) {
	env := root.New()
	ifi := ast.NewIfInstruction()
	ifi.SetCondition(ast.NewBoolLiteral(true))
	ifi.AddThen(ast.NewStringLiteral("then"))
	ifi.AddElse(ast.NewStringLiteral("else"))
	env.Main.AddEvaluable(ifi)

	NewPreprocessor(silentLogger(), nil, nil, "", nil).PerformVisit(env)

	if len(env.Main.Body) != 1 {
		t.Fatalf("expected 1 surviving statement, got %d", len(env.Main.Body))
	}
	lit, ok := env.Main.Body[0].(*ast.StringLiteral)
	if !ok || lit.Value != "then" {
		t.Fatalf("expected the then branch to survive, got %#v", env.Main.Body[0])
	}
}

func TestPreprocessor_IfFalseKeepsElseBranch(t *testing.T) {
	env := root.New()
	ifi := ast.NewIfInstruction()
	ifi.SetCondition(ast.NewBoolLiteral(false))
	ifi.AddThen(ast.NewStringLiteral("then"))
	ifi.AddElse(ast.NewStringLiteral("else"))
	env.Main.AddEvaluable(ifi)

	NewPreprocessor(silentLogger(), nil, nil, "", nil).PerformVisit(env)

	lit, ok := env.Main.Body[0].(*ast.StringLiteral)
	if !ok || lit.Value != "else" {
		t.Fatalf("expected the else branch to survive, got %#v", env.Main.Body[0])
	}
}

func TestPreprocessor_IfEvaluatesComparisonExpression(t *testing.T) {
	env := root.New()
	cmp := ast.NewExpression(ast.OpGreaterThan)
	cmp.SetLeft(ast.NewNumberLiteral("3"))
	cmp.SetRight(ast.NewNumberLiteral("1"))

	ifi := ast.NewIfInstruction()
	ifi.SetCondition(cmp)
	ifi.AddThen(ast.NewStringLiteral("bigger"))
	env.Main.AddEvaluable(ifi)

	NewPreprocessor(silentLogger(), nil, nil, "", nil).PerformVisit(env)

	lit, ok := env.Main.Body[0].(*ast.StringLiteral)
	if !ok || lit.Value != "bigger" {
		t.Fatalf("expected the comparison to resolve true, got %#v", env.Main.Body[0])
	}
}

func TestPreprocessor_IfUnevaluableConditionRecordsError(t *testing.T) {
	env := root.New()
	ifi := ast.NewIfInstruction()
	ifi.SetCondition(ast.NewVarName("someRuntimeFlag"))
	ifi.AddThen(ast.NewStringLiteral("then"))
	env.Main.AddEvaluable(ifi)

	p := NewPreprocessor(silentLogger(), nil, nil, "", nil)
	p.PerformVisit(env)

	if len(p.Errors()) != 1 {
		t.Fatalf("expected 1 error for an unevaluable condition, got %d", len(p.Errors()))
	}
}

func TestPreprocessor_SnippetIsHarvestedAndPasteExpandsItsBody(t *testing.T) {
	env := root.New()
	snip := ast.NewSnippetInstruction("greeting")
	snip.AddBodyNode(ast.NewStringLiteral("hello"))
	env.Main.AddEvaluable(snip)

	paste := ast.NewInstruction(ast.InstructionPaste, "paste")
	paste.SetArgument(ast.NewVarName("greeting"))
	env.Main.AddEvaluable(paste)

	NewPreprocessor(silentLogger(), nil, nil, "", nil).PerformVisit(env)

	if len(env.Main.Body) != 1 {
		t.Fatalf("expected the snippet definition to vanish and the paste to expand to 1 node, got %d", len(env.Main.Body))
	}
	lit, ok := env.Main.Body[0].(*ast.StringLiteral)
	if !ok || lit.Value != "hello" {
		t.Fatalf("expected the pasted snippet body, got %#v", env.Main.Body[0])
	}
}

func TestPreprocessor_PasteOfUnknownSnippetRecordsError(t *testing.T) {
	env := root.New()
	paste := ast.NewInstruction(ast.InstructionPaste, "paste")
	paste.SetArgument(ast.NewVarName("mystery"))
	env.Main.AddEvaluable(paste)

	p := NewPreprocessor(silentLogger(), nil, nil, "", nil)
	p.PerformVisit(env)

	if len(p.Errors()) != 1 {
		t.Fatalf("expected 1 error for a paste of an undefined snippet, got %d", len(p.Errors()))
	}
}

func TestPreprocessor_ArgSubstitutesSuppliedValue(t *testing.T) {
	env := root.New()
	argInstr := ast.NewInstruction(ast.InstructionArg, "arg")
	argInstr.SetArgument(ast.NewVarName("windowTitle"))
	env.Main.AddEvaluable(argInstr)

	args := map[string]ast.Node{"windowTitle": ast.NewStringLiteral("My App")}
	NewPreprocessor(silentLogger(), nil, nil, "", args).PerformVisit(env)

	lit, ok := env.Main.Body[0].(*ast.StringLiteral)
	if !ok || lit.Value != "My App" {
		t.Fatalf("expected the supplied arg value substituted, got %#v", env.Main.Body[0])
	}
}

func TestPreprocessor_ArgWithoutSuppliedValueRecordsError(t *testing.T) {
	env := root.New()
	argInstr := ast.NewInstruction(ast.InstructionArg, "arg")
	argInstr.SetArgument(ast.NewVarName("missing"))
	env.Main.AddEvaluable(argInstr)

	p := NewPreprocessor(silentLogger(), nil, nil, "", nil)
	p.PerformVisit(env)

	if len(p.Errors()) != 1 {
		t.Fatalf("expected 1 error for an unsupplied #arg, got %d", len(p.Errors()))
	}
}

// fakeReader stands in for builder.SourceReader, returning a fixed body
// of source text for any path asked for.
type fakeReader struct {
	bodies map[string]string
}

func (r fakeReader) ReadSource(path string) (string, error) {
	return r.bodies[path], nil
}

func TestPreprocessor_NeedsSplicesExportedDeclarationsFromNestedUnit(t *testing.T) {
	env := root.New()
	needs := ast.NewInstruction(ast.InstructionNeeds, "needs")
	needs.SetArgument(ast.NewStringLiteral("util.lil"))
	env.Main.AddEvaluable(needs)

	exported := ast.NewClassDecl("widget")
	exported.SetExported(true)
	hidden := ast.NewClassDecl("internalHelper")

	reader := fakeReader{bodies: map[string]string{"util.lil": "class widget {}"}}
	parse := func(path, src string) (*root.Environment, error) {
		nested := root.New()
		nested.Root = append(nested.Root, exported, hidden)
		return nested, nil
	}

	NewPreprocessor(silentLogger(), reader, parse, "", nil).PerformVisit(env)

	if len(env.Main.Body) != 1 {
		t.Fatalf("expected 1 spliced declaration, got %d", len(env.Main.Body))
	}
	spliced, ok := env.Main.Body[0].(*ast.ClassDecl)
	if !ok || spliced.Name != "widget" {
		t.Fatalf("expected the exported widget class to be spliced in, got %#v", env.Main.Body[0])
	}
	if env.Classes["widget"] == nil {
		t.Error("expected the spliced class to be registered in the class registry")
	}
	if _, ok := env.Classes["internalHelper"]; ok {
		t.Error("expected the unexported class not to be registered")
	}
}

func TestPreprocessor_NeedsIsCycleSafe(t *testing.T) {
	env := root.New()
	first := ast.NewInstruction(ast.InstructionNeeds, "needs")
	first.SetArgument(ast.NewStringLiteral("util.lil"))
	env.Main.AddEvaluable(first)

	second := ast.NewInstruction(ast.InstructionNeeds, "needs")
	second.SetArgument(ast.NewStringLiteral("util.lil"))
	env.Main.AddEvaluable(second)

	calls := 0
	reader := fakeReader{bodies: map[string]string{"util.lil": ""}}
	parse := func(path, src string) (*root.Environment, error) {
		calls++
		return root.New(), nil
	}

	NewPreprocessor(silentLogger(), reader, parse, "", nil).PerformVisit(env)

	if calls != 1 {
		t.Errorf("expected the second #needs of the same path to be skipped, got %d parse calls", calls)
	}
}

func TestPreprocessor_NeedsWithoutParserConfiguredRecordsError(t *testing.T) {
	env := root.New()
	needs := ast.NewInstruction(ast.InstructionNeeds, "needs")
	needs.SetArgument(ast.NewStringLiteral("util.lil"))
	env.Main.AddEvaluable(needs)

	p := NewPreprocessor(silentLogger(), nil, nil, "", nil)
	p.PerformVisit(env)

	if len(p.Errors()) != 1 {
		t.Fatalf("expected 1 error when no parser is configured, got %d", len(p.Errors()))
	}
}
