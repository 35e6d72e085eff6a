// Package main provides the lilc demo entry point.
//
// This demonstrates the front/middle-end pipeline this module
// implements:
//  1. AST assembly (internal/builder, internal/ast)
//  2. The twelve-pass semantic pipeline (internal/passes)
//  3. A summary dump of the lowered declarations
//
// lilc has no concrete-syntax parser of its own (out of scope per the
// front end this module implements); "build" and "dump-ast" both run
// against a small fixture program assembled directly through the AST
// constructors, standing in for whatever a real .lil parser would
// hand the builder.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/veosotano/lilc/internal/ast"
	"github.com/veosotano/lilc/internal/config"
	"github.com/veosotano/lilc/internal/passes"
	"github.com/veosotano/lilc/internal/root"
	"github.com/veosotano/lilc/internal/types"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "lilc",
		Short: "LIL front/middle-end demo compiler",
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML #getConfig document")

	rootCmd.AddCommand(newDumpASTCmd())
	rootCmd.AddCommand(newBuildCmd(&configPath))
	return rootCmd
}

func newDumpASTCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump-ast",
		Short: "print the unlowered fixture AST",
		RunE: func(cmd *cobra.Command, args []string) error {
			env := fixtureProgram()
			printEnvironment(cmd.OutOrStdout(), env, "fixture (pre-pass)")
			return nil
		},
	}
}

func newBuildCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "run the fixture program through the full pass pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Document{"title": "Untitled"}
			if *configPath != "" {
				data, err := os.ReadFile(*configPath)
				if err != nil {
					return err
				}
				cfg, err = config.Load(data)
				if err != nil {
					return err
				}
			}

			log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
			env := fixtureProgram()
			mgr := passes.DefaultPipeline(log, nil, nil, ".", nil, cfg)
			failedPass, err := mgr.Execute(env)
			if err != nil {
				return fmt.Errorf("pass %s: %w", failedPass, err)
			}

			printEnvironment(cmd.OutOrStdout(), env, "lowered")
			return nil
		},
	}
}

// fixtureProgram assembles a small but representative compilation
// unit directly through the AST constructors: a "point" class with two
// ivars and no hand-written accessors, a top-level "describe" function
// whose parameter takes a strong multiple type (exercising the
// structure lowerer), and a #getColor-style hex literal plus a
// #getConfig lookup (exercising the color maker and config getter).
func fixtureProgram() *root.Environment {
	env := root.New()

	point := ast.NewClassDecl("point")
	point.Type = types.NewObject("point")

	x := ast.NewVarDecl("x")
	x.IsIVar = true
	x.Type = types.I64
	point.AddMember(x)

	y := ast.NewVarDecl("y")
	y.IsIVar = true
	y.Type = types.I64
	point.AddMember(y)

	env.RegisterClass(point)
	env.AddTopLevel(point)

	describe := ast.NewFunctionDecl("describe")
	describe.Parameters = []ast.Parameter{
		{Name: "subject", Type: types.NewMultiple([]types.Type{types.NewObject("point"), types.Str}, true)},
	}
	isPoint := ast.NewFlowControl(ast.FlowControlIfIs)
	isPoint.TestType = types.NewObject("point")
	isPoint.AddArgument(ast.NewVarName("subject"))
	ret := ast.NewFlowControlCall(ast.FlowControlCallReturn)
	ret.SetArgument(ast.NewStringLiteral("a point"))
	isPoint.AddThen(ret)
	elseRet := ast.NewFlowControlCall(ast.FlowControlCallReturn)
	elseRet.SetArgument(ast.NewStringLiteral("something else"))
	isPoint.AddElse(elseRet)
	describe.AddEvaluable(isPoint)
	env.AddTopLevel(describe)

	background := ast.NewInstruction(ast.InstructionColor, "ff8800")
	kind, isColor, format := ast.ClassifyInstruction(background.Name)
	background.InstrKind = kind
	background.IsColorInstruction = isColor
	background.Format = format
	bgDecl := ast.NewVarDecl("background")
	bgDecl.SetInitVal(background)
	env.AddTopLevel(bgDecl)

	title := ast.NewInstruction(ast.InstructionGetConfig, "")
	title.SetArgument(ast.NewVarName("title"))
	titleDecl := ast.NewVarDecl("title")
	titleDecl.SetInitVal(title)
	env.AddTopLevel(titleDecl)

	return env
}

func printEnvironment(w io.Writer, env *root.Environment, label string) {
	fmt.Fprintf(w, "=== %s ===\n", label)
	for _, n := range env.Root {
		switch v := n.(type) {
		case *ast.ClassDecl:
			fmt.Fprintf(w, "class %s\n", v.Name)
			for _, m := range v.Body {
				if fn, ok := m.(*ast.FunctionDecl); ok {
					fmt.Fprintf(w, "  method %s mangled=%q\n", fn.Name, fn.MangledName)
				}
				if vd, ok := m.(*ast.VarDecl); ok {
					fmt.Fprintf(w, "  ivar %s: %s\n", vd.Name, typeString(vd.Type))
				}
			}
		case *ast.FunctionDecl:
			fmt.Fprintf(w, "function %s(...) -> %s mangled=%q\n", v.Name, typeString(v.ReturnType), v.MangledName)
		case *ast.VarDecl:
			fmt.Fprintf(w, "var %s: %s\n", v.Name, typeString(v.Type))
		default:
			fmt.Fprintf(w, "%T\n", v)
		}
	}
}

func typeString(t types.Type) string {
	if t == nil {
		return "<unresolved>"
	}
	return t.String()
}
