package passes

import (
	"fmt"
	"log/slog"

	"github.com/veosotano/lilc/internal/ast"
	"github.com/veosotano/lilc/internal/config"
	"github.com/veosotano/lilc/internal/root"
)

// ConfigGetter implements spec §4.5 pass 2: replace "#getConfig name"
// instructions with a literal node carrying the named value from the
// external configuration document.
type ConfigGetter struct {
	Base
	Config config.Document
}

func NewConfigGetter(log *slog.Logger, cfg config.Document) *ConfigGetter {
	return &ConfigGetter{Base: NewBase("configGetter", log), Config: cfg}
}

func (p *ConfigGetter) PerformVisit(env *root.Environment) {
	RewriteTopLevel(env, func(n ast.Node) ([]ast.Node, bool) {
		instr, ok := n.(*ast.Instruction)
		if !ok || instr.InstrKind != ast.InstructionGetConfig {
			return nil, false
		}
		return p.resolve(instr), true
	})
}

func (p *ConfigGetter) resolve(instr *ast.Instruction) []ast.Node {
	name, ok := instr.Argument.(*ast.VarName)
	if !ok {
		p.Error(instr.Pos(), "#getConfig requires a configuration name")
		return nil
	}
	if p.Config == nil {
		p.Error(instr.Pos(), "no configuration document available for #getConfig %s", name.Name)
		return nil
	}
	val, ok := p.Config.Lookup(name.Name)
	if !ok {
		p.Error(instr.Pos(), "unknown configuration key %q", name.Name)
		return nil
	}
	lit := literalFor(val)
	if lit == nil {
		p.Error(instr.Pos(), "configuration key %q has an unsupported value type %T", name.Name, val)
		return nil
	}
	lit.SetPos(instr.Pos())
	return []ast.Node{lit}
}

// literalFor converts a decoded YAML scalar into the matching literal
// node; nil for anything that isn't a bool/number/string scalar.
func literalFor(val any) ast.Node {
	switch v := val.(type) {
	case bool:
		return ast.NewBoolLiteral(v)
	case string:
		return ast.NewStringLiteral(v)
	case int:
		return ast.NewNumberLiteral(fmt.Sprintf("%d", v))
	case int64:
		return ast.NewNumberLiteral(fmt.Sprintf("%d", v))
	case float64:
		return ast.NewFloatLiteral(fmt.Sprintf("%g", v))
	default:
		return nil
	}
}
