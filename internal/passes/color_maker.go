package passes

import (
	"log/slog"
	"strconv"

	"github.com/veosotano/lilc/internal/ast"
	"github.com/veosotano/lilc/internal/root"
	"github.com/veosotano/lilc/internal/types"
)

// ColorMaker implements spec §4.5 pass 3: rewrite color-literal
// instructions into ObjectDefinitions of type "rgb" with red/green/
// blue/alpha f64 fields in [0.0, 1.0].
type ColorMaker struct {
	Base
}

func NewColorMaker(log *slog.Logger) *ColorMaker {
	return &ColorMaker{Base: NewBase("colorMaker", log)}
}

func (p *ColorMaker) PerformVisit(env *root.Environment) {
	RewriteTopLevel(env, func(n ast.Node) ([]ast.Node, bool) {
		instr, ok := n.(*ast.Instruction)
		if !ok || !instr.IsColorInstruction {
			return nil, false
		}
		obj := p.rgbObject(instr)
		if obj == nil {
			return nil, true
		}
		obj.SetPos(instr.Pos())
		return []ast.Node{obj}, true
	})
}

// rgbObject parses the hex digits in instr.Name per instr.Format and
// builds the "rgb" ObjectDefinition, per spec §4.5 pass 3's eight
// parsing rules.
func (p *ColorMaker) rgbObject(instr *ast.Instruction) *ast.ObjectDefinition {
	digits := instr.Name
	var r, g, b, a int
	switch instr.Format {
	case ast.ColorFormatGrayscale1:
		if len(digits) != 1 {
			p.Error(instr.Pos(), "malformed grayscale color literal #%s", digits)
			return nil
		}
		r = repeatedByte(digits[0])
		g, b, a = r, r, 255
	case ast.ColorFormatGrayscale2:
		if len(digits) != 2 {
			p.Error(instr.Pos(), "malformed grayscale color literal #%s", digits)
			return nil
		}
		r = hexByte(digits[0:2])
		g, b, a = r, r, 255
	case ast.ColorFormatRGB:
		if len(digits) != 3 {
			p.Error(instr.Pos(), "malformed RGB color literal #%s", digits)
			return nil
		}
		r, g, b = repeatedByte(digits[0]), repeatedByte(digits[1]), repeatedByte(digits[2])
		a = 255
	case ast.ColorFormatRGBA:
		if len(digits) != 4 {
			p.Error(instr.Pos(), "malformed RGBA color literal #%s", digits)
			return nil
		}
		r, g, b, a = repeatedByte(digits[0]), repeatedByte(digits[1]), repeatedByte(digits[2]), repeatedByte(digits[3])
	case ast.ColorFormatRGBAA:
		if len(digits) != 5 {
			p.Error(instr.Pos(), "malformed RGBAA color literal #%s", digits)
			return nil
		}
		r, g, b = repeatedByte(digits[0]), repeatedByte(digits[1]), repeatedByte(digits[2])
		a = hexByte(digits[3:5])
	case ast.ColorFormatRRGGBB:
		if len(digits) != 6 {
			p.Error(instr.Pos(), "malformed RRGGBB color literal #%s", digits)
			return nil
		}
		r, g, b = hexByte(digits[0:2]), hexByte(digits[2:4]), hexByte(digits[4:6])
		a = 255
	case ast.ColorFormatRRGGBBA:
		if len(digits) != 7 {
			p.Error(instr.Pos(), "malformed RRGGBBA color literal #%s", digits)
			return nil
		}
		r, g, b = hexByte(digits[0:2]), hexByte(digits[2:4]), hexByte(digits[4:6])
		a = repeatedByte(digits[6])
	case ast.ColorFormatRRGGBBAA:
		if len(digits) != 8 {
			p.Error(instr.Pos(), "malformed RRGGBBAA color literal #%s", digits)
			return nil
		}
		r, g, b, a = hexByte(digits[0:2]), hexByte(digits[2:4]), hexByte(digits[4:6]), hexByte(digits[6:8])
	default:
		p.Error(instr.Pos(), "unrecognized color literal format for #%s", digits)
		return nil
	}

	rgbType := types.NewObject("rgb")
	rgbType.Fields["red"] = types.F64
	rgbType.Fields["green"] = types.F64
	rgbType.Fields["blue"] = types.F64
	rgbType.Fields["alpha"] = types.F64

	obj := ast.NewObjectDefinition("rgb")
	obj.Type = rgbType
	obj.AddProperty(floatAssignment("red", r))
	obj.AddProperty(floatAssignment("green", g))
	obj.AddProperty(floatAssignment("blue", b))
	obj.AddProperty(floatAssignment("alpha", a))
	return obj
}

func floatAssignment(name string, byteVal int) *ast.Assignment {
	asn := ast.NewAssignment(name)
	lit := ast.NewFloatLiteral(formatUnit(byteVal))
	asn.SetValue(lit)
	return asn
}

// formatUnit converts a 0-255 byte value to its [0.0, 1.0] text form.
func formatUnit(byteVal int) string {
	return strconv.FormatFloat(float64(byteVal)/255.0, 'g', -1, 64)
}

// repeatedByte parses a single hex digit doubled ("f" -> "ff" -> 255).
func repeatedByte(d byte) int {
	return hexByte(string([]byte{d, d}))
}

func hexByte(s string) int {
	v, err := strconv.ParseInt(s, 16, 32)
	if err != nil {
		return 0
	}
	return int(v)
}
