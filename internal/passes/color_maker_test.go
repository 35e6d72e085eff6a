package passes

import (
	"testing"

	"github.com/veosotano/lilc/internal/ast"
	"github.com/veosotano/lilc/internal/root"
)

func colorInstruction(hex string) *ast.Instruction {
	kind, isColor, format := ast.ClassifyInstruction(hex)
	instr := ast.NewInstruction(kind, hex)
	instr.IsColorInstruction = isColor
	instr.Format = format
	return instr
}

func TestColorMaker_AllEightFormatsProduceExpectedRGBABytes(t *testing.T) {
	cases := []struct {
		name                       string
		hex                        string
		wantR, wantG, wantB, wantA int
	}{
		{"grayscale1", "f", 255, 255, 255, 255},
		{"grayscale2", "80", 128, 128, 128, 255},
		{"rgb", "f00", 255, 0, 0, 255},
		{"rgba", "f008", 255, 0, 0, 136},
		{"rgbaa", "f00ff", 255, 0, 0, 255},
		{"rrggbb", "ff0000", 255, 0, 0, 255},
		{"rrggbba", "ff0000f", 255, 0, 0, 255},
		{"rrggbbaa", "ff0000ff", 255, 0, 0, 255},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			env := root.New()
			instr := colorInstruction(c.hex)
			env.Main.AddEvaluable(instr)

			NewColorMaker(silentLogger()).PerformVisit(env)

			if len(env.Main.Body) != 1 {
				t.Fatalf("expected 1 statement after rewriting, got %d", len(env.Main.Body))
			}
			obj, ok := env.Main.Body[0].(*ast.ObjectDefinition)
			if !ok {
				t.Fatalf("expected an ObjectDefinition, got %#v", env.Main.Body[0])
			}
			if obj.ObjectName != "rgb" {
				t.Errorf("expected object name rgb, got %q", obj.ObjectName)
			}
			if len(obj.Properties) != 4 {
				t.Fatalf("expected 4 properties, got %d", len(obj.Properties))
			}
			got := map[string]string{}
			for _, p := range obj.Properties {
				asn := p.(*ast.Assignment)
				got[asn.PropertyName] = asn.Value.(*ast.NumberLiteral).Value
			}
			checkUnit(t, "red", got["red"], c.wantR)
			checkUnit(t, "green", got["green"], c.wantG)
			checkUnit(t, "blue", got["blue"], c.wantB)
			checkUnit(t, "alpha", got["alpha"], c.wantA)
		})
	}
}

func checkUnit(t *testing.T, field, gotText string, wantByte int) {
	t.Helper()
	want := formatUnit(wantByte)
	if gotText != want {
		t.Errorf("%s: expected %s, got %s", field, want, gotText)
	}
}

func TestColorMaker_MalformedLengthRecordsError(t *testing.T) {
	env := root.New()
	instr := ast.NewInstruction(ast.InstructionColor, "ff")
	instr.IsColorInstruction = true
	instr.Format = ast.ColorFormatRGB // expects 3 digits, "ff" has 2
	env.Main.AddEvaluable(instr)

	cm := NewColorMaker(silentLogger())
	cm.PerformVisit(env)

	if len(cm.Errors()) != 1 {
		t.Fatalf("expected 1 error for a mismatched digit count, got %d", len(cm.Errors()))
	}
}

func TestColorMaker_NonColorInstructionIsUntouched(t *testing.T) {
	env := root.New()
	instr := ast.NewInstruction(ast.InstructionNeeds, "needs")
	env.Main.AddEvaluable(instr)

	NewColorMaker(silentLogger()).PerformVisit(env)

	if env.Main.Body[0] != ast.Node(instr) {
		t.Error("expected a non-color instruction to be left in place")
	}
}
