package passes

import (
	"testing"

	"github.com/veosotano/lilc/internal/ast"
	"github.com/veosotano/lilc/internal/root"
)

// TestFieldSorter_IsANoOp documents that the field sorter is an
// intentional no-op stub: nothing in the pipeline yet needs object
// field reordering to be observable end to end, so this pass exists as
// a placeholder in the ordered sequence rather than a worked
// implementation (see pipeline.go).
func TestFieldSorter_IsANoOp(t *testing.T) {
	env := root.New()
	obj := ast.NewObjectDefinition("point")
	asn := ast.NewAssignment("y")
	asn.SetValue(ast.NewNumberLiteral("2"))
	obj.AddProperty(asn)
	env.Main.AddEvaluable(obj)

	before := len(obj.Properties)

	NewFieldSorter(silentLogger()).PerformVisit(env)

	if len(obj.Properties) != before || obj.Properties[0] != ast.Node(asn) {
		t.Error("expected the field sorter to leave property order untouched")
	}
}
