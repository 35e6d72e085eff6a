package passes

import (
	"testing"

	"github.com/veosotano/lilc/internal/root"
	"github.com/veosotano/lilc/internal/source"
)

// fakePass is a minimal Visitor used to observe Manager.Execute's
// ordering and abort-on-error contract without exercising a real pass.
type fakePass struct {
	name      string
	errs      []error
	order     *[]string
	initOrder *[]string
}

func (p *fakePass) Name() string { return p.name }
func (p *fakePass) InitializeVisit() {
	if p.initOrder != nil {
		*p.initOrder = append(*p.initOrder, p.name)
	}
}
func (p *fakePass) PerformVisit(env *root.Environment) {
	if p.order != nil {
		*p.order = append(*p.order, p.name)
	}
}
func (p *fakePass) Errors() []error { return p.errs }
func (p *fakePass) HasErrors() bool { return len(p.errs) > 0 }

func TestManager_RunsPassesInOrder(t *testing.T) {
	var order []string
	first := &fakePass{name: "first", order: &order}
	second := &fakePass{name: "second", order: &order}
	third := &fakePass{name: "third", order: &order}

	m := NewManager(silentLogger(), first, second, third)
	failedPass, err := m.Execute(root.New())

	if err != nil {
		t.Fatalf("expected a clean run, got error: %v", err)
	}
	if failedPass != "" {
		t.Errorf("expected no failed pass, got %q", failedPass)
	}
	want := []string{"first", "second", "third"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i, name := range want {
		if order[i] != name {
			t.Errorf("expected pass %d to be %q, got %q", i, name, order[i])
		}
	}
}

func TestManager_InitializeVisitRunsBeforePerformVisitForEachPass(t *testing.T) {
	var inits []string
	var perf []string
	p := &fakePass{name: "solo", order: &perf, initOrder: &inits}

	NewManager(silentLogger(), p).Execute(root.New())

	if len(inits) != 1 || inits[0] != "solo" {
		t.Errorf("expected InitializeVisit to run once for solo, got %v", inits)
	}
	if len(perf) != 1 || perf[0] != "solo" {
		t.Errorf("expected PerformVisit to run once for solo, got %v", perf)
	}
}

func TestManager_AbortsAfterFirstPassWithErrors(t *testing.T) {
	var order []string
	ok := &fakePass{name: "ok", order: &order}
	failing := &fakePass{name: "failing", order: &order, errs: []error{
		Diagnostic{Message: "something went wrong"},
	}}
	neverRuns := &fakePass{name: "neverRuns", order: &order}

	m := NewManager(silentLogger(), ok, failing, neverRuns)
	failedPass, err := m.Execute(root.New())

	if failedPass != "failing" {
		t.Errorf("expected the failing pass to be reported, got %q", failedPass)
	}
	if err == nil {
		t.Fatal("expected a non-nil error once a pass records errors")
	}
	if len(order) != 2 {
		t.Fatalf("expected exactly 2 passes to run before aborting, got %v", order)
	}
	if order[0] != "ok" || order[1] != "failing" {
		t.Errorf("expected ok then failing to run, got %v", order)
	}
}

func TestManager_EmptyPipelineSucceedsTrivially(t *testing.T) {
	m := NewManager(silentLogger())
	failedPass, err := m.Execute(root.New())
	if err != nil || failedPass != "" {
		t.Errorf("expected an empty pipeline to succeed, got failedPass=%q err=%v", failedPass, err)
	}
}

func TestDiagnostic_ErrorFormatsPositionWhenValid(t *testing.T) {
	d := Diagnostic{Message: "boom", Pos: source.Position{Line: 3, Column: 5}}
	if got := d.Error(); got == "boom" {
		t.Errorf("expected a valid position to be included in the error text, got %q", got)
	}
}

func TestDiagnostic_ErrorOmitsInvalidPosition(t *testing.T) {
	d := Diagnostic{Message: "boom"}
	if got := d.Error(); got != "boom" {
		t.Errorf("expected an invalid position to be omitted, got %q", got)
	}
}
