// Package passes implements the ordered semantic-pass pipeline (spec
// §4.5): preprocessor, config getter, color maker, AST validator, field
// sorter, parameter sorter, method inserter, conversion inserter, type
// guesser, type resolver, structure lowerer, and name lowerer, plus the
// Manager that runs them in order and aborts on the first pass that
// records errors.
//
// Teacher shape: internal/optimizer/optimizer.go's Pass/Optimizer
// abstraction — a named unit with a Run-and-report-changed contract,
// driven by an ordered list an Optimizer iterates — generalized here
// from a fixed-point optimization loop (run passes until nothing
// changes) to a single-pass, abort-on-error pipeline, since spec §4.5
// explicitly specifies an ordered one-shot run rather than a fixed
// point. Visitor's InitializeVisit/PerformVisit split mirrors the
// teacher's Pass.Name()/Pass.Run() split, with an added
// InitializeVisit "log banner" hook spec §4.5 calls for explicitly.
package passes

import (
	"log/slog"

	"github.com/pkg/errors"

	"github.com/veosotano/lilc/internal/root"
	"github.com/veosotano/lilc/internal/source"
)

// Diagnostic is the {message, file, line, column} error record every
// pass accumulates (spec §7), the same shape internal/builder.Diagnostic
// uses for parser-reported errors.
type Diagnostic struct {
	Message string
	Pos     source.Position
}

func (d Diagnostic) Error() string {
	if !d.Pos.IsValid() {
		return d.Message
	}
	return d.Pos.String() + ": " + d.Message
}

// Visitor is implemented by every pass. PerformVisit does the actual
// rewriting/checking and may be called only once per pass instance;
// Errors/HasErrors report what it found.
type Visitor interface {
	Name() string
	InitializeVisit()
	PerformVisit(env *root.Environment)
	Errors() []error
	HasErrors() bool
}

// Base is embedded by every concrete pass to supply the common
// error-accumulation and logging plumbing, the same way every node
// variant in internal/ast embeds ast.Base.
type Base struct {
	name string
	log  *slog.Logger
	errs []error
}

// NewBase constructs a Base for a pass named name, logging through
// log (or slog.Default() if nil).
func NewBase(name string, log *slog.Logger) Base {
	if log == nil {
		log = slog.Default()
	}
	return Base{name: name, log: log.With("pass", name)}
}

func (b *Base) Name() string { return b.name }

// InitializeVisit is the spec §4.5 "log-banner hook": every pass logs
// that it is starting before PerformVisit runs, via log/slog per
// SPEC_FULL.md's AMBIENT STACK (no third-party structured-logging
// library appears anywhere in the retrieved pack tied to a
// compiler-shaped project, so the standard logger is used here).
func (b *Base) InitializeVisit() {
	b.log.Info("pass starting")
}

func (b *Base) Errors() []error   { return b.errs }
func (b *Base) HasErrors() bool   { return len(b.errs) > 0 }

// Error records a diagnostic against pos.
func (b *Base) Error(pos source.Position, format string, args ...any) {
	b.errs = append(b.errs, Diagnostic{Message: errors.Errorf(format, args...).Error(), Pos: pos})
}

// Logger exposes the pass's scoped logger to subtype methods that want
// to emit progress below the InitializeVisit banner (e.g. "specialized
// N functions").
func (b *Base) Logger() *slog.Logger { return b.log }

// Manager runs an ordered list of passes over a root.Environment,
// aborting after the first pass whose Errors() is non-empty (spec
// §4.5: "aborting on the first pass that records errors"). Grounded on
// the teacher's Optimizer.Optimize loop, minus its fixed-point
// convergence check — this pipeline is strictly one pass each, in
// order.
type Manager struct {
	Passes []Visitor
	log    *slog.Logger
}

// NewManager constructs a Manager running passes in the given order.
func NewManager(log *slog.Logger, passes ...Visitor) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{Passes: passes, log: log}
}

// Execute runs every pass in order against env. It returns the name of
// the first pass that recorded errors ("" and a nil error if every pass
// completed cleanly), its
// own errors wrapped with the pass's name via github.com/pkg/errors so
// a caller printing the final error sees the full pass chain (spec
// §7: "prints all errors... and halts the pipeline").
func (m *Manager) Execute(env *root.Environment) (failedPass string, err error) {
	for _, p := range m.Passes {
		p.InitializeVisit()
		p.PerformVisit(env)
		if p.HasErrors() {
			var wrapped error
			for _, e := range p.Errors() {
				if wrapped == nil {
					wrapped = e
					continue
				}
				wrapped = errors.Wrap(wrapped, e.Error())
			}
			m.log.Error("pass failed, halting pipeline", "pass", p.Name(), "errorCount", len(p.Errors()))
			return p.Name(), errors.Wrap(wrapped, p.Name())
		}
		m.log.Info("pass completed", "pass", p.Name())
	}
	return "", nil
}
