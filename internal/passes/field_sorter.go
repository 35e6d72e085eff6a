package passes

import (
	"log/slog"

	"github.com/veosotano/lilc/internal/root"
)

// FieldSorter implements spec §4.5 pass 5. It is a stub: the pipeline
// reserves the ordering slot for layout-driven field reordering, but
// (per spec's own description, "the repo's implementation is a stub")
// performs no reordering. Kept as its own pass, rather than omitted,
// so the pipeline's pass order and indices stay stable if a real
// layout-aware reordering is ever dropped in.
type FieldSorter struct {
	Base
}

func NewFieldSorter(log *slog.Logger) *FieldSorter {
	return &FieldSorter{Base: NewBase("fieldSorter", log)}
}

func (p *FieldSorter) PerformVisit(env *root.Environment) {}
