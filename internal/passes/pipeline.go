package passes

import (
	"log/slog"

	"github.com/veosotano/lilc/internal/ast"
	"github.com/veosotano/lilc/internal/builder"
	"github.com/veosotano/lilc/internal/config"
)

// DefaultPipeline wires the twelve passes spec §4.5 orders into a
// Manager, one instance of each, preprocessor first and name lowerer
// last. cfg may be nil (an empty config.Document is substituted),
// matching a compilation unit that never calls #getConfig.
func DefaultPipeline(log *slog.Logger, reader builder.SourceReader, parse ParseFunc, dir string, args map[string]ast.Node, cfg config.Document) *Manager {
	if cfg == nil {
		cfg = config.Document{}
	}
	return NewManager(log,
		NewPreprocessor(log, reader, parse, dir, args),
		NewConfigGetter(log, cfg),
		NewColorMaker(log),
		NewValidator(log),
		NewFieldSorter(log),
		NewParameterSorter(log),
		NewMethodInserter(log),
		NewConversionInserter(log),
		NewTypeGuesser(log),
		NewTypeResolver(log),
		NewStructureLowerer(log),
		NewNameLowerer(log),
	)
}
