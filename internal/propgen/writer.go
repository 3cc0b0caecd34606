package propgen

import (
	"bytes"
	"context"

	"github.com/simonhull/firebird-suite/wren/internal/generator"
	"github.com/simonhull/firebird-suite/wren/internal/logger"
)

// Render formats params as properties lines. Keys keep their trailing
// whitespace, so a template line "a = b" is written back as "a = b".
func Render(params *ParameterSet) []byte {
	buf := bytes.NewBuffer(make([]byte, 0, 64*params.Len()))
	for _, e := range params.entries {
		buf.WriteString(e.Key)
		buf.WriteString("= ")
		buf.WriteString(e.Value)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// CreateOp resolves the iteration and returns the write as an operation,
// for callers that batch, preview or commit writes in a transaction.
func (g *Generator) CreateOp(outputPath, outer, inner string) (*generator.WriteFileOp, error) {
	params, err := g.Resolve(outer, inner)
	if err != nil {
		return nil, err
	}
	return &generator.WriteFileOp{
		Path:    outputPath,
		Content: Render(params),
		Mode:    0644,
	}, nil
}

// Create writes the properties file for one iteration, replacing any file
// already at outputPath.
func (g *Generator) Create(outputPath, outer, inner string) error {
	op, err := g.CreateOp(outputPath, outer, inner)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if err := op.Validate(ctx, true); err != nil {
		return &ResourceError{Op: "write", Path: outputPath, Err: err}
	}
	if err := op.Execute(ctx); err != nil {
		return &ResourceError{Op: "write", Path: outputPath, Err: err}
	}

	g.log.Info("properties written",
		logger.F("path", outputPath),
		logger.F("outer", outer),
		logger.F("inner", inner),
	)
	return nil
}
