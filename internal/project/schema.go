package project

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaSource []byte

var (
	schemaOnce sync.Once
	schemaCtx  *cue.Context
	schemaDef  cue.Value
	schemaErr  error
)

func manifestSchema() (*cue.Context, cue.Value, error) {
	schemaOnce.Do(func() {
		schemaCtx = cuecontext.New()
		v := schemaCtx.CompileBytes(schemaSource)
		if v.Err() != nil {
			schemaErr = fmt.Errorf("compiling manifest schema: %w", v.Err())
			return
		}
		schemaDef = v.LookupPath(cue.ParsePath("#Manifest"))
		if schemaDef.Err() != nil {
			schemaErr = fmt.Errorf("looking up #Manifest: %w", schemaDef.Err())
		}
	})
	return schemaCtx, schemaDef, schemaErr
}

// SchemaError lists every violation of the manifest schema.
type SchemaError struct {
	Path     string
	Problems []string
}

func (e *SchemaError) Error() string {
	if len(e.Problems) == 1 {
		return fmt.Sprintf("%s: %s", e.Path, e.Problems[0])
	}
	return fmt.Sprintf("%s: %d schema violations, first: %s", e.Path, len(e.Problems), e.Problems[0])
}

// validate checks raw decoded TOML against the embedded schema.
func validate(path string, raw map[string]any) error {
	ctx, def, err := manifestSchema()
	if err != nil {
		return err
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("%s: marshaling manifest: %w", path, err)
	}
	value := ctx.CompileBytes(data)
	if value.Err() != nil {
		return fmt.Errorf("%s: compiling manifest as CUE: %w", path, value.Err())
	}
	unified := def.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		se := &SchemaError{Path: path}
		for _, e := range cueerrors.Errors(err) {
			se.Problems = append(se.Problems, e.Error())
		}
		if len(se.Problems) == 0 {
			se.Problems = []string{err.Error()}
		}
		return se
	}
	return nil
}
