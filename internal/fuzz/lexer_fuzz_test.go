package fuzztests

import (
	"testing"

	"veryl/internal/diag"
	"veryl/internal/lexer"
	"veryl/internal/source"
	"veryl/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampSeed(input)

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.veryl", input)
		file := fs.Get(fileID)

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		// каждый токен съедает хотя бы байт, иначе лексер зациклился
		for i := 0; i <= len(input)+1; i++ {
			if tok := lx.Next(); tok.Kind == token.EOF {
				return
			}
		}
		t.Fatalf("lexer did not reach EOF on %d bytes", len(input))
	})
}
