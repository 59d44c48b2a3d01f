// Package fuzztests houses Go fuzz harnesses for the front end
// (source -> lexer -> parser -> walker). They guard against panics and
// hangs on arbitrary inputs.
package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

var languageSeeds = []string{
	"",
	"module Top {}\n",
	"package pkg { local W: u32 = 8; type word = logic<W>; }\n",
	"interface bus_if { var data: logic<8>; modport master { data: output } }\n",
	`module Counter #(param W: u32 = 4) (i_clk: input clock, i_rst: input reset, o: output logic<W>) {
    var r: logic<W>;
    always_ff (i_clk, i_rst) { if_reset { r = 0; } else { r += 1; } }
    assign o = r;
}
`,
	"module M { inst u: Sub #(W: 2) (clk, d: {1'b0, x[3:1]}); }\n",
	"module M { let a: logic = if c { 4'hF } else { 'x }; }\n",
	"#[default_clock] module M (c: input clock_posedge) { always_comb { a = pkg::f(b); } }\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

// addTestdataSeeds adds every *.veryl file under the repository testdata, if any.
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".veryl" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
