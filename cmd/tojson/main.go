package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/joseph-ayodele/pboc-bom/internal/document"
	"github.com/joseph-ayodele/pboc-bom/internal/extract"
)

// tojson prints the entity tree of each .docx given on the command line, or
// writes <name>.json files into --out.
func main() {
	out := pflag.String("out", "", "directory for <name>.json files (default stdout)")
	blocks := pflag.Bool("blocks", false, "print the flattened block list instead of the tree")
	pflag.Parse()
	if pflag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: tojson [--out dir] [--blocks] report.docx...")
		os.Exit(2)
	}

	failed := 0
	for _, path := range pflag.Args() {
		if err := convert(path, *out, *blocks); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			failed++
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func convert(path, out string, blocksOnly bool) error {
	bs, err := document.ReadFile(path)
	if err != nil {
		return err
	}
	var v any = blockView(bs)
	if !blocksOnly {
		rep, err := extract.NewBuilder().Build(bs)
		if err != nil {
			return err
		}
		v = rep
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if out == "" {
		_, err = fmt.Fprintln(os.Stdout, string(b))
		return err
	}
	if err := os.MkdirAll(out, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(out, filepath.Base(path)+".json"), b, 0o644)
}

func blockView(bs []document.Block) []any {
	out := make([]any, 0, len(bs))
	for _, b := range bs {
		if b.IsTable() {
			rows := make([][]string, 0, b.Table.Len())
			for r := 0; r < b.Table.Len(); r++ {
				rows = append(rows, b.Table.Row(r))
			}
			out = append(out, rows)
			continue
		}
		out = append(out, b.Text)
	}
	return out
}
