package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mica/internal/ast"
	"mica/internal/diag"
	"mica/internal/diagfmt"
	"mica/internal/lexer"
	"mica/internal/parser"
	"mica/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse file.mi",
	Short: "Parse a mica source file and dump the AST",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	fs := source.NewFileSet()
	fileID, err := fs.Load(args[0])
	if err != nil {
		return err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})

	root, perr := parser.ParseFile(lx, parser.Options{Reporter: reporter})
	if bag.Len() > 0 {
		bag.Sort()
		diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.Options{
			Color:   useColor(cmd, os.Stderr),
			Context: true,
		})
	}
	if perr != nil {
		return perr
	}

	ast.Dump(os.Stdout, root)
	return nil
}
