package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mica/internal/diag"
	"mica/internal/diagfmt"
	"mica/internal/lexer"
	"mica/internal/source"
	"mica/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize file.mi",
	Short: "Tokenize a mica source file",
	Long:  `Tokenize breaks down a mica source file into its constituent tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func runTokenize(cmd *cobra.Command, args []string) error {
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
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			break
		}
		start, _ := fs.Resolve(tok.Span)
		if tok.Kind == token.Number {
			fmt.Fprintf(os.Stdout, "%d:%d\t%s\t%d\n", start.Line, start.Col, tok.Kind, tok.Value)
		} else {
			fmt.Fprintf(os.Stdout, "%d:%d\t%s\t%s\n", start.Line, start.Col, tok.Kind, tok.Text)
		}
	}

	if bag.HasErrors() {
		bag.Sort()
		diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.Options{
			Color:   useColor(cmd, os.Stderr),
			Context: true,
		})
		return fmt.Errorf("tokenization produced %d diagnostic(s)", bag.Len())
	}
	return nil
}
