// Package buildpipeline orchestrates the single-shot compilation pipeline:
// load → parse → lower → emit. The whole pipeline is strictly sequential
// and serves exactly one program per invocation.
package buildpipeline

import (
	"time"

	"github.com/llir/llvm/ir"

	"mica/internal/diag"
	"mica/internal/lexer"
	"mica/internal/lower"
	"mica/internal/parser"
	"mica/internal/source"
)

// CompileRequest describes one compilation.
type CompileRequest struct {
	// Path of the source file to compile.
	Path string
	// MaxDiagnostics caps the diagnostic bag.
	MaxDiagnostics int
}

// CompileResult carries the compiled module plus everything needed to
// render diagnostics.
type CompileResult struct {
	FileSet *source.FileSet
	File    *source.File
	Module  *ir.Module
	Bag     *diag.Bag
	Timings Timings
}

// Compile runs load → parse → lower for one file on disk. On any parse or
// lowering error the result still carries the bag and timings, the
// returned error is the failure, and Module is nil: a failed compilation
// produces no IR at all (see the driver contract on aborting emission).
func Compile(req *CompileRequest) (*CompileResult, error) {
	res := newResult(req.MaxDiagnostics)

	start := time.Now()
	fileID, err := res.FileSet.Load(req.Path)
	res.Timings.Set(StageLoad, time.Since(start))
	if err != nil {
		return res, err
	}

	return res, res.compileFile(fileID)
}

// CompileVirtual compiles in-memory content under the given name. Used by
// tests and stdin-driven tooling.
func CompileVirtual(name string, content []byte, maxDiagnostics int) (*CompileResult, error) {
	res := newResult(maxDiagnostics)
	fileID := res.FileSet.AddVirtual(name, content)
	return res, res.compileFile(fileID)
}

func newResult(maxDiagnostics int) *CompileResult {
	if maxDiagnostics <= 0 {
		maxDiagnostics = 100
	}
	return &CompileResult{
		FileSet: source.NewFileSet(),
		Bag:     diag.NewBag(maxDiagnostics),
	}
}

func (res *CompileResult) compileFile(fileID source.FileID) error {
	res.File = res.FileSet.Get(fileID)
	reporter := diag.BagReporter{Bag: res.Bag}

	start := time.Now()
	lx := lexer.New(res.File, lexer.Options{Reporter: reporter})
	root, err := parser.ParseFile(lx, parser.Options{Reporter: reporter})
	res.Timings.Set(StageParse, time.Since(start))
	if err != nil {
		return err
	}

	start = time.Now()
	mod, err := lower.BuildProgram(root, reporter)
	res.Timings.Set(StageLower, time.Since(start))
	if err != nil {
		return err
	}

	res.Module = mod
	return nil
}
