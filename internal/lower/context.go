// Package lower walks the AST exactly once and builds the SSA-form IR
// module consumed by the backend. All state lives in an explicit Context
// threaded through the traversal; there are no package-level singletons.
package lower

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"

	"mica/internal/diag"
	"mica/internal/source"
)

// Context is the mutable code-generation state: the module, the function
// being built, the current insertion block, and the global symbol table.
// It serves exactly one compilation and is not safe for concurrent use.
type Context struct {
	Module *ir.Module
	Func   *ir.Func
	// Block is the current insertion point. Lowering a nested construct
	// may leave it pointing at a different block than before the call;
	// callers that need the pre-branch predecessor must re-read it.
	Block *ir.Block

	// Globals maps a declared variable name to its storage. Entries are
	// created once by VarDecl lowering and live for the whole module.
	Globals map[string]*ir.Global

	reporter diag.Reporter
	nblocks  int
}

// NewContext creates a module with a single i32 main function and an entry
// block set as the initial insertion point.
func NewContext(reporter diag.Reporter) *Context {
	m := ir.NewModule()
	f := m.NewFunc("main", types.I32)
	entry := f.NewBlock("entry")
	return &Context{
		Module:   m,
		Func:     f,
		Block:    entry,
		Globals:  make(map[string]*ir.Global),
		reporter: reporter,
	}
}

// newBlock appends a fresh uniquely named block to the function.
func (c *Context) newBlock(name string) *ir.Block {
	c.nblocks++
	return c.Func.NewBlock(fmt.Sprintf("%s.%d", name, c.nblocks))
}

func (c *Context) constInt(v int64) *constant.Int {
	return constant.NewInt(types.I32, v)
}

// semaErr reports a semantic diagnostic and returns the failure signal that
// every ancestor in the traversal propagates.
func (c *Context) semaErr(code diag.Code, sp source.Span, msg string) error {
	if c.reporter != nil {
		c.reporter.Report(code, diag.SevError, sp, msg, nil)
	}
	return fmt.Errorf("semantic error: %s", msg)
}
