package lower

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"mica/internal/ast"
	"mica/internal/diag"
)

// BuildProgram lowers the program root into a fresh module holding one
// i32 main function. On success the function's final block is terminated
// with a ret of the program's value. On a semantic error no terminator is
// emitted and no module is returned: emission must not proceed with a
// half-built function.
func BuildProgram(root ast.Node, reporter diag.Reporter) (*ir.Module, error) {
	c := NewContext(reporter)
	v, err := c.Lower(root)
	if err != nil {
		return nil, err
	}
	c.Block.NewRet(v)
	return c.Module, nil
}

// Lower emits IR for one node and returns its value. The tree is never
// mutated; each node is visited exactly once.
func (c *Context) Lower(n ast.Node) (value.Value, error) {
	switch node := n.(type) {
	case *ast.Number:
		return c.constInt(int64(node.Value)), nil
	case *ast.VarRead:
		return c.lowerVarRead(node)
	case *ast.VarDecl:
		return c.lowerVarDecl(node)
	case *ast.VarAssign:
		return c.lowerVarAssign(node)
	case *ast.Binary:
		return c.lowerBinary(node)
	case *ast.If:
		return c.lowerIf(node)
	case *ast.While:
		return c.lowerWhile(node)
	case *ast.StmtList:
		return c.lowerStmtList(node)
	default:
		return nil, fmt.Errorf("lower: unknown node %T", n)
	}
}

func (c *Context) lowerVarRead(n *ast.VarRead) (value.Value, error) {
	g, ok := c.Globals[n.Name]
	if !ok {
		return nil, c.semaErr(diag.SemaUnresolvedGlobal, n.Span(), "unknown variable "+n.Name)
	}
	return c.Block.NewLoad(types.I32, g), nil
}

func (c *Context) lowerVarDecl(n *ast.VarDecl) (value.Value, error) {
	if _, ok := c.Globals[n.Name]; ok {
		return nil, c.semaErr(diag.SemaDuplicateGlobal, n.Span(), "variable already declared: "+n.Name)
	}
	g := c.Module.NewGlobalDef(n.Name, c.constInt(0))
	c.Globals[n.Name] = g
	return g, nil
}

func (c *Context) lowerVarAssign(n *ast.VarAssign) (value.Value, error) {
	v, err := c.Lower(n.Value)
	if err != nil {
		return nil, err
	}
	g, ok := c.Globals[n.Name]
	if !ok {
		return nil, c.semaErr(diag.SemaUnresolvedGlobal, n.Span(), "unknown variable "+n.Name)
	}
	c.Block.NewStore(v, g)
	return v, nil
}

func (c *Context) lowerBinary(n *ast.Binary) (value.Value, error) {
	lhs, err := c.Lower(n.LHS)
	if err != nil {
		return nil, err
	}
	rhs, err := c.Lower(n.RHS)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case ast.OpAdd:
		return c.Block.NewAdd(lhs, rhs), nil
	case ast.OpSub:
		return c.Block.NewSub(lhs, rhs), nil
	case ast.OpMul:
		return c.Block.NewMul(lhs, rhs), nil
	case ast.OpDiv:
		return c.Block.NewSDiv(lhs, rhs), nil
	case ast.OpRem:
		return c.Block.NewSRem(lhs, rhs), nil
	default:
		return nil, fmt.Errorf("lower: unknown operator %v", n.Op)
	}
}

// lowerIf builds the then/else/merge diamond. The merge phi must source
// each incoming value from the block that was current when the branch
// finished lowering: a nested construct inside an arm moves the insertion
// point, so the arm's own block is not necessarily its terminating block.
func (c *Context) lowerIf(n *ast.If) (value.Value, error) {
	cond, err := c.Lower(n.Cond)
	if err != nil {
		return nil, err
	}
	isTrue := c.Block.NewICmp(enum.IPredNE, cond, c.constInt(0))

	thenBlk := c.newBlock("then")
	elseBlk := c.newBlock("else")
	mergeBlk := c.newBlock("merge")
	c.Block.NewCondBr(isTrue, thenBlk, elseBlk)

	c.Block = thenBlk
	thenVal, err := c.Lower(n.Then)
	if err != nil {
		return nil, err
	}
	thenPred := c.Block
	thenPred.NewBr(mergeBlk)

	c.Block = elseBlk
	elseVal, err := c.Lower(n.Else)
	if err != nil {
		return nil, err
	}
	elsePred := c.Block
	elsePred.NewBr(mergeBlk)

	c.Block = mergeBlk
	phi := mergeBlk.NewPhi(
		ir.NewIncoming(thenVal, thenPred),
		ir.NewIncoming(elseVal, elsePred),
	)
	return phi, nil
}

// lowerWhile evaluates the condition exactly once and never re-tests it:
// the body runs at most one time and there is no back-edge. The construct
// behaves as a single-shot conditional and its value is always 0.
func (c *Context) lowerWhile(n *ast.While) (value.Value, error) {
	cond, err := c.Lower(n.Cond)
	if err != nil {
		return nil, err
	}
	isTrue := c.Block.NewICmp(enum.IPredNE, cond, c.constInt(0))

	bodyBlk := c.newBlock("while.body")
	endBlk := c.newBlock("while.end")
	c.Block.NewCondBr(isTrue, bodyBlk, endBlk)

	c.Block = bodyBlk
	if _, err := c.Lower(n.Body); err != nil {
		return nil, err
	}
	c.Block.NewBr(endBlk)

	c.Block = endBlk
	return c.constInt(0), nil
}

// lowerStmtList lowers statements in order, stopping at the first failure.
// A non-empty list yields its last statement's value, an empty one 0.
func (c *Context) lowerStmtList(n *ast.StmtList) (value.Value, error) {
	var last value.Value = c.constInt(0)
	for _, stmt := range n.Stmts {
		v, err := c.Lower(stmt)
		if err != nil {
			return nil, err
		}
		last = v
	}
	return last, nil
}
