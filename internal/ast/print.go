package ast

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes an indented tree rendering of n, one node per line.
func Dump(w io.Writer, n Node) {
	dump(w, n, 0)
}

func dump(w io.Writer, n Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch node := n.(type) {
	case *Number:
		fmt.Fprintf(w, "%sNumber %d\n", indent, node.Value)
	case *VarRead:
		fmt.Fprintf(w, "%sVarRead %s\n", indent, node.Name)
	case *VarDecl:
		fmt.Fprintf(w, "%sVarDecl %s\n", indent, node.Name)
	case *VarAssign:
		fmt.Fprintf(w, "%sVarAssign %s\n", indent, node.Name)
		dump(w, node.Value, depth+1)
	case *Binary:
		fmt.Fprintf(w, "%sBinary %s\n", indent, node.Op)
		dump(w, node.LHS, depth+1)
		dump(w, node.RHS, depth+1)
	case *If:
		fmt.Fprintf(w, "%sIf\n", indent)
		dump(w, node.Cond, depth+1)
		dump(w, node.Then, depth+1)
		dump(w, node.Else, depth+1)
	case *While:
		fmt.Fprintf(w, "%sWhile\n", indent)
		dump(w, node.Cond, depth+1)
		dump(w, node.Body, depth+1)
	case *StmtList:
		fmt.Fprintf(w, "%sStmtList len=%d\n", indent, len(node.Stmts))
		for _, s := range node.Stmts {
			dump(w, s, depth+1)
		}
	default:
		fmt.Fprintf(w, "%s<nil>\n", indent)
	}
}
