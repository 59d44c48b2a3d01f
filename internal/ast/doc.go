// Package ast defines the syntax tree of the HDL subset understood by the
// analyzer.
//
// Nodes are pointer structs behind the sealed Node/Item/Stmt/Expr
// interfaces. Node identity matters: the walker emits Before and After for
// the same pointer, and analyzer tables key on node locations. Braces, dots
// and selects are nodes of their own because rule handlers count them.
package ast
