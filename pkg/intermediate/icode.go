package intermediate

import (
	"fmt"
	"strconv"
	"strings"
)

// NodeType tags an ICode node.
type NodeType int

const (
	// Routines
	NodeProgram NodeType = iota
	NodeProcedure
	NodeFunction

	// Statements
	NodeCompound
	NodeAssign
	NodeLoop
	NodeTest
	NodeCall
	NodeParameters
	NodeIf
	NodeSelect
	NodeSelectBranch
	NodeSelectConstants
	NodeNoOp

	// Relational operators
	NodeEQ
	NodeNE
	NodeLT
	NodeLE
	NodeGT
	NodeGE
	NodeNot

	// Additive operators
	NodeAdd
	NodeSubtract
	NodeOr
	NodeNegate

	// Multiplicative operators
	NodeMultiply
	NodeIntegerDivide
	NodeFloatDivide
	NodeMod
	NodeAnd

	// Operands
	NodeVariable
	NodeSubscripts
	NodeField
	NodeIntegerConstant
	NodeRealConstant
	NodeStringConstant
	NodeBooleanConstant

	// Write parameter
	NodeWriteParm
)

var nodeTypeNames = [...]string{
	NodeProgram:         "PROGRAM",
	NodeProcedure:       "PROCEDURE",
	NodeFunction:        "FUNCTION",
	NodeCompound:        "COMPOUND",
	NodeAssign:          "ASSIGN",
	NodeLoop:            "LOOP",
	NodeTest:            "TEST",
	NodeCall:            "CALL",
	NodeParameters:      "PARAMETERS",
	NodeIf:              "IF",
	NodeSelect:          "SELECT",
	NodeSelectBranch:    "SELECT_BRANCH",
	NodeSelectConstants: "SELECT_CONSTANTS",
	NodeNoOp:            "NO_OP",
	NodeEQ:              "EQ",
	NodeNE:              "NE",
	NodeLT:              "LT",
	NodeLE:              "LE",
	NodeGT:              "GT",
	NodeGE:              "GE",
	NodeNot:             "NOT",
	NodeAdd:             "ADD",
	NodeSubtract:        "SUBTRACT",
	NodeOr:              "OR",
	NodeNegate:          "NEGATE",
	NodeMultiply:        "MULTIPLY",
	NodeIntegerDivide:   "INTEGER_DIVIDE",
	NodeFloatDivide:     "FLOAT_DIVIDE",
	NodeMod:             "MOD",
	NodeAnd:             "AND",
	NodeVariable:        "VARIABLE",
	NodeSubscripts:      "SUBSCRIPTS",
	NodeField:           "FIELD",
	NodeIntegerConstant: "INTEGER_CONSTANT",
	NodeRealConstant:    "REAL_CONSTANT",
	NodeStringConstant:  "STRING_CONSTANT",
	NodeBooleanConstant: "BOOLEAN_CONSTANT",
	NodeWriteParm:       "WRITE_PARM",
}

func (t NodeType) String() string {
	if int(t) >= 0 && int(t) < len(nodeTypeNames) {
		return nodeTypeNames[t]
	}
	return fmt.Sprintf("NodeType(%d)", int(t))
}

// IsRelational reports whether t is EQ, NE, LT, LE, GT or GE.
func (t NodeType) IsRelational() bool {
	return t >= NodeEQ && t <= NodeGE
}

// Node is an ICode tree node. A node belongs to exactly one parent; use
// Copy to place the same value at a second position.
type Node struct {
	Type NodeType

	// Attributes
	Line  int
	ID    *Entry // referenced symbol table entry
	Value any    // literal value

	TypeSpec *TypeSpec // resolved type, nil for statements

	parent   *Node
	children []*Node
}

func NewNode(t NodeType) *Node {
	return &Node{Type: t}
}

func (n *Node) Parent() *Node { return n.parent }

func (n *Node) Children() []*Node { return n.children }

// Child returns the i-th child or nil.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// AddChild appends child and returns it. A nil child is ignored.
// Adding a node that already has a parent panics.
func (n *Node) AddChild(child *Node) *Node {
	if child == nil {
		return nil
	}
	if child.parent != nil {
		panic(fmt.Sprintf("icode: %s node already has a %s parent", child.Type, child.parent.Type))
	}
	child.parent = n
	n.children = append(n.children, child)
	return child
}

// Copy returns a deep copy of the subtree rooted at n. Symbol table
// entries and type specs are shared, everything else is new.
func (n *Node) Copy() *Node {
	if n == nil {
		return nil
	}
	c := &Node{Type: n.Type, Line: n.Line, ID: n.ID, Value: n.Value, TypeSpec: n.TypeSpec}
	for _, child := range n.children {
		c.AddChild(child.Copy())
	}
	return c
}

func (n *Node) String() string { return Format(n) }

// ICode is the intermediate code of one routine.
type ICode struct {
	root *Node
}

func NewICode() *ICode { return &ICode{} }

// SetRoot attaches the routine body. The root must not have a parent.
func (ic *ICode) SetRoot(n *Node) *Node {
	if n != nil && n.parent != nil {
		panic("icode: routine root already has a parent")
	}
	ic.root = n
	return n
}

func (ic *ICode) Root() *Node {
	if ic == nil {
		return nil
	}
	return ic.root
}

// controlForms print their children in brackets.
var controlForms = map[NodeType]bool{
	NodeCompound:        true,
	NodeIf:              true,
	NodeLoop:            true,
	NodeTest:            true,
	NodeNot:             true,
	NodeSelect:          true,
	NodeSelectBranch:    true,
	NodeSelectConstants: true,
}

// Format renders a tree compactly: control forms as NAME[a, b], other
// nodes as NAME(a,b), variables by name and constants by value.
//
//	COMPOUND[ASSIGN(i,1), LOOP[TEST[GT(i,3)], ASSIGN(i,ADD(i,1))]]
func Format(n *Node) string {
	var sb strings.Builder
	format(&sb, n)
	return sb.String()
}

func format(sb *strings.Builder, n *Node) {
	if n == nil {
		sb.WriteString("<nil>")
		return
	}
	switch n.Type {
	case NodeVariable:
		if n.ID != nil {
			sb.WriteString(n.ID.Name())
		} else {
			sb.WriteString("?")
		}
		if len(n.children) == 0 {
			return
		}
	case NodeIntegerConstant, NodeRealConstant, NodeBooleanConstant:
		sb.WriteString(formatValue(n.Value))
		return
	case NodeStringConstant:
		if s, ok := n.Value.(string); ok {
			sb.WriteString(strconv.Quote(s))
		} else {
			sb.WriteString(formatValue(n.Value))
		}
		return
	case NodeCall, NodeField:
		sb.WriteString(n.Type.String())
		if n.ID != nil {
			sb.WriteString(":" + n.ID.Name())
		}
		if len(n.children) == 0 {
			return
		}
	default:
		sb.WriteString(n.Type.String())
		if len(n.children) == 0 {
			return
		}
	}

	open, sep, end := "(", ",", ")"
	if controlForms[n.Type] {
		open, sep, end = "[", ", ", "]"
	}
	sb.WriteString(open)
	for i, child := range n.children {
		if i > 0 {
			sb.WriteString(sep)
		}
		format(sb, child)
	}
	sb.WriteString(end)
}

func formatValue(v any) string {
	switch v := v.(type) {
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case nil:
		return "?"
	}
	return fmt.Sprint(v)
}
