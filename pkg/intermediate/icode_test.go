package intermediate

import (
	"reflect"
	"testing"
)

func variable(e *Entry) *Node {
	n := NewNode(NodeVariable)
	n.ID = e
	n.TypeSpec = e.Type
	return n
}

func intConst(v int) *Node {
	n := NewNode(NodeIntegerConstant)
	n.Value = v
	n.TypeSpec = IntegerType
	return n
}

func TestAddChild(t *testing.T) {
	loop := NewNode(NodeLoop)
	test := loop.AddChild(NewNode(NodeTest))
	if test == nil || test.Parent() != loop {
		t.Fatalf("AddChild must return the adopted child")
	}
	test.AddChild(NewNode(NodeNoOp))

	if got := Format(loop); got != "LOOP[TEST[NO_OP]]" {
		t.Errorf("format: got %s", got)
	}
	if loop.AddChild(nil) != nil || len(loop.Children()) != 1 {
		t.Errorf("nil children must be ignored")
	}
	if loop.Child(5) != nil || loop.Child(0) != test {
		t.Errorf("Child index lookup is wrong")
	}
}

func TestAddChildRejectsSecondParent(t *testing.T) {
	shared := NewNode(NodeNoOp)
	NewNode(NodeCompound).AddChild(shared)

	defer func() {
		if recover() == nil {
			t.Errorf("adopting a node twice must panic")
		}
	}()
	NewNode(NodeCompound).AddChild(shared)
}

func TestCopyIsIndependent(t *testing.T) {
	tab := NewSymTab(1)
	i := tab.Enter("i")
	i.Type = IntegerType

	add := NewNode(NodeAdd)
	add.Line = 7
	add.TypeSpec = IntegerType
	add.AddChild(variable(i))
	add.AddChild(intConst(1))

	c := add.Copy()
	if Format(c) != Format(add) || c.Line != 7 || c.TypeSpec != IntegerType {
		t.Fatalf("copy differs: %s vs %s", Format(c), Format(add))
	}
	if c.Parent() != nil {
		t.Errorf("a copy has no parent")
	}
	if c == add || c.Child(0) == add.Child(0) {
		t.Fatalf("copy must not share nodes")
	}
	if c.Child(0).ID != i {
		t.Errorf("copy must still reference the same entry")
	}

	c.Child(1).Value = 99
	c.Line = 8
	c.AddChild(intConst(3))
	if add.Child(1).Value != 1 || add.Line != 7 || len(add.Children()) != 2 {
		t.Errorf("mutating the copy changed the original: %s", Format(add))
	}

	// A copy can be adopted where the original could not.
	NewNode(NodeAssign).AddChild(add)
	NewNode(NodeAssign).AddChild(add.Copy())
}

func TestFormat(t *testing.T) {
	tab := NewSymTab(1)
	x := tab.Enter("x")
	f := tab.Enter("f")

	call := NewNode(NodeCall)
	call.ID = f
	parms := call.AddChild(NewNode(NodeParameters))
	parms.AddChild(variable(x))
	str := parms.AddChild(NewNode(NodeStringConstant))
	str.Value = "hi"
	num := parms.AddChild(NewNode(NodeRealConstant))
	num.Value = 2.5

	ifNode := NewNode(NodeIf)
	gt := ifNode.AddChild(NewNode(NodeGT))
	gt.AddChild(variable(x))
	gt.AddChild(intConst(0))
	ifNode.AddChild(call)

	want := `IF[GT(x,0), CALL:f(PARAMETERS(x,"hi",2.5))]`
	if got := Format(ifNode); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
	if ifNode.String() != want {
		t.Errorf("String must match Format")
	}
	if Format(nil) != "<nil>" {
		t.Errorf("nil format")
	}
}

func TestICode(t *testing.T) {
	ic := NewICode()
	root := NewNode(NodeCompound)
	if ic.SetRoot(root) != root || ic.Root() != root {
		t.Fatal("SetRoot/Root mismatch")
	}
	var nilCode *ICode
	if nilCode.Root() != nil {
		t.Errorf("nil ICode has no root")
	}
	if !reflect.DeepEqual(root.Children(), []*Node(nil)) {
		t.Errorf("new node has no children")
	}
}
