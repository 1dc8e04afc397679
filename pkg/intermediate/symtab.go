// Package intermediate holds what the front end hands to a back end: the
// symbol tables, the type specifications and the per-routine ICode trees.
package intermediate

import (
	"fmt"
	"sort"
	"strings"
)

// Entry is one declared (or synthesized) identifier. Entries are never
// removed once entered.
type Entry struct {
	name  string
	table *SymTab

	Defn  Definition
	Type  *TypeSpec
	Lines []int // source lines that reference the identifier

	// Routine attributes.
	Routine  RoutineCode
	SymTab   *SymTab  // the routine's own scope
	ICode    *ICode   // the routine's body
	Parms    []*Entry // formal parameters in declaration order
	Routines []*Entry // nested routines
	Main     *Entry   // subC: the main routine of the program

	Slot  int // local storage slot, -1 if none
	Value any // constant value: int, float64, string
}

// Name is the lower-cased identifier.
func (e *Entry) Name() string { return e.name }

// Table is the scope the entry was entered into.
func (e *Entry) Table() *SymTab { return e.table }

func (e *Entry) AppendLine(line int) {
	e.Lines = append(e.Lines, line)
}

// SymTab is one scope: an insertion-ordered map of entries.
type SymTab struct {
	level   int
	entries map[string]*Entry
	order   []*Entry

	nextSlot int
	maxSlot  int
}

func NewSymTab(level int) *SymTab {
	return &SymTab{level: level, entries: make(map[string]*Entry)}
}

func (t *SymTab) NestingLevel() int { return t.level }

// Enter adds an entry unconditionally; an existing entry with the same
// name is shadowed in the map but stays in Entries.
func (t *SymTab) Enter(name string) *Entry {
	name = strings.ToLower(name)
	e := &Entry{name: name, table: t, Slot: -1}
	t.entries[name] = e
	t.order = append(t.order, e)
	return e
}

func (t *SymTab) Lookup(name string) *Entry {
	return t.entries[strings.ToLower(name)]
}

// Entries returns the entries in the order they were entered.
func (t *SymTab) Entries() []*Entry { return t.order }

// SortedEntries returns the entries sorted by name.
func (t *SymTab) SortedEntries() []*Entry {
	sorted := make([]*Entry, len(t.order))
	copy(sorted, t.order)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].name < sorted[j].name })
	return sorted
}

// NextSlot hands out the next local storage slot.
func (t *SymTab) NextSlot() int {
	slot := t.nextSlot
	t.nextSlot++
	t.maxSlot = t.nextSlot
	return slot
}

// MaxSlot is the number of slots handed out so far.
func (t *SymTab) MaxSlot() int { return t.maxSlot }

// String dumps the scope sorted by name.
func (t *SymTab) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "scope level %d\n", t.level)
	for _, e := range t.SortedEntries() {
		fmt.Fprintf(&sb, "  %-16s %-22s", e.name, e.Defn)
		if e.Type != nil {
			fmt.Fprintf(&sb, " %-12s", e.Type.Name())
		} else {
			fmt.Fprintf(&sb, " %-12s", "-")
		}
		if e.Slot >= 0 {
			fmt.Fprintf(&sb, " slot %d", e.Slot)
		}
		if e.Value != nil {
			fmt.Fprintf(&sb, " = %v", e.Value)
		}
		if len(e.Lines) > 0 {
			fmt.Fprintf(&sb, " lines %v", e.Lines)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Stack is the chain of open scopes. Level 0 holds the predefined
// environment and the program identifier.
type Stack struct {
	tables    []*SymTab
	programID *Entry
}

func NewStack() *Stack {
	return &Stack{tables: []*SymTab{NewSymTab(0)}}
}

func (s *Stack) CurrentNestingLevel() int { return len(s.tables) - 1 }

// Push opens a new empty scope.
func (s *Stack) Push() *SymTab {
	t := NewSymTab(len(s.tables))
	s.tables = append(s.tables, t)
	return t
}

// PushTable reopens a scope built earlier, e.g. a forward routine's.
func (s *Stack) PushTable(t *SymTab) *SymTab {
	s.tables = append(s.tables, t)
	return t
}

// Pop closes the innermost scope. The level 0 scope is never popped.
func (s *Stack) Pop() *SymTab {
	n := len(s.tables) - 1
	if n == 0 {
		return nil
	}
	t := s.tables[n]
	s.tables = s.tables[:n]
	return t
}

func (s *Stack) LocalSymTab() *SymTab { return s.tables[len(s.tables)-1] }

// EnterLocal enters name into the innermost scope without checking for a
// previous definition; use LookupLocal first.
func (s *Stack) EnterLocal(name string) *Entry {
	return s.LocalSymTab().Enter(name)
}

func (s *Stack) LookupLocal(name string) *Entry {
	return s.LocalSymTab().Lookup(name)
}

// Lookup searches from the innermost scope outward.
func (s *Stack) Lookup(name string) *Entry {
	for i := len(s.tables) - 1; i >= 0; i-- {
		if e := s.tables[i].Lookup(name); e != nil {
			return e
		}
	}
	return nil
}

func (s *Stack) SetProgramID(e *Entry) { s.programID = e }

func (s *Stack) ProgramID() *Entry { return s.programID }

// Global is the level 0 scope.
func (s *Stack) Global() *SymTab { return s.tables[0] }
