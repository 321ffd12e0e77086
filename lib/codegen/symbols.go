package codegen

import (
	"fmt"
	"sort"
)

// Kind is the namespace a global variable belongs to. A name keeps one
// kind for the lifetime of the program.
type Kind int

const (
	KindString Kind = iota
	KindNumber
)

func (k Kind) String() string {
	if k == KindNumber {
		return "number"
	}
	return "string"
}

// SymbolTable is the single authoritative table of global variable
// names. Every declaration in the program ends up here, including ones
// inside routine bodies, since routines do not introduce scopes.
type SymbolTable struct {
	kinds map[string]Kind
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{kinds: map[string]Kind{}}
}

// Define records a declaration. Redeclaring a name with the same kind
// merges silently; redeclaring with the other kind is an error, which
// keeps the two namespaces disjoint.
func (t *SymbolTable) Define(name string, kind Kind) error {
	if existing, ok := t.kinds[name]; ok && existing != kind {
		return fmt.Errorf("Variable '%s' redeclared as %s (previously %s)", name, kind, existing)
	}
	t.kinds[name] = kind
	return nil
}

// Kind reports the namespace of a declared name.
func (t *SymbolTable) Kind(name string) (Kind, bool) {
	kind, ok := t.kinds[name]
	return kind, ok
}

// Names returns all declared names in sorted order, which fixes the
// emission order of the global declarations.
func (t *SymbolTable) Names() []string {
	names := make([]string, 0, len(t.kinds))
	for name := range t.kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
