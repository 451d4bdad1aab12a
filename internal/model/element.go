package model

// ElementType is the kind of element a target can point at.
type ElementType string

const (
	// ElementFunction selects a function definition or call site.
	ElementFunction ElementType = "function"
	// ElementLoop selects a loop.
	ElementLoop ElementType = "loop"
	// ElementBranch selects a branch.
	ElementBranch ElementType = "branch"
	// ElementVariable selects one or more variables.
	ElementVariable ElementType = "variable"
)

// ElementTypes lists the selectable element types in display order.
var ElementTypes = []ElementType{ElementFunction, ElementLoop, ElementBranch, ElementVariable}

// NodeType returns the scope kind introduced by elements of this type.
// Variables do not introduce a scope.
func (t ElementType) NodeType() (NodeType, bool) {
	switch t {
	case ElementFunction:
		return NodeFunction, true
	case ElementLoop:
		return NodeLoop, true
	case ElementBranch:
		return NodeBranch, true
	case ElementVariable:
	}

	return "", false
}

// Valid reports whether t is a known element type.
func (t ElementType) Valid() bool {
	switch t {
	case ElementFunction, ElementLoop, ElementBranch, ElementVariable:
		return true
	}

	return false
}

// Element is the closed set of table entries a selection can resolve to:
// FunctionElement, LoopElement, BranchElement and VariableRef.
type Element interface {
	Kind() ElementType
	Line() int
	isElement()
}

// VariableRef names a variable. Variables have no line and no numeric table.
type VariableRef struct {
	Name string
}

// Kind implements Element.
func (FunctionElement) Kind() ElementType { return ElementFunction }

// Line implements Element.
func (f FunctionElement) Line() int { return f.LineNumber }

func (FunctionElement) isElement() {}

// Kind implements Element.
func (LoopElement) Kind() ElementType { return ElementLoop }

// Line implements Element.
func (l LoopElement) Line() int { return l.LineNumber }

func (LoopElement) isElement() {}

// Kind implements Element.
func (BranchElement) Kind() ElementType { return ElementBranch }

// Line implements Element.
func (b BranchElement) Line() int { return b.LineNumber }

func (BranchElement) isElement() {}

// Kind implements Element.
func (VariableRef) Kind() ElementType { return ElementVariable }

// Line implements Element.
func (VariableRef) Line() int { return 0 }

func (VariableRef) isElement() {}
