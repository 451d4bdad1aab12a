package model

// Modifier qualifies the value a target probes.
type Modifier string

const (
	// ModifierLoopIterations probes a loop on every iteration and, when navigated
	// through, frames the nested scope per iteration.
	ModifierLoopIterations Modifier = "loop_iterations"
	// ModifierBranchTrue restricts a branch to its true arm.
	ModifierBranchTrue Modifier = "branch_true"
	// ModifierBranchFalse restricts a branch to its false arm.
	ModifierBranchFalse Modifier = "branch_false"
	// ModifierArguments probes the arguments of a function call.
	ModifierArguments Modifier = "arguments"
	// ModifierReturnValue probes the return value of a function call.
	ModifierReturnValue Modifier = "return_value"
)

// IsNavigation reports whether the modifier names a sub-scope that can be entered.
func (m Modifier) IsNavigation() bool {
	switch m {
	case ModifierLoopIterations, ModifierBranchTrue, ModifierBranchFalse:
		return true
	}

	return false
}

// IsTerminal reports whether the modifier can only apply to a final selection.
func (m Modifier) IsTerminal() bool {
	return m == ModifierArguments || m == ModifierReturnValue
}

// Valid reports whether m is a known modifier.
func (m Modifier) Valid() bool {
	return m.IsNavigation() || m.IsTerminal()
}

// ScopePathItem is one step of a drill-down path. ID is a global table index.
// Modifier, when set, is always a navigation modifier.
type ScopePathItem struct {
	Type       ElementType
	ID         int
	Name       string
	LineNumber int
	Modifier   Modifier
}

// ElementChoice is what a selection points at: Single, AllNamed or VariableSet.
type ElementChoice interface {
	// WireIDs returns the id array used by the flattened wire form.
	WireIDs() []int
	isElementChoice()
}

// Single selects one global table entry.
type Single struct {
	ID int
}

// AllNamed selects every function occurrence sharing a name in the current scope.
type AllNamed struct {
	IDs []int
}

// VariableSet selects one or more variables by name.
type VariableSet struct {
	Names []string
}

// WireIDs implements ElementChoice.
func (s Single) WireIDs() []int { return []int{s.ID} }

func (Single) isElementChoice() {}

// WireIDs implements ElementChoice.
func (a AllNamed) WireIDs() []int {
	ids := make([]int, len(a.IDs))
	copy(ids, a.IDs)

	return ids
}

func (AllNamed) isElementChoice() {}

// WireIDs implements ElementChoice. Variables are addressed by name, the id
// slot carries a single zero.
func (VariableSet) WireIDs() []int { return []int{0} }

func (VariableSet) isElementChoice() {}

// TargetSelection is the in-memory description of the runtime value a generated
// question should probe.
type TargetSelection struct {
	Type       ElementType
	ElementID  ElementChoice
	Name       string
	LineNumber int
	ScopePath  []ScopePathItem
	Modifier   Modifier
}

// TargetPathItem is the flattened wire form of one scope step or of the terminal
// selection. Optional fields are omitted when empty.
type TargetPathItem struct {
	Type       ElementType `json:"type" yaml:"type"`
	ID         []int       `json:"id" yaml:"id,flow"`
	Name       string      `json:"name,omitempty" yaml:"name,omitempty"`
	LineNumber int         `json:"line_number,omitempty" yaml:"line_number,omitempty"`
	Modifier   Modifier    `json:"modifier,omitempty" yaml:"modifier,omitempty"`
}
