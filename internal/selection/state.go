package selection

import (
	m "github.com/mouse-blink/targetpath/internal/model"
)

// LocalChoice is the element picked inside the current scope: a LocalIndex into
// the scope's index list or AllOccurrences of the selected function name.
type LocalChoice interface {
	isLocalChoice()
}

// LocalIndex is a position in the current scope's index list for the selected type.
type LocalIndex int

// AllOccurrences selects every function in the current scope sharing the selected name.
type AllOccurrences struct{}

func (LocalIndex) isLocalChoice()     {}
func (AllOccurrences) isLocalChoice() {}

// State is a snapshot of a target selection session. Transitions never mutate a
// State in place; ScopePath and CurrentTree are always replaced wholesale.
type State struct {
	Info *m.CodeInfo

	Type              m.ElementType
	FunctionName      string
	FunctionLineStage bool
	Choice            LocalChoice
	SelectedVariables []string
	Modifier          m.Modifier

	CurrentTree *m.CodeStructureNode
	ScopePath   []m.ScopePathItem

	iterationLoop   int
	inIterationLoop bool
}

// NewState starts a session at the root of info's code tree.
func NewState(info *m.CodeInfo) State {
	s := State{Info: info}
	if info != nil {
		s.CurrentTree = info.CodeTree
	}

	return s
}

// Root returns the analysis root.
func (s State) Root() *m.CodeStructureNode {
	if s.Info == nil {
		return nil
	}

	return s.Info.CodeTree
}

// IterationScope returns the id of the innermost loop entered per iteration.
func (s State) IterationScope() (int, bool) {
	return s.iterationLoop, s.inIterationLoop
}

// Breadcrumbs renders the state's scope path, root first.
func (s State) Breadcrumbs() []string {
	return Breadcrumbs(s.ScopePath)
}

// withPath returns s at a new scope with nothing selected.
func (s State) withPath(tree *m.CodeStructureNode, path []m.ScopePathItem) State {
	next := State{
		Info:        s.Info,
		CurrentTree: tree,
		ScopePath:   path,
	}
	next.iterationLoop, next.inIterationLoop = InnermostLoopIterationScope(path)

	return next
}

// clearSelection drops every per-stage field, keeping the scope.
func (s State) clearSelection() State {
	s.Type = ""
	s.FunctionName = ""
	s.FunctionLineStage = false
	s.Choice = nil
	s.SelectedVariables = nil
	s.Modifier = ""

	return s
}

// Action is one externally triggered transition of the selection state machine.
type Action interface {
	isAction()
}

// SelectType picks the element type to browse.
type SelectType struct {
	Type m.ElementType
}

// SelectFunctionName picks a function name and enters the occurrence stage.
type SelectFunctionName struct {
	Name string
}

// SelectFunctionLine picks one occurrence (LocalIndex into FunctionIndices) or AllOccurrences.
type SelectFunctionLine struct {
	Choice LocalChoice
}

// SelectElement picks a loop or branch by position in the current scope, or
// toggles the variable at that position.
type SelectElement struct {
	Index int
}

// ToggleVariable adds or removes a variable name from the selection.
type ToggleVariable struct {
	Name string
}

// SelectModifier toggles a modifier on the selected element.
type SelectModifier struct {
	Modifier m.Modifier
}

// NavigateInto enters the scope of the selected element.
type NavigateInto struct{}

// NavigateBack truncates the scope path to Index entries; 0 returns to the root.
type NavigateBack struct {
	Index int
}

func (SelectType) isAction()         {}
func (SelectFunctionName) isAction() {}
func (SelectFunctionLine) isAction() {}
func (SelectElement) isAction()      {}
func (ToggleVariable) isAction()     {}
func (SelectModifier) isAction()     {}
func (NavigateInto) isAction()       {}
func (NavigateBack) isAction()       {}
