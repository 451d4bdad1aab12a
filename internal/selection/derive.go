package selection

import (
	"strings"

	m "github.com/mouse-blink/targetpath/internal/model"
)

// variableSeparator joins multi-selected variable names into one target name.
const variableSeparator = ","

// Derive computes the selection a state describes, or nil while it is incomplete.
func Derive(s State) *m.TargetSelection {
	var sel *m.TargetSelection

	switch s.Type {
	case m.ElementFunction:
		sel = deriveFunction(s)
	case m.ElementLoop, m.ElementBranch:
		sel = deriveScoped(s)
	case m.ElementVariable:
		if len(s.SelectedVariables) == 0 {
			return nil
		}

		names := make([]string, len(s.SelectedVariables))
		copy(names, s.SelectedVariables)

		sel = &m.TargetSelection{
			Type:      m.ElementVariable,
			ElementID: m.VariableSet{Names: names},
			Name:      strings.Join(names, variableSeparator),
		}
	}

	if sel == nil {
		return nil
	}

	sel.ScopePath = clonePath(s.ScopePath)
	sel.Modifier = s.Modifier

	return sel
}

func deriveFunction(s State) *m.TargetSelection {
	if !s.FunctionLineStage {
		return nil
	}

	switch s.Choice.(type) {
	case AllOccurrences:
		occurrences := functionOccurrences(s, s.FunctionName)
		if len(occurrences) == 0 {
			return nil
		}

		ids := make([]int, 0, len(occurrences))
		for _, occ := range occurrences {
			ids = append(ids, occ.ID)
		}

		return &m.TargetSelection{
			Type:      m.ElementFunction,
			ElementID: m.AllNamed{IDs: ids},
			Name:      s.FunctionName,
		}
	case LocalIndex:
		id, ok := selectedGlobalID(s)
		if !ok {
			return nil
		}

		el, ok := s.Info.Element(m.ElementFunction, id)
		if !ok {
			return nil
		}

		fn := el.(m.FunctionElement)

		return &m.TargetSelection{
			Type:       m.ElementFunction,
			ElementID:  m.Single{ID: id},
			Name:       fn.Name,
			LineNumber: fn.LineNumber,
		}
	}

	return nil
}

func deriveScoped(s State) *m.TargetSelection {
	id, ok := selectedGlobalID(s)
	if !ok {
		return nil
	}

	el, ok := s.Info.Element(s.Type, id)
	if !ok {
		return nil
	}

	sel := &m.TargetSelection{
		Type:       s.Type,
		ElementID:  m.Single{ID: id},
		LineNumber: el.Line(),
	}

	switch e := el.(type) {
	case m.LoopElement:
		sel.Name = e.LoopType
	case m.BranchElement:
		sel.Name = e.Condition
	}

	return sel
}

// AvailableModifiers lists the modifiers that can be toggled in s.
func AvailableModifiers(s State) []m.Modifier {
	if s.Choice == nil {
		return nil
	}

	switch s.Type {
	case m.ElementFunction:
		if s.FunctionLineStage {
			return []m.Modifier{m.ModifierArguments, m.ModifierReturnValue}
		}
	case m.ElementLoop:
		return []m.Modifier{m.ModifierLoopIterations}
	case m.ElementBranch:
		return []m.Modifier{m.ModifierBranchTrue, m.ModifierBranchFalse}
	case m.ElementVariable:
	}

	return nil
}

// CanNavigateInto reports whether NavigateInto would pass its preconditions.
// The target scope may still be missing from the tree.
func CanNavigateInto(s State) bool {
	if s.Type == "" || s.Type == m.ElementVariable || s.Modifier.IsTerminal() {
		return false
	}

	if _, ok := s.Choice.(LocalIndex); !ok {
		return false
	}

	_, ok := selectedGlobalID(s)

	return ok
}

// occurrence is one function table entry visible in the current scope.
type occurrence struct {
	Local int
	ID    int
	Fn    m.FunctionElement
}

func functionOccurrences(s State, name string) []occurrence {
	var out []occurrence

	for local, id := range s.CurrentTree.Indices(m.ElementFunction) {
		el, ok := s.Info.Element(m.ElementFunction, id)
		if !ok {
			continue
		}

		fn := el.(m.FunctionElement)
		if fn.Name == name {
			out = append(out, occurrence{Local: local, ID: id, Fn: fn})
		}
	}

	return out
}

func selectedGlobalID(s State) (int, bool) {
	local, ok := s.Choice.(LocalIndex)
	if !ok || s.Type == m.ElementVariable {
		return 0, false
	}

	indices := s.CurrentTree.Indices(s.Type)
	if int(local) < 0 || int(local) >= len(indices) {
		return 0, false
	}

	return indices[local], true
}

func clonePath(path []m.ScopePathItem) []m.ScopePathItem {
	out := make([]m.ScopePathItem, len(path))
	copy(out, path)

	return out
}
