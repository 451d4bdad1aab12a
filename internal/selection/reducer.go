package selection

import (
	"errors"
	"fmt"
	"slices"

	m "github.com/mouse-blink/targetpath/internal/model"
)

// ErrInvalidTransition reports an action whose preconditions do not hold in the
// current state. The state is left unchanged.
var ErrInvalidTransition = errors.New("invalid transition")

// Apply runs one transition. On an error wrapping ErrInvalidTransition the input
// state is returned unchanged. An error wrapping ErrScopeNotFound is a diagnostic
// only: NavigateInto is then a no-op, NavigateBack falls back to the root scope.
func Apply(s State, action Action) (State, error) {
	switch a := action.(type) {
	case SelectType:
		return applySelectType(s, a)
	case SelectFunctionName:
		return applySelectFunctionName(s, a)
	case SelectFunctionLine:
		return applySelectFunctionLine(s, a)
	case SelectElement:
		return applySelectElement(s, a)
	case ToggleVariable:
		return applyToggleVariable(s, a)
	case SelectModifier:
		return applySelectModifier(s, a)
	case NavigateInto:
		return applyNavigateInto(s)
	case NavigateBack:
		return applyNavigateBack(s, a)
	}

	return s, invalid("unknown action %T", action)
}

// Reduce is Apply without diagnostics.
func Reduce(s State, action Action) State {
	next, _ := Apply(s, action)
	return next
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidTransition, fmt.Sprintf(format, args...))
}

func applySelectType(s State, a SelectType) (State, error) {
	if !a.Type.Valid() {
		return s, invalid("unknown element type %q", a.Type)
	}

	next := s.clearSelection()
	next.Type = a.Type

	return next, nil
}

func applySelectFunctionName(s State, a SelectFunctionName) (State, error) {
	if s.Type != m.ElementFunction {
		return s, invalid("function name selected while browsing %q", s.Type)
	}

	if len(functionOccurrences(s, a.Name)) == 0 {
		return s, invalid("no function named %q in this scope", a.Name)
	}

	next := s.clearSelection()
	next.Type = m.ElementFunction
	next.FunctionName = a.Name
	next.FunctionLineStage = true

	return next, nil
}

func applySelectFunctionLine(s State, a SelectFunctionLine) (State, error) {
	if s.Type != m.ElementFunction || !s.FunctionLineStage {
		return s, invalid("function occurrence selected before a function name")
	}

	switch c := a.Choice.(type) {
	case AllOccurrences:
	case LocalIndex:
		indices := s.CurrentTree.Indices(m.ElementFunction)
		if int(c) < 0 || int(c) >= len(indices) {
			return s, invalid("function position %d out of range", c)
		}

		fn, ok := s.Info.Element(m.ElementFunction, indices[c])
		if !ok || fn.(m.FunctionElement).Name != s.FunctionName {
			return s, invalid("function position %d is not an occurrence of %q", c, s.FunctionName)
		}
	default:
		return s, invalid("unsupported function choice %T", a.Choice)
	}

	next := s
	next.Choice = a.Choice

	return next, nil
}

func applySelectElement(s State, a SelectElement) (State, error) {
	switch s.Type {
	case m.ElementLoop, m.ElementBranch:
		indices := s.CurrentTree.Indices(s.Type)
		if a.Index < 0 || a.Index >= len(indices) {
			return s, invalid("%s position %d out of range", s.Type, a.Index)
		}

		if _, ok := s.Info.Element(s.Type, indices[a.Index]); !ok {
			return s, invalid("%s %d missing from the element table", s.Type, indices[a.Index])
		}

		next := s
		next.Choice = LocalIndex(a.Index)

		return next, nil
	case m.ElementVariable:
		if s.CurrentTree == nil || a.Index < 0 || a.Index >= len(s.CurrentTree.VariableNames) {
			return s, invalid("variable position %d out of range", a.Index)
		}

		return applyToggleVariable(s, ToggleVariable{Name: s.CurrentTree.VariableNames[a.Index]})
	case m.ElementFunction:
		return s, invalid("functions are selected by name and occurrence")
	}

	return s, invalid("no element type selected")
}

func applyToggleVariable(s State, a ToggleVariable) (State, error) {
	if s.Type != m.ElementVariable {
		return s, invalid("variable toggled while browsing %q", s.Type)
	}

	if s.CurrentTree == nil || !slices.Contains(s.CurrentTree.VariableNames, a.Name) {
		return s, invalid("no variable named %q in this scope", a.Name)
	}

	names := make([]string, 0, len(s.SelectedVariables)+1)

	removed := false

	for _, name := range s.SelectedVariables {
		if name == a.Name {
			removed = true
			continue
		}

		names = append(names, name)
	}

	if !removed {
		names = append(names, a.Name)
	}

	next := s
	next.SelectedVariables = names

	return next, nil
}

func applySelectModifier(s State, a SelectModifier) (State, error) {
	if !slices.Contains(AvailableModifiers(s), a.Modifier) {
		return s, invalid("modifier %q not available", a.Modifier)
	}

	next := s
	if s.Modifier == a.Modifier {
		next.Modifier = ""
	} else {
		next.Modifier = a.Modifier
	}

	return next, nil
}

func applyNavigateInto(s State) (State, error) {
	if s.Type == "" || s.Type == m.ElementVariable {
		return s, invalid("cannot navigate into %q", s.Type)
	}

	if _, ok := s.Choice.(LocalIndex); !ok {
		return s, invalid("navigation needs a single selected element")
	}

	if s.Modifier.IsTerminal() {
		return s, invalid("modifier %q is terminal", s.Modifier)
	}

	id, ok := selectedGlobalID(s)
	if !ok {
		return s, invalid("selected %s does not resolve", s.Type)
	}

	element, ok := s.Info.Element(s.Type, id)
	if !ok {
		return s, invalid("%s %d missing from the element table", s.Type, id)
	}

	nodeType, _ := s.Type.NodeType()

	subtree, ok := FindSubtree(s.CurrentTree, nodeType, id)
	if !ok {
		return s, fmt.Errorf("%w: %s %d has no body in this scope", ErrScopeNotFound, nodeType, id)
	}

	path := make([]m.ScopePathItem, 0, len(s.ScopePath)+1)
	path = append(path, s.ScopePath...)
	path = append(path, BuildScopePathItem(s.Type, element, id, s.Modifier))

	return s.withPath(subtree, path), nil
}

func applyNavigateBack(s State, a NavigateBack) (State, error) {
	if a.Index < 0 || a.Index > len(s.ScopePath) {
		return s, invalid("breadcrumb %d out of range", a.Index)
	}

	path := make([]m.ScopePathItem, a.Index)
	copy(path, s.ScopePath[:a.Index])

	tree, err := ReconstructTree(s.Root(), path)

	return s.withPath(tree, path), err
}
