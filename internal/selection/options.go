package selection

import (
	"fmt"
	"slices"

	m "github.com/mouse-blink/targetpath/internal/model"
)

// Entry is one choosable item at the current stage, with the action that picks it.
type Entry struct {
	Label    string
	Action   Action
	Selected bool
}

// TypeEntries lists the element types with how many of each the current scope declares.
func TypeEntries(s State) []Entry {
	entries := make([]Entry, 0, len(m.ElementTypes))

	for _, t := range m.ElementTypes {
		count := len(s.CurrentTree.Indices(t))
		if t == m.ElementFunction {
			count = len(functionNames(s))
		}

		if t == m.ElementVariable && s.CurrentTree != nil {
			count = len(s.CurrentTree.VariableNames)
		}

		entries = append(entries, Entry{
			Label:    fmt.Sprintf("%s (%d)", t, count),
			Action:   SelectType{Type: t},
			Selected: s.Type == t,
		})
	}

	return entries
}

// Entries lists the items selectable at the current stage of s.
func Entries(s State) []Entry {
	switch s.Type {
	case m.ElementFunction:
		if !s.FunctionLineStage {
			return functionNameEntries(s)
		}

		return functionLineEntries(s)
	case m.ElementLoop, m.ElementBranch:
		return scopedEntries(s)
	case m.ElementVariable:
		return variableEntries(s)
	}

	return nil
}

// ModifierEntries lists the modifiers available in s.
func ModifierEntries(s State) []Entry {
	available := AvailableModifiers(s)
	entries := make([]Entry, 0, len(available))

	for _, mod := range available {
		entries = append(entries, Entry{
			Label:    string(mod),
			Action:   SelectModifier{Modifier: mod},
			Selected: s.Modifier == mod,
		})
	}

	return entries
}

func functionNames(s State) []string {
	var names []string

	for _, id := range s.CurrentTree.Indices(m.ElementFunction) {
		el, ok := s.Info.Element(m.ElementFunction, id)
		if !ok {
			continue
		}

		name := el.(m.FunctionElement).Name
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}

	return names
}

func functionNameEntries(s State) []Entry {
	names := functionNames(s)
	entries := make([]Entry, 0, len(names))

	for _, name := range names {
		entries = append(entries, Entry{
			Label:  name,
			Action: SelectFunctionName{Name: name},
		})
	}

	return entries
}

func functionLineEntries(s State) []Entry {
	occurrences := functionOccurrences(s, s.FunctionName)
	entries := make([]Entry, 0, len(occurrences)+1)

	_, all := s.Choice.(AllOccurrences)
	entries = append(entries, Entry{
		Label:    fmt.Sprintf("All %s (%d)", s.FunctionName, len(occurrences)),
		Action:   SelectFunctionLine{Choice: AllOccurrences{}},
		Selected: all,
	})

	for _, occ := range occurrences {
		kind := "call"
		if occ.Fn.IsDefinition {
			kind = "definition"
		}

		entries = append(entries, Entry{
			Label:    fmt.Sprintf("%s (Line %d) %s", occ.Fn.Name, occ.Fn.LineNumber, kind),
			Action:   SelectFunctionLine{Choice: LocalIndex(occ.Local)},
			Selected: s.Choice == LocalChoice(LocalIndex(occ.Local)),
		})
	}

	return entries
}

func scopedEntries(s State) []Entry {
	indices := s.CurrentTree.Indices(s.Type)
	entries := make([]Entry, 0, len(indices))

	for local, id := range indices {
		el, ok := s.Info.Element(s.Type, id)
		if !ok {
			continue
		}

		var label string

		switch e := el.(type) {
		case m.LoopElement:
			label = fmt.Sprintf("%s (Line %d) %s", orDefault(e.LoopType, "loop"), e.LineNumber, e.Condition)
		case m.BranchElement:
			label = fmt.Sprintf("if %s (Line %d)", e.Condition, e.LineNumber)
		}

		entries = append(entries, Entry{
			Label:    label,
			Action:   SelectElement{Index: local},
			Selected: s.Choice == LocalChoice(LocalIndex(local)),
		})
	}

	return entries
}

func variableEntries(s State) []Entry {
	if s.CurrentTree == nil {
		return nil
	}

	entries := make([]Entry, 0, len(s.CurrentTree.VariableNames))

	for _, name := range s.CurrentTree.VariableNames {
		entries = append(entries, Entry{
			Label:    name,
			Action:   ToggleVariable{Name: name},
			Selected: slices.Contains(s.SelectedVariables, name),
		})
	}

	return entries
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}

	return v
}
