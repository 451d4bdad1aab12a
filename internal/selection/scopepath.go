package selection

import (
	"fmt"

	m "github.com/mouse-blink/targetpath/internal/model"
)

// RootLabel is the breadcrumb shown for the analysis root.
const RootLabel = "root"

// BuildScopePathItem builds the entry pushed onto the scope path when navigating
// into element. Terminal modifiers are dropped: they extract a value and never
// name a sub-scope.
func BuildScopePathItem(elementType m.ElementType, element m.Element, id int, modifier m.Modifier) m.ScopePathItem {
	item := m.ScopePathItem{Type: elementType, ID: id}

	switch el := element.(type) {
	case m.FunctionElement:
		item.Name = el.Name
		item.LineNumber = el.LineNumber
	case m.LoopElement:
		item.Name = el.LoopType
		item.LineNumber = el.LineNumber
	case m.BranchElement:
		item.Name = el.Condition
		item.LineNumber = el.LineNumber
	case m.VariableRef:
		item.Name = el.Name
	}

	if modifier.IsNavigation() {
		item.Modifier = modifier
	}

	return item
}

// BreadcrumbLabel renders a scope path entry for display.
func BreadcrumbLabel(item m.ScopePathItem) string {
	name := item.Name
	if name == "" {
		switch item.Type {
		case m.ElementFunction:
			name = "function"
		case m.ElementLoop:
			name = "loop"
		case m.ElementBranch:
			name = "branch"
		case m.ElementVariable:
			name = "variable"
		}
	}

	label := fmt.Sprintf("%s (Line %d)", name, item.LineNumber)

	switch item.Modifier {
	case m.ModifierLoopIterations:
		label += " [iterations]"
	case m.ModifierBranchTrue:
		label += " [true]"
	case m.ModifierBranchFalse:
		label += " [false]"
	case m.ModifierArguments, m.ModifierReturnValue:
	}

	return label
}

// Breadcrumbs renders the full trail, starting with the root crumb, so that the
// index of a crumb is the argument NavigateBack expects.
func Breadcrumbs(scopePath []m.ScopePathItem) []string {
	crumbs := make([]string, 0, len(scopePath)+1)
	crumbs = append(crumbs, RootLabel)

	for _, item := range scopePath {
		crumbs = append(crumbs, BreadcrumbLabel(item))
	}

	return crumbs
}
