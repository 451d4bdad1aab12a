package selection

import (
	"errors"
	"fmt"
	"strings"

	m "github.com/mouse-blink/targetpath/internal/model"
)

var (
	// ErrEmptyTarget reports an empty flattened target. There is no valid empty target.
	ErrEmptyTarget = errors.New("empty target path")
	// ErrMalformedTarget reports a flattened target that no selection could have produced.
	ErrMalformedTarget = errors.New("malformed target path")
)

// Flatten converts a selection into its wire form: one item per scope path entry
// followed by one terminal item.
func Flatten(sel *m.TargetSelection) []m.TargetPathItem {
	if sel == nil {
		return nil
	}

	items := make([]m.TargetPathItem, 0, len(sel.ScopePath)+1)

	for _, step := range sel.ScopePath {
		items = append(items, m.TargetPathItem{
			Type:       step.Type,
			ID:         []int{step.ID},
			Name:       step.Name,
			LineNumber: step.LineNumber,
			Modifier:   step.Modifier,
		})
	}

	var ids []int
	if sel.ElementID != nil {
		ids = sel.ElementID.WireIDs()
	}

	items = append(items, m.TargetPathItem{
		Type:       sel.Type,
		ID:         ids,
		Name:       sel.Name,
		LineNumber: sel.LineNumber,
		Modifier:   sel.Modifier,
	})

	return items
}

// Unflatten rebuilds a selection from its wire form. Items must already be in path order.
func Unflatten(items []m.TargetPathItem) (*m.TargetSelection, error) {
	if len(items) == 0 {
		return nil, ErrEmptyTarget
	}

	path := make([]m.ScopePathItem, 0, len(items)-1)

	for i, item := range items[:len(items)-1] {
		if len(item.ID) != 1 {
			return nil, fmt.Errorf("%w: scope entry %d has %d ids", ErrMalformedTarget, i, len(item.ID))
		}

		if _, ok := item.Type.NodeType(); !ok {
			return nil, fmt.Errorf("%w: scope entry %d has type %q", ErrMalformedTarget, i, item.Type)
		}

		if item.Modifier != "" && !item.Modifier.IsNavigation() {
			return nil, fmt.Errorf("%w: scope entry %d has terminal modifier %q", ErrMalformedTarget, i, item.Modifier)
		}

		path = append(path, m.ScopePathItem{
			Type:       item.Type,
			ID:         item.ID[0],
			Name:       item.Name,
			LineNumber: item.LineNumber,
			Modifier:   item.Modifier,
		})
	}

	last := items[len(items)-1]

	choice, err := terminalChoice(last)
	if err != nil {
		return nil, err
	}

	return &m.TargetSelection{
		Type:       last.Type,
		ElementID:  choice,
		Name:       last.Name,
		LineNumber: last.LineNumber,
		ScopePath:  path,
		Modifier:   last.Modifier,
	}, nil
}

func terminalChoice(item m.TargetPathItem) (m.ElementChoice, error) {
	if !item.Type.Valid() {
		return nil, fmt.Errorf("%w: terminal type %q", ErrMalformedTarget, item.Type)
	}

	if len(item.ID) == 0 {
		return nil, fmt.Errorf("%w: terminal entry has no id", ErrMalformedTarget)
	}

	if item.Modifier != "" && !item.Modifier.Valid() {
		return nil, fmt.Errorf("%w: unknown modifier %q", ErrMalformedTarget, item.Modifier)
	}

	switch item.Type {
	case m.ElementVariable:
		names := splitVariableNames(item.Name)
		if len(names) == 0 {
			return nil, fmt.Errorf("%w: variable entry without names", ErrMalformedTarget)
		}

		return m.VariableSet{Names: names}, nil
	case m.ElementFunction:
		// A specific occurrence always carries its line; an "All" selection never does.
		if len(item.ID) > 1 || item.LineNumber == 0 {
			ids := make([]int, len(item.ID))
			copy(ids, item.ID)

			return m.AllNamed{IDs: ids}, nil
		}
	case m.ElementLoop, m.ElementBranch:
		if len(item.ID) > 1 {
			return nil, fmt.Errorf("%w: %s entry has %d ids", ErrMalformedTarget, item.Type, len(item.ID))
		}
	}

	return m.Single{ID: item.ID[0]}, nil
}

func splitVariableNames(joined string) []string {
	var names []string

	for _, part := range strings.Split(joined, variableSeparator) {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}

	return names
}
