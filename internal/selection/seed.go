package selection

import (
	"errors"
	"fmt"
	"slices"

	m "github.com/mouse-blink/targetpath/internal/model"
)

// ErrStaleTarget reports a saved selection that no longer matches the analyzed code.
var ErrStaleTarget = errors.New("stale target")

// Seed rebuilds a state from a previously saved selection so it can be edited.
//
// Scope and element lookups that miss are reported in the returned error, which
// wraps ErrStaleTarget. The returned state is usable in every case: a missing
// scope falls back to the root, a missing element leaves the type selected with
// nothing chosen.
func Seed(info *m.CodeInfo, sel *m.TargetSelection) (State, error) {
	s := NewState(info)
	if sel == nil {
		return s, nil
	}

	var errs []error

	path := clonePath(sel.ScopePath)

	tree, err := ReconstructTree(s.Root(), path)
	if err != nil {
		errs = append(errs, err)
	}

	s = s.withPath(tree, path)

	if !sel.Type.Valid() {
		errs = append(errs, fmt.Errorf("unknown element type %q", sel.Type))
		return s, staleTarget(errs)
	}

	s.Type = sel.Type

	switch choice := sel.ElementID.(type) {
	case m.AllNamed:
		if sel.Type != m.ElementFunction {
			errs = append(errs, fmt.Errorf("%s selection cannot cover all occurrences", sel.Type))
			break
		}

		s.FunctionName = sel.Name
		s.FunctionLineStage = true

		if len(functionOccurrences(s, sel.Name)) == 0 {
			errs = append(errs, fmt.Errorf("no function named %q in this scope", sel.Name))
			break
		}

		s.Choice = AllOccurrences{}
	case m.Single:
		if sel.Type == m.ElementFunction {
			s.FunctionName = sel.Name
			s.FunctionLineStage = true
		}

		local := slices.Index(s.CurrentTree.Indices(sel.Type), choice.ID)
		if local < 0 {
			errs = append(errs, fmt.Errorf("%s %d not declared in this scope", sel.Type, choice.ID))
			break
		}

		s.Choice = LocalIndex(local)
	case m.VariableSet:
		for _, name := range choice.Names {
			if s.CurrentTree == nil || !slices.Contains(s.CurrentTree.VariableNames, name) {
				errs = append(errs, fmt.Errorf("variable %q not declared in this scope", name))
				continue
			}

			if !slices.Contains(s.SelectedVariables, name) {
				s.SelectedVariables = append(s.SelectedVariables, name)
			}
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported element choice %T", sel.ElementID))
	}

	if slices.Contains(AvailableModifiers(s), sel.Modifier) {
		s.Modifier = sel.Modifier
	} else if sel.Modifier != "" {
		errs = append(errs, fmt.Errorf("modifier %q not applicable", sel.Modifier))
	}

	return s, staleTarget(errs)
}

func staleTarget(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	return fmt.Errorf("%w: %w", ErrStaleTarget, errors.Join(errs...))
}
