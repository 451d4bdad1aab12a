// Package controller provides the interactive and plain-text front ends of target selection.
package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"

	m "github.com/mouse-blink/targetpath/internal/model"
	"github.com/mouse-blink/targetpath/internal/selection"
)

// ErrSelectionCancelled is returned when the user leaves a session without submitting.
var ErrSelectionCancelled = errors.New("selection cancelled")

// ErrIncompleteSelection is returned when a session ends before a target is selected.
var ErrIncompleteSelection = errors.New("no complete target selected")

// SelectOption is a functional option for SelectTarget.
type SelectOption func(*SelectConfig)

// SelectConfig holds configuration for a selection session.
type SelectConfig struct {
	title string
}

// WithTitle names the session, usually after the code-info file.
func WithTitle(title string) SelectOption {
	return func(c *SelectConfig) {
		c.title = title
	}
}

func newSelectConfig(options []SelectOption) SelectConfig {
	var cfg SelectConfig
	for _, opt := range options {
		opt(&cfg)
	}

	return cfg
}

// UI defines the interface for driving a selection session and displaying its results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	SelectTarget(ctx context.Context, selector *selection.Selector, options ...SelectOption) (*m.TargetSelection, error)
	DisplayTarget(doc m.TargetDocument, sel *m.TargetSelection) error
	DisplayScope(state selection.State) error
	DisplayCheck(results []m.CheckResult) error
}

// describeSelection renders a one-line summary of sel.
func describeSelection(sel *m.TargetSelection) string {
	if sel == nil {
		return "nothing selected"
	}

	var b strings.Builder

	b.WriteString(string(sel.Type))

	if sel.Name != "" {
		fmt.Fprintf(&b, " %s", sel.Name)
	}

	if sel.LineNumber > 0 {
		fmt.Fprintf(&b, " (Line %d)", sel.LineNumber)
	}

	if all, ok := sel.ElementID.(m.AllNamed); ok {
		fmt.Fprintf(&b, " ×%d", len(all.IDs))
	}

	if sel.Modifier != "" {
		fmt.Fprintf(&b, " [%s]", sel.Modifier)
	}

	return b.String()
}

// scopeRow is one element declared directly in a scope.
type scopeRow struct {
	kind      m.ElementType
	id        int
	label     string
	enterable bool
}

// scopeRows lists every element the current scope of state declares, by type.
func scopeRows(state selection.State) []scopeRow {
	tree := state.CurrentTree
	if tree == nil {
		return nil
	}

	var rows []scopeRow

	for _, t := range []m.ElementType{m.ElementFunction, m.ElementLoop, m.ElementBranch} {
		nodeType, _ := t.NodeType()

		for _, id := range tree.Indices(t) {
			el, ok := state.Info.Element(t, id)
			if !ok {
				rows = append(rows, scopeRow{kind: t, id: id, label: "<missing>"})
				continue
			}

			_, enterable := selection.FindSubtree(tree, nodeType, id)
			rows = append(rows, scopeRow{
				kind:      t,
				id:        id,
				label:     selection.BreadcrumbLabel(selection.BuildScopePathItem(t, el, id, "")),
				enterable: enterable,
			})
		}
	}

	for i, name := range tree.VariableNames {
		rows = append(rows, scopeRow{kind: m.ElementVariable, id: i, label: name})
	}

	return rows
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}

	return "no"
}
