package controller

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/mouse-blink/targetpath/internal/model"
	"github.com/mouse-blink/targetpath/internal/selection"
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	input     io.Reader
	output    io.Writer
	altScreen bool
}

// NewTUI creates a new TUI reading keys from input.
func NewTUI(input io.Reader, output io.Writer) *TUI {
	return &TUI{input: input, output: output, altScreen: IsTTY(output)}
}

// SelectTarget runs an interactive session over selector until the user submits
// or cancels.
func (t *TUI) SelectTarget(ctx context.Context, selector *selection.Selector, options ...SelectOption) (*m.TargetSelection, error) {
	cfg := newSelectConfig(options)

	programOptions := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithInput(t.input),
		tea.WithOutput(t.output),
	}
	if t.altScreen {
		programOptions = append(programOptions, tea.WithAltScreen())
	}

	final, err := tea.NewProgram(newSelectModel(selector, cfg.title), programOptions...).Run()
	if err != nil {
		return nil, fmt.Errorf("selection session failed: %w", err)
	}

	result, ok := final.(selectModel)
	if !ok || !result.submitted {
		return nil, ErrSelectionCancelled
	}

	return selector.Selection(), nil
}

// DisplayTarget renders the target path of a document.
func (t *TUI) DisplayTarget(doc m.TargetDocument, sel *m.TargetSelection) error {
	var b strings.Builder

	b.WriteString(headingStyle().Render("Target " + doc.ID))
	b.WriteString("\n")

	if sel != nil {
		b.WriteString(renderBreadcrumbs(selection.Breadcrumbs(sel.ScopePath)))
		b.WriteString("\n")
	}

	lines := make([]string, 0, len(doc.Target))
	muted := lipgloss.NewStyle().Foreground(mutedColor)

	for i, item := range doc.Target {
		line := fmt.Sprintf("%d  %-8s %s", i, item.Type, formatIDs(item.ID))
		if item.Name != "" {
			line += " " + item.Name
		}

		if item.LineNumber > 0 {
			line += muted.Render(fmt.Sprintf(" (Line %d)", item.LineNumber))
		}

		if item.Modifier != "" {
			line += lipgloss.NewStyle().Foreground(chosenColor).Render(" [" + string(item.Modifier) + "]")
		}

		lines = append(lines, line)
	}

	b.WriteString(boxStyle().Render(strings.Join(lines, "\n")))
	b.WriteString("\n")

	if sel != nil {
		fmt.Fprintf(&b, "  Selects %s\n", lipgloss.NewStyle().Foreground(accentColor).Render(describeSelection(sel)))
	}

	_, err := fmt.Fprint(t.output, b.String())

	return err
}

// DisplayScope renders the elements declared in the current scope of state.
func (t *TUI) DisplayScope(state selection.State) error {
	var b strings.Builder

	b.WriteString(headingStyle().Render("Scope"))
	b.WriteString("\n")
	b.WriteString(renderBreadcrumbs(state.Breadcrumbs()))
	b.WriteString("\n")

	rows := scopeRows(state)
	if len(rows) == 0 {
		b.WriteString("  Nothing declared in this scope\n")
		_, err := fmt.Fprint(t.output, b.String())

		return err
	}

	lines := make([]string, 0, len(rows))
	enter := lipgloss.NewStyle().Foreground(chosenColor)

	for _, row := range rows {
		line := fmt.Sprintf("%-8s %3d  %s", row.kind, row.id, row.label)
		if row.enterable {
			line += enter.Render("  ›")
		}

		lines = append(lines, line)
	}

	b.WriteString(boxStyle().Render(strings.Join(lines, "\n")))
	b.WriteString("\n")

	_, err := fmt.Fprint(t.output, b.String())

	return err
}

// DisplayCheck renders one line per validated code-info file.
func (t *TUI) DisplayCheck(results []m.CheckResult) error {
	var b strings.Builder

	ok := lipgloss.NewStyle().Foreground(chosenColor).Bold(true)
	fail := lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	failed := 0

	for _, result := range results {
		if result.OK() {
			fmt.Fprintf(&b, "  %s %s  %d scopes, %d functions, %d loops, %d branches\n",
				ok.Render("✓"), result.Path, result.Scopes, result.Functions, result.Loops, result.Branches)

			continue
		}

		failed++

		fmt.Fprintf(&b, "  %s %s\n", fail.Render("✗"), result.Path)

		for _, line := range strings.Split(result.Err.Error(), "\n") {
			fmt.Fprintf(&b, "      %s\n", line)
		}
	}

	fmt.Fprintf(&b, "\n  %d file(s), %d failed\n", len(results), failed)

	_, err := fmt.Fprint(t.output, b.String())

	return err
}

func headingStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true).
		Padding(1, 0, 0, 2)
}

func boxStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accentColor).
		Margin(0, 1).
		Padding(0, 1)
}
