package controller

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	m "github.com/mouse-blink/targetpath/internal/model"
	"github.com/mouse-blink/targetpath/internal/selection"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// SimpleUI implements UI using the cobra command's input and output streams.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// SelectTarget drives selector with one command per input line:
//
//	type function|loop|branch|variable
//	name <function name>
//	line all|<n>
//	element <n>
//	var <name>
//	modifier <modifier>
//	in
//	back <n>
//	done
//
// Blank lines and lines starting with # are ignored. End of input acts as done.
func (s *SimpleUI) SelectTarget(ctx context.Context, selector *selection.Selector, options ...SelectOption) (*m.TargetSelection, error) {
	cfg := newSelectConfig(options)
	if cfg.title != "" {
		s.printf("Selecting target in %s\n", cfg.title)
	}

	scanner := bufio.NewScanner(s.cmd.InOrStdin())
	lineNo := 0

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		lineNo++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if line == "done" {
			break
		}

		action, err := parseScriptLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		selector.Dispatch(action)

		if err := selector.Err(); err != nil {
			s.printf("line %d: %v\n", lineNo, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read selection script: %w", err)
	}

	sel := selector.Selection()
	if sel == nil {
		return nil, ErrIncompleteSelection
	}

	s.printf("Selected %s\n", describeSelection(sel))

	return sel, nil
}

func parseScriptLine(line string) (selection.Action, error) {
	verb, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch verb {
	case "type":
		return selection.SelectType{Type: m.ElementType(arg)}, nil
	case "name":
		return selection.SelectFunctionName{Name: arg}, nil
	case "line":
		if arg == "all" {
			return selection.SelectFunctionLine{Choice: selection.AllOccurrences{}}, nil
		}

		n, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("line expects all or an index, got %q", arg)
		}

		return selection.SelectFunctionLine{Choice: selection.LocalIndex(n)}, nil
	case "element":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("element expects an index, got %q", arg)
		}

		return selection.SelectElement{Index: n}, nil
	case "var":
		return selection.ToggleVariable{Name: arg}, nil
	case "modifier":
		return selection.SelectModifier{Modifier: m.Modifier(arg)}, nil
	case "in":
		return selection.NavigateInto{}, nil
	case "back":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("back expects a scope depth, got %q", arg)
		}

		return selection.NavigateBack{Index: n}, nil
	}

	return nil, fmt.Errorf("unknown command %q", verb)
}

// DisplayTarget prints the flattened target path of a document.
func (s *SimpleUI) DisplayTarget(doc m.TargetDocument, sel *m.TargetSelection) error {
	if doc.ID != "" {
		s.printf("Target %s\n", doc.ID)
	}

	if doc.CodeInfo != "" {
		s.printf("Code info: %s\n", doc.CodeInfo)
	}

	if sel != nil {
		s.printf("Scope: %s\n", strings.Join(selection.Breadcrumbs(sel.ScopePath), " > "))
		s.printf("Selects: %s\n", describeSelection(sel))
	}

	table, buf := newTable([]string{"Order", "Type", "ID", "Name", "Line", "Modifier"})
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT,
	})

	for i, item := range doc.Target {
		line := ""
		if item.LineNumber > 0 {
			line = strconv.Itoa(item.LineNumber)
		}

		table.Append([]string{
			strconv.Itoa(i), string(item.Type), formatIDs(item.ID), item.Name, line, string(item.Modifier),
		})
	}

	table.SetFooter([]string{"", "", "", "", "Items", strconv.Itoa(len(doc.Target))})
	table.Render()
	s.printf("\n%s", buf.String())

	return nil
}

// DisplayScope prints every element declared in the current scope of state.
func (s *SimpleUI) DisplayScope(state selection.State) error {
	s.printf("Scope: %s\n", strings.Join(state.Breadcrumbs(), " > "))

	table, buf := newTable([]string{"Type", "ID", "Element", "Enterable"})
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER,
	})

	rows := scopeRows(state)
	for _, row := range rows {
		enterable := ""
		if row.kind != m.ElementVariable {
			enterable = yesNo(row.enterable)
		}

		table.Append([]string{string(row.kind), strconv.Itoa(row.id), row.label, enterable})
	}

	table.SetFooter([]string{"", "", "Elements", strconv.Itoa(len(rows))})
	table.Render()
	s.printf("\n%s", buf.String())

	return nil
}

// DisplayCheck prints one row per validated code-info file.
func (s *SimpleUI) DisplayCheck(results []m.CheckResult) error {
	table, buf := newTable([]string{"Path", "Scopes", "Functions", "Loops", "Branches", "Status"})
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT,
	})

	failed := 0

	for _, result := range results {
		status := "ok"
		if !result.OK() {
			status = "FAIL"
			failed++
		}

		table.Append([]string{
			string(result.Path),
			strconv.Itoa(result.Scopes),
			strconv.Itoa(result.Functions),
			strconv.Itoa(result.Loops),
			strconv.Itoa(result.Branches),
			status,
		})
	}

	table.SetFooter([]string{fmt.Sprintf("Files %d", len(results)), "", "", "", "Failed", strconv.Itoa(failed)})
	table.Render()
	s.printf("\n%s", buf.String())

	for _, result := range results {
		if !result.OK() {
			s.printf("%s: %v\n", result.Path, result.Err)
		}
	}

	return nil
}

func newTable(header []string) (*tablewriter.Table, *bytes.Buffer) {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	return table, &buf
}

func formatIDs(ids []int) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.Itoa(id))
	}

	return "[" + strings.Join(parts, ",") + "]"
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
