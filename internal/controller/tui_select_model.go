package controller

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mouse-blink/targetpath/internal/model"
	"github.com/mouse-blink/targetpath/internal/selection"
)

var (
	accentColor = lipgloss.Color("6")
	mutedColor  = lipgloss.Color("8")
	chosenColor = lipgloss.Color("10")
	errorColor  = lipgloss.Color("9")
)

var typeKeys = map[string]model.ElementType{
	"f": model.ElementFunction,
	"l": model.ElementLoop,
	"b": model.ElementBranch,
	"v": model.ElementVariable,
}

// entryDelegate renders one selectable entry per line.
type entryDelegate struct {
	offset int
}

func (d entryDelegate) Height() int  { return 1 }
func (d entryDelegate) Spacing() int { return 0 }
func (d entryDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d entryDelegate) Render(w io.Writer, lm list.Model, index int, item list.Item) {
	entry, ok := item.(entryItem)
	if !ok {
		return
	}

	marker := "[ ]"
	if entry.entry.Selected {
		marker = "[x]"
	}

	width := lm.Width() - 4 // marker (3) + space

	var (
		style lipgloss.Style
		label string
	)

	switch {
	case index == lm.Index():
		style = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(accentColor).
			Bold(true)
		label = animateScroll(entry.entry.Label, width, d.offset)
	case entry.entry.Selected:
		style = lipgloss.NewStyle().Foreground(chosenColor).Bold(true)
		label = truncateToWidth(entry.entry.Label, width)
	default:
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
		label = truncateToWidth(entry.entry.Label, width)
	}

	_, _ = fmt.Fprint(w, style.Render(marker+" "+label))
}

func animateScroll(text string, width int, offset int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	const (
		gap   = "   "
		pause = 5
	)

	if offset < pause {
		return truncateToWidth(text, width)
	}

	runes := []rune(text + gap)
	start := (offset - pause) % len(runes)

	res := make([]rune, 0, width)
	for i := range width {
		res = append(res, runes[(start+i)%len(runes)])
	}

	return string(res)
}

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	const ellipsis = "…"

	maxWidth := width - lipgloss.Width(ellipsis)
	if maxWidth <= 0 {
		return ellipsis
	}

	currentWidth := 0

	result := make([]rune, 0, len(text))
	for _, r := range text {
		rWidth := lipgloss.Width(string(r))
		if currentWidth+rWidth > maxWidth {
			break
		}

		result = append(result, r)
		currentWidth += rWidth
	}

	return string(result) + ellipsis
}

// selectModel drives a selection.Selector from key presses.
type selectModel struct {
	selector     *selection.Selector
	title        string
	width        int
	height       int
	entries      list.Model
	delegate     entryDelegate
	stage        string
	animOffset   int
	lastSelected int
	status       string
	submitted    bool
	cancelled    bool
}

func newSelectModel(selector *selection.Selector, title string) selectModel {
	delegate := entryDelegate{}
	entries := list.New([]list.Item{}, delegate, 80, 20)
	entries.SetShowPagination(false)
	entries.SetShowFilter(true)
	entries.SetShowHelp(false)
	entries.SetShowTitle(false)
	entries.SetShowStatusBar(false)
	entries.FilterInput.Placeholder = "Filter…"

	sm := selectModel{
		selector:     selector,
		title:        title,
		entries:      entries,
		delegate:     delegate,
		lastSelected: -1,
	}
	sm.refresh()

	return sm
}

func (m selectModel) Init() tea.Cmd {
	return tea.Tick(time.Second/2, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.entries.SetWidth(m.width)

		return m, nil

	case tickMsg:
		if m.entries.FilterState() == list.Filtering {
			return m, nil
		}

		m.animOffset++
		m.delegate.offset = m.animOffset
		m.entries.SetDelegate(m.delegate)

		return m, tea.Tick(time.Millisecond*150, func(t time.Time) tea.Msg {
			return tickMsg(t)
		})

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

//nolint:cyclop // one case per key binding
func (m selectModel) handleKeyMsg(msg tea.KeyMsg) (selectModel, tea.Cmd) {
	if m.entries.FilterState() == list.Filtering {
		return m.updateList(msg)
	}

	state := m.selector.State()
	key := msg.String()

	if t, ok := typeKeys[key]; ok {
		return m.dispatch(selection.SelectType{Type: t}), nil
	}

	switch key {
	case "ctrl+c", "q":
		m.cancelled = true
		return m, tea.Quit

	case "esc":
		if m.entries.FilterState() == list.FilterApplied {
			return m.updateList(msg)
		}

		m.cancelled = true

		return m, tea.Quit

	case "s":
		if m.selector.Selection() == nil {
			m.status = ErrIncompleteSelection.Error()
			return m, nil
		}

		m.submitted = true

		return m, tea.Quit

	case "enter", " ":
		item, ok := m.entries.SelectedItem().(entryItem)
		if !ok {
			return m, nil
		}

		return m.dispatch(item.entry.Action), nil

	case "right", "n":
		if !selection.CanNavigateInto(state) {
			m.status = "nothing to enter: select a function occurrence, loop or branch first"
			return m, nil
		}

		return m.dispatch(selection.NavigateInto{}), nil

	case "left", "backspace":
		switch {
		case state.FunctionLineStage:
			return m.dispatch(selection.SelectType{Type: model.ElementFunction}), nil
		case len(state.ScopePath) > 0:
			return m.dispatch(selection.NavigateBack{Index: len(state.ScopePath) - 1}), nil
		}

		return m, nil

	case "r":
		return m.dispatch(selection.NavigateBack{Index: 0}), nil

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		modifiers := selection.ModifierEntries(state)

		i := int(key[0] - '1')
		if i >= len(modifiers) {
			return m, nil
		}

		return m.dispatch(modifiers[i].Action), nil
	}

	return m.updateList(msg)
}

func (m selectModel) updateList(msg tea.Msg) (selectModel, tea.Cmd) {
	var cmd tea.Cmd

	m.entries, cmd = m.entries.Update(msg)

	if m.entries.Index() != m.lastSelected {
		m.lastSelected = m.entries.Index()
		m.resetAnimation()
	}

	return m, cmd
}

func (m selectModel) dispatch(action selection.Action) selectModel {
	m.selector.Dispatch(action)

	m.status = ""
	if err := m.selector.Err(); err != nil {
		m.status = err.Error()
	}

	m.refresh()

	return m
}

// refresh reloads the entries for the current stage, keeping the cursor while
// the stage is unchanged.
func (m *selectModel) refresh() {
	state := m.selector.State()

	var entries []selection.Entry
	if state.Type == "" {
		entries = selection.TypeEntries(state)
	} else {
		entries = selection.Entries(state)
	}

	items := make([]list.Item, 0, len(entries))
	for _, entry := range entries {
		items = append(items, entryItem{entry: entry})
	}

	stage := stageKey(state)
	index := m.entries.Index()

	if stage != m.stage || index >= len(items) {
		index = 0
		m.entries.ResetFilter()
	}

	m.stage = stage
	_ = m.entries.SetItems(items)
	m.entries.Select(index)

	if index != m.lastSelected {
		m.lastSelected = index
		m.resetAnimation()
	}
}

func (m *selectModel) resetAnimation() {
	m.animOffset = 0
	m.delegate.offset = 0
	m.entries.SetDelegate(m.delegate)
}

func stageKey(state selection.State) string {
	return fmt.Sprintf("%s|%s|%t|%s", state.Type, state.FunctionName, state.FunctionLineStage,
		strings.Join(state.Breadcrumbs(), "/"))
}

func stageTitle(state selection.State) string {
	switch state.Type {
	case model.ElementFunction:
		if state.FunctionLineStage {
			return fmt.Sprintf("Occurrences of %s", state.FunctionName)
		}

		return "Functions"
	case model.ElementLoop:
		return "Loops"
	case model.ElementBranch:
		return "Branches"
	case model.ElementVariable:
		return "Variables"
	}

	return "Element types"
}

func (m selectModel) View() string {
	state := m.selector.State()

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true).
		Padding(1, 0, 0, 2)

	title := "Target Selection"
	if m.title != "" {
		title += " · " + m.title
	}

	sections := []string{
		titleStyle.Render(title),
		renderBreadcrumbs(state.Breadcrumbs()),
		m.renderList(state),
		renderModifiers(state),
		m.renderPreview(),
	}

	if m.status != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(errorColor).Padding(0, 0, 0, 2).Render(m.status))
	}

	footer := lipgloss.NewStyle().
		Foreground(mutedColor).
		Align(lipgloss.Center).
		Width(m.width).
		Render("f/l/b/v type • enter select • 1-9 modifier • →/n enter scope • ←/⌫ back • r root • / filter • s submit • q quit")

	sections = append(sections, footer)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderBreadcrumbs(crumbs []string) string {
	muted := lipgloss.NewStyle().Foreground(mutedColor)
	current := lipgloss.NewStyle().Foreground(accentColor).Bold(true)

	parts := make([]string, 0, len(crumbs))
	for i, crumb := range crumbs {
		if i == len(crumbs)-1 {
			parts = append(parts, current.Render(crumb))
			continue
		}

		parts = append(parts, muted.Render(crumb))
	}

	return lipgloss.NewStyle().Padding(0, 0, 1, 2).Render(strings.Join(parts, muted.Render(" › ")))
}

func (m selectModel) renderList(state selection.State) string {
	// Title (2), breadcrumbs (2), border (2), header (2), modifiers, preview, status, footer.
	listHeight := m.height - 12
	if listHeight < 5 {
		listHeight = 5
	}

	listWidth := m.width - 6
	if listWidth < 20 {
		listWidth = 74
	}

	m.entries.SetHeight(listHeight)
	m.entries.SetWidth(listWidth)

	header := lipgloss.NewStyle().
		Foreground(mutedColor).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(mutedColor).
		Width(listWidth).
		Render(stageTitle(state))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accentColor).
		Margin(0, 1).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, header, m.entries.View()))
}

func renderModifiers(state selection.State) string {
	style := lipgloss.NewStyle().Padding(0, 0, 0, 2)
	modifiers := selection.ModifierEntries(state)

	if len(modifiers) == 0 {
		return style.Foreground(mutedColor).Render("Modifiers: none")
	}

	chosen := lipgloss.NewStyle().Foreground(chosenColor).Bold(true)
	parts := make([]string, 0, len(modifiers))

	for i, mod := range modifiers {
		label := fmt.Sprintf("%d %s", i+1, mod.Label)
		if mod.Selected {
			label = chosen.Render(label + " ✓")
		}

		parts = append(parts, label)
	}

	return style.Render("Modifiers: " + strings.Join(parts, "   "))
}

func (m selectModel) renderPreview() string {
	sel := m.selector.Selection()
	accent := lipgloss.NewStyle().Foreground(accentColor)

	text := fmt.Sprintf("Target: %s", accent.Render(describeSelection(sel)))
	if sel != nil {
		text += fmt.Sprintf("   Path items: %s", accent.Render(fmt.Sprintf("%d", len(selection.Flatten(sel)))))
	}

	return lipgloss.NewStyle().Padding(0, 0, 0, 2).Render(text)
}
