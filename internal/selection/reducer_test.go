package selection

import (
	"testing"

	m "github.com/mouse-blink/targetpath/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run applies actions in order, failing the test on any error.
func run(t *testing.T, s State, actions ...Action) State {
	t.Helper()

	for _, a := range actions {
		var err error

		s, err = Apply(s, a)
		require.NoErrorf(t, err, "action %#v", a)
	}

	return s
}

func TestApply_SelectTypeResetsStage(t *testing.T) {
	s := run(t, NewState(sampleInfo()),
		SelectType{Type: m.ElementLoop},
		SelectElement{Index: 0},
		SelectModifier{Modifier: m.ModifierLoopIterations},
	)
	require.NotNil(t, Derive(s))

	s = run(t, s, SelectType{Type: m.ElementBranch})
	assert.Equal(t, m.ElementBranch, s.Type)
	assert.Nil(t, s.Choice)
	assert.Empty(t, s.Modifier)
	assert.Nil(t, Derive(s))
	assert.Same(t, s.Info.CodeTree, s.CurrentTree)
}

func TestApply_FunctionDisambiguation(t *testing.T) {
	s := run(t, NewState(sampleInfo()),
		SelectType{Type: m.ElementFunction},
		SelectFunctionName{Name: "foo"},
	)
	assert.True(t, s.FunctionLineStage)
	assert.Nil(t, Derive(s), "name alone is not a complete selection")
	assert.Empty(t, AvailableModifiers(s))

	all := run(t, s, SelectFunctionLine{Choice: AllOccurrences{}})
	sel := Derive(all)
	require.NotNil(t, sel)
	assert.Equal(t, m.AllNamed{IDs: []int{0, 1}}, sel.ElementID)
	assert.Equal(t, "foo", sel.Name)
	assert.Zero(t, sel.LineNumber)

	one := run(t, s, SelectFunctionLine{Choice: LocalIndex(1)})
	sel = Derive(one)
	require.NotNil(t, sel)
	assert.Equal(t, m.Single{ID: 1}, sel.ElementID)
	assert.Equal(t, 9, sel.LineNumber)
	assert.Equal(t, []m.Modifier{m.ModifierArguments, m.ModifierReturnValue}, AvailableModifiers(one))
}

func TestApply_FunctionLineRejectsOtherNames(t *testing.T) {
	s := run(t, NewState(sampleInfo()),
		SelectType{Type: m.ElementFunction},
		SelectFunctionName{Name: "foo"},
	)

	// position 2 is "bar"
	next, err := Apply(s, SelectFunctionLine{Choice: LocalIndex(2)})
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, s, next)
}

func TestApply_NavigationModifierFiltering(t *testing.T) {
	info := sampleInfo()

	t.Run("loop iterations recorded in scope path", func(t *testing.T) {
		s := run(t, NewState(info),
			SelectType{Type: m.ElementLoop},
			SelectElement{Index: 0},
			SelectModifier{Modifier: m.ModifierLoopIterations},
			NavigateInto{},
		)

		require.Len(t, s.ScopePath, 1)
		assert.Equal(t, m.ScopePathItem{
			Type: m.ElementLoop, ID: 0, Name: "for", LineNumber: 10, Modifier: m.ModifierLoopIterations,
		}, s.ScopePath[0])
		assert.Equal(t, m.NodeLoop, s.CurrentTree.NodeType)
		assert.Empty(t, s.Type)
		assert.Nil(t, Derive(s))

		loop, ok := s.IterationScope()
		assert.True(t, ok)
		assert.Equal(t, 0, loop)
	})

	t.Run("terminal modifier blocks navigation", func(t *testing.T) {
		s := run(t, NewState(info),
			SelectType{Type: m.ElementFunction},
			SelectFunctionName{Name: "foo"},
			SelectFunctionLine{Choice: LocalIndex(0)},
			SelectModifier{Modifier: m.ModifierReturnValue},
		)
		before := Derive(s)

		next, err := Apply(s, NavigateInto{})
		require.ErrorIs(t, err, ErrInvalidTransition)
		assert.Equal(t, s, next)
		assert.Equal(t, before, Derive(next))
		assert.False(t, CanNavigateInto(s))
	})

	t.Run("all occurrences cannot be entered", func(t *testing.T) {
		s := run(t, NewState(info),
			SelectType{Type: m.ElementFunction},
			SelectFunctionName{Name: "foo"},
			SelectFunctionLine{Choice: AllOccurrences{}},
		)

		_, err := Apply(s, NavigateInto{})
		require.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("call site without body is a stale lookup", func(t *testing.T) {
		s := run(t, NewState(info),
			SelectType{Type: m.ElementFunction},
			SelectFunctionName{Name: "foo"},
			SelectFunctionLine{Choice: LocalIndex(1)},
		)
		require.True(t, CanNavigateInto(s))

		next, err := Apply(s, NavigateInto{})
		require.ErrorIs(t, err, ErrScopeNotFound)
		assert.Equal(t, s, next)
	})

	t.Run("function body entered", func(t *testing.T) {
		s := run(t, NewState(info),
			SelectType{Type: m.ElementFunction},
			SelectFunctionName{Name: "foo"},
			SelectFunctionLine{Choice: LocalIndex(0)},
			SelectModifier{Modifier: m.ModifierArguments},
			SelectModifier{Modifier: m.ModifierArguments},
			NavigateInto{},
		)

		require.Len(t, s.ScopePath, 1)
		assert.Equal(t, m.ScopePathItem{Type: m.ElementFunction, ID: 0, Name: "foo", LineNumber: 1}, s.ScopePath[0])
		assert.Equal(t, []string{"a", "n"}, s.CurrentTree.VariableNames)
	})
}

func TestApply_VariableMultiSelect(t *testing.T) {
	s := run(t, NewState(sampleInfo()),
		SelectType{Type: m.ElementVariable},
		ToggleVariable{Name: "x"},
		ToggleVariable{Name: "y"},
		ToggleVariable{Name: "x"},
	)

	assert.Equal(t, []string{"y"}, s.SelectedVariables)
	assert.Equal(t, &m.TargetSelection{
		Type:      m.ElementVariable,
		ElementID: m.VariableSet{Names: []string{"y"}},
		Name:      "y",
		ScopePath: []m.ScopePathItem{},
	}, Derive(s))

	s = run(t, s, SelectElement{Index: 2}, ToggleVariable{Name: "x"})
	assert.Equal(t, "y,arr,x", Derive(s).Name)

	s = run(t, s, ToggleVariable{Name: "y"}, ToggleVariable{Name: "arr"}, ToggleVariable{Name: "x"})
	assert.Nil(t, Derive(s))
}

func TestApply_VariablePreconditions(t *testing.T) {
	s := NewState(sampleInfo())

	_, err := Apply(s, ToggleVariable{Name: "x"})
	require.ErrorIs(t, err, ErrInvalidTransition)

	s = run(t, s, SelectType{Type: m.ElementVariable})

	_, err = Apply(s, ToggleVariable{Name: "k"})
	require.ErrorIs(t, err, ErrInvalidTransition, "k is declared inside the loop, not at the root")

	_, err = Apply(s, NavigateInto{})
	require.ErrorIs(t, err, ErrInvalidTransition)

	_, err = Apply(s, SelectModifier{Modifier: m.ModifierLoopIterations})
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestApply_BreadcrumbTruncation(t *testing.T) {
	info := sampleInfo()
	s := run(t, NewState(info),
		SelectType{Type: m.ElementFunction},
		SelectFunctionName{Name: "foo"},
		SelectFunctionLine{Choice: LocalIndex(0)},
		NavigateInto{},
		SelectType{Type: m.ElementLoop},
		SelectElement{Index: 0},
		SelectModifier{Modifier: m.ModifierLoopIterations},
		NavigateInto{},
		SelectType{Type: m.ElementBranch},
		SelectElement{Index: 0},
		SelectModifier{Modifier: m.ModifierBranchTrue},
		NavigateInto{},
	)
	require.Len(t, s.ScopePath, 3)
	assert.Equal(t, []string{"root", "foo (Line 1)", "while (Line 2) [iterations]", "i % 2 == 0 (Line 3) [true]"}, s.Breadcrumbs())

	original := s.ScopePath
	originalFirst := original[0]

	back := run(t, s, SelectType{Type: m.ElementVariable}, ToggleVariable{Name: "even"}, NavigateBack{Index: 1})
	require.Len(t, back.ScopePath, 1)
	assert.Equal(t, originalFirst, back.ScopePath[0])

	want, ok := FindSubtree(info.CodeTree, m.NodeFunction, back.ScopePath[0].ID)
	require.True(t, ok)
	assert.Same(t, want, back.CurrentTree)
	assert.Empty(t, back.Type)
	assert.Empty(t, back.SelectedVariables)
	assert.Nil(t, Derive(back))

	_, inLoop := back.IterationScope()
	assert.False(t, inLoop)

	// the previous snapshot is untouched
	assert.Len(t, s.ScopePath, 3)
	assert.Len(t, original, 3)

	root := run(t, back, NavigateBack{Index: 0})
	assert.Empty(t, root.ScopePath)
	assert.Same(t, info.CodeTree, root.CurrentTree)

	_, err := Apply(root, NavigateBack{Index: 1})
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestApply_IdempotentModifierToggle(t *testing.T) {
	s := run(t, NewState(sampleInfo()),
		SelectType{Type: m.ElementFunction},
		SelectFunctionName{Name: "foo"},
		SelectFunctionLine{Choice: LocalIndex(0)},
		NavigateInto{},
		SelectType{Type: m.ElementBranch},
		SelectElement{Index: 0},
	)
	require.Empty(t, s.Modifier)

	on := run(t, s, SelectModifier{Modifier: m.ModifierBranchTrue})
	assert.Equal(t, m.ModifierBranchTrue, Derive(on).Modifier)
	assert.Equal(t, s.ScopePath, on.ScopePath)

	switched := run(t, on, SelectModifier{Modifier: m.ModifierBranchFalse})
	assert.Equal(t, m.ModifierBranchFalse, Derive(switched).Modifier)

	off := run(t, on, SelectModifier{Modifier: m.ModifierBranchTrue})
	assert.Empty(t, off.Modifier)
	assert.Empty(t, Derive(off).Modifier)
}

func TestApply_ModifierNeedsSelection(t *testing.T) {
	s := run(t, NewState(sampleInfo()), SelectType{Type: m.ElementLoop})

	next, err := Apply(s, SelectModifier{Modifier: m.ModifierLoopIterations})
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, s, next)

	s = run(t, s, SelectElement{Index: 0})
	_, err = Apply(s, SelectModifier{Modifier: m.ModifierReturnValue})
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestApply_InvalidPreconditionsAreNoOps(t *testing.T) {
	s := NewState(sampleInfo())

	for _, a := range []Action{
		SelectType{Type: "class"},
		SelectFunctionName{Name: "foo"},
		SelectFunctionLine{Choice: AllOccurrences{}},
		SelectElement{Index: 0},
		NavigateInto{},
		NavigateBack{Index: -1},
		nil,
	} {
		next, err := Apply(s, a)
		require.ErrorIsf(t, err, ErrInvalidTransition, "action %#v", a)
		assert.Equal(t, s, next)
		assert.Equal(t, s, Reduce(s, a))
	}

	s = run(t, s, SelectType{Type: m.ElementLoop})
	_, err := Apply(s, SelectElement{Index: 5})
	require.ErrorIs(t, err, ErrInvalidTransition)

	s = run(t, s, SelectType{Type: m.ElementFunction})
	_, err = Apply(s, SelectFunctionName{Name: "partition"})
	require.ErrorIs(t, err, ErrInvalidTransition, "partition is only called inside bar")
}

func TestApply_NavigateBackToStaleScope(t *testing.T) {
	info := sampleInfo()
	s := run(t, NewState(info),
		SelectType{Type: m.ElementLoop},
		SelectElement{Index: 0},
		NavigateInto{},
	)

	// the analyzer output changed underneath the session
	info.CodeTree.Children = info.CodeTree.Children[:2]

	next, err := Apply(s, NavigateBack{Index: 1})
	require.ErrorIs(t, err, ErrScopeNotFound)
	assert.Same(t, info.CodeTree, next.CurrentTree)
	assert.Len(t, next.ScopePath, 1)
}
