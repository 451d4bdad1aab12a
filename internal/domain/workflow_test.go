package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	adaptermocks "github.com/mouse-blink/targetpath/internal/adapter/mocks"
	"github.com/mouse-blink/targetpath/internal/controller"
	controllermocks "github.com/mouse-blink/targetpath/internal/controller/mocks"
	m "github.com/mouse-blink/targetpath/internal/model"
	"github.com/mouse-blink/targetpath/internal/selection"
)

// testInfo models a function foo (line 1) with a for loop (line 2) and a call
// to foo at line 6.
func testInfo() *m.CodeInfo {
	return &m.CodeInfo{
		CodeTree: &m.CodeStructureNode{
			NodeType:        m.NodeModule,
			VariableNames:   []string{"xs"},
			FunctionIndices: []int{0, 1},
			Children: []*m.CodeStructureNode{
				{
					ID:            0,
					NodeType:      m.NodeFunction,
					VariableNames: []string{"n"},
					LoopIndices:   []int{0},
					Children: []*m.CodeStructureNode{
						{ID: 0, NodeType: m.NodeLoop, VariableNames: []string{"i"}},
					},
				},
			},
		},
		Functions: []m.FunctionElement{
			{Name: "foo", LineNumber: 1, IsDefinition: true},
			{Name: "foo", LineNumber: 6},
		},
		Loops:     []m.LoopElement{{LineNumber: 2, LoopType: "for", Condition: "i in range(n)"}},
		Variables: []string{"xs", "n", "i"},
	}
}

func loopTarget() []m.TargetPathItem {
	return []m.TargetPathItem{
		{Type: m.ElementFunction, ID: []int{0}, Name: "foo", LineNumber: 1},
		{Type: m.ElementLoop, ID: []int{0}, Name: "for", LineNumber: 2, Modifier: m.ModifierLoopIterations},
	}
}

type fixture struct {
	source *adaptermocks.MockCodeInfoSource
	store  *adaptermocks.MockTargetStore
	ui     *controllermocks.MockUI
	wf     Workflow
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	f := fixture{
		source: adaptermocks.NewMockCodeInfoSource(t),
		store:  adaptermocks.NewMockTargetStore(t),
		ui:     controllermocks.NewMockUI(t),
	}
	f.wf = NewWorkflow(f.source, f.store, f.ui, nil)

	return f
}

func TestWorkflow_Select_NewTarget(t *testing.T) {
	f := newFixture(t)

	f.source.On("Load", m.Path("code.json")).Return(testInfo(), nil)
	f.ui.On("SelectTarget", mock.Anything, mock.Anything, mock.Anything).Return(
		func(_ context.Context, s *selection.Selector, _ ...controller.SelectOption) (*m.TargetSelection, error) {
			s.Dispatch(selection.SelectType{Type: m.ElementFunction})
			s.Dispatch(selection.SelectFunctionName{Name: "foo"})
			s.Dispatch(selection.SelectFunctionLine{Choice: selection.LocalIndex(0)})
			s.Dispatch(selection.NavigateInto{})
			s.Dispatch(selection.SelectType{Type: m.ElementLoop})
			s.Dispatch(selection.SelectElement{Index: 0})
			s.Dispatch(selection.SelectModifier{Modifier: m.ModifierLoopIterations})

			return s.Selection(), nil
		}, nil)
	f.store.On("Save", m.Path("out.json"), mock.MatchedBy(func(doc m.TargetDocument) bool {
		return doc.ID == "" && doc.CodeInfo == "code.json" && doc.OutputType == "single_value" &&
			assert.ObjectsAreEqual(loopTarget(), doc.Target)
	})).Return(func(_ m.Path, doc m.TargetDocument) (m.TargetDocument, error) {
		doc.ID = "tpl-1"
		return doc, nil
	}, nil)
	f.ui.On("DisplayTarget", mock.MatchedBy(func(doc m.TargetDocument) bool {
		return doc.ID == "tpl-1"
	}), mock.MatchedBy(func(sel *m.TargetSelection) bool {
		return sel.Type == m.ElementLoop && len(sel.ScopePath) == 1
	})).Return(nil)

	err := f.wf.Select(context.Background(), SelectArgs{CodeInfo: "code.json", Out: "out.json", OutputType: "single_value"})
	require.NoError(t, err)
}

func TestWorkflow_Select_EditReseedsAndOverwrites(t *testing.T) {
	f := newFixture(t)

	saved := m.TargetDocument{ID: "tpl-9", CodeInfo: "code.json", QuestionType: "fill_in", Target: loopTarget()}

	f.source.On("Load", m.Path("code.json")).Return(testInfo(), nil)
	f.store.On("Load", m.Path("old.json")).Return(saved, nil)
	f.ui.On("SelectTarget", mock.Anything, mock.Anything, mock.Anything).Return(
		func(_ context.Context, s *selection.Selector, _ ...controller.SelectOption) (*m.TargetSelection, error) {
			if got := s.State().Breadcrumbs(); len(got) != 2 {
				return nil, errors.New("session was not seeded into foo")
			}

			s.Dispatch(selection.SelectModifier{Modifier: m.ModifierLoopIterations})

			return s.Selection(), nil
		}, nil)
	f.store.On("Save", m.Path("old.json"), mock.MatchedBy(func(doc m.TargetDocument) bool {
		return doc.ID == "tpl-9" && doc.QuestionType == "fill_in" && len(doc.Target) == 2 &&
			doc.Target[1].Modifier == ""
	})).Return(saved, nil)
	f.ui.On("DisplayTarget", saved, mock.Anything).Return(nil)

	require.NoError(t, f.wf.Select(context.Background(), SelectArgs{CodeInfo: "code.json", Edit: "old.json"}))
}

func TestWorkflow_Select_Errors(t *testing.T) {
	t.Run("no output", func(t *testing.T) {
		f := newFixture(t)
		err := f.wf.Select(context.Background(), SelectArgs{CodeInfo: "code.json"})
		require.ErrorIs(t, err, ErrNoOutput)
	})

	t.Run("load failure", func(t *testing.T) {
		f := newFixture(t)
		boom := errors.New("boom")
		f.source.On("Load", m.Path("code.json")).Return(nil, boom)

		err := f.wf.Select(context.Background(), SelectArgs{CodeInfo: "code.json", Out: "out.json"})
		require.ErrorIs(t, err, boom)
	})

	t.Run("cancelled", func(t *testing.T) {
		f := newFixture(t)
		f.source.On("Load", m.Path("code.json")).Return(testInfo(), nil)
		f.ui.On("SelectTarget", mock.Anything, mock.Anything, mock.Anything).Return(nil, controller.ErrSelectionCancelled)

		err := f.wf.Select(context.Background(), SelectArgs{CodeInfo: "code.json", Out: "out.json"})
		require.ErrorIs(t, err, controller.ErrSelectionCancelled)
	})

	t.Run("empty saved target", func(t *testing.T) {
		f := newFixture(t)
		f.source.On("Load", m.Path("code.json")).Return(testInfo(), nil)
		f.store.On("Load", m.Path("old.json")).Return(m.TargetDocument{ID: "tpl-2"}, nil)

		err := f.wf.Select(context.Background(), SelectArgs{CodeInfo: "code.json", Edit: "old.json"})
		require.ErrorIs(t, err, selection.ErrEmptyTarget)
	})
}

func TestWorkflow_View(t *testing.T) {
	doc := m.TargetDocument{ID: "tpl-3", Target: loopTarget()}

	t.Run("display only", func(t *testing.T) {
		f := newFixture(t)
		f.store.On("Load", m.Path("t.json")).Return(doc, nil)
		f.ui.On("DisplayTarget", doc, mock.MatchedBy(func(sel *m.TargetSelection) bool {
			return sel.Modifier == m.ModifierLoopIterations && sel.ElementID == m.ElementChoice(m.Single{ID: 0})
		})).Return(nil)

		require.NoError(t, f.wf.View(context.Background(), ViewArgs{Target: "t.json"}))
	})

	t.Run("stale against code info", func(t *testing.T) {
		f := newFixture(t)
		info := testInfo()
		info.CodeTree.Children[0].LoopIndices = nil
		info.CodeTree.Children[0].Children = nil

		f.store.On("Load", m.Path("t.json")).Return(doc, nil)
		f.ui.On("DisplayTarget", doc, mock.Anything).Return(nil)
		f.source.On("Load", m.Path("code.json")).Return(info, nil)

		err := f.wf.View(context.Background(), ViewArgs{Target: "t.json", CodeInfo: "code.json"})
		require.ErrorIs(t, err, selection.ErrStaleTarget)
	})
}

func TestWorkflow_List(t *testing.T) {
	t.Run("root scope", func(t *testing.T) {
		f := newFixture(t)
		f.source.On("Load", m.Path("code.json")).Return(testInfo(), nil)
		f.ui.On("DisplayScope", mock.MatchedBy(func(s selection.State) bool {
			return len(s.ScopePath) == 0 && s.CurrentTree == s.Root()
		})).Return(nil)

		require.NoError(t, f.wf.List(context.Background(), ListArgs{CodeInfo: "code.json"}))
	})

	t.Run("target scope", func(t *testing.T) {
		f := newFixture(t)
		f.source.On("Load", m.Path("code.json")).Return(testInfo(), nil)
		f.store.On("Load", m.Path("t.json")).Return(m.TargetDocument{Target: loopTarget()}, nil)
		f.ui.On("DisplayScope", mock.MatchedBy(func(s selection.State) bool {
			return len(s.ScopePath) == 1 && s.CurrentTree.NodeType == m.NodeFunction
		})).Return(nil)

		require.NoError(t, f.wf.List(context.Background(), ListArgs{CodeInfo: "code.json", Target: "t.json"}))
	})
}

func TestWorkflow_Check(t *testing.T) {
	broken := testInfo()
	broken.CodeTree.LoopIndices = []int{7}

	f := newFixture(t)
	f.source.On("Load", m.Path("good.json")).Return(testInfo(), nil)
	f.source.On("Load", m.Path("broken.json")).Return(broken, nil)
	f.source.On("Load", m.Path("missing.json")).Return(nil, errors.New("no such file"))
	f.ui.On("DisplayCheck", mock.MatchedBy(func(results []m.CheckResult) bool {
		return len(results) == 3 &&
			results[0].Path == "good.json" && results[0].OK() && results[0].Scopes == 3 && results[0].Functions == 2 &&
			results[1].Path == "broken.json" && errors.Is(results[1].Err, selection.ErrContractViolation) &&
			results[2].Path == "missing.json" && !results[2].OK()
	})).Return(nil)

	err := f.wf.Check(context.Background(), CheckArgs{
		Paths:    []m.Path{"good.json", "broken.json", "missing.json"},
		Parallel: 2,
	})
	require.ErrorIs(t, err, ErrCheckFailed)
	assert.Contains(t, err.Error(), "2 of 3")
}

func TestWorkflow_Check_AllGood(t *testing.T) {
	f := newFixture(t)
	f.source.On("Load", mock.Anything).Return(testInfo(), nil)
	f.ui.On("DisplayCheck", mock.Anything).Return(nil)

	require.NoError(t, f.wf.Check(context.Background(), CheckArgs{Paths: []m.Path{"a.json", "b.json"}}))
}
