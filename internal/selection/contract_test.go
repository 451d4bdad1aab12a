package selection

import (
	"testing"

	m "github.com/mouse-blink/targetpath/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Sample(t *testing.T) {
	require.NoError(t, Validate(sampleInfo()))
}

// Tree reconstruction looks scopes up from the root by (type, id) alone, so the
// analyzer must number each node type globally.
func TestValidate_GlobalIDUniquenessPerType(t *testing.T) {
	for seed := uint64(1); seed <= 100; seed++ {
		info := randomInfo(seed, 5)
		require.NoErrorf(t, Validate(info), "seed %d", seed)

		seen := map[nodeKey]bool{}
		walkNodes(info.CodeTree, func(n *m.CodeStructureNode) {
			key := nodeKey{nodeType: n.NodeType, id: n.ID}
			require.Falsef(t, seen[key], "seed %d: duplicate %s %d", seed, n.NodeType, n.ID)
			seen[key] = true
		})
	}
}

func TestValidate_Violations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(info *m.CodeInfo)
		want   string
	}{
		{
			name: "duplicate id per type",
			mutate: func(info *m.CodeInfo) {
				foo := info.CodeTree.Children[0]
				foo.LoopIndices = append(foo.LoopIndices, 0)
				foo.Children = append(foo.Children, &m.CodeStructureNode{ID: 0, NodeType: m.NodeLoop})
			},
			want: "loop id 0 appears more than once",
		},
		{
			name: "index out of range",
			mutate: func(info *m.CodeInfo) {
				info.CodeTree.FunctionIndices = append(info.CodeTree.FunctionIndices, 17)
			},
			want: "function index 17 out of range",
		},
		{
			name: "undeclared child",
			mutate: func(info *m.CodeInfo) {
				info.CodeTree.LoopIndices = nil
			},
			want: "loop 0 is not declared by its parent",
		},
		{
			name: "loop without body",
			mutate: func(info *m.CodeInfo) {
				info.CodeTree.Children = info.CodeTree.Children[:2]
			},
			want: "loop 0 declared by module 0 has no body",
		},
		{
			name: "unknown variable",
			mutate: func(info *m.CodeInfo) {
				info.CodeTree.VariableNames = append(info.CodeTree.VariableNames, "ghost")
			},
			want: `variable "ghost" missing from the variable table`,
		},
		{
			name: "missing tree",
			mutate: func(info *m.CodeInfo) {
				info.CodeTree = nil
			},
			want: "missing code tree",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := sampleInfo()
			tt.mutate(info)

			err := Validate(info)
			require.ErrorIs(t, err, ErrContractViolation)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_Cycle(t *testing.T) {
	info := sampleInfo()
	loop := info.CodeTree.Children[2]
	loop.LoopIndices = []int{0}
	loop.Children = append(loop.Children, loop)

	err := Validate(info)
	require.ErrorIs(t, err, ErrContractViolation)
	assert.Contains(t, err.Error(), "appears more than once")
}
