// Package selection implements target selection over an analyzed code tree:
// scope navigation, the selection state machine and the flattened wire protocol.
package selection

import (
	"errors"
	"fmt"

	m "github.com/mouse-blink/targetpath/internal/model"
)

// ErrScopeNotFound reports that a scope referenced by a path or a selection is not
// present in the analyzed tree.
var ErrScopeNotFound = errors.New("scope not found")

// FindSubtree searches the descendants of root breadth-first for the node with the
// given type and id. Root itself is never a match.
func FindSubtree(root *m.CodeStructureNode, nodeType m.NodeType, id int) (*m.CodeStructureNode, bool) {
	if root == nil {
		return nil, false
	}

	queue := append([]*m.CodeStructureNode(nil), root.Children...)

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		if node == nil {
			continue
		}

		if node.NodeType == nodeType && node.ID == id {
			return node, true
		}

		queue = append(queue, node.Children...)
	}

	return nil, false
}

// ReconstructTree returns the scope described by scopePath. Only the last entry is
// looked up, from root, since (type, id) pairs are unique across the whole tree.
// When that scope is missing, root is returned together with an error wrapping
// ErrScopeNotFound; the returned node is always usable.
func ReconstructTree(root *m.CodeStructureNode, scopePath []m.ScopePathItem) (*m.CodeStructureNode, error) {
	if len(scopePath) == 0 {
		return root, nil
	}

	last := scopePath[len(scopePath)-1]

	nodeType, ok := last.Type.NodeType()
	if !ok {
		return root, fmt.Errorf("%w: %s entries do not introduce a scope", ErrScopeNotFound, last.Type)
	}

	node, ok := FindSubtree(root, nodeType, last.ID)
	if !ok {
		return root, fmt.Errorf("%w: %s %d", ErrScopeNotFound, nodeType, last.ID)
	}

	return node, nil
}

// InnermostLoopIterationScope returns the id of the nearest scope path entry,
// scanning from the end, that was entered per loop iteration.
func InnermostLoopIterationScope(scopePath []m.ScopePathItem) (int, bool) {
	for i := len(scopePath) - 1; i >= 0; i-- {
		if scopePath[i].Modifier == m.ModifierLoopIterations {
			return scopePath[i].ID, true
		}
	}

	return 0, false
}
