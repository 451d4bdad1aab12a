package selection

import (
	"errors"
	"fmt"
	"slices"

	m "github.com/mouse-blink/targetpath/internal/model"
)

// ErrContractViolation reports analyzer output that breaks the assumptions scope
// navigation relies on.
var ErrContractViolation = errors.New("code info contract violation")

type nodeKey struct {
	nodeType m.NodeType
	id       int
}

// Validate checks that info can be navigated: (type, id) pairs are unique across
// the whole tree, element indices are in range, and every nested scope is the
// body of an element its parent declares. All violations are joined.
func Validate(info *m.CodeInfo) error {
	if info == nil || info.CodeTree == nil {
		return fmt.Errorf("%w: missing code tree", ErrContractViolation)
	}

	v := validator{info: info, seen: make(map[nodeKey]int)}
	v.walk(info.CodeTree, nil, true)

	if len(v.errs) == 0 {
		return nil
	}

	return fmt.Errorf("%w: %w", ErrContractViolation, errors.Join(v.errs...))
}

type validator struct {
	info      *m.CodeInfo
	seen      map[nodeKey]int
	ancestors []*m.CodeStructureNode
	errs      []error
}

func (v *validator) fail(format string, args ...any) {
	v.errs = append(v.errs, fmt.Errorf(format, args...))
}

func (v *validator) walk(node, parent *m.CodeStructureNode, root bool) {
	if node == nil {
		v.fail("nil child node")
		return
	}

	if !root {
		key := nodeKey{nodeType: node.NodeType, id: node.ID}
		v.seen[key]++

		if v.seen[key] > 1 {
			if v.seen[key] == 2 {
				v.fail("%s id %d appears more than once", node.NodeType, node.ID)
			}

			// a repeated key may be a cycle back to an ancestor
			if slices.Contains(v.ancestors, node) {
				return
			}
		}

		v.checkReferenced(node, parent)
	}

	v.checkRanges(node)
	v.checkVariables(node)
	v.checkBodies(node)

	v.ancestors = append(v.ancestors, node)
	for _, child := range node.Children {
		v.walk(child, node, false)
	}
	v.ancestors = v.ancestors[:len(v.ancestors)-1]
}

func (v *validator) checkReferenced(node, parent *m.CodeStructureNode) {
	var indices []int

	switch node.NodeType {
	case m.NodeFunction:
		indices = parent.FunctionIndices
	case m.NodeLoop:
		indices = parent.LoopIndices
	case m.NodeBranch:
		indices = parent.BranchIndices
	case m.NodeModule:
		v.fail("nested module node %d", node.ID)
		return
	default:
		v.fail("unknown node type %q for id %d", node.NodeType, node.ID)
		return
	}

	if !slices.Contains(indices, node.ID) {
		v.fail("%s %d is not declared by its parent %s %d", node.NodeType, node.ID, parent.NodeType, parent.ID)
	}
}

func (v *validator) checkRanges(node *m.CodeStructureNode) {
	check := func(kind string, indices []int, size int) {
		for _, idx := range indices {
			if idx < 0 || idx >= size {
				v.fail("%s %d: %s index %d out of range (table has %d)", node.NodeType, node.ID, kind, idx, size)
			}
		}
	}

	check("function", node.FunctionIndices, len(v.info.Functions))
	check("loop", node.LoopIndices, len(v.info.Loops))
	check("branch", node.BranchIndices, len(v.info.Branches))
}

// checkVariables requires declared variables to be in the global table, when
// the analyzer emitted one.
func (v *validator) checkVariables(node *m.CodeStructureNode) {
	if len(v.info.Variables) == 0 {
		return
	}

	for _, name := range node.VariableNames {
		if _, ok := v.info.Variable(name); !ok {
			v.fail("%s %d: variable %q missing from the variable table", node.NodeType, node.ID, name)
		}
	}
}

// checkBodies requires a child scope for each loop and branch the node declares.
// Function call sites have no body, so functions are not checked.
func (v *validator) checkBodies(node *m.CodeStructureNode) {
	hasChild := func(nodeType m.NodeType, id int) bool {
		return slices.ContainsFunc(node.Children, func(c *m.CodeStructureNode) bool {
			return c != nil && c.NodeType == nodeType && c.ID == id
		})
	}

	for _, id := range node.LoopIndices {
		if !hasChild(m.NodeLoop, id) {
			v.fail("loop %d declared by %s %d has no body", id, node.NodeType, node.ID)
		}
	}

	for _, id := range node.BranchIndices {
		if !hasChild(m.NodeBranch, id) {
			v.fail("branch %d declared by %s %d has no body", id, node.NodeType, node.ID)
		}
	}
}
