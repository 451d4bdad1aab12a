// Package model defines the data structures shared by the target selection subsystem.
package model

// NodeType identifies the kind of lexical scope a CodeStructureNode represents.
type NodeType string

const (
	// NodeModule is the analysis root.
	NodeModule NodeType = "module"
	// NodeFunction is a function body.
	NodeFunction NodeType = "function"
	// NodeLoop is a loop body.
	NodeLoop NodeType = "loop"
	// NodeBranch is a branch body.
	NodeBranch NodeType = "branch"
)

// CodeStructureNode represents one lexical scope of the analysed source.
//
// IDs are unique per NodeType across the whole analysis; nodes of different
// types may share an ID.
type CodeStructureNode struct {
	ID              int                  `json:"id" yaml:"id"`
	NodeType        NodeType             `json:"node_type" yaml:"node_type"`
	VariableNames   []string             `json:"variable_names" yaml:"variable_names"`
	FunctionIndices []int                `json:"function_indices" yaml:"function_indices"`
	LoopIndices     []int                `json:"loop_indices" yaml:"loop_indices"`
	BranchIndices   []int                `json:"branch_indices" yaml:"branch_indices"`
	Children        []*CodeStructureNode `json:"children" yaml:"children"`
}

// FunctionElement is one entry of the global function table. Several entries may
// share a name: definitions, re-declarations and call sites.
type FunctionElement struct {
	Name         string   `json:"name" yaml:"name"`
	LineNumber   int      `json:"line_number" yaml:"line_number"`
	Parameters   []string `json:"parameters" yaml:"parameters"`
	IsDefinition bool     `json:"is_definition" yaml:"is_definition"`
}

// LoopElement is one entry of the global loop table.
type LoopElement struct {
	LineNumber int    `json:"line_number" yaml:"line_number"`
	LoopType   string `json:"loop_type" yaml:"loop_type"`
	Condition  string `json:"condition" yaml:"condition"`
}

// BranchElement is one entry of the global branch table.
type BranchElement struct {
	LineNumber int    `json:"line_number" yaml:"line_number"`
	Condition  string `json:"condition" yaml:"condition"`
}

// CodeInfo is the analyzer output for one piece of submitted code. It is read-only
// for the lifetime of a selection session.
type CodeInfo struct {
	CodeTree  *CodeStructureNode `json:"code_tree" yaml:"code_tree"`
	Functions []FunctionElement  `json:"functions" yaml:"functions"`
	Loops     []LoopElement      `json:"loops" yaml:"loops"`
	Branches  []BranchElement    `json:"branches" yaml:"branches"`
	Variables []string           `json:"variables" yaml:"variables"`
}

// Element resolves a global table index for the given element type.
// Variables have no numeric table and never resolve.
func (ci *CodeInfo) Element(elementType ElementType, id int) (Element, bool) {
	if ci == nil || id < 0 {
		return nil, false
	}

	switch elementType {
	case ElementFunction:
		if id < len(ci.Functions) {
			return ci.Functions[id], true
		}
	case ElementLoop:
		if id < len(ci.Loops) {
			return ci.Loops[id], true
		}
	case ElementBranch:
		if id < len(ci.Branches) {
			return ci.Branches[id], true
		}
	case ElementVariable:
	}

	return nil, false
}

// Variable resolves a name against the global variable table.
func (ci *CodeInfo) Variable(name string) (VariableRef, bool) {
	if ci == nil {
		return VariableRef{}, false
	}

	for _, v := range ci.Variables {
		if v == name {
			return VariableRef{Name: name}, true
		}
	}

	return VariableRef{}, false
}

// Indices returns the node's index list for a scope-introducing element type.
func (n *CodeStructureNode) Indices(elementType ElementType) []int {
	if n == nil {
		return nil
	}

	switch elementType {
	case ElementFunction:
		return n.FunctionIndices
	case ElementLoop:
		return n.LoopIndices
	case ElementBranch:
		return n.BranchIndices
	case ElementVariable:
	}

	return nil
}
