package model

// Path represents a file system path.
type Path string

// TargetDocument is a saved target together with the generation request fields
// it travels with. OutputType and QuestionType are opaque to target selection.
type TargetDocument struct {
	ID           string
	CodeInfo     Path
	OutputType   string
	QuestionType string
	Target       []TargetPathItem
}
