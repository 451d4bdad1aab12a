package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"

	m "github.com/mouse-blink/targetpath/internal/model"
)

// TargetStore persists and retrieves target documents.
type TargetStore interface {
	Save(path m.Path, doc m.TargetDocument) (m.TargetDocument, error)
	Load(path m.Path) (m.TargetDocument, error)
}

// storedItem is a TargetPathItem with its position in the path. Generation
// backends return items unordered, so order travels with each item.
type storedItem struct {
	m.TargetPathItem `yaml:",inline"`

	Order int `json:"order" yaml:"order"`
}

type storedDocument struct {
	ID           string       `json:"id" yaml:"id"`
	CodeInfo     m.Path       `json:"code_info,omitempty" yaml:"code_info,omitempty"`
	OutputType   string       `json:"output_type,omitempty" yaml:"output_type,omitempty"`
	QuestionType string       `json:"question_type,omitempty" yaml:"question_type,omitempty"`
	Target       []storedItem `json:"target" yaml:"target"`
}

// LocalTargetStore keeps target documents as JSON or YAML files, chosen by extension.
type LocalTargetStore struct {
	defaultFormat Format
}

// NewLocalTargetStore constructs a LocalTargetStore. Paths without a known
// extension use defaultFormat.
func NewLocalTargetStore(defaultFormat Format) *LocalTargetStore {
	if defaultFormat == "" {
		defaultFormat = FormatJSON
	}

	return &LocalTargetStore{defaultFormat: defaultFormat}
}

// Save writes doc to path, assigning an id when it has none and an order to
// every item by position. It returns the document as written.
func (s *LocalTargetStore) Save(path m.Path, doc m.TargetDocument) (m.TargetDocument, error) {
	if len(doc.Target) == 0 {
		return doc, errors.New("refusing to save an empty target")
	}

	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}

	stored := storedDocument{
		ID:           doc.ID,
		CodeInfo:     doc.CodeInfo,
		OutputType:   doc.OutputType,
		QuestionType: doc.QuestionType,
		Target:       make([]storedItem, 0, len(doc.Target)),
	}

	for i, item := range doc.Target {
		stored.Target = append(stored.Target, storedItem{Order: i, TargetPathItem: item})
	}

	content, err := encode(FormatForPath(path, s.defaultFormat), stored)
	if err != nil {
		return doc, fmt.Errorf("failed to encode target: %w", err)
	}

	if dir := filepath.Dir(string(path)); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return doc, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(string(path), content, 0o644); err != nil {
		return doc, fmt.Errorf("failed to write target %s: %w", path, err)
	}

	return doc, nil
}

// Load reads the document at path with its items sorted by order.
func (s *LocalTargetStore) Load(path m.Path) (m.TargetDocument, error) {
	content, err := os.ReadFile(string(path))
	if err != nil {
		return m.TargetDocument{}, fmt.Errorf("failed to read target %s: %w", path, err)
	}

	var stored storedDocument
	if err := decode(content, FormatForPath(path, s.defaultFormat), &stored); err != nil {
		return m.TargetDocument{}, fmt.Errorf("failed to decode target %s: %w", path, err)
	}

	sort.SliceStable(stored.Target, func(i, j int) bool {
		return stored.Target[i].Order < stored.Target[j].Order
	})

	doc := m.TargetDocument{
		ID:           stored.ID,
		CodeInfo:     stored.CodeInfo,
		OutputType:   stored.OutputType,
		QuestionType: stored.QuestionType,
		Target:       make([]m.TargetPathItem, 0, len(stored.Target)),
	}

	for _, item := range stored.Target {
		doc.Target = append(doc.Target, item.TargetPathItem)
	}

	return doc, nil
}
