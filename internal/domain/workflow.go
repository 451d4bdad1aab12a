// Package domain orchestrates target selection sessions over code-info and target files.
package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/mouse-blink/targetpath/internal/adapter"
	"github.com/mouse-blink/targetpath/internal/controller"
	"github.com/mouse-blink/targetpath/internal/logging"
	m "github.com/mouse-blink/targetpath/internal/model"
	"github.com/mouse-blink/targetpath/internal/selection"
)

// ErrCheckFailed is returned when at least one code-info file fails validation.
var ErrCheckFailed = errors.New("code info check failed")

// ErrNoOutput is returned when a selection has nowhere to be saved.
var ErrNoOutput = errors.New("no output path for the target")

// SelectArgs holds the arguments for an interactive selection.
type SelectArgs struct {
	CodeInfo     m.Path
	Edit         m.Path
	Out          m.Path
	OutputType   string
	QuestionType string
}

// ViewArgs holds the arguments for displaying a saved target.
type ViewArgs struct {
	Target   m.Path
	CodeInfo m.Path
}

// ListArgs holds the arguments for listing a scope.
type ListArgs struct {
	CodeInfo m.Path
	Target   m.Path
}

// CheckArgs holds the arguments for validating code-info files.
type CheckArgs struct {
	Paths    []m.Path
	Parallel int
}

// Workflow defines the interface for target selection operations.
type Workflow interface {
	Select(ctx context.Context, args SelectArgs) error
	View(ctx context.Context, args ViewArgs) error
	List(ctx context.Context, args ListArgs) error
	Check(ctx context.Context, args CheckArgs) error
}

type workflow struct {
	codeInfo adapter.CodeInfoSource
	store    adapter.TargetStore
	ui       controller.UI
	logger   *slog.Logger
}

// NewWorkflow creates a new Workflow instance with the provided adapters.
func NewWorkflow(
	codeInfo adapter.CodeInfoSource,
	store adapter.TargetStore,
	ui controller.UI,
	logger *slog.Logger,
) Workflow {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}

	return &workflow{
		codeInfo: codeInfo,
		store:    store,
		ui:       ui,
		logger:   logger,
	}
}

// Select runs a selection session over args.CodeInfo, re-seeded from args.Edit
// when given, and saves the result.
func (w *workflow) Select(ctx context.Context, args SelectArgs) error {
	out := args.Out
	if out == "" {
		out = args.Edit
	}

	if out == "" {
		return ErrNoOutput
	}

	var (
		info  *m.CodeInfo
		saved m.TargetDocument
	)

	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		info, err = w.codeInfo.Load(args.CodeInfo)

		return err
	})

	if args.Edit != "" {
		g.Go(func() error {
			var err error
			saved, err = w.store.Load(args.Edit)

			return err
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	w.warnOnContract(args.CodeInfo, info)

	selector := selection.NewSelector(info, selection.WithLogger(w.logger))

	if args.Edit != "" {
		sel, err := selection.Unflatten(saved.Target)
		if err != nil {
			return fmt.Errorf("failed to decode target %s: %w", args.Edit, err)
		}

		// stale parts are logged by the selector; the session starts from what still matches
		_ = selector.Seed(sel)
	}

	sel, err := w.ui.SelectTarget(ctx, selector, controller.WithTitle(string(args.CodeInfo)))
	if err != nil {
		return err
	}

	doc := m.TargetDocument{
		ID:           saved.ID,
		CodeInfo:     args.CodeInfo,
		OutputType:   firstNonEmpty(args.OutputType, saved.OutputType),
		QuestionType: firstNonEmpty(args.QuestionType, saved.QuestionType),
		Target:       selection.Flatten(sel),
	}

	doc, err = w.store.Save(out, doc)
	if err != nil {
		return err
	}

	w.logger.Info("target saved", "path", out, "id", doc.ID, "items", len(doc.Target))

	return w.ui.DisplayTarget(doc, sel)
}

// View displays a saved target. With args.CodeInfo the target is also checked
// against that analysis.
func (w *workflow) View(_ context.Context, args ViewArgs) error {
	doc, err := w.store.Load(args.Target)
	if err != nil {
		return err
	}

	sel, err := selection.Unflatten(doc.Target)
	if err != nil {
		return fmt.Errorf("failed to decode target %s: %w", args.Target, err)
	}

	if err := w.ui.DisplayTarget(doc, sel); err != nil {
		return err
	}

	if args.CodeInfo == "" {
		return nil
	}

	info, err := w.codeInfo.Load(args.CodeInfo)
	if err != nil {
		return err
	}

	if _, err := selection.Seed(info, sel); err != nil {
		return fmt.Errorf("target %s against %s: %w", args.Target, args.CodeInfo, err)
	}

	return nil
}

// List displays the scope of the code info, or the scope the target in
// args.Target points into.
func (w *workflow) List(_ context.Context, args ListArgs) error {
	info, err := w.codeInfo.Load(args.CodeInfo)
	if err != nil {
		return err
	}

	state := selection.NewState(info)

	if args.Target != "" {
		doc, err := w.store.Load(args.Target)
		if err != nil {
			return err
		}

		sel, err := selection.Unflatten(doc.Target)
		if err != nil {
			return fmt.Errorf("failed to decode target %s: %w", args.Target, err)
		}

		state, err = selection.Seed(info, sel)
		if err != nil {
			w.logger.Warn("target does not fully match the code info", "target", args.Target, "error", err)
		}
	}

	return w.ui.DisplayScope(state)
}

// Check validates code-info files concurrently, at most args.Parallel at a time.
func (w *workflow) Check(ctx context.Context, args CheckArgs) error {
	parallel := args.Parallel
	if parallel <= 0 {
		parallel = 1
	}

	results := make([]m.CheckResult, len(args.Paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)

	for i, path := range args.Paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			results[i] = w.checkOne(path)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if err := w.ui.DisplayCheck(results); err != nil {
		return err
	}

	failed := 0

	for _, result := range results {
		if !result.OK() {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d file(s)", ErrCheckFailed, failed, len(results))
	}

	return nil
}

func (w *workflow) checkOne(path m.Path) m.CheckResult {
	result := m.CheckResult{Path: path}

	info, err := w.codeInfo.Load(path)
	if err != nil {
		result.Err = err
		return result
	}

	result.Scopes = countScopes(info.CodeTree)
	result.Functions = len(info.Functions)
	result.Loops = len(info.Loops)
	result.Branches = len(info.Branches)
	result.Variables = len(info.Variables)
	result.Err = selection.Validate(info)

	w.logger.Debug("checked code info", "path", path, "scopes", result.Scopes, "ok", result.OK())

	return result
}

func (w *workflow) warnOnContract(path m.Path, info *m.CodeInfo) {
	if err := selection.Validate(info); err != nil {
		w.logger.Warn("code info violates the structure contract", "path", path, "error", err)
	}
}

func countScopes(node *m.CodeStructureNode) int {
	if node == nil {
		return 0
	}

	count := 1
	for _, child := range node.Children {
		count += countScopes(child)
	}

	return count
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
