package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/iPad7/gantt-4team/internal/core/domain"
	"github.com/iPad7/gantt-4team/internal/core/ports"
)

// HierarchyEngine keeps a parent's stored span equal to the envelope of its
// direct children. It works one level at a time and never touches the
// parent's own parent.
type HierarchyEngine struct{}

var _ ports.ParentWriteHook = (*HierarchyEngine)(nil)

func NewHierarchyEngine() *HierarchyEngine {
	return &HierarchyEngine{}
}

func (e *HierarchyEngine) AfterChildWrite(ctx context.Context, store ports.TaskStore, parentID uint64) error {
	return e.Recompute(ctx, store, parentID)
}

// Recompute locks the parent row, re-reads every current child and stores
// min(start)/max(end). A parent without children keeps its dates. Running it
// twice in a row is a no-op.
func (e *HierarchyEngine) Recompute(ctx context.Context, store ports.TaskStore, parentID uint64) error {
	parent, err := store.LockTask(ctx, parentID)
	if err != nil {
		return err
	}

	children, err := store.ListChildren(ctx, parentID)
	if err != nil {
		return err
	}

	start, end, ok := domain.Envelope(children)
	if !ok {
		return nil
	}
	if parent.StartDate.Equal(start) && parent.EndDate.Equal(end) {
		return nil
	}

	if err := store.UpdateTaskSpan(ctx, parentID, start, end); err != nil {
		return err
	}

	zap.L().Debug("recomputed parent span",
		zap.Uint64("task_id", parentID),
		zap.Int("children", len(children)),
		zap.String("start_date", domain.FormatDate(start)),
		zap.String("end_date", domain.FormatDate(end)),
	)
	return nil
}
