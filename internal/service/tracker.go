package service

import (
	"fmt"
	"sync"

	"github.com/MohdMoinuddin-mma/OlymPIX/pkg/model"
	"go.uber.org/zap"
)

// PlanTracker holds today's completable items for one plan module
type PlanTracker struct {
	mu     sync.RWMutex
	module model.Module
	items  []model.PlanItem
	logger *zap.Logger
}

// NewPlanTracker creates an empty tracker
func NewPlanTracker(module model.Module, logger *zap.Logger) *PlanTracker {
	return &PlanTracker{
		module: module,
		logger: logger,
	}
}

// ReceivePlan replaces the item list wholesale; every item starts incomplete
func (t *PlanTracker) ReceivePlan(items []model.PlanItem) {
	fresh := make([]model.PlanItem, len(items))
	for i, item := range items {
		fresh[i] = model.PlanItem{Name: item.Name, Detail: item.Detail}
	}

	t.mu.Lock()
	t.items = fresh
	t.mu.Unlock()

	t.logger.Info("plan applied",
		zap.String("module", string(t.module)),
		zap.Int("item_count", len(fresh)),
	)
}

// ToggleItem flips the completed flag of a single item
func (t *PlanTracker) ToggleItem(index int) (model.PlanItem, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if index < 0 || index >= len(t.items) {
		return model.PlanItem{}, fmt.Errorf("%w: %d of %d", ErrItemIndex, index, len(t.items))
	}
	t.items[index].Completed = !t.items[index].Completed
	return t.items[index], nil
}

// Plan returns a copy of the current plan
func (t *PlanTracker) Plan() model.Plan {
	t.mu.RLock()
	defer t.mu.RUnlock()

	items := make([]model.PlanItem, len(t.items))
	copy(items, t.items)
	return model.Plan{Module: t.module, Items: items}
}

// Empty reports whether no plan has been received; the tracker is hidden while empty
func (t *PlanTracker) Empty() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.items) == 0
}

// CompletionPercent is the share of completed items, rounded down; ok is false while empty
func (t *PlanTracker) CompletionPercent() (int, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if len(t.items) == 0 {
		return 0, false
	}
	done := 0
	for _, item := range t.items {
		if item.Completed {
			done++
		}
	}
	return done * 100 / len(t.items), true
}

// Reset clears the plan
func (t *PlanTracker) Reset() {
	t.mu.Lock()
	t.items = nil
	t.mu.Unlock()
}
