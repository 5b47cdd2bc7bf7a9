package persistence

import (
	"context"
	"fmt"
	"sync"

	cron "github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mcpbuilder/mcp-builder/pkg/model"
)

// DefaultAutosaveSchedule runs every 30 seconds (cron with seconds field)
const DefaultAutosaveSchedule = "*/30 * * * * *"

// SnapshotSource provides the integrations to save
type SnapshotSource interface {
	Snapshots() []model.Integration
}

// Autosaver periodically saves every open session's integration
type Autosaver struct {
	store    *LocalStore
	source   SnapshotSource
	schedule string
	cron     *cron.Cron
	logger   *zap.Logger
	onSaved  func(ctx context.Context, saved int)

	mu      sync.Mutex
	running bool
}

// NewAutosaver creates an autosaver; an empty schedule uses DefaultAutosaveSchedule
func NewAutosaver(store *LocalStore, source SnapshotSource, schedule string, logger *zap.Logger) *Autosaver {
	if schedule == "" {
		schedule = DefaultAutosaveSchedule
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Autosaver{
		store:    store,
		source:   source,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger,
	}
}

// OnSaved registers fn to be called after every cycle that wrote at least one integration
func (a *Autosaver) OnSaved(fn func(ctx context.Context, saved int)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onSaved = fn
}

// Start schedules the save job
func (a *Autosaver) Start(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.running {
		return fmt.Errorf("autosaver is already running")
	}

	_, err := a.cron.AddFunc(a.schedule, func() {
		a.RunNow(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule autosave: %w", err)
	}

	a.cron.Start()
	a.running = true
	a.logger.Info("autosave started", zap.String("schedule", a.schedule))
	return nil
}

// Stop waits for a running save to finish and stops scheduling new ones
func (a *Autosaver) Stop() {
	a.mu.Lock()
	if !a.running {
		a.mu.Unlock()
		return
	}
	a.running = false
	done := a.cron.Stop().Done()
	a.mu.Unlock()

	<-done
	a.logger.Info("autosave stopped")
}

// RunNow saves every snapshot immediately and returns how many were written
func (a *Autosaver) RunNow(ctx context.Context) int {
	if ctx.Err() != nil || !a.store.Enabled() {
		return 0
	}

	saved := 0
	snapshots := a.source.Snapshots()
	for i := range snapshots {
		if a.store.Save(ctx, &snapshots[i]) {
			saved++
		}
	}
	a.logger.Debug("autosave cycle finished", zap.Int("saved", saved), zap.Int("sessions", len(snapshots)))

	a.mu.Lock()
	onSaved := a.onSaved
	a.mu.Unlock()
	if onSaved != nil && saved > 0 {
		onSaved(ctx, saved)
	}
	return saved
}
