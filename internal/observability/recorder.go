package observability

import (
	"sync"

	"go.uber.org/zap"

	"github.com/cory-johannsen/simu/internal/game/stats"
)

// CalcRecorder is a stats.Recorder that logs each evaluation at debug level
// and keeps running totals until Flush.
type CalcRecorder struct {
	logger *zap.Logger

	mu        sync.Mutex
	lists     int
	statsN    int
	modifiers int
}

var _ stats.Recorder = (*CalcRecorder)(nil)

// NewCalcRecorder returns a CalcRecorder writing to logger.
//
// Precondition: logger must not be nil.
func NewCalcRecorder(logger *zap.Logger) *CalcRecorder {
	return &CalcRecorder{logger: logger.Named("calc")}
}

// ListEvaluated records one uncached list aggregation over n modifiers.
func (r *CalcRecorder) ListEvaluated(list string, policy stats.Policy, n int) {
	r.mu.Lock()
	r.lists++
	r.modifiers += n
	r.mu.Unlock()
	r.logger.Debug("list evaluated",
		zap.String("list", list),
		zap.Stringer("policy", policy),
		zap.Int("modifiers", n),
	)
}

// StatEvaluated records one uncached stat calculation.
func (r *CalcRecorder) StatEvaluated(stat string) {
	r.mu.Lock()
	r.statsN++
	r.mu.Unlock()
	r.logger.Debug("stat evaluated", zap.String("stat", stat))
}

// Counts returns the totals accumulated since the last Flush.
func (r *CalcRecorder) Counts() (lists, statCount, modifiers int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lists, r.statsN, r.modifiers
}

// Flush logs the accumulated totals at info level and resets them.
func (r *CalcRecorder) Flush() {
	r.mu.Lock()
	lists, statCount, modifiers := r.lists, r.statsN, r.modifiers
	r.lists, r.statsN, r.modifiers = 0, 0, 0
	r.mu.Unlock()
	r.logger.Info("calculations",
		zap.Int("lists", lists),
		zap.Int("stats", statCount),
		zap.Int("modifiers", modifiers),
	)
}
